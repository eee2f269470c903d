package lineedit

import "fmt"

// Modifier is a set of OR-combined modifier bits attached to a KeyCode.
type Modifier uint32

// Modifier bits. These live above the 21 bits needed to hold any Unicode
// scalar value or sentinel, so they never collide with Base().
const (
	ModShift Modifier = 1 << (iota + 21)
	ModAlt
	ModCtrl

	modMask = ModShift | ModAlt | ModCtrl
)

// KeyCode is a 32-bit logical key value: a base (Unicode scalar or
// sentinel) OR'd with zero or more Modifier bits.
type KeyCode uint32

// Sentinel base values. They start just above utf8.MaxRune (0x10FFFF) so
// they can never be confused with a decoded Unicode scalar, satisfying the
// decoder's disjointness invariant (spec §3).
const (
	baseSentinel rune = 0x110000 + iota
	baseNone
	baseUp
	baseDown
	baseLeft
	baseRight
	baseHome
	baseEnd
	baseIns
	baseDel
	basePageUp
	basePageDown
	baseTab
	baseShiftTab
	baseEnter
	baseLinefeed
	baseEsc
	baseSpace
	baseF1
	baseF2
	baseF3
	baseF4
	baseF5
	baseF6
	baseF7
	baseF8
	baseF9
	baseF10
	baseF11
	baseF12
	baseF13
	baseF14
	baseF15
	baseF16
	baseF17
	baseF18
	baseF19
	baseF20
)

// KeyCode sentinels, usable directly or OR'd with Modifier bits, e.g.
// KeyUp | ModCtrl.
const (
	KeyNone     = KeyCode(baseNone)
	KeyUp       = KeyCode(baseUp)
	KeyDown     = KeyCode(baseDown)
	KeyLeft     = KeyCode(baseLeft)
	KeyRight    = KeyCode(baseRight)
	KeyHome     = KeyCode(baseHome)
	KeyEnd      = KeyCode(baseEnd)
	KeyIns      = KeyCode(baseIns)
	KeyDel      = KeyCode(baseDel)
	KeyPageUp   = KeyCode(basePageUp)
	KeyPageDown = KeyCode(basePageDown)
	KeyTab      = KeyCode(baseTab)
	KeyShiftTab = KeyCode(baseShiftTab)
	KeyEnter    = KeyCode(baseEnter)
	KeyLinefeed = KeyCode(baseLinefeed)
	KeyEsc      = KeyCode(baseEsc)
	KeySpace    = KeyCode(baseSpace)
	KeyF1       = KeyCode(baseF1)
	KeyF2       = KeyCode(baseF2)
	KeyF3       = KeyCode(baseF3)
	KeyF4       = KeyCode(baseF4)
	KeyF5       = KeyCode(baseF5)
	KeyF6       = KeyCode(baseF6)
	KeyF7       = KeyCode(baseF7)
	KeyF8       = KeyCode(baseF8)
	KeyF9       = KeyCode(baseF9)
	KeyF10      = KeyCode(baseF10)
	KeyF11      = KeyCode(baseF11)
	KeyF12      = KeyCode(baseF12)
	KeyF13      = KeyCode(baseF13)
	KeyF14      = KeyCode(baseF14)
	KeyF15      = KeyCode(baseF15)
	KeyF16      = KeyCode(baseF16)
	KeyF17      = KeyCode(baseF17)
	KeyF18      = KeyCode(baseF18)
	KeyF19      = KeyCode(baseF19)
	KeyF20      = KeyCode(baseF20)
)

// KeyF returns the sentinel for F(n), 1 <= n <= 20, matching the C
// original's esc_decode_vt's KEY_F(n) macro.
func KeyF(n int) KeyCode {
	if n < 1 || n > 20 {
		return KeyNone
	}
	return KeyCode(baseF1) + KeyCode(n-1)
}

// KeyChar returns a printable/control KeyCode for a Unicode scalar.
func KeyChar(r rune) KeyCode {
	return KeyCode(r) &^ KeyCode(modMask)
}

// Base returns the key's base value stripped of modifiers: either a
// decoded Unicode scalar or one of the sentinel constants above.
func (k KeyCode) Base() rune {
	return rune(k &^ KeyCode(modMask))
}

// Mod returns the key's modifier bits.
func (k KeyCode) Mod() Modifier {
	return Modifier(k) & modMask
}

// With returns k with the given modifiers OR'd in.
func (k KeyCode) With(m Modifier) KeyCode {
	return k | KeyCode(m)
}

// IsChar reports whether Base is a plain Unicode scalar rather than a
// sentinel.
func (k KeyCode) IsChar() bool {
	return k.Base() < baseSentinel
}

var keyNames = map[rune]string{
	baseNone:     "none",
	baseUp:       "up",
	baseDown:     "down",
	baseLeft:     "left",
	baseRight:    "right",
	baseHome:     "home",
	baseEnd:      "end",
	baseIns:      "insert",
	baseDel:      "delete",
	basePageUp:   "pgup",
	basePageDown: "pgdown",
	baseTab:      "tab",
	baseShiftTab: "shift+tab",
	baseEnter:    "enter",
	baseLinefeed: "linefeed",
	baseEsc:      "esc",
	baseSpace:    "space",
	baseF1:       "f1", baseF2: "f2", baseF3: "f3", baseF4: "f4", baseF5: "f5",
	baseF6: "f6", baseF7: "f7", baseF8: "f8", baseF9: "f9", baseF10: "f10",
	baseF11: "f11", baseF12: "f12", baseF13: "f13", baseF14: "f14", baseF15: "f15",
	baseF16: "f16", baseF17: "f17", baseF18: "f18", baseF19: "f19", baseF20: "f20",
}

// String returns a debug-friendly representation, e.g. "alt+ctrl+up" or
// `"a"` (modifiers in shift, alt, ctrl order; plain characters quoted).
// Used by the decoder's trace logging, never parsed back.
func (k KeyCode) String() string {
	var mods string
	if m := k.Mod(); m != 0 {
		if m&ModShift != 0 {
			mods += "shift+"
		}
		if m&ModAlt != 0 {
			mods += "alt+"
		}
		if m&ModCtrl != 0 {
			mods += "ctrl+"
		}
	}
	base := k.Base()
	if name, ok := keyNames[base]; ok {
		return mods + name
	}
	if base == 0 {
		return mods + "nul"
	}
	return mods + fmt.Sprintf("%q", string(base))
}
