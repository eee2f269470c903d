package lineedit

import (
	"strconv"
	"unicode/utf8"

	"github.com/charmbracelet/log"
)

// Decoder is the C2 key decoder: it consumes bytes from a ByteBuffer and
// emits logical KeyCodes, reconciling vt100/vt52, xterm, SS3, Linux
// console, Mach, Eterm/rxvt, Haiku, iTerm2, and minicom dialects behind
// one grammar (spec §1, §4.2).
//
// The control-flow below follows _examples/original_source/src/tty_esc.c
// (tty_read_esc/tty_read_csi) function-for-function rather than the
// teacher's longest-prefix-match table (parse.go/key_sequences.go),
// because the exact normalisation rules spec.md enumerates — Mach
// DEL/INS, Eterm/rxvt ^/$/@, Linux F1-F5, Haiku's modifier-as-first
// parameter, iTerm2's n2==9 — are each one branch of that C state machine.
type Decoder struct {
	src    *ByteBuffer
	cfg    Config
	logger *log.Logger

	// pending holds a fully-decoded KeyCode pushed back by PushKey, to be
	// returned by the next ReadKey before any bytes are consumed from src.
	// A byte-level push-back (ByteBuffer.PushByte) cannot round-trip a
	// KeyCode's modifiers or its sentinel encoding (Base() is >=0x110000
	// for function/navigation keys), so anything already decoded must be
	// pushed back at this level instead (spec §5's push-back invariant).
	pending    KeyCode
	hasPending bool
}

// NewDecoder returns a decoder reading from src. A nil logger discards
// trace output.
func NewDecoder(src *ByteBuffer, cfg Config, logger *log.Logger) *Decoder {
	if logger == nil {
		logger = log.New(discard{})
	}
	return &Decoder{src: src, cfg: cfg, logger: logger}
}

// PushKey pushes back a fully-decoded key so the next ReadKey returns it
// unchanged, instead of re-encoding it through the byte-level ByteBuffer
// (spec §5: "an unrecognised key inside C4 must be pushed back exactly
// once before returning so the outer loop sees the same key next"). Only
// one key may be pending at a time; decodeFirst never calls PushKey
// itself, so this can't be called twice before the next ReadKey drains it.
func (d *Decoder) PushKey(key KeyCode) {
	d.pending = key
	d.hasPending = true
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }

// ReadKey blocks for at least one byte, then decodes a KeyCode per spec
// §4.2. A lone ESC, or an ESC followed by one byte and then a timeout,
// yields KeyEsc or Alt+byte. A CSI/SS3 sequence that times out once its
// parameter bytes have started yields KeyNone, and the bytes read for it
// are dropped, not pushed back.
func (d *Decoder) ReadKey() (KeyCode, error) {
	if d.hasPending {
		key := d.pending
		d.pending = KeyNone
		d.hasPending = false
		return key, nil
	}
	b, err := d.src.ReadBlocking()
	if err != nil {
		return KeyNone, err
	}
	return d.decodeFirst(b), nil
}

func (d *Decoder) decodeFirst(b byte) KeyCode {
	switch {
	case b == 0x1B:
		return d.decodeEsc()
	case b <= 0x20 || b == 0x7F:
		return decodeControl(b)
	case utf8.RuneStart(b):
		return d.decodeUTF8(b)
	default:
		// Stray UTF-8 continuation byte with no lead: treat as a
		// replacement character rather than silently dropping it (spec
		// §4.2's "malformed sequences yield KEY_CHAR(replacement char)").
		return KeyChar(utf8.RuneError)
	}
}

// decodeControl maps C0 control bytes to the conventional KEY_* encoding
// (spec §4.2): 0x09 -> TAB, 0x0A -> LINEFEED, 0x0D -> ENTER, 0x20 -> SPACE,
// 0x7F -> the literal DEL byte (backspace is an editor-level concept, not
// a KeyCode sentinel in this spec), and 0x01-0x1A -> CTRL|<letter> via the
// canonical Ctrl encoding (Ctrl+A==0x01 .. Ctrl+Z==0x1A).
func decodeControl(b byte) KeyCode {
	switch b {
	case 0x09:
		return KeyTab
	case 0x0A:
		return KeyLinefeed
	case 0x0D:
		return KeyEnter
	case 0x20:
		return KeySpace
	case 0x7F:
		return KeyChar(0x7F)
	case 0x00:
		return KeyChar('@').With(ModCtrl) // conventionally ctrl+@ / ctrl+space
	case 0x1C:
		return KeyChar('\\').With(ModCtrl)
	case 0x1D:
		return KeyChar(']').With(ModCtrl)
	case 0x1E:
		return KeyChar('^').With(ModCtrl)
	case 0x1F:
		return KeyChar('_').With(ModCtrl)
	}
	if b >= 0x01 && b <= 0x1A {
		return KeyChar(rune('a' + int(b) - 1)).With(ModCtrl)
	}
	return KeyChar(rune(b))
}

// decodeUTF8 reads the continuation bytes of a multi-byte rune under the
// non-blocking deadline, assembling the scalar (spec §4.2). Malformed
// sequences yield the replacement character; the bytes read after the
// lead byte are pushed back rather than discarded, so no input is
// swallowed silently (spec §7.3).
func (d *Decoder) decodeUTF8(lead byte) KeyCode {
	n := utf8Len(lead)
	if n <= 1 {
		return KeyChar(rune(lead))
	}
	buf := make([]byte, 1, n)
	buf[0] = lead
	for len(buf) < n {
		c, ok := d.src.ReadNonblocking(d.cfg.EscTimeout)
		if !ok {
			break
		}
		buf = append(buf, c)
	}
	r, size := utf8.DecodeRune(buf)
	if r == utf8.RuneError && size <= 1 {
		// Malformed: push back everything past the lead byte so the next
		// read can try to resynchronise.
		for i := len(buf) - 1; i >= 1; i-- {
			d.src.PushByte(buf[i])
		}
		return KeyChar(utf8.RuneError)
	}
	return KeyChar(r)
}

func utf8Len(lead byte) int {
	switch {
	case lead&0x80 == 0x00:
		return 1
	case lead&0xE0 == 0xC0:
		return 2
	case lead&0xF0 == 0xE0:
		return 3
	case lead&0xF8 == 0xF0:
		return 4
	default:
		return 1
	}
}

// decodeEsc implements the ESC sub-state-machine (spec §4.2.1), grounded
// on tty_read_esc in tty_esc.c.
func (d *Decoder) decodeEsc() KeyCode {
	peek, ok := d.src.ReadNonblocking(d.cfg.EscTimeout)
	if !ok {
		return KeyEsc // lone ESC
	}
	switch peek {
	case '[':
		next, ok := d.src.ReadNonblocking(d.cfg.EscTimeout)
		if !ok {
			return KeyChar('[').With(ModAlt)
		}
		return d.decodeCSI('[', next)
	case 'O', 'o', '?': // SS3, plus vt52 '?' alias
		c1 := peek
		next, ok := d.src.ReadNonblocking(d.cfg.EscTimeout)
		if !ok {
			return KeyChar(rune(c1)).With(ModAlt)
		}
		return d.decodeCSI(c1, next)
	default:
		return KeyChar(rune(peek)).With(ModAlt)
	}
}

// readCSINum reads up to 16 decimal digits non-blockingly, returning the
// parsed number (default 1 if none were read) and the byte that stopped
// the scan. Capped at 16 digits to bound adversarial input (spec §4.2.1
// rule 5).
func (d *Decoder) readCSINum(first byte) (num int, stop byte, stopOK bool) {
	num = 1
	count := 0
	n := 0
	b := first
	haveB := true
	for haveB && b >= '0' && b <= '9' && count < 16 {
		n = n*10 + int(b-'0')
		count++
		b, haveB = d.src.ReadNonblocking(d.cfg.EscTimeout)
	}
	if count > 0 {
		num = n
	}
	return num, b, haveB
}

// decodeCSI parses the parameter/intermediate/final bytes of a CSI or SS3
// sequence and normalises it per spec §4.2.2/§4.2.3, grounded on
// tty_read_csi in tty_esc.c. c1 is '[' for CSI, or 'O'/'o'/'?' for SS3
// (with '?' already known to have been rewritten from vt52 by the caller
// passing 'O' is NOT done here — the rewrite happens below, matching the
// C original which keeps c1=='?' until the special-character check).
func (d *Decoder) decodeCSI(c1 byte, peek byte) KeyCode {
	var special byte
	if isSpecialChar(peek) {
		special = peek
		next, ok := d.src.ReadNonblocking(d.cfg.EscTimeout)
		if !ok {
			// Recover: push the special byte back and report Alt+c1.
			d.src.PushByte(special)
			return KeyChar(rune(c1)).With(ModAlt)
		}
		peek = next
	}

	// vt52 treated as SS3.
	if c1 == '?' {
		special = '?'
		c1 = 'O'
	}

	// xterm's "ESC [ O [P-S]" for F1-F4: treat the O as special and
	// continue, or push back and keep peek=='O' if it's not F1-F4.
	if c1 == '[' && peek == 'O' {
		next, ok := d.src.ReadNonblocking(d.cfg.EscTimeout)
		if ok {
			if next >= 'P' && next <= 'S' {
				special = 'O'
				peek = next
			} else {
				d.src.PushByte(next)
				// peek stays 'O'
			}
		}
	}

	num1, b, ok := d.readCSINum(peek)
	num2 := 1
	if ok && b == ';' {
		next, ok2 := d.src.ReadNonblocking(d.cfg.EscTimeout)
		if !ok2 {
			return KeyNone
		}
		num2, b, ok = d.readCSINum(next)
	}
	if !ok {
		// Truncated sequence: nothing sensible to push back since b is
		// not meaningful here; report no key (spec §7.3's timeout path
		// for the general CSI case).
		return KeyNone
	}

	final := b
	var mods Modifier

	// Adjust special cases into standard ones (spec §4.2.2 table).
	switch {
	case (final == '@' || final == '9') && c1 == '[' && num1 == 1:
		if final == '@' {
			num1 = 3 // Mach DEL
		} else {
			num1 = 2 // Mach INS
		}
		final = '~'
	case final == '^' || final == '$' || final == '@':
		// Eterm/rxvt/urxvt.
		if final == '^' {
			mods |= ModCtrl
		}
		if final == '$' {
			mods |= ModShift
		}
		if final == '@' {
			mods |= ModShift | ModCtrl
		}
		final = '~'
	}
	switch {
	case c1 == '[' && special == '[' && final >= 'A' && final <= 'E':
		final = 'M' + (final - 'A') // Linux F1-F5
	case c1 == '[' && final >= 'a' && final <= 'd':
		mods |= ModShift // Eterm shift+cursor
		final = 'A' + (final - 'a')
	case c1 == 'o' && final >= 'a' && final <= 'd':
		c1 = '['
		mods |= ModCtrl // Eterm ctrl+cursor
		final = 'A' + (final - 'a')
	case c1 == 'O' && num2 == 1 && num1 > 1 && num1 <= 8:
		// Haiku puts the modifier as the first parameter.
		num1, num2 = 1, num1
	}

	// Parameter 2 determines the modifiers (spec §4.2.3).
	if num2 > 1 && num2 <= 9 {
		if num2 == 9 {
			num2 = 3 // iTerm2 anomaly
		}
		num2--
		if num2&0x1 != 0 {
			mods |= ModShift
		}
		if num2&0x2 != 0 {
			mods |= ModAlt
		}
		if num2&0x4 != 0 {
			mods |= ModCtrl
		}
	}

	var code KeyCode
	switch {
	case final == '~':
		code = decodeVT(num1)
	case final == 'u' && c1 == '[':
		// Direct Unicode escape: push num1 back as UTF-8, pop the lead
		// byte, and reassemble the rune from the pushed continuation bytes.
		d.src.PushUnicode(rune(num1))
		lead, err := d.src.ReadBlocking()
		if err != nil {
			return KeyNone
		}
		code = d.decodeUTF8(lead)
	case c1 == 'O' && ((final >= 'A' && final <= 'Z') || (final >= 'a' && final <= 'z')):
		code = decodeSS3(final)
	case num1 == 1 && final >= 'A' && final <= 'Z':
		code = decodeXterm(final)
	default:
		code = KeyNone
	}

	if code == KeyNone {
		d.logger.Debug("lineedit: unrecognised escape sequence",
			"c1", string(c1), "special", string(special),
			"num1", strconv.Itoa(num1), "num2", strconv.Itoa(num2),
			"final", string(final))
		return KeyNone
	}
	return code.With(mods)
}

func isSpecialChar(b byte) bool {
	switch b {
	case ':', '<', '=', '>', '?', '[':
		return true
	}
	return false
}
