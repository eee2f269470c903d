package demoeditor

import (
	"unicode"
	"unicode/utf8"
)

// sanitizePaste strips control characters out of text pasted or typed
// into the prompt, collapsing CR/LF to a single space (a single-line
// prompt has nowhere to put a newline) and expanding tabs.
//
// Adapted from runeutil.Sanitizer in
// _examples/charmbracelet-bubbletea/bubbles/runeutil/runeutil.go,
// trimmed to the fixed replacements this demo needs instead of that
// package's pluggable Option set.
func sanitizePaste(runes []rune) []rune {
	out := runes[:0:len(runes)]
	copied := false

	for src, r := range runes {
		switch {
		case r == utf8.RuneError:
			// drop
		case r == '\r' || r == '\n':
			if !copied {
				out = append([]rune(nil), out...)
				copied = true
			}
			out = append(out, ' ')
		case r == '\t':
			if !copied {
				out = append([]rune(nil), out...)
				copied = true
			}
			out = append(out, ' ', ' ', ' ', ' ')
		case unicode.IsControl(r):
			// drop
		default:
			out = append(out, runes[src])
		}
	}
	return out
}
