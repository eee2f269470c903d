package lineedit

// Final-byte lookup tables for the three escape-sequence encodings the
// decoder normalises into (spec §4.2.4). These reproduce
// _examples/original_source/src/tty_esc.c's esc_decode_vt/xterm/ss3
// tables bit-for-bit; see decoder.go for how a raw sequence is reduced to
// (c1, num1, num2, final) before consulting them.

// decodeVT maps a vt100-style parameter (the CSI '~' family) to a key
// sentinel. Mirrors esc_decode_vt in tty_esc.c.
func decodeVT(vtCode int) KeyCode {
	switch vtCode {
	case 1:
		return KeyHome
	case 2:
		return KeyIns
	case 3:
		return KeyDel
	case 4:
		return KeyEnd
	case 5:
		return KeyPageUp
	case 6:
		return KeyPageDown
	case 7:
		return KeyHome
	case 8:
		return KeyEnd
	}
	switch {
	case vtCode >= 10 && vtCode <= 15:
		return KeyF(1 + (vtCode - 10))
	case vtCode == 16:
		return KeyF5 // minicom
	case vtCode >= 17 && vtCode <= 21:
		return KeyF(6 + (vtCode - 17))
	case vtCode >= 23 && vtCode <= 26:
		return KeyF(11 + (vtCode - 23))
	case vtCode >= 28 && vtCode <= 29:
		return KeyF(15 + (vtCode - 28))
	case vtCode >= 31 && vtCode <= 34:
		return KeyF(17 + (vtCode - 31))
	}
	return KeyNone
}

// decodeXterm maps the CSI '1;mod' + letter family (ESC [ letter). Mirrors
// esc_decode_xterm in tty_esc.c.
func decodeXterm(final byte) KeyCode {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'E':
		return KeyChar('5') // numpad 5
	case 'F':
		return KeyEnd
	case 'H':
		return KeyHome
	case 'Z':
		return KeyTab | KeyCode(ModShift)
	// FreeBSD:
	case 'I':
		return KeyPageUp
	case 'L':
		return KeyIns
	case 'M':
		return KeyF1
	case 'N':
		return KeyF2
	case 'O':
		return KeyF3
	case 'P':
		return KeyF4 // differs from the common CSI table; matches the original
	case 'Q':
		return KeyF5
	case 'R':
		return KeyF6
	case 'S':
		return KeyF7
	case 'T':
		return KeyF8
	case 'U':
		return KeyPageDown // Mach
	case 'V':
		return KeyPageUp // Mach
	case 'W':
		return KeyF11
	case 'X':
		return KeyF12
	case 'Y':
		return KeyEnd // Mach
	}
	return KeyNone
}

// decodeSS3 maps the SS3 family (ESC O letter), including the numpad
// lowercase aliases. Mirrors esc_decode_ss3 in tty_esc.c.
func decodeSS3(final byte) KeyCode {
	switch final {
	case 'A':
		return KeyUp
	case 'B':
		return KeyDown
	case 'C':
		return KeyRight
	case 'D':
		return KeyLeft
	case 'E':
		return KeyChar('5')
	case 'F':
		return KeyEnd
	case 'H':
		return KeyHome
	case 'I':
		return KeyTab
	case 'Z':
		return KeyTab | KeyCode(ModShift)
	case 'M':
		return KeyLinefeed
	case 'P':
		return KeyF1
	case 'Q':
		return KeyF2
	case 'R':
		return KeyF3
	case 'S':
		return KeyF4
	// On Mach:
	case 'T':
		return KeyF5
	case 'U':
		return KeyF6
	case 'V':
		return KeyF7
	case 'W':
		return KeyF8
	case 'X':
		return KeyF9 // = on vt220
	case 'Y':
		return KeyF10
	// Numpad:
	case 'a':
		return KeyUp
	case 'b':
		return KeyDown
	case 'c':
		return KeyRight
	case 'd':
		return KeyLeft
	case 'j':
		return KeyChar('*')
	case 'k':
		return KeyChar('+')
	case 'l':
		return KeyChar(',')
	case 'm':
		return KeyChar('-')
	case 'n':
		return KeyDel // '.'
	case 'o':
		return KeyChar('/')
	case 'p':
		return KeyIns
	case 'q':
		return KeyEnd
	case 'r':
		return KeyDown
	case 's':
		return KeyPageDown
	case 't':
		return KeyLeft
	case 'u':
		return KeyChar('5')
	case 'v':
		return KeyRight
	case 'w':
		return KeyHome
	case 'x':
		return KeyUp
	case 'y':
		return KeyPageUp
	}
	return KeyNone
}
