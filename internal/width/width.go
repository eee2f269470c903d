// Package width measures the terminal column width of strings, the
// default implementation of the "UTF-8 column-width measurement"
// collaborator the core only consumes as an interface (spec §3, §6).
//
// Grounded on github.com/mattn/go-runewidth, which the teacher itself
// reaches for in bubbles/textinput rather than a hand-rolled wcwidth
// table.
package width

import "github.com/mattn/go-runewidth"

// String returns the terminal column width of s. When isUTF8 is false,
// every byte counts as one column, matching how a non-UTF-8 locale
// renders each byte as exactly one cell.
func String(s string, isUTF8 bool) int {
	if !isUTF8 {
		return len(s)
	}
	return runewidth.StringWidth(s)
}

// Truncate returns the longest prefix of s whose column width is <= max,
// plus whether truncation happened. Used by the completion menu to fit a
// display string into a fixed-width cell (spec §4.4).
func Truncate(s string, max int, isUTF8 bool) (string, bool) {
	if String(s, isUTF8) <= max {
		return s, false
	}
	if !isUTF8 {
		if max < 0 {
			max = 0
		}
		if max > len(s) {
			max = len(s)
		}
		return s[:max], true
	}
	return runewidth.Truncate(s, max, ""), true
}
