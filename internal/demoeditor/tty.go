// Package demoeditor is a minimal, runnable EditorView/TerminalSink pair
// for cmd/lineeditdemo: a single-line prompt with raw-mode terminal I/O.
// It is the out-of-scope collaborator layer the core spec only consumes
// as interfaces (spec §6) — not part of the library surface itself.
//
// Raw-mode handling is grounded on Program.initTerminal/openInputTTY in
// _examples/charmbracelet-bubbletea/tea.go, which checks term.IsTerminal
// before calling term.MakeRaw and restores the previous state on exit;
// this package uses golang.org/x/term + github.com/mattn/go-isatty
// instead of the teacher's vendored charmbracelet/x/term fork, a pairing
// grounded on other_examples/manifests/alantheprice-ledit/go.mod (see
// DESIGN.md).
package demoeditor

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// RawTTY puts stdin/stdout into raw mode for the lifetime of the value
// and restores the previous terminal state on Close.
type RawTTY struct {
	fd     int
	state  *term.State
	wasRaw bool
	isTerm bool
}

// NewRawTTY enters raw mode on stdin if it is a terminal. If stdin is
// not a terminal (e.g. piped input), it returns a RawTTY that leaves the
// terminal state untouched.
func NewRawTTY() (*RawTTY, error) {
	fd := int(os.Stdin.Fd())
	t := &RawTTY{fd: fd, isTerm: isatty.IsTerminal(os.Stdin.Fd())}
	if !t.isTerm {
		return t, nil
	}
	state, err := term.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	t.state = state
	t.wasRaw = true
	return t, nil
}

// IsTerminal reports whether stdin is a terminal.
func (t *RawTTY) IsTerminal() bool { return t.isTerm }

// Close restores the terminal to its state before NewRawTTY.
func (t *RawTTY) Close() error {
	if !t.wasRaw {
		return nil
	}
	return term.Restore(t.fd, t.state)
}

// TerminalWidth returns stdout's current column count, or a sane default
// when it cannot be determined (e.g. not a terminal).
func TerminalWidth() int {
	if !isatty.IsTerminal(os.Stdout.Fd()) {
		return 80
	}
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
