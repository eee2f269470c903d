package demoeditor

import (
	"io"

	"github.com/dpaneser/lineedit"
	"github.com/dpaneser/lineedit/internal/width"
)

// Sink writes raw bytes straight to a terminal, no styling layer between
// it and the wire (spec §6, matching the teacher's tea.Raw: "prints ...
// without any intermediate processing").
type Sink struct {
	w       io.Writer
	widthFn func() int
}

// NewSink returns a Sink writing to w, measuring width with widthFn
// (typically demoeditor.TerminalWidth) on each query.
func NewSink(w io.Writer, widthFn func() int) *Sink {
	return &Sink{w: w, widthFn: widthFn}
}

func (s *Sink) Write(p []byte) (int, error) { return s.w.Write(p) }

func (s *Sink) Width() int {
	if s.widthFn == nil {
		return 80
	}
	return s.widthFn()
}

func (s *Sink) Beep() { _, _ = s.w.Write([]byte{0x07}) }

// CursorRowCol always reports the zero RowCol (row 0, column 0):
// demoeditor only ever prompts on a single logical row, and the Sink does
// not track how many rows the last Editor frame occupied.
func (s *Sink) CursorRowCol() lineedit.RowCol {
	return lineedit.RowCol{}
}

// EraseEditedRegion clears the current line and moves the cursor to
// column 0, the minimal "undo the last frame" a single-line prompt
// needs.
func (s *Sink) EraseEditedRegion() {
	_, _ = s.w.Write([]byte("\r\x1b[2K"))
}

// Editor is a minimal single-line EditorView: an input buffer, a cursor
// position, and a scratch buffer the menu renders into below the prompt.
type Editor struct {
	prompt string
	input  []byte
	pos    int
	extra  lineedit.ScratchBuffer
	isUTF8 bool
	rows   int
	sink   *Sink
}

// NewEditor returns an Editor with the given prompt, writing frames to
// sink.
func NewEditor(prompt string, sink *Sink) *Editor {
	return &Editor{prompt: prompt, isUTF8: true, sink: sink}
}

func (e *Editor) Input() []byte                        { return e.input }
func (e *Editor) SetInput(b []byte)                     { e.input = b }
func (e *Editor) Pos() int                              { return e.pos }
func (e *Editor) SetPos(p int)                          { e.pos = p }
func (e *Editor) ExtraBuffer() *lineedit.ScratchBuffer  { return &e.extra }
func (e *Editor) IsUTF8() bool                          { return e.isUTF8 }
func (e *Editor) CurRows() int                          { return e.rows }
func (e *Editor) SetCurRows(n int)                      { e.rows = n }

// StartModify erases the previous frame before new content is written
// into Input/ExtraBuffer, matching the editor_start_modify convention
// the menu relies on (spec §4.4).
func (e *Editor) StartModify() {
	e.sink.EraseEditedRegion()
}

// Refresh redraws the prompt, current input, and the scratch buffer.
func (e *Editor) Refresh() {
	e.sink.EraseEditedRegion()
	e.WritePrompt()
	_, _ = e.sink.Write(e.input)
	if extra := e.extra.String(); extra != "" {
		_, _ = e.sink.Write([]byte("\r\n"))
		_, _ = e.sink.Write([]byte(extra))
		e.rows = 1
	} else {
		e.rows = 0
	}
}

// Clear blanks the input line entirely (used by show-all mode before it
// takes over the screen).
func (e *Editor) Clear() {
	e.sink.EraseEditedRegion()
}

func (e *Editor) WritePrompt() {
	_, _ = e.sink.Write([]byte(e.prompt))
}

// InsertRune inserts r at the cursor after sanitizing it (dropping
// control characters, expanding tabs, collapsing newlines to a space —
// see sanitizePaste) and redraws the line.
func (e *Editor) InsertRune(r rune) {
	clean := sanitizePaste([]rune{r})
	if len(clean) == 0 {
		return
	}
	encoded := []byte(string(clean))
	out := make([]byte, 0, len(e.input)+len(encoded))
	out = append(out, e.input[:e.pos]...)
	out = append(out, encoded...)
	out = append(out, e.input[e.pos:]...)
	e.input = out
	e.pos += len(encoded)
	e.StartModify()
	e.Refresh()
}

// ShowHelp writes a one-line reminder of the menu's key bindings.
func (e *Editor) ShowHelp() {
	_, _ = e.sink.Write([]byte("\r\n" + helpText + "\r\n"))
	e.Refresh()
}

const helpText = "tab/down, up: move   left/right: column   enter/space: apply   esc: cancel"

// DisplayWidth is a convenience wrapper other demo code can use without
// importing internal/width directly.
func DisplayWidth(s string, isUTF8 bool) int { return width.String(s, isUTF8) }
