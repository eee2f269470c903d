package lineedit

import (
	"strings"
	"testing"
)

// fakeSink is a TerminalSink that records writes instead of touching a
// real terminal.
type fakeSink struct {
	width   int
	written []byte
	beeps   int
}

func (s *fakeSink) Write(p []byte) (int, error) {
	s.written = append(s.written, p...)
	return len(p), nil
}
func (s *fakeSink) Width() int                { return s.width }
func (s *fakeSink) Beep()                     { s.beeps++ }
func (s *fakeSink) CursorRowCol() RowCol      { return RowCol{} }
func (s *fakeSink) EraseEditedRegion()        {}

// fakeView is a minimal EditorView recording how many times Refresh was
// called, for the menu-cancel invariant in spec §8 scenario 7.
type fakeView struct {
	input        []byte
	pos          int
	extra        ScratchBuffer
	isUTF8       bool
	curRows      int
	refreshCalls int
}

func (v *fakeView) Input() []byte                { return v.input }
func (v *fakeView) SetInput(b []byte)            { v.input = b }
func (v *fakeView) Pos() int                     { return v.pos }
func (v *fakeView) SetPos(p int)                 { v.pos = p }
func (v *fakeView) ExtraBuffer() *ScratchBuffer  { return &v.extra }
func (v *fakeView) IsUTF8() bool                 { return v.isUTF8 }
func (v *fakeView) CurRows() int                 { return v.curRows }
func (v *fakeView) SetCurRows(n int)             { v.curRows = n }
func (v *fakeView) StartModify()                 {}
func (v *fakeView) Refresh()                     { v.refreshCalls++ }
func (v *fakeView) Clear()                       {}
func (v *fakeView) WritePrompt()                 {}
func (v *fakeView) ShowHelp()                    {}

func candidatesFromDisplays(displays ...string) *CandidateList {
	var list CandidateList
	for _, d := range displays {
		list.Add(Candidate{Display: d, Replacement: d, DeleteBefore: 0})
	}
	return &list
}

func TestRunMenuThreeColumnSelectAndApply(t *testing.T) {
	list := candidatesFromDisplays(
		"alpha", "beta", "gamma", "delta", "epsilon",
		"zeta", "eta", "theta", "iota", "kappa",
	)
	sink := &fakeSink{width: 100}
	view := &fakeView{input: []byte(""), isUTF8: true}

	dec, src := newTestDecoder(t, "2")
	defer src.Close()

	if err := RunMenu(dec, list, sink, view, nil, true, DefaultConfig()); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}

	if got := string(view.input); got != "beta" {
		t.Errorf("applied input = %q, want %q", got, "beta")
	}
	if list.Count() != 0 {
		t.Errorf("list should be cleared after apply, count = %d", list.Count())
	}
}

func TestRunMenuThreeColumnLayout(t *testing.T) {
	list := candidatesFromDisplays(
		"alpha", "beta", "gamma", "delta", "epsilon",
		"zeta", "eta", "theta", "iota", "kappa",
	)
	sink := &fakeSink{width: 100}
	view := &fakeView{isUTF8: true}

	countDisplayed, columns, perColumn := renderMenu(list, sink, view, 0)
	if columns != 3 {
		t.Errorf("columns = %d, want 3", columns)
	}
	if countDisplayed != 9 {
		t.Errorf("countDisplayed = %d, want 9 (10 candidates capped to 9 in grid view)", countDisplayed)
	}
	if perColumn != 3 {
		t.Errorf("perColumn = %d, want 3", perColumn)
	}
	if !strings.Contains(view.extra.String(), "shift-tab") {
		t.Error("expected the 'press shift-tab' hint since a 10th candidate exists")
	}
}

func TestRunMenuCancelClearsAndRefreshesOnce(t *testing.T) {
	list := candidatesFromDisplays(
		"alpha", "beta", "gamma", "delta", "epsilon",
		"zeta", "eta", "theta", "iota", "kappa",
	)
	sink := &fakeSink{width: 100}
	view := &fakeView{input: []byte("orig"), pos: 4, isUTF8: true}

	dec, src := newTestDecoder(t, "\x1b")
	defer src.Close()

	refreshesBefore := view.refreshCalls
	if err := RunMenu(dec, list, sink, view, nil, true, DefaultConfig()); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}

	if list.Count() != 0 {
		t.Errorf("candidates should be cleared on cancel, count = %d", list.Count())
	}
	if string(view.input) != "orig" {
		t.Errorf("input buffer should be unchanged on cancel, got %q", view.input)
	}
	// One frame render plus exactly one explicit post-cancel refresh.
	if got := view.refreshCalls - refreshesBefore; got != 2 {
		t.Errorf("Refresh calls = %d, want 2 (one frame render plus one post-cancel refresh)", got)
	}
}

func TestRunMenuNavigation(t *testing.T) {
	list := candidatesFromDisplays("a", "b", "c")
	sink := &fakeSink{width: 10}
	view := &fakeView{isUTF8: true}

	// tab, tab, enter -> selects index 2 ("c").
	dec, src := newTestDecoder(t, "\t\t\r")
	defer src.Close()

	if err := RunMenu(dec, list, sink, view, nil, false, DefaultConfig()); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}
	if got := string(view.input); got != "c" {
		t.Errorf("applied input = %q, want %q", got, "c")
	}
}

func TestRunMenuUnrecognisedKeyPushesBackAndExits(t *testing.T) {
	list := candidatesFromDisplays("a", "b", "c")
	sink := &fakeSink{width: 10}
	view := &fakeView{isUTF8: true}

	dec, src := newTestDecoder(t, "x")
	defer src.Close()

	if err := RunMenu(dec, list, sink, view, nil, false, DefaultConfig()); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}
	if list.Count() != 0 {
		t.Error("list should be cleared when the menu exits via push-back")
	}
	// 'x' was pushed back onto the decoder (PushKey) for the outer loop.
	key, err := dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if key.Base() != 'x' {
		t.Errorf("expected the unrecognised key to be re-readable, got %v", key)
	}
}

// TestRunMenuUnrecognisedSentinelKeyPushesBackExactly guards against
// push-back truncating a sentinel KeyCode down to a single low byte:
// KeyIns (base >= 0x110000) must survive the round trip through the
// outer ReadKey. The modifier case is covered by the next test.
func TestRunMenuUnrecognisedSentinelKeyPushesBackExactly(t *testing.T) {
	list := candidatesFromDisplays("a", "b", "c")
	sink := &fakeSink{width: 10}
	view := &fakeView{isUTF8: true}

	// "\x1b[2~" decodes to KeyIns, not a menu key.
	dec, src := newTestDecoder(t, "\x1b[2~")
	defer src.Close()

	if err := RunMenu(dec, list, sink, view, nil, false, DefaultConfig()); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}

	key, err := dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if key != KeyIns {
		t.Errorf("pushed-back key = %v, want KeyIns intact", key)
	}
}

// TestRunMenuUnrecognisedModifiedKeyPushesBackExactly guards against
// push-back losing a key's modifier bits.
func TestRunMenuUnrecognisedModifiedKeyPushesBackExactly(t *testing.T) {
	list := candidatesFromDisplays("a", "b", "c")
	sink := &fakeSink{width: 10}
	view := &fakeView{isUTF8: true}

	// 0x18 is Ctrl+X, not a menu key.
	dec, src := newTestDecoder(t, "\x18")
	defer src.Close()

	if err := RunMenu(dec, list, sink, view, nil, false, DefaultConfig()); err != nil {
		t.Fatalf("RunMenu: %v", err)
	}

	want := KeyChar('x').With(ModCtrl)
	key, err := dec.ReadKey()
	if err != nil {
		t.Fatalf("ReadKey: %v", err)
	}
	if key != want {
		t.Errorf("pushed-back key = %v, want %v (Ctrl modifier intact)", key, want)
	}
}
