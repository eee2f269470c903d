package lineedit

import "testing"

// stubGenerator returns a fixed, pre-baked set of candidates regardless
// of input, each replacing the whole input before pos, for exercising
// TriggerCompletion's three-way dispatch in isolation from any real
// completion logic.
type stubGenerator struct {
	displays []string
}

func (g stubGenerator) Generate(input []byte, pos int, cap int, list *CandidateList) int {
	n := 0
	for _, d := range g.displays {
		if n >= cap {
			break
		}
		list.Add(Candidate{Display: d, Replacement: d, DeleteBefore: pos})
		n++
	}
	return len(g.displays)
}

func TestTriggerCompletionZeroCandidatesBeeps(t *testing.T) {
	var list CandidateList
	sink := &fakeSink{width: 80}
	view := &fakeView{input: []byte("xyz"), pos: 3, isUTF8: true}
	dec, src := newTestDecoder(t, "")
	defer src.Close()

	gen := stubGenerator{}
	if err := TriggerCompletion(dec, gen, &list, sink, view); err != nil {
		t.Fatalf("TriggerCompletion: %v", err)
	}
	if sink.beeps != 1 {
		t.Errorf("beeps = %d, want 1", sink.beeps)
	}
	if list.Count() != 0 {
		t.Errorf("list should stay empty, count = %d", list.Count())
	}
}

func TestTriggerCompletionSingleCandidateAutoApplies(t *testing.T) {
	var list CandidateList
	sink := &fakeSink{width: 80}
	view := &fakeView{input: []byte("pri"), pos: 3, isUTF8: true}
	dec, src := newTestDecoder(t, "")
	defer src.Close()

	gen := stubGenerator{displays: []string{"print"}}
	if err := TriggerCompletion(dec, gen, &list, sink, view); err != nil {
		t.Fatalf("TriggerCompletion: %v", err)
	}
	if got := string(view.input); got != "print" {
		t.Errorf("input = %q, want %q", got, "print")
	}
	if sink.beeps != 0 {
		t.Errorf("should not beep on a single candidate, beeps = %d", sink.beeps)
	}
	if list.Count() != 0 {
		t.Errorf("list should be cleared after auto-apply, count = %d", list.Count())
	}
}

func TestTriggerCompletionMultipleCandidatesOpensMenu(t *testing.T) {
	sink := &fakeSink{width: 80}
	view := &fakeView{input: []byte("ba"), pos: 2, isUTF8: true}
	var list CandidateList

	// The menu will receive a '1' keystroke, selecting the first
	// candidate.
	dec, src := newTestDecoder(t, "1")
	defer src.Close()

	gen := stubGenerator{displays: []string{"foo", "bar"}}
	if err := TriggerCompletion(dec, gen, &list, sink, view); err != nil {
		t.Fatalf("TriggerCompletion: %v", err)
	}
	if got := string(view.input); got != "foo" {
		t.Errorf("input = %q, want %q", got, "foo")
	}
}

func TestTriggerCompletionAtStartOfLineIsNoOp(t *testing.T) {
	var list CandidateList
	sink := &fakeSink{width: 80}
	view := &fakeView{isUTF8: true, pos: 0}
	dec, src := newTestDecoder(t, "")
	defer src.Close()

	// A generator that would happily return candidates for an empty
	// prefix, to confirm the gate is enforced by TriggerCompletion
	// itself rather than relied upon from the generator.
	gen := stubGenerator{displays: []string{"anything"}}
	if err := TriggerCompletion(dec, gen, &list, sink, view); err != nil {
		t.Fatalf("TriggerCompletion: %v", err)
	}
	if sink.beeps != 0 {
		t.Errorf("beeps = %d, want 0 at pos==0", sink.beeps)
	}
	if list.Count() != 0 {
		t.Errorf("list should stay empty at pos==0, count = %d", list.Count())
	}
	if string(view.input) != "" {
		t.Errorf("input = %q, want unchanged empty input", view.input)
	}
}

func TestTriggerCompletionNilGeneratorBeeps(t *testing.T) {
	sink := &fakeSink{width: 80}
	view := &fakeView{input: []byte("x"), pos: 1, isUTF8: true}
	var list CandidateList
	dec, src := newTestDecoder(t, "")
	defer src.Close()

	if err := TriggerCompletion(dec, nil, &list, sink, view); err != nil {
		t.Fatalf("TriggerCompletion: %v", err)
	}
	if sink.beeps != 1 {
		t.Errorf("beeps = %d, want 1", sink.beeps)
	}
}
