package lineedit

// maxTriggerCandidates is the cap the trigger asks a generator for before
// handing off to the menu, grounded on edit_generate_completions's
// COMPLETION_MAX in editline_completion.c.
const maxTriggerCandidates = 10

// TriggerCompletion is the C5 completion trigger (spec §4.5): it asks gen
// for up to maxTriggerCandidates candidates at the current cursor
// position and either beeps (zero candidates), applies the sole
// candidate directly (exactly one), or runs the C4 menu (more than one).
//
// Grounded on edit_complete in editline_completion.c, which performs the
// same three-way dispatch around edit_generate_completions's return
// count.
func TriggerCompletion(
	dec *Decoder,
	gen CompletionGenerator,
	list *CandidateList,
	sink TerminalSink,
	view EditorView,
) error {
	list.Clear()
	if view.Pos() <= 0 {
		// No prefix to complete; the generator's opinion on an empty
		// input is irrelevant here (spec §4.5, edit_generate_completions's
		// "if (eb->pos <= 0) return;").
		return nil
	}
	if gen == nil {
		sink.Beep()
		return nil
	}

	count := gen.Generate(view.Input(), view.Pos(), maxTriggerCandidates, list)
	moreAvailable := count >= maxTriggerCandidates

	switch {
	case count == 0:
		sink.Beep()
		return nil
	case count == 1:
		view.StartModify()
		input, newPos := list.Apply(0, view.Input(), view.Pos())
		view.SetInput(input)
		view.SetPos(newPos)
		list.Clear()
		view.Refresh()
		return nil
	default:
		return RunMenu(dec, list, sink, view, gen, moreAvailable, dec.cfg)
	}
}
