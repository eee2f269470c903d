package lineedit

import (
	"strconv"

	"github.com/dpaneser/lineedit/internal/width"
)

// Column layout thresholds (spec §4.4), named after the constants in
// _examples/original_source/src/editline_completion.c
// (RP_DISPLAY3_*/RP_DISPLAY2_*) so the two stay easy to cross-reference.
const (
	display3Max   = 22
	display3Col   = 3 + display3Max
	display3Width = 3*display3Col + 2*2 // 79

	display2Max   = 35
	display2Col   = 3 + display2Max
	display2Width = 2*display2Col + 2 // 78
)

const selectedMarkerUTF8 = "→"
const selectedMarkerASCII = "*"

// RunMenu is the C4 completion menu driver. It is entered with >=2
// candidates already in list and interactive input owned by the caller;
// it exits by applying a selection, cancelling, or pushing back an
// unrecognised key for the outer loop to handle (spec §4.4).
//
// gen/moreAvailable support show-all mode: when the initial candidate
// count hit the trigger's cap, moreAvailable tells the menu it can ask gen
// to regenerate the full list (up to cfg.maxCompletions()) on request.
func RunMenu(
	dec *Decoder,
	list *CandidateList,
	sink TerminalSink,
	view EditorView,
	gen CompletionGenerator,
	moreAvailable bool,
	cfg Config,
) error {
	count := list.Count()
	selected := 0
	columns := 1
	perColumn := count

	for {
		countDisplayed, cols, perCol := renderMenu(list, sink, view, selected)
		columns, perColumn = cols, perCol
		view.Refresh()

		key, err := dec.ReadKey()
		if err != nil {
			list.Clear()
			return err
		}
		view.ExtraBuffer().Clear()

		base := key.Base()
		if base >= '1' && base <= '9' && int(base-'1') < count {
			selected = int(base - '1')
			key = KeySpace
			base = key.Base()
		}

		switch {
		case key == KeyTab || key == KeyDown:
			selected = (selected + 1) % countDisplayed
			continue
		case key == KeyUp:
			selected = (selected - 1 + countDisplayed) % countDisplayed
			continue
		case key == KeyRight:
			if columns > 1 && selected+perColumn < countDisplayed {
				selected += perColumn
			}
			continue
		case key == KeyLeft:
			if columns > 1 && selected-perColumn >= 0 {
				selected -= perColumn
			}
			continue
		case key == KeyHome:
			selected = 0
			continue
		case key == KeyEnd:
			selected = countDisplayed - 1
			continue
		case key == KeyF1:
			view.ShowHelp()
			continue
		case key == KeyEsc:
			list.Clear()
			view.Refresh()
			return nil
		case key == KeyEnter || key == KeySpace:
			view.StartModify()
			input, newPos := list.Apply(selected, view.Input(), view.Pos())
			view.SetInput(input)
			view.SetPos(newPos)
			list.Clear()
			view.Refresh()
			return nil
		case (key == KeyPageDown || key == KeyShiftTab || key == KeyTab.With(ModShift) || key == KeyLinefeed) && count > 9:
			showAll(dec, list, sink, view, gen, moreAvailable, cfg)
			list.Clear()
			return nil
		default:
			// Not a menu key: push it back for the outer event loop and
			// exit (spec §4.4's last row; spec §5 push-back-once rule).
			// Pushed back as the decoded KeyCode itself (not re-encoded
			// through the byte-level ByteBuffer), so sentinels, modifiers,
			// and non-ASCII runes all survive the round trip intact.
			dec.PushKey(key)
			list.Clear()
			return nil
		}
	}
}

// renderMenu lays out and writes one frame of the menu into the editor's
// scratch buffer, choosing a 3/2/1 column layout per spec §4.4. It
// returns the number of candidates actually displayed, the column count,
// and candidates per column.
func renderMenu(list *CandidateList, sink TerminalSink, view EditorView, selected int) (countDisplayed, columns, perColumn int) {
	extra := view.ExtraBuffer()
	extra.Clear()

	count := list.Count()
	twidth := sink.Width()
	isUTF8 := view.IsUTF8()
	maxW9 := maxDisplayWidth(list, 9, isUTF8)

	switch {
	case count > 3 && twidth > display3Width && maxW9 <= display3Max:
		countDisplayed = min(count, 9)
		columns, perColumn = 3, 3
		for row := 0; row < perColumn; row++ {
			if row > 0 {
				extra.Append("\n")
			}
			appendCell(extra, list, row, display3Col, selected, isUTF8)
			extra.Append("  ")
			appendCell(extra, list, perColumn+row, display3Col, selected, isUTF8)
			extra.Append("  ")
			appendCell(extra, list, 2*perColumn+row, display3Col, selected, isUTF8)
		}
	case count > 4 && twidth > display2Width && maxDisplayWidth(list, 8, isUTF8) <= display2Max:
		countDisplayed = min(count, 8)
		columns = 2
		if countDisplayed <= 6 {
			perColumn = 3
		} else {
			perColumn = 4
		}
		for row := 0; row < perColumn; row++ {
			if row > 0 {
				extra.Append("\n")
			}
			appendCell(extra, list, row, display2Col, selected, isUTF8)
			extra.Append("  ")
			appendCell(extra, list, perColumn+row, display2Col, selected, isUTF8)
		}
	default:
		countDisplayed = min(count, 9)
		columns, perColumn = 1, countDisplayed
		for i := 0; i < countDisplayed; i++ {
			if i > 0 {
				extra.Append("\n")
			}
			appendCell(extra, list, i, -1, selected, isUTF8)
		}
	}

	if count > countDisplayed {
		extra.Append("\n\x1b[90m(press shift-tab to see all further completions)\x1b[0m")
	}
	return countDisplayed, columns, perColumn
}

// appendCell renders one numbered completion cell, grounded on
// editor_append_completion in editline_completion.c. colWidth < 0 means
// "no fixed width" (the single-column list layout).
func appendCell(extra *ScratchBuffer, list *CandidateList, idx, colWidth, selected int, isUTF8 bool) {
	if idx < 0 || idx >= list.Count() {
		return
	}
	display := list.GetDisplay(idx)
	if display == "" {
		return
	}

	marker := " "
	if idx == selected {
		if isUTF8 {
			marker = selectedMarkerUTF8
		} else {
			marker = selectedMarkerASCII
		}
	}
	extra.Append("\x1b[90m")
	extra.Append(marker)
	extra.Append(strconv.Itoa(idx + 1))
	extra.Append(" \x1b[0m")

	w := colWidth
	if w > 0 {
		w -= 3 // the marker/number/space prefix just written
	}

	if w <= 0 && colWidth >= 0 {
		extra.Append(display)
		return
	}
	if colWidth < 0 {
		extra.Append(display)
		return
	}

	shown, truncated := width.Truncate(display, w, isUTF8)
	if truncated {
		extra.Append("...")
		shown, _ = width.Truncate(display, w-3, isUTF8)
	}
	extra.Append(shown)
	pad := w - width.String(shown, isUTF8)
	for ; pad > 0; pad-- {
		extra.Append(" ")
	}
}

func maxDisplayWidth(list *CandidateList, n int, isUTF8 bool) int {
	max := 0
	count := list.Count()
	if n > count {
		n = count
	}
	for i := 0; i < n; i++ {
		if d := list.GetDisplay(i); d != "" {
			if w := width.String(d, isUTF8); w > max {
				max = w
			}
		}
	}
	return max
}

// showAll renders every candidate on its own line (spec §4.4's show-all
// mode), regenerating the full list from gen first if the trigger
// indicated more candidates were available than the initial cap.
func showAll(dec *Decoder, list *CandidateList, sink TerminalSink, view EditorView, gen CompletionGenerator, moreAvailable bool, cfg Config) {
	count := list.Count()
	if moreAvailable && gen != nil {
		list.Clear()
		count = gen.Generate(view.Input(), view.Pos(), cfg.maxCompletions(), list)
	}

	rc := sink.CursorRowCol()
	view.Clear()
	view.WritePrompt()
	_, _ = sink.Write([]byte("\r\n"))

	for i := 0; i < count; i++ {
		if d := list.GetDisplay(i); d != "" {
			_, _ = sink.Write([]byte(d))
			_, _ = sink.Write([]byte("\r\n"))
		}
	}
	if count >= cfg.maxCompletions() {
		_, _ = sink.Write([]byte("\x1b[90m... and more.\x1b[0m\r\n"))
	}
	for i := 0; i < rc.Row+1; i++ {
		_, _ = sink.Write([]byte(" \r\n"))
	}
	view.SetCurRows(0)
	view.Refresh()
}

