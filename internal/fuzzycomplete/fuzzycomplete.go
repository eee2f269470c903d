// Package fuzzycomplete provides a demo CompletionGenerator backed by a
// static word list, matched with github.com/sahilm/fuzzy.
//
// Grounded on DefaultFilter in
// _examples/charmbracelet-bubbletea/bubbles/list/list.go, which calls
// fuzzy.Find(term, targets) and sorts the resulting ranks the same way.
package fuzzycomplete

import (
	"sort"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/dpaneser/lineedit"
)

// Generator completes the word under the cursor against a fixed
// vocabulary. It implements lineedit.CompletionGenerator.
type Generator struct {
	Words []string
}

// New returns a Generator over words. The slice is not copied; callers
// should not mutate it concurrently with Generate.
func New(words []string) *Generator {
	return &Generator{Words: words}
}

// Generate implements lineedit.CompletionGenerator: it fuzzy-matches the
// word immediately before pos against g.Words and appends up to cap
// candidates as a CandidateList, ordered by fuzzy.Find's ranking.
func (g *Generator) Generate(input []byte, pos int, cap int, list *lineedit.CandidateList) int {
	start := wordStart(input, pos)
	term := string(input[start:pos])
	if term == "" {
		return 0
	}

	ranks := fuzzy.Find(term, g.Words)
	sort.Stable(ranks)

	n := 0
	for _, r := range ranks {
		if n >= cap {
			break
		}
		word := g.Words[r.Index]
		list.Add(lineedit.Candidate{
			Display:      word,
			Replacement:  word,
			DeleteBefore: pos - start,
		})
		n++
	}
	return n
}

// wordStart returns the byte offset of the start of the run of bytes
// ending at pos that contains no break byte (whitespace, brackets, or
// quotes; see isBreak).
func wordStart(input []byte, pos int) int {
	i := pos
	for i > 0 && !isBreak(input[i-1]) {
		i--
	}
	return i
}

func isBreak(b byte) bool {
	return strings.IndexByte(" \t\n()[]{}\"'", b) >= 0
}
