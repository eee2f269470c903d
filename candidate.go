package lineedit

// Candidate is one completion proposal (spec §3): a display string (which
// may be empty, meaning "skip this entry when rendering/iterating for
// display, but keep its index") and a replacement recipe applied relative
// to the cursor.
type Candidate struct {
	// Display is the string shown in the menu. An empty Display means the
	// candidate has no display representation; it is skipped when
	// rendering or walking displayable entries but its index is still
	// valid for CandidateList.Get/Apply.
	Display string

	// Replacement is the text that replaces the prefix starting at the
	// offset implied by DeleteBefore when the candidate is applied.
	Replacement string

	// DeleteBefore and DeleteAfter are byte counts removed around the
	// cursor position on Apply.
	DeleteBefore int
	DeleteAfter  int
}

// HasDisplay reports whether the candidate has a non-empty display
// string.
func (c Candidate) HasDisplay() bool {
	return c.Display != ""
}

// CandidateList is an ordered, 0-based sequence of Candidate (spec §3,
// C3). It is regenerated on each completion request and cleared when the
// menu exits for any reason.
type CandidateList struct {
	items []Candidate
}

// Count returns the number of candidates.
func (l *CandidateList) Count() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// Get returns the candidate at i, or the zero Candidate and false if i is
// out of range.
func (l *CandidateList) Get(i int) (Candidate, bool) {
	if l == nil || i < 0 || i >= len(l.items) {
		return Candidate{}, false
	}
	return l.items[i], true
}

// GetDisplay returns the display string of candidate i, or "" if i is out
// of range or the candidate has no display (spec §4.3).
func (l *CandidateList) GetDisplay(i int) string {
	c, ok := l.Get(i)
	if !ok {
		return ""
	}
	return c.Display
}

// Add appends a candidate; used by CompletionGenerator implementations
// populating the list.
func (l *CandidateList) Add(c Candidate) {
	l.items = append(l.items, c)
}

// Clear empties the list. Called whenever the menu exits for any reason
// (apply, cancel, or push-back) per spec §4.4.
func (l *CandidateList) Clear() {
	l.items = l.items[:0]
}

// Apply modifies input in place, replacing the region
// [pos-DeleteBefore, pos+DeleteAfter) of index i's recipe with its
// Replacement, and returns the new cursor byte offset: the insertion end
// of the replacement. This is atomic from the editor's viewpoint (spec
// §4.3) — the caller is expected to call its refresh hook afterwards.
func (l *CandidateList) Apply(i int, input []byte, pos int) ([]byte, int) {
	c, ok := l.Get(i)
	if !ok {
		return input, pos
	}
	start := pos - c.DeleteBefore
	if start < 0 {
		start = 0
	}
	end := pos + c.DeleteAfter
	if end > len(input) {
		end = len(input)
	}

	out := make([]byte, 0, start+len(c.Replacement)+(len(input)-end))
	out = append(out, input[:start]...)
	out = append(out, c.Replacement...)
	newPos := len(out)
	out = append(out, input[end:]...)
	return out, newPos
}

// CompletionGenerator populates list with up to cap candidates for the
// given input/cursor position and returns the actual count (spec §6). It
// is an out-of-scope collaborator the core only consumes; see
// internal/fuzzycomplete for a default implementation.
type CompletionGenerator interface {
	Generate(input []byte, pos int, cap int, list *CandidateList) int
}
