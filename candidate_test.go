package lineedit

import (
	"reflect"
	"testing"
)

func TestCandidateListApply(t *testing.T) {
	td := []struct {
		name         string
		input        string
		pos          int
		cand         Candidate
		wantInput    string
		wantPos      int
	}{
		{
			name:      "simple insertion, no deletion",
			input:     "fo",
			pos:       2,
			cand:      Candidate{Replacement: "o", DeleteBefore: 0, DeleteAfter: 0},
			wantInput: "foo",
			wantPos:   3,
		},
		{
			name:      "replace prefix before cursor",
			input:     "pri",
			pos:       3,
			cand:      Candidate{Replacement: "print", DeleteBefore: 3},
			wantInput: "print",
			wantPos:   5,
		},
		{
			name:      "replace with suffix retained",
			input:     "prix()",
			pos:       3,
			cand:      Candidate{Replacement: "print", DeleteBefore: 3, DeleteAfter: 0},
			wantInput: "printx()",
			wantPos:   5,
		},
		{
			name:      "delete before and after the cursor",
			input:     "xxfooxx",
			pos:       5,
			cand:      Candidate{Replacement: "bar", DeleteBefore: 3, DeleteAfter: 2},
			wantInput: "xxbar",
			wantPos:   5,
		},
	}

	var list CandidateList
	for _, tc := range td {
		t.Run(tc.name, func(t *testing.T) {
			list.Clear()
			list.Add(tc.cand)
			gotInput, gotPos := list.Apply(0, []byte(tc.input), tc.pos)
			if string(gotInput) != tc.wantInput {
				t.Errorf("input = %q, want %q", gotInput, tc.wantInput)
			}
			if gotPos != tc.wantPos {
				t.Errorf("pos = %d, want %d", gotPos, tc.wantPos)
			}
		})
	}
}

func TestCandidateListApplyOutOfRange(t *testing.T) {
	var list CandidateList
	list.Add(Candidate{Replacement: "x"})
	input := []byte("abc")
	gotInput, gotPos := list.Apply(5, input, 2)
	if !reflect.DeepEqual(gotInput, input) || gotPos != 2 {
		t.Errorf("out-of-range Apply should be a no-op, got (%q, %d)", gotInput, gotPos)
	}
}

func TestCandidateListClearAndCount(t *testing.T) {
	var list CandidateList
	if got := list.Count(); got != 0 {
		t.Fatalf("Count() = %d on empty list, want 0", got)
	}
	list.Add(Candidate{Display: "a"})
	list.Add(Candidate{Display: "b"})
	if got := list.Count(); got != 2 {
		t.Fatalf("Count() = %d, want 2", got)
	}
	list.Clear()
	if got := list.Count(); got != 0 {
		t.Fatalf("Count() after Clear() = %d, want 0", got)
	}
}

func TestCandidateListGetDisplaySkipsEmpty(t *testing.T) {
	var list CandidateList
	list.Add(Candidate{Display: "", Replacement: "x"})
	if got := list.GetDisplay(0); got != "" {
		t.Errorf("GetDisplay(0) = %q, want empty", got)
	}
	if _, ok := list.Get(0); !ok {
		t.Error("Get(0) should still report ok for an empty-display candidate")
	}
}
