package view

import (
	"sort"

	"github.com/cnharrison/jsonview/internal/render"
)

// FoldState is the set of collapsed fold start lines. It is presentation state:
// it outlives raw/formatted toggles and is never part of the document.
type FoldState struct {
	collapsed map[int]struct{}
}

// NewFoldState creates a state with everything expanded
func NewFoldState() *FoldState {
	return &FoldState{collapsed: make(map[int]struct{})}
}

// Toggle flips the collapsed state of the fold starting at start and reports the
// new state.
func (s *FoldState) Toggle(start int) bool {
	if _, ok := s.collapsed[start]; ok {
		delete(s.collapsed, start)
		return false
	}
	s.collapsed[start] = struct{}{}
	return true
}

// SetCollapsed forces the state of one fold.
func (s *FoldState) SetCollapsed(start int, collapsed bool) {
	if collapsed {
		s.collapsed[start] = struct{}{}
		return
	}
	delete(s.collapsed, start)
}

// CollapseAll collapses every range in the index.
func (s *FoldState) CollapseAll(index render.FoldIndex) {
	for start := range index {
		s.collapsed[start] = struct{}{}
	}
}

// ExpandAll clears the set.
func (s *FoldState) ExpandAll() {
	clear(s.collapsed)
}

// IsCollapsed reports whether the fold starting at start is collapsed.
func (s *FoldState) IsCollapsed(start int) bool {
	_, ok := s.collapsed[start]
	return ok
}

// Len returns the number of collapsed folds.
func (s *FoldState) Len() int {
	return len(s.collapsed)
}

// Collapsed returns the collapsed start lines in ascending order.
func (s *FoldState) Collapsed() []int {
	starts := make([]int, 0, len(s.collapsed))
	for start := range s.collapsed {
		starts = append(starts, start)
	}
	sort.Ints(starts)
	return starts
}

// HiddenVector marks lines start+1..end of every collapsed range as hidden.
// Index 0 corresponds to line 1.
func HiddenVector(index render.FoldIndex, state *FoldState, lineCount int) []bool {
	hidden := make([]bool, lineCount)
	if state == nil {
		return hidden
	}
	for start := range state.collapsed {
		r, ok := index[start]
		if !ok {
			continue
		}
		for line := max(r.StartLine+1, 1); line <= min(r.EndLine, lineCount); line++ {
			hidden[line-1] = true
		}
	}
	return hidden
}

// DiffHidden returns the 0-based indices whose hidden state differs. A shorter
// prev is treated as all visible beyond its end.
func DiffHidden(prev, next []bool) []int {
	var changed []int
	for i, h := range next {
		was := i < len(prev) && prev[i]
		if was != h {
			changed = append(changed, i)
		}
	}
	return changed
}
