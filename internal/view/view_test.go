package view

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cnharrison/jsonview/internal/render"
)

const nested = `{
  "a": {
    "b": [
      1
    ],
    "c": 2
  },
  "d": 3
}`

type lineState struct {
	hidden    bool
	collapsed bool
	content   string
}

// recordingSurface keeps per-line state and counts writes.
type recordingSurface struct {
	lines  []lineState
	writes int
	hides  int
}

func newRecordingSurface(lineHTML []string) *recordingSurface {
	s := &recordingSurface{lines: make([]lineState, len(lineHTML))}
	for i, html := range lineHTML {
		s.lines[i].content = html
	}
	return s
}

func (s *recordingSurface) SetLineHidden(line int, hidden bool) {
	s.lines[line-1].hidden = hidden
	s.writes++
	s.hides++
}

func (s *recordingSurface) SetLineContent(line int, html string) {
	s.lines[line-1].content = html
	s.writes++
}

func (s *recordingSurface) SetFoldCollapsed(line int, collapsed bool) {
	s.lines[line-1].collapsed = collapsed
	s.writes++
}

func (s *recordingSurface) snapshot() []lineState {
	out := make([]lineState, len(s.lines))
	copy(out, s.lines)
	return out
}

func setup(t *testing.T) (render.FoldIndex, render.Formatted) {
	t.Helper()
	folds := render.ComputeFoldRanges(nested)
	require.Equal(t, []int{1, 2, 3}, folds.Starts())
	return folds, render.BuildFormattedHTML(nested, folds)
}

func TestFoldStateToggle(t *testing.T) {
	state := NewFoldState()
	assert.True(t, state.Toggle(3))
	assert.True(t, state.IsCollapsed(3))
	assert.False(t, state.Toggle(3))
	assert.Equal(t, 0, state.Len())

	state.SetCollapsed(2, true)
	state.SetCollapsed(1, true)
	assert.Equal(t, []int{1, 2}, state.Collapsed())
	state.ExpandAll()
	assert.Empty(t, state.Collapsed())
}

func TestHiddenVector(t *testing.T) {
	folds, _ := setup(t)
	state := NewFoldState()

	assert.Equal(t, make([]bool, 9), HiddenVector(folds, state, 9))

	state.SetCollapsed(2, true)
	assert.Equal(t,
		[]bool{false, false, true, true, true, true, true, false, false},
		HiddenVector(folds, state, 9))

	state.SetCollapsed(99, true)
	assert.Equal(t,
		[]bool{false, false, true, true, true, true, true, false, false},
		HiddenVector(folds, state, 9), "unknown starts are ignored")
}

func TestDiffHidden(t *testing.T) {
	assert.Nil(t, DiffHidden([]bool{true, false}, []bool{true, false}))
	assert.Equal(t, []int{0, 2}, DiffHidden([]bool{true, false, false}, []bool{false, false, true}))
	assert.Equal(t, []int{1}, DiffHidden(nil, []bool{false, true}))
}

func TestViewerCollapseExpandIsNoOp(t *testing.T) {
	folds, rendered := setup(t)
	viewer := NewViewer(folds, rendered.LineHTML)
	surface := newRecordingSurface(rendered.LineHTML)
	state := NewFoldState()

	viewer.Apply(surface, state)
	before := surface.snapshot()

	state.Toggle(3)
	changed := viewer.Apply(surface, state)
	assert.Equal(t, 2, changed)
	assert.True(t, surface.lines[3].hidden)
	assert.True(t, surface.lines[4].hidden)
	assert.True(t, surface.lines[2].collapsed)
	assert.Equal(t, folds[3].CollapsedHTML, surface.lines[2].content)

	state.Toggle(3)
	viewer.Apply(surface, state)
	assert.Equal(t, before, surface.snapshot())
}

func TestViewerOnlyWritesChangedLines(t *testing.T) {
	folds, rendered := setup(t)
	viewer := NewViewer(folds, rendered.LineHTML)
	surface := newRecordingSurface(rendered.LineHTML)
	state := NewFoldState()

	state.Toggle(2)
	viewer.Apply(surface, state)
	assert.Equal(t, 5, surface.hides)

	surface.hides = 0
	state.Toggle(3)
	assert.Equal(t, 0, viewer.Apply(surface, state), "inner fold already hidden by its parent")
	assert.Equal(t, 0, surface.hides)
	assert.True(t, viewer.IsHidden(4))
}

func TestCollapseAllThenExpandAllRestores(t *testing.T) {
	folds, rendered := setup(t)
	viewer := NewViewer(folds, rendered.LineHTML)
	surface := newRecordingSurface(rendered.LineHTML)
	state := NewFoldState()

	viewer.Apply(surface, state)
	before := surface.snapshot()

	state.CollapseAll(folds)
	viewer.Apply(surface, state)
	for i := 1; i < 9; i++ {
		assert.True(t, surface.lines[i].hidden, "line %d", i+1)
	}
	assert.False(t, surface.lines[0].hidden)
	assert.Equal(t, "<span class=\"json-brace\">{</span> ... <span class=\"json-brace\">}</span>", surface.lines[0].content)

	state.ExpandAll()
	viewer.Apply(surface, state)
	assert.Equal(t, before, surface.snapshot())
	assert.Equal(t, make([]bool, 9), viewer.Hidden())
}

func TestMergeIntervals(t *testing.T) {
	tests := []struct {
		name string
		in   []LineInterval
		want []LineInterval
	}{
		{name: "empty", in: nil, want: nil},
		{name: "reversed normalised", in: []LineInterval{{5, 2}}, want: []LineInterval{{2, 5}}},
		{name: "adjacent merged", in: []LineInterval{{1, 2}, {3, 4}}, want: []LineInterval{{1, 4}}},
		{name: "gap kept", in: []LineInterval{{6, 7}, {1, 2}}, want: []LineInterval{{1, 2}, {6, 7}}},
		{name: "overlap", in: []LineInterval{{1, 5}, {2, 3}, {4, 8}}, want: []LineInterval{{1, 8}}},
		{name: "non-positive dropped", in: []LineInterval{{0, 3}, {4, 4}}, want: []LineInterval{{4, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MergeIntervals(tt.in))
		})
	}
}

func TestResolveCopyTextVisibleInterval(t *testing.T) {
	folds, _ := setup(t)
	lines := strings.Split(nested, "\n")

	for start := 1; start <= 9; start++ {
		for end := start; end <= 9; end++ {
			got, ok := ResolveCopyText(CopyInput{
				Intervals:     []LineInterval{{start, end}},
				FormattedText: nested,
				Folds:         folds,
				State:         NewFoldState(),
			})
			require.True(t, ok)
			assert.Equal(t, strings.Join(lines[start-1:end], "\n"), got)
		}
	}
}

func TestResolveCopyTextThroughNestedFolds(t *testing.T) {
	folds, _ := setup(t)
	lines := strings.Split(nested, "\n")

	state := NewFoldState()
	state.SetCollapsed(3, true)

	got, ok := ResolveCopyText(CopyInput{
		Intervals:     []LineInterval{{2, 3}},
		FormattedText: nested,
		Folds:         folds,
		State:         state,
	})
	require.True(t, ok)
	assert.Equal(t, strings.Join(lines[1:5], "\n"), got, "selection ends on the collapsed summary")

	state.SetCollapsed(2, true)
	got, ok = ResolveCopyText(CopyInput{
		Intervals:     []LineInterval{{2, 2}},
		FormattedText: nested,
		Folds:         folds,
		State:         state,
	})
	require.True(t, ok)
	assert.Equal(t, strings.Join(lines[1:7], "\n"), got)
}

func TestResolveCopyTextDeclines(t *testing.T) {
	folds, _ := setup(t)

	_, ok := ResolveCopyText(CopyInput{ShowingRaw: true, Intervals: []LineInterval{{1, 2}}, FormattedText: nested, Folds: folds})
	assert.False(t, ok)
	_, ok = ResolveCopyText(CopyInput{FormattedText: nested, Folds: folds})
	assert.False(t, ok)
	_, ok = ResolveCopyText(CopyInput{Intervals: []LineInterval{{1, 2}}})
	assert.False(t, ok)
	_, ok = ResolveCopyText(CopyInput{Intervals: []LineInterval{{20, 30}}, FormattedText: nested, Folds: folds})
	assert.False(t, ok)
}

type detachedRange struct{ lo, hi int }

func (r detachedRange) Endpoints() (int, int, bool) { return 0, 0, false }

func (r detachedRange) IntersectsLine(line int) bool { return line >= r.lo && line <= r.hi }

func TestLineIntervalsForSelection(t *testing.T) {
	lines := []int{1, 2, 3, 4, 5, 6, 7, 8, 9}

	got := LineIntervalsForSelection([]SelectionRange{LineSpan{Start: 4, End: 2}, nil, detachedRange{6, 7}}, lines)
	assert.Equal(t, []LineInterval{{2, 4}, {6, 7}}, got)

	got = LineIntervalsForSelection([]SelectionRange{detachedRange{20, 30}}, lines)
	assert.Nil(t, got)
}
