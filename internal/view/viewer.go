package view

import (
	"github.com/cnharrison/jsonview/internal/render"
)

// Viewer owns the line presentation cache for one rendered surface: the
// per-line HTML, the collapsed summaries and the previous frame's hidden vector.
type Viewer struct {
	folds    render.FoldIndex
	lineHTML []string
	hidden   []bool
	starts   []int
}

// NewViewer creates a viewer for a rendered document. The surface is assumed to
// start fully expanded with every line visible.
func NewViewer(folds render.FoldIndex, lineHTML []string) *Viewer {
	return &Viewer{
		folds:    folds,
		lineHTML: lineHTML,
		hidden:   make([]bool, len(lineHTML)),
		starts:   folds.Starts(),
	}
}

// LineCount returns the number of document lines.
func (v *Viewer) LineCount() int {
	return len(v.lineHTML)
}

// Hidden returns a copy of the current hidden vector.
func (v *Viewer) Hidden() []bool {
	out := make([]bool, len(v.hidden))
	copy(out, v.hidden)
	return out
}

// IsHidden reports whether a 1-based line is hidden in the last applied frame.
func (v *Viewer) IsHidden(line int) bool {
	return line >= 1 && line <= len(v.hidden) && v.hidden[line-1]
}

// Reset forgets the previous frame; the next Apply treats the surface as freshly
// built and fully visible.
func (v *Viewer) Reset() {
	v.hidden = make([]bool, len(v.lineHTML))
}

// Apply brings surface in line with state. Only lines whose hidden state changed
// since the previous frame are shown or hidden; fold-owning lines always get
// their class, content and toggle refreshed. It returns the number of lines
// whose visibility changed.
func (v *Viewer) Apply(surface Surface, state *FoldState) int {
	next := HiddenVector(v.folds, state, len(v.lineHTML))
	changed := DiffHidden(v.hidden, next)
	for _, i := range changed {
		surface.SetLineHidden(i+1, next[i])
	}
	v.hidden = next

	for _, start := range v.starts {
		if start < 1 || start > len(v.lineHTML) {
			continue
		}
		collapsed := state != nil && state.IsCollapsed(start)
		surface.SetFoldCollapsed(start, collapsed)
		if collapsed {
			surface.SetLineContent(start, v.folds[start].CollapsedHTML)
		} else {
			surface.SetLineContent(start, v.contentFor(start))
		}
	}
	return len(changed)
}

func (v *Viewer) contentFor(line int) string {
	if html := v.lineHTML[line-1]; html != "" {
		return html
	}
	return "\u200b"
}
