package page

import (
	"strings"

	"github.com/cnharrison/jsonview/internal/render"
)

// DOM is an in-memory json-line structure that records the patches a viewer
// applies and serialises the result with the same markup the builder emits.
type DOM struct {
	lines   []render.Line
	patches int
}

// NewDOM builds the initial, fully expanded structure for a rendered document.
func NewDOM(rendered render.Formatted, folds render.FoldIndex) *DOM {
	lines := make([]render.Line, len(rendered.LineHTML))
	for i, content := range rendered.LineHTML {
		_, hasFold := folds[i+1]
		lines[i] = render.Line{No: i + 1, Content: content, HasFold: hasFold}
	}
	return &DOM{lines: lines}
}

func (d *DOM) line(n int) *render.Line {
	if n < 1 || n > len(d.lines) {
		return nil
	}
	return &d.lines[n-1]
}

// SetLineHidden implements view.Surface.
func (d *DOM) SetLineHidden(n int, hidden bool) {
	if l := d.line(n); l != nil {
		l.Hidden = hidden
		d.patches++
	}
}

// SetLineContent implements view.Surface.
func (d *DOM) SetLineContent(n int, html string) {
	if l := d.line(n); l != nil {
		l.Content = html
		d.patches++
	}
}

// SetFoldCollapsed implements view.Surface.
func (d *DOM) SetFoldCollapsed(n int, collapsed bool) {
	if l := d.line(n); l != nil {
		l.Collapsed = collapsed
		d.patches++
	}
}

// Line returns the state of a 1-based line.
func (d *DOM) Line(n int) (render.Line, bool) {
	if l := d.line(n); l != nil {
		return *l, true
	}
	return render.Line{}, false
}

// Patches counts surface writes since creation.
func (d *DOM) Patches() int {
	return d.patches
}

// VisibleLines returns the numbers of the lines not hidden.
func (d *DOM) VisibleLines() []int {
	visible := make([]int, 0, len(d.lines))
	for _, l := range d.lines {
		if !l.Hidden {
			visible = append(visible, l.No)
		}
	}
	return visible
}

// HTML serialises every line container.
func (d *DOM) HTML() string {
	var b strings.Builder
	for _, l := range d.lines {
		render.WriteLine(&b, l)
	}
	return b.String()
}
