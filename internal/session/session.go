package session

import (
	"github.com/cnharrison/jsonview/internal/format"
	"github.com/cnharrison/jsonview/internal/view"
)

// Session is the display state of one rendered body: raw/formatted mode and the
// collapsed folds. All mutations are synchronous and complete within one call,
// so callers never observe a half-applied transition.
type Session struct {
	doc        *Document
	folds      *view.FoldState
	formatter  *format.ContentFormatter
	showingRaw bool
}

// New creates a session over doc. Non-JSON documents start, and stay, raw.
func New(doc *Document, formatter *format.ContentFormatter) *Session {
	return &Session{
		doc:        doc,
		folds:      view.NewFoldState(),
		formatter:  formatter,
		showingRaw: !doc.IsJSON,
	}
}

// Document returns the session's document.
func (s *Session) Document() *Document {
	return s.doc
}

// FoldState returns the collapsed-fold state.
func (s *Session) FoldState() *view.FoldState {
	return s.folds
}

// ShowingRaw reports whether the raw text is displayed.
func (s *Session) ShowingRaw() bool {
	return s.showingRaw
}

// ToggleRaw switches between raw and formatted display and reports the new
// mode. Fold state survives the switch. Non-JSON documents cannot leave raw.
func (s *Session) ToggleRaw() bool {
	if !s.doc.IsJSON {
		s.showingRaw = true
		return true
	}
	s.showingRaw = !s.showingRaw
	return s.showingRaw
}

// FoldControlsEnabled reports whether collapse/expand-all are usable.
func (s *Session) FoldControlsEnabled() bool {
	return !s.showingRaw && len(s.doc.Folds) > 0
}

// ToggleFold flips the fold starting at line. It returns false when there is no
// fold there or the view is raw.
func (s *Session) ToggleFold(line int) bool {
	if s.showingRaw {
		return false
	}
	if _, ok := s.doc.Folds[line]; !ok {
		return false
	}
	s.folds.Toggle(line)
	return true
}

// CollapseAll collapses every fold; it is a no-op when fold controls are disabled.
func (s *Session) CollapseAll() bool {
	if !s.FoldControlsEnabled() {
		return false
	}
	s.folds.CollapseAll(s.doc.Folds)
	return true
}

// ExpandAll expands every fold; it is a no-op when fold controls are disabled.
func (s *Session) ExpandAll() bool {
	if !s.FoldControlsEnabled() {
		return false
	}
	s.folds.ExpandAll()
	return true
}

// RevealLine expands every collapsed fold hiding line and reports whether any
// fold changed.
func (s *Session) RevealLine(line int) bool {
	changed := false
	for _, start := range s.folds.Collapsed() {
		r, ok := s.doc.Folds[start]
		if !ok || line <= r.StartLine || line > r.EndLine {
			continue
		}
		s.folds.SetCollapsed(start, false)
		changed = true
	}
	return changed
}

// NewViewer creates the presentation cache for a freshly built formatted surface.
func (s *Session) NewViewer() *view.Viewer {
	return view.NewViewer(s.doc.Folds, s.doc.Rendered.LineHTML)
}

// Apply patches surface to the current fold state through viewer.
func (s *Session) Apply(viewer *view.Viewer, surface view.Surface) int {
	return viewer.Apply(surface, s.folds)
}

// ToggleLabel is the label of the raw/formatted button: it names the mode the
// button switches to.
func (s *Session) ToggleLabel() string {
	if s.showingRaw {
		return "Formatted"
	}
	return "Raw"
}

// LineCountLabel describes the displayed line count, e.g. "1,204 lines".
func (s *Session) LineCountLabel() string {
	if s.showingRaw {
		return s.formatter.FormatLineCount(format.CountLines(s.doc.Original))
	}
	return s.formatter.FormatLineCount(s.doc.LineCount())
}

// CopyText returns the whole formatted document, the payload of Copy and
// Download.
func (s *Session) CopyText() string {
	return s.doc.Formatted
}

// MinifiedText returns the document without insignificant whitespace.
func (s *Session) MinifiedText() string {
	if !s.doc.IsJSON {
		return s.doc.Original
	}
	return s.formatter.Minify(s.doc.Formatted)
}

// CopySelection resolves a selection over the formatted lines to the canonical
// text it stands for.
func (s *Session) CopySelection(ranges []view.SelectionRange) (string, bool) {
	lines := make([]int, s.doc.LineCount())
	for i := range lines {
		lines[i] = i + 1
	}
	return view.ResolveCopyText(view.CopyInput{
		ShowingRaw:    s.showingRaw,
		Intervals:     view.LineIntervalsForSelection(ranges, lines),
		FormattedText: s.doc.Formatted,
		Folds:         s.doc.Folds,
		State:         s.folds,
	})
}
