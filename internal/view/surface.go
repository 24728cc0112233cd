package view

// Surface is the rendered line structure a Viewer patches. Line numbers are
// 1-based. Implementations hold their own line handles; the viewer only tells
// them what changed.
type Surface interface {
	// SetLineHidden shows or hides a whole line container.
	SetLineHidden(line int, hidden bool)
	// SetLineContent replaces the highlighted content of a line.
	SetLineContent(line int, html string)
	// SetFoldCollapsed updates the collapsed class and the toggle control's
	// accessibility state of a fold-owning line.
	SetFoldCollapsed(line int, collapsed bool)
}
