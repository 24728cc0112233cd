package ui

import (
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/rivo/tview"
	"golang.org/x/net/html"

	"github.com/cnharrison/jsonview/internal/render"
	"github.com/cnharrison/jsonview/internal/theme"
	"github.com/cnharrison/jsonview/internal/view"
)

const (
	glyphExpanded  = '▾'
	glyphCollapsed = '▸'
	scrollStep     = 3
	columnStep     = 8
)

// segment is a run of line content drawn in one style.
type segment struct {
	Text string
	Kind render.TokenKind
	Link bool
}

type lineState struct {
	hidden    bool
	collapsed bool
	hasFold   bool
	segments  []segment
}

// LineView draws a formatted document one line per row behind a fold gutter.
// It is a view.Surface: the same patches that drive the HTML page drive it.
type LineView struct {
	*tview.Box

	lines   []lineState
	visible []int
	parsed  map[string][]segment
	palette theme.Palette

	cursor int
	anchor int
	offset int
	column int
	height int

	onToggle func(line int)
}

var _ view.Surface = (*LineView)(nil)

// NewLineView builds a fully expanded view over the rendered line HTML.
func NewLineView(lineHTML []string, folds render.FoldIndex) *LineView {
	lv := &LineView{
		Box:    tview.NewBox(),
		lines:  make([]lineState, len(lineHTML)),
		parsed: make(map[string][]segment),
		cursor: 1,
	}
	for i, content := range lineHTML {
		_, hasFold := folds[i+1]
		lv.lines[i] = lineState{hasFold: hasFold, segments: lv.parse(content)}
	}
	if len(lineHTML) == 0 {
		lv.cursor = 0
	}
	return lv
}

// SetToggleFunc sets the handler called when a fold glyph is clicked.
func (lv *LineView) SetToggleFunc(handler func(line int)) *LineView {
	lv.onToggle = handler
	return lv
}

// SetPalette changes the colors used for drawing.
func (lv *LineView) SetPalette(p theme.Palette) *LineView {
	lv.palette = p
	lv.SetBackgroundColor(p.Background)
	return lv
}

// SetLineHidden implements view.Surface.
func (lv *LineView) SetLineHidden(line int, hidden bool) {
	if st := lv.state(line); st != nil && st.hidden != hidden {
		st.hidden = hidden
		lv.visible = nil
	}
}

// SetLineContent implements view.Surface.
func (lv *LineView) SetLineContent(line int, content string) {
	if st := lv.state(line); st != nil {
		st.segments = lv.parse(content)
	}
}

// SetFoldCollapsed implements view.Surface.
func (lv *LineView) SetFoldCollapsed(line int, collapsed bool) {
	if st := lv.state(line); st != nil {
		st.collapsed = collapsed
	}
}

func (lv *LineView) state(line int) *lineState {
	if line < 1 || line > len(lv.lines) {
		return nil
	}
	return &lv.lines[line-1]
}

// LineCount returns the number of document lines.
func (lv *LineView) LineCount() int {
	return len(lv.lines)
}

// Text returns the plain text currently shown for a line.
func (lv *LineView) Text(line int) string {
	st := lv.state(line)
	if st == nil {
		return ""
	}
	var b strings.Builder
	for _, seg := range st.segments {
		b.WriteString(seg.Text)
	}
	return b.String()
}

func (lv *LineView) lineSegments(line int) []segment {
	if st := lv.state(line); st != nil {
		return st.segments
	}
	return nil
}

// IsHidden reports whether a line is currently hidden.
func (lv *LineView) IsHidden(line int) bool {
	st := lv.state(line)
	return st != nil && st.hidden
}

// IsCollapsed reports whether a fold-owning line shows its summary.
func (lv *LineView) IsCollapsed(line int) bool {
	st := lv.state(line)
	return st != nil && st.collapsed
}

// VisibleLines returns the line numbers of all shown lines in order.
func (lv *LineView) VisibleLines() []int {
	if lv.visible == nil {
		lv.visible = make([]int, 0, len(lv.lines))
		for i, st := range lv.lines {
			if !st.hidden {
				lv.visible = append(lv.visible, i+1)
			}
		}
	}
	return lv.visible
}

// Cursor returns the current line, 0 for an empty document.
func (lv *LineView) Cursor() int {
	return lv.cursor
}

// SetCursor moves the cursor to line, or to the nearest shown line above it.
func (lv *LineView) SetCursor(line int) {
	if len(lv.lines) == 0 {
		return
	}
	lv.cursor = max(1, min(line, len(lv.lines)))
	lv.Reveal()
}

// Reveal moves a cursor left on a hidden line up to the collapsed line that
// hides it.
func (lv *LineView) Reveal() {
	for lv.cursor > 1 && lv.IsHidden(lv.cursor) {
		lv.cursor--
	}
}

// MoveBy moves the cursor delta shown lines down (negative: up).
func (lv *LineView) MoveBy(delta int) {
	visible := lv.VisibleLines()
	if len(visible) == 0 {
		return
	}
	idx := lv.visibleIndex(visible)
	idx = max(0, min(idx+delta, len(visible)-1))
	lv.cursor = visible[idx]
}

// PageBy moves the cursor by half a screen per step.
func (lv *LineView) PageBy(steps int) {
	lv.MoveBy(steps * max(1, lv.height/2))
}

// Top moves to the first line.
func (lv *LineView) Top() {
	if visible := lv.VisibleLines(); len(visible) > 0 {
		lv.cursor = visible[0]
	}
}

// Bottom moves to the last shown line.
func (lv *LineView) Bottom() {
	if visible := lv.VisibleLines(); len(visible) > 0 {
		lv.cursor = visible[len(visible)-1]
	}
}

// ScrollColumns shifts the content horizontally.
func (lv *LineView) ScrollColumns(delta int) {
	lv.column = max(0, lv.column+delta)
}

func (lv *LineView) visibleIndex(visible []int) int {
	for i, line := range visible {
		if line >= lv.cursor {
			return i
		}
	}
	return len(visible) - 1
}

// StartSelection anchors a line selection at the cursor.
func (lv *LineView) StartSelection() {
	lv.anchor = lv.cursor
}

// ClearSelection drops the selection.
func (lv *LineView) ClearSelection() {
	lv.anchor = 0
}

// Selecting reports whether a selection is active.
func (lv *LineView) Selecting() bool {
	return lv.anchor > 0
}

// Selection returns the selected span, or the cursor line when nothing is
// selected.
func (lv *LineView) Selection() view.LineSpan {
	if lv.anchor > 0 {
		return view.LineSpan{Start: min(lv.anchor, lv.cursor), End: max(lv.anchor, lv.cursor)}
	}
	return view.LineSpan{Start: lv.cursor, End: lv.cursor}
}

func (lv *LineView) selected(line int) bool {
	return lv.anchor > 0 && lv.Selection().IntersectsLine(line)
}

func (lv *LineView) gutterWidth() int {
	return 3 + len(strconv.Itoa(len(lv.lines)))
}

func (lv *LineView) scrollToCursor(visible []int, height int) {
	idx := lv.visibleIndex(visible)
	if idx < lv.offset {
		lv.offset = idx
	}
	if idx >= lv.offset+height {
		lv.offset = idx - height + 1
	}
	lv.offset = max(0, min(lv.offset, len(visible)-height))
}

// Draw implements tview.Primitive.
func (lv *LineView) Draw(screen tcell.Screen) {
	lv.Box.DrawForSubclass(screen, lv)
	x, y, width, height := lv.GetInnerRect()
	if width <= 0 || height <= 0 {
		return
	}
	lv.height = height

	visible := lv.VisibleLines()
	lv.scrollToCursor(visible, height)
	gutter := lv.gutterWidth()
	digits := gutter - 3
	base := tcell.StyleDefault.Background(lv.palette.Background).Foreground(lv.palette.Foreground)

	for row := 0; row < height && lv.offset+row < len(visible); row++ {
		line := visible[lv.offset+row]
		st := lv.lines[line-1]

		rowStyle := base
		if line == lv.cursor || lv.selected(line) {
			rowStyle = rowStyle.Background(lv.palette.Gutter)
		}
		for col := x; col < x+width; col++ {
			screen.SetContent(col, y+row, ' ', nil, rowStyle)
		}

		numberStyle := rowStyle.Foreground(lv.palette.LineNumber)
		if line == lv.cursor {
			numberStyle = numberStyle.Bold(true)
		}
		if st.hasFold {
			glyph := glyphExpanded
			if st.collapsed {
				glyph = glyphCollapsed
			}
			screen.SetContent(x, y+row, glyph, nil, numberStyle)
		}
		number := strconv.Itoa(line)
		for i, r := range strings.Repeat(" ", digits-len(number)) + number {
			screen.SetContent(x+2+i, y+row, r, nil, numberStyle)
		}

		lv.drawSegments(screen, st.segments, x+gutter, y+row, width-gutter, rowStyle)
	}
}

func (lv *LineView) drawSegments(screen tcell.Screen, segments []segment, x, y, width int, rowStyle tcell.Style) {
	pos := 0
	for _, seg := range segments {
		style := rowStyle.Foreground(lv.palette.ColorFor(seg.Kind))
		if seg.Link {
			style = style.Underline(true)
		}
		for _, r := range seg.Text {
			w := runewidth.RuneWidth(r)
			if w == 0 {
				continue
			}
			col := pos - lv.column
			pos += w
			if col < 0 {
				continue
			}
			if col+w > width {
				return
			}
			screen.SetContent(x+col, y, r, nil, style)
		}
	}
}

func (lv *LineView) lineAt(row int) int {
	_, y, _, height := lv.GetInnerRect()
	visible := lv.VisibleLines()
	idx := lv.offset + row - y
	if row < y || row >= y+height || idx >= len(visible) {
		return 0
	}
	return visible[idx]
}

// MouseHandler implements tview.Primitive. A click on a fold glyph toggles the
// fold; any other click moves the cursor.
func (lv *LineView) MouseHandler() func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
	return lv.WrapMouseHandler(func(action tview.MouseAction, event *tcell.EventMouse, setFocus func(p tview.Primitive)) (consumed bool, capture tview.Primitive) {
		mx, my := event.Position()
		if !lv.InRect(mx, my) {
			return false, nil
		}
		switch action {
		case tview.MouseLeftClick:
			setFocus(lv)
			line := lv.lineAt(my)
			if line == 0 {
				return true, nil
			}
			lv.cursor = line
			x, _, _, _ := lv.GetInnerRect()
			if mx <= x+1 && lv.lines[line-1].hasFold && lv.onToggle != nil {
				lv.onToggle(line)
			}
			return true, nil
		case tview.MouseScrollUp:
			lv.MoveBy(-scrollStep)
			return true, nil
		case tview.MouseScrollDown:
			lv.MoveBy(scrollStep)
			return true, nil
		}
		return false, nil
	})
}

func (lv *LineView) parse(content string) []segment {
	if segs, ok := lv.parsed[content]; ok {
		return segs
	}
	segs := parseContent(content)
	lv.parsed[content] = segs
	return segs
}

type openTag struct {
	kind render.TokenKind
	link bool
}

// parseContent turns the highlighted markup of one line back into styled runs.
func parseContent(content string) []segment {
	var segs []segment
	var stack []openTag
	z := html.NewTokenizer(strings.NewReader(content))
	for {
		switch z.Next() {
		case html.ErrorToken:
			return segs
		case html.StartTagToken:
			name, hasAttr := z.TagName()
			tag := openTag{link: string(name) == "a"}
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = z.TagAttr()
				if string(key) == "class" {
					tag.kind = kindForClass(string(val))
				}
			}
			stack = append(stack, tag)
		case html.EndTagToken:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case html.TextToken:
			text := strings.ReplaceAll(string(z.Text()), "\u200b", "")
			if text == "" {
				continue
			}
			seg := segment{Text: text}
			for _, tag := range stack {
				if tag.kind != render.KindPlain {
					seg.Kind = tag.kind
				}
				seg.Link = seg.Link || tag.link
			}
			if n := len(segs); n > 0 && segs[n-1].Kind == seg.Kind && segs[n-1].Link == seg.Link {
				segs[n-1].Text += seg.Text
				continue
			}
			segs = append(segs, seg)
		}
	}
}

func kindForClass(class string) render.TokenKind {
	for kind := render.KindKey; kind <= render.KindBrace; kind++ {
		if kind.Class() == class {
			return kind
		}
	}
	return render.KindPlain
}
