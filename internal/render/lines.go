package render

import (
	"strconv"
	"strings"
)

// Formatted is the line-indexed HTML rendering of a formatted document.
type Formatted struct {
	HTML      string
	LineCount int
	// LineHTML holds the highlighted content of each line, index 0 = line 1.
	LineHTML []string
}

// BuildFormattedHTML renders every line of formatted into a json-line container
// carrying a fold toggle (expanded) or spacer, the line number, and the
// highlighted content.
func BuildFormattedHTML(formatted string, folds FoldIndex) Formatted {
	lines := strings.Split(formatted, "\n")
	lineHTML := make([]string, len(lines))

	var b strings.Builder
	b.Grow(len(formatted) * 3)
	for i, line := range lines {
		lineNo := i + 1
		content := HighlightLine(line)
		lineHTML[i] = content
		_, hasFold := folds[lineNo]
		WriteLine(&b, Line{No: lineNo, Content: content, HasFold: hasFold})
	}

	return Formatted{
		HTML:      b.String(),
		LineCount: len(lines),
		LineHTML:  lineHTML,
	}
}

// Line is the display state of one json-line container.
type Line struct {
	No        int
	Content   string
	HasFold   bool
	Collapsed bool
	Hidden    bool
}

// WriteLine appends the markup of one line container to b.
func WriteLine(b *strings.Builder, line Line) {
	num := strconv.Itoa(line.No)
	b.WriteString(`<div class="json-line`)
	if line.Collapsed {
		b.WriteString(" is-collapsed")
	}
	b.WriteString(`" data-line-no="`)
	b.WriteString(num)
	b.WriteString(`"`)
	if line.Hidden {
		b.WriteString(` style="display: none"`)
	}
	b.WriteString(`><span class="json-line-number">`)
	if line.HasFold {
		b.WriteString(FoldToggleHTML(line.No, line.Collapsed))
	} else {
		b.WriteString(`<span class="json-fold-spacer" aria-hidden="true"></span>`)
	}
	b.WriteString(`<span class="json-line-num">`)
	b.WriteString(num)
	b.WriteString(`</span></span><span class="json-line-content">`)
	b.WriteString(line.Content)
	b.WriteString("</span></div>")
}

// FoldToggleHTML renders the toggle button for the fold starting at lineNo.
func FoldToggleHTML(lineNo int, collapsed bool) string {
	class := "json-fold-toggle"
	if collapsed {
		class += " is-collapsed"
	}
	return `<button class="` + class + `" type="button" data-fold-start="` + strconv.Itoa(lineNo) +
		`" aria-label="` + ToggleLabel(collapsed) + `" aria-expanded="` + strconv.FormatBool(!collapsed) + `"></button>`
}

// ToggleLabel is the accessible label for a fold toggle in the given state.
func ToggleLabel(collapsed bool) string {
	if collapsed {
		return "Expand section"
	}
	return "Collapse section"
}

// GutterWidth sizes the line-number gutter for lineCount lines: 16px toggle, 6px
// gap and one ch per digit.
func GutterWidth(lineCount int) string {
	return "calc(22px + " + strconv.Itoa(len(strconv.Itoa(lineCount))) + "ch)"
}
