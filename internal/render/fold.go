package render

import (
	"regexp"
	"sort"
	"strings"
)

// FoldRange is a collapsible span of lines bounded by a bracket pair whose opener
// and closer are at least two lines apart.
type FoldRange struct {
	StartLine     int
	EndLine       int
	Open          byte
	Close         byte
	CollapsedHTML string
}

// FoldIndex maps a start line to the fold range that begins there.
type FoldIndex map[int]FoldRange

// Starts returns the start lines in ascending order.
func (idx FoldIndex) Starts() []int {
	starts := make([]int, 0, len(idx))
	for start := range idx {
		starts = append(starts, start)
	}
	sort.Ints(starts)
	return starts
}

// Lookup returns the range starting at line, if any.
func (idx FoldIndex) Lookup(line int) (FoldRange, bool) {
	r, ok := idx[line]
	return r, ok
}

// Enclosing returns the innermost range containing line (start line included).
func (idx FoldIndex) Enclosing(line int) (FoldRange, bool) {
	var best FoldRange
	found := false
	for _, r := range idx {
		if line < r.StartLine || line > r.EndLine {
			continue
		}
		if !found || r.EndLine-r.StartLine < best.EndLine-best.StartLine {
			best = r
			found = true
		}
	}
	return best, found
}

type openBracket struct {
	open      byte
	startLine int
}

var trailingCommaPattern = regexp.MustCompile(`[}\]]\s*,\s*$`)

// ComputeFoldRanges scans formatted JSON once and records every bracket pair that
// spans at least one interior line. Unmatched closers are ignored; the first
// opener on a line to produce a range claims it.
func ComputeFoldRanges(formatted string) FoldIndex {
	lines := strings.Split(formatted, "\n")
	ranges := FoldIndex{}

	var stack []openBracket
	inString := false
	escaped := false
	line := 1

	for i := 0; i < len(formatted); i++ {
		ch := formatted[i]
		if ch == '\n' {
			line++
			continue
		}

		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '{', '[':
			stack = append(stack, openBracket{open: ch, startLine: line})
		case '}', ']':
			open := openerFor(ch)
			for s := len(stack) - 1; s >= 0; s-- {
				if stack[s].open != open {
					continue
				}
				start := stack[s].startLine
				stack = append(stack[:s], stack[s+1:]...)

				if line < start+2 {
					break
				}
				if _, exists := ranges[start]; exists {
					break
				}
				ranges[start] = FoldRange{
					StartLine:     start,
					EndLine:       line,
					Open:          open,
					Close:         ch,
					CollapsedHTML: collapsedSummary(lineAt(lines, start), lineAt(lines, line), open, ch),
				}
				break
			}
		}
	}

	return ranges
}

// CollapsedSummaryText returns the plain one-line stand-in for a collapsed range.
func CollapsedSummaryText(startLine, endLine string, open, close byte) string {
	prefix := strings.TrimRight(startLine, " \t\r")
	if idx := lastStructuralIndex(startLine, open); idx >= 0 {
		prefix = strings.TrimRight(startLine[:idx+1], " \t\r")
	}

	comma := ""
	if trailingCommaPattern.MatchString(strings.TrimRight(endLine, " \t\r")) {
		comma = ","
	}
	return prefix + " ... " + string(close) + comma
}

func collapsedSummary(startLine, endLine string, open, close byte) string {
	return HighlightLine(CollapsedSummaryText(startLine, endLine, open, close))
}

// lastStructuralIndex finds the last occurrence of target outside string literals.
func lastStructuralIndex(line string, target byte) int {
	last := -1
	inString := false
	escaped := false
	for i := 0; i < len(line); i++ {
		ch := line[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case ch == '\\':
				escaped = true
			case ch == '"':
				inString = false
			}
			continue
		}
		if ch == '"' {
			inString = true
			continue
		}
		if ch == target {
			last = i
		}
	}
	return last
}

func lineAt(lines []string, lineNo int) string {
	if lineNo < 1 || lineNo > len(lines) {
		return ""
	}
	return lines[lineNo-1]
}
