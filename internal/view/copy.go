package view

import (
	"sort"
	"strings"

	"github.com/cnharrison/jsonview/internal/render"
)

// LineInterval is an inclusive range of 1-based line numbers.
type LineInterval struct {
	Start int
	End   int
}

func normalizeInterval(iv LineInterval) (LineInterval, bool) {
	start, end := min(iv.Start, iv.End), max(iv.Start, iv.End)
	if start < 1 {
		return LineInterval{}, false
	}
	return LineInterval{Start: start, End: end}, true
}

// MergeIntervals normalizes, sorts and merges overlapping or adjacent intervals.
// Intervals touching line numbers below 1 are dropped.
func MergeIntervals(intervals []LineInterval) []LineInterval {
	normalized := make([]LineInterval, 0, len(intervals))
	for _, iv := range intervals {
		if n, ok := normalizeInterval(iv); ok {
			normalized = append(normalized, n)
		}
	}
	if len(normalized) == 0 {
		return nil
	}
	sort.Slice(normalized, func(i, j int) bool {
		if normalized[i].Start != normalized[j].Start {
			return normalized[i].Start < normalized[j].Start
		}
		return normalized[i].End < normalized[j].End
	})

	merged := []LineInterval{normalized[0]}
	for _, cur := range normalized[1:] {
		last := &merged[len(merged)-1]
		if cur.Start <= last.End+1 {
			last.End = max(last.End, cur.End)
			continue
		}
		merged = append(merged, cur)
	}
	return merged
}

// ExpandForCollapsed extends each interval through every collapsed fold whose
// start line it contains, repeating until nothing grows: a selected summary line
// stands for all of its hidden lines, including nested collapsed folds.
func ExpandForCollapsed(intervals []LineInterval, folds render.FoldIndex, state *FoldState) []LineInterval {
	merged := MergeIntervals(intervals)
	if len(merged) == 0 || state == nil || state.Len() == 0 {
		return merged
	}

	collapsed := state.Collapsed()
	expanded := make([]LineInterval, 0, len(merged))
	for _, iv := range merged {
		end := iv.End
		for changed := true; changed; {
			changed = false
			for _, start := range collapsed {
				if start < iv.Start || start > end {
					continue
				}
				r, ok := folds[start]
				if ok && r.EndLine > end {
					end = r.EndLine
					changed = true
				}
			}
		}
		expanded = append(expanded, LineInterval{Start: iv.Start, End: end})
	}
	return MergeIntervals(expanded)
}

// BuildText joins the source lines covered by intervals with newlines, clipping
// to the document.
func BuildText(lines []string, intervals []LineInterval) string {
	if len(lines) == 0 || len(intervals) == 0 {
		return ""
	}
	chunks := make([]string, 0, len(intervals))
	for _, iv := range MergeIntervals(intervals) {
		start := max(1, iv.Start)
		end := min(len(lines), iv.End)
		if end < start {
			continue
		}
		chunks = append(chunks, strings.Join(lines[start-1:end], "\n"))
	}
	return strings.Join(chunks, "\n")
}

// CopyInput is everything the copy resolver needs from a session.
type CopyInput struct {
	ShowingRaw    bool
	Intervals     []LineInterval
	FormattedText string
	Folds         render.FoldIndex
	State         *FoldState
}

// ResolveCopyText returns the canonical text a selection stands for, expanding
// through collapsed folds. ok is false in raw mode, without formatted text, for
// an empty selection, or when the selection covers nothing.
func ResolveCopyText(in CopyInput) (string, bool) {
	if in.ShowingRaw || in.FormattedText == "" || len(in.Intervals) == 0 {
		return "", false
	}

	lines := strings.Split(in.FormattedText, "\n")
	intervals := in.Intervals
	if len(in.Folds) > 0 {
		intervals = ExpandForCollapsed(intervals, in.Folds, in.State)
	}
	text := BuildText(lines, intervals)
	if text == "" {
		return "", false
	}
	return text, true
}
