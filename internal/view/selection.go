package view

// SelectionRange is one contiguous range of a user selection over the rendered
// lines.
type SelectionRange interface {
	// Endpoints returns the line numbers of the line containers holding the
	// range's start and end. ok is false when either endpoint lies outside a
	// numbered line container.
	Endpoints() (start, end int, ok bool)
	// IntersectsLine reports whether the range touches the given line container.
	IntersectsLine(line int) bool
}

// LineSpan is a selection range whose endpoints are both inside line containers.
type LineSpan struct {
	Start int
	End   int
}

// Endpoints implements SelectionRange.
func (s LineSpan) Endpoints() (int, int, bool) {
	return s.Start, s.End, s.Start >= 1 && s.End >= 1
}

// IntersectsLine implements SelectionRange.
func (s LineSpan) IntersectsLine(line int) bool {
	lo, hi := min(s.Start, s.End), max(s.Start, s.End)
	return line >= lo && line <= hi
}

// LineIntervalsForSelection resolves each range to a line interval, directly from
// its endpoints when possible, otherwise from the min/max of the line containers
// it intersects. lines lists the line numbers of all rendered containers. The
// result is merged.
func LineIntervalsForSelection(ranges []SelectionRange, lines []int) []LineInterval {
	var intervals []LineInterval
	for _, r := range ranges {
		if r == nil {
			continue
		}
		if start, end, ok := r.Endpoints(); ok {
			intervals = append(intervals, LineInterval{Start: min(start, end), End: max(start, end)})
			continue
		}

		lo, hi := 0, 0
		for _, line := range lines {
			if line < 1 || !r.IntersectsLine(line) {
				continue
			}
			if lo == 0 || line < lo {
				lo = line
			}
			if line > hi {
				hi = line
			}
		}
		if lo > 0 {
			intervals = append(intervals, LineInterval{Start: lo, End: hi})
		}
	}
	return MergeIntervals(intervals)
}
