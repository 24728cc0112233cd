package search

import (
	"strings"
	"unicode"
)

// State holds the current line search
type State struct {
	Query         string
	CaseSensitive bool
	matches       []int
}

// NewState creates an empty search state
func NewState() *State {
	return &State{}
}

// Set replaces the query. Matching is case-insensitive unless the query
// contains an upper-case letter (smart case).
func (s *State) Set(query string) {
	s.Query = query
	s.CaseSensitive = hasUpper(query)
	s.matches = nil
}

// Reset clears the query and any matches
func (s *State) Reset() {
	s.Query = ""
	s.CaseSensitive = false
	s.matches = nil
}

// Active reports whether a query is set
func (s *State) Active() bool {
	return s.Query != ""
}

// Find returns the 1-based numbers of the lines containing the query and
// remembers them for Next and Prev.
func (s *State) Find(lines []string) []int {
	s.matches = nil
	if s.Query == "" {
		return nil
	}
	needle := s.Query
	if !s.CaseSensitive {
		needle = strings.ToLower(needle)
	}
	for i, line := range lines {
		if !s.CaseSensitive {
			line = strings.ToLower(line)
		}
		if strings.Contains(line, needle) {
			s.matches = append(s.matches, i+1)
		}
	}
	return s.matches
}

// Matches returns the lines found by the last Find
func (s *State) Matches() []int {
	return s.matches
}

// Next returns the first match after line, wrapping to the top.
func (s *State) Next(line int) (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	for _, m := range s.matches {
		if m > line {
			return m, true
		}
	}
	return s.matches[0], true
}

// Prev returns the last match before line, wrapping to the bottom.
func (s *State) Prev(line int) (int, bool) {
	if len(s.matches) == 0 {
		return 0, false
	}
	for i := len(s.matches) - 1; i >= 0; i-- {
		if s.matches[i] < line {
			return s.matches[i], true
		}
	}
	return s.matches[len(s.matches)-1], true
}

// Position returns the 1-based index of line among the matches, or 0.
func (s *State) Position(line int) int {
	for i, m := range s.matches {
		if m == line {
			return i + 1
		}
	}
	return 0
}

// IntersectLines returns the lines present in both a and b, in b's order.
func IntersectLines(a, b []int) []int {
	if len(a) == 0 || len(b) == 0 {
		return []int{}
	}

	setA := make(map[int]bool, len(a))
	for _, v := range a {
		setA[v] = true
	}

	result := []int{}
	for _, v := range b {
		if setA[v] {
			result = append(result, v)
		}
	}
	return result
}

func hasUpper(s string) bool {
	for _, r := range s {
		if unicode.IsUpper(r) {
			return true
		}
	}
	return false
}
