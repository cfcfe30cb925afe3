package tables

import "sort"

// AllPages is the page index that applies an exclusion to every page.
const AllPages = -1

// Exclusions records which text lines must be ignored on which pages.
// Line indices may be negative to count from the last line of a page (-1 is
// the last line). The zero value excludes nothing.
//
// Exclusions is immutable: [Exclusions.With] returns a modified copy, so a
// value can be shared freely between goroutines once built.
type Exclusions struct {
	lines map[int]map[int]struct{}
}

// NewExclusions builds exclusions from a page → line indices mapping.
func NewExclusions(pages map[int][]int) Exclusions {
	var e Exclusions
	for page, lines := range pages {
		e = e.With(page, lines...)
	}
	return e
}

// With returns a copy of e that also excludes the given lines on page.
// Use AllPages to exclude the lines on every page.
func (e Exclusions) With(page int, lines ...int) Exclusions {
	out := Exclusions{lines: make(map[int]map[int]struct{}, len(e.lines)+1)}
	for p, set := range e.lines {
		cp := make(map[int]struct{}, len(set))
		for l := range set {
			cp[l] = struct{}{}
		}
		out.lines[p] = cp
	}
	if len(lines) == 0 {
		return out
	}

	set, ok := out.lines[page]
	if !ok {
		set = make(map[int]struct{}, len(lines))
		out.lines[page] = set
	}
	for _, l := range lines {
		set[l] = struct{}{}
	}
	return out
}

// IsEmpty reports whether no line is excluded anywhere
func (e Exclusions) IsEmpty() bool {
	return len(e.lines) == 0
}

// Pages returns the pages that carry exclusions, sorted. AllPages is
// included when present.
func (e Exclusions) Pages() []int {
	pages := make([]int, 0, len(e.lines))
	for p := range e.lines {
		pages = append(pages, p)
	}
	sort.Ints(pages)
	return pages
}

// Lines returns the line indices registered for page, sorted. Wildcard
// entries are not merged in.
func (e Exclusions) Lines(page int) []int {
	set := e.lines[page]
	lines := make([]int, 0, len(set))
	for l := range set {
		lines = append(lines, l)
	}
	sort.Ints(lines)
	return lines
}

// Excluded reports whether the line at position line (0-based from the top)
// of a page holding total lines is excluded, either by its position or by
// its position counted from the end.
func (e Exclusions) Excluded(page, line, total int) bool {
	return e.has(page, line) || e.has(page, line-total)
}

func (e Exclusions) has(page, line int) bool {
	if _, ok := e.lines[page][line]; ok {
		return true
	}
	_, ok := e.lines[AllPages][line]
	return ok
}
