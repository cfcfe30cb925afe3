package trap

import (
	"sort"
	"strings"
)

// TrapRange is a sequence of intervals sorted ascending by lower bound in
// which no two elements are connected.
type TrapRange []Interval

// Len returns the number of intervals
func (r TrapRange) Len() int {
	return len(r)
}

// IndexOf returns the index of the interval enclosing iv, or -1.
func (r TrapRange) IndexOf(iv Interval) int {
	i := sort.Search(len(r), func(i int) bool {
		return r[i].Upper >= iv.Upper
	})
	if i < len(r) && r[i].Encloses(iv) {
		return i
	}
	return -1
}

// IsDisjoint reports whether r satisfies the trap-range invariant: sorted
// ascending and pairwise non-connected.
func (r TrapRange) IsDisjoint() bool {
	for i := 1; i < len(r); i++ {
		if r[i].Lower < r[i-1].Lower || r[i-1].Connected(r[i]) {
			return false
		}
	}
	return true
}

// String returns the ranges in "[[a, b] [c, d]]" notation
func (r TrapRange) String() string {
	parts := make([]string, len(r))
	for i, iv := range r {
		parts[i] = iv.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Builder accumulates intervals and merges them into a TrapRange.
type Builder struct {
	intervals []Interval
}

// NewBuilder creates an empty builder
func NewBuilder() *Builder {
	return &Builder{}
}

// Add accumulates one interval.
func (b *Builder) Add(iv Interval) *Builder {
	b.intervals = append(b.intervals, iv)
	return b
}

// AddAll accumulates every interval of ivs.
func (b *Builder) AddAll(ivs ...Interval) *Builder {
	b.intervals = append(b.intervals, ivs...)
	return b
}

// Count returns how many intervals have been accumulated.
func (b *Builder) Count() int {
	return len(b.intervals)
}

// Build merges the accumulated intervals. They are sorted by lower bound and
// swept once from left to right: an interval connected to the current group
// widens it, anything else closes the group and starts a new one.
//
// The result is never nil. The builder keeps its intervals, so calling Build
// again after further Adds merges everything seen so far.
func (b *Builder) Build() TrapRange {
	sorted := make([]Interval, len(b.intervals))
	copy(sorted, b.intervals)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Lower < sorted[j].Lower
	})

	result := make(TrapRange, 0, len(sorted))
	for _, iv := range sorted {
		if len(result) == 0 {
			result = append(result, iv)
			continue
		}
		last := &result[len(result)-1]
		if last.Connected(iv) {
			*last = last.Span(iv)
		} else {
			result = append(result, iv)
		}
	}
	return result
}

// Merge overlays several trap-ranges and merges them in a single pass.
func Merge(ranges ...TrapRange) TrapRange {
	b := NewBuilder()
	for _, r := range ranges {
		b.AddAll(r...)
	}
	return b.Build()
}
