package trap

import (
	"fmt"
	"math"
)

// Interval is a closed range [Lower, Upper] on a float axis.
type Interval struct {
	Lower float64
	Upper float64
}

// Closed creates the interval [a, b]. Reversed bounds are swapped so that
// Lower <= Upper always holds.
func Closed(a, b float64) Interval {
	if a > b {
		a, b = b, a
	}
	return Interval{Lower: a, Upper: b}
}

// Length returns Upper - Lower
func (i Interval) Length() float64 {
	return i.Upper - i.Lower
}

// Contains reports whether v lies within the interval (inclusive).
func (i Interval) Contains(v float64) bool {
	return v >= i.Lower && v <= i.Upper
}

// Encloses reports whether other lies entirely within i, bounds inclusive.
func (i Interval) Encloses(other Interval) bool {
	return other.Lower >= i.Lower && other.Upper <= i.Upper
}

// Connected reports whether the two intervals overlap or touch. Because both
// are closed, a shared endpoint counts as a connection.
func (i Interval) Connected(other Interval) bool {
	return i.Lower <= other.Upper && other.Lower <= i.Upper
}

// Span returns the smallest interval enclosing both i and other.
func (i Interval) Span(other Interval) Interval {
	return Interval{
		Lower: math.Min(i.Lower, other.Lower),
		Upper: math.Max(i.Upper, other.Upper),
	}
}

// String returns the interval in "[lower, upper]" notation
func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.Lower, i.Upper)
}
