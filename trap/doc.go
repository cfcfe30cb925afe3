// Package trap implements closed one-dimensional intervals and the
// "trap-range" merge that reduces any collection of them to a sorted set of
// disjoint intervals.
//
// Trap-ranges are the building block of table reconstruction: merging the
// vertical extents of text fragments yields text lines, and merging their
// horizontal extents yields columns.
//
//	ranges := trap.NewBuilder().
//	    Add(trap.Closed(0, 2)).
//	    Add(trap.Closed(1, 3)).
//	    Add(trap.Closed(5, 6)).
//	    Build()
//	// ranges == [[0, 3] [5, 6]]
//
// Everything in this package is pure and allocation-light; a [Builder] is not
// safe for concurrent use, but separate builders share nothing.
package trap
