package tables

import (
	"fmt"

	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/trap"
)

// Region is a run of consecutive lines, inclusive on both ends, that were
// found to share one column structure.
type Region struct {
	Start int
	End   int
}

// Len returns the number of lines in the region
func (r Region) Len() int {
	return r.End - r.Start + 1
}

// String returns the region as "start-end"
func (r Region) String() string {
	return fmt.Sprintf("%d-%d", r.Start, r.End)
}

// RowColumns computes, for every row, the column trap-range formed by the
// fragments whose vertical extent lies within that row.
func RowColumns(fragments []model.Fragment, rows trap.TrapRange) []trap.TrapRange {
	builders := make([]*trap.Builder, len(rows))
	for i := range builders {
		builders[i] = trap.NewBuilder()
	}
	for _, f := range fragments {
		if i := rows.IndexOf(f.VerticalRange()); i >= 0 {
			builders[i].Add(f.HorizontalRange())
		}
	}

	columns := make([]trap.TrapRange, len(rows))
	for i, b := range builders {
		columns[i] = b.Build()
	}
	return columns
}

// Aligned overlays two column sets and reports whether they are compatible:
// the merged set must not hold more columns than the larger of the two. The
// merged set is returned either way.
func Aligned(a, b trap.TrapRange) (bool, trap.TrapRange) {
	widest := len(a)
	if len(b) > widest {
		widest = len(b)
	}
	merged := trap.Merge(a, b)
	return len(merged) == widest, merged
}

// DetectRegions scans the per-row column sets and returns every maximal run
// of at least two rows whose columns stay aligned. Inside a run each new row
// is compared against the columns accumulated over the whole run, so gradual
// drift is tolerated as long as every step stays consistent with the
// accumulated grid.
func DetectRegions(rowColumns []trap.TrapRange) []Region {
	var (
		regions []Region
		start   int
		inTable bool
		merged  trap.TrapRange
	)

	n := len(rowColumns)
	for idx := 0; idx < n-1; idx++ {
		current := rowColumns[idx]
		if inTable {
			current = merged
		}

		var aligned bool
		aligned, merged = Aligned(current, rowColumns[idx+1])
		if aligned {
			inTable = true
			continue
		}

		if start != idx {
			regions = append(regions, Region{Start: start, End: idx})
			inTable = false
		}
		start = idx + 1
	}
	if inTable {
		regions = append(regions, Region{Start: start, End: n - 1})
	}
	return regions
}

// ApplyRegions keeps the rows that fall inside one of regions, in order.
// Region bounds beyond the available rows are clipped.
func ApplyRegions(rows trap.TrapRange, regions []Region) trap.TrapRange {
	kept := make(trap.TrapRange, 0, len(rows))
	for _, r := range regions {
		for i := r.Start; i <= r.End && i < len(rows); i++ {
			if i >= 0 {
				kept = append(kept, rows[i])
			}
		}
	}
	return kept
}
