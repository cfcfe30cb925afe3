package tables

import (
	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/trap"
)

// LineRanges merges the vertical extents of a page's fragments into text
// lines, ordered top to bottom, and removes the lines excluded for page.
// Exclusions are evaluated against the line positions before any removal.
func LineRanges(page int, fragments []model.Fragment, ex Exclusions) trap.TrapRange {
	b := trap.NewBuilder()
	for _, f := range fragments {
		b.Add(f.VerticalRange())
	}
	lines := b.Build()
	if ex.IsEmpty() {
		return lines
	}

	kept := make(trap.TrapRange, 0, len(lines))
	for i, line := range lines {
		if !ex.Excluded(page, i, len(lines)) {
			kept = append(kept, line)
		}
	}
	return kept
}

// PickFragments keeps, in order, the fragments enclosed by one of rows. Both
// fragments and rows must be sorted top to bottom; fragments falling between
// rows (excluded lines, dropped prose) are skipped.
func PickFragments(rows trap.TrapRange, fragments []model.Fragment) []model.Fragment {
	picked := make([]model.Fragment, 0, len(fragments))
	fi, ri := 0, 0
	for fi < len(fragments) && ri < len(rows) {
		fr := fragments[fi].VerticalRange()
		row := rows[ri]
		switch {
		case row.Encloses(fr):
			picked = append(picked, fragments[fi])
			fi++
		case row.Upper < fr.Lower:
			ri++
		default:
			fi++
		}
	}
	return picked
}
