// Package tables reconstructs tables from the positioned text fragments of a
// page, without relying on drawn borders.
//
// # Algorithm
//
// Detection works entirely on trap-ranges (see package trap):
//
//  1. Lines - the vertical extents of all fragments are merged into text
//     lines ([LineRanges]); configured [Exclusions] drop lines by position.
//  2. Regions - every line gets its own column set, and consecutive lines
//     whose column sets overlay without adding columns are grouped into a
//     table region ([DetectRegions]). Runs of a single line are treated as
//     prose and discarded.
//  3. Columns - the horizontal extents of the fragments kept in regions are
//     merged into one column grid ([ColumnRanges]).
//  4. Cells - fragments are swept into rows and then into columns
//     ([BuildTable]); the text of a cell is its fragments joined left to
//     right.
//
// # Usage
//
// [Detector] ties the steps together for one page:
//
//	config := tables.DefaultConfig()
//	config.Exclusions = tables.NewExclusions(map[int][]int{
//	    tables.AllPages: {0, -1}, // first and last line of every page
//	})
//	table := tables.NewDetectorWithConfig(config).Detect(pageIndex, fragments)
//
// The two-phase form, [Detector.Analyze] followed by [Detector.Build],
// lets a caller compute the column grid across several pages.
//
// # Limitations
//
// All table regions on a page share one column grid, which can misplace
// columns when a page holds unrelated tables. Fragments that fall beyond the
// last row or column interval are dropped rather than growing the grid.
package tables
