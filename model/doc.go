// Package model defines the data structures exchanged between the fragment
// sources, the table reconstruction core and the exporters.
//
// # Fragments
//
// A [Fragment] is one positioned piece of text on a page, usually a single
// glyph. Coordinates use a top-left origin: X grows to the right and Y grows
// downward, so sorting by ascending Y walks a page from top to bottom.
//
//	f := model.Fragment{Text: "A", X: 72, Y: 100, Width: 6, Height: 10}
//	f.VerticalRange()   // [100, 110]
//	f.HorizontalRange() // [72, 78]
//
// # Tables
//
// A [Table] holds the rows reconstructed from one page. Each [Row] holds its
// [Cell] values tagged with their column index in the page's column grid.
// Trailing empty columns carry no cell, so a row may have fewer cells than
// the table has columns. [Table.Grid] pads rows out to a rectangular view:
//
//	for _, row := range table.Grid() {
//	    fmt.Println(strings.Join(row, "\t"))
//	}
//
// Export helpers [Table.ToCSV], [Table.ToMarkdown] and [Table.Text] render the
// padded grid.
package model
