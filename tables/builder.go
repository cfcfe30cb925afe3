package tables

import (
	"strings"

	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/trap"
)

// ColumnRanges merges the horizontal extents of fragments into the column
// grid used to split rows into cells.
func ColumnRanges(fragments []model.Fragment) trap.TrapRange {
	b := trap.NewBuilder()
	for _, f := range fragments {
		b.Add(f.HorizontalRange())
	}
	return b.Build()
}

// BuildTable assigns fragments to rows and columns. Fragments must be sorted
// top to bottom and should be the ones retained for rows (see
// PickFragments).
//
// Fragments are swept in order: while a fragment lies within the current row
// it joins that row, otherwise the row is closed and the next row interval
// becomes current. Fragments left over once every row interval has been
// used are dropped, as is any content that cannot be placed in a column.
func BuildTable(page int, fragments []model.Fragment, rows, columns trap.TrapRange) *model.Table {
	table := model.NewTable(page, len(columns))

	var content []model.Fragment
	idx, rowIdx := 0, 0
	for idx < len(fragments) && rowIdx < len(rows) {
		f := fragments[idx]
		if rows[rowIdx].Encloses(f.VerticalRange()) {
			content = append(content, f)
			idx++
			continue
		}
		table.Rows = append(table.Rows, buildRow(rowIdx, content, columns))
		content = nil
		rowIdx++
	}
	if len(content) > 0 && rowIdx < len(rows) {
		table.Rows = append(table.Rows, buildRow(rowIdx, content, columns))
	}

	for _, f := range fragments[:idx] {
		table.BBox = table.BBox.Union(f.BBox())
	}
	return table
}

// buildRow sorts a row's fragments left to right and splits them into cells
// with the same sweep BuildTable uses for rows.
func buildRow(rowIdx int, content []model.Fragment, columns trap.TrapRange) model.Row {
	row := model.Row{Index: rowIdx, Cells: make([]model.Cell, 0, len(columns))}

	sorted := make([]model.Fragment, len(content))
	copy(sorted, content)
	model.SortByX(sorted)

	var cell []model.Fragment
	idx, colIdx := 0, 0
	for idx < len(sorted) && colIdx < len(columns) {
		f := sorted[idx]
		if columns[colIdx].Encloses(f.HorizontalRange()) {
			cell = append(cell, f)
			idx++
			continue
		}
		row.Cells = append(row.Cells, buildCell(colIdx, cell))
		cell = nil
		colIdx++
	}
	if len(cell) > 0 && colIdx < len(columns) {
		row.Cells = append(row.Cells, buildCell(colIdx, cell))
	}
	return row
}

// buildCell joins the text of fragments already sorted left to right
func buildCell(colIdx int, content []model.Fragment) model.Cell {
	var sb strings.Builder
	for _, f := range content {
		sb.WriteString(f.Text)
	}
	return model.Cell{Column: colIdx, Text: sb.String()}
}
