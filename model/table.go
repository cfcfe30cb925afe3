package model

import (
	"strings"
)

// Table represents the rows reconstructed from one page
type Table struct {
	Page        int   `json:"page" yaml:"page"`
	ColumnCount int   `json:"columnCount" yaml:"columnCount"`
	Rows        []Row `json:"rows" yaml:"rows"`
	BBox        BBox  `json:"bbox" yaml:"bbox"`
}

// Row is one table row. Cells are indexed contiguously from column 0; gaps
// between filled columns hold empty cells, trailing empty columns are
// omitted.
type Row struct {
	Index int    `json:"index" yaml:"index"`
	Cells []Cell `json:"cells" yaml:"cells"`
}

// Cell holds the concatenated text of every fragment assigned to one column
// of a row.
type Cell struct {
	Column int    `json:"column" yaml:"column"`
	Text   string `json:"text" yaml:"text"`
}

// NewTable creates an empty table for a page
func NewTable(page, columns int) *Table {
	return &Table{
		Page:        page,
		ColumnCount: columns,
		Rows:        make([]Row, 0),
	}
}

// RowCount returns the number of rows
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColCount returns the number of columns in the table's grid
func (t *Table) ColCount() int {
	return t.ColumnCount
}

// IsEmpty reports whether the table has no rows
func (t *Table) IsEmpty() bool {
	return len(t.Rows) == 0
}

// GetCell returns the cell at the given row and column (0-indexed), or nil
// when the row is out of range or has no text in that column.
func (t *Table) GetCell(row, col int) *Cell {
	if row < 0 || row >= len(t.Rows) {
		return nil
	}
	return t.Rows[row].Cell(col)
}

// Cell returns the cell for column col, or nil.
func (r *Row) Cell(col int) *Cell {
	for i := range r.Cells {
		if r.Cells[i].Column == col {
			return &r.Cells[i]
		}
	}
	return nil
}

// Grid returns the table as a rectangular matrix of cell texts, one entry per
// column; missing cells are empty strings.
func (t *Table) Grid() [][]string {
	grid := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		width := t.ColumnCount
		for _, cell := range row.Cells {
			if cell.Column >= width {
				width = cell.Column + 1
			}
		}
		grid[i] = make([]string, width)
		for _, cell := range row.Cells {
			if cell.Column >= 0 {
				grid[i][cell.Column] = cell.Text
			}
		}
	}
	return grid
}

// Text returns the table as tab-separated lines
func (t *Table) Text() string {
	var sb strings.Builder
	for _, row := range t.Grid() {
		sb.WriteString(strings.Join(row, "\t"))
		sb.WriteString("\n")
	}
	return sb.String()
}

// ToMarkdown converts the table to markdown format. The first row is used as
// the header row.
func (t *Table) ToMarkdown() string {
	grid := t.Grid()
	if len(grid) == 0 {
		return ""
	}

	var sb strings.Builder
	writeRow := func(row []string) {
		for _, text := range row {
			sb.WriteString("| ")
			sb.WriteString(strings.ReplaceAll(strings.ReplaceAll(text, "\n", " "), "|", "\\|"))
			sb.WriteString(" ")
		}
		sb.WriteString("|\n")
	}

	// Header row
	writeRow(grid[0])

	// Separator
	for range grid[0] {
		sb.WriteString("|---")
	}
	sb.WriteString("|\n")

	// Data rows
	for _, row := range grid[1:] {
		writeRow(row)
	}

	return sb.String()
}

// ToCSV converts the table to CSV format
func (t *Table) ToCSV() string {
	var sb strings.Builder
	for _, row := range t.Grid() {
		for j, text := range row {
			// Escape quotes and wrap in quotes if necessary
			if strings.ContainsAny(text, ",\"\n\r") {
				text = "\"" + strings.ReplaceAll(text, "\"", "\"\"") + "\""
			}
			sb.WriteString(text)
			if j < len(row)-1 {
				sb.WriteString(",")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}
