package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/trap"
)

func cellTexts(row model.Row) []string {
	out := make([]string, len(row.Cells))
	for i, c := range row.Cells {
		out[i] = c.Text
	}
	return out
}

func TestColumnRanges(t *testing.T) {
	frags := gridPage(0, threeColumns,
		[]string{"ab", "c", "def"},
		[]string{"g", "hij", "k"},
	)

	got := ColumnRanges(frags)
	assert.Equal(t, trap.TrapRange{trap.Closed(50, 60), trap.Closed(150, 165), trap.Closed(250, 265)}, got)
	assert.Empty(t, ColumnRanges(nil))
}

func TestBuildTable(t *testing.T) {
	frags := gridPage(3, threeColumns,
		[]string{"A1", "B1", "C1"},
		[]string{"A2", "B2", "C2"},
	)
	rows := LineRanges(3, frags, Exclusions{})
	cols := ColumnRanges(frags)

	table := BuildTable(3, frags, rows, cols)
	require.Equal(t, 2, table.RowCount())
	assert.Equal(t, 3, table.Page)
	assert.Equal(t, 3, table.ColumnCount)
	assert.Equal(t, []string{"A1", "B1", "C1"}, cellTexts(table.Rows[0]))
	assert.Equal(t, []string{"A2", "B2", "C2"}, cellTexts(table.Rows[1]))
	assert.Equal(t, 1, table.Rows[1].Index)
	assert.Equal(t, 2, table.Rows[1].Cells[2].Column)
	assert.Equal(t, model.NewBBox(50, 100, 210, 30), table.BBox)
}

func TestBuildTable_Empty(t *testing.T) {
	table := BuildTable(0, nil, nil, nil)
	require.NotNil(t, table)
	assert.Equal(t, 0, table.RowCount())
	assert.Equal(t, 0, table.ColumnCount)
}

func TestBuildTable_CellTextSortedLeftToRight(t *testing.T) {
	// glyphs arrive right to left inside one row
	frags := []model.Fragment{
		{Text: "c", X: 10, Y: 0, Width: 5, Height: 10},
		{Text: "b", X: 5, Y: 0, Width: 5, Height: 10},
		{Text: "a", X: 0, Y: 0, Width: 5, Height: 10},
	}
	table := BuildTable(0, frags, trap.TrapRange{trap.Closed(0, 10)}, trap.TrapRange{trap.Closed(0, 15)})

	require.Equal(t, 1, table.RowCount())
	assert.Equal(t, []string{"abc"}, cellTexts(table.Rows[0]))
}

func TestBuildTable_GapColumnsGetEmptyCells(t *testing.T) {
	frags := gridPage(0, threeColumns,
		[]string{"a", "b", "c"},
		[]string{"", "", "z"},
		[]string{"x"},
	)
	rows := LineRanges(0, frags, Exclusions{})
	cols := ColumnRanges(frags)

	table := BuildTable(0, frags, rows, cols)
	require.Equal(t, 3, table.RowCount())
	assert.Equal(t, []string{"", "", "z"}, cellTexts(table.Rows[1]))
	assert.Equal(t, []string{"x"}, cellTexts(table.Rows[2]), "trailing empty columns carry no cells")
	assert.Equal(t, [][]string{{"a", "b", "c"}, {"", "", "z"}, {"x", "", ""}}, table.Grid())
}

func TestBuildTable_DropsFragmentsPastLastRow(t *testing.T) {
	frags := gridPage(0, threeColumns,
		[]string{"a", "b"},
		[]string{"c", "d"},
	)
	rows := trap.TrapRange{trap.Closed(100, 110)}
	cols := ColumnRanges(frags)

	table := BuildTable(0, frags, rows, cols)
	require.Equal(t, 1, table.RowCount())
	assert.Equal(t, []string{"a", "b"}, cellTexts(table.Rows[0]))
	assert.NotContains(t, table.Text(), "c")
}

func TestBuildTable_DropsFragmentsPastLastColumn(t *testing.T) {
	frags := gridPage(0, threeColumns, []string{"a", "b", "c"})
	rows := LineRanges(0, frags, Exclusions{})
	cols := trap.TrapRange{trap.Closed(50, 55), trap.Closed(150, 155)}

	table := BuildTable(0, frags, rows, cols)
	require.Equal(t, 1, table.RowCount())
	assert.Equal(t, []string{"a", "b"}, cellTexts(table.Rows[0]))
}

func TestBuildTable_SharedGridAcrossRegions(t *testing.T) {
	// two unrelated tables on one page: columns of the second table are
	// offset, so the shared grid holds the union of both
	first := gridPage(0, []float64{50, 150}, []string{"a", "b"}, []string{"c", "d"})
	var second []model.Fragment
	second = append(second, word(0, 100, 200, "e")...)
	second = append(second, word(0, 200, 200, "f")...)
	second = append(second, word(0, 100, 220, "g")...)
	second = append(second, word(0, 200, 220, "h")...)
	frags := append(first, second...)

	table := NewDetector().Detect(0, frags)
	require.Equal(t, 4, table.RowCount())
	assert.Equal(t, 4, table.ColumnCount)
	assert.Equal(t, [][]string{
		{"a", "", "b", ""},
		{"c", "", "d", ""},
		{"", "e", "", "f"},
		{"", "g", "", "h"},
	}, table.Grid())
}
