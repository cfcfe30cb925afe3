package tables

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/trap"
)

var (
	threeCols = trap.TrapRange{trap.Closed(0, 10), trap.Closed(20, 30), trap.Closed(40, 50)}
	twoCols   = trap.TrapRange{trap.Closed(0, 10), trap.Closed(40, 50)}
	prose     = trap.TrapRange{trap.Closed(0, 50)}
	shifted   = trap.TrapRange{trap.Closed(5, 15), trap.Closed(25, 35), trap.Closed(45, 55)}
)

func TestAligned(t *testing.T) {
	tests := []struct {
		name string
		a, b trap.TrapRange
		want bool
		cols int
	}{
		{"identical boundaries", threeCols, threeCols, true, 3},
		{"subset of columns", threeCols, twoCols, true, 3},
		{"subset reversed", twoCols, threeCols, true, 3},
		{"prose bridges columns", threeCols, prose, false, 1},
		{"staggered columns add boundaries", twoCols, trap.TrapRange{trap.Closed(15, 35)}, false, 3},
		{"overlapping shifted columns", threeCols, shifted, true, 3},
		{"both empty", trap.TrapRange{}, trap.TrapRange{}, true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, merged := Aligned(tt.a, tt.b)
			assert.Equal(t, tt.want, got)
			assert.Len(t, merged, tt.cols)
		})
	}
}

func TestAligned_MergedExceedsBoth(t *testing.T) {
	a := trap.TrapRange{trap.Closed(0, 10), trap.Closed(20, 30)}
	b := trap.TrapRange{trap.Closed(12, 18), trap.Closed(32, 38)}

	aligned, merged := Aligned(a, b)
	assert.False(t, aligned)
	assert.Len(t, merged, 4)
}

func TestDetectRegions(t *testing.T) {
	tests := []struct {
		name string
		rows []trap.TrapRange
		want []Region
	}{
		{
			name: "empty page",
			rows: nil,
			want: nil,
		},
		{
			name: "single row is never a table",
			rows: []trap.TrapRange{threeCols},
			want: nil,
		},
		{
			name: "all rows aligned",
			rows: []trap.TrapRange{threeCols, threeCols, twoCols},
			want: []Region{{0, 2}},
		},
		{
			name: "prose after table",
			rows: []trap.TrapRange{threeCols, threeCols, prose},
			want: []Region{{0, 1}},
		},
		{
			name: "prose before table",
			rows: []trap.TrapRange{prose, threeCols, threeCols},
			want: []Region{{1, 2}},
		},
		{
			name: "isolated prose between two tables",
			rows: []trap.TrapRange{threeCols, threeCols, prose, twoCols, twoCols},
			want: []Region{{0, 1}, {3, 4}},
		},
		{
			name: "no two consecutive rows align",
			rows: []trap.TrapRange{threeCols, prose, threeCols, prose},
			want: nil,
		},
		{
			name: "drift tolerated against accumulated grid",
			rows: []trap.TrapRange{threeCols, shifted, threeCols},
			want: []Region{{0, 2}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectRegions(tt.rows))
		})
	}
}

func TestDetectRegions_ComparesAgainstAccumulatedColumns(t *testing.T) {
	// Row 2 aligns with row 1 on its own, but not with the grid accumulated
	// over rows 0 and 1, so the region ends at row 1.
	row0 := trap.TrapRange{trap.Closed(0, 10), trap.Closed(20, 30)}
	row1 := trap.TrapRange{trap.Closed(0, 10)}
	row2 := trap.TrapRange{trap.Closed(0, 10), trap.Closed(14, 18)}

	aligned, _ := Aligned(row1, row2)
	require.True(t, aligned)

	assert.Equal(t, []Region{{0, 1}}, DetectRegions([]trap.TrapRange{row0, row1, row2}))
}

func TestRegion(t *testing.T) {
	r := Region{Start: 2, End: 4}
	assert.Equal(t, 3, r.Len())
	assert.Equal(t, "2-4", r.String())
}

func TestApplyRegions(t *testing.T) {
	rows := trap.TrapRange{
		trap.Closed(0, 1), trap.Closed(2, 3), trap.Closed(4, 5),
		trap.Closed(6, 7), trap.Closed(8, 9),
	}

	got := ApplyRegions(rows, []Region{{0, 1}, {3, 9}})
	assert.Equal(t, trap.TrapRange{trap.Closed(0, 1), trap.Closed(2, 3), trap.Closed(6, 7), trap.Closed(8, 9)}, got)
	assert.Empty(t, ApplyRegions(rows, nil))
}

func TestRowColumns(t *testing.T) {
	frags := gridPage(0, threeColumns,
		[]string{"ab", "c", "d"},
		[]string{"the quick brown fox jumps over the lazy dog again"},
	)
	rows := LineRanges(0, frags, Exclusions{})
	require.Len(t, rows, 2)

	cols := RowColumns(frags, rows)
	require.Len(t, cols, 2)
	assert.Equal(t, trap.TrapRange{trap.Closed(50, 60), trap.Closed(150, 155), trap.Closed(250, 255)}, cols[0])
	assert.Len(t, cols[1], 1)
}

func TestPickFragments(t *testing.T) {
	frags := gridPage(0, threeColumns,
		[]string{"a", "b"},
		[]string{"c", "d"},
		[]string{"e", "f"},
	)
	rows := trap.TrapRange{trap.Closed(100, 110), trap.Closed(140, 150)}

	got := PickFragments(rows, frags)
	assert.Equal(t, []string{"a", "b", "e", "f"}, texts(got))
	assert.Empty(t, PickFragments(nil, frags))
	assert.Empty(t, PickFragments(rows, []model.Fragment{}))
}
