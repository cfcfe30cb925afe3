package tables

import (
	"go.uber.org/zap"

	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/trap"
)

// Config holds detector configuration
type Config struct {
	// Lines to ignore before table detection
	Exclusions Exclusions

	// Logger receives debug output; nil disables logging
	Logger *zap.Logger
}

// DefaultConfig returns default configuration
func DefaultConfig() Config {
	return Config{
		Logger: zap.NewNop(),
	}
}

// PageLayout is the outcome of analysing one page: its text lines, the
// table regions found among them and the rows and fragments kept for
// building the table.
type PageLayout struct {
	Page int

	// Lines are all text lines left after exclusions, top to bottom
	Lines trap.TrapRange

	// Regions index into Lines
	Regions []Region

	// Rows are the lines inside regions
	Rows trap.TrapRange

	// Fragments are the fragments enclosed by Rows, top to bottom
	Fragments []model.Fragment
}

// Detector reconstructs tables from the fragments of a page. It holds no
// per-page state, so one Detector may serve many goroutines.
type Detector struct {
	config Config
	log    *zap.Logger
}

// NewDetector creates a detector with default configuration.
func NewDetector() *Detector {
	return NewDetectorWithConfig(DefaultConfig())
}

// NewDetectorWithConfig creates a detector with the given configuration.
func NewDetectorWithConfig(config Config) *Detector {
	d := &Detector{}
	d.Configure(config)
	return d
}

// Name returns the detector's identifier ("traprange").
func (d *Detector) Name() string {
	return "traprange"
}

// Configure sets the detector configuration.
func (d *Detector) Configure(config Config) {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	d.config = config
	d.log = config.Logger.Named(d.Name())
}

// Config returns the current configuration
func (d *Detector) Config() Config {
	return d.config
}

// Analyze groups the fragments of a page into lines, finds the table
// regions among them and keeps the rows and fragments belonging to those
// regions. The input slice is not modified.
func (d *Detector) Analyze(page int, fragments []model.Fragment) PageLayout {
	sorted := make([]model.Fragment, len(fragments))
	copy(sorted, fragments)
	model.SortByY(sorted)

	lines := LineRanges(page, sorted, d.config.Exclusions)
	regions := DetectRegions(RowColumns(sorted, lines))
	rows := ApplyRegions(lines, regions)
	kept := PickFragments(rows, sorted)

	d.log.Debug("Analyzed page",
		zap.Int("page", page),
		zap.Int("fragments", len(fragments)),
		zap.Int("lines", len(lines)),
		zap.Stringers("regions", regions),
		zap.Int("rows", len(rows)),
		zap.Int("kept", len(kept)))

	return PageLayout{
		Page:      page,
		Lines:     lines,
		Regions:   regions,
		Rows:      rows,
		Fragments: kept,
	}
}

// Build assigns the retained fragments of a layout to its rows and to the
// given column grid.
func (d *Detector) Build(layout PageLayout, columns trap.TrapRange) *model.Table {
	table := BuildTable(layout.Page, layout.Fragments, layout.Rows, columns)

	d.log.Debug("Built table",
		zap.Int("page", layout.Page),
		zap.Int("rows", table.RowCount()),
		zap.Int("columns", table.ColCount()))

	return table
}

// Detect runs Analyze and Build with a column grid computed from the page's
// own retained fragments. When a page holds several table regions they
// share that grid.
func (d *Detector) Detect(page int, fragments []model.Fragment) *model.Table {
	layout := d.Analyze(page, fragments)
	return d.Build(layout, ColumnRanges(layout.Fragments))
}
