package traprange

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/tsawler/traprange/tables"
)

// GridMode selects how the column grid of a table is computed.
type GridMode int

const (
	// GridPage computes the column grid from each page's own table
	// fragments. Several tables on one page share that grid.
	GridPage GridMode = iota

	// GridDocument computes one column grid from the table fragments of
	// every processed page and applies it to all of them.
	GridDocument
)

// String returns the mode's name
func (m GridMode) String() string {
	switch m {
	case GridPage:
		return "page"
	case GridDocument:
		return "document"
	default:
		return fmt.Sprintf("GridMode(%d)", int(m))
	}
}

// ParseGridMode parses "page" or "document".
func ParseGridMode(name string) (GridMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "page":
		return GridPage, nil
	case "document", "doc":
		return GridDocument, nil
	default:
		return GridPage, fmt.Errorf("unknown grid mode %q", name)
	}
}

// ExtractOptions holds configuration for table extraction.
type ExtractOptions struct {
	// Page selection, 0-based; nil means all pages
	pages       []int
	exceptPages []int

	exclusions tables.Exclusions

	// PDF opening
	password       string
	keepWhitespace bool

	// Processing
	concurrency int
	grid        GridMode
	skipBroken  bool
	onPageDone  func(page int)
	logger      *zap.Logger
}

// defaultOptions returns the default extraction options.
func defaultOptions() ExtractOptions {
	return ExtractOptions{
		concurrency: 1,
		grid:        GridPage,
		logger:      zap.NewNop(),
	}
}

// clone creates a deep copy of ExtractOptions. Exclusions are immutable and
// shared.
func (o ExtractOptions) clone() ExtractOptions {
	newOpts := o
	newOpts.pages = cloneInts(o.pages)
	newOpts.exceptPages = cloneInts(o.exceptPages)
	return newOpts
}

func cloneInts(in []int) []int {
	if in == nil {
		return nil
	}
	out := make([]int, len(in))
	copy(out, in)
	return out
}
