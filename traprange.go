// Package traprange provides a fluent API for extracting tables from PDF
// files.
//
// Tables are found by projecting the text of a page onto the vertical axis
// to obtain its lines, keeping the runs of consecutive lines whose
// horizontal text intervals line up, and projecting the kept text onto the
// horizontal axis to obtain the columns. No ruling lines are needed.
//
// Basic usage:
//
//	tbls, err := traprange.Open("statement.pdf").Tables(ctx)
//	if err != nil {
//	    // handle error
//	}
//	for _, t := range tbls {
//	    fmt.Print(t.ToCSV())
//	}
//
// With options:
//
//	tbls, err := traprange.Open("statement.pdf").
//	    Pages(0, 1).
//	    ExceptLinesAllPages(0, -1).
//	    Concurrency(4).
//	    Tables(ctx)
//
// Pages and lines are 0-based. A negative line index counts from the end of
// the page, so -1 is the last line.
//
// For custom pipelines the lower-level tables and source packages are also
// available.
package traprange

import (
	"errors"

	"github.com/tsawler/traprange/source"
)

// ErrPageOutOfRange is returned when a selected page is not in the document.
var ErrPageOutOfRange = errors.New("page out of range")

// Open returns an Extractor for the PDF file at path. The file is opened
// lazily by the first terminal operation.
//
// Example:
//
//	tbls, err := traprange.Open("document.pdf").Tables(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromSource creates an Extractor reading fragments from src. The caller
// keeps ownership of src and is responsible for closing it.
//
// Example:
//
//	src := source.NewMemory(page0, page1)
//	tbls, err := traprange.FromSource(src).Tables(ctx)
func FromSource(src source.Source) *Extractor {
	return &Extractor{
		src:       src,
		srcOpened: true,
		options:   defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := traprange.Must(traprange.Open("document.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
