// Package source provides the positioned text fragments the table detector
// works on.
//
// A [Source] hands out the fragments of one page at a time, sorted top to
// bottom, in top-origin page coordinates. [PDF] reads them from a PDF file;
// [Memory] serves fragments already held in memory, which is convenient for
// tests and for callers running their own extraction.
package source

import (
	"context"
	"errors"
	"fmt"

	"github.com/tsawler/traprange/model"
)

var (
	// ErrOpen is returned when a document cannot be opened or decrypted.
	ErrOpen = errors.New("cannot open document")

	// ErrPage is returned when the content of a page cannot be read.
	ErrPage = errors.New("cannot read page")

	// ErrNoPage is returned for a page index outside the document.
	ErrNoPage = errors.New("no such page")
)

// Source yields the text fragments of a document page by page.
type Source interface {
	// PageCount returns the number of pages in the document.
	PageCount() (int, error)

	// Fragments returns the fragments of the 0-based page, sorted by
	// ascending Y.
	Fragments(ctx context.Context, page int) ([]model.Fragment, error)

	// Close releases the underlying document.
	Close() error
}

// PageError reports a failure to obtain the fragments of one page.
type PageError struct {
	Page int
	Err  error
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}

func pageError(page int, kind error, cause error) error {
	if cause == nil {
		return &PageError{Page: page, Err: kind}
	}
	return &PageError{Page: page, Err: fmt.Errorf("%w: %w", kind, cause)}
}
