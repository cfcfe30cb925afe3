package source

import (
	"context"

	"github.com/tsawler/traprange/model"
)

// Memory is a Source over fragments already held in memory.
type Memory struct {
	pages    [][]model.Fragment
	failures map[int]error
	closed   bool
}

// Ensure Memory implements Source
var _ Source = (*Memory)(nil)

// NewMemory creates a source whose page i holds pages[i].
func NewMemory(pages ...[]model.Fragment) *Memory {
	return &Memory{pages: pages}
}

// FailPage makes Fragments fail for page with the given cause. It is meant
// for exercising error handling.
func (m *Memory) FailPage(page int, cause error) *Memory {
	if m.failures == nil {
		m.failures = make(map[int]error)
	}
	m.failures[page] = cause
	return m
}

// PageCount returns the number of pages
func (m *Memory) PageCount() (int, error) {
	return len(m.pages), nil
}

// Fragments returns a sorted copy of the page's fragments with their Page
// field set to page.
func (m *Memory) Fragments(ctx context.Context, page int) ([]model.Fragment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if page < 0 || page >= len(m.pages) {
		return nil, pageError(page, ErrNoPage, nil)
	}
	if cause, ok := m.failures[page]; ok {
		return nil, pageError(page, ErrPage, cause)
	}

	frags := make([]model.Fragment, len(m.pages[page]))
	copy(frags, m.pages[page])
	for i := range frags {
		frags[i].Page = page
	}
	model.SortByY(frags)
	return frags, nil
}

// Close marks the source closed
func (m *Memory) Close() error {
	m.closed = true
	return nil
}

// Closed reports whether Close has been called
func (m *Memory) Closed() bool {
	return m.closed
}
