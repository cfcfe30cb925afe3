package model

import (
	"sort"

	"github.com/tsawler/traprange/trap"
)

// Fragment represents a piece of extracted text with its position on a page
type Fragment struct {
	Text     string
	X, Y     float64 // top-left corner, Y grows downward
	Width    float64
	Height   float64
	Page     int // 0-based page index
	FontName string
	FontSize float64
}

// VerticalRange returns [Y, Y+Height]
func (f Fragment) VerticalRange() trap.Interval {
	return trap.Closed(f.Y, f.Y+f.Height)
}

// HorizontalRange returns [X, X+Width]
func (f Fragment) HorizontalRange() trap.Interval {
	return trap.Closed(f.X, f.X+f.Width)
}

// BBox returns the fragment's bounding box
func (f Fragment) BBox() BBox {
	return NewBBox(f.X, f.Y, f.Width, f.Height)
}

// SortByY stable-sorts fragments top to bottom.
func SortByY(fragments []Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].Y < fragments[j].Y
	})
}

// SortByX stable-sorts fragments left to right.
func SortByX(fragments []Fragment) {
	sort.SliceStable(fragments, func(i, j int) bool {
		return fragments[i].X < fragments[j].X
	})
}
