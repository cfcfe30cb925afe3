package tables

import (
	"github.com/tsawler/traprange/model"
)

const (
	glyphWidth  = 5.0
	glyphHeight = 10.0
)

// word lays out text as touching single-glyph fragments starting at (x, y),
// the way PDF text usually arrives.
func word(page int, x, y float64, text string) []model.Fragment {
	frags := make([]model.Fragment, 0, len(text))
	for i, r := range text {
		frags = append(frags, model.Fragment{
			Text:   string(r),
			X:      x + float64(i)*glyphWidth,
			Y:      y,
			Width:  glyphWidth,
			Height: glyphHeight,
			Page:   page,
		})
	}
	return frags
}

// gridPage builds rows of cells at fixed column positions; row i sits at
// y = 100 + 20*i.
func gridPage(page int, xs []float64, rows ...[]string) []model.Fragment {
	var frags []model.Fragment
	for i, cells := range rows {
		y := 100 + 20*float64(i)
		for j, text := range cells {
			if text == "" {
				continue
			}
			frags = append(frags, word(page, xs[j], y, text)...)
		}
	}
	return frags
}

var threeColumns = []float64{50, 150, 250}

func texts(fragments []model.Fragment) []string {
	out := make([]string, len(fragments))
	for i, f := range fragments {
		out[i] = f.Text
	}
	return out
}
