// Package pdftest writes small uncompressed PDF documents for tests.
//
// Every document uses one monospaced-width Helvetica font at 10 points, so
// each glyph is GlyphWidth points wide, on US Letter pages whose MediaBox is
// inherited from the page tree root.
package pdftest

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const (
	// FontSize of all text
	FontSize = 10.0

	// GlyphWidth is the advance of every glyph
	GlyphWidth = 6.0

	// PageHeight of the MediaBox
	PageHeight = 792.0
)

// Text is a string drawn with its baseline at (X, Y), bottom-origin.
type Text struct {
	X, Y float64
	S    string
}

// Page lists the texts drawn on one page.
type Page []Text

// Grid lays out rows of cells at the given x positions. Row i has its
// baseline at 700 - 20*i; empty cells are skipped.
func Grid(xs []float64, rows ...[]string) Page {
	var page Page
	for i, cells := range rows {
		for j, s := range cells {
			if s != "" {
				page = append(page, Text{X: xs[j], Y: 700 - 20*float64(i), S: s})
			}
		}
	}
	return page
}

// Build returns the bytes of a PDF holding pages.
func Build(pages ...Page) []byte {
	var (
		buf     bytes.Buffer
		offsets []int
	)
	object := func(body string) {
		offsets = append(offsets, buf.Len())
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", len(offsets), body)
	}

	buf.WriteString("%PDF-1.4\n")

	kids := make([]string, len(pages))
	for i := range pages {
		kids[i] = fmt.Sprintf("%d 0 R", 4+2*i)
	}
	object("<< /Type /Catalog /Pages 2 0 R >>")
	object(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d /MediaBox [0 0 612 %g] >>",
		strings.Join(kids, " "), len(pages), PageHeight))
	object("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding" +
		" /FirstChar 32 /LastChar 126 /Widths [" + strings.TrimSpace(strings.Repeat("600 ", 95)) + "] >>")

	for i, page := range pages {
		var content strings.Builder
		for _, t := range page {
			fmt.Fprintf(&content, "BT /F1 %g Tf %g %g Td (%s) Tj ET\n", FontSize, t.X, t.Y, escape(t.S))
		}
		object(fmt.Sprintf("<< /Type /Page /Parent 2 0 R /Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", 5+2*i))
		object(fmt.Sprintf("<< /Length %d >>\nstream\n%sendstream", content.Len(), content.String()))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(offsets)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)
	return buf.Bytes()
}

// Write stores a PDF holding pages in dir and returns its path.
func Write(tb testing.TB, dir string, pages ...Page) string {
	tb.Helper()
	path := filepath.Join(dir, "tables.pdf")
	if err := os.WriteFile(path, Build(pages...), 0644); err != nil {
		tb.Fatalf("writing test PDF: %v", err)
	}
	return path
}

func escape(s string) string {
	return strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`).Replace(s)
}
