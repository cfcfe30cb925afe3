package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"unicode"

	"github.com/ledongthuc/pdf"
	"go.uber.org/multierr"
	"golang.org/x/text/unicode/norm"

	"github.com/tsawler/traprange/model"
)

// defaultPageHeight is used when a page has no usable MediaBox (US Letter)
const defaultPageHeight = 792.0

// PDFOption configures a PDF source
type PDFOption func(*pdfOptions)

type pdfOptions struct {
	password       string
	keepWhitespace bool
	form           norm.Form
	normalize      bool
}

func defaultPDFOptions() pdfOptions {
	return pdfOptions{
		form:      norm.NFC,
		normalize: true,
	}
}

// WithPassword sets the password used to decrypt the document.
func WithPassword(password string) PDFOption {
	return func(o *pdfOptions) {
		o.password = password
	}
}

// WithWhitespace keeps whitespace-only glyphs. They are dropped by default
// because their width would bridge the gap between neighbouring columns.
func WithWhitespace(keep bool) PDFOption {
	return func(o *pdfOptions) {
		o.keepWhitespace = keep
	}
}

// WithNormalization sets the Unicode normalization form applied to glyph
// text (NFC by default).
func WithNormalization(form norm.Form) PDFOption {
	return func(o *pdfOptions) {
		o.form = form
		o.normalize = true
	}
}

// WithoutNormalization leaves glyph text exactly as decoded.
func WithoutNormalization() PDFOption {
	return func(o *pdfOptions) {
		o.normalize = false
	}
}

// PDF is a Source reading glyphs from a PDF document.
type PDF struct {
	mu      sync.Mutex
	reader  *pdf.Reader
	closer  io.Closer
	options pdfOptions
}

// Ensure PDF implements Source
var _ Source = (*PDF)(nil)

// OpenPDF opens the PDF file at path.
func OpenPDF(path string, opts ...PDFOption) (*PDF, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	info, err := f.Stat()
	if err != nil {
		return nil, multierr.Append(fmt.Errorf("%w: %w", ErrOpen, err), f.Close())
	}

	src, err := NewPDF(f, info.Size(), opts...)
	if err != nil {
		return nil, multierr.Append(err, f.Close())
	}
	src.closer = f
	return src, nil
}

// NewPDF reads a PDF document of the given size from r. The caller keeps
// ownership of r.
func NewPDF(r io.ReaderAt, size int64, opts ...PDFOption) (src *PDF, err error) {
	options := defaultPDFOptions()
	for _, opt := range opts {
		opt(&options)
	}

	// the parser panics on some malformed documents
	defer func() {
		if p := recover(); p != nil {
			src, err = nil, fmt.Errorf("%w: %v", ErrOpen, p)
		}
	}()

	var reader *pdf.Reader
	if options.password != "" {
		reader, err = pdf.NewReaderEncrypted(r, size, passwordOnce(options.password))
	} else {
		reader, err = pdf.NewReader(r, size)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}

	return &PDF{reader: reader, options: options}, nil
}

// passwordOnce supplies the password on the first call and then an empty
// string, which makes the reader stop retrying.
func passwordOnce(password string) func() string {
	used := false
	return func() string {
		if used {
			return ""
		}
		used = true
		return password
	}
}

// PageCount returns the number of pages in the document
func (p *PDF) PageCount() (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.reader.NumPage(), nil
}

// Fragments returns one fragment per glyph of the 0-based page.
func (p *PDF) Fragments(ctx context.Context, page int) (frags []model.Fragment, err error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if page < 0 || page >= p.reader.NumPage() {
		return nil, pageError(page, ErrNoPage, nil)
	}

	defer func() {
		if r := recover(); r != nil {
			frags, err = nil, pageError(page, ErrPage, fmt.Errorf("%v", r))
		}
	}()

	pg := p.reader.Page(page + 1)
	if pg.V.IsNull() {
		return nil, pageError(page, ErrPage, errors.New("missing page object"))
	}

	content := pg.Content()
	return convertGlyphs(page, pageHeight(pg), content.Text, p.options), nil
}

// Close closes the file opened by OpenPDF
func (p *PDF) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closer == nil {
		return nil
	}
	err := p.closer.Close()
	p.closer = nil
	return err
}

// pageHeight reads the height of the page's MediaBox, following the page
// tree for inherited values.
func pageHeight(pg pdf.Page) float64 {
	for v := pg.V; !v.IsNull(); v = v.Key("Parent") {
		box := v.Key("MediaBox")
		if box.IsNull() || box.Len() < 4 {
			continue
		}
		if h := box.Index(3).Float64() - box.Index(1).Float64(); h > 0 {
			return h
		}
	}
	return defaultPageHeight
}

// convertGlyphs turns the library's glyph records, positioned by their
// baseline in bottom-origin coordinates, into top-origin fragments sorted
// top to bottom.
func convertGlyphs(page int, height float64, glyphs []pdf.Text, options pdfOptions) []model.Fragment {
	frags := make([]model.Fragment, 0, len(glyphs))
	for _, g := range glyphs {
		text := g.S
		if !options.keepWhitespace && isBlank(text) {
			continue
		}
		if options.normalize {
			text = options.form.String(text)
		}
		frags = append(frags, model.Fragment{
			Text:     text,
			X:        g.X,
			Y:        height - g.Y - g.FontSize,
			Width:    g.W,
			Height:   g.FontSize,
			Page:     page,
			FontName: g.Font,
			FontSize: g.FontSize,
		})
	}
	model.SortByY(frags)
	return frags
}

func isBlank(s string) bool {
	return strings.TrimFunc(s, unicode.IsSpace) == ""
}
