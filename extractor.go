package traprange

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/source"
	"github.com/tsawler/traprange/tables"
	"github.com/tsawler/traprange/trap"
)

// Extractor provides a fluent interface for extracting tables.
// Each configuration method returns a new Extractor instance, making it
// safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	src      source.Source

	// Lifecycle
	ownsSource bool // true if we opened the source and should close it
	srcOpened  bool

	// Configuration
	options ExtractOptions
}

// pageResult holds what was obtained for one requested page.
type pageResult struct {
	layout tables.PageLayout
	table  *model.Table
	done   bool
	err    error
}

// clone creates a shallow copy of the Extractor with a deep copy of options.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:   e.filename,
		src:        e.src,
		ownsSource: e.ownsSource,
		srcOpened:  e.srcOpened,
		options:    e.options.clone(),
	}
}

// ensureSource opens the PDF if not already open.
func (e *Extractor) ensureSource() error {
	if e.srcOpened {
		return nil
	}
	if e.filename == "" {
		return fmt.Errorf("no filename specified")
	}

	opts := []source.PDFOption{source.WithWhitespace(e.options.keepWhitespace)}
	if e.options.password != "" {
		opts = append(opts, source.WithPassword(e.options.password))
	}
	src, err := source.OpenPDF(e.filename, opts...)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", e.filename, err)
	}
	e.src = src
	e.ownsSource = true
	e.srcOpened = true
	return nil
}

// Close releases the document if the Extractor opened it.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if !e.ownsSource || e.src == nil {
		return nil
	}
	err := e.src.Close()
	e.src = nil
	e.ownsSource = false
	e.srcOpened = false
	return err
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Pages restricts extraction to the given 0-based pages.
// Multiple calls are cumulative.
//
// Example:
//
//	tbls, err := traprange.Open("doc.pdf").Pages(0, 2).Tables(ctx)
func (e *Extractor) Pages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.pages = append(newExt.options.pages, pages...)
	return newExt
}

// ExceptPages skips the given 0-based pages. Pages outside the document are
// ignored.
func (e *Extractor) ExceptPages(pages ...int) *Extractor {
	newExt := e.clone()
	newExt.options.exceptPages = append(newExt.options.exceptPages, pages...)
	return newExt
}

// ExceptLines ignores the given lines of a page. Negative line indices
// count from the end of the page; page tables.AllPages applies to every
// page.
//
// Example:
//
//	// drop the first and last line of page 3
//	tbls, err := traprange.Open("doc.pdf").ExceptLines(3, 0, -1).Tables(ctx)
func (e *Extractor) ExceptLines(page int, lines ...int) *Extractor {
	newExt := e.clone()
	newExt.options.exclusions = newExt.options.exclusions.With(page, lines...)
	return newExt
}

// ExceptLinesAllPages ignores the given lines on every page.
func (e *Extractor) ExceptLinesAllPages(lines ...int) *Extractor {
	return e.ExceptLines(tables.AllPages, lines...)
}

// Exclusions adds every line exclusion of ex.
func (e *Extractor) Exclusions(ex tables.Exclusions) *Extractor {
	newExt := e.clone()
	for _, page := range ex.Pages() {
		newExt.options.exclusions = newExt.options.exclusions.With(page, ex.Lines(page)...)
	}
	return newExt
}

// Password sets the password used to decrypt the PDF.
func (e *Extractor) Password(password string) *Extractor {
	newExt := e.clone()
	newExt.options.password = password
	return newExt
}

// KeepWhitespace keeps whitespace glyphs of the PDF as fragments.
func (e *Extractor) KeepWhitespace() *Extractor {
	newExt := e.clone()
	newExt.options.keepWhitespace = true
	return newExt
}

// Concurrency sets how many pages are processed at once. Values below 1
// mean 1.
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	if n < 1 {
		n = 1
	}
	newExt.options.concurrency = n
	return newExt
}

// Grid selects how column grids are computed.
func (e *Extractor) Grid(mode GridMode) *Extractor {
	newExt := e.clone()
	newExt.options.grid = mode
	return newExt
}

// SkipBrokenPages makes unreadable pages non-fatal. They are logged and
// skipped, and their errors are returned together with the tables of the
// remaining pages.
func (e *Extractor) SkipBrokenPages() *Extractor {
	newExt := e.clone()
	newExt.options.skipBroken = true
	return newExt
}

// OnPageDone registers fn to be called after each page has been processed
// or skipped. fn may be called from several goroutines at once.
func (e *Extractor) OnPageDone(fn func(page int)) *Extractor {
	newExt := e.clone()
	newExt.options.onPageDone = fn
	return newExt
}

// Logger sets the logger. The default discards everything.
func (e *Extractor) Logger(log *zap.Logger) *Extractor {
	newExt := e.clone()
	if log == nil {
		log = zap.NewNop()
	}
	newExt.options.logger = log
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages in the document.
// Note: This does NOT close the document, allowing further operations.
func (e *Extractor) PageCount() (int, error) {
	if err := e.ensureSource(); err != nil {
		return 0, err
	}
	return e.src.PageCount()
}

// SelectedPages returns the 0-based pages Tables would process.
func (e *Extractor) SelectedPages() ([]int, error) {
	if err := e.ensureSource(); err != nil {
		return nil, err
	}
	return e.resolvePages()
}

// Tables extracts one table per selected page that has at least one table
// row, in ascending page order. This is a terminal operation that closes a
// document opened by Open.
//
// When ctx is cancelled the tables of the pages finished so far are
// returned together with ctx.Err().
func (e *Extractor) Tables(ctx context.Context) ([]*model.Table, error) {
	if err := e.ensureSource(); err != nil {
		return nil, err
	}
	defer e.Close()

	pages, err := e.resolvePages()
	if err != nil {
		return nil, err
	}

	log := e.options.logger
	log.Debug("Extracting tables",
		zap.Ints("pages", pages),
		zap.Int("concurrency", e.options.concurrency),
		zap.Stringer("grid", e.options.grid))

	detector := tables.NewDetectorWithConfig(tables.Config{
		Exclusions: e.options.exclusions,
		Logger:     log,
	})

	results := make([]pageResult, len(pages))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.options.concurrency)

	for i, page := range pages {
		if gctx.Err() != nil {
			break
		}
		i, page := i, page
		g.Go(func() error {
			return e.processPage(gctx, detector, page, &results[i])
		})
	}
	waitErr := g.Wait()

	if ctxErr := ctx.Err(); ctxErr != nil {
		tbls, pageErrs := e.collect(detector, results)
		return tbls, multierr.Append(ctxErr, pageErrs)
	}
	if waitErr != nil {
		return nil, waitErr
	}

	tbls, pageErrs := e.collect(detector, results)
	log.Debug("Extraction finished", zap.Int("tables", len(tbls)))
	return tbls, pageErrs
}

// processPage loads and analyses one page. In GridPage mode the table is
// built right away; GridDocument has to wait for every page.
func (e *Extractor) processPage(ctx context.Context, detector *tables.Detector, page int, res *pageResult) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	frags, err := e.src.Fragments(ctx, page)
	if err != nil {
		if e.options.skipBroken && errors.Is(err, source.ErrPage) {
			e.options.logger.Warn("Skipping unreadable page", zap.Int("page", page), zap.Error(err))
			res.err = err
			e.pageDone(page)
			return nil
		}
		return err
	}

	res.layout = detector.Analyze(page, frags)
	if e.options.grid == GridPage {
		res.table = detector.Build(res.layout, tables.ColumnRanges(res.layout.Fragments))
	}
	res.done = true
	e.pageDone(page)
	return nil
}

func (e *Extractor) pageDone(page int) {
	if e.options.onPageDone != nil {
		e.options.onPageDone(page)
	}
}

// collect assembles the non-empty tables of the finished pages in page
// order and combines the errors of skipped pages.
func (e *Extractor) collect(detector *tables.Detector, results []pageResult) ([]*model.Table, error) {
	var docColumns trap.TrapRange
	if e.options.grid == GridDocument {
		var all []model.Fragment
		for _, res := range results {
			if res.done {
				all = append(all, res.layout.Fragments...)
			}
		}
		docColumns = tables.ColumnRanges(all)
	}

	var (
		out  []*model.Table
		errs error
	)
	for _, res := range results {
		if res.err != nil {
			errs = multierr.Append(errs, res.err)
		}
		if !res.done {
			continue
		}
		table := res.table
		if table == nil {
			table = detector.Build(res.layout, docColumns)
		}
		if !table.IsEmpty() {
			out = append(out, table)
		}
	}
	return out, errs
}

// resolvePages validates the page selection and returns it sorted, without
// duplicates and without excepted pages. No selection means all pages.
func (e *Extractor) resolvePages() ([]int, error) {
	pageCount, err := e.src.PageCount()
	if err != nil {
		return nil, fmt.Errorf("failed to get page count: %w", err)
	}

	except := make(map[int]bool, len(e.options.exceptPages))
	for _, p := range e.options.exceptPages {
		except[p] = true
	}

	var candidates []int
	if len(e.options.pages) == 0 {
		candidates = make([]int, pageCount)
		for i := range candidates {
			candidates[i] = i
		}
	} else {
		for _, p := range e.options.pages {
			if p < 0 || p >= pageCount {
				return nil, fmt.Errorf("%w: page %d (document has %d pages)", ErrPageOutOfRange, p, pageCount)
			}
		}
		candidates = e.options.pages
	}

	seen := make(map[int]bool, len(candidates))
	pages := make([]int, 0, len(candidates))
	for _, p := range candidates {
		if except[p] || seen[p] {
			continue
		}
		seen[p] = true
		pages = append(pages, p)
	}

	sort.Ints(pages)
	return pages, nil
}
