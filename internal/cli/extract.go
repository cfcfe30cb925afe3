package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tsawler/traprange"
	"github.com/tsawler/traprange/export"
	"github.com/tsawler/traprange/internal/config"
	"github.com/tsawler/traprange/source"
	"github.com/tsawler/traprange/tables"
)

type extractFlags struct {
	pages          []int
	exceptPages    []int
	exceptLines    []string
	password       string
	format         string
	output         string
	concurrency    int
	grid           string
	keepWhitespace bool
	skipBroken     bool
	progress       bool
}

// newExtractCmd creates the extract command
func newExtractCmd() *cobra.Command {
	var flags extractFlags

	cmd := &cobra.Command{
		Use:   "extract <file.pdf>",
		Short: "Extract the tables of a PDF file",
		Long: `Extract finds one table per page and writes all of them in the chosen
format. Pages and lines are counted from 0; a negative line counts from the
last line of its page.

Examples:
  # All tables as CSV on stdout
  traprange extract statement.pdf

  # Pages 0 and 2, ignoring the first line of every page and the last line
  # of page 2, as Markdown
  traprange extract statement.pdf --pages 0,2 --except-lines '*:0' --except-lines 2:-1 -f markdown

  # Format taken from the output file extension
  traprange extract statement.pdf -o tables.json
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExtract(cmd, args[0], &flags)
		},
	}

	f := cmd.Flags()
	f.IntSliceVar(&flags.pages, "pages", nil, "pages to extract (default all)")
	f.IntSliceVar(&flags.exceptPages, "except-pages", nil, "pages to skip")
	f.StringArrayVar(&flags.exceptLines, "except-lines", nil, "lines to ignore as page:line,line; page * applies to every page")
	f.StringVar(&flags.password, "password", "", "password of an encrypted PDF")
	f.StringVarP(&flags.format, "format", "f", "csv", "output format: csv, markdown, html, json, yaml or text")
	f.StringVarP(&flags.output, "output", "o", "", "output file (default stdout)")
	f.IntVarP(&flags.concurrency, "concurrency", "j", 1, "pages processed in parallel")
	f.StringVar(&flags.grid, "grid", "page", "column grid per page or shared by the whole document")
	f.BoolVar(&flags.keepWhitespace, "keep-whitespace", false, "keep whitespace glyphs")
	f.BoolVar(&flags.skipBroken, "skip-broken", false, "skip pages that cannot be read")
	f.BoolVar(&flags.progress, "progress", false, "show a progress bar on stderr")

	return cmd
}

func init() {
	rootCmd.AddCommand(newExtractCmd())
}

func runExtract(cmd *cobra.Command, input string, flags *extractFlags) (err error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, flags, cfg); err != nil {
		return err
	}
	if verbose {
		cfg.Logging.Console.Level = "debug"
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid options: %w", err)
	}

	logger, cleanup, err := cfg.Logging.Prepare()
	if err != nil {
		return err
	}
	defer multierr.AppendInvoke(&err, multierr.Invoke(cleanup))
	defer func() { _ = logger.Sync() }()

	ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer cancel()

	var progress io.Writer
	if flags.progress {
		progress = cmd.ErrOrStderr()
	}
	return executeExtract(ctx, cfg, input, cmd.OutOrStdout(), progress, logger)
}

// applyFlags copies the flags given on the command line over cfg.
func applyFlags(cmd *cobra.Command, flags *extractFlags, cfg *config.Config) error {
	changed := cmd.Flags().Changed

	if changed("pages") {
		cfg.Pages = flags.pages
	}
	if changed("except-pages") {
		cfg.ExceptPages = flags.exceptPages
	}
	if changed("except-lines") {
		cfg.ExceptLines = nil
		for _, spec := range flags.exceptLines {
			le, err := parseLineExclusion(spec)
			if err != nil {
				return err
			}
			cfg.ExceptLines = append(cfg.ExceptLines, le)
		}
	}
	if changed("password") {
		cfg.Password = flags.password
	}
	if changed("output") {
		cfg.Output = flags.output
	}
	if changed("format") {
		cfg.Format = flags.format
	} else if f := export.Detect(cfg.Output); cfg.Output != "" && f != export.Unknown {
		cfg.Format = f.String()
	}
	if changed("concurrency") {
		cfg.Concurrency = flags.concurrency
	}
	if changed("grid") {
		cfg.Grid = flags.grid
	}
	if changed("keep-whitespace") {
		cfg.KeepWhitespace = flags.keepWhitespace
	}
	if changed("skip-broken") {
		cfg.SkipBrokenPages = flags.skipBroken
	}
	return nil
}

// parseLineExclusion parses "page:line,line". The page may be * or -1 for
// every page.
func parseLineExclusion(spec string) (config.LineExclusion, error) {
	pagePart, linesPart, ok := strings.Cut(spec, ":")
	if !ok || strings.TrimSpace(linesPart) == "" {
		return config.LineExclusion{}, fmt.Errorf("invalid line exclusion %q: want page:line[,line...]", spec)
	}

	le := config.LineExclusion{Page: tables.AllPages}
	if p := strings.TrimSpace(pagePart); p != "*" {
		page, err := strconv.Atoi(p)
		if err != nil {
			return config.LineExclusion{}, fmt.Errorf("invalid page in line exclusion %q: %w", spec, err)
		}
		le.Page = page
	}

	for _, field := range strings.Split(linesPart, ",") {
		line, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil {
			return config.LineExclusion{}, fmt.Errorf("invalid line in line exclusion %q: %w", spec, err)
		}
		le.Lines = append(le.Lines, line)
	}
	return le, nil
}

// executeExtract extracts the tables of input according to cfg and writes
// them to cfg.Output, or stdout when it is empty. A progress bar is drawn on
// progress when it is not nil.
func executeExtract(ctx context.Context, cfg *config.Config, input string, stdout, progress io.Writer, logger *zap.Logger) (err error) {
	format, err := export.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	grid, err := traprange.ParseGridMode(cfg.Grid)
	if err != nil {
		return err
	}

	ext := traprange.Open(input).
		Password(cfg.Password).
		Pages(cfg.Pages...).
		ExceptPages(cfg.ExceptPages...).
		Exclusions(cfg.Exclusions()).
		Concurrency(cfg.Concurrency).
		Grid(grid).
		Logger(logger)
	if cfg.KeepWhitespace {
		ext = ext.KeepWhitespace()
	}
	if cfg.SkipBrokenPages {
		ext = ext.SkipBrokenPages()
	}
	defer multierr.AppendInvoke(&err, multierr.Close(ext))

	if progress != nil {
		pages, err := ext.SelectedPages()
		if err != nil {
			return err
		}
		bar := newProgressBar(len(pages), progress)
		ext = ext.OnPageDone(func(int) { _ = bar.Add(1) })
	}

	tbls, err := ext.Tables(ctx)
	if err != nil {
		if !cfg.SkipBrokenPages || !onlyPageErrors(err) {
			return fmt.Errorf("extracting tables from %s: %w", input, err)
		}
		for _, pageErr := range multierr.Errors(err) {
			logger.Warn("Page skipped", zap.Error(pageErr))
		}
	}

	w := stdout
	if cfg.Output != "" {
		f, createErr := os.Create(cfg.Output)
		if createErr != nil {
			return fmt.Errorf("creating output: %w", createErr)
		}
		defer multierr.AppendInvoke(&err, multierr.Close(f))
		w = f
	}

	if err := export.Write(w, format, tbls); err != nil {
		return fmt.Errorf("writing %s: %w", format, err)
	}

	logger.Info("Extracted tables",
		zap.String("input", input),
		zap.Int("tables", len(tbls)),
		zap.Stringer("format", format))
	return nil
}

func onlyPageErrors(err error) bool {
	for _, e := range multierr.Errors(err) {
		if !errors.Is(e, source.ErrPage) {
			return false
		}
	}
	return true
}
