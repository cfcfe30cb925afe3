package config

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/tsawler/traprange"
	"github.com/tsawler/traprange/export"
	"github.com/tsawler/traprange/tables"
)

var (
	// ErrInvalidFormat indicates an unsupported output format
	ErrInvalidFormat = errors.New("invalid output format")

	// ErrInvalidGrid indicates an unsupported grid mode
	ErrInvalidGrid = errors.New("invalid grid mode")

	// ErrInvalidConcurrency indicates a concurrency below one
	ErrInvalidConcurrency = errors.New("invalid concurrency")

	// ErrInvalidPage indicates a negative page index
	ErrInvalidPage = errors.New("invalid page")

	// ErrInvalidLogging indicates an invalid logger level, mode or destination
	ErrInvalidLogging = errors.New("invalid logging configuration")
)

// Validate checks cfg and returns every problem found.
func Validate(cfg *Config) error {
	var errs error

	if _, err := export.ParseFormat(cfg.Format); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrInvalidFormat, err))
	}
	if _, err := traprange.ParseGridMode(cfg.Grid); err != nil {
		errs = multierr.Append(errs, fmt.Errorf("%w: %w", ErrInvalidGrid, err))
	}
	if cfg.Concurrency < 1 {
		errs = multierr.Append(errs, fmt.Errorf("%w: must be at least 1, got %d", ErrInvalidConcurrency, cfg.Concurrency))
	}

	errs = multierr.Append(errs, validatePages("pages", cfg.Pages))
	errs = multierr.Append(errs, validatePages("except_pages", cfg.ExceptPages))
	for _, le := range cfg.ExceptLines {
		if le.Page < tables.AllPages {
			errs = multierr.Append(errs, fmt.Errorf("%w: except_lines page must be -1 or above, got %d", ErrInvalidPage, le.Page))
		}
	}

	errs = multierr.Append(errs, validateLogging(&cfg.Logging))
	return errs
}

func validatePages(key string, pages []int) error {
	var errs error
	for _, p := range pages {
		if p < 0 {
			errs = multierr.Append(errs, fmt.Errorf("%w: %s must not be negative, got %d", ErrInvalidPage, key, p))
		}
	}
	return errs
}

func validateLogging(cfg *LoggingConfig) error {
	var errs error

	if !validLevel(cfg.Console.Level) {
		errs = multierr.Append(errs, fmt.Errorf("%w: console level must be none, normal or debug, got %q", ErrInvalidLogging, cfg.Console.Level))
	}
	if !validLevel(cfg.File.Level) {
		errs = multierr.Append(errs, fmt.Errorf("%w: file level must be none, normal or debug, got %q", ErrInvalidLogging, cfg.File.Level))
	}
	switch cfg.File.Mode {
	case "", "append", "overwrite":
	default:
		errs = multierr.Append(errs, fmt.Errorf("%w: file mode must be append or overwrite, got %q", ErrInvalidLogging, cfg.File.Mode))
	}
	if cfg.File.enabled() && cfg.File.Destination == "" {
		errs = multierr.Append(errs, fmt.Errorf("%w: file logging requires a destination", ErrInvalidLogging))
	}
	return errs
}

func validLevel(level string) bool {
	switch level {
	case "", "none", "normal", "debug":
		return true
	}
	return false
}
