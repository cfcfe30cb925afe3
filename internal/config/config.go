// Package config holds the command line configuration of traprange and
// loads it from defaults, an optional YAML file and TRAPRANGE_* environment
// variables.
package config

import (
	"github.com/tsawler/traprange/tables"
)

// Config represents the complete traprange configuration.
type Config struct {
	Pages           []int           `yaml:"pages" mapstructure:"pages"`               // 0-based, empty means all
	ExceptPages     []int           `yaml:"except_pages" mapstructure:"except_pages"` // 0-based
	ExceptLines     []LineExclusion `yaml:"except_lines" mapstructure:"except_lines"`
	Password        string          `yaml:"password" mapstructure:"password"`
	Format          string          `yaml:"format" mapstructure:"format"` // csv, markdown, html, json, yaml or text
	Output          string          `yaml:"output" mapstructure:"output"` // empty writes to stdout
	Concurrency     int             `yaml:"concurrency" mapstructure:"concurrency"`
	Grid            string          `yaml:"grid" mapstructure:"grid"` // page or document
	KeepWhitespace  bool            `yaml:"keep_whitespace" mapstructure:"keep_whitespace"`
	SkipBrokenPages bool            `yaml:"skip_broken_pages" mapstructure:"skip_broken_pages"`
	Logging         LoggingConfig   `yaml:"logging" mapstructure:"logging"`
}

// LineExclusion lists lines to ignore on one page. Page -1 applies to every
// page; negative lines count from the last line.
type LineExclusion struct {
	Page  int   `yaml:"page" mapstructure:"page"`
	Lines []int `yaml:"lines" mapstructure:"lines"`
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Format:      "csv",
		Concurrency: 1,
		Grid:        "page",
		Logging: LoggingConfig{
			Console: LoggerConfig{Level: "normal"},
			File:    LoggerConfig{Level: "none", Mode: "append"},
		},
	}
}

// Exclusions converts the configured line exclusions.
func (c *Config) Exclusions() tables.Exclusions {
	var ex tables.Exclusions
	for _, le := range c.ExceptLines {
		ex = ex.With(le.Page, le.Lines...)
	}
	return ex
}
