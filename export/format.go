package export

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Format represents a supported output format.
type Format int

const (
	// Unknown indicates an unrecognized format.
	Unknown Format = iota
	// CSV writes comma separated values, one block per table.
	CSV
	// Markdown writes a pipe table per page.
	Markdown
	// HTML writes one <table> element per page.
	HTML
	// JSON writes the table structures.
	JSON
	// YAML writes the table structures.
	YAML
	// Text writes tab separated rows.
	Text
)

// Formats lists every supported format in display order.
var Formats = []Format{CSV, Markdown, HTML, JSON, YAML, Text}

// String returns the name used on the command line.
func (f Format) String() string {
	switch f {
	case CSV:
		return "csv"
	case Markdown:
		return "markdown"
	case HTML:
		return "html"
	case JSON:
		return "json"
	case YAML:
		return "yaml"
	case Text:
		return "text"
	default:
		return "unknown"
	}
}

// Extension returns the typical file extension for the format.
func (f Format) Extension() string {
	switch f {
	case CSV:
		return ".csv"
	case Markdown:
		return ".md"
	case HTML:
		return ".html"
	case JSON:
		return ".json"
	case YAML:
		return ".yaml"
	case Text:
		return ".txt"
	default:
		return ""
	}
}

// ParseFormat returns the format with the given name. "md", "yml" and "txt"
// are accepted as aliases.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "csv":
		return CSV, nil
	case "markdown", "md":
		return Markdown, nil
	case "html":
		return HTML, nil
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	case "text", "txt":
		return Text, nil
	default:
		return Unknown, fmt.Errorf("unknown output format %q", name)
	}
}

// Detect determines the format from a filename extension.
func Detect(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".csv":
		return CSV
	case ".md", ".markdown":
		return Markdown
	case ".html", ".htm":
		return HTML
	case ".json":
		return JSON
	case ".yaml", ".yml":
		return YAML
	case ".txt", ".tsv":
		return Text
	default:
		return Unknown
	}
}
