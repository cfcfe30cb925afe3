// Package export renders extracted tables in the supported output formats.
//
// Every format writes the tables in the order given. Rows are padded to the
// table's column count, so a cell missing from a row renders as an empty
// cell.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
	"gopkg.in/yaml.v3"

	"github.com/tsawler/traprange/model"
)

// Write renders tables to w in format f.
func Write(w io.Writer, f Format, tables []*model.Table) error {
	switch f {
	case CSV:
		return writeBlocks(w, tables, func(t *model.Table) string { return t.ToCSV() })
	case Text:
		return writeBlocks(w, tables, func(t *model.Table) string { return t.Text() })
	case Markdown:
		return writeMarkdown(w, tables)
	case HTML:
		return writeHTML(w, tables)
	case JSON:
		return writeJSON(w, tables)
	case YAML:
		return writeYAML(w, tables)
	default:
		return fmt.Errorf("cannot write format %s", f)
	}
}

// writeBlocks writes one block per table separated by a blank line
func writeBlocks(w io.Writer, tables []*model.Table, render func(*model.Table) string) error {
	for i, t := range tables {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, render(t)); err != nil {
			return err
		}
	}
	return nil
}

func writeMarkdown(w io.Writer, tables []*model.Table) error {
	return writeBlocks(w, tables, func(t *model.Table) string {
		return fmt.Sprintf("## Page %d\n\n%s", t.Page, t.ToMarkdown())
	})
}

func writeHTML(w io.Writer, tables []*model.Table) error {
	for _, t := range tables {
		if err := html.Render(w, tableNode(t)); err != nil {
			return fmt.Errorf("rendering table for page %d: %w", t.Page, err)
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

// tableNode builds the <table> element for t. The first row is rendered as
// header cells.
func tableNode(t *model.Table) *html.Node {
	table := element(atom.Table)
	table.Attr = []html.Attribute{{Key: "data-page", Val: strconv.Itoa(t.Page)}}

	for i, row := range t.Grid() {
		cellAtom := atom.Td
		if i == 0 {
			cellAtom = atom.Th
		}
		tr := element(atom.Tr)
		for _, text := range row {
			cell := element(cellAtom)
			if text != "" {
				cell.AppendChild(&html.Node{Type: html.TextNode, Data: text})
			}
			tr.AppendChild(cell)
		}
		table.AppendChild(tr)
	}
	return table
}

func element(a atom.Atom) *html.Node {
	return &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
}

func writeJSON(w io.Writer, tables []*model.Table) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(nonNil(tables)); err != nil {
		return fmt.Errorf("encoding json: %w", err)
	}
	return nil
}

func writeYAML(w io.Writer, tables []*model.Table) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(nonNil(tables)); err != nil {
		return fmt.Errorf("encoding yaml: %w", err)
	}
	return enc.Close()
}

func nonNil(tables []*model.Table) []*model.Table {
	if tables == nil {
		return []*model.Table{}
	}
	return tables
}
