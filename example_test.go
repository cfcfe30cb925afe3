package traprange_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"go.uber.org/zap"

	"github.com/tsawler/traprange"
	"github.com/tsawler/traprange/export"
	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/source"
)

// cells places one fragment per cell; rows are 20 points apart.
func cells(rows ...[]string) []model.Fragment {
	var frags []model.Fragment
	for i, row := range rows {
		for j, text := range row {
			frags = append(frags, model.Fragment{
				Text:   text,
				X:      50 + 100*float64(j),
				Y:      100 + 20*float64(i),
				Width:  6 * float64(len(text)),
				Height: 10,
			})
		}
	}
	return frags
}

func ExampleFromSource() {
	src := source.NewMemory(cells(
		[]string{"Item", "Qty", "Price"},
		[]string{"Apple", "3", "1.20"},
		[]string{"Pear", "12", "0.80"},
	))

	tbls, err := traprange.FromSource(src).Tables(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	for _, t := range tbls {
		fmt.Print(t.ToCSV())
	}
	// Output:
	// Item,Qty,Price
	// Apple,3,1.20
	// Pear,12,0.80
}

// These examples only need to compile; they require a PDF file.

func Example_extractTables() {
	tbls, err := traprange.Open("statement.pdf").Tables(context.Background())
	if err != nil {
		log.Fatal(err)
	}
	if err := export.Write(os.Stdout, export.Markdown, tbls); err != nil {
		log.Fatal(err)
	}
}

func Example_extractWithOptions() {
	logger, _ := zap.NewDevelopment()

	tbls, err := traprange.Open("statement.pdf").
		Password("secret").
		Pages(0, 1, 2).         // 0-based pages
		ExceptLinesAllPages(0). // page header
		ExceptLines(2, -1).     // last line of page 2
		Concurrency(4).
		Grid(traprange.GridDocument).
		Logger(logger).
		Tables(context.Background())
	_ = tbls
	_ = err
}
