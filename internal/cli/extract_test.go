package cli

// Test Plan for Extract Command:
// - parseLineExclusion accepts page:line lists, * and -1 pages
// - parseLineExclusion rejects malformed specs
// - applyFlags overrides only flags given, derives the format from -o
// - executeExtract writes CSV to stdout by default
// - executeExtract writes to the output file in the configured format
// - executeExtract draws a progress bar when asked
// - executeExtract reports unreadable input
// - the extract command wires flags through to the output
// - the version command prints the version

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/tsawler/traprange/internal/config"
	"github.com/tsawler/traprange/internal/pdftest"
	"github.com/tsawler/traprange/model"
	"github.com/tsawler/traprange/source"
)

var priceColumns = []float64{50, 150, 250}

func writeSamplePDF(t *testing.T) string {
	t.Helper()
	return pdftest.Write(t, t.TempDir(),
		pdftest.Grid(priceColumns,
			[]string{"Name", "Qty", "Price"},
			[]string{"Apple", "3", "1.20"},
			[]string{"Pear", "12", "0.80"},
		),
		pdftest.Page{{X: 72, Y: 700, S: "Closing remarks"}},
	)
}

func TestParseLineExclusion(t *testing.T) {
	tests := []struct {
		spec string
		want config.LineExclusion
	}{
		{"2:0", config.LineExclusion{Page: 2, Lines: []int{0}}},
		{"0:0,-1", config.LineExclusion{Page: 0, Lines: []int{0, -1}}},
		{"*:1", config.LineExclusion{Page: -1, Lines: []int{1}}},
		{"-1: 3, 4", config.LineExclusion{Page: -1, Lines: []int{3, 4}}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			got, err := parseLineExclusion(tt.spec)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLineExclusion_Invalid(t *testing.T) {
	for _, spec := range []string{"", "3", "3:", "x:1", "1:a", "1:2,,3"} {
		_, err := parseLineExclusion(spec)
		assert.Error(t, err, spec)
	}
}

func TestApplyFlags(t *testing.T) {
	cmd := newExtractCmd()
	require.NoError(t, cmd.ParseFlags([]string{
		"--pages", "0,2",
		"--except-lines", "*:0",
		"--except-lines", "2:-1",
		"-o", "out.md",
		"-j", "3",
		"--skip-broken",
	}))

	var flags extractFlags
	flags.pages = []int{0, 2}
	flags.exceptLines = []string{"*:0", "2:-1"}
	flags.output = "out.md"
	flags.concurrency = 3
	flags.skipBroken = true

	cfg := config.Default()
	cfg.Password = "from-file"
	require.NoError(t, applyFlags(cmd, &flags, cfg))

	assert.Equal(t, []int{0, 2}, cfg.Pages)
	assert.Equal(t, []config.LineExclusion{
		{Page: -1, Lines: []int{0}},
		{Page: 2, Lines: []int{-1}},
	}, cfg.ExceptLines)
	assert.Equal(t, "markdown", cfg.Format, "format follows the output extension")
	assert.Equal(t, 3, cfg.Concurrency)
	assert.True(t, cfg.SkipBrokenPages)
	assert.Equal(t, "from-file", cfg.Password, "flags not given keep configured values")
	assert.Equal(t, "page", cfg.Grid)
}

func TestApplyFlags_ExplicitFormatWins(t *testing.T) {
	cmd := newExtractCmd()
	require.NoError(t, cmd.ParseFlags([]string{"-o", "out.md", "-f", "json"}))

	cfg := config.Default()
	require.NoError(t, applyFlags(cmd, &extractFlags{output: "out.md", format: "json"}, cfg))
	assert.Equal(t, "json", cfg.Format)
}

func TestExecuteExtract_Stdout(t *testing.T) {
	path := writeSamplePDF(t)

	var out bytes.Buffer
	err := executeExtract(context.Background(), config.Default(), path, &out, nil, zaptest.NewLogger(t))
	require.NoError(t, err)
	assert.Equal(t, "Name,Qty,Price\nApple,3,1.20\nPear,12,0.80\n", out.String())
}

func TestExecuteExtract_OutputFile(t *testing.T) {
	path := writeSamplePDF(t)
	outPath := filepath.Join(t.TempDir(), "tables.json")

	cfg := config.Default()
	cfg.Format = "json"
	cfg.Output = outPath
	cfg.Concurrency = 2

	var stdout bytes.Buffer
	require.NoError(t, executeExtract(context.Background(), cfg, path, &stdout, nil, zaptest.NewLogger(t)))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	var tbls []model.Table
	require.NoError(t, json.Unmarshal(data, &tbls))
	require.Len(t, tbls, 1)
	assert.Equal(t, 0, tbls[0].Page)
	assert.Equal(t, 3, tbls[0].ColumnCount)
	assert.Equal(t, "Pear", tbls[0].Rows[2].Cells[0].Text)
}

func TestExecuteExtract_Progress(t *testing.T) {
	path := writeSamplePDF(t)

	var out, progress bytes.Buffer
	require.NoError(t, executeExtract(context.Background(), config.Default(), path, &out, &progress, zaptest.NewLogger(t)))
	assert.Contains(t, progress.String(), "Extracting pages")
	assert.NotEmpty(t, out.String())
}

func TestExecuteExtract_MissingInput(t *testing.T) {
	var out bytes.Buffer
	err := executeExtract(context.Background(), config.Default(), filepath.Join(t.TempDir(), "none.pdf"), &out, nil, zaptest.NewLogger(t))
	require.Error(t, err)
	assert.ErrorIs(t, err, source.ErrOpen)
}

func TestExtractCommand(t *testing.T) {
	path := writeSamplePDF(t)

	cmd := newExtractCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "--pages", "0", "--except-lines", "*:0", "-f", "text"})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, "Apple\t3\t1.20\nPear\t12\t0.80\n", out.String())
}

func TestExtractCommand_InvalidOptions(t *testing.T) {
	path := writeSamplePDF(t)

	cmd := newExtractCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{path, "-f", "docx"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrInvalidFormat)
}

func TestVersionCommand(t *testing.T) {
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"version"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "traprange dev")
}
