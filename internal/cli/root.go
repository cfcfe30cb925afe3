package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "traprange",
	Short: "Extract tables from PDF files",
	Long: `traprange reconstructs tables from the text of PDF pages without relying
on ruling lines. Lines of text whose words line up form a table; the
horizontal extents of the kept words form its columns.

Settings are read from traprange.yaml in the current directory (or the file
given with --config) and from TRAPRANGE_* environment variables. Command line
flags win over both.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SilenceErrors = true

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./traprange.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug output on stderr")
}
