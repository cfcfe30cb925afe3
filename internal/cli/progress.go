package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// newProgressBar creates the bar advanced once per processed page.
func newProgressBar(pages int, w io.Writer) *progressbar.ProgressBar {
	return progressbar.NewOptions(pages,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("Extracting pages"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(w)
		}),
	)
}
