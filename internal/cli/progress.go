package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"
)

// CLIProgressReporter implements generate.ProgressReporter with a progress bar.
type CLIProgressReporter struct {
	out       io.Writer
	fileBar   *progressbar.ProgressBar
	startTime time.Time
}

// NewCLIProgressReporter creates a new CLI progress reporter writing to out.
func NewCLIProgressReporter(out io.Writer) *CLIProgressReporter {
	return &CLIProgressReporter{
		out: out,
	}
}

func (c *CLIProgressReporter) OnDiscoveryStart() {
	c.startTime = time.Now()
	fmt.Fprintln(c.out, "Discovering files...")
}

func (c *CLIProgressReporter) OnDiscoveryComplete(totalFiles int) {
	fmt.Fprintf(c.out, "Scanning %d files\n", totalFiles)
	if totalFiles == 0 {
		return
	}

	c.fileBar = progressbar.NewOptions(totalFiles,
		progressbar.OptionSetWriter(c.out),
		progressbar.OptionSetDescription("Scanning files"),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("files/s"),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(c.out)
		}),
	)
}

func (c *CLIProgressReporter) OnFileScanned(path string) {
	if c.fileBar != nil {
		c.fileBar.Add(1)
	}
}

func (c *CLIProgressReporter) OnScanComplete(classes, failed int) {
	if c.fileBar != nil {
		c.fileBar.Finish()
		c.fileBar = nil
	}

	fmt.Fprintf(c.out, "Found %d classes in %.1fs", classes, time.Since(c.startTime).Seconds())
	if failed > 0 {
		fmt.Fprintf(c.out, " (%d files could not be read)", failed)
	}
	fmt.Fprintln(c.out)
}
