// Package progress renders download progress bars on a terminal.
package progress

import (
	"fmt"
	"io"
	"time"

	"github.com/schollz/progressbar/v3"

	"github.com/ochairo/hashwatch/internal/domain/interfaces/gateways"
)

// BarReporter draws one byte-counting progress bar per transfer
type BarReporter struct {
	out io.Writer
}

// NewBarReporter creates a reporter drawing to out (usually os.Stderr)
func NewBarReporter(out io.Writer) *BarReporter {
	return &BarReporter{out: out}
}

// Track starts a bar for name. A negative total renders a spinner.
func (r *BarReporter) Track(name string, total int64) gateways.ProgressTracker {
	if total < 0 {
		total = -1
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(r.out),
		progressbar.OptionSetDescription(name),
		progressbar.OptionSetWidth(30),
		progressbar.OptionShowBytes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionThrottle(80*time.Millisecond),
		progressbar.OptionOnCompletion(func() {
			fmt.Fprintln(r.out)
		}),
	)
}
