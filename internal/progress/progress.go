package progress

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// Reporter receives one Advance per completed work item. The total is
// fixed when the reporter is created. Implementations must be safe for
// concurrent Advance calls.
type Reporter interface {
	Advance(n int)
	Finish()
}

// Noop discards all progress events. It substitutes for a rendering
// reporter when progress bars are disabled.
type Noop struct{}

func (Noop) Advance(int) {}
func (Noop) Finish()     {}

// Bar renders a terminal progress bar.
type Bar struct {
	bar *progressbar.ProgressBar
}

// NewBar creates a bar for total items writing to stderr.
func NewBar(total int, description string) *Bar {
	return newBar(total, description, os.Stderr)
}

func newBar(total int, description string, w io.Writer) *Bar {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetWriter(w),
		progressbar.OptionShowCount(),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionThrottle(65*time.Millisecond),
	)
	return &Bar{bar: bar}
}

// Advance adds n completed items to the bar.
func (b *Bar) Advance(n int) {
	_ = b.bar.Add(n)
}

// Finish renders the final state and clears the bar.
func (b *Bar) Finish() {
	_ = b.bar.Finish()
}

// New returns a rendering reporter when enabled and stderr is a terminal,
// a Noop otherwise.
func New(total int, description string, enabled bool) Reporter {
	if !enabled || !isatty.IsTerminal(os.Stderr.Fd()) {
		return Noop{}
	}
	return NewBar(total, description)
}
