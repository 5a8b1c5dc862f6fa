package runner

import (
	"os"

	"github.com/schollz/progressbar/v3"
)

// progressReporter receives one tick per completed word. Ticks must be safe
// to deliver from any worker.
type progressReporter interface {
	Tick()
	Finish()
}

// noopProgress is used when progress display is disabled.
type noopProgress struct{}

func (noopProgress) Tick()   {}
func (noopProgress) Finish() {}

// barProgress renders a terminal progress bar. The bar serializes updates
// internally, so workers tick without coordinating with each other.
type barProgress struct {
	bar *progressbar.ProgressBar
}

func newBarProgress(total int) *barProgress {
	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("generating"),
		progressbar.OptionSetWriter(os.Stdout),
		progressbar.OptionShowCount(),
		progressbar.OptionClearOnFinish(),
	)

	return &barProgress{bar: bar}
}

func (p *barProgress) Tick() {
	// Errors here only affect rendering, never generation.
	_ = p.bar.Add(1)
}

func (p *barProgress) Finish() {
	_ = p.bar.Finish()
}
