// Package progress reports advisory progress for long traversals.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// UnknownTotal opens a bar without an upper bound.
const UnknownTotal = -1

const renderThrottle = 65 * time.Millisecond

// Sink opens progress bars.
type Sink interface {
	Start(description string, unit string, total int) Bar
}

// Bar advances a single progress display.
type Bar interface {
	Add(count int)
	Finish()
}

// NewSink returns a terminal sink when enabled and output is a terminal, otherwise a no-op sink.
func NewSink(enabled bool, output *os.File) Sink {
	if !enabled || output == nil {
		return Noop{}
	}
	descriptor := output.Fd()
	if !isatty.IsTerminal(descriptor) && !isatty.IsCygwinTerminal(descriptor) {
		return Noop{}
	}
	return NewTerminalSink(output)
}

// TerminalSink draws progress bars on a writer.
type TerminalSink struct {
	writer io.Writer
}

// NewTerminalSink constructs a sink drawing bars on writer.
func NewTerminalSink(writer io.Writer) *TerminalSink {
	return &TerminalSink{writer: writer}
}

// Start opens a bar. A total of zero or less draws a spinner.
func (sink *TerminalSink) Start(description string, unit string, total int) Bar {
	maximum := total
	if maximum <= 0 {
		maximum = UnknownTotal
	}
	bar := progressbar.NewOptions(maximum,
		progressbar.OptionSetWriter(sink.writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetItsString(unit),
		progressbar.OptionShowIts(),
		progressbar.OptionShowCount(),
		progressbar.OptionThrottle(renderThrottle),
		progressbar.OptionSpinnerType(14),
		progressbar.OptionOnCompletion(func() {
			_, _ = io.WriteString(sink.writer, "\n")
		}),
	)
	return &terminalBar{bar: bar}
}

type terminalBar struct {
	bar *progressbar.ProgressBar
}

// Add ignores overshoot past the total; the display stays saturated.
func (bar *terminalBar) Add(count int) {
	_ = bar.bar.Add(count)
}

func (bar *terminalBar) Finish() {
	_ = bar.bar.Finish()
}

// Noop discards all progress.
type Noop struct{}

// Start returns a bar that does nothing.
func (Noop) Start(string, string, int) Bar {
	return noopBar{}
}

type noopBar struct{}

func (noopBar) Add(int) {}

func (noopBar) Finish() {}

var (
	_ Sink = (*TerminalSink)(nil)
	_ Sink = Noop{}
)
