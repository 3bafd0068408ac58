package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/txledger/internal/usecase"
)

// SpinnerSink shows a spinner on stderr while a use case reports spinning
// progress, and prints info and error lines between spinner frames
type SpinnerSink struct {
	spinner *spinner.Spinner
	out     io.Writer
	started time.Time
}

// NewSpinnerSink creates a spinner-based progress sink writing to stderr
func NewSpinnerSink() *SpinnerSink {
	return newSpinnerSink(os.Stderr)
}

func newSpinnerSink(out io.Writer) *SpinnerSink {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerSink{spinner: s, out: out}
}

// OnProgress updates the spinner from a progress event
func (r *SpinnerSink) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	if !event.Spinner {
		if r.spinner.Active() {
			r.spinner.Stop()
		}
		if event.Stage == "complete" && event.Message != "" {
			elapsed := ""
			if !r.started.IsZero() {
				elapsed = fmt.Sprintf(" (%s)", time.Since(r.started).Round(time.Millisecond))
				r.started = time.Time{}
			}
			fmt.Fprintf(r.out, "%s %s%s\n", color.GreenString("✓"), event.Message, elapsed)
		}
		return
	}

	if !r.spinner.Active() {
		r.started = time.Now()
		r.spinner.Start()
	}
	r.spinner.Suffix = " " + stageLine(event)
}

// Info prints an info message
func (r *SpinnerSink) Info(message string) {
	r.pause(func() {
		fmt.Fprintln(r.out, color.New(color.FgCyan).Sprint(message))
	})
}

// Error prints an error message
func (r *SpinnerSink) Error(message string) {
	r.pause(func() {
		fmt.Fprintln(r.out, color.New(color.FgRed).Sprint(message))
	})
}

// pause stops the spinner around fn and restarts it if it was running
func (r *SpinnerSink) pause(fn func()) {
	wasActive := r.spinner.Active()
	if wasActive {
		r.spinner.Stop()
	}
	fn()
	if wasActive {
		r.spinner.Start()
	}
}

func stageLine(event usecase.ProgressEvent) string {
	if event.Total > 0 {
		return fmt.Sprintf("%s %s", color.New(color.FgWhite, color.Faint).Sprintf("[%d/%d]", event.Current, event.Total), event.Message)
	}
	return event.Message
}

// Ensure SpinnerSink implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerSink)(nil)
