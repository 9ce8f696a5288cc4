// Package cli implements the starposter command-line interface.
//
// This package provides commands for generating star posters from a
// configuration record, rendering seeded batches, previewing palettes and
// tuning parameters in an interactive terminal panel. The CLI is built using
// cobra and supports verbose logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - generate: Render one poster to PNG, SVG, PDF or JSON
//   - batch: Render several seeded variants concurrently
//   - palette: Print the colors a palette mode produces
//   - panel: Interactive control panel with a live preview
//   - config: Show the effective configuration or its default path
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/matzehuels/starposter/internal/cli"
//
//	func main() {
//	    c := cli.New(os.Stderr, cli.LogInfo)
//	    if err := c.RootCommand().ExecuteContext(ctx); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a new logger with timestamp formatting.
// The logger writes to w and filters messages at the specified level.
// Timestamps are formatted as "HH:MM:SS.ms" (e.g., "14:32:01.45").
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress tracks the start time of an operation and logs completion with elapsed duration.
// It is safe for sequential use by a single goroutine; concurrent calls to done will race.
type progress struct {
	logger *log.Logger
	start  time.Time
}

// newProgress creates a progress tracker that captures the current time as start.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// Example output: "Rendered 8 posters (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger returns a new context with the given logger attached.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx, or log.Default() if none is attached.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// logHooks reports pipeline and batch events at debug level.
type logHooks struct {
	logger *log.Logger
}

func (h *logHooks) OnComposeStart(_ context.Context, runID string, stars int) {
	h.logger.Debug("compose start", "run", runID, "stars", stars)
}

func (h *logHooks) OnComposeComplete(_ context.Context, runID string, shapes int, d time.Duration, err error) {
	h.logger.Debug("compose done", "run", runID, "shapes", shapes, "duration", d, "err", err)
}

func (h *logHooks) OnRenderStart(_ context.Context, runID, format string) {
	h.logger.Debug("render start", "run", runID, "format", format)
}

func (h *logHooks) OnRenderComplete(_ context.Context, runID, format string, size int, d time.Duration, err error) {
	h.logger.Debug("render done", "run", runID, "format", format, "bytes", size, "duration", d, "err", err)
}

func (h *logHooks) OnJobStart(_ context.Context, index int, seed uint64) {
	h.logger.Debug("job start", "index", index, "seed", seed)
}

func (h *logHooks) OnJobComplete(_ context.Context, index int, seed uint64, d time.Duration, err error) {
	h.logger.Debug("job done", "index", index, "seed", seed, "duration", d, "err", err)
}
