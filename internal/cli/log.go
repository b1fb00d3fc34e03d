// Package cli implements the floorplan command-line interface.
//
// Commands read problems and solutions in the contest text formats, solve
// them with a placement strategy from pkg/placer and write results back in
// the same formats. The CLI is built on cobra and logs through
// charmbracelet/log.
//
// # Commands
//
//   - solve: Floorplan one problem file
//   - batch: Floorplan every problem in a directory concurrently
//   - score, verify: Evaluate a solution against its problem
//   - render, view: Draw a floorplan as SVG/DOT or in the terminal
//   - serve: Run the HTTP API
//   - cache, config, strategies: Housekeeping
//
// # Logging
//
// --verbose (-v) enables debug output, including cache and solve events.
// Loggers travel through context.Context so that long operations can
// report elapsed time.
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// newLogger creates a logger writing to w with "HH:MM:SS.ms" timestamps.
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the completion of an operation with its elapsed time.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg and the elapsed time, e.g. "Solved 12 files (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

// withLogger attaches l to ctx.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached to ctx, or log.Default().
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}
