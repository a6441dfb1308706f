// Package cli implements the sketchdoc command-line interface.
//
// This package provides commands for creating, inspecting, converting,
// exporting, serving, and browsing diagram documents, plus management of
// the snapshot store. The CLI is built using cobra and supports verbose
// logging via the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - new: Create an empty diagram document
//   - info: Show document structure and statistics
//   - convert: Rewrite a document between compressed and raw payloads
//   - export: Render pages as SVG, PNG, DOT, or connectivity graphs
//   - serve: Preview rendered pages over HTTP
//   - browse: Explore pages and elements interactively
//   - snapshots: Manage stored document revisions
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
//
// # Example
//
//	import "github.com/sketchdoc/sketchdoc/internal/cli"
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/sketchdoc/sketchdoc/pkg/observability"
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
// The returned progress should call done when the operation completes.
func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg along with the elapsed time since progress was created.
// The duration is rounded to the nearest millisecond.
// Example output: "Exported 3 pages (1.234s)"
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

// ctxKey is the type for context keys used in this package.
// Using a distinct type prevents collisions with other packages.
type ctxKey int

const (
	// loggerKey is the context key for storing a logger.
	loggerKey ctxKey = iota

	// configKey is the context key for storing the loaded configuration.
	configKey
)

// withLogger returns a new context with the given logger attached.
// The logger can be retrieved later with loggerFromContext.
func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext retrieves the logger from ctx.
// If no logger is attached, it returns log.Default().
// This ensures commands always have a valid logger even if context setup fails.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Observability Bridge
// =============================================================================

// bridgeHooks routes library events (document loads, renders, snapshot
// writes) into the CLI logger at debug level. Library packages never log
// directly; this is the single place where their events become output.
func bridgeHooks(l *log.Logger) {
	observability.SetDocumentHooks(documentLog{l})
	observability.SetRenderHooks(renderLog{l})
	observability.SetSnapshotHooks(snapshotLog{l})
}

type documentLog struct{ logger *log.Logger }

func (h documentLog) OnOpen(path string, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("open %s failed: %v", path, err)
		return
	}
	h.logger.Debugf("opened %s: %d page(s) in %s", path, pages, d.Round(time.Millisecond))
}

func (h documentLog) OnSave(path string, pages int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("save %s failed: %v", path, err)
		return
	}
	h.logger.Debugf("saved %s: %d page(s) in %s", path, pages, d.Round(time.Millisecond))
}

type renderLog struct{ logger *log.Logger }

func (h renderLog) OnRender(format, page string, d time.Duration, err error) {
	if err != nil {
		h.logger.Debugf("render %s of %q failed: %v", format, page, err)
		return
	}
	h.logger.Debugf("rendered %s of %q in %s", format, page, d.Round(time.Millisecond))
}

type snapshotLog struct{ logger *log.Logger }

func (h snapshotLog) OnWrite(_ context.Context, name string, size int, err error) {
	if err != nil {
		h.logger.Debugf("snapshot %s failed: %v", name, err)
		return
	}
	h.logger.Debugf("snapshot %s written (%d bytes)", name, size)
}

func (h snapshotLog) OnPrune(_ context.Context, removed int, err error) {
	if err != nil {
		h.logger.Debugf("snapshot prune failed: %v", err)
		return
	}
	if removed > 0 {
		h.logger.Debugf("pruned %d snapshot(s)", removed)
	}
}
