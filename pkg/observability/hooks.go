// Package observability provides hooks for metrics, tracing, and logging.
//
// This package enables optional instrumentation without adding hard dependencies
// on specific observability backends. Consumers can register hooks at startup
// to receive events about document lifecycle, rendering, and snapshot activity.
//
// # Architecture
//
// The package uses a simple hooks pattern:
//   - Define hook interfaces for different event categories
//   - Provide no-op default implementations
//   - Allow registration of custom implementations at startup
//
// This approach:
//   - Avoids import cycles (hooks are registered by main, not by libraries)
//   - Keeps the core library dependency-free from observability frameworks
//   - Allows different backends (OpenTelemetry, Prometheus, plain logging)
//
// # Usage
//
// Register hooks at application startup:
//
//	func main() {
//	    observability.SetDocumentHooks(&myDocumentHooks{})
//	    observability.SetSnapshotHooks(&mySnapshotHooks{})
//	    // ... run application
//	}
//
// Libraries call hooks to emit events:
//
//	start := time.Now()
//	err := save(path)
//	observability.Document().OnSave(path, pages, time.Since(start), err)
package observability

import (
	"context"
	"sync"
	"time"
)

// =============================================================================
// Document Hooks
// =============================================================================

// DocumentHooks receives document lifecycle events from the editor.
type DocumentHooks interface {
	// OnOpen records a document load. path is empty for in-memory loads.
	OnOpen(path string, pages int, duration time.Duration, err error)

	// OnSave records a document save. path is empty for in-memory saves.
	OnSave(path string, pages int, duration time.Duration, err error)
}

// =============================================================================
// Render Hooks
// =============================================================================

// RenderHooks receives events from page rendering.
type RenderHooks interface {
	// OnRender records a single page render in the given format.
	OnRender(format, page string, duration time.Duration, err error)
}

// =============================================================================
// Snapshot Hooks
// =============================================================================

// SnapshotHooks receives events from snapshot stores and autosave.
type SnapshotHooks interface {
	// OnWrite records a snapshot write of size bytes.
	OnWrite(ctx context.Context, name string, size int, err error)

	// OnPrune records a retention pass that removed the given number of
	// snapshots.
	OnPrune(ctx context.Context, removed int, err error)
}

// =============================================================================
// No-op Implementations
// =============================================================================

// NoopDocumentHooks is a no-op implementation of DocumentHooks.
type NoopDocumentHooks struct{}

func (NoopDocumentHooks) OnOpen(string, int, time.Duration, error) {}
func (NoopDocumentHooks) OnSave(string, int, time.Duration, error) {}

// NoopRenderHooks is a no-op implementation of RenderHooks.
type NoopRenderHooks struct{}

func (NoopRenderHooks) OnRender(string, string, time.Duration, error) {}

// NoopSnapshotHooks is a no-op implementation of SnapshotHooks.
type NoopSnapshotHooks struct{}

func (NoopSnapshotHooks) OnWrite(context.Context, string, int, error) {}
func (NoopSnapshotHooks) OnPrune(context.Context, int, error)         {}

// =============================================================================
// Global Hook Registry
// =============================================================================

var (
	documentHooks DocumentHooks = NoopDocumentHooks{}
	renderHooks   RenderHooks   = NoopRenderHooks{}
	snapshotHooks SnapshotHooks = NoopSnapshotHooks{}
	hooksMu       sync.RWMutex
)

// SetDocumentHooks registers custom document hooks.
// This should be called once at application startup before any documents load.
func SetDocumentHooks(h DocumentHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		documentHooks = h
	}
}

// SetRenderHooks registers custom render hooks.
// This should be called once at application startup before any rendering.
func SetRenderHooks(h RenderHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		renderHooks = h
	}
}

// SetSnapshotHooks registers custom snapshot hooks.
// This should be called once at application startup before any snapshots.
func SetSnapshotHooks(h SnapshotHooks) {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	if h != nil {
		snapshotHooks = h
	}
}

// Document returns the registered document hooks.
func Document() DocumentHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return documentHooks
}

// Render returns the registered render hooks.
func Render() RenderHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return renderHooks
}

// Snapshot returns the registered snapshot hooks.
func Snapshot() SnapshotHooks {
	hooksMu.RLock()
	defer hooksMu.RUnlock()
	return snapshotHooks
}

// Reset restores all hooks to their no-op defaults.
// This is primarily useful for testing.
func Reset() {
	hooksMu.Lock()
	defer hooksMu.Unlock()
	documentHooks = NoopDocumentHooks{}
	renderHooks = NoopRenderHooks{}
	snapshotHooks = NoopSnapshotHooks{}
}
