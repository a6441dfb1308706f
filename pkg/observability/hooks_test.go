package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	// Document hooks
	d := NoopDocumentHooks{}
	d.OnOpen("plan.drawio", 2, time.Second, nil)
	d.OnSave("plan.drawio", 2, time.Second, nil)

	// Render hooks
	r := NoopRenderHooks{}
	r.OnRender("svg", "Page 1", time.Second, nil)

	// Snapshot hooks
	s := NoopSnapshotHooks{}
	s.OnWrite(ctx, "autosave-1", 1024, nil)
	s.OnPrune(ctx, 3, nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	// Reset to known state
	Reset()

	// Verify defaults are noop
	if _, ok := Document().(NoopDocumentHooks); !ok {
		t.Error("Document() should return NoopDocumentHooks by default")
	}
	if _, ok := Render().(NoopRenderHooks); !ok {
		t.Error("Render() should return NoopRenderHooks by default")
	}
	if _, ok := Snapshot().(NoopSnapshotHooks); !ok {
		t.Error("Snapshot() should return NoopSnapshotHooks by default")
	}

	// Set custom hooks
	customDocument := &testDocumentHooks{}
	SetDocumentHooks(customDocument)
	if Document() != customDocument {
		t.Error("SetDocumentHooks should set custom hooks")
	}

	customRender := &testRenderHooks{}
	SetRenderHooks(customRender)
	if Render() != customRender {
		t.Error("SetRenderHooks should set custom hooks")
	}

	customSnapshot := &testSnapshotHooks{}
	SetSnapshotHooks(customSnapshot)
	if Snapshot() != customSnapshot {
		t.Error("SetSnapshotHooks should set custom hooks")
	}

	// Reset and verify
	Reset()
	if _, ok := Document().(NoopDocumentHooks); !ok {
		t.Error("Reset() should restore NoopDocumentHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testDocumentHooks{}
	SetDocumentHooks(custom)

	// Setting nil should be ignored
	SetDocumentHooks(nil)

	if Document() != custom {
		t.Error("SetDocumentHooks(nil) should be ignored")
	}

	Reset()
}

// Test implementations
type testDocumentHooks struct{ NoopDocumentHooks }
type testRenderHooks struct{ NoopRenderHooks }
type testSnapshotHooks struct{ NoopSnapshotHooks }
