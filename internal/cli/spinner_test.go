package cli

import (
	"context"
	"testing"
	"time"
)

func TestSpinnerStopIsIdempotent(t *testing.T) {
	s := newSpinner(context.Background(), "Connecting...")
	s.Start()

	// Let at least one frame render before stopping.
	time.Sleep(100 * time.Millisecond)

	s.Stop()
	s.Stop()
}

func TestSpinnerStopsOnContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	s := newSpinner(ctx, "Connecting...")
	s.Start()
	cancel()

	select {
	case <-s.stopped:
	case <-time.After(time.Second):
		t.Fatal("spinner did not stop after context cancellation")
	}

	// Stop after cancellation must not hang or panic.
	s.Stop()
}
