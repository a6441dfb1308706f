//go:build integration

package snapshot

import (
	"context"
	stderrors "errors"
	"os"
	"testing"
)

// Requires a running redis instance, e.g.:
//
//	docker run --rm -p 6379:6379 redis:7
//	SKETCHDOC_TEST_REDIS=localhost:6379 go test -tags integration ./pkg/snapshot
func newTestRedisStore(t *testing.T) *RedisStore {
	t.Helper()
	addr := os.Getenv("SKETCHDOC_TEST_REDIS")
	if addr == "" {
		t.Skip("SKETCHDOC_TEST_REDIS not set")
	}
	store, err := NewRedisStore(context.Background(), RedisConfig{
		Addr:   addr,
		Prefix: "sketchdoc:test:snapshot:",
	})
	if err != nil {
		t.Fatalf("NewRedisStore() error: %v", err)
	}
	t.Cleanup(func() {
		infos, _ := store.List(context.Background())
		for _, info := range infos {
			store.Delete(context.Background(), info.Name)
		}
		store.Close()
	})
	return store
}

func TestRedisStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestRedisStore(t)

	if err := store.Put(ctx, New("rev-1", "plan", []byte("document"))); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	got, err := store.Get(ctx, "rev-1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got.Data) != "document" {
		t.Errorf("Data = %q, want %q", got.Data, "document")
	}

	infos, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(infos) != 1 || infos[0].Name != "rev-1" {
		t.Errorf("List() = %v, want one entry rev-1", infos)
	}

	if err := store.Delete(ctx, "rev-1"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	if _, err := store.Get(ctx, "rev-1"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("Get() after delete = %v, want ErrNotFound", err)
	}
	if err := store.Delete(ctx, "rev-1"); !stderrors.Is(err, ErrNotFound) {
		t.Errorf("second Delete() = %v, want ErrNotFound", err)
	}
}
