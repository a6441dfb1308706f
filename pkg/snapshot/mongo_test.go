//go:build integration

package snapshot

import (
	"context"
	stderrors "errors"
	"os"
	"testing"
)

// Requires a running mongod instance, e.g.:
//
//	docker run --rm -p 27017:27017 mongo:7
//	SKETCHDOC_TEST_MONGO=mongodb://localhost:27017 go test -tags integration ./pkg/snapshot
func newTestMongoStore(t *testing.T) *MongoStore {
	t.Helper()
	uri := os.Getenv("SKETCHDOC_TEST_MONGO")
	if uri == "" {
		t.Skip("SKETCHDOC_TEST_MONGO not set")
	}
	store, err := NewMongoStore(context.Background(), MongoConfig{
		URI:        uri,
		Database:   "sketchdoc_test",
		Collection: "snapshots",
	})
	if err != nil {
		t.Fatalf("NewMongoStore() error: %v", err)
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

func TestMongoStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := newTestMongoStore(t)

	if err := store.Put(ctx, New("rev-1", "plan", []byte("document"))); err != nil {
		t.Fatalf("Put() error: %v", err)
	}

	// Overwrites replace the existing entry instead of duplicating it.
	if err := store.Put(ctx, New("rev-1", "plan", []byte("updated"))); err != nil {
		t.Fatalf("Put() overwrite error: %v", err)
	}

	got, err := store.Get(ctx, "rev-1")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if string(got.Data) != "updated" {
		t.Errorf("Data = %q, want %q", got.Data, "updated")
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
}
