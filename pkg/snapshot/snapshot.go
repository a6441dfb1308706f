// Package snapshot provides named, timestamped copies of serialized
// diagram documents.
//
// A snapshot is a point-in-time byte copy of a document, written by the
// editor's autosave hook or taken explicitly. Snapshots let a user roll
// back to an earlier revision without a version control system.
//
// # Architecture
//
// The Store interface has four backends:
//   - memory: in-process storage for tests and throwaway sessions
//   - file: JSON files under a local directory, for CLI usage
//   - redis: shared storage for short-lived revisions
//   - mongo: durable storage for long-lived revisions
//
// All backends order List results newest first and report missing
// snapshots as [ErrNotFound].
//
// # Usage
//
// Create a store and write a snapshot:
//
//	store, err := snapshot.NewFileStore("") // ~/.config/sketchdoc/snapshots
//	if err != nil {
//	    return err
//	}
//	defer store.Close()
//
//	snap := snapshot.New("before-refactor", diagram.Name(), data)
//	if err := store.Put(ctx, snap); err != nil {
//	    return err
//	}
//
// Roll back later:
//
//	snap, err := store.Get(ctx, "before-refactor")
//	if errors.Is(err, snapshot.ErrNotFound) {
//	    // nothing to restore
//	}
package snapshot

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"time"
)

// Sentinel errors for snapshot operations.
var (
	// ErrNotFound is returned when a requested snapshot does not exist.
	ErrNotFound = errors.New("snapshot not found")
)

// Snapshot is one stored document revision. Data holds the serialized
// document exactly as the codec wrote it.
type Snapshot struct {
	Name      string    `json:"name" bson:"name"`
	Diagram   string    `json:"diagram" bson:"diagram"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Size      int64     `json:"size" bson:"size"`
	Data      []byte    `json:"data" bson:"data"`
}

// Info is the listing view of a snapshot, without the document bytes.
type Info struct {
	Name      string    `json:"name" bson:"name"`
	Diagram   string    `json:"diagram" bson:"diagram"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	Size      int64     `json:"size" bson:"size"`
}

// New builds a snapshot stamped with the current time.
func New(name, diagram string, data []byte) *Snapshot {
	return &Snapshot{
		Name:      name,
		Diagram:   diagram,
		CreatedAt: time.Now().UTC(),
		Size:      int64(len(data)),
		Data:      data,
	}
}

// Info returns the listing view of s.
func (s *Snapshot) Info() Info {
	return Info{
		Name:      s.Name,
		Diagram:   s.Diagram,
		CreatedAt: s.CreatedAt,
		Size:      s.Size,
	}
}

// clone returns an independent copy so stores never alias caller data.
func (s *Snapshot) clone() *Snapshot {
	out := *s
	out.Data = make([]byte, len(s.Data))
	copy(out.Data, s.Data)
	return &out
}

// stamp fills derived fields a caller may have left unset.
func (s *Snapshot) stamp() {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}
	s.Size = int64(len(s.Data))
}

// Store is the interface for snapshot storage backends.
type Store interface {
	// Put stores a snapshot, replacing any existing snapshot with the
	// same name. The snapshot's name must pass
	// [github.com/sketchdoc/sketchdoc/pkg/errors.ValidateSnapshotName].
	Put(ctx context.Context, snap *Snapshot) error

	// Get retrieves a snapshot by name.
	// Returns ErrNotFound if no snapshot has that name.
	Get(ctx context.Context, name string) (*Snapshot, error)

	// List returns all snapshots, newest first, without document bytes.
	List(ctx context.Context) ([]Info, error)

	// Delete removes a snapshot by name.
	// Returns ErrNotFound if no snapshot has that name.
	Delete(ctx context.Context, name string) error

	// Close releases backend resources.
	Close() error
}

// Prune deletes all but the keep newest snapshots and returns how many
// were removed. A negative keep is treated as zero.
func Prune(ctx context.Context, store Store, keep int) (int, error) {
	if keep < 0 {
		keep = 0
	}
	infos, err := store.List(ctx)
	if err != nil {
		return 0, err
	}
	removed := 0
	for _, info := range infos[min(keep, len(infos)):] {
		if err := store.Delete(ctx, info.Name); err != nil && !errors.Is(err, ErrNotFound) {
			return removed, err
		}
		removed++
	}
	return removed, nil
}

// hashName maps a snapshot name to a fixed-length hex digest, used by
// backends that need filesystem- or key-safe identifiers.
func hashName(name string) string {
	sum := sha256.Sum256([]byte(name))
	return hex.EncodeToString(sum[:])
}
