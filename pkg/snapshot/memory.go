package snapshot

import (
	"context"
	"sort"
	"sync"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
)

// MemoryStore keeps snapshots in process memory. Intended for tests
// and throwaway sessions; contents vanish when the process exits.
type MemoryStore struct {
	mu    sync.RWMutex
	snaps map[string]*Snapshot
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{snaps: make(map[string]*Snapshot)}
}

func (s *MemoryStore) Put(ctx context.Context, snap *Snapshot) error {
	if err := errors.ValidateSnapshotName(snap.Name); err != nil {
		return err
	}
	stored := snap.clone()
	stored.stamp()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[stored.Name] = stored
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[name]
	if !ok {
		return nil, ErrNotFound
	}
	return snap.clone(), nil
}

func (s *MemoryStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	infos := make([]Info, 0, len(s.snaps))
	for _, snap := range s.snaps {
		infos = append(infos, snap.Info())
	}
	sortInfos(infos)
	return infos, nil
}

func (s *MemoryStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.snaps[name]; !ok {
		return ErrNotFound
	}
	delete(s.snaps, name)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

// sortInfos orders snapshots newest first, breaking timestamp ties by
// name so listings are stable.
func sortInfos(infos []Info) {
	sort.Slice(infos, func(i, j int) bool {
		if !infos[i].CreatedAt.Equal(infos[j].CreatedAt) {
			return infos[i].CreatedAt.After(infos[j].CreatedAt)
		}
		return infos[i].Name < infos[j].Name
	})
}

var _ Store = (*MemoryStore)(nil)
