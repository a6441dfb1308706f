package snapshot

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sketchdoc/sketchdoc/pkg/errors"
)

// FileStore keeps snapshots as JSON files under a local directory,
// sharded by name hash so large collections do not pile up in one
// directory.
type FileStore struct {
	mu  sync.RWMutex
	dir string
}

// NewFileStore creates a file-based snapshot store rooted at dir.
// If dir is empty, it defaults to ~/.config/sketchdoc/snapshots.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "sketchdoc", "snapshots")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create snapshot dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the store's root directory.
func (s *FileStore) Path() string { return s.dir }

// path shards snapshot files by the first two hex digits of the name
// hash so any name maps to a safe, unique location.
func (s *FileStore) path(name string) string {
	hash := hashName(name)
	return filepath.Join(s.dir, hash[:2], hash[2:]+".json")
}

func (s *FileStore) Put(ctx context.Context, snap *Snapshot) error {
	if err := errors.ValidateSnapshotName(snap.Name); err != nil {
		return err
	}
	stored := snap.clone()
	stored.stamp()

	data, err := json.MarshalIndent(stored, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.path(stored.Name)
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("create shard dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) Get(ctx context.Context, name string) (*Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("read snapshot file: %w", err)
	}

	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot %s: %w", name, err)
	}
	return &snap, nil
}

func (s *FileStore) List(ctx context.Context) ([]Info, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var infos []Info
	err := filepath.WalkDir(s.dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || filepath.Ext(path) != ".json" {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		var snap Snapshot
		if err := json.Unmarshal(data, &snap); err != nil || snap.Name == "" {
			// Foreign or corrupt file; not ours to report.
			return nil
		}
		infos = append(infos, snap.Info())
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk snapshot dir: %w", err)
	}
	sortInfos(infos)
	return infos, nil
}

func (s *FileStore) Delete(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path(name))
	if os.IsNotExist(err) {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("remove snapshot file: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

var _ Store = (*FileStore)(nil)
