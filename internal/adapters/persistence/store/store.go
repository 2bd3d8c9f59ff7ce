// Package store persists named collections as whole-file YAML snapshots on
// local disk. Every mutation rewrites the collection file in full; there is
// no incremental update and no merge.
//
// Every load-mutate-save span runs under a per-collection exclusive lock
// (Do), so concurrent writers cannot discard each other's update, and Save
// writes to a temp file and renames it over the target, so a reader can
// never observe a partially written snapshot.
package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"montsion-scolarite/internal/core/domain"

	"gopkg.in/yaml.v3"
)

// Store owns all file I/O for the data directory. Domain components only
// ever see the in-memory structures for the duration of one request.
type Store struct {
	dir string

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open creates the data directory if needed and returns a store over it.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: create data dir: %v", domain.ErrStorage, err)
	}
	return &Store{
		dir:   dir,
		locks: make(map[string]*sync.Mutex),
	}, nil
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dir
}

// Exists reports whether the collection file is present on disk.
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.path(name))
	return err == nil
}

// Load reads the full collection file and parses it into out. A missing
// file is not an error: out is left at its zero value, matching the empty
// collection. Read or parse failures wrap domain.ErrStorage.
func (s *Store) Load(name string, out any) error {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", domain.ErrStorage, name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrStorage, name, err)
	}
	return nil
}

// Save serializes in and replaces the collection file in full. The snapshot
// is written to a temp file in the same directory, synced, then renamed
// over the target so the swap is atomic.
func (s *Store) Save(name string, in any) error {
	data, err := yaml.Marshal(in)
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", domain.ErrStorage, name, err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: sync %s: %v", domain.ErrStorage, name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", domain.ErrStorage, name, err)
	}
	if err := os.Rename(tmpName, s.path(name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", domain.ErrStorage, name, err)
	}
	return nil
}

// Do runs fn while holding the collection's exclusive lock. Repositories
// wrap every load-mutate-save span in Do so concurrent requests against the
// same collection are serialized and no update is lost. The lock is scoped
// to one collection: users and students never block each other.
func (s *Store) Do(name string, fn func() error) error {
	mu := s.lock(name)
	mu.Lock()
	defer mu.Unlock()
	return fn()
}

// Raw returns the serialized snapshot of a collection, for export. A
// missing file yields the serialized empty mapping.
func (s *Store) Raw(name string) ([]byte, error) {
	data, err := os.ReadFile(s.path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []byte("{}\n"), nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", domain.ErrStorage, name, err)
	}
	return data, nil
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".yaml")
}

func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	mu, ok := s.locks[name]
	if !ok {
		mu = &sync.Mutex{}
		s.locks[name] = mu
	}
	return mu
}
