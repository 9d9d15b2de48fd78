// Package session provides the best-effort key-value store used to persist
// editing session state (last document name, page, zoom, working template)
// between runs. Persistence is a convenience: every failure here degrades
// to "no persisted value" and is never surfaced to the user.
package session

import (
	"encoding/json"
	"fmt"
	"log"
	"path/filepath"

	"github.com/spf13/afero"
)

const storeDirPerm = 0o750

// StorageError wraps a persistence failure. It is always recovered locally;
// core correctness never depends on the store.
type StorageError struct {
	Key string
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s failed for key %q: %v", e.Op, e.Key, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// Store is a flat key-value byte store on an afero filesystem. Production
// code mounts it on the OS filesystem under the configured state directory;
// tests use a memory filesystem.
type Store struct {
	fs  afero.Fs
	dir string
}

// NewStore returns a store rooted at dir on the given filesystem.
func NewStore(fs afero.Fs, dir string) *Store {
	return &Store{fs: fs, dir: dir}
}

// NewMemStore returns a store on an in-memory filesystem.
func NewMemStore() *Store {
	return NewStore(afero.NewMemMapFs(), "/state")
}

// Put writes value under key. A returned StorageError is informational;
// callers may ignore it.
func (s *Store) Put(key string, value []byte) error {
	if err := s.fs.MkdirAll(s.dir, storeDirPerm); err != nil {
		return s.report("put", key, err)
	}
	if err := afero.WriteFile(s.fs, s.path(key), value, 0o640); err != nil {
		return s.report("put", key, err)
	}
	return nil
}

// PutJSON marshals v and writes it under key.
func (s *Store) PutJSON(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return s.report("put", key, err)
	}
	return s.Put(key, data)
}

// Get reads the value under key. Any failure, including absence, reads as
// "no persisted value".
func (s *Store) Get(key string) ([]byte, bool) {
	data, err := afero.ReadFile(s.fs, s.path(key))
	if err != nil {
		return nil, false
	}
	return data, true
}

// GetJSON reads and unmarshals the value under key into v.
func (s *Store) GetJSON(key string, v any) bool {
	data, ok := s.Get(key)
	if !ok {
		return false
	}
	if err := json.Unmarshal(data, v); err != nil {
		_ = s.report("get", key, err)
		return false
	}
	return true
}

// Clear removes the value under key, if any.
func (s *Store) Clear(key string) {
	if err := s.fs.Remove(s.path(key)); err != nil {
		// Absence is the desired end state anyway.
		return
	}
}

func (s *Store) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *Store) report(op, key string, err error) error {
	serr := &StorageError{Key: key, Op: op, Err: err}
	log.Printf("%v", serr)
	return serr
}
