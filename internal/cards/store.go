// Package cards provides the shared card-data machinery used by every game
// pipeline: a JSON-file-backed store keyed by (qualifier, name) and a
// cache-checked resolver parameterized by an external fetch transport.
package cards

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// DefaultBucket is the qualifier bucket used by games with no qualifier
// concept.
const DefaultBucket = "_"

// Store is a JSON-file-backed mapping from a composite (bucket, name) key to
// a card record. It is loaded fully at pipeline start, mutated in memory and
// flushed as a complete snapshot; the on-disk file never holds a partial
// state.
type Store[T any] struct {
	path    string
	records map[string]map[string]T
}

// Open reads the cache file at path. A missing file is a first run and
// yields an empty store; an unreadable or corrupt file is a fatal startup
// error for the owning pipeline.
func Open[T any](path string) (*Store[T], error) {
	s := &Store[T]{path: path, records: map[string]map[string]T{}}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading card cache %s: %w", path, err)
	}
	if err := json.Unmarshal(data, &s.records); err != nil {
		return nil, fmt.Errorf("parsing card cache %s: %w", path, err)
	}
	if s.records == nil {
		s.records = map[string]map[string]T{}
	}
	return s, nil
}

// Get returns the stored record for (bucket, name).
func (s *Store[T]) Get(bucket, name string) (T, bool) {
	rec, ok := s.records[bucket][name]
	return rec, ok
}

// Put stores a record under (bucket, name), replacing any previous one.
func (s *Store[T]) Put(bucket, name string, rec T) {
	if s.records[bucket] == nil {
		s.records[bucket] = map[string]T{}
	}
	s.records[bucket][name] = rec
}

// Len reports the total number of stored records.
func (s *Store[T]) Len() int {
	n := 0
	for _, bucket := range s.records {
		n += len(bucket)
	}
	return n
}

// Flush rewrites the cache file as a sorted-key, indented JSON snapshot of
// everything resolved so far. The write is skipped when nothing changed.
func (s *Store[T]) Flush() error {
	data, err := json.MarshalIndent(s.records, "", "    ")
	if err != nil {
		return fmt.Errorf("marshaling card cache: %w", err)
	}
	if existing, err := os.ReadFile(s.path); err == nil && bytes.Equal(existing, data) {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("writing card cache %s: %w", s.path, err)
	}
	return nil
}
