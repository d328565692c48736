package jsonstore

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/FabianB88/duurzame-kennisbank/internal/catalog"
)

// Store implements catalog.ResourceStore over a single indented JSON
// file holding the full resource sequence. The file is the sole source
// of truth: every read re-parses it and every append rewrites it whole.
type Store struct {
	path string
	mu   sync.Mutex
}

// New creates a store backed by the JSON file at path. The file does
// not need to exist yet.
func New(path string) *Store {
	return &Store{path: path}
}

// LoadAll reads the entire resource sequence. A missing or unparsable
// file is treated as an empty catalog, never as an error.
func (s *Store) LoadAll() ([]catalog.Resource, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadAll(), nil
}

func (s *Store) loadAll() []catalog.Resource {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return []catalog.Resource{}
	}

	var resources []catalog.Resource
	if err := json.Unmarshal(data, &resources); err != nil || resources == nil {
		return []catalog.Resource{}
	}
	return resources
}

// Append rewrites the backing file with the new resource at the end.
// The mutex serializes the read-append-rewrite cycle so concurrent
// appends within this process cannot lose each other's writes; the file
// itself carries no cross-process protection.
func (s *Store) Append(resource catalog.Resource) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	resources := append(s.loadAll(), resource)

	data, err := json.MarshalIndent(resources, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode resources: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write resources file: %w", err)
	}

	return nil
}
