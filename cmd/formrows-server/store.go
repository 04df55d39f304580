package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"os"
	"sync"
)

var errConflict = errors.New("dataset was changed by another submission")

// datasetStore keeps the stored editor values of one dataset in memory.
// Every save bumps the version used for optimistic locking.
type datasetStore struct {
	mu      sync.RWMutex
	values  map[string]string
	version int
}

func newDatasetStore(values map[string]string) *datasetStore {
	return &datasetStore{values: maps.Clone(values), version: 1}
}

// loadSeed reads a JSON object of editor key to stored value. Values may be
// JSON arrays or strings holding the legacy notation.
func loadSeed(path string) (map[string]string, error) {
	if path == "" {
		return map[string]string{}, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("seed %s: %w", path, err)
	}
	out := make(map[string]string, len(doc))
	for key, value := range doc {
		var text string
		if err := json.Unmarshal(value, &text); err == nil {
			out[key] = text
			continue
		}
		out[key] = string(value)
	}
	return out, nil
}

func (s *datasetStore) Snapshot() (map[string]string, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values), s.version
}

// Save replaces the values when version is still current.
func (s *datasetStore) Save(values map[string]string, version int) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if version != s.version {
		return s.version, errConflict
	}
	if s.values == nil {
		s.values = make(map[string]string, len(values))
	}
	maps.Copy(s.values, values)
	s.version++
	return s.version, nil
}
