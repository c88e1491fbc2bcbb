// Package memstore provides in-memory store backends for tests and the
// zero-config demo mode. Not meant for production deployments.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"sync"

	"github.com/biofinder/semsearch/pkg/semsearch/internalerr"
	"github.com/biofinder/semsearch/pkg/semsearch/store"
)

// LabelStore is a map-backed key-value label store.
type LabelStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewLabelStore creates a label store preloaded with the given data.
func NewLabelStore(data map[string]string) *LabelStore {
	s := &LabelStore{data: make(map[string]string, len(data))}
	for key, value := range data {
		s.data[key] = value
	}
	return s
}

// LoadJSON merges label data from a JSON file mapping label to the encoded
// entity description.
func (s *LabelStore) LoadJSON(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load label data: %w", err)
	}
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("load label data: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for key, value := range data {
		s.data[key] = string(value)
	}
	return nil
}

// Read implements store.KeyValue.
func (s *LabelStore) Read(ctx context.Context, key string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.data[key]
	if !ok {
		return "", fmt.Errorf("label %q: %w", key, internalerr.ErrNotFound)
	}
	return value, nil
}

// Close implements store.KeyValue.
func (s *LabelStore) Close() error { return nil }

// TripleStore is a slice-backed triple store.
type TripleStore struct {
	mu      sync.RWMutex
	triples []store.Triple
}

// NewTripleStore creates an empty triple store.
func NewTripleStore() *TripleStore {
	return &TripleStore{}
}

// AddTriples implements store.TripleStore.
func (s *TripleStore) AddTriples(ctx context.Context, triples []store.Triple) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.triples = append(s.triples, triples...)
	return nil
}

// SubjectsMatching implements store.TripleStore.
func (s *TripleStore) SubjectsMatching(ctx context.Context, predicates, objects []string, limit int) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	predicateSet := toSet(predicates)
	objectSet := toSet(objects)

	seen := make(map[string]struct{})
	var subjects []string
	for _, t := range s.triples {
		if len(predicateSet) > 0 {
			if _, ok := predicateSet[t.Predicate]; !ok {
				continue
			}
		}
		if len(objectSet) > 0 {
			if _, ok := objectSet[t.Object]; !ok {
				continue
			}
		}
		if _, ok := seen[t.Subject]; ok {
			continue
		}
		seen[t.Subject] = struct{}{}
		subjects = append(subjects, t.Subject)
	}

	sort.Strings(subjects)
	if limit > 0 && len(subjects) > limit {
		subjects = subjects[:limit]
	}
	return subjects, nil
}

// Close implements store.TripleStore.
func (s *TripleStore) Close() error { return nil }

func toSet(values []string) map[string]struct{} {
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v == "" {
			continue
		}
		set[v] = struct{}{}
	}
	return set
}
