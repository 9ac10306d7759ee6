package store

import (
	"cmp"
	"context"
	"maps"
	"slices"
	"strings"
	"sync"

	"assetgate/internal/compliance"
)

// InMemory keeps module records in a map guarded by a RWMutex.
type InMemory struct {
	mu      sync.RWMutex
	records map[string]compliance.ModuleRecord
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[string]compliance.ModuleRecord)}
}

func (s *InMemory) Load(_ context.Context) ([]compliance.ModuleRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedRecords(slices.Collect(maps.Values(s.records))), nil
}

func (s *InMemory) Save(_ context.Context, r compliance.ModuleRecord) error {
	r.State = slices.Clone(r.State)
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[r.Name] = r
	return nil
}

func (s *InMemory) Delete(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, name)
	return nil
}

func sortedRecords(records []compliance.ModuleRecord) []compliance.ModuleRecord {
	slices.SortFunc(records, func(a, b compliance.ModuleRecord) int {
		if c := cmp.Compare(a.Seq, b.Seq); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})
	return records
}

var _ compliance.StateStore = (*InMemory)(nil)
