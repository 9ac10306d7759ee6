package store

import (
	"context"
	"sync"

	"assetgate/internal/identity/storage"
	"assetgate/pkg/domain"
	"assetgate/pkg/platform/sentinel"
)

// InMemory keeps identity records in a map guarded by a RWMutex.
type InMemory struct {
	mu      sync.RWMutex
	records map[domain.Address]storage.Record
}

func NewInMemory() *InMemory {
	return &InMemory{records: make(map[domain.Address]storage.Record)}
}

func (s *InMemory) Get(_ context.Context, holder domain.Address) (storage.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[holder]
	if !ok {
		return storage.Record{}, sentinel.ErrNotFound
	}
	return rec, nil
}

func (s *InMemory) Insert(_ context.Context, rec storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.Holder]; ok {
		return sentinel.ErrConflict
	}
	s.records[rec.Holder] = rec
	return nil
}

func (s *InMemory) InsertBatch(_ context.Context, recs []storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seen := make(map[domain.Address]struct{}, len(recs))
	for _, rec := range recs {
		if _, ok := s.records[rec.Holder]; ok {
			return sentinel.ErrConflict
		}
		if _, ok := seen[rec.Holder]; ok {
			return sentinel.ErrConflict
		}
		seen[rec.Holder] = struct{}{}
	}
	for _, rec := range recs {
		s.records[rec.Holder] = rec
	}
	return nil
}

func (s *InMemory) Update(_ context.Context, rec storage.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[rec.Holder]; !ok {
		return sentinel.ErrNotFound
	}
	s.records[rec.Holder] = rec
	return nil
}

func (s *InMemory) Delete(_ context.Context, holder domain.Address) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[holder]; !ok {
		return sentinel.ErrNotFound
	}
	delete(s.records, holder)
	return nil
}

func (s *InMemory) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}
