package memory

import (
	"context"
	"sort"
	"sync"

	audit "assetgate/pkg/platform/audit"
)

// InMemoryStore keeps events in sequence order and tracks the relay cursor.
type InMemoryStore struct {
	mu        sync.RWMutex
	events    []audit.Event
	published uint64
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{}
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = nil
	s.published = 0
}

func (s *InMemoryStore) Append(_ context.Context, event audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, event)
	return nil
}

// ListSince returns up to limit events with a sequence greater than after.
// A non-positive limit returns everything.
func (s *InMemoryStore) ListSince(_ context.Context, after uint64, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.since(after, limit), nil
}

func (s *InMemoryStore) LastSequence(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.events) == 0 {
		return 0, nil
	}
	return s.events[len(s.events)-1].Sequence, nil
}

func (s *InMemoryStore) ListUnpublished(_ context.Context, limit int) ([]audit.Event, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.since(s.published, limit), nil
}

func (s *InMemoryStore) MarkPublished(_ context.Context, upTo uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if upTo > s.published {
		s.published = upTo
	}
	return nil
}

func (s *InMemoryStore) since(after uint64, limit int) []audit.Event {
	start := sort.Search(len(s.events), func(i int) bool {
		return s.events[i].Sequence > after
	})
	end := len(s.events)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return append([]audit.Event{}, s.events[start:end]...)
}
