package store

import (
	"context"
	"maps"
	"sync"

	"assetgate/internal/token"
	"assetgate/pkg/domain"
)

// InMemory keeps the ledger in maps guarded by a RWMutex.
type InMemory struct {
	mu         sync.RWMutex
	balances   map[domain.Address]uint64
	supply     uint64
	freezes    map[domain.Address]token.Freeze
	allowances map[token.Allowance]uint64
}

func NewInMemory() *InMemory {
	return &InMemory{
		balances:   make(map[domain.Address]uint64),
		freezes:    make(map[domain.Address]token.Freeze),
		allowances: make(map[token.Allowance]uint64),
	}
}

func (s *InMemory) Balance(_ context.Context, holder domain.Address) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.balances[holder], nil
}

func (s *InMemory) TotalSupply(_ context.Context) (uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.supply, nil
}

// Apply writes the whole update in one critical section.
func (s *InMemory) Apply(_ context.Context, u token.Update) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for holder, bal := range u.Balances {
		if bal == 0 {
			delete(s.balances, holder)
			continue
		}
		s.balances[holder] = bal
	}
	if len(u.Balances) > 0 {
		s.supply = u.TotalSupply
	}
	for holder, f := range u.Freezes {
		if f.IsZero() {
			delete(s.freezes, holder)
			continue
		}
		s.freezes[holder] = f
	}
	for key, amount := range u.Allowances {
		if amount == 0 {
			delete(s.allowances, key)
			continue
		}
		s.allowances[key] = amount
	}
	return nil
}

func (s *InMemory) Balances(_ context.Context) (map[domain.Address]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.balances), nil
}

func (s *InMemory) Freezes(_ context.Context) (map[domain.Address]token.Freeze, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.freezes), nil
}

func (s *InMemory) Allowances(_ context.Context) (map[token.Allowance]uint64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.allowances), nil
}

var _ token.BalanceStore = (*InMemory)(nil)
