package modules

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// MaxBalance caps the total an identity may hold across all of its wallets.
// It tracks per-identity balances from the hooks. Joining a chain with a
// bound token rebuilds them from the token's holdings, so only the cap is
// saved.
type MaxBalance struct {
	*base

	mu       sync.RWMutex
	max      uint64
	balances map[domain.Address]uint64
}

func NewMaxBalance(name string, max uint64) (*MaxBalance, error) {
	b, err := newBase(name, KindMaxBalance)
	if err != nil {
		return nil, err
	}
	if max == 0 {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "max balance must be positive")
	}
	return &MaxBalance{base: b, max: max, balances: make(map[domain.Address]uint64)}, nil
}

func (m *MaxBalance) MaxBalance() uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.max
}

func (m *MaxBalance) SetMaxBalance(max uint64) error {
	if max == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "max balance must be positive")
	}
	m.mu.Lock()
	m.max = max
	m.mu.Unlock()
	return nil
}

// PresetBalance records what identity already holds.
func (m *MaxBalance) PresetBalance(identity domain.Address, balance uint64) error {
	if err := domain.RequireNonZero(identity, "identity"); err != nil {
		return err
	}
	m.mu.Lock()
	m.balances[identity] = balance
	m.mu.Unlock()
	return nil
}

// RestoreHoldings replaces the tracked balances with holdings.
func (m *MaxBalance) RestoreHoldings(holdings []compliance.Holding) {
	balances := make(map[domain.Address]uint64, len(holdings))
	for _, h := range holdings {
		balances[holderKey(h.Holder)] += h.Balance
	}
	m.mu.Lock()
	m.balances = balances
	m.mu.Unlock()
}

type maxBalanceState struct {
	Max uint64 `json:"max_balance"`
}

func (m *MaxBalance) MarshalState() ([]byte, error) {
	return json.Marshal(maxBalanceState{Max: m.MaxBalance()})
}

func (m *MaxBalance) UnmarshalState(data []byte) error {
	var st maxBalanceState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	return m.SetMaxBalance(st.Max)
}

// IdentityBalance is the tracked balance of identity.
func (m *MaxBalance) IdentityBalance(identity domain.Address) uint64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.balances[identity]
}

func (m *MaxBalance) CanTransfer(_ context.Context, t compliance.Transfer) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t.Amount > m.max {
		return false
	}
	to := holderKey(t.To)
	if holderKey(t.From) == to {
		return true
	}
	return m.balances[to] <= m.max-t.Amount
}

func (m *MaxBalance) Transferred(_ context.Context, t compliance.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debit(holderKey(t.From), t.Amount)
	m.balances[holderKey(t.To)] += t.Amount
}

func (m *MaxBalance) Created(_ context.Context, to compliance.Party, amount uint64, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[holderKey(to)] += amount
}

func (m *MaxBalance) Destroyed(_ context.Context, from compliance.Party, amount uint64, _ time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.debit(holderKey(from), amount)
}

func (m *MaxBalance) debit(key domain.Address, amount uint64) {
	if m.balances[key] <= amount {
		delete(m.balances, key)
		return
	}
	m.balances[key] -= amount
}

// holderKey aggregates by identity, falling back to the wallet when the
// party is not registered.
func holderKey(p compliance.Party) domain.Address {
	if p.Identity != domain.ZeroAddress {
		return p.Identity
	}
	return p.Wallet
}
