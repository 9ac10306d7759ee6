package modules

import (
	"bytes"
	"context"
	"encoding/json"
	"slices"
	"sync"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// TransferRestrict admits a transfer when either side is an allowed wallet.
type TransferRestrict struct {
	*base

	mu      sync.RWMutex
	allowed map[domain.Address]struct{}
}

func NewTransferRestrict(name string, wallets ...domain.Address) (*TransferRestrict, error) {
	b, err := newBase(name, KindTransferRestrict)
	if err != nil {
		return nil, err
	}
	m := &TransferRestrict{base: b, allowed: make(map[domain.Address]struct{})}
	if len(wallets) > 0 {
		if err := m.AllowUsers(wallets...); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// AllowUsers allows every wallet or none.
func (m *TransferRestrict) AllowUsers(wallets ...domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range wallets {
		if err := domain.RequireNonZero(w, "wallet"); err != nil {
			return err
		}
		if _, ok := m.allowed[w]; ok {
			return dErrors.Newf(dErrors.CodeConflict, "wallet %s already allowed", w.Hex())
		}
	}
	for _, w := range wallets {
		m.allowed[w] = struct{}{}
	}
	return nil
}

// DisallowUsers removes every wallet or none.
func (m *TransferRestrict) DisallowUsers(wallets ...domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, w := range wallets {
		if _, ok := m.allowed[w]; !ok {
			return dErrors.Newf(dErrors.CodeNotFound, "wallet %s is not allowed", w.Hex())
		}
	}
	for _, w := range wallets {
		delete(m.allowed, w)
	}
	return nil
}

func (m *TransferRestrict) IsUserAllowed(wallet domain.Address) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.allowed[wallet]
	return ok
}

func (m *TransferRestrict) AllowedUsers() []domain.Address {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.Address, 0, len(m.allowed))
	for w := range m.allowed {
		out = append(out, w)
	}
	slices.SortFunc(out, func(a, b domain.Address) int { return bytes.Compare(a[:], b[:]) })
	return out
}

type transferRestrictState struct {
	Wallets []domain.Address `json:"wallets"`
}

func (m *TransferRestrict) MarshalState() ([]byte, error) {
	return json.Marshal(transferRestrictState{Wallets: m.AllowedUsers()})
}

func (m *TransferRestrict) UnmarshalState(data []byte) error {
	var st transferRestrictState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	allowed := make(map[domain.Address]struct{}, len(st.Wallets))
	for _, w := range st.Wallets {
		allowed[w] = struct{}{}
	}
	m.mu.Lock()
	m.allowed = allowed
	m.mu.Unlock()
	return nil
}

func (m *TransferRestrict) CanTransfer(_ context.Context, t compliance.Transfer) bool {
	return m.IsUserAllowed(t.From.Wallet) || m.IsUserAllowed(t.To.Wallet)
}
