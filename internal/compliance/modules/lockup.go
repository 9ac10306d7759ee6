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

// Lockup blocks outgoing transfers from a wallet until its release time.
type Lockup struct {
	*base

	mu    sync.RWMutex
	until map[domain.Address]time.Time
}

func NewLockup(name string) (*Lockup, error) {
	b, err := newBase(name, KindLockup)
	if err != nil {
		return nil, err
	}
	return &Lockup{base: b, until: make(map[domain.Address]time.Time)}, nil
}

// LockUntil locks wallet until release, replacing any earlier lock.
func (m *Lockup) LockUntil(wallet domain.Address, release time.Time) error {
	if err := domain.RequireNonZero(wallet, "wallet"); err != nil {
		return err
	}
	if release.IsZero() {
		return dErrors.New(dErrors.CodeInvalidInput, "release time is required")
	}
	m.mu.Lock()
	m.until[wallet] = release
	m.mu.Unlock()
	return nil
}

func (m *Lockup) Unlock(wallet domain.Address) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.until[wallet]; !ok {
		return dErrors.New(dErrors.CodeNotFound, "wallet is not locked")
	}
	delete(m.until, wallet)
	return nil
}

func (m *Lockup) ReleaseTime(wallet domain.Address) (time.Time, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	t, ok := m.until[wallet]
	return t, ok
}

type lockupState struct {
	Until map[domain.Address]time.Time `json:"until"`
}

func (m *Lockup) MarshalState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return json.Marshal(lockupState{Until: m.until})
}

func (m *Lockup) UnmarshalState(data []byte) error {
	var st lockupState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if st.Until == nil {
		st.Until = make(map[domain.Address]time.Time)
	}
	m.mu.Lock()
	m.until = st.Until
	m.mu.Unlock()
	return nil
}

func (m *Lockup) CanTransfer(_ context.Context, t compliance.Transfer) bool {
	release, ok := m.ReleaseTime(t.From.Wallet)
	return !ok || !t.At.Before(release)
}
