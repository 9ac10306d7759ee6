package modules

import (
	"bytes"
	"cmp"
	"context"
	"encoding/json"
	"slices"
	"sync"
	"time"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// MaxLimits bounds how many windows one TransferLimit tracks.
const MaxLimits = 4

// Limit allows at most MaxTransfers outgoing transfers per Window.
type Limit struct {
	Window       time.Duration
	MaxTransfers uint32
}

type counter struct {
	start time.Time
	count uint32
}

func (c counter) expired(at time.Time, window time.Duration) bool {
	return c.start.IsZero() || at.Sub(c.start) >= window
}

// TransferLimit caps how many transfers an identity may send per window.
// Windows are fixed, not sliding: a window opens on the first transfer after
// the previous one expired and lasts exactly its length from there. Windows
// are not aligned to the clock.
type TransferLimit struct {
	*base

	mu       sync.RWMutex
	limits   []Limit
	counters map[domain.Address]map[time.Duration]counter
}

func NewTransferLimit(name string, limits ...Limit) (*TransferLimit, error) {
	b, err := newBase(name, KindTransferLimit)
	if err != nil {
		return nil, err
	}
	m := &TransferLimit{base: b, counters: make(map[domain.Address]map[time.Duration]counter)}
	for _, l := range limits {
		if err := m.SetLimit(l); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// SetLimit adds l, or replaces the limit with the same window.
func (m *TransferLimit) SetLimit(l Limit) error {
	if l.Window <= 0 || l.MaxTransfers == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "limit needs a positive window and count")
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if i := slices.IndexFunc(m.limits, func(x Limit) bool { return x.Window == l.Window }); i >= 0 {
		m.limits[i] = l
		return nil
	}
	if len(m.limits) >= MaxLimits {
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot track more than %d windows", MaxLimits)
	}
	m.limits = append(m.limits, l)
	return nil
}

func (m *TransferLimit) RemoveLimit(window time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	i := slices.IndexFunc(m.limits, func(x Limit) bool { return x.Window == window })
	if i < 0 {
		return dErrors.Newf(dErrors.CodeNotFound, "no limit for window %s", window)
	}
	m.limits = slices.Delete(m.limits, i, i+1)
	for _, byWindow := range m.counters {
		delete(byWindow, window)
	}
	return nil
}

func (m *TransferLimit) Limits() []Limit {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.limits)
}

func (m *TransferLimit) CanTransfer(_ context.Context, t compliance.Transfer) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	byWindow := m.counters[holderKey(t.From)]
	for _, l := range m.limits {
		c := byWindow[l.Window]
		if c.expired(t.At, l.Window) {
			continue
		}
		if c.count >= l.MaxTransfers {
			return false
		}
	}
	return true
}

func (m *TransferLimit) Transferred(_ context.Context, t compliance.Transfer) {
	m.mu.Lock()
	defer m.mu.Unlock()
	key := holderKey(t.From)
	byWindow, ok := m.counters[key]
	if !ok {
		byWindow = make(map[time.Duration]counter)
		m.counters[key] = byWindow
	}
	for _, l := range m.limits {
		c := byWindow[l.Window]
		if c.expired(t.At, l.Window) {
			c = counter{start: t.At}
		}
		c.count++
		byWindow[l.Window] = c
	}
}

type limitState struct {
	Window       time.Duration `json:"window"`
	MaxTransfers uint32        `json:"max_transfers"`
}

type counterState struct {
	Holder domain.Address `json:"holder"`
	Window time.Duration  `json:"window"`
	Start  time.Time      `json:"start"`
	Count  uint32         `json:"count"`
}

type transferLimitState struct {
	Limits   []limitState   `json:"limits"`
	Counters []counterState `json:"counters"`
}

// MarshalState saves the limits and the open counters. Counters are written
// in a stable order so unchanged state encodes identically.
func (m *TransferLimit) MarshalState() ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	st := transferLimitState{Limits: make([]limitState, len(m.limits))}
	for i, l := range m.limits {
		st.Limits[i] = limitState{Window: l.Window, MaxTransfers: l.MaxTransfers}
	}
	for holder, byWindow := range m.counters {
		for window, c := range byWindow {
			st.Counters = append(st.Counters, counterState{Holder: holder, Window: window, Start: c.start, Count: c.count})
		}
	}
	slices.SortFunc(st.Counters, func(a, b counterState) int {
		if c := bytes.Compare(a.Holder[:], b.Holder[:]); c != 0 {
			return c
		}
		return cmp.Compare(a.Window, b.Window)
	})
	return json.Marshal(st)
}

func (m *TransferLimit) UnmarshalState(data []byte) error {
	var st transferLimitState
	if err := json.Unmarshal(data, &st); err != nil {
		return err
	}
	if len(st.Limits) > MaxLimits {
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot track more than %d windows", MaxLimits)
	}
	limits := make([]Limit, len(st.Limits))
	for i, l := range st.Limits {
		if l.Window <= 0 || l.MaxTransfers == 0 {
			return dErrors.New(dErrors.CodeInvalidInput, "limit needs a positive window and count")
		}
		limits[i] = Limit{Window: l.Window, MaxTransfers: l.MaxTransfers}
	}
	counters := make(map[domain.Address]map[time.Duration]counter)
	for _, c := range st.Counters {
		byWindow, ok := counters[c.Holder]
		if !ok {
			byWindow = make(map[time.Duration]counter)
			counters[c.Holder] = byWindow
		}
		byWindow[c.Window] = counter{start: c.Start, count: c.Count}
	}
	m.mu.Lock()
	m.limits = limits
	m.counters = counters
	m.mu.Unlock()
	return nil
}
