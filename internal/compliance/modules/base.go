// Package modules holds the compliance rule variants and a kind-based
// builder used by the admin surface.
package modules

import (
	"context"
	"strings"
	"sync"
	"time"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// Kinds understood by Build.
const (
	KindMaxBalance       = "max_balance"
	KindCountryRestrict  = "country_restrict"
	KindCountryAllow     = "country_allow"
	KindTransferLimit    = "transfer_limit"
	KindLockup           = "lockup"
	KindTransferRestrict = "transfer_restrict"
)

// base carries the name and the compliance binding shared by every variant,
// plus no-op hooks for variants that keep no settlement state.
type base struct {
	name string
	kind string

	bindMu sync.RWMutex
	bound  domain.Address
}

func newBase(name, kind string) (*base, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvalidInput, "module name is required")
	}
	return &base{name: name, kind: kind}, nil
}

func (b *base) Name() string { return b.name }
func (b *base) Kind() string { return b.kind }

func (b *base) BindCompliance(c domain.Address) error {
	if err := domain.RequireNonZero(c, "compliance"); err != nil {
		return err
	}
	b.bindMu.Lock()
	defer b.bindMu.Unlock()
	if b.bound != domain.ZeroAddress {
		return dErrors.Newf(dErrors.CodeAlreadyBound, "module %q is bound to another compliance", b.name)
	}
	b.bound = c
	return nil
}

func (b *base) UnbindCompliance(c domain.Address) error {
	b.bindMu.Lock()
	defer b.bindMu.Unlock()
	if b.bound != c {
		return dErrors.Newf(dErrors.CodeModuleNotBound, "module %q is not bound to this compliance", b.name)
	}
	b.bound = domain.ZeroAddress
	return nil
}

func (b *base) BoundCompliance() domain.Address {
	b.bindMu.RLock()
	defer b.bindMu.RUnlock()
	return b.bound
}

func (b *base) Transferred(context.Context, compliance.Transfer) {}

func (b *base) Created(context.Context, compliance.Party, uint64, time.Time) {}

func (b *base) Destroyed(context.Context, compliance.Party, uint64, time.Time) {}
