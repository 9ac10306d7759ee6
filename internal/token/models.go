package token

import (
	"context"
	"strings"
	"time"

	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
)

// MaxDecimals matches the ERC-20 convention.
const MaxDecimals = 18

// Info is the descriptive token metadata. OnchainID is an optional reference
// to the issuer's identity and may be zero.
type Info struct {
	Name      string         `json:"name"`
	Symbol    string         `json:"symbol"`
	Decimals  uint8          `json:"decimals"`
	OnchainID domain.Address `json:"onchain_id"`
}

// Validate checks the metadata invariants.
func (i Info) Validate() error {
	if strings.TrimSpace(i.Name) == "" || strings.TrimSpace(i.Symbol) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "token name and symbol are required")
	}
	if i.Decimals > MaxDecimals {
		return dErrors.Newf(dErrors.CodeInvalidInput, "decimals must be at most %d", MaxDecimals)
	}
	return nil
}

// Freeze is the frozen state of one holder: the whole address, a number of
// its tokens, or both.
type Freeze struct {
	Address bool   `json:"address_frozen"`
	Tokens  uint64 `json:"frozen_tokens"`
}

func (f Freeze) IsZero() bool {
	return !f.Address && f.Tokens == 0
}

// Allowance keys what Spender may move out of Owner's balance.
type Allowance struct {
	Owner   domain.Address
	Spender domain.Address
}

// Update is one atomic ledger write. TotalSupply is written only when
// Balances is non-empty. Zero balances, zero freezes and zero allowances
// remove their entries.
type Update struct {
	Balances    map[domain.Address]uint64
	TotalSupply uint64
	Freezes     map[domain.Address]Freeze
	Allowances  map[Allowance]uint64
}

func (u Update) IsEmpty() bool {
	return len(u.Balances) == 0 && len(u.Freezes) == 0 && len(u.Allowances) == 0
}

// BalanceStore is the settlement collaborator. It holds every piece of ledger
// state that must outlive the process: balances, supply, freezes and
// allowances.
type BalanceStore interface {
	Balance(ctx context.Context, holder domain.Address) (uint64, error)
	TotalSupply(ctx context.Context) (uint64, error)
	Balances(ctx context.Context) (map[domain.Address]uint64, error)
	Freezes(ctx context.Context) (map[domain.Address]Freeze, error)
	Allowances(ctx context.Context) (map[Allowance]uint64, error)
	Apply(ctx context.Context, u Update) error
}

// IdentityRegistry is what the ledger needs from the identity registry. The
// token registers and deletes wallets itself during recovery, so it must be
// an agent of the registry.
type IdentityRegistry interface {
	Address() domain.Address
	IsVerified(ctx context.Context, holder domain.Address) (bool, error)
	Contains(ctx context.Context, holder domain.Address) (bool, error)
	Identity(ctx context.Context, holder domain.Address) (domain.Address, error)
	InvestorCountry(ctx context.Context, holder domain.Address) (domain.Country, error)
	RegisterIdentity(ctx context.Context, caller, holder, identity domain.Address, country domain.Country) error
	DeleteIdentity(ctx context.Context, caller, holder domain.Address) error
}

// Compliance is what the ledger needs from the modular compliance.
type Compliance interface {
	Address() domain.Address
	BindToken(ctx context.Context, caller domain.Address, token compliance.Token) error
	UnbindToken(ctx context.Context, caller, token domain.Address) error
	CanTransfer(ctx context.Context, t compliance.Transfer) bool
	Settle(ctx context.Context, caller domain.Address, t compliance.Transfer, settle func() error) error
	Transferred(ctx context.Context, caller domain.Address, t compliance.Transfer) error
	Created(ctx context.Context, caller domain.Address, to compliance.Party, amount uint64, at time.Time) error
	Destroyed(ctx context.Context, caller domain.Address, from compliance.Party, amount uint64, at time.Time) error
}

// Holder is the ledger view of one wallet.
type Holder struct {
	Wallet  domain.Address `json:"wallet"`
	Balance uint64         `json:"balance"`
	Frozen  uint64         `json:"frozen_tokens"`
	Locked  bool           `json:"address_frozen"`
}
