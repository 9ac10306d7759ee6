package compliance

import (
	"context"
	"encoding/json"
	"time"

	"assetgate/pkg/domain"
)

// Party is one side of a value movement, resolved against the identity
// registry before the check. Identity and Country are zero for the minting
// and burning side and for wallets that are not registered.
type Party struct {
	Wallet   domain.Address
	Identity domain.Address
	Country  domain.Country
}

// Transfer is the resolved context every module sees.
type Transfer struct {
	From   Party
	To     Party
	Amount uint64
	At     time.Time
}

// Module is one compliance rule. CanTransfer must be free of side effects;
// the hooks update module state after the ledger has settled and must not
// fail. A module is bound to at most one compliance at a time.
type Module interface {
	Name() string
	Kind() string

	CanTransfer(ctx context.Context, t Transfer) bool
	Transferred(ctx context.Context, t Transfer)
	Created(ctx context.Context, to Party, amount uint64, at time.Time)
	Destroyed(ctx context.Context, from Party, amount uint64, at time.Time)

	BindCompliance(compliance domain.Address) error
	UnbindCompliance(compliance domain.Address) error
	BoundCompliance() domain.Address
}

// Token is the ledger a compliance serves. Investor resolves a wallet to its
// identity and country; unregistered wallets resolve with a zero identity.
// Holdings lists every wallet with a balance.
type Token interface {
	Address() domain.Address
	Investor(ctx context.Context, wallet domain.Address) (Party, error)
	Holdings(ctx context.Context) ([]Holding, error)
}

// Holding is what one resolved holder owns.
type Holding struct {
	Holder  Party
	Balance uint64
}

// HoldingsTracker is a module that derives its state from balances. Its state
// is rebuilt from the token's holdings whenever it joins a chain with a bound
// token, and whenever a token binds to a chain that contains it.
type HoldingsTracker interface {
	RestoreHoldings(holdings []Holding)
}

// Stateful is a module whose configuration and counters can be saved and
// loaded back. State derived from holdings is left out.
type Stateful interface {
	MarshalState() ([]byte, error)
	UnmarshalState(data []byte) error
}

// ModuleRecord is the saved form of one module of the chain. Seq orders the
// chain on load.
type ModuleRecord struct {
	Name  string          `json:"name"`
	Kind  string          `json:"kind"`
	Seq   uint64          `json:"seq"`
	State json.RawMessage `json:"state"`
}

// StateStore keeps the module chain of one compliance across restarts. Load
// returns the records in Seq order.
type StateStore interface {
	Load(ctx context.Context) ([]ModuleRecord, error)
	Save(ctx context.Context, r ModuleRecord) error
	Delete(ctx context.Context, name string) error
}

// Evaluation is the outcome of one admission check.
type Evaluation struct {
	Allowed  bool
	Rejected []string
}

// ModuleInfo describes a bound module for listings.
type ModuleInfo struct {
	Name string `json:"name"`
	Kind string `json:"kind"`
}
