package admin

import (
	"context"
	"time"

	"github.com/ethereum/go-ethereum/common"

	"assetgate/internal/compliance"
	"assetgate/internal/factory"
	"assetgate/internal/identity/claims"
	"assetgate/internal/identity/registry"
	"assetgate/internal/token"
	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
)

// TokenService is the ledger surface.
type TokenService interface {
	Address() domain.Address
	Info() token.Info
	Paused() bool
	TotalSupply(ctx context.Context) (uint64, error)
	Holder(ctx context.Context, wallet domain.Address) (token.Holder, error)
	Allowance(owner, spender domain.Address) uint64
	Transfer(ctx context.Context, caller, to domain.Address, amount uint64) error
	TransferFrom(ctx context.Context, caller, from, to domain.Address, amount uint64) error
	Approve(ctx context.Context, caller, spender domain.Address, amount uint64) error
	ForcedTransfer(ctx context.Context, caller, from, to domain.Address, amount uint64) error
	Mint(ctx context.Context, caller, to domain.Address, amount uint64) error
	Burn(ctx context.Context, caller, from domain.Address, amount uint64) error
	SetAddressFrozen(ctx context.Context, caller, holder domain.Address, freeze bool) error
	FreezePartialTokens(ctx context.Context, caller, holder domain.Address, amount uint64) error
	UnfreezePartialTokens(ctx context.Context, caller, holder domain.Address, amount uint64) error
	Pause(ctx context.Context, caller domain.Address) error
	Unpause(ctx context.Context, caller domain.Address) error
	RecoveryAddress(ctx context.Context, caller, lost, replacement, identity domain.Address) error
	AddAgent(ctx context.Context, caller, agent domain.Address) error
	RemoveAgent(ctx context.Context, caller, agent domain.Address) error
}

// IdentityService is the identity registry surface.
type IdentityService interface {
	RegisterIdentity(ctx context.Context, caller, holder, identity domain.Address, country domain.Country) error
	BatchRegisterIdentity(ctx context.Context, caller domain.Address, regs []registry.Registration) error
	UpdateCountry(ctx context.Context, caller, holder domain.Address, country domain.Country) error
	UpdateIdentity(ctx context.Context, caller, holder, identity domain.Address) error
	DeleteIdentity(ctx context.Context, caller, holder domain.Address) error
	Identity(ctx context.Context, holder domain.Address) (domain.Address, error)
	InvestorCountry(ctx context.Context, holder domain.Address) (domain.Country, error)
	IsVerified(ctx context.Context, holder domain.Address) (bool, error)
	AddAgent(ctx context.Context, caller, agent domain.Address) error
	RemoveAgent(ctx context.Context, caller, agent domain.Address) error
}

// ComplianceService is the modular compliance surface.
type ComplianceService interface {
	Modules() []compliance.ModuleInfo
	AddModule(ctx context.Context, caller domain.Address, module compliance.Module) error
	RemoveModule(ctx context.Context, caller domain.Address, name string) error
	CallModule(ctx context.Context, caller domain.Address, name string, fn func(compliance.Module) error) error
	CheckTransfer(ctx context.Context, from, to domain.Address, amount uint64, at time.Time) (compliance.Evaluation, error)
}

// TopicsService is the claim topics registry surface.
type TopicsService interface {
	ClaimTopics() []domain.Topic
	AddClaimTopic(ctx context.Context, caller domain.Address, topic domain.Topic) error
	RemoveClaimTopic(ctx context.Context, caller domain.Address, topic domain.Topic) error
}

// IssuersService is the trusted issuers registry surface.
type IssuersService interface {
	TrustedIssuers() []domain.Address
	IssuerClaimTopics(issuer domain.Address) ([]domain.Topic, error)
	AddTrustedIssuer(ctx context.Context, caller, issuer domain.Address, topics []domain.Topic) error
	UpdateIssuerClaimTopics(ctx context.Context, caller, issuer domain.Address, topics []domain.Topic) error
	RemoveTrustedIssuer(ctx context.Context, caller, issuer domain.Address) error
}

// ClaimService stores claims on identities and manages issuer keys.
type ClaimService interface {
	AddClaim(ctx context.Context, identity domain.Address, c claims.Claim) (common.Hash, error)
	AddKey(ctx context.Context, caller, issuer, signer domain.Address) error
	RemoveKey(ctx context.Context, caller, issuer, signer domain.Address) error
	RevokeClaim(ctx context.Context, caller, issuer domain.Address, signature []byte) error
}

// OwnershipService resolves ownable components by name.
type OwnershipService interface {
	Component(name string) (factory.Ownable, bool)
}

// EventSource lists published events.
type EventSource interface {
	ListSince(ctx context.Context, after uint64, limit int) ([]audit.Event, error)
}
