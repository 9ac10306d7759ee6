// Package factory deploys a complete suite: trust registries, identity
// storage and registry, modular compliance and the token, wired and seeded.
package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"assetgate/internal/compliance"
	"assetgate/internal/compliance/modules"
	"assetgate/internal/identity/claims"
	"assetgate/internal/identity/registry"
	"assetgate/internal/identity/storage"
	"assetgate/internal/token"
	"assetgate/internal/trust/issuers"
	"assetgate/internal/trust/topics"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

// Deployer owns every component until the suite is handed over.
var Deployer = domain.DeriveAddress("assetgate/deployer")

// IssuerConfig seeds one trusted issuer.
type IssuerConfig struct {
	Issuer domain.Address
	Topics []domain.Topic
}

// Config describes the suite to deploy.
type Config struct {
	Owner          domain.Address
	Token          token.Info
	ClaimTopics    []domain.Topic
	TrustedIssuers []IssuerConfig
	// Agents operate both the token and the identity registry.
	Agents  []domain.Address
	Modules []modules.Config
}

// Stores supplies persistence. Balances is called once with the token
// address and Modules, when set, once with the compliance address. A suite
// deployed again over the same stores picks up identities, balances,
// freezes, allowances and the module chain where the last one left off.
type Stores struct {
	Records  storage.RecordStore
	Balances func(token domain.Address) token.BalanceStore
	Modules  func(compliance domain.Address) compliance.StateStore
}

// Suite is a deployed set of components.
type Suite struct {
	Topics     *topics.Registry
	Issuers    *issuers.Registry
	Storage    *storage.Storage
	Registry   *registry.Registry
	Compliance *compliance.ModularCompliance
	Token      *token.Token
	Claims     *claims.Directory
	Keys       *claims.IssuerKeys
}

// Ownable is the two-step ownership surface every component shares.
type Ownable interface {
	Owner() domain.Address
	PendingOwner() domain.Address
	TransferOwnership(ctx context.Context, caller, candidate domain.Address) error
	AcceptOwnership(ctx context.Context, caller domain.Address) error
	CancelOwnershipTransfer(ctx context.Context, caller domain.Address) error
}

// Component names used by the admin surface.
const (
	ComponentToken            = "token"
	ComponentIdentityRegistry = "identity-registry"
	ComponentIdentityStorage  = "identity-storage"
	ComponentCompliance       = "compliance"
	ComponentClaimTopics      = "claim-topics"
	ComponentTrustedIssuers   = "trusted-issuers"
)

// Components lists every ownable component by name, in deployment order.
func (s *Suite) Components() map[string]Ownable {
	return map[string]Ownable{
		ComponentTrustedIssuers:   s.Issuers,
		ComponentClaimTopics:      s.Topics,
		ComponentIdentityStorage:  s.Storage,
		ComponentIdentityRegistry: s.Registry,
		ComponentCompliance:       s.Compliance,
		ComponentToken:            s.Token,
	}
}

// Component returns the ownable component called name.
func (s *Suite) Component(name string) (Ownable, bool) {
	c, ok := s.Components()[name]
	return c, ok
}

// AcceptOwnership completes every handover pending for caller and returns the
// names of the components it now owns.
func (s *Suite) AcceptOwnership(ctx context.Context, caller domain.Address) ([]string, error) {
	var accepted []string
	for _, name := range componentOrder {
		c := s.Components()[name]
		if c.PendingOwner() != caller {
			continue
		}
		if err := c.AcceptOwnership(ctx, caller); err != nil {
			return accepted, fmt.Errorf("accept %s: %w", name, err)
		}
		accepted = append(accepted, name)
	}
	return accepted, nil
}

var componentOrder = []string{
	ComponentTrustedIssuers,
	ComponentClaimTopics,
	ComponentIdentityStorage,
	ComponentIdentityRegistry,
	ComponentCompliance,
	ComponentToken,
}

type options struct {
	logger   *slog.Logger
	emitter  audit.Emitter
	registry prometheus.Registerer
}

// Option configures Deploy.
type Option func(*options)

func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(o *options) {
		o.emitter = emitter
	}
}

// WithMetricsRegisterer registers component metrics on reg.
func WithMetricsRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registry = reg
	}
}

// Deploy creates and wires the suite in dependency order, seeds it from cfg
// and hands ownership of every component to cfg.Owner. The compliance is
// handed over at once; every other component waits for the owner to accept.
func Deploy(ctx context.Context, cfg Config, stores Stores, opts ...Option) (*Suite, error) {
	if err := domain.RequireNonZero(cfg.Owner, "owner"); err != nil {
		return nil, err
	}
	if stores.Records == nil || stores.Balances == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "record and balance stores are required")
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	label := cfg.Token.Symbol
	addr := func(component string) domain.Address {
		return domain.DeriveAddress("assetgate/" + label + "/" + component)
	}

	s := &Suite{
		Claims: claims.NewDirectory(o.logger),
		Keys:   claims.NewIssuerKeys(o.logger),
	}
	var err error

	if s.Issuers, err = issuers.New(addr(ComponentTrustedIssuers), Deployer,
		issuers.WithLogger(o.logger), issuers.WithAuditPublisher(o.emitter)); err != nil {
		return nil, fmt.Errorf("deploy trusted issuers registry: %w", err)
	}
	if s.Topics, err = topics.New(addr(ComponentClaimTopics), Deployer,
		topics.WithLogger(o.logger), topics.WithAuditPublisher(o.emitter)); err != nil {
		return nil, fmt.Errorf("deploy claim topics registry: %w", err)
	}
	if s.Storage, err = storage.New(addr(ComponentIdentityStorage), Deployer, stores.Records,
		storage.WithLogger(o.logger), storage.WithAuditPublisher(o.emitter)); err != nil {
		return nil, fmt.Errorf("deploy identity storage: %w", err)
	}

	regOpts := []registry.Option{registry.WithLogger(o.logger), registry.WithAuditPublisher(o.emitter)}
	mcOpts := []compliance.Option{compliance.WithLogger(o.logger), compliance.WithAuditPublisher(o.emitter), compliance.WithImmediateFirstHandover()}
	tokenOpts := []token.Option{token.WithLogger(o.logger), token.WithAuditPublisher(o.emitter)}
	if o.registry != nil {
		regOpts = append(regOpts, registry.WithMetrics(registry.NewMetricsWithRegistry(o.registry)))
		mcOpts = append(mcOpts, compliance.WithMetrics(compliance.NewMetricsWithRegistry(o.registry)))
		tokenOpts = append(tokenOpts, token.WithMetrics(token.NewMetricsWithRegistry(o.registry)))
	}

	verifier := claims.NewVerifier(s.Claims, s.Keys)
	if s.Registry, err = registry.New(addr(ComponentIdentityRegistry), Deployer, s.Storage, s.Topics, s.Issuers, verifier, regOpts...); err != nil {
		return nil, fmt.Errorf("deploy identity registry: %w", err)
	}
	if err := s.Storage.BindIdentityRegistry(ctx, Deployer, s.Registry.Address()); err != nil {
		return nil, fmt.Errorf("bind identity registry: %w", err)
	}

	if stores.Modules != nil {
		mcOpts = append(mcOpts, compliance.WithStateStore(stores.Modules(addr(ComponentCompliance))))
	}
	if s.Compliance, err = compliance.New(addr(ComponentCompliance), Deployer, mcOpts...); err != nil {
		return nil, fmt.Errorf("deploy compliance: %w", err)
	}
	tokenAddress := addr(ComponentToken)
	if s.Token, err = token.New(ctx, tokenAddress, Deployer, cfg.Token, stores.Balances(tokenAddress), s.Registry, s.Compliance, tokenOpts...); err != nil {
		return nil, fmt.Errorf("deploy token: %w", err)
	}
	// Recovery registers and deletes wallets through the registry.
	if err := s.Registry.AddAgent(ctx, Deployer, s.Token.Address()); err != nil {
		return nil, fmt.Errorf("make token a registry agent: %w", err)
	}

	if err := s.seed(ctx, cfg); err != nil {
		return nil, err
	}
	if err := s.handover(ctx, cfg.Owner); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *Suite) seed(ctx context.Context, cfg Config) error {
	for _, topic := range cfg.ClaimTopics {
		if err := s.Topics.AddClaimTopic(ctx, Deployer, topic); err != nil {
			return fmt.Errorf("seed claim topic %d: %w", topic, err)
		}
	}
	for _, ti := range cfg.TrustedIssuers {
		if err := s.Issuers.AddTrustedIssuer(ctx, Deployer, ti.Issuer, ti.Topics); err != nil {
			return fmt.Errorf("seed trusted issuer %s: %w", ti.Issuer.Hex(), err)
		}
	}
	for _, agent := range cfg.Agents {
		if err := s.Token.AddAgent(ctx, Deployer, agent); err != nil {
			return fmt.Errorf("seed token agent %s: %w", agent.Hex(), err)
		}
		if err := s.Registry.AddAgent(ctx, Deployer, agent); err != nil {
			return fmt.Errorf("seed registry agent %s: %w", agent.Hex(), err)
		}
	}
	for _, mc := range cfg.Modules {
		m, err := modules.Build(mc)
		if err != nil {
			return fmt.Errorf("build module %q: %w", mc.Name, err)
		}
		if err := s.Compliance.AddModule(ctx, Deployer, m); err != nil {
			return fmt.Errorf("add module %q: %w", mc.Name, err)
		}
	}
	// modules added at runtime by an earlier deployment
	if err := s.Compliance.RestoreModules(ctx, Deployer, modules.Restore); err != nil {
		return fmt.Errorf("restore modules: %w", err)
	}
	return nil
}

func (s *Suite) handover(ctx context.Context, owner domain.Address) error {
	if owner == Deployer {
		return nil
	}
	for _, name := range componentOrder {
		if err := s.Components()[name].TransferOwnership(ctx, Deployer, owner); err != nil {
			return fmt.Errorf("hand over %s: %w", name, err)
		}
	}
	return nil
}
