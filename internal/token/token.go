// Package token is the permissioned ledger. Every ordinary balance movement
// passes the gate
//
//	REQUESTED -> IDENTITY_CHECK -> COMPLIANCE_CHECK -> SETTLED | REJECTED
//
// and agent operations (forced transfer, mint, burn, freezes, pause,
// recovery) bypass the parts of it their role allows.
//
// Mutations are serialized by one mutex and run checks and settlement as a
// single unit; a rejected operation leaves balances, freezes, allowances and
// module state untouched.
package token

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"assetgate/internal/access"
	"assetgate/internal/compliance"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

// Version is reported alongside the token metadata.
const Version = "4.1.3"

// Token is the ledger service.
type Token struct {
	*access.AgentRole

	// mu serializes mutations. Reads never take it.
	mu sync.Mutex

	// stateMu guards the cached ledger state. Freezes and allowances mirror
	// the balance store and are only changed through commit.
	stateMu    sync.RWMutex
	info       Info
	paused     bool
	freezes    map[domain.Address]Freeze
	allowances map[Allowance]uint64
	registry   IdentityRegistry
	compliance Compliance

	balances BalanceStore

	logger  *slog.Logger
	emitter audit.Emitter
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures the Token.
type Option func(*Token)

func WithLogger(logger *slog.Logger) Option {
	return func(t *Token) {
		t.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(t *Token) {
		t.emitter = emitter
	}
}

func WithMetrics(m *Metrics) Option {
	return func(t *Token) {
		t.metrics = m
	}
}

// New creates a paused token bound to registry and mc. Freezes and
// allowances are loaded from balances, so a token redeployed over an existing
// store keeps them. The compliance binds the token as part of construction.
func New(
	ctx context.Context,
	address, owner domain.Address,
	info Info,
	balances BalanceStore,
	registry IdentityRegistry,
	mc Compliance,
	opts ...Option,
) (*Token, error) {
	if err := info.Validate(); err != nil {
		return nil, err
	}
	if balances == nil || registry == nil || mc == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "token requires a balance store, identity registry and compliance")
	}
	freezes, err := balances.Freezes(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load freezes")
	}
	allowances, err := balances.Allowances(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load allowances")
	}
	supply, err := balances.TotalSupply(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load total supply")
	}
	if freezes == nil {
		freezes = make(map[domain.Address]Freeze)
	}
	if allowances == nil {
		allowances = make(map[Allowance]uint64)
	}
	t := &Token{
		info:       info,
		paused:     true,
		freezes:    freezes,
		allowances: allowances,
		registry:   registry,
		balances:   balances,
		tracer:     otel.Tracer("assetgate/token"),
	}
	for _, opt := range opts {
		opt(t)
	}
	role, err := access.NewAgentRole(address, owner, access.WithLogger(t.logger), access.WithAuditPublisher(t.emitter))
	if err != nil {
		return nil, err
	}
	t.AgentRole = role

	if err := mc.BindToken(ctx, t.Address(), t); err != nil {
		return nil, err
	}
	t.compliance = mc
	t.metrics.setSupply(supply)

	t.logAudit(ctx, audit.Event{Action: string(audit.EventIdentityRegistryAdded), Actor: owner, Counterparty: registry.Address()})
	t.logAudit(ctx, audit.Event{Action: string(audit.EventComplianceAdded), Actor: owner, Counterparty: mc.Address()})
	return t, nil
}

func (t *Token) Address() domain.Address {
	return t.Component()
}

func (t *Token) Info() Info {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.info
}

func (t *Token) Paused() bool {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.paused
}

// IsFrozen reports whether holder's address is frozen.
func (t *Token) IsFrozen(holder domain.Address) bool {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.freezes[holder].Address
}

// FrozenTokens is the partially frozen amount of holder.
func (t *Token) FrozenTokens(holder domain.Address) uint64 {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.freezes[holder].Tokens
}

func (t *Token) freezeOf(holder domain.Address) Freeze {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.freezes[holder]
}

func (t *Token) IdentityRegistry() IdentityRegistry {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.registry
}

func (t *Token) Compliance() Compliance {
	t.stateMu.RLock()
	defer t.stateMu.RUnlock()
	return t.compliance
}

func (t *Token) BalanceOf(ctx context.Context, holder domain.Address) (uint64, error) {
	bal, err := t.balances.Balance(ctx, holder)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "load balance")
	}
	return bal, nil
}

func (t *Token) TotalSupply(ctx context.Context) (uint64, error) {
	supply, err := t.balances.TotalSupply(ctx)
	if err != nil {
		return 0, dErrors.Wrap(err, dErrors.CodeInternal, "load total supply")
	}
	return supply, nil
}

// Holder returns the ledger view of wallet.
func (t *Token) Holder(ctx context.Context, wallet domain.Address) (Holder, error) {
	bal, err := t.BalanceOf(ctx, wallet)
	if err != nil {
		return Holder{}, err
	}
	f := t.freezeOf(wallet)
	return Holder{Wallet: wallet, Balance: bal, Frozen: f.Tokens, Locked: f.Address}, nil
}

// Holdings resolves every wallet with a balance for the compliance modules.
func (t *Token) Holdings(ctx context.Context) ([]compliance.Holding, error) {
	all, err := t.balances.Balances(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "load balances")
	}
	out := make([]compliance.Holding, 0, len(all))
	for wallet, bal := range all {
		party, err := t.Investor(ctx, wallet)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "resolve holder")
		}
		out = append(out, compliance.Holding{Holder: party, Balance: bal})
	}
	return out, nil
}

// Investor resolves wallet for the compliance modules. Unregistered wallets
// and the zero address resolve with a zero identity.
func (t *Token) Investor(ctx context.Context, wallet domain.Address) (compliance.Party, error) {
	party := compliance.Party{Wallet: wallet}
	if wallet == domain.ZeroAddress {
		return party, nil
	}
	reg := t.IdentityRegistry()
	identity, err := reg.Identity(ctx, wallet)
	if dErrors.HasCode(err, dErrors.CodeNotRegistered) {
		return party, nil
	}
	if err != nil {
		return party, err
	}
	country, err := reg.InvestorCountry(ctx, wallet)
	if err != nil {
		return party, err
	}
	party.Identity = identity
	party.Country = country
	return party, nil
}

// SetName updates the token name. Owner only.
func (t *Token) SetName(ctx context.Context, caller domain.Address, name string) error {
	return t.updateInfo(ctx, caller, func(i *Info) { i.Name = name })
}

// SetSymbol updates the token symbol. Owner only.
func (t *Token) SetSymbol(ctx context.Context, caller domain.Address, symbol string) error {
	return t.updateInfo(ctx, caller, func(i *Info) { i.Symbol = symbol })
}

// SetOnchainID updates the issuer identity reference. Owner only. Zero
// clears it.
func (t *Token) SetOnchainID(ctx context.Context, caller, onchainID domain.Address) error {
	return t.updateInfo(ctx, caller, func(i *Info) { i.OnchainID = onchainID })
}

func (t *Token) updateInfo(ctx context.Context, caller domain.Address, fn func(*Info)) error {
	if err := t.RequireOwner(caller); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stateMu.Lock()
	next := t.info
	fn(&next)
	if err := next.Validate(); err != nil {
		t.stateMu.Unlock()
		return err
	}
	t.info = next
	t.stateMu.Unlock()

	t.logAudit(ctx, audit.Event{
		Action:       string(audit.EventUpdatedTokenInformation),
		Actor:        caller,
		Counterparty: next.OnchainID,
		Detail:       next.Name + "/" + next.Symbol,
	})
	return nil
}

// SetIdentityRegistry re-points the token. Owner only.
func (t *Token) SetIdentityRegistry(ctx context.Context, caller domain.Address, registry IdentityRegistry) error {
	if err := t.RequireOwner(caller); err != nil {
		return err
	}
	if registry == nil {
		return dErrors.New(dErrors.CodeZeroAddress, "identity registry is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	t.stateMu.Lock()
	t.registry = registry
	t.stateMu.Unlock()

	t.logAudit(ctx, audit.Event{Action: string(audit.EventIdentityRegistryAdded), Actor: caller, Counterparty: registry.Address()})
	return nil
}

// SetCompliance unbinds the current compliance and binds mc. Owner only.
func (t *Token) SetCompliance(ctx context.Context, caller domain.Address, mc Compliance) error {
	if err := t.RequireOwner(caller); err != nil {
		return err
	}
	if mc == nil {
		return dErrors.New(dErrors.CodeZeroAddress, "compliance is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	current := t.Compliance()
	if current.Address() == mc.Address() {
		return dErrors.New(dErrors.CodeAlreadyBound, "compliance already bound")
	}
	if err := mc.BindToken(ctx, t.Address(), t); err != nil {
		return err
	}
	if err := current.UnbindToken(ctx, t.Address(), t.Address()); err != nil {
		t.notify(ctx, mc.UnbindToken(ctx, t.Address(), t.Address()))
		return err
	}

	t.stateMu.Lock()
	t.compliance = mc
	t.stateMu.Unlock()

	t.logAudit(ctx, audit.Event{Action: string(audit.EventComplianceAdded), Actor: caller, Counterparty: mc.Address()})
	return nil
}

// commit writes u to the balance store, then mirrors it into the cached
// state. Nothing is cached when the write fails. Callers hold t.mu.
func (t *Token) commit(ctx context.Context, u Update) error {
	if u.IsEmpty() {
		return nil
	}
	if err := t.balances.Apply(ctx, u); err != nil {
		return dErrors.Wrap(err, dErrors.CodeInternal, "write ledger")
	}
	t.stateMu.Lock()
	for holder, f := range u.Freezes {
		if f.IsZero() {
			delete(t.freezes, holder)
			continue
		}
		t.freezes[holder] = f
	}
	for key, amount := range u.Allowances {
		if amount == 0 {
			delete(t.allowances, key)
			continue
		}
		t.allowances[key] = amount
	}
	t.stateMu.Unlock()

	if len(u.Balances) > 0 {
		t.metrics.setSupply(u.TotalSupply)
	}
	return nil
}

// begin opens a span and returns the function that records the outcome.
func (t *Token) begin(ctx context.Context, op string, attrs ...attribute.KeyValue) (context.Context, func(*error)) {
	ctx, span := t.tracer.Start(ctx, "token."+op, trace.WithAttributes(attrs...))
	start := time.Now()
	return ctx, func(errp *error) {
		defer span.End()
		err := *errp
		if err == nil {
			t.metrics.observe(op, "settled", "", time.Since(start))
			return
		}
		code := dErrors.CodeOf(err)
		span.SetAttributes(attribute.String("error.code", string(code)))
		switch code.Kind() {
		case dErrors.KindInternal:
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			t.metrics.observe(op, "error", string(code), time.Since(start))
			t.log(ctx, slog.LevelError, op+" failed", "error", err)
		case dErrors.KindAuthorization:
			t.metrics.observe(op, "rejected", string(code), time.Since(start))
			t.log(ctx, slog.LevelWarn, op+" unauthorized", "reason", string(code))
		default:
			t.metrics.observe(op, "rejected", string(code), time.Since(start))
			t.log(ctx, slog.LevelInfo, op+" rejected", "reason", string(code), "detail", err.Error())
		}
	}
}

func (t *Token) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	if t.logger != nil {
		t.logger.Log(ctx, level, msg, append(args, "token", t.Address().Hex())...)
	}
}

func (t *Token) logAudit(ctx context.Context, event audit.Event) {
	event.Source = t.Address()
	audit.Log(ctx, t.logger, t.emitter, event)
}
