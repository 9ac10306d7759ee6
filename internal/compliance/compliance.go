// Package compliance is the modular compliance: an ordered chain of rule
// modules consulted before every ordinary transfer and notified after every
// settled value movement.
//
// The chain is published as an immutable snapshot. A check and the hooks of
// the same movement run against one snapshot, so adding or removing a module
// never splits an in-flight transfer between two chains.
//
// With a StateStore the chain survives a restart: stateful modules are saved
// whenever they change, and modules that track balances are rebuilt from the
// token's holdings instead of being saved.
package compliance

import (
	"context"
	"log/slog"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"assetgate/internal/access"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

// MaxModules bounds the chain so a transfer check stays bounded.
const MaxModules = 25

type chain []Module

// ModularCompliance owns the module chain and the token binding.
type ModularCompliance struct {
	*access.Ownable

	writeMu sync.Mutex
	modules atomic.Pointer[chain]
	token   atomic.Pointer[Token]

	state  StateStore
	saveMu sync.Mutex
	saved  map[string]savedState

	logger  *slog.Logger
	emitter audit.Emitter
	metrics *Metrics
	ownable []access.Option
}

// Option configures the ModularCompliance.
type Option func(*ModularCompliance)

func WithLogger(logger *slog.Logger) Option {
	return func(mc *ModularCompliance) {
		mc.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(mc *ModularCompliance) {
		mc.emitter = emitter
	}
}

func WithMetrics(m *Metrics) Option {
	return func(mc *ModularCompliance) {
		mc.metrics = m
	}
}

// WithStateStore saves the module chain to store.
func WithStateStore(store StateStore) Option {
	return func(mc *ModularCompliance) {
		mc.state = store
	}
}

// WithImmediateFirstHandover lets the deployer hand the compliance to its
// operator in one step; later transfers are two-step.
func WithImmediateFirstHandover() Option {
	return func(mc *ModularCompliance) {
		mc.ownable = append(mc.ownable, access.WithImmediateFirstHandover())
	}
}

// New creates an empty compliance at address owned by owner.
func New(address, owner domain.Address, opts ...Option) (*ModularCompliance, error) {
	mc := &ModularCompliance{saved: make(map[string]savedState)}
	for _, opt := range opts {
		opt(mc)
	}
	accessOpts := append([]access.Option{access.WithLogger(mc.logger), access.WithAuditPublisher(mc.emitter)}, mc.ownable...)
	ownable, err := access.NewOwnable(address, owner, accessOpts...)
	if err != nil {
		return nil, err
	}
	mc.Ownable = ownable
	mc.modules.Store(&chain{})
	return mc, nil
}

func (mc *ModularCompliance) Address() domain.Address {
	return mc.Component()
}

func (mc *ModularCompliance) snapshot() chain {
	return *mc.modules.Load()
}

// BoundToken returns the bound token, or nil.
func (mc *ModularCompliance) BoundToken() Token {
	if t := mc.token.Load(); t != nil {
		return *t
	}
	return nil
}

// IsTokenBound reports whether token is the bound token.
func (mc *ModularCompliance) IsTokenBound(token domain.Address) bool {
	t := mc.BoundToken()
	return t != nil && t.Address() == token
}

// BindToken binds token. The owner may bind; so may the token itself while
// nothing is bound, which is how a token adopts a new compliance.
func (mc *ModularCompliance) BindToken(ctx context.Context, caller domain.Address, token Token) error {
	if token == nil {
		return dErrors.New(dErrors.CodeZeroAddress, "token is required")
	}
	if err := domain.RequireNonZero(token.Address(), "token"); err != nil {
		return err
	}
	if !mc.IsOwner(caller) && caller != token.Address() {
		return dErrors.New(dErrors.CodeNotOwner, "only the owner or the token can bind")
	}

	mc.writeMu.Lock()
	if mc.BoundToken() != nil {
		mc.writeMu.Unlock()
		return dErrors.New(dErrors.CodeAlreadyBound, "a token is already bound")
	}
	if err := mc.restoreHoldings(ctx, token, mc.snapshot()...); err != nil {
		mc.writeMu.Unlock()
		return err
	}
	mc.token.Store(&token)
	mc.writeMu.Unlock()

	mc.logAudit(ctx, audit.Event{Action: string(audit.EventTokenBound), Actor: caller, Counterparty: token.Address()})
	return nil
}

// UnbindToken releases the bound token. Owner or the token itself.
func (mc *ModularCompliance) UnbindToken(ctx context.Context, caller, token domain.Address) error {
	if !mc.IsOwner(caller) && caller != token {
		return dErrors.New(dErrors.CodeNotOwner, "only the owner or the token can unbind")
	}

	mc.writeMu.Lock()
	if !mc.IsTokenBound(token) {
		mc.writeMu.Unlock()
		return dErrors.New(dErrors.CodeInvalidState, "token is not bound")
	}
	mc.token.Store(nil)
	mc.writeMu.Unlock()

	mc.logAudit(ctx, audit.Event{Action: string(audit.EventTokenUnbound), Actor: caller, Counterparty: token})
	return nil
}

// AddModule appends m to the chain and binds it. A saved state under the
// same name and kind replaces the state m was built with. Owner only.
func (mc *ModularCompliance) AddModule(ctx context.Context, caller domain.Address, m Module) error {
	if err := mc.RequireOwner(caller); err != nil {
		return err
	}
	if m == nil || strings.TrimSpace(m.Name()) == "" {
		return dErrors.New(dErrors.CodeInvalidInput, "module name is required")
	}

	mc.writeMu.Lock()
	current := mc.snapshot()
	if slices.ContainsFunc(current, func(x Module) bool { return x.Name() == m.Name() }) {
		mc.writeMu.Unlock()
		return dErrors.Newf(dErrors.CodeDuplicateModule, "module %q already bound", m.Name())
	}
	if len(current) >= MaxModules {
		mc.writeMu.Unlock()
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot add more than %d modules", MaxModules)
	}
	if err := m.BindCompliance(mc.Address()); err != nil {
		mc.writeMu.Unlock()
		return err
	}
	if err := mc.prepare(ctx, m); err != nil {
		if uerr := m.UnbindCompliance(mc.Address()); uerr != nil {
			mc.logError(ctx, "unbind module failed", "module", m.Name(), "error", uerr)
		}
		mc.writeMu.Unlock()
		return err
	}
	next := append(slices.Clone(current), m)
	mc.modules.Store(&next)
	mc.writeMu.Unlock()

	mc.metrics.setModules(len(next))
	mc.logAudit(ctx, audit.Event{Action: string(audit.EventComplianceModuleAdded), Actor: caller, Detail: m.Name()})
	return nil
}

// RemoveModule unbinds the named module and drops it from the chain. Owner
// only.
func (mc *ModularCompliance) RemoveModule(ctx context.Context, caller domain.Address, name string) error {
	if err := mc.RequireOwner(caller); err != nil {
		return err
	}

	mc.writeMu.Lock()
	current := mc.snapshot()
	i := slices.IndexFunc(current, func(x Module) bool { return x.Name() == name })
	if i < 0 {
		mc.writeMu.Unlock()
		return dErrors.Newf(dErrors.CodeModuleNotBound, "module %q is not bound", name)
	}
	if err := mc.forget(ctx, name); err != nil {
		mc.writeMu.Unlock()
		return err
	}
	if err := current[i].UnbindCompliance(mc.Address()); err != nil {
		mc.writeMu.Unlock()
		return err
	}
	next := slices.Delete(slices.Clone(current), i, i+1)
	mc.modules.Store(&next)
	mc.writeMu.Unlock()

	mc.metrics.setModules(len(next))
	mc.logAudit(ctx, audit.Event{Action: string(audit.EventComplianceModuleRemoved), Actor: caller, Detail: name})
	return nil
}

// Modules lists the chain in evaluation order.
func (mc *ModularCompliance) Modules() []ModuleInfo {
	current := mc.snapshot()
	out := make([]ModuleInfo, len(current))
	for i, m := range current {
		out[i] = ModuleInfo{Name: m.Name(), Kind: m.Kind()}
	}
	return out
}

// Module returns the named module.
func (mc *ModularCompliance) Module(name string) (Module, bool) {
	for _, m := range mc.snapshot() {
		if m.Name() == name {
			return m, true
		}
	}
	return nil, false
}

// IsModuleBound reports whether a module with name is in the chain.
func (mc *ModularCompliance) IsModuleBound(name string) bool {
	_, ok := mc.Module(name)
	return ok
}

// CallModule runs fn against the named module while chain mutations are
// held off. Owner only. Used to configure module parameters; a stateful
// module is saved afterwards and rolled back when the save fails.
func (mc *ModularCompliance) CallModule(ctx context.Context, caller domain.Address, name string, fn func(Module) error) error {
	if err := mc.RequireOwner(caller); err != nil {
		return err
	}

	mc.writeMu.Lock()
	m, ok := mc.Module(name)
	if !ok {
		mc.writeMu.Unlock()
		return dErrors.Newf(dErrors.CodeModuleNotBound, "module %q is not bound", name)
	}
	err := mc.interact(ctx, m, fn)
	mc.writeMu.Unlock()
	if err != nil {
		return err
	}

	mc.logAudit(ctx, audit.Event{Action: string(audit.EventModuleInteraction), Actor: caller, Detail: name})
	return nil
}

// CanTransfer reports whether every module admits t.
func (mc *ModularCompliance) CanTransfer(ctx context.Context, t Transfer) bool {
	return mc.evaluate(ctx, mc.snapshot(), t).Allowed
}

// Evaluate checks t and names every module that rejected it.
func (mc *ModularCompliance) Evaluate(ctx context.Context, t Transfer) Evaluation {
	return mc.evaluate(ctx, mc.snapshot(), t)
}

// CheckTransfer resolves both wallets through the bound token, then
// evaluates the transfer.
func (mc *ModularCompliance) CheckTransfer(ctx context.Context, from, to domain.Address, amount uint64, at time.Time) (Evaluation, error) {
	token := mc.BoundToken()
	if token == nil {
		return Evaluation{}, dErrors.New(dErrors.CodeInvalidState, "no token bound")
	}
	sender, err := token.Investor(ctx, from)
	if err != nil {
		return Evaluation{}, err
	}
	recipient, err := token.Investor(ctx, to)
	if err != nil {
		return Evaluation{}, err
	}
	return mc.Evaluate(ctx, Transfer{From: sender, To: recipient, Amount: amount, At: at}), nil
}

// evaluate runs every module; a rejection does not short-circuit the rest.
func (mc *ModularCompliance) evaluate(ctx context.Context, modules chain, t Transfer) Evaluation {
	start := time.Now()
	ev := Evaluation{Allowed: true}
	for _, m := range modules {
		if !m.CanTransfer(ctx, t) {
			ev.Allowed = false
			ev.Rejected = append(ev.Rejected, m.Name())
			mc.metrics.incRejection(m.Kind())
		}
	}
	mc.metrics.observeCheck(ev.Allowed, time.Since(start))
	return ev
}

// Settle admits t against one chain snapshot, runs settle when every module
// agrees, then notifies the same snapshot. Only the bound token may call it.
// Nothing is notified when the chain rejects or settle fails.
func (mc *ModularCompliance) Settle(ctx context.Context, caller domain.Address, t Transfer, settle func() error) error {
	if err := mc.requireToken(caller); err != nil {
		return err
	}
	modules := mc.snapshot()
	ev := mc.evaluate(ctx, modules, t)
	if !ev.Allowed {
		return dErrors.Newf(dErrors.CodeComplianceRejected, "transfer rejected by %s", strings.Join(ev.Rejected, ", "))
	}
	if err := settle(); err != nil {
		return err
	}
	for _, m := range modules {
		m.Transferred(ctx, t)
	}
	mc.persist(ctx, modules)
	return nil
}

// Transferred notifies every module of a settled transfer that skipped the
// admission check. Only the bound token may call it.
func (mc *ModularCompliance) Transferred(ctx context.Context, caller domain.Address, t Transfer) error {
	if err := mc.requireToken(caller); err != nil {
		return err
	}
	modules := mc.snapshot()
	for _, m := range modules {
		m.Transferred(ctx, t)
	}
	mc.persist(ctx, modules)
	return nil
}

// Created notifies every module of a mint.
func (mc *ModularCompliance) Created(ctx context.Context, caller domain.Address, to Party, amount uint64, at time.Time) error {
	if err := mc.requireToken(caller); err != nil {
		return err
	}
	modules := mc.snapshot()
	for _, m := range modules {
		m.Created(ctx, to, amount, at)
	}
	mc.persist(ctx, modules)
	return nil
}

// Destroyed notifies every module of a burn.
func (mc *ModularCompliance) Destroyed(ctx context.Context, caller domain.Address, from Party, amount uint64, at time.Time) error {
	if err := mc.requireToken(caller); err != nil {
		return err
	}
	modules := mc.snapshot()
	for _, m := range modules {
		m.Destroyed(ctx, from, amount, at)
	}
	mc.persist(ctx, modules)
	return nil
}

func (mc *ModularCompliance) requireToken(caller domain.Address) error {
	if !mc.IsTokenBound(caller) {
		return dErrors.New(dErrors.CodeForbidden, "only the bound token can notify the compliance")
	}
	return nil
}

func (mc *ModularCompliance) logAudit(ctx context.Context, event audit.Event) {
	event.Source = mc.Address()
	audit.Log(ctx, mc.logger, mc.emitter, event)
}
