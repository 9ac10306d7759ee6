// Package registry is the identity registry: it links holder wallets to
// identities through a shared storage and decides whether a holder is
// eligible to hold the asset.
//
// Eligibility is recomputed on every call from the current claim topics,
// the current trusted issuers and the claim verifier. Nothing is cached, so
// removing an issuer or one of its topics takes effect on the next check.
package registry

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"assetgate/internal/access"
	"assetgate/internal/identity/storage"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

const (
	resultVerified     = "verified"
	resultUnregistered = "unregistered"
	resultMissingClaim = "missing_claim"
	resultError        = "error"
)

// Registration is one entry of a batch registration.
type Registration struct {
	Holder   domain.Address
	Identity domain.Address
	Country  domain.Country
}

// Registry is agent-managed; the owner re-points its collaborators.
type Registry struct {
	*access.AgentRole

	mu       sync.RWMutex
	storage  RecordStorage
	topics   TopicsSource
	issuers  IssuersSource
	verifier ClaimVerifier

	logger  *slog.Logger
	emitter audit.Emitter
	metrics *Metrics
	tracer  trace.Tracer
}

// Option configures the Registry.
type Option func(*Registry)

func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logger
	}
}

func WithAuditPublisher(emitter audit.Emitter) Option {
	return func(r *Registry) {
		r.emitter = emitter
	}
}

func WithMetrics(m *Metrics) Option {
	return func(r *Registry) {
		r.metrics = m
	}
}

// New creates a registry wired to its storage, topics, issuers and verifier.
func New(
	address, owner domain.Address,
	store RecordStorage,
	topics TopicsSource,
	issuers IssuersSource,
	verifier ClaimVerifier,
	opts ...Option,
) (*Registry, error) {
	if store == nil || topics == nil || issuers == nil || verifier == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "identity registry requires storage, topics, issuers and verifier")
	}
	r := &Registry{
		storage:  store,
		topics:   topics,
		issuers:  issuers,
		verifier: verifier,
		tracer:   otel.Tracer("assetgate/identity/registry"),
	}
	for _, opt := range opts {
		opt(r)
	}
	role, err := access.NewAgentRole(address, owner, access.WithLogger(r.logger), access.WithAuditPublisher(r.emitter))
	if err != nil {
		return nil, err
	}
	r.AgentRole = role
	return r, nil
}

func (r *Registry) Address() domain.Address {
	return r.Component()
}

func (r *Registry) snapshot() (RecordStorage, TopicsSource, IssuersSource) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.storage, r.topics, r.issuers
}

// Storage returns the storage the registry currently writes to.
func (r *Registry) Storage() RecordStorage {
	s, _, _ := r.snapshot()
	return s
}

// TopicsRegistry returns the current claim topics source.
func (r *Registry) TopicsRegistry() TopicsSource {
	_, t, _ := r.snapshot()
	return t
}

// IssuersRegistry returns the current trusted issuers source.
func (r *Registry) IssuersRegistry() IssuersSource {
	_, _, i := r.snapshot()
	return i
}

// RegisterIdentity links holder to identity. Agent only.
func (r *Registry) RegisterIdentity(ctx context.Context, caller, holder, identity domain.Address, country domain.Country) error {
	if err := r.RequireAgent(caller); err != nil {
		return err
	}
	if err := r.Storage().AddIdentityToStorage(ctx, r.Address(), storage.Record{Holder: holder, Identity: identity, Country: country}); err != nil {
		return err
	}
	r.logAudit(ctx, audit.Event{
		Action:       string(audit.EventIdentityRegistered),
		Actor:        caller,
		Subject:      holder,
		Counterparty: identity,
		Country:      country,
	})
	return nil
}

// BatchRegisterIdentity registers every entry or none. Agent only.
func (r *Registry) BatchRegisterIdentity(ctx context.Context, caller domain.Address, regs []Registration) error {
	if err := r.RequireAgent(caller); err != nil {
		return err
	}
	if len(regs) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "batch is empty")
	}
	recs := make([]storage.Record, len(regs))
	for i, reg := range regs {
		recs[i] = storage.Record{Holder: reg.Holder, Identity: reg.Identity, Country: reg.Country}
	}
	if err := r.Storage().AddIdentitiesToStorage(ctx, r.Address(), recs); err != nil {
		return err
	}
	for _, reg := range regs {
		r.logAudit(ctx, audit.Event{
			Action:       string(audit.EventIdentityRegistered),
			Actor:        caller,
			Subject:      reg.Holder,
			Counterparty: reg.Identity,
			Country:      reg.Country,
		})
	}
	return nil
}

// UpdateCountry changes holder's country. Agent only.
func (r *Registry) UpdateCountry(ctx context.Context, caller, holder domain.Address, country domain.Country) error {
	if err := r.RequireAgent(caller); err != nil {
		return err
	}
	if err := r.Storage().ModifyStoredInvestorCountry(ctx, r.Address(), holder, country); err != nil {
		return err
	}
	r.logAudit(ctx, audit.Event{
		Action:  string(audit.EventCountryUpdated),
		Actor:   caller,
		Subject: holder,
		Country: country,
	})
	return nil
}

// UpdateIdentity relinks holder to a new identity. Agent only.
func (r *Registry) UpdateIdentity(ctx context.Context, caller, holder, identity domain.Address) error {
	if err := r.RequireAgent(caller); err != nil {
		return err
	}
	st := r.Storage()
	old, err := st.StoredRecord(ctx, holder)
	if err != nil {
		return err
	}
	if err := st.ModifyStoredIdentity(ctx, r.Address(), holder, identity); err != nil {
		return err
	}
	r.logAudit(ctx, audit.Event{
		Action:       string(audit.EventIdentityUpdated),
		Actor:        caller,
		Subject:      old.Identity,
		Counterparty: identity,
	})
	return nil
}

// DeleteIdentity unlinks holder. Agent only.
func (r *Registry) DeleteIdentity(ctx context.Context, caller, holder domain.Address) error {
	if err := r.RequireAgent(caller); err != nil {
		return err
	}
	st := r.Storage()
	rec, err := st.StoredRecord(ctx, holder)
	if err != nil {
		return err
	}
	if err := st.RemoveIdentityFromStorage(ctx, r.Address(), holder); err != nil {
		return err
	}
	r.logAudit(ctx, audit.Event{
		Action:       string(audit.EventIdentityRemoved),
		Actor:        caller,
		Subject:      holder,
		Counterparty: rec.Identity,
	})
	return nil
}

// IsVerified reports whether holder is registered and, for every current
// claim topic, its identity holds a valid claim from an issuer currently
// trusted for that topic. An unregistered holder is not verified; only
// storage failures are returned as errors.
func (r *Registry) IsVerified(ctx context.Context, holder domain.Address) (bool, error) {
	ctx, span := r.tracer.Start(ctx, "identity.IsVerified",
		trace.WithAttributes(attribute.String("holder", holder.Hex())))
	defer span.End()

	start := time.Now()
	result, missing, err := r.verify(ctx, holder)
	r.metrics.observe(result, time.Since(start))
	span.SetAttributes(attribute.String("result", result))

	if err != nil {
		span.RecordError(err)
		if r.logger != nil {
			r.logger.ErrorContext(ctx, "eligibility check failed", "holder", holder.Hex(), "error", err)
		}
		return false, err
	}
	if result == resultMissingClaim && r.logger != nil {
		r.logger.DebugContext(ctx, "holder not verified", "holder", holder.Hex(), "topic", uint64(missing))
	}
	return result == resultVerified, nil
}

func (r *Registry) verify(ctx context.Context, holder domain.Address) (string, domain.Topic, error) {
	st, topics, issuers := r.snapshot()
	rec, err := st.StoredRecord(ctx, holder)
	if dErrors.HasCode(err, dErrors.CodeNotRegistered) {
		return resultUnregistered, 0, nil
	}
	if err != nil {
		return resultError, 0, err
	}

	for _, topic := range topics.ClaimTopics() {
		if !r.hasValidClaim(rec.Identity, topic, issuers) {
			return resultMissingClaim, topic, nil
		}
	}
	return resultVerified, 0, nil
}

func (r *Registry) hasValidClaim(identity domain.Address, topic domain.Topic, issuers IssuersSource) bool {
	for _, issuer := range issuers.TrustedIssuersForClaimTopic(topic) {
		if r.verifier.VerifyClaim(identity, topic, issuer) {
			return true
		}
	}
	return false
}

// Contains reports whether holder has a stored record.
func (r *Registry) Contains(ctx context.Context, holder domain.Address) (bool, error) {
	_, err := r.Storage().StoredRecord(ctx, holder)
	if dErrors.HasCode(err, dErrors.CodeNotRegistered) {
		return false, nil
	}
	return err == nil, err
}

// Identity returns the identity linked to holder.
func (r *Registry) Identity(ctx context.Context, holder domain.Address) (domain.Address, error) {
	rec, err := r.Storage().StoredRecord(ctx, holder)
	return rec.Identity, err
}

// InvestorCountry returns holder's country.
func (r *Registry) InvestorCountry(ctx context.Context, holder domain.Address) (domain.Country, error) {
	rec, err := r.Storage().StoredRecord(ctx, holder)
	return rec.Country, err
}

// SetIdentityRegistryStorage re-points the registry. Owner only. The new
// storage must bind this registry before writes succeed.
func (r *Registry) SetIdentityRegistryStorage(ctx context.Context, caller domain.Address, store RecordStorage) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if store == nil {
		return dErrors.New(dErrors.CodeZeroAddress, "identity storage is required")
	}
	r.mu.Lock()
	r.storage = store
	r.mu.Unlock()
	r.logAudit(ctx, audit.Event{Action: string(audit.EventIdentityStorageSet), Actor: caller, Counterparty: store.Address()})
	return nil
}

// SetClaimTopicsRegistry re-points the topics source. Owner only.
func (r *Registry) SetClaimTopicsRegistry(ctx context.Context, caller domain.Address, topics TopicsSource) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if topics == nil {
		return dErrors.New(dErrors.CodeZeroAddress, "claim topics registry is required")
	}
	r.mu.Lock()
	r.topics = topics
	r.mu.Unlock()
	r.logAudit(ctx, audit.Event{Action: string(audit.EventClaimTopicsRegistrySet), Actor: caller, Counterparty: topics.Address()})
	return nil
}

// SetTrustedIssuersRegistry re-points the issuers source. Owner only.
func (r *Registry) SetTrustedIssuersRegistry(ctx context.Context, caller domain.Address, issuers IssuersSource) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if issuers == nil {
		return dErrors.New(dErrors.CodeZeroAddress, "trusted issuers registry is required")
	}
	r.mu.Lock()
	r.issuers = issuers
	r.mu.Unlock()
	r.logAudit(ctx, audit.Event{Action: string(audit.EventTrustedIssuersRegistrySet), Actor: caller, Counterparty: issuers.Address()})
	return nil
}

func (r *Registry) logAudit(ctx context.Context, event audit.Event) {
	event.Source = r.Address()
	audit.Log(ctx, r.logger, r.emitter, event)
}
