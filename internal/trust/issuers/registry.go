// Package issuers is the trusted issuers registry: which claim issuers are
// trusted, and for which claim topics.
//
// Authorization is read at verification time, so removing an issuer or one
// of its topics immediately stops its claims from counting.
package issuers

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"assetgate/internal/access"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
)

const (
	MaxIssuers         = 50
	MaxTopicsPerIssuer = 15
)

// Registry maps each trusted issuer to the topics it may attest.
type Registry struct {
	*access.Ownable

	mu      sync.RWMutex
	issuers []domain.Address
	topics  map[domain.Address][]domain.Topic
	logger  *slog.Logger
	emitter audit.Emitter
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

// New creates an empty registry at address owned by owner.
func New(address, owner domain.Address, opts ...Option) (*Registry, error) {
	r := &Registry{topics: make(map[domain.Address][]domain.Topic)}
	for _, opt := range opts {
		opt(r)
	}
	ownable, err := access.NewOwnable(address, owner, access.WithLogger(r.logger), access.WithAuditPublisher(r.emitter))
	if err != nil {
		return nil, err
	}
	r.Ownable = ownable
	return r, nil
}

func (r *Registry) Address() domain.Address {
	return r.Component()
}

// AddTrustedIssuer trusts issuer for topics. Owner only.
func (r *Registry) AddTrustedIssuer(ctx context.Context, caller, issuer domain.Address, topics []domain.Topic) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(issuer, "issuer"); err != nil {
		return err
	}
	if err := validateTopics(topics); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.topics[issuer]; ok {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeDuplicateIssuer, "issuer %s is already trusted", issuer.Hex())
	}
	if len(r.issuers) >= MaxIssuers {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot trust more than %d issuers", MaxIssuers)
	}
	r.issuers = append(r.issuers, issuer)
	r.topics[issuer] = slices.Clone(topics)
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventTrustedIssuerAdded, caller, issuer, topics)
	return nil
}

// RemoveTrustedIssuer stops trusting issuer. Owner only.
func (r *Registry) RemoveTrustedIssuer(ctx context.Context, caller, issuer domain.Address) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(issuer, "issuer"); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.topics[issuer]; !ok {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeNotFound, "issuer %s is not trusted", issuer.Hex())
	}
	delete(r.topics, issuer)
	r.issuers = slices.DeleteFunc(r.issuers, func(a domain.Address) bool { return a == issuer })
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventTrustedIssuerRemoved, caller, issuer, nil)
	return nil
}

// UpdateIssuerClaimTopics replaces the topics issuer may attest, in one step.
// Owner only.
func (r *Registry) UpdateIssuerClaimTopics(ctx context.Context, caller, issuer domain.Address, topics []domain.Topic) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}
	if err := domain.RequireNonZero(issuer, "issuer"); err != nil {
		return err
	}
	if err := validateTopics(topics); err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.topics[issuer]; !ok {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeNotFound, "issuer %s is not trusted", issuer.Hex())
	}
	r.topics[issuer] = slices.Clone(topics)
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventClaimTopicsUpdated, caller, issuer, topics)
	return nil
}

// TrustedIssuers returns the trusted issuers in insertion order.
func (r *Registry) TrustedIssuers() []domain.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.issuers)
}

func (r *Registry) IsTrustedIssuer(issuer domain.Address) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.topics[issuer]
	return ok
}

// IssuerClaimTopics returns the topics issuer may attest.
func (r *Registry) IssuerClaimTopics(issuer domain.Address) ([]domain.Topic, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	topics, ok := r.topics[issuer]
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "issuer %s is not trusted", issuer.Hex())
	}
	return slices.Clone(topics), nil
}

// HasClaimTopic reports whether issuer is currently trusted for topic.
func (r *Registry) HasClaimTopic(issuer domain.Address, topic domain.Topic) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.topics[issuer], topic)
}

// TrustedIssuersForClaimTopic returns, in insertion order, the issuers trusted
// for topic.
func (r *Registry) TrustedIssuersForClaimTopic(topic domain.Topic) []domain.Address {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Address
	for _, issuer := range r.issuers {
		if slices.Contains(r.topics[issuer], topic) {
			out = append(out, issuer)
		}
	}
	return out
}

func validateTopics(topics []domain.Topic) error {
	if len(topics) == 0 {
		return dErrors.New(dErrors.CodeInvalidInput, "issuer needs at least one claim topic")
	}
	if len(topics) > MaxTopicsPerIssuer {
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "issuer cannot attest more than %d claim topics", MaxTopicsPerIssuer)
	}
	seen := make(map[domain.Topic]struct{}, len(topics))
	for _, t := range topics {
		if _, ok := seen[t]; ok {
			return dErrors.Newf(dErrors.CodeDuplicateTopic, "claim topic %d listed twice", t)
		}
		seen[t] = struct{}{}
	}
	return nil
}

func (r *Registry) logAudit(ctx context.Context, event audit.AuditEvent, actor, issuer domain.Address, topics []domain.Topic) {
	audit.Log(ctx, r.logger, r.emitter, audit.Event{
		Action:  string(event),
		Source:  r.Address(),
		Actor:   actor,
		Subject: issuer,
		Detail:  formatTopics(topics),
	})
}

func formatTopics(topics []domain.Topic) string {
	if len(topics) == 0 {
		return ""
	}
	out := make([]byte, 0, len(topics)*3)
	for i, t := range topics {
		if i > 0 {
			out = append(out, ',')
		}
		out = append(out, t.String()...)
	}
	return string(out)
}
