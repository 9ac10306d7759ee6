// Package topics is the claim topics registry: the set of claim topics every
// holder must be attested for.
package topics

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

// MaxTopics bounds the registry so verification cost stays bounded.
const MaxTopics = 15

// Registry holds the required topics in insertion order.
type Registry struct {
	*access.Ownable

	mu      sync.RWMutex
	topics  []domain.Topic
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
	r := &Registry{}
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

// Address is the registry's component address.
func (r *Registry) Address() domain.Address {
	return r.Component()
}

// AddClaimTopic appends topic. Owner only.
func (r *Registry) AddClaimTopic(ctx context.Context, caller domain.Address, topic domain.Topic) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}

	r.mu.Lock()
	if slices.Contains(r.topics, topic) {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeDuplicateTopic, "claim topic %d already exists", topic)
	}
	if len(r.topics) >= MaxTopics {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeCapacityExceeded, "cannot require more than %d claim topics", MaxTopics)
	}
	r.topics = append(r.topics, topic)
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventClaimTopicAdded, caller, topic)
	return nil
}

// RemoveClaimTopic removes topic. Owner only.
func (r *Registry) RemoveClaimTopic(ctx context.Context, caller domain.Address, topic domain.Topic) error {
	if err := r.RequireOwner(caller); err != nil {
		return err
	}

	r.mu.Lock()
	i := slices.Index(r.topics, topic)
	if i < 0 {
		r.mu.Unlock()
		return dErrors.Newf(dErrors.CodeNotFound, "claim topic %d not found", topic)
	}
	r.topics = slices.Delete(r.topics, i, i+1)
	r.mu.Unlock()

	r.logAudit(ctx, audit.EventClaimTopicRemoved, caller, topic)
	return nil
}

// ClaimTopics returns a copy of the required topics.
func (r *Registry) ClaimTopics() []domain.Topic {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]domain.Topic{}, r.topics...)
}

// HasClaimTopic reports whether topic is required.
func (r *Registry) HasClaimTopic(topic domain.Topic) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Contains(r.topics, topic)
}

func (r *Registry) logAudit(ctx context.Context, event audit.AuditEvent, actor domain.Address, topic domain.Topic) {
	audit.Log(ctx, r.logger, r.emitter, audit.Event{
		Action: string(event),
		Source: r.Address(),
		Actor:  actor,
		Topic:  topic,
	})
}
