// Package publisher is the single ordered sink every component emits to.
//
// Emit assigns the next sequence number, appends the event to the store and
// then notifies subscribers in registration order, all under one lock, so the
// event log is append-only and ordered by completion.
package publisher

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/requestcontext"
)

// Subscriber observes published events. It runs under the publisher lock and
// must not emit.
type Subscriber func(ctx context.Context, event audit.Event)

// Publisher emits audit events with synchronous persistence.
type Publisher struct {
	mu          sync.Mutex
	seq         uint64
	store       audit.Store
	subscribers []Subscriber
	logger      *slog.Logger
	metrics     *Metrics
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) {
		p.logger = logger
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) {
		p.metrics = m
	}
}

// WithSubscriber registers a subscriber at construction time.
func WithSubscriber(sub Subscriber) Option {
	return func(p *Publisher) {
		p.subscribers = append(p.subscribers, sub)
	}
}

// NewPublisher creates a publisher that continues the sequence already held
// by store.
func NewPublisher(ctx context.Context, store audit.Store, opts ...Option) (*Publisher, error) {
	if store == nil {
		return nil, fmt.Errorf("audit store is required")
	}
	last, err := store.LastSequence(ctx)
	if err != nil {
		return nil, fmt.Errorf("load last audit sequence: %w", err)
	}
	p := &Publisher{store: store, seq: last}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Subscribe registers a subscriber. Subscribers are notified in the order
// they were added.
func (p *Publisher) Subscribe(sub Subscriber) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.subscribers = append(p.subscribers, sub)
}

// Emit assigns the next sequence number and persists the event. The category
// is always derived from the action.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.Action == "" {
		return fmt.Errorf("audit event requires Action")
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	event.Category = audit.AuditEvent(event.Action).Category()

	p.mu.Lock()
	defer p.mu.Unlock()

	event.Sequence = p.seq + 1
	start := time.Now()
	if err := p.store.Append(ctx, event); err != nil {
		if p.metrics != nil {
			p.metrics.IncPersistFailures()
		}
		if p.logger != nil {
			p.logger.ErrorContext(ctx, "audit persistence failed",
				"action", event.Action,
				"sequence", event.Sequence,
				"error", err,
			)
		}
		return fmt.Errorf("audit persistence failed: %w", err)
	}
	p.seq = event.Sequence

	if p.metrics != nil {
		p.metrics.ObservePersistDuration(time.Since(start).Seconds())
		p.metrics.IncEmitted(string(event.Category))
	}
	for _, sub := range p.subscribers {
		sub(ctx, event)
	}
	return nil
}

// List returns up to limit events with a sequence greater than after.
func (p *Publisher) List(ctx context.Context, after uint64, limit int) ([]audit.Event, error) {
	return p.store.ListSince(ctx, after, limit)
}

// LastSequence returns the sequence of the most recently published event.
func (p *Publisher) LastSequence() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.seq
}
