package consumer

import (
	"context"
	"log/slog"

	"assetgate/internal/platform/kafka"
	"assetgate/internal/platform/kafka/consumer"
	audit "assetgate/pkg/platform/audit"
)

// CategoryHandler handles relayed events of one audit category.
type CategoryHandler interface {
	Handle(ctx context.Context, msg *consumer.Message) error
}

// Router dispatches relayed records by their category header, so a reader
// can follow only compliance events, or treat security events differently.
type Router struct {
	handlers map[audit.EventCategory]CategoryHandler
	fallback CategoryHandler
	logger   *slog.Logger
}

// NewRouter creates a category router. Records whose category has no handler
// go to fallback; with a nil fallback they are skipped.
func NewRouter(logger *slog.Logger, fallback CategoryHandler) *Router {
	if logger == nil {
		logger = slog.Default()
	}
	return &Router{
		handlers: make(map[audit.EventCategory]CategoryHandler),
		fallback: fallback,
		logger:   logger,
	}
}

// Register routes one category to handler.
func (r *Router) Register(category audit.EventCategory, handler CategoryHandler) {
	r.handlers[category] = handler
}

// RegisterAll routes every known category to handler.
func (r *Router) RegisterAll(handler CategoryHandler) {
	for _, c := range []audit.EventCategory{audit.CategoryCompliance, audit.CategorySecurity, audit.CategoryOperations} {
		r.handlers[c] = handler
	}
}

func (r *Router) Handle(ctx context.Context, msg *consumer.Message) error {
	category := audit.EventCategory(msg.Headers[kafka.HeaderCategory])
	if handler, ok := r.handlers[category]; ok {
		return handler.Handle(ctx, msg)
	}
	if r.fallback != nil {
		return r.fallback.Handle(ctx, msg)
	}
	r.logger.DebugContext(ctx, "skipping audit record",
		"category", category,
		"action", msg.Headers[kafka.HeaderAction],
		"offset", msg.Offset,
	)
	return nil
}
