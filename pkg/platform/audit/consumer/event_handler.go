package consumer

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"assetgate/internal/platform/kafka/consumer"
	audit "assetgate/pkg/platform/audit"
)

// EventHandler decodes relayed audit events and passes them on in offset
// order. Redelivered events (sequence not above the last one seen) are
// skipped, since the relay is at-least-once.
type EventHandler struct {
	deliver func(ctx context.Context, event audit.Event) error
	last    uint64
	logger  *slog.Logger
}

func NewEventHandler(deliver func(ctx context.Context, event audit.Event) error, logger *slog.Logger) *EventHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &EventHandler{deliver: deliver, logger: logger}
}

func (h *EventHandler) Handle(ctx context.Context, msg *consumer.Message) error {
	var event audit.Event
	if err := json.Unmarshal(msg.Value, &event); err != nil {
		return fmt.Errorf("decode audit event at offset %d: %w", msg.Offset, err)
	}
	if event.Sequence <= h.last {
		h.logger.DebugContext(ctx, "skipping redelivered audit event",
			"sequence", event.Sequence,
			"last", h.last,
		)
		return nil
	}
	if err := h.deliver(ctx, event); err != nil {
		return err
	}
	h.last = event.Sequence
	return nil
}

// Last returns the highest sequence delivered.
func (h *EventHandler) Last() uint64 {
	return h.last
}
