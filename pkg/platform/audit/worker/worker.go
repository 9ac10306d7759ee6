package worker

import (
	"context"
	"log/slog"
	"time"

	audit "assetgate/pkg/platform/audit"
)

// Sink receives outbox events in sequence order.
type Sink interface {
	Publish(ctx context.Context, events []audit.Event) error
}

// Worker relays unpublished outbox events to a sink. A batch is marked
// published only after the sink accepted all of it, so delivery is
// at-least-once and in order.
type Worker struct {
	outbox   audit.Outbox
	sink     Sink
	interval time.Duration
	batch    int
	logger   *slog.Logger
}

func NewWorker(outbox audit.Outbox, sink Sink, interval time.Duration, batch int, logger *slog.Logger) *Worker {
	if batch <= 0 {
		batch = 100
	}
	if interval <= 0 {
		interval = time.Second
	}
	return &Worker{outbox: outbox, sink: sink, interval: interval, batch: batch, logger: logger}
}

// Run flushes on every tick until ctx is cancelled. Sink failures are logged
// and retried on the next tick.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if _, err := w.Flush(ctx); err != nil && w.logger != nil {
				w.logger.WarnContext(ctx, "audit relay flush failed", "error", err)
			}
		}
	}
}

// Flush forwards everything currently unpublished and returns how many events
// were relayed.
func (w *Worker) Flush(ctx context.Context) (int, error) {
	total := 0
	for {
		events, err := w.outbox.ListUnpublished(ctx, w.batch)
		if err != nil {
			return total, err
		}
		if len(events) == 0 {
			return total, nil
		}
		if err := w.sink.Publish(ctx, events); err != nil {
			return total, err
		}
		if err := w.outbox.MarkPublished(ctx, events[len(events)-1].Sequence); err != nil {
			return total, err
		}
		total += len(events)
		if len(events) < w.batch {
			return total, nil
		}
	}
}
