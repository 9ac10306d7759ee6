package audit

import (
	"context"
	"log/slog"

	"assetgate/pkg/attrs"
	"assetgate/pkg/requestcontext"
)

// Log is the shared audit helper: it writes the event to the structured
// logger with "event" and "log_type" fields, then emits it. Emission failures
// are logged and never returned; the state change has already happened.
func Log(ctx context.Context, logger *slog.Logger, emitter Emitter, event Event, extra ...any) {
	args := extra
	args = attrs.Address(args, "source", event.Source)
	args = attrs.Address(args, "actor", event.Actor)
	args = attrs.Address(args, "subject", event.Subject)
	args = attrs.Address(args, "counterparty", event.Counterparty)
	args = attrs.Uint(args, "amount", event.Amount)
	args = attrs.Uint(args, "topic", uint64(event.Topic))
	args = attrs.Uint(args, "country", uint64(event.Country))
	args = attrs.String(args, "detail", event.Detail)
	if attrs.ExtractString(args, "request_id") == "" {
		args = attrs.String(args, "request_id", requestcontext.RequestID(ctx))
	}
	args = append(args, "event", event.Action, "log_type", "audit")

	if logger != nil {
		logger.InfoContext(ctx, event.Action, args...)
	}
	if emitter == nil {
		return
	}
	if err := emitter.Emit(ctx, event); err != nil && logger != nil {
		logger.WarnContext(ctx, "failed to emit audit event", "event", event.Action, "error", err)
	}
}
