package testutil

import (
	"context"
	"net/http"
	"sync"

	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/requestcontext"
)

// WithCaller adds the authenticated caller to the request context.
// This simulates what the auth middleware would do for authenticated requests.
func WithCaller(req *http.Request, caller domain.Address) *http.Request {
	return req.WithContext(requestcontext.WithCaller(req.Context(), caller))
}

// WithContextValue adds an arbitrary key-value pair to the request context.
func WithContextValue(req *http.Request, key, value any) *http.Request {
	ctx := context.WithValue(req.Context(), key, value)
	return req.WithContext(ctx)
}

// RecordingEmitter is an audit.Emitter that keeps every event in memory.
type RecordingEmitter struct {
	mu     sync.Mutex
	events []audit.Event
}

func (r *RecordingEmitter) Emit(_ context.Context, event audit.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	event.Sequence = uint64(len(r.events) + 1)
	r.events = append(r.events, event)
	return nil
}

// Events returns a copy of everything emitted so far.
func (r *RecordingEmitter) Events() []audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]audit.Event{}, r.events...)
}

// Actions returns the action names in emission order.
func (r *RecordingEmitter) Actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.Action
	}
	return out
}

// Last returns the most recent event, or the zero Event when none was emitted.
func (r *RecordingEmitter) Last() audit.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.events) == 0 {
		return audit.Event{}
	}
	return r.events[len(r.events)-1]
}

// Reset forgets recorded events.
func (r *RecordingEmitter) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
}
