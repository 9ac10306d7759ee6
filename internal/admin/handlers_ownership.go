package admin

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"assetgate/internal/factory"
	dErrors "assetgate/pkg/domain-errors"
	"assetgate/pkg/platform/httputil"
)

// Event page bounds.
const (
	defaultEventLimit = 100
	maxEventLimit     = 1000
)

func (h *Handler) component(w http.ResponseWriter, r *http.Request) (string, factory.Ownable, bool) {
	name := chi.URLParam(r, "component")
	c, ok := h.ownership.Component(name)
	if !ok {
		httputil.WriteError(w, dErrors.Newf(dErrors.CodeNotFound, "unknown component %q", name))
		return name, nil, false
	}
	return name, c, true
}

func (h *Handler) handleGetOwnership(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}
	name, c, ok := h.component(w, r)
	if !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, OwnershipResponse{
		Component:    name,
		Owner:        c.Owner(),
		PendingOwner: c.PendingOwner(),
	})
}

func (h *Handler) handleTransferOwnership(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	name, c, ok := h.component(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "transfer ownership of "+name, caller, c.TransferOwnership(ctx, caller, req.address))
}

func (h *Handler) handleAcceptOwnership(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	name, c, ok := h.component(w, r)
	if !ok {
		return
	}
	h.done(w, r, "accept ownership of "+name, caller, c.AcceptOwnership(ctx, caller))
}

func (h *Handler) handleCancelOwnership(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	name, c, ok := h.component(w, r)
	if !ok {
		return
	}
	h.done(w, r, "cancel ownership transfer of "+name, caller, c.CancelOwnershipTransfer(ctx, caller))
}

func (h *Handler) handleListEvents(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	since, err := queryUint(r, "since", 0)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := queryUint(r, "limit", defaultEventLimit)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit = min(max(limit, 1), maxEventLimit)

	events, err := h.events.ListSince(ctx, since, int(limit))
	if err != nil {
		h.fail(w, r, "list events", caller, err)
		return
	}
	next := since
	if n := len(events); n > 0 {
		next = events[n-1].Sequence
	}
	httputil.WriteJSON(w, http.StatusOK, EventsResponse{Events: events, Next: next})
}

func queryUint(r *http.Request, key string, fallback uint64) (uint64, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "%s must be a non-negative integer", key)
	}
	return v, nil
}
