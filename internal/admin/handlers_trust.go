package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetgate/pkg/domain"
	"assetgate/pkg/platform/httputil"
)

func (h *Handler) handleListTopics(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}
	topics := h.topics.ClaimTopics()
	if topics == nil {
		topics = []domain.Topic{}
	}
	httputil.WriteJSON(w, http.StatusOK, TopicsResponse{Topics: topics})
}

func (h *Handler) handleAddTopic(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TopicRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "add claim topic", caller, h.topics.AddClaimTopic(ctx, caller, req.Topic))
}

func (h *Handler) handleRemoveTopic(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	topic, err := domain.ParseTopic(chi.URLParam(r, "topic"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "remove claim topic", caller, h.topics.RemoveClaimTopic(ctx, caller, topic))
}

func (h *Handler) handleListIssuers(w http.ResponseWriter, r *http.Request) {
	_, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	issuers := h.issuers.TrustedIssuers()
	resp := IssuersResponse{Issuers: make([]IssuerResponse, 0, len(issuers))}
	for _, issuer := range issuers {
		topics, err := h.issuers.IssuerClaimTopics(issuer)
		if err != nil {
			h.fail(w, r, "list trusted issuers", caller, err)
			return
		}
		resp.Issuers = append(resp.Issuers, IssuerResponse{Issuer: issuer, Topics: topics})
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleAddIssuer(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[IssuerRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	if err := domain.RequireNonZero(req.issuer, "issuer"); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "add trusted issuer", caller, h.issuers.AddTrustedIssuer(ctx, caller, req.issuer, req.Topics))
}

func (h *Handler) handleUpdateIssuer(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	issuer, err := pathAddress(r, "issuer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[IssuerRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "update issuer claim topics", caller, h.issuers.UpdateIssuerClaimTopics(ctx, caller, issuer, req.Topics))
}

func (h *Handler) handleRemoveIssuer(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	issuer, err := pathAddress(r, "issuer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "remove trusted issuer", caller, h.issuers.RemoveTrustedIssuer(ctx, caller, issuer))
}

func (h *Handler) handleAddIssuerKey(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	issuer, err := pathAddress(r, "issuer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "add issuer key", caller, h.claims.AddKey(ctx, caller, issuer, req.address))
}

func (h *Handler) handleRemoveIssuerKey(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	issuer, err := pathAddress(r, "issuer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	signer, err := pathAddress(r, "signer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "remove issuer key", caller, h.claims.RemoveKey(ctx, caller, issuer, signer))
}

func (h *Handler) handleRevokeClaim(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	issuer, err := pathAddress(r, "issuer")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[RevocationRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "revoke claim", caller, h.claims.RevokeClaim(ctx, caller, issuer, req.signature))
}
