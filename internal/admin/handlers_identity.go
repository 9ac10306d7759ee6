package admin

import (
	"net/http"

	"assetgate/internal/identity/claims"
	"assetgate/pkg/platform/httputil"
)

func (h *Handler) handleRegisterIdentity(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RegisterIdentityRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	var err error
	if len(req.regs) == 1 && len(req.Batch) == 0 {
		reg := req.regs[0]
		err = h.identities.RegisterIdentity(ctx, caller, reg.Holder, reg.Identity, reg.Country)
	} else {
		err = h.identities.BatchRegisterIdentity(ctx, caller, req.regs)
	}
	if err != nil {
		h.fail(w, r, "register identity", caller, err)
		return
	}
	h.logger.InfoContext(ctx, "register identity succeeded",
		"request_id", requestID(ctx),
		"caller", caller.Hex(),
		"count", len(req.regs),
	)
	w.WriteHeader(http.StatusCreated)
}

func (h *Handler) handleGetIdentity(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	holder, err := pathAddress(r, "holder")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	identity, err := h.identities.Identity(ctx, holder)
	if err != nil {
		h.fail(w, r, "get identity", caller, err)
		return
	}
	country, err := h.identities.InvestorCountry(ctx, holder)
	if err != nil {
		h.fail(w, r, "get identity", caller, err)
		return
	}
	verified, err := h.identities.IsVerified(ctx, holder)
	if err != nil {
		h.fail(w, r, "get identity", caller, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, IdentityResponse{
		Holder:   holder,
		Identity: identity,
		Country:  country,
		Verified: verified,
	})
}

func (h *Handler) handleUpdateCountry(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	holder, err := pathAddress(r, "holder")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[CountryRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "update country", caller, h.identities.UpdateCountry(ctx, caller, holder, req.country))
}

func (h *Handler) handleUpdateIdentity(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	holder, err := pathAddress(r, "holder")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "update identity", caller, h.identities.UpdateIdentity(ctx, caller, holder, req.address))
}

func (h *Handler) handleDeleteIdentity(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	holder, err := pathAddress(r, "holder")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "delete identity", caller, h.identities.DeleteIdentity(ctx, caller, holder))
}

// handleAddRegistryAgent appoints an agent of the identity registry. Registry
// agents are separate from token agents.
func (h *Handler) handleAddRegistryAgent(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "add registry agent", caller, h.identities.AddAgent(ctx, caller, req.address))
}

func (h *Handler) handleRemoveRegistryAgent(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	agent, err := pathAddress(r, "agent")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "remove registry agent", caller, h.identities.RemoveAgent(ctx, caller, agent))
}

// handleAddClaim stores a claim on an identity. Anyone may submit one; only
// claims signed by a registered key of a trusted issuer ever verify.
func (h *Handler) handleAddClaim(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	identity, err := pathAddress(r, "identity")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ClaimRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	id, err := h.claims.AddClaim(ctx, identity, claims.Claim{
		Topic:     req.Topic,
		Issuer:    req.issuer,
		Signature: req.signature,
		Data:      req.data,
		URI:       req.URI,
	})
	if err != nil {
		h.fail(w, r, "add claim", caller, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ClaimResponse{ClaimID: id.Hex()})
}
