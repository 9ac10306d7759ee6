package admin

import (
	"net/http"

	"assetgate/internal/token"
	"assetgate/pkg/platform/httputil"
)

func (h *Handler) handleGetToken(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	supply, err := h.token.TotalSupply(ctx)
	if err != nil {
		h.fail(w, r, "get token", caller, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, TokenResponse{
		Address:     h.token.Address(),
		Info:        h.token.Info(),
		Version:     token.Version,
		Paused:      h.token.Paused(),
		TotalSupply: supply,
	})
}

func (h *Handler) handleGetHolder(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	holder, err := pathAddress(r, "holder")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	view, err := h.token.Holder(ctx, holder)
	if err != nil {
		h.fail(w, r, "get holder", caller, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, view)
}

func (h *Handler) handleTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "transfer", caller, h.token.Transfer(ctx, caller, req.to, req.Amount))
}

func (h *Handler) handleTransferFrom(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	if err := req.requireFrom(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "transfer from", caller, h.token.TransferFrom(ctx, caller, req.from, req.to, req.Amount))
}

func (h *Handler) handleForcedTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TransferRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	if err := req.requireFrom(); err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "forced transfer", caller, h.token.ForcedTransfer(ctx, caller, req.from, req.to, req.Amount))
}

func (h *Handler) handleApprove(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[HolderAmountRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "approve", caller, h.token.Approve(ctx, caller, req.holder, req.Amount))
}

func (h *Handler) handleMint(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[HolderAmountRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "mint", caller, h.token.Mint(ctx, caller, req.holder, req.Amount))
}

func (h *Handler) handleBurn(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[HolderAmountRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "burn", caller, h.token.Burn(ctx, caller, req.holder, req.Amount))
}

func (h *Handler) handleFreeze(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[FreezeRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "set address frozen", caller, h.token.SetAddressFrozen(ctx, caller, req.holder, req.Freeze))
}

func (h *Handler) handleFreezePartial(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[HolderAmountRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "freeze partial tokens", caller, h.token.FreezePartialTokens(ctx, caller, req.holder, req.Amount))
}

func (h *Handler) handleUnfreezePartial(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[HolderAmountRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "unfreeze partial tokens", caller, h.token.UnfreezePartialTokens(ctx, caller, req.holder, req.Amount))
}

func (h *Handler) handlePause(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	h.done(w, r, "pause", caller, h.token.Pause(ctx, caller))
}

func (h *Handler) handleUnpause(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	h.done(w, r, "unpause", caller, h.token.Unpause(ctx, caller))
}

func (h *Handler) handleRecover(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[RecoveryRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "recovery", caller, h.token.RecoveryAddress(ctx, caller, req.lost, req.replacement, req.identity))
}

func (h *Handler) handleAddAgent(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[AddressRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	h.done(w, r, "add agent", caller, h.token.AddAgent(ctx, caller, req.address))
}

func (h *Handler) handleRemoveAgent(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	agent, err := pathAddress(r, "agent")
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "remove agent", caller, h.token.RemoveAgent(ctx, caller, agent))
}
