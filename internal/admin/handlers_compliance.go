package admin

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetgate/internal/compliance"
	"assetgate/internal/compliance/modules"
	"assetgate/pkg/platform/httputil"
	"assetgate/pkg/requestcontext"
)

func (h *Handler) handleListModules(w http.ResponseWriter, r *http.Request) {
	if _, _, ok := h.authenticate(w, r); !ok {
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ModulesResponse{Modules: h.compliance.Modules()})
}

func (h *Handler) handleAddModule(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ModuleRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	m, err := modules.Build(req.Config)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	h.done(w, r, "add module", caller, h.compliance.AddModule(ctx, caller, m))
}

func (h *Handler) handleRemoveModule(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	h.done(w, r, "remove module", caller, h.compliance.RemoveModule(ctx, caller, chi.URLParam(r, "name")))
}

func (h *Handler) handleCallModule(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[ModuleCallRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	err := h.compliance.CallModule(ctx, caller, chi.URLParam(r, "name"), func(m compliance.Module) error {
		return modules.Apply(m, req.Interaction)
	})
	h.done(w, r, "call module", caller, err)
}

func (h *Handler) handleCanTransfer(w http.ResponseWriter, r *http.Request) {
	ctx, caller, ok := h.authenticate(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CanTransferRequest](w, r, h.logger, ctx, requestID(ctx))
	if !ok {
		return
	}
	eval, err := h.compliance.CheckTransfer(ctx, req.from, req.to, req.Amount, requestcontext.Now(ctx))
	if err != nil {
		h.fail(w, r, "can transfer", caller, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, CanTransferResponse{
		Allowed:  eval.Allowed,
		Rejected: eval.Rejected,
	})
}
