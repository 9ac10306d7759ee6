// Package admin is the authenticated HTTP surface over a deployed suite. Every
// operation maps 1:1 to a component method; the caller is the address the
// bearer token was issued to.
package admin

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	"assetgate/pkg/platform/httputil"
	"assetgate/pkg/requestcontext"
)

// Services are the components the handler drives.
type Services struct {
	Token      TokenService
	Identities IdentityService
	Compliance ComplianceService
	Topics     TopicsService
	Issuers    IssuersService
	Claims     ClaimService
	Ownership  OwnershipService
	Events     EventSource
}

// Handler wires admin endpoints to the suite.
type Handler struct {
	token      TokenService
	identities IdentityService
	compliance ComplianceService
	topics     TopicsService
	issuers    IssuersService
	claims     ClaimService
	ownership  OwnershipService
	events     EventSource
	logger     *slog.Logger
}

// New constructs the handler. Every service is required.
func New(svc Services, logger *slog.Logger) (*Handler, error) {
	if svc.Token == nil || svc.Identities == nil || svc.Compliance == nil || svc.Topics == nil ||
		svc.Issuers == nil || svc.Claims == nil || svc.Ownership == nil || svc.Events == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "admin handler requires every suite service")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		token:      svc.Token,
		identities: svc.Identities,
		compliance: svc.Compliance,
		topics:     svc.Topics,
		issuers:    svc.Issuers,
		claims:     svc.Claims,
		ownership:  svc.Ownership,
		events:     svc.Events,
		logger:     logger,
	}, nil
}

// Register mounts the admin endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Route("/token", func(r chi.Router) {
		r.Get("/", h.handleGetToken)
		r.Get("/balances/{holder}", h.handleGetHolder)
		r.Post("/transfer", h.handleTransfer)
		r.Post("/transfer-from", h.handleTransferFrom)
		r.Post("/approve", h.handleApprove)
		r.Post("/forced-transfer", h.handleForcedTransfer)
		r.Post("/mint", h.handleMint)
		r.Post("/burn", h.handleBurn)
		r.Post("/freeze", h.handleFreeze)
		r.Post("/freeze-partial", h.handleFreezePartial)
		r.Post("/unfreeze-partial", h.handleUnfreezePartial)
		r.Post("/pause", h.handlePause)
		r.Post("/unpause", h.handleUnpause)
		r.Post("/recover", h.handleRecover)
		r.Post("/agents", h.handleAddAgent)
		r.Delete("/agents/{agent}", h.handleRemoveAgent)
	})

	r.Route("/identities", func(r chi.Router) {
		r.Post("/", h.handleRegisterIdentity)
		r.Get("/{holder}", h.handleGetIdentity)
		r.Put("/{holder}/country", h.handleUpdateCountry)
		r.Put("/{holder}/identity", h.handleUpdateIdentity)
		r.Delete("/{holder}", h.handleDeleteIdentity)
		r.Post("/agents", h.handleAddRegistryAgent)
		r.Delete("/agents/{agent}", h.handleRemoveRegistryAgent)
	})
	r.Post("/claims/{identity}", h.handleAddClaim)

	r.Route("/compliance", func(r chi.Router) {
		r.Get("/modules", h.handleListModules)
		r.Post("/modules", h.handleAddModule)
		r.Delete("/modules/{name}", h.handleRemoveModule)
		r.Post("/modules/{name}/call", h.handleCallModule)
		r.Post("/can-transfer", h.handleCanTransfer)
	})

	r.Route("/claim-topics", func(r chi.Router) {
		r.Get("/", h.handleListTopics)
		r.Post("/", h.handleAddTopic)
		r.Delete("/{topic}", h.handleRemoveTopic)
	})

	r.Route("/trusted-issuers", func(r chi.Router) {
		r.Get("/", h.handleListIssuers)
		r.Post("/", h.handleAddIssuer)
		r.Put("/{issuer}", h.handleUpdateIssuer)
		r.Delete("/{issuer}", h.handleRemoveIssuer)
		r.Post("/{issuer}/keys", h.handleAddIssuerKey)
		r.Delete("/{issuer}/keys/{signer}", h.handleRemoveIssuerKey)
		r.Post("/{issuer}/revocations", h.handleRevokeClaim)
	})

	r.Route("/ownership/{component}", func(r chi.Router) {
		r.Get("/", h.handleGetOwnership)
		r.Post("/transfer", h.handleTransferOwnership)
		r.Post("/accept", h.handleAcceptOwnership)
		r.Post("/cancel", h.handleCancelOwnership)
	})

	r.Get("/events", h.handleListEvents)
}

// authenticate returns the caller set by the auth middleware.
func (h *Handler) authenticate(w http.ResponseWriter, r *http.Request) (context.Context, domain.Address, bool) {
	ctx := r.Context()
	caller := requestcontext.Caller(ctx)
	if caller == domain.ZeroAddress {
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
		return ctx, caller, false
	}
	return ctx, caller, true
}

// done answers a mutation: 204 on success, the mapped error otherwise.
func (h *Handler) done(w http.ResponseWriter, r *http.Request, op string, caller domain.Address, err error) {
	ctx := r.Context()
	if err != nil {
		h.fail(w, r, op, caller, err)
		return
	}
	h.logger.InfoContext(ctx, op+" succeeded",
		"request_id", requestcontext.RequestID(ctx),
		"caller", caller.Hex(),
	)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, op string, caller domain.Address, err error) {
	ctx := r.Context()
	code := dErrors.CodeOf(err)
	args := []any{
		"request_id", requestcontext.RequestID(ctx),
		"caller", caller.Hex(),
		"code", string(code),
	}
	switch code.Kind() {
	case dErrors.KindInternal:
		h.logger.ErrorContext(ctx, op+" failed", append(args, "error", err)...)
	case dErrors.KindAuthorization:
		h.logger.WarnContext(ctx, op+" unauthorized", args...)
	default:
		h.logger.InfoContext(ctx, op+" rejected", append(args, "reason", err.Error())...)
	}
	httputil.WriteError(w, err)
}

func pathAddress(r *http.Request, param string) (domain.Address, error) {
	return domain.ParseAddress(chi.URLParam(r, param))
}

func requestID(ctx context.Context) string {
	return requestcontext.RequestID(ctx)
}
