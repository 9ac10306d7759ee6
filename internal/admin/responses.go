package admin

import (
	"assetgate/internal/compliance"
	"assetgate/internal/token"
	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
)

// TokenResponse describes the token.
type TokenResponse struct {
	Address     domain.Address `json:"address"`
	Info        token.Info     `json:"info"`
	Version     string         `json:"version"`
	Paused      bool           `json:"paused"`
	TotalSupply uint64         `json:"total_supply"`
}

// IdentityResponse is the registry view of one wallet.
type IdentityResponse struct {
	Holder   domain.Address `json:"holder"`
	Identity domain.Address `json:"identity"`
	Country  domain.Country `json:"country"`
	Verified bool           `json:"verified"`
}

// ModulesResponse lists the bound modules in evaluation order.
type ModulesResponse struct {
	Modules []compliance.ModuleInfo `json:"modules"`
}

// CanTransferResponse is the compliance verdict on a hypothetical transfer.
type CanTransferResponse struct {
	Allowed  bool     `json:"allowed"`
	Rejected []string `json:"rejected,omitempty"`
}

// TopicsResponse lists the required claim topics.
type TopicsResponse struct {
	Topics []domain.Topic `json:"topics"`
}

// IssuerResponse is one trusted issuer and the topics it may attest.
type IssuerResponse struct {
	Issuer domain.Address `json:"issuer"`
	Topics []domain.Topic `json:"topics"`
}

// IssuersResponse lists the trusted issuers.
type IssuersResponse struct {
	Issuers []IssuerResponse `json:"issuers"`
}

// ClaimResponse returns the id a claim was stored under.
type ClaimResponse struct {
	ClaimID string `json:"claim_id"`
}

// OwnershipResponse is the ownership state of one component.
type OwnershipResponse struct {
	Component    string         `json:"component"`
	Owner        domain.Address `json:"owner"`
	PendingOwner domain.Address `json:"pending_owner"`
}

// EventsResponse is one page of published events.
type EventsResponse struct {
	Events []audit.Event `json:"events"`
	Next   uint64        `json:"next"`
}
