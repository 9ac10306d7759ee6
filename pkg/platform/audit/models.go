package audit

import (
	"context"
	"time"

	"assetgate/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
// This enables different retention policies, storage backends, and routing.
type EventCategory string

const (
	// CategoryCompliance covers events with regulatory significance: value
	// movements, holder registration and anything touching eligibility.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers privilege changes: agents, ownership, freezes.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers configuration changes with no direct effect on
	// any holder.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted by every component after a state transition completes.
// Keep it transport-agnostic so stores and sinks can fan out.
//
// Sequence is assigned by the publisher and is strictly increasing in
// completion order. Source is the emitting component, Actor the caller, Subject
// the primary address and Counterparty the second one (recipient, new owner,
// bound token).
type Event struct {
	Sequence     uint64         `json:"sequence"`
	Category     EventCategory  `json:"category"`
	Timestamp    time.Time      `json:"timestamp"`
	Action       string         `json:"action"`
	Source       domain.Address `json:"source"`
	Actor        domain.Address `json:"actor"`
	Subject      domain.Address `json:"subject"`
	Counterparty domain.Address `json:"counterparty"`
	Amount       uint64         `json:"amount,omitempty"`
	Topic        domain.Topic   `json:"topic,omitempty"`
	Country      domain.Country `json:"country,omitempty"`
	Detail       string         `json:"detail,omitempty"`
	RequestID    string         `json:"request_id,omitempty"`
}

// Emitter is implemented by the publisher; services depend on this, never on
// a concrete store.
type Emitter interface {
	Emit(ctx context.Context, event Event) error
}

// Store persists published events in sequence order.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListSince(ctx context.Context, after uint64, limit int) ([]Event, error)
	LastSequence(ctx context.Context) (uint64, error)
}

// Outbox is a Store whose events are later forwarded to an external sink.
type Outbox interface {
	Store
	ListUnpublished(ctx context.Context, limit int) ([]Event, error)
	MarkPublished(ctx context.Context, upTo uint64) error
}

type AuditEvent string

const (
	// Access control
	EventAgentAdded               AuditEvent = "agent_added"
	EventAgentRemoved             AuditEvent = "agent_removed"
	EventOwnershipTransferStarted AuditEvent = "ownership_transfer_started"
	EventOwnershipTransferred     AuditEvent = "ownership_transferred"

	// Token ledger
	EventTransfer                AuditEvent = "transfer"
	EventApproval                AuditEvent = "approval"
	EventTokensFrozen            AuditEvent = "tokens_frozen"
	EventTokensUnfrozen          AuditEvent = "tokens_unfrozen"
	EventAddressFrozen           AuditEvent = "address_frozen"
	EventPaused                  AuditEvent = "paused"
	EventUnpaused                AuditEvent = "unpaused"
	EventRecoverySuccess         AuditEvent = "recovery_success"
	EventUpdatedTokenInformation AuditEvent = "updated_token_information"
	EventIdentityRegistryAdded   AuditEvent = "identity_registry_added"
	EventComplianceAdded         AuditEvent = "compliance_added"

	// Compliance
	EventComplianceModuleAdded   AuditEvent = "compliance_module_added"
	EventComplianceModuleRemoved AuditEvent = "compliance_module_removed"
	EventModuleInteraction       AuditEvent = "module_interaction"
	EventTokenBound              AuditEvent = "token_bound"
	EventTokenUnbound            AuditEvent = "token_unbound"

	// Identity registry
	EventIdentityRegistered        AuditEvent = "identity_registered"
	EventIdentityRemoved           AuditEvent = "identity_removed"
	EventIdentityUpdated           AuditEvent = "identity_updated"
	EventCountryUpdated            AuditEvent = "country_updated"
	EventIdentityStorageSet        AuditEvent = "identity_storage_set"
	EventClaimTopicsRegistrySet    AuditEvent = "claim_topics_registry_set"
	EventTrustedIssuersRegistrySet AuditEvent = "trusted_issuers_registry_set"

	// Identity storage
	EventIdentityRegistryBound   AuditEvent = "identity_registry_bound"
	EventIdentityRegistryUnbound AuditEvent = "identity_registry_unbound"
	EventIdentityStored          AuditEvent = "identity_stored"
	EventIdentityUnstored        AuditEvent = "identity_unstored"

	// Trust registries
	EventClaimTopicAdded      AuditEvent = "claim_topic_added"
	EventClaimTopicRemoved    AuditEvent = "claim_topic_removed"
	EventTrustedIssuerAdded   AuditEvent = "trusted_issuer_added"
	EventTrustedIssuerRemoved AuditEvent = "trusted_issuer_removed"
	EventClaimTopicsUpdated   AuditEvent = "claim_topics_updated"
)

// eventCategories maps each audit event to its category.
var eventCategories = map[AuditEvent]EventCategory{
	EventTransfer:             CategoryCompliance,
	EventApproval:             CategoryCompliance,
	EventRecoverySuccess:      CategoryCompliance,
	EventIdentityRegistered:   CategoryCompliance,
	EventIdentityRemoved:      CategoryCompliance,
	EventIdentityUpdated:      CategoryCompliance,
	EventCountryUpdated:       CategoryCompliance,
	EventIdentityStored:       CategoryCompliance,
	EventIdentityUnstored:     CategoryCompliance,
	EventTrustedIssuerAdded:   CategoryCompliance,
	EventTrustedIssuerRemoved: CategoryCompliance,
	EventClaimTopicsUpdated:   CategoryCompliance,
	EventClaimTopicAdded:      CategoryCompliance,
	EventClaimTopicRemoved:    CategoryCompliance,

	EventAgentAdded:               CategorySecurity,
	EventAgentRemoved:             CategorySecurity,
	EventOwnershipTransferStarted: CategorySecurity,
	EventOwnershipTransferred:     CategorySecurity,
	EventTokensFrozen:             CategorySecurity,
	EventTokensUnfrozen:           CategorySecurity,
	EventAddressFrozen:            CategorySecurity,
	EventPaused:                   CategorySecurity,
	EventUnpaused:                 CategorySecurity,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}
