package registry

import (
	"context"

	"assetgate/internal/identity/storage"
	"assetgate/pkg/domain"
)

// TopicsSource lists the claim topics every holder must be attested for.
type TopicsSource interface {
	Address() domain.Address
	ClaimTopics() []domain.Topic
}

// IssuersSource resolves which issuers are currently trusted for a topic.
type IssuersSource interface {
	Address() domain.Address
	TrustedIssuersForClaimTopic(topic domain.Topic) []domain.Address
}

// RecordStorage is the shared identity registry storage. Writes carry the
// writing registry so the storage can enforce its bound set.
type RecordStorage interface {
	Address() domain.Address
	AddIdentityToStorage(ctx context.Context, registry domain.Address, rec storage.Record) error
	AddIdentitiesToStorage(ctx context.Context, registry domain.Address, recs []storage.Record) error
	ModifyStoredIdentity(ctx context.Context, registry, holder, identity domain.Address) error
	ModifyStoredInvestorCountry(ctx context.Context, registry, holder domain.Address, country domain.Country) error
	RemoveIdentityFromStorage(ctx context.Context, registry, holder domain.Address) error
	StoredRecord(ctx context.Context, holder domain.Address) (storage.Record, error)
}

// ClaimVerifier answers whether identity holds a valid claim of topic signed
// by issuer. It must be pure and return immediately.
type ClaimVerifier interface {
	VerifyClaim(identity domain.Address, topic domain.Topic, issuer domain.Address) bool
}
