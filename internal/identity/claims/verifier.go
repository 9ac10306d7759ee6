package claims

import (
	"context"
	"log/slog"
	"sync"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// IssuerKeys records, per claim issuer, the signing keys it accepts and the
// claim signatures it has revoked. Only the issuer itself may change its own
// entry.
type IssuerKeys struct {
	mu      sync.RWMutex
	keys    map[domain.Address]map[domain.Address]struct{}
	revoked map[domain.Address]map[common.Hash]struct{}
	logger  *slog.Logger
}

func NewIssuerKeys(logger *slog.Logger) *IssuerKeys {
	return &IssuerKeys{
		keys:    make(map[domain.Address]map[domain.Address]struct{}),
		revoked: make(map[domain.Address]map[common.Hash]struct{}),
		logger:  logger,
	}
}

// AddKey lets signer sign claims on behalf of issuer.
func (k *IssuerKeys) AddKey(ctx context.Context, caller, issuer, signer domain.Address) error {
	if caller != issuer {
		return dErrors.New(dErrors.CodeForbidden, "only the issuer manages its keys")
	}
	if err := domain.RequireNonZero(signer, "signing key"); err != nil {
		return err
	}

	k.mu.Lock()
	set, ok := k.keys[issuer]
	if !ok {
		set = make(map[domain.Address]struct{})
		k.keys[issuer] = set
	}
	if _, ok := set[signer]; ok {
		k.mu.Unlock()
		return dErrors.New(dErrors.CodeConflict, "signing key already registered")
	}
	set[signer] = struct{}{}
	k.mu.Unlock()

	k.log(ctx, "issuer key added", "issuer", issuer.Hex(), "signer", signer.Hex())
	return nil
}

// RemoveKey stops accepting signatures from signer for issuer. Claims it
// signed stop validating immediately.
func (k *IssuerKeys) RemoveKey(ctx context.Context, caller, issuer, signer domain.Address) error {
	if caller != issuer {
		return dErrors.New(dErrors.CodeForbidden, "only the issuer manages its keys")
	}

	k.mu.Lock()
	if _, ok := k.keys[issuer][signer]; !ok {
		k.mu.Unlock()
		return dErrors.New(dErrors.CodeNotFound, "signing key not registered")
	}
	delete(k.keys[issuer], signer)
	k.mu.Unlock()

	k.log(ctx, "issuer key removed", "issuer", issuer.Hex(), "signer", signer.Hex())
	return nil
}

// RevokeClaim revokes a claim signature issued by issuer.
func (k *IssuerKeys) RevokeClaim(ctx context.Context, caller, issuer domain.Address, signature []byte) error {
	if caller != issuer {
		return dErrors.New(dErrors.CodeForbidden, "only the issuer revokes its claims")
	}
	if len(signature) != SignatureLength {
		return dErrors.Newf(dErrors.CodeInvalidInput, "signature must be %d bytes", SignatureLength)
	}
	h := crypto.Keccak256Hash(signature)

	k.mu.Lock()
	set, ok := k.revoked[issuer]
	if !ok {
		set = make(map[common.Hash]struct{})
		k.revoked[issuer] = set
	}
	if _, ok := set[h]; ok {
		k.mu.Unlock()
		return dErrors.New(dErrors.CodeConflict, "claim already revoked")
	}
	set[h] = struct{}{}
	k.mu.Unlock()

	k.log(ctx, "claim revoked", "issuer", issuer.Hex(), "signature_hash", h.Hex())
	return nil
}

// IsClaimRevoked reports whether issuer revoked signature.
func (k *IssuerKeys) IsClaimRevoked(issuer domain.Address, signature []byte) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.revoked[issuer][crypto.Keccak256Hash(signature)]
	return ok
}

// HasKey reports whether signer currently signs for issuer.
func (k *IssuerKeys) HasKey(issuer, signer domain.Address) bool {
	k.mu.RLock()
	defer k.mu.RUnlock()
	_, ok := k.keys[issuer][signer]
	return ok
}

// IsClaimValid is the issuer-side check: the claim was signed for identity by
// a current key of its issuer and has not been revoked.
func (k *IssuerKeys) IsClaimValid(identity domain.Address, c Claim) bool {
	signer, err := RecoverSigner(identity, c)
	if err != nil {
		return false
	}
	return k.HasKey(c.Issuer, signer) && !k.IsClaimRevoked(c.Issuer, c.Signature)
}

func (k *IssuerKeys) log(ctx context.Context, msg string, args ...any) {
	if k.logger != nil {
		k.logger.InfoContext(ctx, msg, args...)
	}
}

// Verifier answers "does identity hold a valid claim on topic from issuer"
// by combining the claim directory with the issuer key registry. It does no
// I/O and returns immediately.
type Verifier struct {
	directory *Directory
	keys      *IssuerKeys
}

func NewVerifier(directory *Directory, keys *IssuerKeys) *Verifier {
	return &Verifier{directory: directory, keys: keys}
}

// VerifyClaim reports whether identity holds a valid claim on topic signed by
// issuer.
func (v *Verifier) VerifyClaim(identity domain.Address, topic domain.Topic, issuer domain.Address) bool {
	c, ok := v.directory.Claim(identity, ID(issuer, topic))
	if !ok {
		return false
	}
	return v.keys.IsClaimValid(identity, c)
}
