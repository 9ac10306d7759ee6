// Package claims models issuer-signed attestations about an identity and
// checks them.
//
// A claim is signed by one of the issuer's registered keys over
// keccak256(identity ‖ topic ‖ data), wrapped in the Ethereum signed-message
// prefix. Each identity holds at most one claim per (issuer, topic); the claim
// id is keccak256(issuer ‖ topic).
package claims

import (
	"crypto/ecdsa"
	"encoding/binary"
	"fmt"
	"strconv"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
)

// SignatureLength is r ‖ s ‖ v.
const SignatureLength = crypto.SignatureLength

// Claim is one attestation held by an identity.
type Claim struct {
	Topic     domain.Topic
	Issuer    domain.Address
	Signature []byte
	Data      []byte
	URI       string
}

// ID is the directory key for an issuer's claim on topic.
func ID(issuer domain.Address, topic domain.Topic) common.Hash {
	return crypto.Keccak256Hash(issuer.Bytes(), topicBytes(topic))
}

// ID returns the claim's directory key.
func (c Claim) ID() common.Hash {
	return ID(c.Issuer, c.Topic)
}

// Validate checks the claim's shape, not its signature.
func (c Claim) Validate() error {
	if err := domain.RequireNonZero(c.Issuer, "issuer"); err != nil {
		return err
	}
	if len(c.Signature) != SignatureLength {
		return dErrors.Newf(dErrors.CodeInvalidInput, "signature must be %d bytes", SignatureLength)
	}
	return nil
}

// Digest is the hash the issuer signs: keccak256(identity ‖ topic ‖ data).
func Digest(identity domain.Address, topic domain.Topic, data []byte) []byte {
	return crypto.Keccak256(identity.Bytes(), topicBytes(topic), data)
}

// prefixed applies the Ethereum signed-message prefix to a 32-byte digest.
func prefixed(digest []byte) []byte {
	return crypto.Keccak256([]byte("\x19Ethereum Signed Message:\n"+strconv.Itoa(len(digest))), digest)
}

// Sign produces an issuer signature for a claim about identity.
func Sign(key *ecdsa.PrivateKey, identity domain.Address, topic domain.Topic, data []byte) ([]byte, error) {
	sig, err := crypto.Sign(prefixed(Digest(identity, topic, data)), key)
	if err != nil {
		return nil, fmt.Errorf("sign claim: %w", err)
	}
	return sig, nil
}

// RecoverSigner returns the address of the key that signed c for identity.
// Signatures with v in {27, 28} are accepted alongside {0, 1}.
func RecoverSigner(identity domain.Address, c Claim) (domain.Address, error) {
	if len(c.Signature) != SignatureLength {
		return domain.ZeroAddress, fmt.Errorf("signature must be %d bytes", SignatureLength)
	}
	sig := make([]byte, SignatureLength)
	copy(sig, c.Signature)
	if sig[crypto.RecoveryIDOffset] >= 27 {
		sig[crypto.RecoveryIDOffset] -= 27
	}
	pub, err := crypto.SigToPub(prefixed(Digest(identity, c.Topic, c.Data)), sig)
	if err != nil {
		return domain.ZeroAddress, fmt.Errorf("recover claim signer: %w", err)
	}
	return crypto.PubkeyToAddress(*pub), nil
}

func topicBytes(topic domain.Topic) []byte {
	var b [32]byte
	binary.BigEndian.PutUint64(b[24:], uint64(topic))
	return b[:]
}
