package claims

import (
	"context"
	"crypto/ecdsa"
	"testing"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/suite"
)

type ClaimsSuite struct {
	suite.Suite
	ctx        context.Context
	issuer     domain.Address
	signingKey *ecdsa.PrivateKey
	signer     domain.Address
	identity   domain.Address
	directory  *Directory
	keys       *IssuerKeys
	verifier   *Verifier
}

func TestClaimsSuite(t *testing.T) {
	suite.Run(t, new(ClaimsSuite))
}

func (s *ClaimsSuite) SetupTest() {
	s.ctx = context.Background()
	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	s.signingKey = key
	s.signer = crypto.PubkeyToAddress(key.PublicKey)
	s.issuer = domain.DeriveAddress("issuer")
	s.identity = domain.DeriveAddress("identity")
	s.directory = NewDirectory(nil)
	s.keys = NewIssuerKeys(nil)
	s.verifier = NewVerifier(s.directory, s.keys)
	s.Require().NoError(s.keys.AddKey(s.ctx, s.issuer, s.issuer, s.signer))
}

func (s *ClaimsSuite) signedClaim(identity domain.Address, topic domain.Topic) Claim {
	data := []byte("kyc-level-2")
	sig, err := Sign(s.signingKey, identity, topic, data)
	s.Require().NoError(err)
	return Claim{Topic: topic, Issuer: s.issuer, Signature: sig, Data: data}
}

func (s *ClaimsSuite) TestRecoverSigner() {
	c := s.signedClaim(s.identity, 1)

	s.Run("recovers signing key", func() {
		signer, err := RecoverSigner(s.identity, c)
		s.Require().NoError(err)
		s.Equal(s.signer, signer)
	})

	s.Run("accepts 27/28 recovery ids", func() {
		alt := c
		alt.Signature = append([]byte(nil), c.Signature...)
		alt.Signature[crypto.RecoveryIDOffset] += 27
		signer, err := RecoverSigner(s.identity, alt)
		s.Require().NoError(err)
		s.Equal(s.signer, signer)
	})

	s.Run("claim bound to identity", func() {
		signer, err := RecoverSigner(domain.DeriveAddress("other"), c)
		if err == nil {
			s.NotEqual(s.signer, signer)
		}
	})
}

func (s *ClaimsSuite) TestVerifyClaim() {
	s.False(s.verifier.VerifyClaim(s.identity, 1, s.issuer), "no claim held")

	_, err := s.directory.AddClaim(s.ctx, s.identity, s.signedClaim(s.identity, 1))
	s.Require().NoError(err)
	s.True(s.verifier.VerifyClaim(s.identity, 1, s.issuer))
	s.False(s.verifier.VerifyClaim(s.identity, 2, s.issuer), "other topic")
	s.False(s.verifier.VerifyClaim(s.identity, 1, domain.DeriveAddress("other-issuer")), "other issuer")
}

func (s *ClaimsSuite) TestClaimCopiedForAnotherIdentityFails() {
	stolen := s.signedClaim(s.identity, 1)
	thief := domain.DeriveAddress("thief")
	_, err := s.directory.AddClaim(s.ctx, thief, stolen)
	s.Require().NoError(err)
	s.False(s.verifier.VerifyClaim(thief, 1, s.issuer))
}

func (s *ClaimsSuite) TestRevocation() {
	c := s.signedClaim(s.identity, 1)
	_, err := s.directory.AddClaim(s.ctx, s.identity, c)
	s.Require().NoError(err)

	s.Run("only the issuer revokes", func() {
		err := s.keys.RevokeClaim(s.ctx, s.identity, s.issuer, c.Signature)
		s.True(dErrors.Is(err, dErrors.CodeForbidden))
	})

	s.Run("revoked claim stops validating", func() {
		s.Require().NoError(s.keys.RevokeClaim(s.ctx, s.issuer, s.issuer, c.Signature))
		s.True(s.keys.IsClaimRevoked(s.issuer, c.Signature))
		s.False(s.verifier.VerifyClaim(s.identity, 1, s.issuer))
	})

	s.Run("double revocation", func() {
		err := s.keys.RevokeClaim(s.ctx, s.issuer, s.issuer, c.Signature)
		s.True(dErrors.Is(err, dErrors.CodeConflict))
	})
}

func (s *ClaimsSuite) TestKeyRemoval() {
	_, err := s.directory.AddClaim(s.ctx, s.identity, s.signedClaim(s.identity, 1))
	s.Require().NoError(err)

	s.True(dErrors.Is(s.keys.RemoveKey(s.ctx, s.identity, s.issuer, s.signer), dErrors.CodeForbidden))
	s.Require().NoError(s.keys.RemoveKey(s.ctx, s.issuer, s.issuer, s.signer))
	s.False(s.verifier.VerifyClaim(s.identity, 1, s.issuer))
	s.True(dErrors.Is(s.keys.RemoveKey(s.ctx, s.issuer, s.issuer, s.signer), dErrors.CodeNotFound))
}

func (s *ClaimsSuite) TestDirectory() {
	s.Run("rejects malformed claims", func() {
		_, err := s.directory.AddClaim(s.ctx, s.identity, Claim{Topic: 1, Issuer: s.issuer, Signature: []byte{1}})
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
		_, err = s.directory.AddClaim(s.ctx, domain.ZeroAddress, s.signedClaim(s.identity, 1))
		s.True(dErrors.Is(err, dErrors.CodeZeroAddress))
	})

	s.Run("one claim per issuer and topic", func() {
		first := s.signedClaim(s.identity, 3)
		id, err := s.directory.AddClaim(s.ctx, s.identity, first)
		s.Require().NoError(err)
		second := s.signedClaim(s.identity, 3)
		second.URI = "https://issuer.example/claims/3"
		again, err := s.directory.AddClaim(s.ctx, s.identity, second)
		s.Require().NoError(err)
		s.Equal(id, again)
		s.Len(s.directory.ClaimsByTopic(s.identity, 3), 1)
		stored, ok := s.directory.Claim(s.identity, id)
		s.True(ok)
		s.Equal(second.URI, stored.URI)
	})

	s.Run("remove", func() {
		id := ID(s.issuer, 3)
		s.Require().NoError(s.directory.RemoveClaim(s.ctx, s.identity, id))
		s.True(dErrors.Is(s.directory.RemoveClaim(s.ctx, s.identity, id), dErrors.CodeNotFound))
	})
}
