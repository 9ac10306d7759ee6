package issuers

import (
	"context"
	"testing"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/testutil"

	"github.com/stretchr/testify/suite"
)

var (
	owner    = domain.DeriveAddress("owner")
	stranger = domain.DeriveAddress("stranger")
	kycCo    = domain.DeriveAddress("kyc-co")
	amlCo    = domain.DeriveAddress("aml-co")
)

type RegistrySuite struct {
	suite.Suite
	ctx      context.Context
	emitter  *testutil.RecordingEmitter
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.emitter = &testutil.RecordingEmitter{}
	r, err := New(domain.DeriveAddress("tir"), owner, WithAuditPublisher(s.emitter))
	s.Require().NoError(err)
	s.registry = r
}

func (s *RegistrySuite) TestAddTrustedIssuer() {
	s.Run("owner adds issuer", func() {
		s.Require().NoError(s.registry.AddTrustedIssuer(s.ctx, owner, kycCo, []domain.Topic{1, 2}))
		s.True(s.registry.IsTrustedIssuer(kycCo))
		s.True(s.registry.HasClaimTopic(kycCo, 2))
		s.False(s.registry.HasClaimTopic(kycCo, 3))
		last := s.emitter.Last()
		s.Equal(string(audit.EventTrustedIssuerAdded), last.Action)
		s.Equal("1,2", last.Detail)
	})

	s.Run("duplicate issuer", func() {
		err := s.registry.AddTrustedIssuer(s.ctx, owner, kycCo, []domain.Topic{3})
		s.True(dErrors.Is(err, dErrors.CodeDuplicateIssuer))
	})

	s.Run("zero address", func() {
		err := s.registry.AddTrustedIssuer(s.ctx, owner, domain.ZeroAddress, []domain.Topic{1})
		s.True(dErrors.Is(err, dErrors.CodeZeroAddress))
	})

	s.Run("no topics", func() {
		err := s.registry.AddTrustedIssuer(s.ctx, owner, amlCo, nil)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
	})

	s.Run("repeated topic", func() {
		err := s.registry.AddTrustedIssuer(s.ctx, owner, amlCo, []domain.Topic{4, 4})
		s.True(dErrors.Is(err, dErrors.CodeDuplicateTopic))
	})

	s.Run("too many topics", func() {
		topics := make([]domain.Topic, MaxTopicsPerIssuer+1)
		for i := range topics {
			topics[i] = domain.Topic(i + 1)
		}
		err := s.registry.AddTrustedIssuer(s.ctx, owner, amlCo, topics)
		s.True(dErrors.Is(err, dErrors.CodeCapacityExceeded))
	})

	s.Run("non-owner", func() {
		err := s.registry.AddTrustedIssuer(s.ctx, stranger, amlCo, []domain.Topic{1})
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
		s.False(s.registry.IsTrustedIssuer(amlCo))
	})
}

func (s *RegistrySuite) TestIssuerCapacity() {
	for i := range MaxIssuers {
		issuer := domain.DeriveAddress("issuer-" + domain.Topic(i).String())
		s.Require().NoError(s.registry.AddTrustedIssuer(s.ctx, owner, issuer, []domain.Topic{1}))
	}
	err := s.registry.AddTrustedIssuer(s.ctx, owner, kycCo, []domain.Topic{1})
	s.True(dErrors.Is(err, dErrors.CodeCapacityExceeded))
}

func (s *RegistrySuite) TestUpdateIssuerClaimTopics() {
	s.Require().NoError(s.registry.AddTrustedIssuer(s.ctx, owner, kycCo, []domain.Topic{1, 2}))

	s.Run("replaces topics", func() {
		s.Require().NoError(s.registry.UpdateIssuerClaimTopics(s.ctx, owner, kycCo, []domain.Topic{3}))
		topics, err := s.registry.IssuerClaimTopics(kycCo)
		s.Require().NoError(err)
		s.Equal([]domain.Topic{3}, topics)
		s.False(s.registry.HasClaimTopic(kycCo, 1))
	})

	s.Run("invalid replacement leaves topics untouched", func() {
		err := s.registry.UpdateIssuerClaimTopics(s.ctx, owner, kycCo, nil)
		s.True(dErrors.Is(err, dErrors.CodeInvalidInput))
		s.True(s.registry.HasClaimTopic(kycCo, 3))
	})

	s.Run("unknown issuer", func() {
		err := s.registry.UpdateIssuerClaimTopics(s.ctx, owner, amlCo, []domain.Topic{1})
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})
}

func (s *RegistrySuite) TestRemoveTrustedIssuer() {
	s.Require().NoError(s.registry.AddTrustedIssuer(s.ctx, owner, kycCo, []domain.Topic{1}))
	s.Require().NoError(s.registry.AddTrustedIssuer(s.ctx, owner, amlCo, []domain.Topic{1, 2}))
	s.Equal([]domain.Address{kycCo, amlCo}, s.registry.TrustedIssuersForClaimTopic(1))

	s.Require().NoError(s.registry.RemoveTrustedIssuer(s.ctx, owner, kycCo))
	s.False(s.registry.IsTrustedIssuer(kycCo))
	s.Equal([]domain.Address{amlCo}, s.registry.TrustedIssuers())
	s.Equal([]domain.Address{amlCo}, s.registry.TrustedIssuersForClaimTopic(1))

	_, err := s.registry.IssuerClaimTopics(kycCo)
	s.True(dErrors.Is(err, dErrors.CodeNotFound))
	s.True(dErrors.Is(s.registry.RemoveTrustedIssuer(s.ctx, owner, kycCo), dErrors.CodeNotFound))
}
