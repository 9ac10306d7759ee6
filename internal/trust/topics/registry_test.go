package topics

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
	r, err := New(domain.DeriveAddress("ctr"), owner, WithAuditPublisher(s.emitter))
	s.Require().NoError(err)
	s.registry = r
}

func (s *RegistrySuite) TestAddClaimTopic() {
	s.Run("owner adds topic", func() {
		s.Require().NoError(s.registry.AddClaimTopic(s.ctx, owner, 1))
		s.True(s.registry.HasClaimTopic(1))
		s.Equal([]domain.Topic{1}, s.registry.ClaimTopics())
		s.Equal(string(audit.EventClaimTopicAdded), s.emitter.Last().Action)
		s.Equal(domain.Topic(1), s.emitter.Last().Topic)
	})

	s.Run("duplicate rejected", func() {
		err := s.registry.AddClaimTopic(s.ctx, owner, 1)
		s.True(dErrors.Is(err, dErrors.CodeDuplicateTopic))
		s.Len(s.registry.ClaimTopics(), 1)
	})

	s.Run("non-owner rejected", func() {
		err := s.registry.AddClaimTopic(s.ctx, stranger, 2)
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
		s.False(s.registry.HasClaimTopic(2))
	})
}

func (s *RegistrySuite) TestCapacity() {
	for i := range MaxTopics {
		s.Require().NoError(s.registry.AddClaimTopic(s.ctx, owner, domain.Topic(i+1)))
	}
	err := s.registry.AddClaimTopic(s.ctx, owner, 999)
	s.True(dErrors.Is(err, dErrors.CodeCapacityExceeded))
	s.Len(s.registry.ClaimTopics(), MaxTopics)
}

func (s *RegistrySuite) TestRemoveClaimTopic() {
	s.Require().NoError(s.registry.AddClaimTopic(s.ctx, owner, 1))
	s.Require().NoError(s.registry.AddClaimTopic(s.ctx, owner, 2))
	s.Require().NoError(s.registry.AddClaimTopic(s.ctx, owner, 3))

	s.Run("absent topic", func() {
		err := s.registry.RemoveClaimTopic(s.ctx, owner, 9)
		s.True(dErrors.Is(err, dErrors.CodeNotFound))
	})

	s.Run("non-owner rejected", func() {
		err := s.registry.RemoveClaimTopic(s.ctx, stranger, 1)
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
	})

	s.Run("order of remaining topics is kept", func() {
		snapshot := s.registry.ClaimTopics()
		s.Require().NoError(s.registry.RemoveClaimTopic(s.ctx, owner, 2))
		s.Equal([]domain.Topic{1, 3}, s.registry.ClaimTopics())
		s.Equal([]domain.Topic{1, 2, 3}, snapshot, "earlier reads are unaffected")
	})
}
