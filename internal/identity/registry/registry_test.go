package registry

import (
	"context"
	"errors"
	"sync"
	"testing"

	"assetgate/internal/identity/storage"
	"assetgate/internal/identity/storage/store"
	"assetgate/internal/trust/issuers"
	"assetgate/internal/trust/topics"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/testutil"

	"github.com/prometheus/client_golang/prometheus"
	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/suite"
)

var (
	owner    = domain.DeriveAddress("owner")
	agent    = domain.DeriveAddress("agent")
	stranger = domain.DeriveAddress("stranger")
	holder   = domain.DeriveAddress("holder")
	identity = domain.DeriveAddress("identity")
	issuerA  = domain.DeriveAddress("issuer-a")
	issuerB  = domain.DeriveAddress("issuer-b")
)

const (
	topicKYC domain.Topic = 1
	topicAML domain.Topic = 2
)

type claimKey struct {
	identity domain.Address
	topic    domain.Topic
	issuer   domain.Address
}

// fakeVerifier accepts exactly the claims it was given.
type fakeVerifier struct {
	mu     sync.RWMutex
	claims map[claimKey]bool
}

func newFakeVerifier() *fakeVerifier {
	return &fakeVerifier{claims: make(map[claimKey]bool)}
}

func (f *fakeVerifier) grant(identity domain.Address, topic domain.Topic, issuer domain.Address) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.claims[claimKey{identity, topic, issuer}] = true
}

func (f *fakeVerifier) VerifyClaim(identity domain.Address, topic domain.Topic, issuer domain.Address) bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.claims[claimKey{identity, topic, issuer}]
}

// failingStorage fails every read with an infrastructure error.
type failingStorage struct {
	RecordStorage
}

func (failingStorage) Address() domain.Address {
	return domain.DeriveAddress("failing-storage")
}

func (failingStorage) StoredRecord(context.Context, domain.Address) (storage.Record, error) {
	return storage.Record{}, dErrors.Wrap(errors.New("connection reset"), dErrors.CodeInternal, "load identity")
}

type RegistrySuite struct {
	suite.Suite
	ctx      context.Context
	emitter  *testutil.RecordingEmitter
	storage  *storage.Storage
	topics   *topics.Registry
	issuers  *issuers.Registry
	verifier *fakeVerifier
	metrics  *Metrics
	registry *Registry
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.ctx = context.Background()
	s.emitter = &testutil.RecordingEmitter{}

	var err error
	s.storage, err = storage.New(domain.DeriveAddress("irs"), owner, store.NewInMemory())
	s.Require().NoError(err)
	s.topics, err = topics.New(domain.DeriveAddress("ctr"), owner)
	s.Require().NoError(err)
	s.issuers, err = issuers.New(domain.DeriveAddress("tir"), owner)
	s.Require().NoError(err)
	s.verifier = newFakeVerifier()
	s.metrics = NewMetricsWithRegistry(prometheus.NewRegistry())

	s.registry, err = New(domain.DeriveAddress("ir"), owner, s.storage, s.topics, s.issuers, s.verifier,
		WithAuditPublisher(s.emitter), WithMetrics(s.metrics))
	s.Require().NoError(err)
	s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, s.registry.Address()))
	s.Require().NoError(s.registry.AddAgent(s.ctx, owner, agent))
}

func (s *RegistrySuite) register() {
	s.Require().NoError(s.registry.RegisterIdentity(s.ctx, agent, holder, identity, 250))
}

func (s *RegistrySuite) verified() bool {
	ok, err := s.registry.IsVerified(s.ctx, holder)
	s.Require().NoError(err)
	return ok
}

func (s *RegistrySuite) TestRegisterIdentity() {
	s.Run("agent registers", func() {
		s.register()
		ok, err := s.registry.Contains(s.ctx, holder)
		s.Require().NoError(err)
		s.True(ok)
		s.Equal(string(audit.EventIdentityRegistered), s.emitter.Last().Action)
		s.Equal(holder, s.emitter.Last().Subject)
	})

	s.Run("duplicate holder", func() {
		err := s.registry.RegisterIdentity(s.ctx, agent, holder, identity, 250)
		s.True(dErrors.Is(err, dErrors.CodeAlreadyRegistered))
	})

	s.Run("zero holder", func() {
		err := s.registry.RegisterIdentity(s.ctx, agent, domain.ZeroAddress, identity, 250)
		s.True(dErrors.Is(err, dErrors.CodeZeroAddress))
	})

	s.Run("stranger rejected", func() {
		err := s.registry.RegisterIdentity(s.ctx, stranger, domain.DeriveAddress("h2"), identity, 250)
		s.True(dErrors.Is(err, dErrors.CodeNotAgent))
	})

	s.Run("owner is implicitly privileged", func() {
		s.Require().NoError(s.registry.RegisterIdentity(s.ctx, owner, domain.DeriveAddress("h3"), identity, 250))
	})
}

func (s *RegistrySuite) TestUnboundRegistryCannotWrite() {
	s.Require().NoError(s.storage.UnbindIdentityRegistry(s.ctx, owner, s.registry.Address()))
	err := s.registry.RegisterIdentity(s.ctx, agent, holder, identity, 250)
	s.True(dErrors.Is(err, dErrors.CodeRegistryNotBound))
}

func (s *RegistrySuite) TestBatchRegisterIdentity() {
	s.register()
	regs := []Registration{
		{Holder: domain.DeriveAddress("b1"), Identity: identity, Country: 1},
		{Holder: holder, Identity: identity, Country: 1},
	}
	err := s.registry.BatchRegisterIdentity(s.ctx, agent, regs)
	s.True(dErrors.Is(err, dErrors.CodeAlreadyRegistered))
	ok, err := s.registry.Contains(s.ctx, regs[0].Holder)
	s.Require().NoError(err)
	s.False(ok)

	regs[1].Holder = domain.DeriveAddress("b2")
	s.Require().NoError(s.registry.BatchRegisterIdentity(s.ctx, agent, regs))
	s.Equal([]string{string(audit.EventIdentityRegistered), string(audit.EventIdentityRegistered)}, s.emitter.Actions()[len(s.emitter.Actions())-2:])
}

func (s *RegistrySuite) TestUpdatesAndDelete() {
	s.register()

	s.Run("update country", func() {
		s.Require().NoError(s.registry.UpdateCountry(s.ctx, agent, holder, 276))
		c, err := s.registry.InvestorCountry(s.ctx, holder)
		s.Require().NoError(err)
		s.Equal(domain.Country(276), c)
	})

	s.Run("update identity", func() {
		next := domain.DeriveAddress("identity-2")
		s.Require().NoError(s.registry.UpdateIdentity(s.ctx, agent, holder, next))
		got, err := s.registry.Identity(s.ctx, holder)
		s.Require().NoError(err)
		s.Equal(next, got)
		s.Equal(identity, s.emitter.Last().Subject)
	})

	s.Run("stranger cannot update", func() {
		err := s.registry.UpdateCountry(s.ctx, stranger, holder, 1)
		s.True(dErrors.Is(err, dErrors.CodeNotAgent))
	})

	s.Run("delete", func() {
		s.Require().NoError(s.registry.DeleteIdentity(s.ctx, agent, holder))
		s.Equal(string(audit.EventIdentityRemoved), s.emitter.Last().Action)
		err := s.registry.DeleteIdentity(s.ctx, agent, holder)
		s.True(dErrors.Is(err, dErrors.CodeNotRegistered))
		err = s.registry.UpdateCountry(s.ctx, agent, holder, 1)
		s.True(dErrors.Is(err, dErrors.CodeNotRegistered))
	})
}

func (s *RegistrySuite) TestIsVerified() {
	s.Run("unregistered holder is not verified", func() {
		s.False(s.verified())
	})

	s.register()

	s.Run("no required topics", func() {
		s.True(s.verified())
	})

	s.Require().NoError(s.topics.AddClaimTopic(s.ctx, owner, topicKYC))

	s.Run("missing claim", func() {
		s.False(s.verified())
	})

	s.Run("claim from an untrusted issuer", func() {
		s.verifier.grant(identity, topicKYC, issuerA)
		s.False(s.verified())
	})

	s.Require().NoError(s.issuers.AddTrustedIssuer(s.ctx, owner, issuerA, []domain.Topic{topicKYC}))

	s.Run("claim from a trusted issuer", func() {
		s.True(s.verified())
	})

	s.Run("every topic is required", func() {
		s.Require().NoError(s.topics.AddClaimTopic(s.ctx, owner, topicAML))
		s.False(s.verified())
		s.Require().NoError(s.issuers.AddTrustedIssuer(s.ctx, owner, issuerB, []domain.Topic{topicAML}))
		s.verifier.grant(identity, topicAML, issuerB)
		s.True(s.verified())
	})

	s.Run("removing an unused topic changes nothing", func() {
		s.Require().NoError(s.topics.AddClaimTopic(s.ctx, owner, 99))
		s.False(s.verified())
		s.Require().NoError(s.topics.RemoveClaimTopic(s.ctx, owner, 99))
		s.True(s.verified())
	})

	s.Run("revoking the issuer's topic flips the holder", func() {
		s.Require().NoError(s.issuers.UpdateIssuerClaimTopics(s.ctx, owner, issuerA, []domain.Topic{topicAML}))
		s.False(s.verified())
	})

	s.Run("another issuer for the topic restores eligibility", func() {
		s.Require().NoError(s.issuers.UpdateIssuerClaimTopics(s.ctx, owner, issuerB, []domain.Topic{topicAML, topicKYC}))
		s.verifier.grant(identity, topicKYC, issuerB)
		s.True(s.verified())
	})

	s.Run("removing the issuer flips the holder", func() {
		s.Require().NoError(s.issuers.RemoveTrustedIssuer(s.ctx, owner, issuerB))
		s.False(s.verified())
	})

	s.Equal(float64(1), promtest.ToFloat64(s.metrics.Verifications.WithLabelValues(resultUnregistered)))
}

func (s *RegistrySuite) TestIsVerifiedStorageFailure() {
	s.Require().NoError(s.registry.SetIdentityRegistryStorage(s.ctx, owner, failingStorage{}))
	ok, err := s.registry.IsVerified(s.ctx, holder)
	s.Require().Error(err)
	s.False(ok)
	s.True(dErrors.HasCode(err, dErrors.CodeInternal))
}

func (s *RegistrySuite) TestRepointing() {
	s.register()

	s.Run("owner re-points to a shared storage", func() {
		other, err := storage.New(domain.DeriveAddress("irs-2"), owner, store.NewInMemory())
		s.Require().NoError(err)
		s.Require().NoError(s.registry.SetIdentityRegistryStorage(s.ctx, owner, other))
		s.Equal(string(audit.EventIdentityStorageSet), s.emitter.Last().Action)
		s.Equal(other.Address(), s.emitter.Last().Counterparty)

		ok, err := s.registry.Contains(s.ctx, holder)
		s.Require().NoError(err)
		s.False(ok)

		err = s.registry.RegisterIdentity(s.ctx, agent, holder, identity, 250)
		s.True(dErrors.Is(err, dErrors.CodeRegistryNotBound))
	})

	s.Run("agent cannot re-point", func() {
		err := s.registry.SetClaimTopicsRegistry(s.ctx, agent, s.topics)
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
	})

	s.Run("topics and issuers", func() {
		s.Require().NoError(s.registry.SetClaimTopicsRegistry(s.ctx, owner, s.topics))
		s.Equal(string(audit.EventClaimTopicsRegistrySet), s.emitter.Last().Action)
		s.Require().NoError(s.registry.SetTrustedIssuersRegistry(s.ctx, owner, s.issuers))
		s.Equal(string(audit.EventTrustedIssuersRegistrySet), s.emitter.Last().Action)
	})
}

func (s *RegistrySuite) TestSharedStorageAcrossRegistries() {
	second, err := New(domain.DeriveAddress("ir-2"), owner, s.storage, s.topics, s.issuers, s.verifier)
	s.Require().NoError(err)
	s.Require().NoError(s.storage.BindIdentityRegistry(s.ctx, owner, second.Address()))

	s.register()
	ok, err := second.Contains(s.ctx, holder)
	s.Require().NoError(err)
	s.True(ok)

	s.Require().NoError(second.UpdateCountry(s.ctx, owner, holder, 42))
	c, err := s.registry.InvestorCountry(s.ctx, holder)
	s.Require().NoError(err)
	s.Equal(domain.Country(42), c)
}
