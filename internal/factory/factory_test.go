package factory_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"assetgate/internal/compliance"
	"assetgate/internal/compliance/modules"
	modulestore "assetgate/internal/compliance/store"
	"assetgate/internal/factory"
	"assetgate/internal/identity/claims"
	identitystore "assetgate/internal/identity/storage/store"
	"assetgate/internal/token"
	tokenstore "assetgate/internal/token/store"
	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/testutil"
)

const kycTopic domain.Topic = 1

type FactorySuite struct {
	suite.Suite
	ctx     context.Context
	owner   domain.Address
	agent   domain.Address
	issuer  domain.Address
	emitter *testutil.RecordingEmitter
	suite   *factory.Suite
}

func TestFactorySuite(t *testing.T) {
	suite.Run(t, new(FactorySuite))
}

func (s *FactorySuite) SetupTest() {
	s.ctx = context.Background()
	s.owner = domain.DeriveAddress("owner")
	s.agent = domain.DeriveAddress("agent")
	s.issuer = domain.DeriveAddress("kyc-provider")
	s.emitter = &testutil.RecordingEmitter{}

	cfg := factory.Config{
		Owner:          s.owner,
		Token:          token.Info{Name: "Bond", Symbol: "BND"},
		ClaimTopics:    []domain.Topic{kycTopic},
		TrustedIssuers: []factory.IssuerConfig{{Issuer: s.issuer, Topics: []domain.Topic{kycTopic}}},
		Agents:         []domain.Address{s.agent},
		Modules:        []modules.Config{{Kind: modules.KindMaxBalance, Name: "max-balance", MaxBalance: 100}},
	}
	stores := factory.Stores{
		Records:  identitystore.NewInMemory(),
		Balances: func(domain.Address) token.BalanceStore { return tokenstore.NewInMemory() },
	}
	var err error
	s.suite, err = factory.Deploy(s.ctx, cfg, stores,
		factory.WithAuditPublisher(s.emitter),
		factory.WithMetricsRegisterer(prometheus.NewRegistry()),
	)
	s.Require().NoError(err)
}

func (s *FactorySuite) TestWiring() {
	s.True(s.suite.Storage.IsBound(s.suite.Registry.Address()), "storage is bound to the registry")
	s.True(s.suite.Compliance.IsTokenBound(s.suite.Token.Address()))
	s.True(s.suite.Registry.IsAgent(s.suite.Token.Address()), "token is a registry agent")
	s.True(s.suite.Registry.IsAgent(s.agent))
	s.True(s.suite.Token.IsAgent(s.agent))
	s.Equal([]domain.Topic{kycTopic}, s.suite.Topics.ClaimTopics())
	s.True(s.suite.Issuers.IsTrustedIssuer(s.issuer))
	s.True(s.suite.Compliance.IsModuleBound("max-balance"))
	s.True(s.suite.Token.Paused())
}

func (s *FactorySuite) TestHandover() {
	s.Equal(s.owner, s.suite.Compliance.Owner(), "compliance is handed over at once")
	s.Equal(factory.Deployer, s.suite.Token.Owner())
	s.Equal(s.owner, s.suite.Token.PendingOwner())

	accepted, err := s.suite.AcceptOwnership(s.ctx, s.owner)
	s.Require().NoError(err)
	s.ElementsMatch([]string{
		factory.ComponentTrustedIssuers,
		factory.ComponentClaimTopics,
		factory.ComponentIdentityStorage,
		factory.ComponentIdentityRegistry,
		factory.ComponentToken,
	}, accepted)
	for name, c := range s.suite.Components() {
		s.Equal(s.owner, c.Owner(), name)
	}

	s.Run("nothing left to accept", func() {
		accepted, err := s.suite.AcceptOwnership(s.ctx, s.owner)
		s.Require().NoError(err)
		s.Empty(accepted)
	})
}

func (s *FactorySuite) TestEndToEndTransfer() {
	_, err := s.suite.AcceptOwnership(s.ctx, s.owner)
	s.Require().NoError(err)

	key, err := crypto.GenerateKey()
	s.Require().NoError(err)
	s.Require().NoError(s.suite.Keys.AddKey(s.ctx, s.issuer, s.issuer, crypto.PubkeyToAddress(key.PublicKey)))

	alice, bob := domain.DeriveAddress("alice"), domain.DeriveAddress("bob")
	for _, wallet := range []domain.Address{alice, bob} {
		identity := domain.DeriveAddress("id-" + wallet.Hex())
		sig, err := claims.Sign(key, identity, kycTopic, nil)
		s.Require().NoError(err)
		_, err = s.suite.Claims.AddClaim(s.ctx, identity, claims.Claim{Topic: kycTopic, Issuer: s.issuer, Signature: sig})
		s.Require().NoError(err)
		s.Require().NoError(s.suite.Registry.RegisterIdentity(s.ctx, s.agent, wallet, identity, domain.Country(250)))
	}

	s.Require().NoError(s.suite.Token.Mint(s.ctx, s.agent, alice, 150))
	s.Require().NoError(s.suite.Token.Unpause(s.ctx, s.agent))

	s.Require().NoError(s.suite.Token.Transfer(s.ctx, alice, bob, 100))
	err = s.suite.Token.Transfer(s.ctx, alice, bob, 1)
	s.True(dErrors.Is(err, dErrors.CodeComplianceRejected))

	s.Run("revoking the issuer unverifies every holder", func() {
		s.Require().NoError(s.suite.Issuers.RemoveTrustedIssuer(s.ctx, s.owner, s.issuer))
		err := s.suite.Token.Transfer(s.ctx, bob, alice, 1)
		s.True(dErrors.Is(err, dErrors.CodeUnverifiedIdentity))
	})

	s.Contains(s.emitter.Actions(), string(audit.EventTransfer))
}

func (s *FactorySuite) TestDeployValidation() {
	_, err := factory.Deploy(s.ctx, factory.Config{Token: token.Info{Name: "x", Symbol: "X"}}, factory.Stores{})
	s.True(dErrors.Is(err, dErrors.CodeZeroAddress))

	_, err = factory.Deploy(s.ctx, factory.Config{
		Owner:   s.owner,
		Token:   token.Info{Name: "x", Symbol: "X"},
		Modules: []modules.Config{{Kind: "unknown", Name: "m"}},
	}, factory.Stores{
		Records:  identitystore.NewInMemory(),
		Balances: func(domain.Address) token.BalanceStore { return tokenstore.NewInMemory() },
	})
	s.Require().Error(err)
}

// TestRedeployOverSameStores deploys twice over one set of stores. Freezes,
// tracked balances and transfer counters of the first deployment must still
// gate transfers in the second.
func (s *FactorySuite) TestRedeployOverSameStores() {
	balances := tokenstore.NewInMemory()
	chain := modulestore.NewInMemory()
	stores := factory.Stores{
		Records:  identitystore.NewInMemory(),
		Balances: func(domain.Address) token.BalanceStore { return balances },
		Modules:  func(domain.Address) compliance.StateStore { return chain },
	}
	cfg := factory.Config{
		Owner:   s.owner,
		Token:   token.Info{Name: "Fund", Symbol: "FND"},
		Agents:  []domain.Address{s.agent},
		Modules: []modules.Config{{Kind: modules.KindMaxBalance, Name: "max-balance", MaxBalance: 100}},
	}
	alice, bob := domain.DeriveAddress("alice"), domain.DeriveAddress("bob")
	aliceID, bobID := domain.DeriveAddress("id-alice"), domain.DeriveAddress("id-bob")

	first, err := factory.Deploy(s.ctx, cfg, stores)
	s.Require().NoError(err)
	s.Require().NoError(first.Registry.RegisterIdentity(s.ctx, s.agent, alice, aliceID, domain.Country(250)))
	s.Require().NoError(first.Registry.RegisterIdentity(s.ctx, s.agent, bob, bobID, domain.Country(250)))
	daily, err := modules.NewTransferLimit("daily", modules.Limit{Window: 24 * time.Hour, MaxTransfers: 1})
	s.Require().NoError(err)
	s.Require().NoError(first.Compliance.AddModule(s.ctx, s.owner, daily))

	s.Require().NoError(first.Token.Mint(s.ctx, s.agent, alice, 100))
	s.Require().NoError(first.Token.Unpause(s.ctx, s.agent))
	s.Require().NoError(first.Token.Transfer(s.ctx, alice, bob, 10))
	s.Require().NoError(first.Token.FreezePartialTokens(s.ctx, s.agent, alice, 30))
	s.Require().NoError(first.Token.SetAddressFrozen(s.ctx, s.agent, alice, true))
	s.Require().NoError(first.Token.Approve(s.ctx, bob, alice, 5))

	second, err := factory.Deploy(s.ctx, cfg, stores)
	s.Require().NoError(err)

	s.Run("freezes and allowances carry over", func() {
		s.True(second.Token.IsFrozen(alice))
		s.Equal(uint64(30), second.Token.FrozenTokens(alice))
		s.Equal(uint64(5), second.Token.Allowance(bob, alice))
	})

	s.Run("tracked balances are rebuilt from the ledger", func() {
		m, ok := second.Compliance.Module("max-balance")
		s.Require().True(ok)
		s.Equal(uint64(90), m.(*modules.MaxBalance).IdentityBalance(aliceID))
		s.Equal(uint64(10), m.(*modules.MaxBalance).IdentityBalance(bobID))

		ev, err := second.Compliance.CheckTransfer(s.ctx, bob, alice, 11, time.Now())
		s.Require().NoError(err)
		s.False(ev.Allowed)
		s.Equal([]string{"max-balance"}, ev.Rejected)
	})

	s.Run("runtime modules come back with their counters", func() {
		s.Equal([]compliance.ModuleInfo{
			{Name: "max-balance", Kind: modules.KindMaxBalance},
			{Name: "daily", Kind: modules.KindTransferLimit},
		}, second.Compliance.Modules())

		ev, err := second.Compliance.CheckTransfer(s.ctx, alice, bob, 1, time.Now())
		s.Require().NoError(err)
		s.Equal([]string{"daily"}, ev.Rejected)
	})

	s.Run("the token restarts paused", func() {
		s.True(second.Token.Paused())
		supply, err := second.Token.TotalSupply(s.ctx)
		s.Require().NoError(err)
		s.Equal(uint64(100), supply)
	})
}
