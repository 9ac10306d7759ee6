package compliance

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"assetgate/pkg/domain"
	dErrors "assetgate/pkg/domain-errors"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/testutil"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"
)

var (
	deployer = domain.DeriveAddress("deployer")
	operator = domain.DeriveAddress("operator")
	stranger = domain.DeriveAddress("stranger")
	alice    = domain.DeriveAddress("alice")
	bob      = domain.DeriveAddress("bob")
)

// journal records hook calls across modules in call order.
type journal struct {
	mu      sync.Mutex
	entries []string
}

func (j *journal) add(entry string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries = append(j.entries, entry)
}

func (j *journal) all() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.entries...)
}

type stubModule struct {
	name    string
	admit   bool
	checked int
	journal *journal
	bound   domain.Address
}

func (m *stubModule) Name() string { return m.name }
func (m *stubModule) Kind() string { return "stub" }

func (m *stubModule) CanTransfer(context.Context, Transfer) bool {
	m.checked++
	return m.admit
}

func (m *stubModule) Transferred(context.Context, Transfer) {
	m.journal.add("transferred:" + m.name)
}

func (m *stubModule) Created(context.Context, Party, uint64, time.Time) {
	m.journal.add("created:" + m.name)
}

func (m *stubModule) Destroyed(context.Context, Party, uint64, time.Time) {
	m.journal.add("destroyed:" + m.name)
}

func (m *stubModule) BindCompliance(c domain.Address) error {
	if m.bound != domain.ZeroAddress {
		return dErrors.New(dErrors.CodeAlreadyBound, "bound elsewhere")
	}
	m.bound = c
	return nil
}

func (m *stubModule) UnbindCompliance(domain.Address) error {
	m.bound = domain.ZeroAddress
	return nil
}

func (m *stubModule) BoundCompliance() domain.Address { return m.bound }

type stubToken struct {
	address  domain.Address
	holdings []Holding
}

func (t stubToken) Address() domain.Address { return t.address }

func (t stubToken) Holdings(context.Context) ([]Holding, error) { return t.holdings, nil }

func (t stubToken) Investor(_ context.Context, wallet domain.Address) (Party, error) {
	return Party{Wallet: wallet, Identity: domain.DeriveAddress("id-" + wallet.Hex()), Country: 250}, nil
}

type ComplianceSuite struct {
	suite.Suite
	ctx     context.Context
	emitter *testutil.RecordingEmitter
	journal *journal
	token   stubToken
	mc      *ModularCompliance
}

func TestComplianceSuite(t *testing.T) {
	suite.Run(t, new(ComplianceSuite))
}

func (s *ComplianceSuite) SetupTest() {
	s.ctx = context.Background()
	s.emitter = &testutil.RecordingEmitter{}
	s.journal = &journal{}
	s.token = stubToken{address: domain.DeriveAddress("token")}
	mc, err := New(domain.DeriveAddress("compliance"), deployer,
		WithAuditPublisher(s.emitter),
		WithMetrics(NewMetricsWithRegistry(prometheus.NewRegistry())))
	s.Require().NoError(err)
	s.mc = mc
	s.Require().NoError(s.mc.BindToken(s.ctx, deployer, s.token))
}

func (s *ComplianceSuite) module(name string, admit bool) *stubModule {
	return &stubModule{name: name, admit: admit, journal: s.journal}
}

func (s *ComplianceSuite) transfer() Transfer {
	return Transfer{From: Party{Wallet: alice}, To: Party{Wallet: bob}, Amount: 10, At: time.Now()}
}

func (s *ComplianceSuite) TestBindToken() {
	s.Run("second bind fails until unbound", func() {
		other := stubToken{address: domain.DeriveAddress("other-token")}
		err := s.mc.BindToken(s.ctx, deployer, other)
		s.True(dErrors.Is(err, dErrors.CodeAlreadyBound))

		s.Require().NoError(s.mc.UnbindToken(s.ctx, deployer, s.token.Address()))
		s.Equal(string(audit.EventTokenUnbound), s.emitter.Last().Action)
		s.Require().NoError(s.mc.BindToken(s.ctx, other.Address(), other))
		s.True(s.mc.IsTokenBound(other.Address()))
	})

	s.Run("stranger cannot bind", func() {
		s.Require().NoError(s.mc.UnbindToken(s.ctx, deployer, s.mc.BoundToken().Address()))
		err := s.mc.BindToken(s.ctx, stranger, s.token)
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
	})
}

func (s *ComplianceSuite) TestAddRemoveModule() {
	a := s.module("a", true)

	s.Run("owner adds", func() {
		s.Require().NoError(s.mc.AddModule(s.ctx, deployer, a))
		s.Equal(s.mc.Address(), a.BoundCompliance())
		s.Equal(string(audit.EventComplianceModuleAdded), s.emitter.Last().Action)
		s.Equal([]ModuleInfo{{Name: "a", Kind: "stub"}}, s.mc.Modules())
	})

	s.Run("duplicate name", func() {
		err := s.mc.AddModule(s.ctx, deployer, s.module("a", true))
		s.True(dErrors.Is(err, dErrors.CodeDuplicateModule))
	})

	s.Run("module bound elsewhere", func() {
		other, err := New(domain.DeriveAddress("compliance-2"), deployer)
		s.Require().NoError(err)
		err = other.AddModule(s.ctx, deployer, a)
		s.True(dErrors.Is(err, dErrors.CodeAlreadyBound))
	})

	s.Run("stranger cannot add", func() {
		err := s.mc.AddModule(s.ctx, stranger, s.module("b", true))
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
	})

	s.Run("remove", func() {
		s.Require().NoError(s.mc.RemoveModule(s.ctx, deployer, "a"))
		s.Equal(domain.ZeroAddress, a.BoundCompliance())
		s.Empty(s.mc.Modules())
		err := s.mc.RemoveModule(s.ctx, deployer, "a")
		s.True(dErrors.Is(err, dErrors.CodeModuleNotBound))
	})
}

func (s *ComplianceSuite) TestModuleCapacity() {
	for i := 0; i < MaxModules; i++ {
		s.Require().NoError(s.mc.AddModule(s.ctx, deployer, s.module(domain.Country(i+1).String(), true)))
	}
	err := s.mc.AddModule(s.ctx, deployer, s.module("overflow", true))
	s.True(dErrors.Is(err, dErrors.CodeCapacityExceeded))
}

func (s *ComplianceSuite) TestEmptyChainAdmits() {
	s.True(s.mc.CanTransfer(s.ctx, s.transfer()))
}

func (s *ComplianceSuite) TestChainEvaluatesEveryModule() {
	a, b, c := s.module("a", true), s.module("b", false), s.module("c", true)
	for _, m := range []*stubModule{a, b, c} {
		s.Require().NoError(s.mc.AddModule(s.ctx, deployer, m))
	}

	ev := s.mc.Evaluate(s.ctx, s.transfer())
	s.False(ev.Allowed)
	s.Equal([]string{"b"}, ev.Rejected)
	s.Equal(1, a.checked)
	s.Equal(1, c.checked, "modules after a rejection are still evaluated")
}

func (s *ComplianceSuite) TestSettleNotifiesInOrder() {
	for _, name := range []string{"a", "b", "c"} {
		s.Require().NoError(s.mc.AddModule(s.ctx, deployer, s.module(name, true)))
	}

	settled := false
	err := s.mc.Settle(s.ctx, s.token.Address(), s.transfer(), func() error {
		settled = true
		return nil
	})
	s.Require().NoError(err)
	s.True(settled)
	s.Equal([]string{"transferred:a", "transferred:b", "transferred:c"}, s.journal.all())
}

func (s *ComplianceSuite) TestSettleRejected() {
	for _, m := range []*stubModule{s.module("a", true), s.module("b", false), s.module("c", true)} {
		s.Require().NoError(s.mc.AddModule(s.ctx, deployer, m))
	}

	settled := false
	err := s.mc.Settle(s.ctx, s.token.Address(), s.transfer(), func() error {
		settled = true
		return nil
	})
	s.True(dErrors.Is(err, dErrors.CodeComplianceRejected))
	s.False(settled)
	s.Empty(s.journal.all(), "no hook fires on rejection")
}

func (s *ComplianceSuite) TestSettleFailureSkipsHooks() {
	s.Require().NoError(s.mc.AddModule(s.ctx, deployer, s.module("a", true)))
	boom := errors.New("store down")
	err := s.mc.Settle(s.ctx, s.token.Address(), s.transfer(), func() error { return boom })
	s.ErrorIs(err, boom)
	s.Empty(s.journal.all())
}

func (s *ComplianceSuite) TestHooksRequireBoundToken() {
	s.Require().NoError(s.mc.AddModule(s.ctx, deployer, s.module("a", true)))

	err := s.mc.Transferred(s.ctx, stranger, s.transfer())
	s.True(dErrors.Is(err, dErrors.CodeForbidden))
	err = s.mc.Settle(s.ctx, stranger, s.transfer(), func() error { return nil })
	s.True(dErrors.Is(err, dErrors.CodeForbidden))

	s.Require().NoError(s.mc.Created(s.ctx, s.token.Address(), Party{Wallet: bob}, 5, time.Now()))
	s.Require().NoError(s.mc.Destroyed(s.ctx, s.token.Address(), Party{Wallet: bob}, 5, time.Now()))
	s.Require().NoError(s.mc.Transferred(s.ctx, s.token.Address(), s.transfer()))
	s.Equal([]string{"created:a", "destroyed:a", "transferred:a"}, s.journal.all())
}

func (s *ComplianceSuite) TestCheckTransferResolvesParties() {
	var seen Transfer
	rec := &recordingModule{stubModule: s.module("rec", true), seen: &seen}
	s.Require().NoError(s.mc.AddModule(s.ctx, deployer, rec))

	ev, err := s.mc.CheckTransfer(s.ctx, alice, bob, 7, time.Now())
	s.Require().NoError(err)
	s.True(ev.Allowed)
	s.Equal(domain.DeriveAddress("id-"+bob.Hex()), seen.To.Identity)
	s.Equal(domain.Country(250), seen.From.Country)

	s.Require().NoError(s.mc.UnbindToken(s.ctx, deployer, s.token.Address()))
	_, err = s.mc.CheckTransfer(s.ctx, alice, bob, 7, time.Now())
	s.True(dErrors.Is(err, dErrors.CodeInvalidState))
}

func (s *ComplianceSuite) TestCallModule() {
	s.Require().NoError(s.mc.AddModule(s.ctx, deployer, s.module("a", true)))

	s.Run("owner configures a bound module", func() {
		var called string
		err := s.mc.CallModule(s.ctx, deployer, "a", func(m Module) error {
			called = m.Name()
			return nil
		})
		s.Require().NoError(err)
		s.Equal("a", called)
		s.Equal(string(audit.EventModuleInteraction), s.emitter.Last().Action)
	})

	s.Run("unknown module", func() {
		err := s.mc.CallModule(s.ctx, deployer, "nope", func(Module) error { return nil })
		s.True(dErrors.Is(err, dErrors.CodeModuleNotBound))
	})

	s.Run("stranger", func() {
		err := s.mc.CallModule(s.ctx, stranger, "a", func(Module) error { return nil })
		s.True(dErrors.Is(err, dErrors.CodeNotOwner))
	})
}

func (s *ComplianceSuite) TestImmediateFirstHandover() {
	mc, err := New(domain.DeriveAddress("compliance-3"), deployer, WithImmediateFirstHandover())
	s.Require().NoError(err)
	s.Require().NoError(mc.TransferOwnership(s.ctx, deployer, operator))
	s.Equal(operator, mc.Owner())

	s.Require().NoError(mc.TransferOwnership(s.ctx, operator, stranger))
	s.Equal(operator, mc.Owner(), "later handovers are two-step")
	s.Equal(stranger, mc.PendingOwner())
}

type recordingModule struct {
	*stubModule
	seen *Transfer
}

func (m *recordingModule) CanTransfer(_ context.Context, t Transfer) bool {
	*m.seen = t
	return true
}
