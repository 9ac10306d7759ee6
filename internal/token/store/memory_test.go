package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"assetgate/internal/token"
	"assetgate/pkg/domain"
)

type InMemoryStoreSuite struct {
	suite.Suite
	ctx   context.Context
	store *InMemory
}

func TestInMemoryStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryStoreSuite))
}

func (s *InMemoryStoreSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = NewInMemory()
}

func (s *InMemoryStoreSuite) TestSetAndRead() {
	alice := domain.DeriveAddress("alice")
	bob := domain.DeriveAddress("bob")

	s.Require().NoError(s.store.Apply(s.ctx, token.Update{Balances: map[domain.Address]uint64{alice: 70, bob: 30}, TotalSupply: 100}))

	bal, err := s.store.Balance(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(uint64(70), bal)

	supply, err := s.store.TotalSupply(s.ctx)
	s.Require().NoError(err)
	s.Equal(uint64(100), supply)

	s.Run("unknown holder has zero balance", func() {
		bal, err := s.store.Balance(s.ctx, domain.DeriveAddress("nobody"))
		s.Require().NoError(err)
		s.Zero(bal)
	})
}

func (s *InMemoryStoreSuite) TestZeroBalanceIsDropped() {
	alice := domain.DeriveAddress("alice")
	s.Require().NoError(s.store.Apply(s.ctx, token.Update{Balances: map[domain.Address]uint64{alice: 5}, TotalSupply: 5}))
	s.Require().NoError(s.store.Apply(s.ctx, token.Update{Balances: map[domain.Address]uint64{alice: 0}}))

	all, err := s.store.Balances(s.ctx)
	s.Require().NoError(err)
	s.Empty(all)
}

func (s *InMemoryStoreSuite) TestBalancesReturnsCopy() {
	alice := domain.DeriveAddress("alice")
	s.Require().NoError(s.store.Apply(s.ctx, token.Update{Balances: map[domain.Address]uint64{alice: 5}, TotalSupply: 5}))

	all, err := s.store.Balances(s.ctx)
	s.Require().NoError(err)
	all[alice] = 1000

	bal, err := s.store.Balance(s.ctx, alice)
	s.Require().NoError(err)
	s.Equal(uint64(5), bal)
}

func (s *InMemoryStoreSuite) TestFreezesAndAllowances() {
	alice := domain.DeriveAddress("alice")
	bob := domain.DeriveAddress("bob")
	s.Require().NoError(s.store.Apply(s.ctx, token.Update{Balances: map[domain.Address]uint64{alice: 50}, TotalSupply: 50}))

	s.Require().NoError(s.store.Apply(s.ctx, token.Update{
		Freezes:    map[domain.Address]token.Freeze{alice: {Address: true, Tokens: 20}},
		Allowances: map[token.Allowance]uint64{{Owner: alice, Spender: bob}: 15},
	}))

	s.Run("freeze-only updates leave the supply alone", func() {
		supply, err := s.store.TotalSupply(s.ctx)
		s.Require().NoError(err)
		s.Equal(uint64(50), supply)
	})

	freezes, err := s.store.Freezes(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[domain.Address]token.Freeze{alice: {Address: true, Tokens: 20}}, freezes)

	allowances, err := s.store.Allowances(s.ctx)
	s.Require().NoError(err)
	s.Equal(map[token.Allowance]uint64{{Owner: alice, Spender: bob}: 15}, allowances)

	s.Run("zero values remove the entries", func() {
		s.Require().NoError(s.store.Apply(s.ctx, token.Update{
			Freezes:    map[domain.Address]token.Freeze{alice: {}},
			Allowances: map[token.Allowance]uint64{{Owner: alice, Spender: bob}: 0},
		}))
		freezes, err := s.store.Freezes(s.ctx)
		s.Require().NoError(err)
		s.Empty(freezes)
		allowances, err := s.store.Allowances(s.ctx)
		s.Require().NoError(err)
		s.Empty(allowances)
	})
}
