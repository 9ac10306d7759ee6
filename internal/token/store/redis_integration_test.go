//go:build integration

package store_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/suite"

	"assetgate/internal/token"
	"assetgate/internal/token/store"
	"assetgate/pkg/domain"
	"assetgate/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *store.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	mgr := containers.GetManager()
	s.redis = mgr.GetRedis(s.T())
	s.store = store.NewRedis(s.redis.Client, domain.DeriveAddress("token"))
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTrip() {
	ctx := context.Background()
	alice := domain.DeriveAddress("alice")
	bob := domain.DeriveAddress("bob")

	s.Require().NoError(s.store.Apply(ctx, token.Update{Balances: map[domain.Address]uint64{alice: 600, bob: 400}, TotalSupply: 1000}))

	bal, err := s.store.Balance(ctx, bob)
	s.Require().NoError(err)
	s.Equal(uint64(400), bal)

	supply, err := s.store.TotalSupply(ctx)
	s.Require().NoError(err)
	s.Equal(uint64(1000), supply)

	all, err := s.store.Balances(ctx)
	s.Require().NoError(err)
	s.Equal(map[domain.Address]uint64{alice: 600, bob: 400}, all)
}

func (s *RedisStoreSuite) TestEmptyLedger() {
	ctx := context.Background()
	bal, err := s.store.Balance(ctx, domain.DeriveAddress("nobody"))
	s.Require().NoError(err)
	s.Zero(bal)

	supply, err := s.store.TotalSupply(ctx)
	s.Require().NoError(err)
	s.Zero(supply)
}

func (s *RedisStoreSuite) TestZeroBalanceRemovesField() {
	ctx := context.Background()
	alice := domain.DeriveAddress("alice")
	s.Require().NoError(s.store.Apply(ctx, token.Update{Balances: map[domain.Address]uint64{alice: 10}, TotalSupply: 10}))
	s.Require().NoError(s.store.Apply(ctx, token.Update{Balances: map[domain.Address]uint64{alice: 0}, TotalSupply: 0}))

	exists, err := s.redis.Client.HExists(ctx, "assetgate:"+domain.DeriveAddress("token").Hex()+":balances", alice.Hex()).Result()
	s.Require().NoError(err)
	s.False(exists)
}

// TestConcurrentDisjointWrites writes disjoint holders from many goroutines
// and expects every write to land.
func (s *RedisStoreSuite) TestConcurrentDisjointWrites() {
	ctx := context.Background()
	const writers = 20
	var wg sync.WaitGroup
	for i := range writers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			holder := domain.DeriveAddress("holder-" + string(rune('a'+i)))
			s.NoError(s.store.Apply(ctx, token.Update{Balances: map[domain.Address]uint64{holder: uint64(i + 1)}, TotalSupply: uint64(i+1)}))
		}(i)
	}
	wg.Wait()

	all, err := s.store.Balances(ctx)
	s.Require().NoError(err)
	s.Len(all, writers)
}

func (s *RedisStoreSuite) TestKeyLayout() {
	ctx := context.Background()
	s.Require().NoError(s.store.Apply(ctx, token.Update{Balances: map[domain.Address]uint64{domain.DeriveAddress("alice"): 1}, TotalSupply: 1}))

	keys, err := s.redis.Keys(ctx, "assetgate:*")
	s.Require().NoError(err)
	prefix := "assetgate:" + domain.DeriveAddress("token").Hex()
	s.ElementsMatch([]string{prefix + ":balances", prefix + ":supply"}, keys)
}

func (s *RedisStoreSuite) TestFreezesAndAllowancesSurviveReopen() {
	ctx := context.Background()
	alice := domain.DeriveAddress("alice")
	bob := domain.DeriveAddress("bob")
	s.Require().NoError(s.store.Apply(ctx, token.Update{
		Balances:    map[domain.Address]uint64{alice: 80},
		TotalSupply: 80,
		Freezes:     map[domain.Address]token.Freeze{alice: {Address: true, Tokens: 30}, bob: {Tokens: 5}},
		Allowances:  map[token.Allowance]uint64{{Owner: alice, Spender: bob}: 12},
	}))

	reopened := store.NewRedis(s.redis.Client, domain.DeriveAddress("token"))
	freezes, err := reopened.Freezes(ctx)
	s.Require().NoError(err)
	s.Equal(map[domain.Address]token.Freeze{
		alice: {Address: true, Tokens: 30},
		bob:   {Tokens: 5},
	}, freezes)

	allowances, err := reopened.Allowances(ctx)
	s.Require().NoError(err)
	s.Equal(map[token.Allowance]uint64{{Owner: alice, Spender: bob}: 12}, allowances)

	s.Run("unfreezing clears both hashes", func() {
		s.Require().NoError(reopened.Apply(ctx, token.Update{Freezes: map[domain.Address]token.Freeze{alice: {}}}))
		freezes, err := reopened.Freezes(ctx)
		s.Require().NoError(err)
		s.NotContains(freezes, alice)
		supply, err := reopened.TotalSupply(ctx)
		s.Require().NoError(err)
		s.Equal(uint64(80), supply)
	})
}
