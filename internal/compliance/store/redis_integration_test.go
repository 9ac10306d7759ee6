//go:build integration

package store_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/suite"

	"assetgate/internal/compliance"
	"assetgate/internal/compliance/store"
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
	s.store = store.NewRedis(s.redis.Client, domain.DeriveAddress("compliance"))
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestRoundTripInSeqOrder() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, compliance.ModuleRecord{Name: "limit", Kind: "transfer_limit", Seq: 3, State: json.RawMessage(`{"limits":[]}`)}))
	s.Require().NoError(s.store.Save(ctx, compliance.ModuleRecord{Name: "cap", Kind: "max_balance", Seq: 1, State: json.RawMessage(`{"max_balance":100}`)}))

	records, err := store.NewRedis(s.redis.Client, domain.DeriveAddress("compliance")).Load(ctx)
	s.Require().NoError(err)
	s.Require().Len(records, 2)
	s.Equal("cap", records[0].Name)
	s.Equal("max_balance", records[0].Kind)
	s.JSONEq(`{"max_balance":100}`, string(records[0].State))
	s.Equal(uint64(3), records[1].Seq)
}

func (s *RedisStoreSuite) TestDelete() {
	ctx := context.Background()
	s.Require().NoError(s.store.Save(ctx, compliance.ModuleRecord{Name: "cap", Seq: 1, State: json.RawMessage(`{}`)}))
	s.Require().NoError(s.store.Delete(ctx, "cap"))

	keys, err := s.redis.Keys(ctx, "assetgate:*")
	s.Require().NoError(err)
	s.Empty(keys, "deleting the last field drops the hash")
}
