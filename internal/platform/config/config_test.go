package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assetgate/internal/compliance/modules"
	"assetgate/internal/factory"
	"assetgate/pkg/domain"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, "assetgate.audit", cfg.Kafka.Topic)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 30*time.Second, cfg.Server.WriteTimeout)
}

func TestFactoryConfig(t *testing.T) {
	owner := domain.DeriveAddress("owner")
	issuer := domain.DeriveAddress("issuer")
	agent := domain.DeriveAddress("agent")

	t.Setenv("ASSETGATE_OWNER", owner.Hex())
	t.Setenv("ASSETGATE_TOKEN_SYMBOL", "BND")
	t.Setenv("ASSETGATE_CLAIM_TOPICS", "1,7")
	t.Setenv("ASSETGATE_AGENTS", agent.Hex())
	t.Setenv("ASSETGATE_TRUSTED_ISSUERS", `[{"issuer":"`+issuer.Hex()+`","topics":[1,7]}]`)
	t.Setenv("ASSETGATE_COMPLIANCE_MODULES", `[{"kind":"max_balance","name":"cap","max_balance":1000}]`)

	cfg, err := Load()
	require.NoError(t, err)
	fc, err := cfg.Suite.FactoryConfig()
	require.NoError(t, err)

	assert.Equal(t, owner, fc.Owner)
	assert.Equal(t, "BND", fc.Token.Symbol)
	assert.Equal(t, []domain.Topic{1, 7}, fc.ClaimTopics)
	assert.Equal(t, []domain.Address{agent}, fc.Agents)
	assert.Equal(t, []factory.IssuerConfig{{Issuer: issuer, Topics: []domain.Topic{1, 7}}}, fc.TrustedIssuers)
	require.Len(t, fc.Modules, 1)
	assert.Equal(t, modules.KindMaxBalance, fc.Modules[0].Kind)
	assert.Equal(t, uint64(1000), fc.Modules[0].MaxBalance)
}

func TestFactoryConfigDefaultsToDeployer(t *testing.T) {
	fc, err := Suite{TokenSymbol: "X"}.FactoryConfig()
	require.NoError(t, err)
	assert.Equal(t, factory.Deployer, fc.Owner)
}

func TestFactoryConfigRejectsBadOwner(t *testing.T) {
	_, err := Suite{Owner: "not-an-address"}.FactoryConfig()
	assert.Error(t, err)
}
