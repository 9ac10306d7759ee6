// Package config loads process configuration from ASSETGATE_* environment
// variables.
package config

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"

	"assetgate/internal/compliance/modules"
	"assetgate/internal/factory"
	"assetgate/internal/token"
	"assetgate/pkg/domain"
)

// Config is the full process configuration.
type Config struct {
	Server   Server
	Log      Log
	Auth     Auth
	Suite    Suite
	Postgres PostgresConfig
	Redis    RedisConfig
	Kafka    KafkaConfig
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `env:"ASSETGATE_ADDR"             envDefault:":8080"`
	ReadTimeout     time.Duration `env:"ASSETGATE_READ_TIMEOUT"     envDefault:"15s"`
	WriteTimeout    time.Duration `env:"ASSETGATE_WRITE_TIMEOUT"    envDefault:"30s"`
	IdleTimeout     time.Duration `env:"ASSETGATE_IDLE_TIMEOUT"     envDefault:"60s"`
	ShutdownTimeout time.Duration `env:"ASSETGATE_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Log selects the slog handler.
type Log struct {
	Level  string `env:"ASSETGATE_LOG_LEVEL"  envDefault:"info"`
	Format string `env:"ASSETGATE_LOG_FORMAT" envDefault:"json"`
}

// Auth configures admin bearer tokens.
type Auth struct {
	JWTSigningKey string        `env:"ASSETGATE_JWT_SIGNING_KEY" envDefault:"dev-secret-key-change-in-production"`
	JWTIssuer     string        `env:"ASSETGATE_JWT_ISSUER"      envDefault:"assetgate"`
	JWTAudience   string        `env:"ASSETGATE_JWT_AUDIENCE"    envDefault:"assetgate-admin"`
	TokenTTL      time.Duration `env:"ASSETGATE_JWT_TTL"         envDefault:"1h"`
}

// Suite describes the deployment seeded at startup. TrustedIssuers and
// Modules are JSON documents.
type Suite struct {
	Owner               string   `env:"ASSETGATE_OWNER"`
	AutoAcceptOwnership bool     `env:"ASSETGATE_AUTO_ACCEPT_OWNERSHIP" envDefault:"false"`
	TokenName           string   `env:"ASSETGATE_TOKEN_NAME"            envDefault:"AssetGate Security"`
	TokenSymbol         string   `env:"ASSETGATE_TOKEN_SYMBOL"          envDefault:"AGS"`
	TokenDecimals       uint8    `env:"ASSETGATE_TOKEN_DECIMALS"        envDefault:"0"`
	OnchainID           string   `env:"ASSETGATE_TOKEN_ONCHAIN_ID"`
	ClaimTopics         []uint64 `env:"ASSETGATE_CLAIM_TOPICS"          envSeparator:","`
	Agents              []string `env:"ASSETGATE_AGENTS"                envSeparator:","`
	TrustedIssuers      string   `env:"ASSETGATE_TRUSTED_ISSUERS"`
	Modules             string   `env:"ASSETGATE_COMPLIANCE_MODULES"`
}

// PostgresConfig selects the identity record store and audit outbox. An
// empty URL keeps both in memory.
type PostgresConfig struct {
	URL          string `env:"ASSETGATE_POSTGRES_URL"`
	MaxOpenConns int    `env:"ASSETGATE_POSTGRES_MAX_OPEN_CONNS" envDefault:"10"`
}

// RedisConfig selects the balance store. An empty URL keeps balances in
// memory.
type RedisConfig struct {
	URL          string        `env:"ASSETGATE_REDIS_URL"`
	PoolSize     int           `env:"ASSETGATE_REDIS_POOL_SIZE"      envDefault:"10"`
	MinIdleConns int           `env:"ASSETGATE_REDIS_MIN_IDLE_CONNS" envDefault:"2"`
	DialTimeout  time.Duration `env:"ASSETGATE_REDIS_DIAL_TIMEOUT"   envDefault:"5s"`
	ReadTimeout  time.Duration `env:"ASSETGATE_REDIS_READ_TIMEOUT"   envDefault:"3s"`
	WriteTimeout time.Duration `env:"ASSETGATE_REDIS_WRITE_TIMEOUT"  envDefault:"3s"`
}

// KafkaConfig enables the audit relay when Brokers is set.
type KafkaConfig struct {
	Brokers       []string      `env:"ASSETGATE_KAFKA_BROKERS"       envSeparator:","`
	Topic         string        `env:"ASSETGATE_KAFKA_TOPIC"         envDefault:"assetgate.audit"`
	Partitions    int32         `env:"ASSETGATE_KAFKA_PARTITIONS"    envDefault:"1"`
	Replication   int16         `env:"ASSETGATE_KAFKA_REPLICATION"   envDefault:"1"`
	RelayInterval time.Duration `env:"ASSETGATE_RELAY_INTERVAL"      envDefault:"1s"`
	RelayBatch    int           `env:"ASSETGATE_RELAY_BATCH"         envDefault:"100"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// FactoryConfig turns the suite settings into a deployment description.
func (s Suite) FactoryConfig() (factory.Config, error) {
	owner := factory.Deployer
	if s.Owner != "" {
		var err error
		if owner, err = domain.ParseAddress(s.Owner); err != nil {
			return factory.Config{}, fmt.Errorf("ASSETGATE_OWNER: %w", err)
		}
	}
	info := token.Info{Name: s.TokenName, Symbol: s.TokenSymbol, Decimals: s.TokenDecimals}
	if s.OnchainID != "" {
		id, err := domain.ParseAddress(s.OnchainID)
		if err != nil {
			return factory.Config{}, fmt.Errorf("ASSETGATE_TOKEN_ONCHAIN_ID: %w", err)
		}
		info.OnchainID = id
	}
	cfg := factory.Config{Owner: owner, Token: info}

	for _, t := range s.ClaimTopics {
		cfg.ClaimTopics = append(cfg.ClaimTopics, domain.Topic(t))
	}
	for _, raw := range s.Agents {
		agent, err := domain.ParseAddress(raw)
		if err != nil {
			return factory.Config{}, fmt.Errorf("ASSETGATE_AGENTS: %w", err)
		}
		cfg.Agents = append(cfg.Agents, agent)
	}
	if s.TrustedIssuers != "" {
		var issuers []struct {
			Issuer domain.Address `json:"issuer"`
			Topics []domain.Topic `json:"topics"`
		}
		if err := json.Unmarshal([]byte(s.TrustedIssuers), &issuers); err != nil {
			return factory.Config{}, fmt.Errorf("ASSETGATE_TRUSTED_ISSUERS: %w", err)
		}
		for _, ti := range issuers {
			cfg.TrustedIssuers = append(cfg.TrustedIssuers, factory.IssuerConfig{Issuer: ti.Issuer, Topics: ti.Topics})
		}
	}
	if s.Modules != "" {
		var mods []modules.Config
		if err := json.Unmarshal([]byte(s.Modules), &mods); err != nil {
			return factory.Config{}, fmt.Errorf("ASSETGATE_COMPLIANCE_MODULES: %w", err)
		}
		cfg.Modules = mods
	}
	return cfg, nil
}
