package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"assetgate/internal/admin"
	"assetgate/internal/compliance"
	modulestore "assetgate/internal/compliance/store"
	"assetgate/internal/factory"
	"assetgate/internal/identity/claims"
	"assetgate/internal/identity/storage"
	recordstore "assetgate/internal/identity/storage/store"
	jwttoken "assetgate/internal/jwt_token"
	"assetgate/internal/platform/config"
	"assetgate/internal/platform/httpserver"
	"assetgate/internal/platform/kafka"
	"assetgate/internal/platform/logger"
	"assetgate/internal/platform/metrics"
	"assetgate/internal/platform/postgres"
	"assetgate/internal/platform/redis"
	"assetgate/internal/token"
	balancestore "assetgate/internal/token/store"
	"assetgate/pkg/domain"
	audit "assetgate/pkg/platform/audit"
	"assetgate/pkg/platform/audit/publisher"
	auditmemory "assetgate/pkg/platform/audit/store/memory"
	auditpostgres "assetgate/pkg/platform/audit/store/postgres"
	"assetgate/pkg/platform/audit/worker"
	"assetgate/pkg/platform/middleware/auth"
	"assetgate/pkg/platform/middleware/request"
	"assetgate/pkg/platform/middleware/requesttime"
)

// main wires configuration, stores, the deployed suite, the admin surface and
// the audit relay, and runs until SIGINT or SIGTERM.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("assetgate stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("assetgate stopped")
}

func run(ctx context.Context, cfg config.Config, log *slog.Logger) error {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	infra, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer infra.close(log)

	pub, err := publisher.NewPublisher(ctx, infra.outbox,
		publisher.WithLogger(log),
		publisher.WithMetrics(publisher.NewMetricsWithRegistry(reg)),
	)
	if err != nil {
		return err
	}

	suiteCfg, err := cfg.Suite.FactoryConfig()
	if err != nil {
		return err
	}
	suite, err := factory.Deploy(ctx, suiteCfg, factory.Stores{
		Records:  infra.records,
		Balances: infra.balances,
		Modules:  infra.modules,
	},
		factory.WithLogger(log),
		factory.WithAuditPublisher(pub),
		factory.WithMetricsRegisterer(reg),
	)
	if err != nil {
		return err
	}
	log.InfoContext(ctx, "suite deployed",
		"token", suite.Token.Address().Hex(),
		"symbol", suiteCfg.Token.Symbol,
		"owner", suiteCfg.Owner.Hex(),
	)
	if cfg.Suite.AutoAcceptOwnership && suiteCfg.Owner != factory.Deployer {
		accepted, err := suite.AcceptOwnership(ctx, suiteCfg.Owner)
		if err != nil {
			return err
		}
		log.InfoContext(ctx, "ownership accepted on startup", "components", accepted)
	}

	handler, err := admin.New(admin.Services{
		Token:      suite.Token,
		Identities: suite.Registry,
		Compliance: suite.Compliance,
		Topics:     suite.Topics,
		Issuers:    suite.Issuers,
		Claims:     claims.NewService(suite.Claims, suite.Keys),
		Ownership:  suite,
		Events:     infra.outbox,
	}, log)
	if err != nil {
		return err
	}

	jwtService := jwttoken.NewJWTService(cfg.Auth.JWTSigningKey, cfg.Auth.JWTIssuer, cfg.Auth.JWTAudience)
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metrics.NewWithRegistry(reg).Middleware)
	r.Use(chimw.Recoverer)
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := infra.ready(r.Context()); err != nil {
			log.WarnContext(r.Context(), "readiness check failed", "error", err)
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	})
	r.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	r.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(jwtService.Middleware(), log))
		handler.Register(r)
	})

	srv := httpserver.New(cfg.Server, r)
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting assetgate", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if len(cfg.Kafka.Brokers) > 0 {
		client, err := kafka.NewClient(cfg.Kafka.Brokers)
		if err != nil {
			return err
		}
		defer client.Close()
		if err := kafka.EnsureTopic(ctx, client, cfg.Kafka.Topic, cfg.Kafka.Partitions, cfg.Kafka.Replication); err != nil {
			return err
		}
		sink := kafka.NewSink(client, cfg.Kafka.Topic, suite.Token.Address(),
			kafka.WithLogger(log),
			kafka.WithMetricsRegisterer(reg),
		)
		relay := worker.NewWorker(infra.outbox, sink, cfg.Kafka.RelayInterval, cfg.Kafka.RelayBatch, log)
		g.Go(func() error {
			log.Info("audit relay started", "topic", cfg.Kafka.Topic)
			if err := relay.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	return g.Wait()
}

type stores struct {
	db       *sql.DB
	redis    *redis.Client
	records  storage.RecordStore
	outbox   audit.Outbox
	balances func(domain.Address) token.BalanceStore
	modules  func(domain.Address) compliance.StateStore
}

// openStores picks Postgres for identity records and the audit outbox, and
// Redis for the ledger and the module chain, falling back to memory for
// whichever is unconfigured.
func openStores(ctx context.Context, cfg config.Config, log *slog.Logger) (*stores, error) {
	s := &stores{}
	var err error

	if s.db, err = postgres.Open(ctx, cfg.Postgres); err != nil {
		return nil, err
	}
	if s.db != nil {
		records := recordstore.NewPostgres(s.db)
		outbox := auditpostgres.New(s.db)
		if err := postgres.Migrate(ctx, records, outbox); err != nil {
			s.db.Close()
			return nil, err
		}
		s.records, s.outbox = records, outbox
		log.Info("using postgres for identity records and audit outbox")
	} else {
		s.records, s.outbox = recordstore.NewInMemory(), auditmemory.NewInMemoryStore()
		log.Warn("ASSETGATE_POSTGRES_URL not set, identity records and audit events are kept in memory")
	}

	if s.redis, err = redis.New(ctx, cfg.Redis); err != nil {
		s.close(log)
		return nil, err
	}
	if s.redis != nil {
		client := s.redis.Client
		s.balances = func(t domain.Address) token.BalanceStore { return balancestore.NewRedis(client, t) }
		s.modules = func(mc domain.Address) compliance.StateStore { return modulestore.NewRedis(client, mc) }
		log.Info("using redis for the ledger and compliance modules")
	} else {
		s.balances = func(domain.Address) token.BalanceStore { return balancestore.NewInMemory() }
		s.modules = func(domain.Address) compliance.StateStore { return modulestore.NewInMemory() }
		log.Warn("ASSETGATE_REDIS_URL not set, the ledger and compliance modules are kept in memory")
	}
	return s, nil
}

// ready pings whichever backing stores are configured.
func (s *stores) ready(ctx context.Context) error {
	if s.db != nil {
		if err := s.db.PingContext(ctx); err != nil {
			return fmt.Errorf("postgres: %w", err)
		}
	}
	if s.redis != nil {
		if err := s.redis.Health(ctx); err != nil {
			return fmt.Errorf("redis: %w", err)
		}
	}
	return nil
}

func (s *stores) close(log *slog.Logger) {
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Warn("failed to close redis", "error", err)
		}
	}
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			log.Warn("failed to close postgres", "error", err)
		}
	}
}
