// Command server wires the pre-qualification gateway: stores, cache, audit
// sink, rules engine and HTTP transport. Business logic lives in the internal
// service packages; main only assembles and supervises them.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"prequal/internal/audit"
	"prequal/internal/bre"
	bremetrics "prequal/internal/bre/metrics"
	"prequal/internal/bureau"
	"prequal/internal/catalog"
	httpapi "prequal/internal/http"
	"prequal/internal/platform/config"
	"prequal/internal/platform/httpserver"
	"prequal/internal/platform/logger"
	"prequal/internal/platform/postgres"
	"prequal/internal/platform/redis"
	"prequal/internal/prequal"
	prequalhandler "prequal/internal/prequal/handler"
	"prequal/internal/sso"
)

func main() {
	cfg := config.FromEnv()
	log := logger.New()
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	checks := map[string]httpapi.HealthChecker{}

	// Stores: Postgres when configured, seeded fixtures otherwise.
	var (
		bureauStore  bureau.Store
		catalogStore catalog.Store
	)
	if cfg.PostgresDSN != "" {
		pool, err := postgres.NewPool(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres pool init failed", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		db, err := postgres.NewDB(ctx, cfg.PostgresDSN)
		if err != nil {
			log.Error("postgres init failed", "error", err)
			os.Exit(1)
		}
		defer db.Close()
		bureauStore = bureau.NewPostgres(pool)
		catalogStore = catalog.NewPostgres(db)
		checks["postgres"] = func(r *http.Request) error { return pool.Ping(r.Context()) }
		log.Info("using postgres stores")
	} else {
		bureauStore = bureau.NewInMemory()
		catalogStore = catalog.NewInMemory()
		log.Info("using in-memory fixture stores")
	}

	// Offer cache: Redis when configured.
	var cache prequal.ResultCache = prequal.NewMemoryCache()
	redisClient, err := redis.New(cfg.Redis)
	if err != nil {
		log.Error("redis init failed", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		cache = prequal.NewRedisCache(redisClient)
		checks["redis"] = func(r *http.Request) error { return redisClient.Health(r.Context()) }
		log.Info("using redis offer cache")
	}

	// Audit trail: Kafka when configured, in-process buffer otherwise.
	var sink audit.Sink = audit.NewMemorySink()
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink, err := audit.NewKafkaSink(cfg.KafkaBrokers, cfg.AuditTopic)
		if err != nil {
			log.Error("kafka sink init failed", "error", err)
			os.Exit(1)
		}
		defer kafkaSink.Close()
		sink = kafkaSink
		log.Info("publishing audit events to kafka", "topic", cfg.AuditTopic)
	}
	publisher := audit.NewPublisher(sink, log)
	go publisher.Run(ctx)

	engine := bre.New(bre.WithMetrics(bremetrics.New()))

	svc, err := prequal.NewService(bureauStore, catalogStore, engine,
		prequal.WithCache(cache),
		prequal.WithAudit(publisher),
		prequal.WithLogger(log),
	)
	if err != nil {
		log.Error("service init failed", "error", err)
		os.Exit(1)
	}

	ssoService, err := sso.NewService(cfg.JWTSigningKey, cfg.PartnerSecretHash, log)
	if err != nil {
		log.Error("sso init failed", "error", err)
		os.Exit(1)
	}

	router := httpapi.NewRouter(log, checks,
		prequalhandler.New(svc, log),
		sso.NewHandler(ssoService, log),
	)
	srv := httpserver.New(cfg.Addr, router)

	go func() {
		log.Info("starting prequal gateway", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("graceful shutdown failed", "error", err)
	}
	publisher.Wait()
}
