package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	authhandler "certledger/internal/auth/handler"
	authservice "certledger/internal/auth/service"
	"certledger/internal/jwttoken"
	"certledger/internal/platform/config"
	"certledger/internal/platform/httpserver"
	"certledger/internal/platform/logger"
	platformmetrics "certledger/internal/platform/metrics"
	"certledger/internal/platform/middleware"
	platformredis "certledger/internal/platform/redis"
	"certledger/internal/registry/access"
	"certledger/internal/registry/cache"
	"certledger/internal/registry/events"
	registryhandler "certledger/internal/registry/handler"
	registrymetrics "certledger/internal/registry/metrics"
	"certledger/internal/registry/models"
	"certledger/internal/registry/service"
	"certledger/internal/registry/store"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Registry logic lives in internal/registry.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	if err := run(cfg, log); err != nil {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Server, log *slog.Logger) error {
	ctx := context.Background()

	// Persistence: Postgres when configured, in-memory otherwise.
	var (
		certStore  store.Store
		adminStore access.AdminStore
		db         *sql.DB
	)
	if cfg.PostgresURL != "" {
		var err error
		db, err = sql.Open("postgres", cfg.PostgresURL)
		if err != nil {
			return err
		}
		defer db.Close()

		pgStore := store.NewPostgres(db)
		if err := pgStore.EnsureSchema(ctx); err != nil {
			return err
		}
		pgAdmins := access.NewPostgresAdminStore(db)
		if err := pgAdmins.EnsureSchema(ctx); err != nil {
			return err
		}
		certStore, adminStore = pgStore, pgAdmins
		log.Info("using postgres stores")
	} else {
		certStore, adminStore = store.NewInMemory(), access.NewInMemoryAdminStore()
		log.Info("using in-memory stores")
	}

	ac, err := access.New(models.Identity(cfg.OwnerIdentity), adminStore)
	if err != nil {
		return err
	}

	// Events: Kafka when configured, structured log otherwise.
	var publisher events.Publisher
	if len(cfg.KafkaBrokers) > 0 {
		kafkaPublisher, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic, log)
		if err != nil {
			return err
		}
		publisher = kafkaPublisher
		log.Info("publishing registry events to kafka", "topic", cfg.KafkaTopic)
	} else {
		publisher = events.NewLogPublisher(log)
	}
	defer publisher.Close()

	registry := service.New(ac, certStore,
		service.WithPublisher(publisher),
		service.WithMetrics(registrymetrics.New()),
		service.WithLogger(log),
	)

	// Operator sessions.
	passwordHash := []byte(cfg.AdminPasswordHash)
	if len(passwordHash) == 0 {
		passwordHash, err = authservice.HashPassword(cfg.AdminPassword)
		if err != nil {
			return err
		}
	}
	jwtService := jwttoken.NewService(cfg.JWTSigningKey, "certledger", "certledger-admin")
	authSvc := authservice.New(cfg.AdminUsername, passwordHash, jwtService, log)

	// Optional Redis verification cache.
	var handlerOpts []registryhandler.Option
	redisClient, err := platformredis.New(cfg.RedisURL)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
		handlerOpts = append(handlerOpts,
			registryhandler.WithCache(cache.NewVerification(redisClient, cfg.CacheTTL, log)))
		log.Info("verification cache enabled", "ttl", cfg.CacheTTL)
	}

	httpMetrics := platformmetrics.New()

	router := chi.NewRouter()
	router.Use(middleware.Recovery(log))
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger(log))
	router.Use(middleware.Timeout(30 * time.Second))
	router.Use(middleware.ContentTypeJSON)
	router.Use(middleware.Latency(httpMetrics))

	router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	router.Handle("/metrics", promhttp.Handler())

	authhandler.New(authSvc, log).Register(router)
	registryhandler.New(registry, authSvc, log, handlerOpts...).Register(router)

	srv := httpserver.New(cfg.Addr, router)

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		log.Info("starting certledger", "addr", cfg.Addr, "owner", cfg.OwnerIdentity)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	group.Go(func() error {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
		select {
		case <-quit:
		case <-groupCtx.Done():
			return groupCtx.Err()
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return group.Wait()
}
