package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/db"
	"github.com/gokatarajesh/trivia-api/internal/db/repository"
	"github.com/gokatarajesh/trivia-api/internal/logging"
	"github.com/gokatarajesh/trivia-api/internal/question"
	"github.com/gokatarajesh/trivia-api/internal/server"
)

// Application aggregates shared infrastructure (store, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	warmer    *question.CacheWarmer
	bgCancels []context.CancelFunc
}

// New bootstraps logger, record store, optional Redis cache and HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Str("store", cfg.StoreDriver).Msg("starting application bootstrap")

	a := &Application{cfg: cfg, logger: logger}
	deps := map[string]server.Pinger{}

	var (
		questions  question.QuestionStore
		categories question.CategoryStore
	)
	switch cfg.StoreDriver {
	case config.DriverMemory:
		mem := repository.NewMemory(repository.DefaultCategories()...)
		questions, categories = mem.Questions(), mem.Categories()
		deps["store"] = mem
		logger.Warn().Msg("using in-memory store; data is lost on restart")
	default:
		if cfg.Postgres.MigrateOnStart {
			if err := migrate(ctx, cfg.Postgres.DSN()); err != nil {
				return nil, err
			}
			logger.Info().Msg("migrations applied")
		}
		pool, err := pgxpool.New(ctx, cfg.Postgres.DSN())
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		a.pool = pool
		questions = repository.NewQuestionRepository(pool)
		categories = repository.NewCategoryRepository(pool)
		deps["postgres"] = pool
	}

	if cfg.Redis.Addr != "" {
		a.redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			DB:       cfg.Redis.DB,
			PoolSize: cfg.Redis.PoolSize,
		})
		cache := question.NewCategoryCache(categories, a.redis, cfg.Cache.CategoryTTL, logger)
		categories = cache
		deps["redis"] = server.PingFunc(func(ctx context.Context) error { return a.redis.Ping(ctx).Err() })

		if cfg.Cache.WarmInterval > 0 {
			a.warmer = question.NewCacheWarmer(question.RefreshFunc(func(ctx context.Context) error {
				_, err := cache.Refresh(ctx)
				return err
			}), cfg.Cache.WarmInterval, logger)
		}
	} else {
		logger.Warn().Msg("REDIS_ADDR not configured; category cache disabled")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	questionSvc := question.NewService(questions, categories, logger, question.ServiceOptions{
		Metrics: question.NewMetrics(registry),
	})
	questionHTTP := question.NewHTTPHandlers(questionSvc, logger)

	a.http = server.NewHTTPServer(cfg, logger, server.Options{
		Questions:    questionHTTP,
		Dependencies: deps,
		Registerer:   registry,
		Gatherer:     registry,
	})
	return a, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	if a.warmer != nil {
		a.warmer.Stop()
	}
	for _, cancel := range a.bgCancels {
		cancel()
	}

	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			a.logger.Error().Err(err).Msg("redis shutdown error")
		}
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.warmer == nil {
		return
	}
	bgCtx, cancel := context.WithCancel(ctx)
	a.bgCancels = append(a.bgCancels, cancel)
	go func() {
		if err := a.warmer.Run(bgCtx); err != nil && err != context.Canceled {
			a.logger.Warn().Err(err).Msg("category cache warmer stopped")
		}
	}()
}

func migrate(ctx context.Context, dsn string) error {
	conn, err := db.Open(ctx, dsn)
	if err != nil {
		return err
	}
	defer conn.Close()
	if err := db.Migrate(ctx, conn, db.CommandUp); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
