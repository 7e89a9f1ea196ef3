package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/feedback-service/internal/api/http"
	"github.com/spec-kit/feedback-service/internal/api/http/handlers"
	"github.com/spec-kit/feedback-service/internal/config"
	"github.com/spec-kit/feedback-service/internal/events"
	"github.com/spec-kit/feedback-service/internal/observability"
	"github.com/spec-kit/feedback-service/internal/persistence"
	"github.com/spec-kit/feedback-service/internal/repository"
	"github.com/spec-kit/feedback-service/internal/service"
	"github.com/spec-kit/feedback-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps := map[string]handlers.Pinger{}
	var feedbackRepo repository.FeedbackRepository

	switch cfg.Store.Driver {
	case config.StoreDriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		defer pg.Close()

		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		feedbackRepo = repository.NewFeedbackRepository(pg.PoolHandle())
		deps["postgres"] = pg
	case config.StoreDriverSQLite:
		db, err := persistence.NewSQLite(cfg.Store.SQLitePath, logger)
		if err != nil {
			logger.Fatal("failed to open sqlite", zap.Error(err))
		}
		defer db.Close()
		feedbackRepo = repository.NewGormFeedbackRepository(db.DB)
		deps["sqlite"] = db
	default:
		logger.Info("using in-memory feedback store")
		feedbackRepo = repository.NewMemoryFeedbackRepository()
	}

	if cfg.Redis.CacheEnabled {
		redis := persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		feedbackRepo = repository.NewCachedFeedbackRepository(feedbackRepo, redis.Client, cfg.Redis.CacheTTL(), logger)
		deps["redis"] = redis
	}

	dispatcher := events.NewInMemoryDispatcher()
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, logger, cfg.Notification))

	clock := service.NewClock(nil)
	feedbackService := service.NewFeedbackService(service.FeedbackDependencies{
		FeedbackRepo: feedbackRepo,
		Dispatcher:   dispatcher,
		Clock:        clock,
		Logger:       logger,
	})

	if cfg.Seed.OnStart {
		if _, err := service.NewSeeder(feedbackRepo, clock, logger).Seed(ctx); err != nil {
			logger.Fatal("failed to seed feedback", zap.Error(err))
		}
	}

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterMiddlewares(app, httptransport.MiddlewareConfig{
		Logger:  logger,
		Metrics: metrics,
		Timeout: cfg.App.RequestTimeout(),
		CORS:    cfg.CORS,
	})

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:   handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, deps, metrics),
		Feedback: handlers.NewFeedbackHandler(feedbackService),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
