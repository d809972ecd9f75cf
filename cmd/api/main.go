package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/ticket-tracker/internal/api/http"
	"github.com/spec-kit/ticket-tracker/internal/api/http/handlers"
	"github.com/spec-kit/ticket-tracker/internal/auth"
	"github.com/spec-kit/ticket-tracker/internal/cache"
	"github.com/spec-kit/ticket-tracker/internal/config"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/observability"
	"github.com/spec-kit/ticket-tracker/internal/persistence"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	"github.com/spec-kit/ticket-tracker/internal/repository/gormstore"
	"github.com/spec-kit/ticket-tracker/internal/service"
	"github.com/spec-kit/ticket-tracker/internal/worker"
	"github.com/spec-kit/ticket-tracker/migrations"
)

const metricsNamespace = "ticket_tracker"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger, cfg.App)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, storeCheck, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	metrics, err := observability.NewMetrics(metricsNamespace, prometheus.DefaultRegisterer)
	if err != nil {
		logger.Fatal("failed to register metrics", zap.Error(err))
	}

	dispatcher := events.NewInMemoryDispatcher()
	clock := service.SystemClock{}

	queryDeps := service.QueryDependencies{
		ViewRepo:       store.Views,
		UserTicketRepo: store.UserTickets,
		Logger:         logger,
	}
	checks := []handlers.DependencyCheck{storeCheck}
	if client := redis.ClientHandle(); client != nil {
		viewCache := cache.NewRedisViewCache(client, cfg.ViewCache.TTL(), metrics)
		queryDeps.Cache = viewCache
		worker.StartViewCacheWorker(dispatcher, viewCache, logger)
		checks = append(checks, handlers.DependencyCheck{Name: "redis", Ping: redis.Ping})
	}

	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo: store.Tickets,
		Dispatcher: dispatcher,
		Clock:      clock,
		Logger:     logger,
	})
	associationService := service.NewAssociationService(service.AssociationDependencies{
		ProductTicketRepo: store.ProductTickets,
		UserTicketRepo:    store.UserTickets,
		Dispatcher:        dispatcher,
		Clock:             clock,
		Logger:            logger,
	})
	queryService := service.NewQueryService(queryDeps)
	catalogService := service.NewCatalogService(service.CatalogDependencies{
		CatalogRepo: store.Catalog,
		Dispatcher:  dispatcher,
		Clock:       clock,
		Logger:      logger,
	})

	tokens := auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTLMinutes)

	app := fiber.New(fiber.Config{AppName: cfg.App.Name})
	httptransport.RegisterPrometheus(app, fiberprometheus.NewWithRegistry(
		prometheus.DefaultRegisterer, cfg.App.Name, "http", "", nil,
	))
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())
	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, checks...),
		Tickets:        handlers.NewTicketsHandler(ticketService, associationService, queryService),
		Catalog:        handlers.NewCatalogHandler(catalogService),
		AuthMiddleware: auth.NewAuthMiddleware(tokens),
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

// openStore connects the configured backend and returns its repositories,
// a readiness check and a closer.
func openStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (repository.Store, handlers.DependencyCheck, func()) {
	if cfg.Store.Driver == config.StoreDriverPostgres {
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			logger.Fatal("failed to connect postgres", zap.Error(err))
		}
		if cfg.Postgres.RunMigrations {
			if err := persistence.RunMigrations(ctx, pg.PoolHandle(), migrations.Files, logger); err != nil {
				logger.Fatal("failed to run migrations", zap.Error(err))
			}
		}
		check := handlers.DependencyCheck{Name: "postgres", Ping: pg.Ping}
		return repository.NewPostgresStore(pg.PoolHandle()), check, pg.Close
	}

	db, err := persistence.OpenGorm(cfg.Store, logger)
	if err != nil {
		logger.Fatal("failed to open store", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	if err := gormstore.AutoMigrate(db); err != nil {
		logger.Fatal("failed to migrate store", zap.Error(err))
	}
	check := handlers.DependencyCheck{
		Name: cfg.Store.Driver,
		Ping: func(ctx context.Context) error { return persistence.PingGorm(ctx, db) },
	}
	return gormstore.NewStore(db), check, func() { persistence.CloseGorm(db) }
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
