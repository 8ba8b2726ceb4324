package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lumis/servicedesk/internal/api/http"
	"github.com/lumis/servicedesk/internal/api/http/handlers"
	"github.com/lumis/servicedesk/internal/assign"
	"github.com/lumis/servicedesk/internal/auth"
	"github.com/lumis/servicedesk/internal/config"
	"github.com/lumis/servicedesk/internal/directory"
	"github.com/lumis/servicedesk/internal/events"
	"github.com/lumis/servicedesk/internal/observability"
	"github.com/lumis/servicedesk/internal/persistence"
	"github.com/lumis/servicedesk/internal/repository"
	"github.com/lumis/servicedesk/internal/service"
	"github.com/lumis/servicedesk/internal/sla"
	"github.com/lumis/servicedesk/internal/workflow"
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

	if err := workflow.Validate(); err != nil {
		logger.Fatal("workflow tables inconsistent", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()
	if pg.PoolHandle() == nil {
		logger.Fatal("POSTGRES_DSN is required")
	}

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	store := repository.NewStore(pg.PoolHandle())
	dir := directory.New(store.Users(), redis.Client,
		time.Duration(cfg.Directory.NameCacheTTLMinutes)*time.Minute, logger)

	pools, err := dir.BuildPools(ctx)
	if err != nil {
		logger.Fatal("failed to load routing pools", zap.Error(err))
	}
	router := assign.NewRouter(pools)

	dispatcher := events.NewInMemoryDispatcher()
	metrics := observability.NewMetrics()

	slaCfg := sla.DefaultConfig()
	slaCfg.InquiryResponse, slaCfg.RMAResolution, slaCfg.SVCResolution = cfg.Sla.Offsets()

	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:      store,
		Directory:  dir,
		Router:     router,
		Sla:        slaCfg,
		Dispatcher: dispatcher,
		Logger:     logger,
	})
	projectionService := service.NewProjectionService(store, logger)
	projectionService.RegisterHandlers(dispatcher)
	notificationService := service.NewNotificationService(store, dir, logger)
	notificationService.RegisterHandlers(dispatcher)

	authService := service.NewAuthService(*cfg, store.Users())
	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), store.Users())

	app := fiber.New(fiber.Config{DisableStartupMessage: true})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Search:         handlers.NewSearchHandler(projectionService),
		AuthMiddleware: authMiddleware,
	})

	go runSlaSweeper(ctx, ticketService, cfg.Sla.SweepIntervalMinutes, logger)

	go func() {
		logger.Info("listening", zap.String("addr", cfg.App.Addr()))
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	cancel()
	_ = app.Shutdown()
}

func runSlaSweeper(ctx context.Context, tickets *service.TicketService, intervalMinutes int, logger *zap.Logger) {
	if intervalMinutes <= 0 {
		return
	}
	ticker := time.NewTicker(time.Duration(intervalMinutes) * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := tickets.SweepSla(ctx); err != nil {
				logger.Warn("sla sweep failed", zap.Error(err))
			}
		}
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
