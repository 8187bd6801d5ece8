package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/tutor-marketplace/internal/api/http"
	"github.com/spec-kit/tutor-marketplace/internal/api/http/handlers"
	"github.com/spec-kit/tutor-marketplace/internal/auth"
	"github.com/spec-kit/tutor-marketplace/internal/config"
	"github.com/spec-kit/tutor-marketplace/internal/events"
	"github.com/spec-kit/tutor-marketplace/internal/observability"
	"github.com/spec-kit/tutor-marketplace/internal/persistence"
	"github.com/spec-kit/tutor-marketplace/internal/repository"
	"github.com/spec-kit/tutor-marketplace/internal/service"
	"github.com/spec-kit/tutor-marketplace/internal/worker"
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

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher()

	pool := pg.PoolHandle()
	accountRepo := repository.NewAccountRepository(pool)
	applicationRepo := repository.NewApplicationRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	chatRepo := repository.NewChatRepository(pool)
	adRepo := repository.NewAdRepository(pool)
	rawEventRepo := repository.NewDiscordEventRepository(pool)

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		AccountRepo: accountRepo,
	})
	applicationService := service.NewApplicationService(service.ApplicationDependencies{
		ApplicationRepo: applicationRepo,
		AccountRepo:     accountRepo,
		Dispatcher:      dispatcher,
	})
	bookingService := service.NewBookingService(service.BookingDependencies{
		BookingRepo: bookingRepo,
		Dispatcher:  dispatcher,
	})
	chatService := service.NewChatService(chatRepo)
	syncService := service.NewSyncService(service.SyncDependencies{
		AdRepo:     adRepo,
		RawRepo:    rawEventRepo,
		Dispatcher: dispatcher,
		Metrics:    metrics,
		Logger:     logger,
	})
	adsService := service.NewAdsService(adRepo, redis.Client, logger)
	notificationService := service.NewNotificationService(dispatcher, logger, metrics, cfg.Notification)

	worker.StartEventWorkers(notificationService, adsService, dispatcher)

	authMiddleware := auth.NewAuthMiddleware(authService.TokenManager(), accountRepo, authService.Resolver(), logger)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:           handlers.NewAuthHandler(authService, nil),
		Applications:   handlers.NewApplicationsHandler(applicationService),
		Bookings:       handlers.NewBookingsHandler(bookingService),
		Chat:           handlers.NewChatHandler(chatService),
		Ads:            handlers.NewAdsHandler(adsService),
		Sync:           handlers.NewSyncHandler(syncService, cfg.Sync.SharedSecret),
		AuthMiddleware: authMiddleware,
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
