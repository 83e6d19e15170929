package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"go.uber.org/zap"

	httptransport "github.com/accumanage/portal/internal/api/http"
	"github.com/accumanage/portal/internal/api/http/handlers"
	"github.com/accumanage/portal/internal/auth"
	"github.com/accumanage/portal/internal/config"
	"github.com/accumanage/portal/internal/events"
	"github.com/accumanage/portal/internal/observability"
	"github.com/accumanage/portal/internal/persistence"
	"github.com/accumanage/portal/internal/repository"
	"github.com/accumanage/portal/internal/service"
	"github.com/accumanage/portal/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), cfg.Postgres.MigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(ctx, cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	userRepo := repository.NewUserRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	attemptRepo := repository.NewLoginAttemptRepository(redis.Client)

	var queue service.TaskEnqueuer
	var webhookServer *asynq.Server
	if cfg.Notification.WebhookURL != "" {
		client := asynq.NewClient(worker.RedisOpt(cfg.Redis))
		defer client.Close()
		queue = client

		server, mux := worker.NewWebhookServer(cfg.Redis, worker.NewWebhookDelivery(cfg.Notification, logger), logger)
		if err := server.Start(mux); err != nil {
			logger.Fatal("failed to start webhook worker", zap.Error(err))
		}
		webhookServer = server
	}

	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartNotificationWorker(service.NewNotificationService(dispatcher, queue, logger, cfg.Notification), logger)

	codec := auth.NewTokenCodec(cfg.Auth)
	authService := service.NewAuthService(cfg.Auth, service.AuthDependencies{
		UserRepo:      userRepo,
		LoginAttempts: attemptRepo,
		Sessions:      auth.NewSessionManager(cfg.Auth, codec),
		Decoder:       codec,
		Dispatcher:    dispatcher,
		Logger:        logger,
	})
	userService := service.NewUserService(userRepo, dispatcher)
	billingService := service.NewBillingService(invoiceRepo)

	metrics := observability.NewMetrics()
	app := fiber.New(fiber.Config{
		AppName:       cfg.App.Name,
		CaseSensitive: true,
		ErrorHandler:  httptransport.ErrorHandler,
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, map[string]handlers.Pinger{
			"postgres": pg,
			"redis":    redis,
		}),
		Auth:       handlers.NewAuthHandler(authService),
		Admin:      handlers.NewAdminHandler(userService, metrics),
		Billing:    handlers.NewBillingHandler(billingService),
		Pages:      handlers.NewPagesHandler(),
		EdgeGuard:  auth.NewEdgeGuard(auth.NewEdgeDecoder(cfg.Auth), auth.DefaultEdgeGuardConfig()),
		RouteGuard: auth.NewRouteGuard(codec, logger),
		StaticDir:  cfg.App.StaticDir,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
	if webhookServer != nil {
		webhookServer.Shutdown()
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
