package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/medikita/platform/internal/api/http"
	"github.com/medikita/platform/internal/api/http/handlers"
	"github.com/medikita/platform/internal/auth"
	"github.com/medikita/platform/internal/cache"
	"github.com/medikita/platform/internal/config"
	"github.com/medikita/platform/internal/events"
	"github.com/medikita/platform/internal/identity"
	"github.com/medikita/platform/internal/observability"
	"github.com/medikita/platform/internal/payment"
	"github.com/medikita/platform/internal/persistence"
	"github.com/medikita/platform/internal/repository"
	"github.com/medikita/platform/internal/service"
	"github.com/medikita/platform/internal/worker"
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
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), persistence.DefaultMigrationsDir, logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()
	store := cache.NewStore(redis.Client, cfg.Redis.CacheTTL)

	// An unconfigured provider leaves the gate fail-open for standard
	// routes and fail-closed for privileged ones, so startup proceeds.
	idp, err := identity.NewClient(cfg.Identity)
	if err != nil {
		if !errors.Is(err, identity.ErrNotConfigured) {
			logger.Fatal("failed to init identity client", zap.Error(err))
		}
		logger.Warn("identity provider not configured, sessions disabled")
	}

	invoices, err := payment.NewClient(cfg.Payment)
	if err != nil {
		logger.Warn("payment provider not configured, invoices disabled", zap.Error(err))
	}

	pool := pg.PoolHandle()
	productRepo := repository.NewProductRepository(pool)
	articleRepo := repository.NewArticleRepository(pool)
	doctorRepo := repository.NewDoctorRepository(pool)
	webinarRepo := repository.NewWebinarRepository(pool)
	partnerRepo := repository.NewPartnerRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)

	dispatcher := events.NewInMemoryDispatcher()

	catalogService := service.NewCatalogService(service.CatalogDependencies{
		ProductRepo: productRepo,
		Cache:       store,
	})
	contentService := service.NewContentService(service.ContentDependencies{
		ArticleRepo: articleRepo,
		WebinarRepo: webinarRepo,
		Cache:       store,
	})
	directoryService := service.NewDirectoryService(service.DirectoryDependencies{
		DoctorRepo:  doctorRepo,
		PartnerRepo: partnerRepo,
		Cache:       store,
	})

	var invoiceClient service.InvoiceClient
	if invoices != nil {
		invoiceClient = invoices
	}
	orderService := service.NewOrderService(service.OrderDependencies{
		OrderRepo:   orderRepo,
		ProductRepo: productRepo,
		Invoices:    invoiceClient,
		Dispatcher:  dispatcher,
		Logger:      logger,
	})

	notificationService := service.NewNotificationService(dispatcher, logger, cfg.Notification)
	worker.StartNotificationWorker(notificationService)
	if invoiceClient != nil {
		worker.StartInvoiceReconciler(ctx, orderService, cfg.Payment.ReconcileInterval, logger)
	}

	cookies := identity.CookieCodec{
		Domain: cfg.Identity.CookieDomain,
		Secure: cfg.Identity.CookieSecure,
	}

	var resolver auth.SessionResolver
	if idp != nil {
		resolver = idp
	}
	gate := auth.NewGate(resolver, cookies, logger)

	metrics := observability.NewMetrics()

	app := fiber.New(fiber.Config{
		AppName:               cfg.App.Name,
		DisableStartupMessage: cfg.App.Env == "production",
	})
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	var exchanger handlers.IdentityExchanger
	if idp != nil {
		exchanger = idp
	}

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:    handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis),
		Auth:      handlers.NewAuthHandler(exchanger, cookies, logger),
		Catalog:   handlers.NewCatalogHandler(catalogService),
		Content:   handlers.NewContentHandler(contentService),
		Directory: handlers.NewDirectoryHandler(directoryService),
		Orders:    handlers.NewOrdersHandler(orderService),
		Gate:      gate,
		Limiter:   httptransport.NewRateLimiter(cfg.RateLimit),
		Metrics:   metrics,
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
