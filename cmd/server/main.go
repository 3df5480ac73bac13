// Server entrypoint: loads configuration, connects Postgres and Redis,
// runs migrations and serves the HTTP API until interrupted.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	gormlogger "gorm.io/gorm/logger"

	billingapp "github.com/graficaerp/backend/internal/application/billing"
	catalogapp "github.com/graficaerp/backend/internal/application/catalog"
	financeapp "github.com/graficaerp/backend/internal/application/finance"
	identityapp "github.com/graficaerp/backend/internal/application/identity"
	inventoryapp "github.com/graficaerp/backend/internal/application/inventory"
	ordersapp "github.com/graficaerp/backend/internal/application/orders"
	partnerapp "github.com/graficaerp/backend/internal/application/partner"
	reportapp "github.com/graficaerp/backend/internal/application/report"
	"github.com/graficaerp/backend/internal/infrastructure/ai"
	"github.com/graficaerp/backend/internal/infrastructure/auth"
	"github.com/graficaerp/backend/internal/infrastructure/config"
	"github.com/graficaerp/backend/internal/infrastructure/gateway"
	"github.com/graficaerp/backend/internal/infrastructure/logger"
	"github.com/graficaerp/backend/internal/infrastructure/migration"
	"github.com/graficaerp/backend/internal/infrastructure/persistence"
	"github.com/graficaerp/backend/internal/infrastructure/storage"
	"github.com/graficaerp/backend/internal/infrastructure/telemetry"
	"github.com/graficaerp/backend/internal/interfaces/http/handler"
	"github.com/graficaerp/backend/internal/interfaces/http/router"
)

var version = "dev"

func main() {
	migrationsPath := flag.String("migrations", "migrations", "path to migration files")
	skipMigrations := flag.Bool("skip-migrations", false, "do not run migrations on startup")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log, *migrationsPath, *skipMigrations); err != nil {
		log.Fatal("Server exited with error", zap.Error(err))
	}
}

func run(cfg *config.Config, log *zap.Logger, migrationsPath string, skipMigrations bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tracer, err := telemetry.NewTracerProvider(ctx, &cfg.Telemetry, log)
	if err != nil {
		return fmt.Errorf("telemetry init: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = tracer.Shutdown(flushCtx)
	}()

	database, err := persistence.NewDatabaseWithLogger(&cfg.Database,
		logger.NewGormLogger(log, gormlogger.Warn))
	if err != nil {
		return fmt.Errorf("database init: %w", err)
	}
	defer func() { _ = database.Close() }()

	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		if err := database.DB.Use(otelgorm.NewPlugin()); err != nil {
			log.Warn("Failed to enable database tracing", zap.Error(err))
		}
	}

	if !skipMigrations {
		sqlDB, err := database.DB.DB()
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		migrator, err := migration.New(sqlDB, migrationsPath, log)
		if err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
		if err := migrator.Up(); err != nil {
			return fmt.Errorf("migrations: %w", err)
		}
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer func() { _ = redisClient.Close() }()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis init: %w", err)
	}

	jwtService := auth.NewJWTService(cfg.JWT)
	blacklist := auth.NewRedisTokenBlacklist(redisClient)

	// Repositories
	db := database.DB
	tenantRepo := persistence.NewGormTenantRepository(db)
	userRepo := persistence.NewGormUserRepository(db)
	planRepo := persistence.NewGormPlanRepository(db)
	subscriptionRepo := persistence.NewGormSubscriptionRepository(db)
	webhookEventRepo := persistence.NewGormWebhookEventRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	categoryRepo := persistence.NewGormCategoryRepository(db)
	customerRepo := persistence.NewGormCustomerRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	entryRepo := persistence.NewGormEntryRepository(db)
	movementRepo := persistence.NewGormStockMovementRepository(db)

	// Outbound adapters
	gatewayClient := gateway.NewClient(&cfg.Gateway, log)

	var descriptionGen catalogapp.DescriptionGenerator
	if gen := ai.NewDescriptionGenerator(&cfg.AI, log); gen != nil {
		descriptionGen = gen
	}

	var artworkStorage ordersapp.ArtworkStorage
	if cfg.Storage.Enabled {
		s3Storage, err := storage.NewS3ArtworkStorage(&cfg.Storage, log)
		if err != nil {
			return fmt.Errorf("storage init: %w", err)
		}
		artworkStorage = s3Storage
	} else {
		log.Warn("Object storage disabled, artwork uploads are kept in memory")
		artworkStorage = storage.NewStubArtworkStorage()
	}

	// Application services
	authService := identityapp.NewAuthService(userRepo, tenantRepo, jwtService, blacklist, log)
	tenantService := identityapp.NewTenantService(tenantRepo, userRepo, planRepo, subscriptionRepo,
		identityapp.TenantServiceConfig{
			TrialDays:       cfg.Billing.TrialDays,
			DefaultPlanCode: cfg.Billing.DefaultPlanCode,
		}, log)
	userService := identityapp.NewUserService(userRepo, subscriptionRepo, planRepo, log)
	categoryService := catalogapp.NewCategoryService(categoryRepo, log)
	productService := catalogapp.NewProductService(productRepo, categoryRepo, descriptionGen, log)
	customerService := partnerapp.NewCustomerService(customerRepo, log)
	paymentService := financeapp.NewPaymentService(paymentRepo, entryRepo, orderRepo, log)
	cashFlowService := financeapp.NewCashFlowService(entryRepo, log)
	orderService := ordersapp.NewOrderService(orderRepo, customerRepo, productRepo, paymentService, artworkStorage, log)
	publicOrderService := ordersapp.NewPublicOrderService(orderRepo, customerRepo, productRepo, paymentService, log)
	stockService := inventoryapp.NewStockService(movementRepo, productRepo, log)
	reportService := reportapp.NewReportService(orderRepo, entryRepo, productRepo, log)
	checkoutService := billingapp.NewCheckoutService(planRepo, subscriptionRepo, tenantRepo, gatewayClient, log)
	webhookService := billingapp.NewWebhookService(subscriptionRepo, planRepo, webhookEventRepo, tenantRepo, gatewayClient,
		billingapp.WebhookServiceConfig{GraceDays: cfg.Billing.GraceDays}, log)

	engine := router.New(router.Deps{
		Config:    cfg,
		Logger:    log,
		JWT:       jwtService,
		Blacklist: blacklist,
		Redis:     redisClient,

		System:   handler.NewSystemHandler(db, redisClient, version),
		Auth:     handler.NewAuthHandler(authService),
		Tenant:   handler.NewTenantHandler(tenantService),
		User:     handler.NewUserHandler(userService),
		Product:  handler.NewProductHandler(productService),
		Category: handler.NewCategoryHandler(categoryService),
		Customer: handler.NewCustomerHandler(customerService),
		Order:    handler.NewOrderHandler(orderService),
		Payment:  handler.NewPaymentHandler(paymentService),
		CashFlow: handler.NewCashFlowHandler(cashFlowService),
		Stock:    handler.NewStockHandler(stockService),
		Report:   handler.NewReportHandler(reportService),
		Billing:  handler.NewBillingHandler(checkoutService),
		Webhook:  handler.NewWebhookHandler(webhookService, log),
		Public:   handler.NewPublicHandler(tenantService, productService, publicOrderService),
	})

	server := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", server.Addr),
			zap.String("env", cfg.App.Env),
			zap.String("version", version))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}
	return nil
}
