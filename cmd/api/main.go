// cmd/api/main.go
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	redis_a "github.com/ammerola/stockflow-be/internal/adapters/redis_adapter"
	"github.com/ammerola/stockflow-be/internal/adapters/storage"
	"github.com/ammerola/stockflow-be/internal/core/domain"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/internal/handlers"
	"github.com/ammerola/stockflow-be/internal/handlers/middleware"
	"github.com/ammerola/stockflow-be/internal/pkg/auth"
	"github.com/ammerola/stockflow-be/internal/pkg/config"
	"github.com/ammerola/stockflow-be/internal/pkg/logger"
	"github.com/ammerola/stockflow-be/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json")
	slogger.Info("starting stockflow api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if cfg.App.Version == "" {
		cfg.App.Version = Version
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	if cfg.Database.RunMigrations {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(ctx, cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server", slog.String("address", cfg.GetServerAddress()))
		serverErrors <- server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", slog.String("error", err.Error()))
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", slog.String("error", err.Error()))
			server.Close()
		}
		slogger.Info("server shutdown complete")
	}
}

type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	tokens         *auth.TokenManager
	router         *handlers.Router
}

func (d *dependencies) cleanup() {
	if d.asynqInspector != nil {
		d.asynqInspector.Close()
	}
	if d.asynqClient != nil {
		d.asynqClient.Close()
	}
	if d.redisClient != nil {
		d.redisClient.Close()
	}
	if d.database != nil {
		d.database.Close()
	}
}

func initializeDependencies(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*dependencies, error) {
	deps := &dependencies{}

	logger.Info("connecting to database",
		slog.String("host", cfg.Database.Host),
		slog.String("database", cfg.Database.Name),
	)
	database, err := db.NewDatabase(ctx, db.NewConfig(cfg.Database), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis", slog.String("addr", cfg.GetRedisAddr()))
	redisClient, err := redis_a.NewClient(ctx, cfg.Redis)
	if err != nil {
		deps.cleanup()
		return nil, err
	}
	deps.redisClient = redisClient
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, logger)

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)
	queue := workers.NewTaskQueue(deps.asynqClient, logger)

	// Without a bucket, exports are only streamed.
	var files ports.FileStorage
	if cfg.AWS.S3Bucket != "" {
		s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, logger)
		if err != nil {
			deps.cleanup()
			return nil, fmt.Errorf("failed to initialize storage: %w", err)
		}
		files = s3
	} else {
		logger.Warn("no S3 bucket configured, background exports disabled")
	}

	uow := db.NewTransactionScope(database, logger)
	events := services.NewInvoiceEvents(cache, queue, cfg.Reports.LowStockThreshold, logger)

	salesService := services.NewSalesService(uow, db.NewSalesInvoiceRepository(database, logger), events, logger)
	purchaseStore := db.NewPurchaseInvoiceRepository(database, logger)
	purchaseService := services.NewPurchaseService(uow, purchaseStore, events, logger)
	productService := services.NewProductService(
		db.NewProductRepository(database, logger),
		db.NewProductLedger(database, logger),
		uow,
		events,
		logger,
	)
	reportService := services.NewReportService(db.NewReportRepository(database, logger), cache, services.ReportOptions{
		CacheTTL:          cfg.Reports.CacheTTL,
		LowStockThreshold: cfg.Reports.LowStockThreshold,
		TopLimit:          cfg.Reports.TopLimit,
	}, logger)
	exportService := services.NewExportService(purchaseStore, files, cache, queue, services.ExportOptions{
		KeyPrefix: cfg.Export.KeyPrefix,
		URLExpiry: cfg.Export.URLExpiry,
	}, logger)

	deps.tokens = auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiration, cfg.Auth.Issuer)
	deps.router = &handlers.Router{
		Sales:      handlers.NewSalesHandler(salesService, logger),
		Purchases:  handlers.NewPurchaseHandler(purchaseService, reportService, exportService, logger),
		Products:   handlers.NewProductHandler(productService, logger, int64(cfg.Export.ImportMaxSizeMB)<<20),
		Categories: handlers.NewCategoryHandler(services.NewCategoryService(db.NewCategoryRepository(database, logger), logger), logger),
		Customers:  handlers.NewPartyHandler(services.NewCustomerService(db.NewCustomerRepository(database, logger), logger), "customers", logger),
		Suppliers:  handlers.NewPartyHandler(services.NewSupplierService(db.NewSupplierRepository(database, logger), logger), "suppliers", logger),
		Dashboard:  handlers.NewDashboardHandler(reportService, cfg.Reports.TopLimit, logger),
		Health:     handlers.NewHealthHandler(database, cache, deps.asynqInspector, cfg, logger),
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// setupHTTPServer builds the server. ctx bounds background middleware state.
func setupHTTPServer(ctx context.Context, cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	deps.router.Register(mux, func(h http.Handler) http.Handler {
		return middleware.Chain(h,
			middleware.Authenticate(deps.tokens, logger),
			middleware.RequireRole(domain.RoleAdmin),
		)
	})

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(ctx, cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins, cfg.Security.RequestIDHeader))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if cfg.Security.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.Security.RequestTimeout))
	}
	chain = append(chain, middleware.Compression)

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(mux, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
	}, logger, 3)
}
