// cmd/worker/main.go
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bsm/redislock"
	"github.com/hibiken/asynq"

	"github.com/ammerola/stockflow-be/internal/adapters/db"
	redis_a "github.com/ammerola/stockflow-be/internal/adapters/redis_adapter"
	"github.com/ammerola/stockflow-be/internal/adapters/storage"
	"github.com/ammerola/stockflow-be/internal/core/ports"
	"github.com/ammerola/stockflow-be/internal/core/services"
	"github.com/ammerola/stockflow-be/internal/pkg/config"
	"github.com/ammerola/stockflow-be/internal/pkg/logger"
	"github.com/ammerola/stockflow-be/internal/workers"
)

func main() {
	slogger := logger.SetupLogger("info", "json")

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat)
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	// Fewer connections than the API
	dbConfig := db.NewConfig(cfg.Database)
	dbConfig.MaxConnections = 10
	dbConfig.MinConnections = 2
	database, err := db.NewDatabase(ctx, dbConfig, slogger)
	if err != nil {
		slogger.Error("failed to initialize database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.Close()

	redisClient, err := redis_a.NewClient(ctx, cfg.Redis)
	if err != nil {
		slogger.Error("failed to initialize redis", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer redisClient.Close()
	cache := redis_a.NewCache(redisClient, cfg.Redis.TTL, slogger)
	locker := redislock.New(redisClient)

	var files ports.FileStorage
	if cfg.AWS.S3Bucket != "" {
		s3, err := storage.NewS3Storage(ctx, &storage.S3Config{
			Region:          cfg.AWS.Region,
			Bucket:          cfg.AWS.S3Bucket,
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			Endpoint:        cfg.AWS.S3Endpoint,
			UsePathStyle:    cfg.AWS.UsePathStyle,
		}, slogger)
		if err != nil {
			slogger.Error("failed to initialize storage", slog.String("error", err.Error()))
			os.Exit(1)
		}
		files = s3
	}

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	reportService := services.NewReportService(db.NewReportRepository(database, slogger), cache, services.ReportOptions{
		CacheTTL:          cfg.Reports.CacheTTL,
		LowStockThreshold: cfg.Reports.LowStockThreshold,
		TopLimit:          cfg.Reports.TopLimit,
	}, slogger)
	exportService := services.NewExportService(db.NewPurchaseInvoiceRepository(database, slogger), files, cache, nil, services.ExportOptions{
		KeyPrefix: cfg.Export.KeyPrefix,
		URLExpiry: cfg.Export.URLExpiry,
	}, slogger)
	// Alerts only read products; nothing here writes them.
	productService := services.NewProductService(
		db.NewProductRepository(database, slogger),
		db.NewProductLedger(database, slogger),
		db.NewTransactionScope(database, slogger),
		nil,
		slogger,
	)

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError(slogger)),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck(slogger),
		Logger:          newAsynqLogger(slogger),
	})

	mux := asynq.NewServeMux()

	exportProcessor := workers.NewExportProcessor(exportService, slogger)
	mux.HandleFunc(workers.TypeExportPurchases, exportProcessor.ProcessExport)

	reportProcessor := workers.NewReportProcessor(reportService, locker, slogger)
	mux.HandleFunc(workers.TypeReportRefresh, reportProcessor.RefreshReports)

	notificationProcessor := workers.NewNotificationProcessor(productService, newMailer(cfg.Alerts, slogger), cfg.Alerts.EmailTo, slogger)
	mux.HandleFunc(workers.TypeLowStockAlert, notificationProcessor.SendLowStockAlert)

	cleanupProcessor := workers.NewCleanupProcessor(exportService, cfg.Export.Retention, locker, slogger)
	mux.HandleFunc(workers.TypeCleanupExports, cleanupProcessor.CleanupExports)

	scheduler, err := newScheduler(redisOpt, cfg, slogger)
	if err != nil {
		slogger.Error("failed to configure scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)

	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}

	go func() {
		if err := srv.Run(mux); err != nil {
			slogger.Error("failed to run worker server", slog.String("error", err.Error()))
			shutdown <- syscall.SIGTERM
		}
	}()

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues))

	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

// newScheduler registers the periodic tasks. Every worker replica runs one;
// the task handlers take a redis lock so only one execution does the work.
func newScheduler(redisOpt asynq.RedisClientOpt, cfg *config.Config, logger *slog.Logger) (*asynq.Scheduler, error) {
	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   newAsynqLogger(logger),
	})

	if cfg.Reports.RefreshInterval > 0 {
		spec := fmt.Sprintf("@every %s", cfg.Reports.RefreshInterval)
		if _, err := scheduler.Register(spec, workers.NewReportRefreshTask()); err != nil {
			return nil, fmt.Errorf("failed to register report refresh: %w", err)
		}
	}
	if _, err := scheduler.Register("@hourly", workers.NewCleanupExportsTask()); err != nil {
		return nil, fmt.Errorf("failed to register export cleanup: %w", err)
	}
	return scheduler, nil
}

func newMailer(cfg config.AlertsConfig, logger *slog.Logger) workers.Mailer {
	if cfg.SMTPAddr == "" {
		return workers.NewLogMailer(logger)
	}
	return workers.NewSMTPMailer(cfg.SMTPAddr, cfg.SMTPFrom, cfg.SMTPUsername, cfg.SMTPPassword)
}

func handleError(logger *slog.Logger) func(ctx context.Context, task *asynq.Task, err error) {
	return func(ctx context.Context, task *asynq.Task, err error) {
		retried, _ := asynq.GetRetryCount(ctx)
		maxRetry, _ := asynq.GetMaxRetry(ctx)
		logger.ErrorContext(ctx, "task processing failed",
			slog.String("type", task.Type()),
			slog.Int("retried", retried),
			slog.Int("max_retry", maxRetry),
			slog.String("error", err.Error()))
	}
}

func exponentialBackoff(n int, _ error, _ *asynq.Task) time.Duration {
	const maxDelay = 10 * time.Minute
	if n > 10 {
		return maxDelay
	}
	delay := time.Second * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(logger *slog.Logger) func(error) {
	return func(err error) {
		if err != nil {
			logger.Error("worker health check failed", slog.String("error", err.Error()))
		}
	}
}

// asynqLogger adapts slog for Asynq
type asynqLogger struct {
	logger *slog.Logger
}

func newAsynqLogger(logger *slog.Logger) *asynqLogger {
	return &asynqLogger{
		logger: logger.With(slog.String("component", "asynq")),
	}
}

func (l *asynqLogger) Debug(args ...interface{}) {
	l.logger.Debug(fmt.Sprint(args...))
}

func (l *asynqLogger) Info(args ...interface{}) {
	l.logger.Info(fmt.Sprint(args...))
}

func (l *asynqLogger) Warn(args ...interface{}) {
	l.logger.Warn(fmt.Sprint(args...))
}

func (l *asynqLogger) Error(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
}

func (l *asynqLogger) Fatal(args ...interface{}) {
	l.logger.Error(fmt.Sprint(args...))
	os.Exit(1)
}
