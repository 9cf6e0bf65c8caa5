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

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/frontdesk-be/internal/adapters/db"
	redis_a "github.com/ammerola/frontdesk-be/internal/adapters/redis_adapter"
	"github.com/ammerola/frontdesk-be/internal/adapters/storage"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
	"github.com/ammerola/frontdesk-be/internal/core/services"
	"github.com/ammerola/frontdesk-be/internal/pkg/config"
	"github.com/ammerola/frontdesk-be/internal/pkg/logger"
	"github.com/ammerola/frontdesk-be/internal/workers"
)

const cleanupSchedule = "@hourly"

func main() {
	slogger := logger.SetupLogger("info", "json").Logger

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("starting worker",
		slog.String("environment", cfg.App.Environment),
		slog.String("redis_addr", cfg.Asynq.RedisAddr))

	ctx := context.Background()

	database, err := db.NewDatabase(ctx, databaseConfig(cfg), slogger)
	if err != nil {
		slogger.Error("failed to initialize database", "err", err)
		os.Exit(1)
	}
	defer database.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
	})
	defer redisClient.Close()

	// imports must invalidate the listings the api caches
	var listings *services.ListingCache
	if cfg.Cache.Enabled {
		listings = services.NewListingCache(redis_a.NewCache(redisClient, cfg.Cache.ListingTTL, slogger), cfg.Cache.ListingTTL, slogger)
	}

	reportStore, err := initStorage(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize report storage", "err", err)
		os.Exit(1)
	}

	employeeRepo := db.NewEmployeeRepository(database, slogger)
	customerRepo := db.NewCustomerRepository(database, slogger)
	deviceRepo := db.NewDeviceRepository(database, slogger)
	inventoryRepo := db.NewInventoryRepository(database, slogger)

	customerService := services.NewCustomerService(customerRepo, listings, slogger)
	deviceService := services.NewDeviceService(deviceRepo, listings, slogger)
	borrowingService := services.NewBorrowingService(db.NewBorrowingRepository(database, slogger),
		customerRepo, deviceRepo, employeeRepo, listings, slogger)
	saleService := services.NewSaleService(db.NewSaleRepository(database, slogger),
		deviceRepo, employeeRepo, nil, listings, services.SaleConfig{
			DefaultEmployeeID: cfg.Inventory.DefaultEmployeeID,
			LowStockThreshold: cfg.Inventory.LowStockThreshold,
		}, slogger)
	inventoryService := services.NewInventoryService(inventoryRepo, listings, cfg.Inventory.LowStockThreshold, slogger)
	reportService := services.NewReportService(customerService, deviceService, borrowingService, saleService, inventoryService, slogger)

	var mailer workers.Mailer
	if cfg.IsProduction() && cfg.Notification.SMTPHost != "" {
		mailer = workers.NewSMTPMailer(cfg.Notification)
	}

	mux := workers.NewServeMux(
		workers.NewAlertProcessor(mailer, cfg.Notification.To, slogger),
		workers.NewReportProcessor(reportService, reportStore, cfg.Files.ReportURLExpiry, slogger),
		workers.NewImportProcessor(inventoryService, slogger),
		workers.NewCleanupProcessor(cfg.UploadDir(), cfg.Files.TempFileMaxAge, slogger),
		slogger,
	)

	redisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}

	srv := asynq.NewServer(redisOpt, asynq.Config{
		Concurrency:     cfg.Asynq.Concurrency,
		Queues:          cfg.Asynq.Queues,
		StrictPriority:  cfg.Asynq.StrictPriority,
		ErrorHandler:    asynq.ErrorHandlerFunc(handleError),
		RetryDelayFunc:  exponentialBackoff,
		ShutdownTimeout: cfg.Asynq.ShutdownTimeout,
		HealthCheckFunc: healthCheck,
		Logger:          newAsynqLogger(slogger),
	})

	scheduler := asynq.NewScheduler(redisOpt, &asynq.SchedulerOpts{
		Location: time.UTC,
		Logger:   newAsynqLogger(slogger),
	})
	if _, err := scheduler.Register(cleanupSchedule, workers.NewCleanupTempFilesTask()); err != nil {
		slogger.Error("failed to schedule cleanup", "err", err)
		os.Exit(1)
	}

	if err := srv.Start(mux); err != nil {
		slogger.Error("failed to start worker server", "err", err)
		os.Exit(1)
	}
	if err := scheduler.Start(); err != nil {
		slogger.Error("failed to start scheduler", "err", err)
		srv.Shutdown()
		os.Exit(1)
	}

	slogger.Info("worker started successfully",
		slog.Int("concurrency", cfg.Asynq.Concurrency),
		slog.Any("queues", cfg.Asynq.Queues),
		slog.String("cleanup_schedule", cleanupSchedule))

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, syscall.SIGINT, syscall.SIGTERM)
	sig := <-shutdown
	slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

	scheduler.Shutdown()
	srv.Shutdown()
	slogger.Info("worker shutdown complete")
}

func initStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (ports.ReportStorage, error) {
	if cfg.AWS.S3Bucket == "" {
		logger.Info("no S3 bucket configured, storing reports locally", slog.String("dir", cfg.ReportDir()))
		return storage.NewLocalStorage(cfg.ReportDir(), logger), nil
	}

	return storage.NewS3Storage(ctx, &storage.S3Config{
		Region:          cfg.AWS.Region,
		Bucket:          cfg.AWS.S3Bucket,
		AccessKeyID:     cfg.AWS.AccessKeyID,
		SecretAccessKey: cfg.AWS.SecretAccessKey,
		Endpoint:        cfg.AWS.S3Endpoint,
		UsePathStyle:    cfg.AWS.UsePathStyle,
		EnsureBucket:    !cfg.IsProduction(),
	}, logger)
}

func databaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		ApplicationName:    "frontdesk-worker",
		MaxConnections:     10, // Fewer connections for worker
		MinConnections:     2,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
		TxRetries:          2,
	}
}

func handleError(ctx context.Context, task *asynq.Task, err error) {
	retried, _ := asynq.GetRetryCount(ctx)
	maxRetry, _ := asynq.GetMaxRetry(ctx)

	slog.ErrorContext(ctx, "task processing failed",
		slog.String("type", task.Type()),
		slog.Int("retried", retried),
		slog.Int("max_retry", maxRetry),
		"err", err)
}

func exponentialBackoff(n int, _ error, _ *asynq.Task) time.Duration {
	baseDelay := time.Second
	maxDelay := 10 * time.Minute
	delay := baseDelay * time.Duration(1<<uint(n))
	if delay > maxDelay {
		delay = maxDelay
	}
	return delay
}

func healthCheck(err error) {
	if err != nil {
		slog.Error("worker health check failed", "err", err)
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
