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

	"github.com/ammerola/frontdesk-be/internal/adapters/db"
	redis_a "github.com/ammerola/frontdesk-be/internal/adapters/redis_adapter"
	"github.com/ammerola/frontdesk-be/internal/core/services"
	"github.com/ammerola/frontdesk-be/internal/handlers"
	"github.com/ammerola/frontdesk-be/internal/handlers/middleware"
	"github.com/ammerola/frontdesk-be/internal/pkg/config"
	"github.com/ammerola/frontdesk-be/internal/pkg/logger"
	"github.com/ammerola/frontdesk-be/internal/workers"
)

// Build information injected at compile time
var (
	Version   = "dev"
	BuildTime = "unknown"
	GoVersion = "unknown"
)

func main() {
	slogger := logger.SetupLogger("info", "json").Logger

	slogger.Info("starting front desk api",
		slog.String("version", Version),
		slog.String("build_time", BuildTime),
		slog.String("go_version", GoVersion),
	)

	cfg, err := config.Load(slogger)
	if err != nil {
		slogger.Error("failed to load configuration", "err", err)
		os.Exit(1)
	}

	// Reconfigure logger with loaded settings
	slogger = logger.SetupLogger(cfg.App.LogLevel, cfg.App.LogFormat).Logger
	slogger.Info("configuration loaded",
		slog.String("environment", cfg.App.Environment),
		slog.String("log_level", cfg.App.LogLevel),
	)

	ctx := context.Background()

	if cfg.Database.AutoMigrate {
		if err := runMigrations(ctx, cfg, slogger); err != nil {
			slogger.Error("failed to run migrations", "err", err)
			os.Exit(1)
		}
	}

	deps, err := initializeDependencies(ctx, cfg, slogger)
	if err != nil {
		slogger.Error("failed to initialize dependencies", "err", err)
		os.Exit(1)
	}
	defer deps.cleanup()

	server := setupHTTPServer(cfg, deps, slogger)

	serverErrors := make(chan error, 1)
	go func() {
		slogger.Info("starting HTTP server",
			slog.String("address", cfg.GetServerAddress()),
			slog.Bool("tls", cfg.Server.TLSEnabled),
		)

		if cfg.Server.TLSEnabled {
			serverErrors <- server.ListenAndServeTLS(cfg.Server.TLSCertFile, cfg.Server.TLSKeyFile)
		} else {
			serverErrors <- server.ListenAndServe()
		}
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)

	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			slogger.Error("server error", "err", err)
		}
	case sig := <-shutdown:
		slogger.Info("shutdown signal received", slog.String("signal", sig.String()))

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.GracefulTimeout)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slogger.Error("failed to gracefully shutdown server", "err", err)
			server.Close()
		}

		slogger.Info("server shutdown complete")
	}
}

// dependencies holds everything the HTTP server needs
type dependencies struct {
	database       *db.Database
	redisClient    *redis.Client
	asynqClient    *asynq.Client
	asynqInspector *asynq.Inspector
	handlers       *handlers.Handlers
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

	database, err := db.NewDatabase(ctx, databaseConfig(cfg), logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.database = database

	logger.Info("connecting to Redis", slog.String("addr", cfg.GetRedisAddr()))

	redisClient := redis.NewClient(&redis.Options{
		Addr:         cfg.GetRedisAddr(),
		Password:     cfg.Redis.Password,
		DB:           cfg.Redis.DB,
		MaxRetries:   cfg.Redis.MaxRetries,
		DialTimeout:  cfg.Redis.DialTimeout,
		ReadTimeout:  cfg.Redis.ReadTimeout,
		WriteTimeout: cfg.Redis.WriteTimeout,
		PoolSize:     cfg.Redis.PoolSize,
		MinIdleConns: cfg.Redis.MinIdleConns,
	})
	deps.redisClient = redisClient

	var listings *services.ListingCache
	if err := redisClient.Ping(ctx).Err(); err != nil {
		// listings fall back to the database; health reports Redis as down
		logger.Warn("redis unavailable, listing cache disabled", "err", err)
	} else if cfg.Cache.Enabled {
		listings = services.NewListingCache(redis_a.NewCache(redisClient, cfg.Cache.ListingTTL, logger), cfg.Cache.ListingTTL, logger)
	}

	asynqRedisOpt := asynq.RedisClientOpt{
		Addr:     cfg.Asynq.RedisAddr,
		Password: cfg.Asynq.RedisPassword,
		DB:       cfg.Asynq.RedisDB,
	}
	deps.asynqClient = asynq.NewClient(asynqRedisOpt)
	deps.asynqInspector = asynq.NewInspector(asynqRedisOpt)
	tasks := workers.NewTaskClient(deps.asynqClient, logger)

	employeeRepo := db.NewEmployeeRepository(database, logger)
	customerRepo := db.NewCustomerRepository(database, logger)
	deviceRepo := db.NewDeviceRepository(database, logger)
	borrowingRepo := db.NewBorrowingRepository(database, logger)
	saleRepo := db.NewSaleRepository(database, logger)
	inventoryRepo := db.NewInventoryRepository(database, logger)
	dashboardRepo := db.NewDashboardRepository(database, logger)

	employeeService := services.NewEmployeeService(employeeRepo, listings, logger)
	customerService := services.NewCustomerService(customerRepo, listings, logger)
	deviceService := services.NewDeviceService(deviceRepo, listings, logger)
	borrowingService := services.NewBorrowingService(borrowingRepo, customerRepo, deviceRepo, employeeRepo, listings, logger)
	saleService := services.NewSaleService(saleRepo, deviceRepo, employeeRepo, tasks, listings, services.SaleConfig{
		DefaultEmployeeID: cfg.Inventory.DefaultEmployeeID,
		LowStockThreshold: cfg.Inventory.LowStockThreshold,
		AlertCooldown:     cfg.Inventory.AlertCooldown,
	}, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, listings, cfg.Inventory.LowStockThreshold, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, listings, cfg.Inventory.LowStockThreshold, logger)
	reportService := services.NewReportService(customerService, deviceService, borrowingService, saleService, inventoryService, logger)

	deps.handlers = &handlers.Handlers{
		Customers: handlers.NewCustomerHandler(customerService, logger),
		Employees: handlers.NewEmployeeHandler(employeeService, logger),
		Devices:   handlers.NewDeviceHandler(deviceService, borrowingService, logger),
		Sales:     handlers.NewSaleHandler(saleService, logger),
		Inventory: handlers.NewInventoryHandler(inventoryService, dashboardService, cfg.Inventory.LowStockThreshold, logger),
		Export:    handlers.NewExportHandler(reportService, tasks, logger),
		Import:    handlers.NewImportHandler(tasks, cfg.MaxUploadBytes(), cfg.UploadDir(), logger),
		Health: handlers.NewHealthHandler(database, redisClient, deps.asynqInspector,
			cfg.App.Version, cfg.App.Environment, logger),
	}

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

func setupHTTPServer(cfg *config.Config, deps *dependencies, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, deps.handlers)

	// metrics wraps the mux directly so the matched pattern is visible
	var handler http.Handler = mux
	if cfg.Server.EnableMetrics {
		metrics := middleware.NewMetrics("frontdesk")
		mux.Handle("GET /metrics", metrics.Handler())
		handler = metrics.Middleware(mux)
	}

	chain := []func(http.Handler) http.Handler{
		middleware.RequestID(cfg.Security.RequestIDHeader),
		middleware.Logger(logger),
		middleware.Recovery(logger),
	}
	if cfg.Security.RateLimitRequests > 0 {
		chain = append(chain, middleware.RateLimit(cfg.Security.RateLimitRequests, cfg.Security.RateLimitDuration))
	}
	if len(cfg.Security.AllowedOrigins) > 0 {
		chain = append(chain, middleware.CORS(cfg.Security.AllowedOrigins))
	}
	if cfg.Security.SecureHeaders {
		chain = append(chain, middleware.SecureHeaders)
	}
	if cfg.Server.RequestTimeout > 0 {
		chain = append(chain, middleware.Timeout(cfg.Server.RequestTimeout))
	}

	return &http.Server{
		Addr:           cfg.GetServerAddress(),
		Handler:        middleware.Chain(handler, chain...),
		ReadTimeout:    cfg.Server.ReadTimeout,
		WriteTimeout:   cfg.Server.WriteTimeout,
		IdleTimeout:    cfg.Server.IdleTimeout,
		MaxHeaderBytes: cfg.Server.MaxHeaderBytes,
		ErrorLog:       slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}
}

func databaseConfig(cfg *config.Config) *db.Config {
	return &db.Config{
		Host:               cfg.Database.Host,
		Port:               cfg.Database.Port,
		User:               cfg.Database.User,
		Password:           cfg.Database.Password,
		Database:           cfg.Database.Name,
		SSLMode:            cfg.Database.SSLMode,
		ApplicationName:    "frontdesk-api",
		MaxConnections:     cfg.Database.MaxConnections,
		MinConnections:     cfg.Database.MinConnections,
		MaxConnLifetime:    cfg.Database.MaxConnLifetime,
		MaxConnIdleTime:    cfg.Database.MaxConnIdleTime,
		HealthCheckPeriod:  cfg.Database.HealthCheckPeriod,
		ConnectTimeout:     cfg.Database.ConnectTimeout,
		StatementCacheMode: cfg.Database.StatementCacheMode,
		EnableQueryLogging: cfg.Database.EnableQueryLogging,
		TxRetries:          2,
	}
}

func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("running database migrations")

	return db.RunMigrationsWithRetry(ctx, &db.MigrationConfig{
		DatabaseURL: cfg.GetDatabaseURL(),
		SourcePath:  cfg.Database.MigrationPath,
		TableName:   "schema_migrations",
		SchemaName:  "public",
	}, logger, 3)
}
