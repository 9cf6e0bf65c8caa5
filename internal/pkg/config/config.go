// internal/pkg/config/config.go
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App          AppConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	Asynq        AsynqConfig
	AWS          AWSConfig
	Files        FilesConfig
	Security     SecurityConfig
	Server       ServerConfig
	Inventory    InventoryConfig
	Cache        CacheConfig
	Notification NotificationConfig
}

// AppConfig holds application-specific configuration
type AppConfig struct {
	Name        string `required:"true"`
	Environment string // development, staging, production
	Version     string
	LogLevel    string
	LogFormat   string // json, text
	Debug       bool
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host               string `required:"true"`
	Port               string `required:"true"`
	User               string `required:"true"`
	Password           string
	Name               string `required:"true"`
	SSLMode            string
	MaxConnections     int32
	MinConnections     int32
	MaxConnLifetime    time.Duration
	MaxConnIdleTime    time.Duration
	HealthCheckPeriod  time.Duration
	ConnectTimeout     time.Duration
	StatementCacheMode string
	EnableQueryLogging bool
	AutoMigrate        bool
	// MigrationPath overrides the migrations compiled into the binary
	MigrationPath string
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host         string `required:"true"`
	Port         string `required:"true"`
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

// AsynqConfig holds Asynq configuration
type AsynqConfig struct {
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	Concurrency     int
	Queues          map[string]int // queue name -> priority
	StrictPriority  bool
	RetryMax        int
	ShutdownTimeout time.Duration
}

// AWSConfig holds AWS configuration
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string // MinIO in development
	UsePathStyle    bool
	// SecretsName names a Secrets Manager entry whose JSON overrides DB_PASSWORD
	SecretsName string
}

// FilesConfig holds upload and report file configuration
type FilesConfig struct {
	UploadMaxSizeMB   int
	ProcessingTimeout time.Duration
	TempDir           string
	TempFileMaxAge    time.Duration
	ReportURLExpiry   time.Duration
}

// SecurityConfig holds HTTP hardening configuration
type SecurityConfig struct {
	RateLimitRequests int
	RateLimitDuration time.Duration
	AllowedOrigins    []string
	SecureHeaders     bool
	RequestIDHeader   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            string `required:"true"`
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	MaxHeaderBytes  int
	GracefulTimeout time.Duration
	// RequestTimeout bounds handler time; keep it below WriteTimeout
	RequestTimeout time.Duration
	EnableMetrics  bool
	TLSEnabled     bool
	TLSCertFile    string
	TLSKeyFile     string
}

// InventoryConfig holds desk rules
type InventoryConfig struct {
	LowStockThreshold int
	DefaultEmployeeID int64
	// AlertCooldown suppresses repeated low-stock alerts for the same item
	AlertCooldown time.Duration
}

// CacheConfig holds listing cache configuration
type CacheConfig struct {
	Enabled    bool
	ListingTTL time.Duration
}

// NotificationConfig holds low-stock mail settings
type NotificationConfig struct {
	SMTPHost     string
	SMTPPort     string
	SMTPUsername string
	SMTPPassword string
	From         string
	To           string
}

// Load loads configuration from environment variables
func Load(logger *slog.Logger) (*Config, error) {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
	}

	if env == "development" || env == "local" {
		if err := godotenv.Load(); err != nil {
			logger.Debug("no .env file found, using environment variables")
		} else {
			logger.Info(".env file loaded")
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	e := envReader{v: v}

	redisHost := e.getString("REDIS_HOST", "localhost")
	redisPort := e.getString("REDIS_PORT", "6379")

	cfg := &Config{
		App: AppConfig{
			Name:        e.getString("APP_NAME", "frontdesk-api"),
			Environment: env,
			Version:     e.getString("APP_VERSION", "dev"),
			LogLevel:    e.getString("LOG_LEVEL", "info"),
			LogFormat:   e.getString("LOG_FORMAT", "json"),
			Debug:       e.getBool("APP_DEBUG", env == "development"),
		},
		Database: DatabaseConfig{
			Host:               e.getString("DB_HOST", "localhost"),
			Port:               e.getString("DB_PORT", "5432"),
			User:               e.getString("DB_USER", "frontdesk"),
			Password:           e.getString("DB_PASSWORD", "frontdesk_dev"),
			Name:               e.getString("DB_NAME", "frontdesk"),
			SSLMode:            e.getString("DB_SSL_MODE", "disable"),
			MaxConnections:     int32(e.getInt("DB_MAX_CONNECTIONS", 10)),
			MinConnections:     int32(e.getInt("DB_MIN_CONNECTIONS", 2)),
			MaxConnLifetime:    e.getDuration("DB_CONNECTION_LIFETIME", time.Hour),
			MaxConnIdleTime:    e.getDuration("DB_IDLE_TIME", 30*time.Minute),
			HealthCheckPeriod:  e.getDuration("DB_HEALTH_CHECK_PERIOD", time.Minute),
			ConnectTimeout:     e.getDuration("DB_CONNECT_TIMEOUT", 10*time.Second),
			StatementCacheMode: e.getString("DB_STATEMENT_CACHE_MODE", "describe"),
			EnableQueryLogging: e.getBool("DB_QUERY_LOGGING", false),
			AutoMigrate:        e.getBool("DB_AUTO_MIGRATE", true),
			MigrationPath:      e.getString("DB_MIGRATION_PATH", ""),
		},
		Redis: RedisConfig{
			Host:         redisHost,
			Port:         redisPort,
			Password:     e.getString("REDIS_PASSWORD", ""),
			DB:           e.getInt("REDIS_DB", 0),
			MaxRetries:   e.getInt("REDIS_MAX_RETRIES", 3),
			DialTimeout:  e.getDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.getDuration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.getDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			PoolSize:     e.getInt("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.getInt("REDIS_MIN_IDLE_CONNS", 2),
		},
		Asynq: AsynqConfig{
			RedisAddr:       fmt.Sprintf("%s:%s", redisHost, redisPort),
			RedisPassword:   e.getString("REDIS_PASSWORD", ""),
			RedisDB:         e.getInt("ASYNQ_REDIS_DB", 1),
			Concurrency:     e.getInt("ASYNQ_CONCURRENCY", 5),
			Queues:          parseQueues(e.getString("ASYNQ_QUEUES", "critical:6,default:3,low:1")),
			StrictPriority:  e.getBool("ASYNQ_STRICT_PRIORITY", false),
			RetryMax:        e.getInt("ASYNQ_RETRY_MAX", 3),
			ShutdownTimeout: e.getDuration("ASYNQ_SHUTDOWN_TIMEOUT", 30*time.Second),
		},
		AWS: AWSConfig{
			Region:          e.getString("AWS_REGION", "us-east-1"),
			AccessKeyID:     e.getString("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: e.getString("AWS_SECRET_ACCESS_KEY", ""),
			S3Bucket:        e.getString("AWS_S3_BUCKET", ""),
			S3Endpoint:      e.getString("AWS_S3_ENDPOINT", ""),
			UsePathStyle:    e.getBool("AWS_S3_PATH_STYLE", env == "development"),
			SecretsName:     e.getString("AWS_SECRETS_NAME", ""),
		},
		Files: FilesConfig{
			UploadMaxSizeMB:   e.getInt("UPLOAD_MAX_SIZE_MB", 20),
			ProcessingTimeout: e.getDuration("PROCESSING_TIMEOUT", 5*time.Minute),
			TempDir:           e.getString("TEMP_DIR", os.TempDir()),
			TempFileMaxAge:    e.getDuration("TEMP_FILE_MAX_AGE", 24*time.Hour),
			ReportURLExpiry:   e.getDuration("REPORT_URL_EXPIRY", 24*time.Hour),
		},
		Security: SecurityConfig{
			RateLimitRequests: e.getInt("RATE_LIMIT_REQUESTS", 100),
			RateLimitDuration: e.getDuration("RATE_LIMIT_DURATION", time.Minute),
			AllowedOrigins:    e.getSlice("ALLOWED_ORIGINS", []string{"*"}),
			SecureHeaders:     e.getBool("SECURE_HEADERS", env == "production"),
			RequestIDHeader:   e.getString("REQUEST_ID_HEADER", "X-Request-ID"),
		},
		Server: ServerConfig{
			Host:            e.getString("SERVER_HOST", "0.0.0.0"),
			Port:            e.getString("SERVER_PORT", "8080"),
			ReadTimeout:     e.getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:    e.getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:     e.getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			MaxHeaderBytes:  e.getInt("SERVER_MAX_HEADER_BYTES", 1<<20),
			GracefulTimeout: e.getDuration("SERVER_GRACEFUL_TIMEOUT", 30*time.Second),
			RequestTimeout:  e.getDuration("SERVER_REQUEST_TIMEOUT", 25*time.Second),
			EnableMetrics:   e.getBool("ENABLE_METRICS", true),
			TLSEnabled:      e.getBool("TLS_ENABLED", false),
			TLSCertFile:     e.getString("TLS_CERT_FILE", ""),
			TLSKeyFile:      e.getString("TLS_KEY_FILE", ""),
		},
		Inventory: InventoryConfig{
			LowStockThreshold: e.getInt("INVENTORY_LOW_STOCK_THRESHOLD", 2),
			DefaultEmployeeID: int64(e.getInt("SALES_DEFAULT_EMPLOYEE_ID", 1)),
			AlertCooldown:     e.getDuration("INVENTORY_ALERT_COOLDOWN", time.Hour),
		},
		Cache: CacheConfig{
			Enabled:    e.getBool("CACHE_ENABLED", true),
			ListingTTL: e.getDuration("CACHE_LISTING_TTL", 5*time.Minute),
		},
		Notification: NotificationConfig{
			SMTPHost:     e.getString("SMTP_HOST", ""),
			SMTPPort:     e.getString("SMTP_PORT", "587"),
			SMTPUsername: e.getString("SMTP_USERNAME", ""),
			SMTPPassword: e.getString("SMTP_PASSWORD", ""),
			From:         e.getString("NOTIFY_FROM", "frontdesk@localhost"),
			To:           e.getString("NOTIFY_EMAIL", ""),
		},
	}

	if cfg.AWS.SecretsName != "" {
		if err := cfg.applySecrets(context.Background(), logger); err != nil {
			return nil, fmt.Errorf("failed to apply secrets: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// Validate runs the validators that apply to the environment and reports
// every problem found
func (c *Config) Validate() error {
	validators := []Validator{&BasicValidator{}, &QueueValidator{}, &SecurityValidator{}}
	if c.IsProduction() {
		validators = append(validators, &ProductionValidator{})
	}

	errs := make([]error, 0, len(validators))
	for _, v := range validators {
		errs = append(errs, v.Validate(c))
	}
	return errors.Join(errs...)
}

// applySecrets overlays values stored in AWS Secrets Manager
func (c *Config) applySecrets(ctx context.Context, logger *slog.Logger) error {
	sm, err := NewAWSSecretsManager(ctx, c.AWS.Region, c.AWS.SecretsName, logger)
	if err != nil {
		return err
	}
	return c.ApplySecrets(ctx, sm)
}

// ApplySecrets copies known keys from the secrets source into the config
func (c *Config) ApplySecrets(ctx context.Context, sm SecretsManager) error {
	secrets, err := sm.GetSecrets(ctx, []string{"DB_PASSWORD", "REDIS_PASSWORD", "AWS_SECRET_ACCESS_KEY", "SMTP_PASSWORD"})
	if err != nil {
		return err
	}

	if v, ok := secrets["DB_PASSWORD"]; ok {
		c.Database.Password = v
	}
	if v, ok := secrets["REDIS_PASSWORD"]; ok {
		c.Redis.Password = v
		c.Asynq.RedisPassword = v
	}
	if v, ok := secrets["AWS_SECRET_ACCESS_KEY"]; ok {
		c.AWS.SecretAccessKey = v
	}
	if v, ok := secrets["SMTP_PASSWORD"]; ok {
		c.Notification.SMTPPassword = v
	}
	return nil
}

// GetDatabaseURL returns the formatted database connection string
func (c *Config) GetDatabaseURL() string {
	return fmt.Sprintf(
		"postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

// GetRedisAddr returns host:port for the cache client
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

// GetServerAddress returns the formatted server address
func (c *Config) GetServerAddress() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// UploadDir is where imported files wait for the worker
func (c *Config) UploadDir() string {
	return filepath.Join(c.Files.TempDir, "frontdesk-uploads")
}

// ReportDir is where reports are written when no bucket is configured
func (c *Config) ReportDir() string {
	return filepath.Join(c.Files.TempDir, "frontdesk-reports")
}

// MaxUploadBytes returns the upload limit in bytes
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.Files.UploadMaxSizeMB) << 20
}

// IsProduction returns true if running in production
func (c *Config) IsProduction() bool {
	return c.App.Environment == "production"
}

// IsDevelopment returns true if running in development
func (c *Config) IsDevelopment() bool {
	return c.App.Environment == "development" || c.App.Environment == "local"
}

// envReader reads typed values through viper, falling back to defaults
// when a variable is unset or malformed.
type envReader struct {
	v *viper.Viper
}

func (e envReader) getString(key, defaultValue string) string {
	if value := e.v.GetString(key); value != "" {
		return value
	}
	return defaultValue
}

func (e envReader) getBool(key string, defaultValue bool) bool {
	if value := e.v.GetString(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func (e envReader) getInt(key string, defaultValue int) int {
	if value := e.v.GetString(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func (e envReader) getDuration(key string, defaultValue time.Duration) time.Duration {
	if value := e.v.GetString(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func (e envReader) getSlice(key string, defaultValue []string) []string {
	if value := e.v.GetString(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}

func parseQueues(queuesStr string) map[string]int {
	queues := make(map[string]int)
	for _, pair := range strings.Split(queuesStr, ",") {
		parts := strings.Split(pair, ":")
		if len(parts) != 2 {
			continue
		}
		priority, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err == nil {
			queues[strings.TrimSpace(parts[0])] = priority
		}
	}
	if len(queues) == 0 {
		queues["default"] = 1
	}
	return queues
}
