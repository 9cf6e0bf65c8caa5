// test/helpers/helpers.go
package helpers

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/frontdesk-be/internal/adapters/db"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/pkg/config"
)

// TestDB represents a test database instance
type TestDB struct {
	PgxPool  *pgxpool.Pool
	Database *db.Database
	Resource *dockertest.Resource
	Pool     *dockertest.Pool
	Config   *db.Config
	URL      string
}

// TestRedis represents a test Redis instance
type TestRedis struct {
	Client *redis.Client
	Server *miniredis.Miniredis
}

// TestLogger returns a test logger
func TestLogger() *slog.Logger {
	level := slog.LevelError
	if testing.Verbose() {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level}))
}

// SetupTestDB starts a PostgreSQL container and applies the embedded migrations
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not connect to Docker")

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "16-alpine",
		Env: []string{
			"POSTGRES_USER=test",
			"POSTGRES_PASSWORD=test",
			"POSTGRES_DB=test_frontdesk",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL container")

	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	dbConfig := &db.Config{
		Host:               "localhost",
		Port:               resource.GetPort("5432/tcp"),
		User:               "test",
		Password:           "test",
		Database:           "test_frontdesk",
		SSLMode:            "disable",
		MaxConnections:     5,
		MinConnections:     1,
		MaxConnLifetime:    time.Hour,
		MaxConnIdleTime:    time.Minute * 30,
		HealthCheckPeriod:  time.Minute,
		ConnectTimeout:     time.Second * 10,
		StatementCacheMode: "describe",
		EnableQueryLogging: testing.Verbose(),
	}

	var database *db.Database
	err = pool.Retry(func() error {
		ctx := context.Background()
		var err error
		database, err = db.NewDatabase(ctx, dbConfig, TestLogger())
		if err != nil {
			return err
		}
		return database.Ping(ctx)
	})
	require.NoError(t, err, "Could not connect to PostgreSQL")
	t.Cleanup(database.Close)

	url := fmt.Sprintf("postgresql://%s:%s@%s:%s/%s?sslmode=%s",
		dbConfig.User, dbConfig.Password, dbConfig.Host, dbConfig.Port,
		dbConfig.Database, dbConfig.SSLMode)

	err = db.RunMigrationsWithRetry(context.Background(), &db.MigrationConfig{DatabaseURL: url}, TestLogger(), 3)
	require.NoError(t, err, "Could not run migrations")

	return &TestDB{
		PgxPool:  database.Pool(),
		Database: database,
		Resource: resource,
		Pool:     pool,
		Config:   dbConfig,
		URL:      url,
	}
}

// SetupTestRedis creates an in-memory Redis for testing
func SetupTestRedis(t *testing.T) *TestRedis {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	t.Cleanup(func() {
		client.Close()
	})

	return &TestRedis{
		Client: client,
		Server: mr,
	}
}

// SetupMockDB creates a sqlmock database for unit testing
func SetupMockDB(t *testing.T) (sqlmock.Sqlmock, *sql.DB) {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err, "Failed to create mock DB")

	t.Cleanup(func() {
		conn.Close()
	})

	return mock, conn
}

// LoadTestConfig returns a test configuration
func LoadTestConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{
			Name:        "frontdesk-test",
			Environment: "test",
			Version:     "test",
			LogLevel:    "debug",
			LogFormat:   "text",
			Debug:       true,
		},
		Database: config.DatabaseConfig{
			Host:           "localhost",
			Port:           "5432",
			User:           "test",
			Password:       "test",
			Name:           "test_frontdesk",
			SSLMode:        "disable",
			MaxConnections: 10,
			MinConnections: 2,
		},
		Redis: config.RedisConfig{
			Host:     "localhost",
			Port:     "6379",
			PoolSize: 10,
		},
		Files: config.FilesConfig{
			UploadMaxSizeMB:   10,
			ProcessingTimeout: 5 * time.Minute,
			TempDir:           os.TempDir(),
			TempFileMaxAge:    24 * time.Hour,
			ReportURLExpiry:   time.Hour,
		},
		Security: config.SecurityConfig{
			RateLimitRequests: 100,
			RateLimitDuration: time.Minute,
			AllowedOrigins:    []string{"*"},
			RequestIDHeader:   "X-Request-ID",
		},
		Server: config.ServerConfig{
			Host:         "localhost",
			Port:         "8080",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
		},
		Inventory: config.InventoryConfig{
			LowStockThreshold: 2,
			DefaultEmployeeID: domain.DefaultEmployeeID,
			AlertCooldown:     time.Hour,
		},
		Cache: config.CacheConfig{
			Enabled:    true,
			ListingTTL: 5 * time.Minute,
		},
	}
}

// CreateTestCustomer creates a test customer
func CreateTestCustomer(overrides ...func(*domain.Customer)) *domain.Customer {
	c := &domain.Customer{
		ID:          1,
		Name:        "Alice",
		ContactInfo: "555-1234",
		CreatedAt:   time.Now().UTC(),
	}
	for _, override := range overrides {
		override(c)
	}
	return c
}

// CreateTestDevice creates an available test device
func CreateTestDevice(overrides ...func(*domain.Device)) *domain.Device {
	d := &domain.Device{
		ID:        1,
		Name:      "Pod1",
		Model:     "ModelX",
		Status:    domain.DeviceAvailable,
		CreatedAt: time.Now().UTC(),
		UpdatedAt: time.Now().UTC(),
	}
	for _, override := range overrides {
		override(d)
	}
	return d
}

// CreateTestEmployee creates a test employee
func CreateTestEmployee(overrides ...func(*domain.Employee)) *domain.Employee {
	e := &domain.Employee{
		ID:         domain.DefaultEmployeeID,
		Name:       "Front Desk",
		Position:   "Clerk",
		Department: "Retail",
	}
	for _, override := range overrides {
		override(e)
	}
	return e
}

// CreateTestInventoryItem creates a balanced test inventory row
func CreateTestInventoryItem(overrides ...func(*domain.InventoryItem)) *domain.InventoryItem {
	item := &domain.InventoryItem{
		ID:           1,
		ItemName:     "Pod1",
		QuantityIn:   10,
		QuantityOut:  0,
		CurrentStock: 10,
		UpdatedAt:    time.Now().UTC(),
	}
	for _, override := range overrides {
		override(item)
	}
	return item
}

// CreateTestSale creates a test sale
func CreateTestSale(overrides ...func(*domain.Sale)) *domain.Sale {
	s := &domain.Sale{
		ID:          1,
		EmployeeID:  domain.DefaultEmployeeID,
		ProductName: "Pod1",
		SaleDate:    domain.Today(time.Now()),
		Amount:      decimal.RequireFromString("19.99"),
	}
	for _, override := range overrides {
		override(s)
	}
	return s
}

// CreateTempFile creates a temporary file for testing
func CreateTempFile(t *testing.T, content []byte, extension string) string {
	t.Helper()

	file, err := os.CreateTemp(t.TempDir(), fmt.Sprintf("test-*%s", extension))
	require.NoError(t, err, "Failed to create temp file")

	_, err = file.Write(content)
	require.NoError(t, err, "Failed to write to temp file")
	require.NoError(t, file.Close())

	return file.Name()
}

// AssertEventuallyWithTimeout asserts that a condition is met within a timeout
func AssertEventuallyWithTimeout(t *testing.T, condition func() bool, timeout time.Duration, msg string) {
	t.Helper()

	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(100 * time.Millisecond)
	}

	t.Errorf("Condition not met within %v: %s", timeout, msg)
}

// TruncateAllTables empties the desk tables. The seeded counter employee is kept.
func TruncateAllTables(t *testing.T, pool *pgxpool.Pool) {
	t.Helper()

	ctx := context.Background()
	_, err := pool.Exec(ctx, `TRUNCATE TABLE borrowings, sales, inventory, devices, customers RESTART IDENTITY CASCADE`)
	require.NoError(t, err, "Failed to truncate tables")

	_, err = pool.Exec(ctx, `DELETE FROM employees WHERE id <> $1`, domain.DefaultEmployeeID)
	require.NoError(t, err, "Failed to clean employees")
	_, err = pool.Exec(ctx, `SELECT setval(pg_get_serial_sequence('employees', 'id'), (SELECT MAX(id) FROM employees))`)
	require.NoError(t, err, "Failed to reset employee ids")
}
