package config

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "frontdesk-api", cfg.App.Name)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, "frontdesk", cfg.Database.Name)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.Equal(t, 2, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, int64(1), cfg.Inventory.DefaultEmployeeID)
	assert.Equal(t, 5*time.Minute, cfg.Cache.ListingTTL)
	assert.Equal(t, "localhost:6379", cfg.Asynq.RedisAddr)
	assert.Equal(t, 6, cfg.Asynq.Queues["critical"])
	assert.Equal(t, 25*time.Second, cfg.Server.RequestTimeout)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_MAX_CONNECTIONS", "40")
	t.Setenv("REDIS_HOST", "cache.internal")
	t.Setenv("INVENTORY_LOW_STOCK_THRESHOLD", "5")
	t.Setenv("CACHE_LISTING_TTL", "90s")
	t.Setenv("ALLOWED_ORIGINS", "https://desk.example.com, https://admin.example.com")
	t.Setenv("DB_AUTO_MIGRATE", "not-a-bool")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, int32(40), cfg.Database.MaxConnections)
	assert.Equal(t, "cache.internal:6379", cfg.GetRedisAddr())
	assert.Equal(t, "cache.internal:6379", cfg.Asynq.RedisAddr)
	assert.Equal(t, 5, cfg.Inventory.LowStockThreshold)
	assert.Equal(t, 90*time.Second, cfg.Cache.ListingTTL)
	assert.Equal(t, []string{"https://desk.example.com", "https://admin.example.com"}, cfg.Security.AllowedOrigins)
	assert.True(t, cfg.Database.AutoMigrate, "malformed values fall back to the default")
}

func TestLoad_RejectsInvalidRanges(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_MAX_CONNECTIONS", "1")
	t.Setenv("DB_MIN_CONNECTIONS", "4")

	_, err := Load(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_connections")
}

func TestConfig_ProductionValidation(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("ALLOWED_ORIGINS", "https://desk.example.com")

	_, err := Load(discardLogger())
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrMissingRequiredConfig))

	t.Setenv("DB_PASSWORD", "s3cure-password")
	t.Setenv("DB_SSL_MODE", "require")
	t.Setenv("AWS_S3_BUCKET", "frontdesk-reports")

	cfg, err := Load(discardLogger())
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.True(t, cfg.Security.SecureHeaders)
}

func TestValidateRequiredFields(t *testing.T) {
	cfg := &Config{}

	err := validateRequiredFields(cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingRequiredConfig)
	assert.Contains(t, err.Error(), "App.Name")
}

type fakeSecretsClient struct {
	calls  int
	secret string
	err    error
}

func (f *fakeSecretsClient) GetSecretValue(_ context.Context, _ *secretsmanager.GetSecretValueInput,
	_ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(f.secret)}, nil
}

func TestAWSSecretsManager_GetSecrets(t *testing.T) {
	client := &fakeSecretsClient{secret: `{"DB_PASSWORD":"from-vault","OTHER":"x"}`}
	sm := newAWSSecretsManager(client, "frontdesk/prod", discardLogger())
	ctx := context.Background()

	secrets, err := sm.GetSecrets(ctx, []string{"DB_PASSWORD", "MISSING"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB_PASSWORD": "from-vault"}, secrets)

	_, err = sm.GetSecrets(ctx, []string{"OTHER"})
	require.NoError(t, err)
	assert.Equal(t, 1, client.calls, "second read is served from cache")
}

func TestAWSSecretsManager_Errors(t *testing.T) {
	ctx := context.Background()

	sm := newAWSSecretsManager(&fakeSecretsClient{err: errors.New("denied")}, "s", discardLogger())
	_, err := sm.GetSecrets(ctx, []string{"DB_PASSWORD"})
	assert.ErrorContains(t, err, "denied")

	sm = newAWSSecretsManager(&fakeSecretsClient{secret: "not json"}, "s", discardLogger())
	_, err = sm.GetSecrets(ctx, []string{"DB_PASSWORD"})
	assert.ErrorContains(t, err, "failed to parse secret JSON")
}

func TestConfig_ApplySecrets(t *testing.T) {
	cfg := &Config{}
	sm := newAWSSecretsManager(&fakeSecretsClient{
		secret: `{"DB_PASSWORD":"db-pass","REDIS_PASSWORD":"redis-pass"}`,
	}, "s", discardLogger())

	require.NoError(t, cfg.ApplySecrets(context.Background(), sm))
	assert.Equal(t, "db-pass", cfg.Database.Password)
	assert.Equal(t, "redis-pass", cfg.Redis.Password)
	assert.Equal(t, "redis-pass", cfg.Asynq.RedisPassword)
	assert.Empty(t, cfg.AWS.SecretAccessKey)
}

func TestEnvSecretsManager(t *testing.T) {
	t.Setenv("DB_PASSWORD", "env-pass")

	secrets, err := EnvSecretsManager{}.GetSecrets(context.Background(), []string{"DB_PASSWORD", "REDIS_PASSWORD"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"DB_PASSWORD": "env-pass"}, secrets)
}

func TestParseQueues(t *testing.T) {
	assert.Equal(t, map[string]int{"critical": 6, "default": 3}, parseQueues("critical:6, default:3"))
	assert.Equal(t, map[string]int{"default": 1}, parseQueues("garbage"))
}

func TestConfig_FilePaths(t *testing.T) {
	cfg := &Config{Files: FilesConfig{TempDir: "/var/tmp", UploadMaxSizeMB: 10}}

	assert.Equal(t, "/var/tmp/frontdesk-uploads", cfg.UploadDir())
	assert.Equal(t, "/var/tmp/frontdesk-reports", cfg.ReportDir())
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes())
}

func TestLoad_ReportsEveryProblem(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("DB_MAX_CONNECTIONS", "1")
	t.Setenv("DB_MIN_CONNECTIONS", "4")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "45s")
	t.Setenv("ASYNQ_QUEUES", "critical:6,default:3")

	_, err := Load(discardLogger())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "max_connections")
	assert.Contains(t, err.Error(), "request timeout (45s) must be shorter than the write timeout (30s)")
	assert.Contains(t, err.Error(), `asynq queue "low" needs a positive priority`)
}

func TestValidateRequiredFields_ListsAllMissing(t *testing.T) {
	cfg := &Config{}
	cfg.App.Name = "frontdesk"

	err := validateRequiredFields(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Database.Host")
	assert.Contains(t, err.Error(), "Redis.Port")
	assert.Contains(t, err.Error(), "Server.Port")
	assert.NotContains(t, err.Error(), "App.Name")
}

func TestProductionValidator_AlertMail(t *testing.T) {
	cfg := &Config{}
	cfg.Database.Password = "s3cure"
	cfg.Database.SSLMode = "require"
	cfg.Security.SecureHeaders = true
	cfg.AWS.S3Bucket = "reports"
	cfg.Notification.SMTPHost = "smtp.example.com"

	err := (&ProductionValidator{}).Validate(cfg)
	require.ErrorIs(t, err, ErrMissingRequiredConfig)
	assert.Contains(t, err.Error(), "alert mail")

	cfg.Notification.From = "desk@example.com"
	cfg.Notification.To = "ops@example.com"
	assert.NoError(t, (&ProductionValidator{}).Validate(cfg))
}
