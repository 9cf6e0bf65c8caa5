// internal/pkg/config/secrets.go
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
)

// SecretsManager resolves secret values by key
type SecretsManager interface {
	GetSecrets(ctx context.Context, keys []string) (map[string]string, error)
}

// secretValueGetter is the part of the Secrets Manager client we use
type secretValueGetter interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// AWSSecretsManager reads a JSON secret from AWS Secrets Manager
type AWSSecretsManager struct {
	client     secretValueGetter
	secretName string
	cache      map[string]string
	cacheMu    sync.RWMutex
	lastFetch  time.Time
	ttl        time.Duration
	logger     *slog.Logger
}

// NewAWSSecretsManager creates a new AWS Secrets Manager client
func NewAWSSecretsManager(ctx context.Context, region, secretName string, logger *slog.Logger) (*AWSSecretsManager, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	return newAWSSecretsManager(secretsmanager.NewFromConfig(cfg), secretName, logger), nil
}

func newAWSSecretsManager(client secretValueGetter, secretName string, logger *slog.Logger) *AWSSecretsManager {
	return &AWSSecretsManager{
		client:     client,
		secretName: secretName,
		cache:      make(map[string]string),
		ttl:        5 * time.Minute,
		logger:     logger.With(slog.String("component", "secrets")),
	}
}

// GetSecrets returns the requested keys present in the secret
func (sm *AWSSecretsManager) GetSecrets(ctx context.Context, keys []string) (map[string]string, error) {
	sm.cacheMu.RLock()
	fresh := time.Since(sm.lastFetch) < sm.ttl && len(sm.cache) > 0
	data := sm.cache
	sm.cacheMu.RUnlock()

	if !fresh {
		sm.logger.InfoContext(ctx, "fetching secrets", slog.String("secret_name", sm.secretName))

		result, err := sm.client.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
			SecretId:     aws.String(sm.secretName),
			VersionStage: aws.String("AWSCURRENT"),
		})
		if err != nil {
			return nil, fmt.Errorf("failed to get secret value: %w", err)
		}
		if result.SecretString == nil {
			return nil, fmt.Errorf("secret %s has no string value", sm.secretName)
		}

		var fetched map[string]string
		if err := json.Unmarshal([]byte(*result.SecretString), &fetched); err != nil {
			return nil, fmt.Errorf("failed to parse secret JSON: %w", err)
		}
		data = fetched

		sm.cacheMu.Lock()
		sm.cache = data
		sm.lastFetch = time.Now()
		sm.cacheMu.Unlock()
	}

	filtered := make(map[string]string, len(keys))
	for _, key := range keys {
		if val, ok := data[key]; ok {
			filtered[key] = val
		}
	}
	return filtered, nil
}

// EnvSecretsManager resolves secrets from environment variables
type EnvSecretsManager struct{}

// GetSecrets returns the keys that are set in the environment
func (EnvSecretsManager) GetSecrets(_ context.Context, keys []string) (map[string]string, error) {
	secrets := make(map[string]string)
	for _, key := range keys {
		if val := os.Getenv(key); val != "" {
			secrets[key] = val
		}
	}
	return secrets, nil
}
