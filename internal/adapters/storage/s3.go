// internal/adapters/storage/s3.go
package storage

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	v4 "github.com/aws/aws-sdk-go-v2/aws/signer/v4"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/google/uuid"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// ReportKey builds the object key of an exported report
func ReportKey(kind domain.ReportKind, at time.Time, id string) string {
	return fmt.Sprintf("reports/%s/%s/%s.xlsx", kind, at.UTC().Format("2006-01-02"), id)
}

// unsignedPayload is the payload hash S3 expects in presigned GET requests
const unsignedPayload = "UNSIGNED-PAYLOAD"

// S3Storage stores reports in an S3 bucket
type S3Storage struct {
	client   *s3.Client
	uploader *manager.Uploader
	bucket   string
	region   string
	logger   *slog.Logger

	// download links are signed here rather than through the s3 presign
	// client, whose middleware stack does not build against this aws core
	creds     aws.CredentialsProvider
	signer    *v4.Signer
	endpoint  string
	pathStyle bool
}

var _ ports.ReportStorage = (*S3Storage)(nil)

// S3Config holds S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string // For MinIO/LocalStack
	UsePathStyle    bool   // For MinIO/LocalStack
	// EnsureBucket creates the bucket on startup when it is missing
	EnsureBucket bool
}

// NewS3Storage creates a new S3 storage client
func NewS3Storage(ctx context.Context, cfg *S3Config, logger *slog.Logger) (*S3Storage, error) {
	awsCfg, err := buildAWSConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to build AWS config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.EndpointResolver = s3.EndpointResolverFromURL(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.UsePathStyle
	})

	storage := &S3Storage{
		client:   client,
		uploader: manager.NewUploader(client),
		bucket:   cfg.Bucket,
		region:   awsCfg.Region,
		logger:   logger.With(slog.String("storage", "s3")),
		creds:    awsCfg.Credentials,
		signer: v4.NewSigner(func(o *v4.SignerOptions) {
			o.DisableURIPathEscaping = true
		}),
		endpoint:  strings.TrimRight(cfg.Endpoint, "/"),
		pathStyle: cfg.UsePathStyle,
	}

	if cfg.EnsureBucket {
		if err := storage.ensureBucket(ctx); err != nil {
			return nil, fmt.Errorf("failed to ensure bucket: %w", err)
		}
	}

	logger.Info("S3 storage initialized",
		slog.String("bucket", cfg.Bucket),
		slog.String("region", cfg.Region))

	return storage, nil
}

func buildAWSConfig(ctx context.Context, cfg *S3Config) (aws.Config, error) {
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		return config.LoadDefaultConfig(ctx,
			config.WithRegion(cfg.Region),
			config.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
			),
		)
	}

	return config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
}

func (s *S3Storage) ensureBucket(ctx context.Context) error {
	_, err := s.client.HeadBucket(ctx, &s3.HeadBucketInput{Bucket: aws.String(s.bucket)})
	if err == nil {
		return nil
	}

	input := &s3.CreateBucketInput{Bucket: aws.String(s.bucket)}
	// us-east-1 rejects an explicit location constraint
	if s.region != "" && s.region != "us-east-1" {
		input.CreateBucketConfiguration = &types.CreateBucketConfiguration{
			LocationConstraint: types.BucketLocationConstraint(s.region),
		}
	}
	if _, createErr := s.client.CreateBucket(ctx, input); createErr != nil {
		return fmt.Errorf("bucket %s does not exist and could not be created: %w", s.bucket, createErr)
	}

	s.logger.Info("created S3 bucket", slog.String("bucket", s.bucket))
	return nil
}

// Upload uploads a file to S3 and returns its location
func (s *S3Storage) Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error) {
	result, err := s.uploader.Upload(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        data,
		ContentType: aws.String(detectContentType(key, contentType)),
		Metadata: map[string]string{
			"uploaded-at": time.Now().UTC().Format(time.RFC3339),
			"upload-id":   uuid.New().String(),
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}

	s.logger.InfoContext(ctx, "file uploaded",
		slog.String("key", key),
		slog.String("location", result.Location))

	return result.Location, nil
}

// GetPresignedURL generates a pre-signed URL for downloading
func (s *S3Storage) GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error) {
	if s.creds == nil {
		return "", fmt.Errorf("failed to create presigned URL: no credentials configured")
	}
	creds, err := s.creds.Retrieve(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to create presigned URL: %w", err)
	}

	u, err := s.objectURL(key)
	if err != nil {
		return "", fmt.Errorf("failed to create presigned URL: %w", err)
	}
	query := u.Query()
	query.Set("X-Amz-Expires", strconv.FormatInt(int64(duration/time.Second), 10))
	u.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return "", fmt.Errorf("failed to create presigned URL: %w", err)
	}

	signed, _, err := s.signer.PresignHTTP(ctx, creds, req, unsignedPayload, "s3", s.region, time.Now().UTC())
	if err != nil {
		return "", fmt.Errorf("failed to create presigned URL: %w", err)
	}
	return signed, nil
}

// objectURL addresses key in the bucket, on the custom endpoint when one is set
func (s *S3Storage) objectURL(key string) (*url.URL, error) {
	base := s.endpoint
	if base == "" {
		base = fmt.Sprintf("https://s3.%s.amazonaws.com", s.region)
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, err
	}

	segments := strings.Split(strings.TrimPrefix(key, "/"), "/")
	for i, seg := range segments {
		segments[i] = url.PathEscape(seg)
	}
	escapedKey := strings.Join(segments, "/")

	if s.pathStyle {
		u.Path = "/" + s.bucket + "/" + strings.TrimPrefix(key, "/")
		u.RawPath = "/" + url.PathEscape(s.bucket) + "/" + escapedKey
	} else {
		u.Host = s.bucket + "." + u.Host
		u.Path = "/" + strings.TrimPrefix(key, "/")
		u.RawPath = "/" + escapedKey
	}
	return u, nil
}

// LocalStorage keeps reports on the local filesystem. Used in development when no bucket is configured.
type LocalStorage struct {
	basePath string
	logger   *slog.Logger
}

var _ ports.ReportStorage = (*LocalStorage)(nil)

// NewLocalStorage creates a new local storage client
func NewLocalStorage(basePath string, logger *slog.Logger) *LocalStorage {
	return &LocalStorage{
		basePath: basePath,
		logger:   logger.With(slog.String("storage", "local")),
	}
}

// Upload writes data under the base path
func (l *LocalStorage) Upload(ctx context.Context, key string, data io.Reader, _ string) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("failed to create file: %w", err)
	}
	defer f.Close()

	n, err := io.Copy(f, data)
	if err != nil {
		return "", fmt.Errorf("failed to write file: %w", err)
	}

	l.logger.InfoContext(ctx, "file stored", slog.String("path", path), slog.Int64("size", n))
	return path, nil
}

// GetPresignedURL returns a file URL; local files do not expire
func (l *LocalStorage) GetPresignedURL(_ context.Context, key string, _ time.Duration) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("failed to stat file: %w", err)
	}
	return "file://" + filepath.ToSlash(path), nil
}

func (l *LocalStorage) resolve(key string) (string, error) {
	path := filepath.Join(l.basePath, filepath.FromSlash(key))
	if !strings.HasPrefix(path, filepath.Clean(l.basePath)+string(filepath.Separator)) {
		return "", fmt.Errorf("invalid storage key %q", key)
	}
	return path, nil
}

func detectContentType(key, contentType string) string {
	if contentType != "" {
		return contentType
	}
	if ct := mime.TypeByExtension(filepath.Ext(key)); ct != "" {
		return ct
	}
	return "application/octet-stream"
}
