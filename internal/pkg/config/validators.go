// internal/pkg/config/validators.go
package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"
)

// ErrMissingRequiredConfig is returned when a required setting is empty
var ErrMissingRequiredConfig = errors.New("missing required configuration")

// maxPresignExpiry is the longest lifetime S3 accepts for a presigned URL
const maxPresignExpiry = 7 * 24 * time.Hour

// taskQueues are the queues tasks are routed to; the worker must poll all of them
var taskQueues = []string{"critical", "default", "low"}

// Validator checks one aspect of the configuration. It reports every
// problem it finds, joined into one error.
type Validator interface {
	Validate(cfg *Config) error
}

// problems accumulates validation failures
type problems []error

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Errorf(format, args...))
}

func (p problems) err() error {
	return errors.Join(p...)
}

// BasicValidator checks required fields and numeric ranges
type BasicValidator struct{}

func (v *BasicValidator) Validate(cfg *Config) error {
	var p problems
	if err := validateRequiredFields(cfg); err != nil {
		p = append(p, err)
	}

	if cfg.Database.MaxConnections < cfg.Database.MinConnections {
		p.addf("database max_connections (%d) must be >= min_connections (%d)",
			cfg.Database.MaxConnections, cfg.Database.MinConnections)
	}
	if cfg.Redis.PoolSize <= 0 {
		p.addf("redis pool_size must be positive")
	}
	if cfg.Inventory.LowStockThreshold < 0 {
		p.addf("low stock threshold cannot be negative")
	}
	if cfg.Inventory.DefaultEmployeeID <= 0 {
		p.addf("default employee id must be positive")
	}
	if cfg.Inventory.AlertCooldown < 0 {
		p.addf("alert cooldown cannot be negative")
	}
	if cfg.Files.UploadMaxSizeMB <= 0 {
		p.addf("upload max size must be positive")
	}
	if cfg.Files.ReportURLExpiry <= 0 || cfg.Files.ReportURLExpiry > maxPresignExpiry {
		p.addf("report url expiry must be between 1s and %s", maxPresignExpiry)
	}
	if cfg.Server.RequestTimeout > 0 && cfg.Server.WriteTimeout > 0 &&
		cfg.Server.RequestTimeout >= cfg.Server.WriteTimeout {
		p.addf("request timeout (%s) must be shorter than the write timeout (%s)",
			cfg.Server.RequestTimeout, cfg.Server.WriteTimeout)
	}

	return p.err()
}

// QueueValidator checks the worker polls every queue tasks are sent to
type QueueValidator struct{}

func (v *QueueValidator) Validate(cfg *Config) error {
	var p problems
	if cfg.Asynq.Concurrency <= 0 {
		p.addf("asynq concurrency must be positive")
	}
	for _, q := range taskQueues {
		if cfg.Asynq.Queues[q] <= 0 {
			p.addf("asynq queue %q needs a positive priority", q)
		}
	}
	return p.err()
}

// ProductionValidator rejects development defaults in production
type ProductionValidator struct{}

func (v *ProductionValidator) Validate(cfg *Config) error {
	var p problems
	if cfg.Database.Password == "" || cfg.Database.Password == "frontdesk_dev" {
		p.addf("%w: database password", ErrMissingRequiredConfig)
	}
	if cfg.Database.SSLMode == "disable" {
		p.addf("database SSL must be enabled in production")
	}
	if !cfg.Security.SecureHeaders {
		p.addf("secure headers must be enabled in production")
	}
	if cfg.AWS.S3Bucket == "" {
		p.addf("%w: report bucket", ErrMissingRequiredConfig)
	}
	if cfg.Server.TLSEnabled && (cfg.Server.TLSCertFile == "" || cfg.Server.TLSKeyFile == "") {
		p.addf("TLS cert and key files must be provided when TLS is enabled")
	}
	if n := cfg.Notification; n.SMTPHost != "" && (n.From == "" || n.To == "") {
		p.addf("%w: alert mail sender and recipient", ErrMissingRequiredConfig)
	}
	return p.err()
}

// SecurityValidator checks rate limits and allowed origins
type SecurityValidator struct{}

func (v *SecurityValidator) Validate(cfg *Config) error {
	var p problems
	if cfg.Security.RateLimitRequests <= 0 {
		p.addf("rate_limit_requests must be positive")
	}
	if cfg.Security.RateLimitDuration <= 0 {
		p.addf("rate_limit_duration must be positive")
	}
	if cfg.IsProduction() {
		for _, origin := range cfg.Security.AllowedOrigins {
			if origin == "*" {
				p.addf("wildcard origin (*) not allowed in production")
				break
			}
		}
	}
	return p.err()
}

// validateRequiredFields walks the struct checking `required:"true"` tags
func validateRequiredFields(cfg interface{}) error {
	v := reflect.ValueOf(cfg)
	if v.Kind() == reflect.Ptr {
		v = v.Elem()
	}

	var missing []string
	collectMissing(v, "", &missing)
	if len(missing) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", ErrMissingRequiredConfig, strings.Join(missing, ", "))
}

func collectMissing(v reflect.Value, prefix string, missing *[]string) {
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		name := t.Field(i).Name
		if prefix != "" {
			name = prefix + "." + name
		}

		if t.Field(i).Tag.Get("required") == "true" && isZeroValue(field) {
			*missing = append(*missing, name)
		}
		if field.Kind() == reflect.Struct {
			collectMissing(field, name, missing)
		}
	}
}

func isZeroValue(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return strings.TrimSpace(v.String()) == ""
	case reflect.Slice, reflect.Map:
		return v.IsNil() || v.Len() == 0
	case reflect.Ptr, reflect.Interface:
		return v.IsNil()
	default:
		return v.IsZero()
	}
}
