// internal/pkg/logger/handlers.go
package logger

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"regexp"
	"strings"
	"sync"
)

const redacted = "***REDACTED***"

// ContextHandler adds request and task values found in ctx to every record
type ContextHandler struct {
	handler slog.Handler
	keys    []ContextKey
}

// NewContextHandler wraps handler with context extraction
func NewContextHandler(handler slog.Handler, keys []ContextKey) *ContextHandler {
	if keys == nil {
		keys = defaultContextKeys()
	}
	return &ContextHandler{handler: handler, keys: keys}
}

func (h *ContextHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *ContextHandler) Handle(ctx context.Context, record slog.Record) error {
	attrs := extractContextAttrs(ctx, h.keys)
	if len(attrs) == 0 {
		return h.handler.Handle(ctx, record)
	}

	r := record.Clone()
	r.Add(attrs...)
	return h.handler.Handle(ctx, r)
}

func (h *ContextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &ContextHandler{handler: h.handler.WithAttrs(attrs), keys: h.keys}
}

func (h *ContextHandler) WithGroup(name string) slog.Handler {
	return &ContextHandler{handler: h.handler.WithGroup(name), keys: h.keys}
}

// SamplingHandler drops a share of debug and info records. Warnings and
// errors always pass.
type SamplingHandler struct {
	handler    slog.Handler
	sampleRate float64
}

// NewSamplingHandler keeps roughly sampleRate of the low-level records
func NewSamplingHandler(handler slog.Handler, sampleRate float64) *SamplingHandler {
	return &SamplingHandler{handler: handler, sampleRate: sampleRate}
}

func (h *SamplingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	if level >= slog.LevelWarn {
		return h.handler.Enabled(ctx, level)
	}
	return rand.Float64() < h.sampleRate && h.handler.Enabled(ctx, level)
}

func (h *SamplingHandler) Handle(ctx context.Context, record slog.Record) error {
	if record.Level < slog.LevelWarn {
		record.AddAttrs(slog.Float64("sample_rate", h.sampleRate))
	}
	return h.handler.Handle(ctx, record)
}

func (h *SamplingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &SamplingHandler{handler: h.handler.WithAttrs(attrs), sampleRate: h.sampleRate}
}

func (h *SamplingHandler) WithGroup(name string) slog.Handler {
	return &SamplingHandler{handler: h.handler.WithGroup(name), sampleRate: h.sampleRate}
}

var (
	secretAssignment = regexp.MustCompile(`(?i)(password|pwd|secret|token|api[-_]?key)\s*[:=]\s*["']?([^"'\s]+)`)
	emailAddress     = regexp.MustCompile(`([A-Za-z0-9._%+-])[A-Za-z0-9._%+-]*(@[A-Za-z0-9.-]+\.[A-Za-z]{2,})`)
)

// sensitiveKeys are attribute key fragments whose values are never logged.
// Customer contact details fall under "contact".
var sensitiveKeys = []string{
	"password", "pwd", "secret", "token", "auth",
	"api_key", "access_key", "contact",
}

// RedactingHandler masks credentials and customer contact details in
// messages and attributes, including attributes nested in groups.
type RedactingHandler struct {
	handler slog.Handler
}

// NewRedactingHandler wraps handler with redaction
func NewRedactingHandler(handler slog.Handler) *RedactingHandler {
	return &RedactingHandler{handler: handler}
}

func (h *RedactingHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.handler.Enabled(ctx, level)
}

func (h *RedactingHandler) Handle(ctx context.Context, record slog.Record) error {
	r := slog.NewRecord(record.Time, record.Level, redactString(record.Message), record.PC)
	record.Attrs(func(a slog.Attr) bool {
		r.AddAttrs(redactAttr(a))
		return true
	})
	return h.handler.Handle(ctx, r)
}

func (h *RedactingHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	clean := make([]slog.Attr, len(attrs))
	for i, a := range attrs {
		clean[i] = redactAttr(a)
	}
	return &RedactingHandler{handler: h.handler.WithAttrs(clean)}
}

func (h *RedactingHandler) WithGroup(name string) slog.Handler {
	return &RedactingHandler{handler: h.handler.WithGroup(name)}
}

func redactAttr(a slog.Attr) slog.Attr {
	if isSensitiveKey(a.Key) {
		return slog.String(a.Key, redacted)
	}

	v := a.Value.Resolve()
	switch v.Kind() {
	case slog.KindGroup:
		group := v.Group()
		clean := make([]slog.Attr, len(group))
		for i, ga := range group {
			clean[i] = redactAttr(ga)
		}
		return slog.Attr{Key: a.Key, Value: slog.GroupValue(clean...)}
	case slog.KindString:
		return slog.String(a.Key, redactString(v.String()))
	default:
		return slog.Attr{Key: a.Key, Value: v}
	}
}

func isSensitiveKey(key string) bool {
	key = strings.ToLower(key)
	for _, s := range sensitiveKeys {
		if strings.Contains(key, s) {
			return true
		}
	}
	return false
}

// redactString masks secret assignments and keeps only the first letter
// and domain of e-mail addresses.
func redactString(s string) string {
	s = secretAssignment.ReplaceAllString(s, "$1="+redacted)
	return emailAddress.ReplaceAllString(s, "$1***$2")
}

// ConsoleHandler writes one colored line per record for local development
type ConsoleHandler struct {
	w      io.Writer
	mu     *sync.Mutex
	level  slog.Leveler
	prefix string
	attrs  []slog.Attr
}

// NewConsoleHandler creates a console handler. Only opts.Level is used.
func NewConsoleHandler(w io.Writer, opts *slog.HandlerOptions) *ConsoleHandler {
	var level slog.Leveler = slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level
	}
	return &ConsoleHandler{w: w, mu: &sync.Mutex{}, level: level}
}

func (h *ConsoleHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *ConsoleHandler) Handle(_ context.Context, r slog.Record) error {
	var buf bytes.Buffer

	fmt.Fprintf(&buf, "%s%s %-5s\033[0m %s",
		levelColor(r.Level), r.Time.Format("15:04:05.000"), r.Level.String(), r.Message)

	for _, a := range h.attrs {
		writeConsoleAttr(&buf, "", a)
	}
	r.Attrs(func(a slog.Attr) bool {
		writeConsoleAttr(&buf, h.prefix, a)
		return true
	})
	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := h.w.Write(buf.Bytes())
	return err
}

func (h *ConsoleHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]slog.Attr{}, h.attrs...)
	for _, a := range attrs {
		a.Key = h.prefix + a.Key
		c.attrs = append(c.attrs, a)
	}
	return &c
}

func (h *ConsoleHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.prefix = h.prefix + name + "."
	return &c
}

func writeConsoleAttr(buf *bytes.Buffer, prefix string, a slog.Attr) {
	v := a.Value.Resolve()
	if v.Kind() == slog.KindGroup {
		for _, ga := range v.Group() {
			writeConsoleAttr(buf, prefix+a.Key+".", ga)
		}
		return
	}
	if a.Key == "" {
		return
	}
	fmt.Fprintf(buf, " \033[36m%s%s\033[0m=%v", prefix, a.Key, v.Any())
}

func levelColor(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "\033[31m"
	case level >= slog.LevelWarn:
		return "\033[33m"
	case level >= slog.LevelInfo:
		return "\033[34m"
	default:
		return "\033[37m"
	}
}
