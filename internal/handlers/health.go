// internal/handlers/health.go
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"runtime"
	"time"

	"github.com/hibiken/asynq"
	"github.com/redis/go-redis/v9"

	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// Health states
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
	StatusDegraded  = "degraded"
)

// QueueInspector is the part of *asynq.Inspector the health check reads
type QueueInspector interface {
	Queues() ([]string, error)
	GetQueueInfo(queue string) (*asynq.QueueInfo, error)
	Servers() ([]*asynq.ServerInfo, error)
}

// HealthHandler handles liveness, readiness and dependency health
type HealthHandler struct {
	responder
	db          ports.Database
	redis       *redis.Client
	queues      QueueInspector
	version     string
	environment string
	startTime   time.Time
}

// NewHealthHandler creates a new health handler. queues may be nil.
func NewHealthHandler(
	database ports.Database,
	redisClient *redis.Client,
	queues QueueInspector,
	version, environment string,
	logger *slog.Logger,
) *HealthHandler {
	return &HealthHandler{
		responder:   newResponder(logger, "health"),
		db:          database,
		redis:       redisClient,
		queues:      queues,
		version:     version,
		environment: environment,
		startTime:   time.Now(),
	}
}

// HealthStatus represents the health status of the application
type HealthStatus struct {
	Status      string                 `json:"status"`
	Version     string                 `json:"version"`
	Environment string                 `json:"environment"`
	Uptime      string                 `json:"uptime"`
	Timestamp   time.Time              `json:"timestamp"`
	Services    map[string]ServiceInfo `json:"services"`
	System      SystemInfo             `json:"system"`
}

// ServiceInfo represents the status of a service dependency
type ServiceInfo struct {
	Status       string         `json:"status"`
	Message      string         `json:"message,omitempty"`
	ResponseTime string         `json:"response_time,omitempty"`
	Details      map[string]any `json:"details,omitempty"`
}

// SystemInfo represents process level information
type SystemInfo struct {
	GoVersion     string `json:"go_version"`
	NumGoroutines int    `json:"num_goroutines"`
	NumCPU        int    `json:"num_cpu"`
	MemoryAllocMB uint64 `json:"memory_alloc_mb"`
	NumGC         uint32 `json:"num_gc"`
}

// ReadinessStatus reports whether the API can serve traffic
type ReadinessStatus struct {
	Ready   bool              `json:"ready"`
	Details map[string]string `json:"details"`
}

// Health handles GET /health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	health := HealthStatus{
		Status:      StatusHealthy,
		Version:     h.version,
		Environment: h.environment,
		Uptime:      time.Since(h.startTime).Round(time.Second).String(),
		Timestamp:   time.Now().UTC(),
		Services: map[string]ServiceInfo{
			"database": h.checkDatabase(ctx),
			"redis":    h.checkRedis(ctx),
		},
		System: systemInfo(),
	}
	if h.queues != nil {
		health.Services["asynq"] = h.checkQueues(ctx)
	}

	for _, svc := range health.Services {
		if svc.Status != StatusHealthy {
			health.Status = StatusDegraded
		}
	}

	status := http.StatusOK
	if health.Status != StatusHealthy {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, status, health)
}

// Live handles GET /health/live
func (h *HealthHandler) Live(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, http.StatusOK, map[string]string{"status": "alive"})
}

// Readiness handles GET /health/ready
func (h *HealthHandler) Readiness(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 3*time.Second)
	defer cancel()

	ready := ReadinessStatus{Ready: true, Details: make(map[string]string)}

	if err := h.db.Ping(ctx); err != nil {
		ready.Ready = false
		ready.Details["database"] = "not ready"
	} else {
		ready.Details["database"] = "ready"
	}

	if err := h.redis.Ping(ctx).Err(); err != nil {
		ready.Ready = false
		ready.Details["redis"] = "not ready"
	} else {
		ready.Details["redis"] = "ready"
	}

	status := http.StatusOK
	if !ready.Ready {
		status = http.StatusServiceUnavailable
	}

	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	h.respondJSON(w, status, ready)
}

func (h *HealthHandler) checkDatabase(ctx context.Context) ServiceInfo {
	start := time.Now()

	if err := h.db.Ping(ctx); err != nil {
		h.logger.ErrorContext(ctx, "database health check failed", "err", err)
		return ServiceInfo{Status: StatusUnhealthy, Message: err.Error()}
	}

	return ServiceInfo{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		Details:      h.db.Health(ctx),
	}
}

func (h *HealthHandler) checkRedis(ctx context.Context) ServiceInfo {
	start := time.Now()

	pong, err := h.redis.Ping(ctx).Result()
	if err != nil {
		h.logger.ErrorContext(ctx, "redis health check failed", "err", err)
		return ServiceInfo{Status: StatusUnhealthy, Message: err.Error()}
	}

	stats := h.redis.PoolStats()
	return ServiceInfo{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		Details: map[string]any{
			"ping":        pong,
			"total_conns": stats.TotalConns,
			"idle_conns":  stats.IdleConns,
			"stale_conns": stats.StaleConns,
		},
	}
}

func (h *HealthHandler) checkQueues(ctx context.Context) ServiceInfo {
	start := time.Now()

	queues, err := h.queues.Queues()
	if err != nil {
		h.logger.ErrorContext(ctx, "asynq health check failed", "err", err)
		return ServiceInfo{Status: StatusUnhealthy, Message: err.Error()}
	}

	queueStats := make(map[string]any, len(queues))
	for _, queue := range queues {
		qInfo, err := h.queues.GetQueueInfo(queue)
		if err != nil {
			continue
		}
		queueStats[queue] = map[string]int{
			"size":      qInfo.Size,
			"active":    qInfo.Active,
			"pending":   qInfo.Pending,
			"scheduled": qInfo.Scheduled,
			"retry":     qInfo.Retry,
			"archived":  qInfo.Archived,
		}
	}

	details := map[string]any{"queues": queueStats}
	if servers, err := h.queues.Servers(); err == nil {
		details["servers"] = len(servers)
	}

	return ServiceInfo{
		Status:       StatusHealthy,
		ResponseTime: time.Since(start).String(),
		Details:      details,
	}
}

func systemInfo() SystemInfo {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	return SystemInfo{
		GoVersion:     runtime.Version(),
		NumGoroutines: runtime.NumGoroutine(),
		NumCPU:        runtime.NumCPU(),
		MemoryAllocMB: mem.Alloc / 1024 / 1024,
		NumGC:         mem.NumGC,
	}
}
