// internal/workers/middleware.go
package workers

import (
	"context"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/frontdesk-be/internal/pkg/logger"
)

// LoggingMiddleware puts the task id and type into the context and logs the outcome of each task
func LoggingMiddleware(l *slog.Logger) asynq.MiddlewareFunc {
	return func(next asynq.Handler) asynq.Handler {
		return asynq.HandlerFunc(func(ctx context.Context, t *asynq.Task) error {
			start := time.Now()

			if id, ok := asynq.GetTaskID(ctx); ok {
				ctx = context.WithValue(ctx, logger.ContextKeyTaskID, id)
			}
			ctx = context.WithValue(ctx, logger.ContextKeyTaskType, t.Type())
			ctx = logger.WithLogger(ctx, l)

			retried, _ := asynq.GetRetryCount(ctx)

			err := next.ProcessTask(ctx, t)
			if err != nil {
				l.ErrorContext(ctx, "task failed",
					slog.Int("retried", retried),
					slog.Duration("duration", time.Since(start)),
					"err", err)
				return err
			}

			l.InfoContext(ctx, "task processed",
				slog.Int("retried", retried),
				slog.Duration("duration", time.Since(start)))
			return nil
		})
	}
}

// NewServeMux registers every processor under its task type
func NewServeMux(
	alerts *AlertProcessor,
	reports *ReportProcessor,
	imports *ImportProcessor,
	cleanup *CleanupProcessor,
	l *slog.Logger,
) *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.Use(LoggingMiddleware(l))

	mux.HandleFunc(TypeLowStockAlert, alerts.ProcessLowStockAlert)
	mux.HandleFunc(TypeReportExport, reports.ProcessReportExport)
	mux.HandleFunc(TypeStockImport, imports.ProcessStockImport)
	mux.HandleFunc(TypeCleanupTempFiles, cleanup.CleanupTempFiles)

	return mux
}
