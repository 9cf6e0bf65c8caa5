// internal/core/ports/tasks.go
package ports

import (
	"context"
	"io"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

// TaskQueue schedules background work after a request has committed
type TaskQueue interface {
	EnqueueLowStockAlert(ctx context.Context, item domain.InventoryItem, threshold int) error
	EnqueueReportExport(ctx context.Context, kind domain.ReportKind) (string, error)
	EnqueueStockImport(ctx context.Context, filePath, fileType string) (string, error)
}

// ReportStorage stores generated report files
type ReportStorage interface {
	Upload(ctx context.Context, key string, data io.Reader, contentType string) (string, error)
	GetPresignedURL(ctx context.Context, key string, duration time.Duration) (string, error)
}
