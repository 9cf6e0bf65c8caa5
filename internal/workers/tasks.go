// internal/workers/tasks.go
package workers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

const (
	TypeLowStockAlert    = "stock:low_alert"
	TypeReportExport     = "report:export"
	TypeStockImport      = "stock:import"
	TypeCleanupTempFiles = "cleanup:temp_files"
)

// Queue names. They must appear in the worker's queue configuration.
const (
	QueueCritical = "critical"
	QueueDefault  = "default"
	QueueLow      = "low"
)

const (
	defaultMaxRetry = 3
	taskRetention   = 24 * time.Hour
)

// LowStockAlertPayload is the payload of a stock:low_alert task
type LowStockAlertPayload struct {
	ItemName     string `json:"item_name"`
	CurrentStock int    `json:"current_stock"`
	Threshold    int    `json:"threshold"`
}

// ReportExportPayload is the payload of a report:export task
type ReportExportPayload struct {
	Kind        domain.ReportKind `json:"kind"`
	RequestedAt time.Time         `json:"requested_at"`
}

// StockImportPayload is the payload of a stock:import task
type StockImportPayload struct {
	FilePath string `json:"file_path"`
	FileType string `json:"file_type"`
}

// NewLowStockAlertTask builds a stock:low_alert task
func NewLowStockAlertTask(item domain.InventoryItem, threshold int) (*asynq.Task, error) {
	payload, err := json.Marshal(LowStockAlertPayload{
		ItemName:     item.ItemName,
		CurrentStock: item.CurrentStock,
		Threshold:    threshold,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeLowStockAlert, payload,
		asynq.Queue(QueueCritical),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.Timeout(time.Minute)), nil
}

// NewReportExportTask builds a report:export task
func NewReportExportTask(kind domain.ReportKind, requestedAt time.Time) (*asynq.Task, error) {
	payload, err := json.Marshal(ReportExportPayload{Kind: kind, RequestedAt: requestedAt.UTC()})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeReportExport, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.Timeout(5*time.Minute),
		asynq.Retention(taskRetention)), nil
}

// NewStockImportTask builds a stock:import task
func NewStockImportTask(filePath, fileType string) (*asynq.Task, error) {
	payload, err := json.Marshal(StockImportPayload{FilePath: filePath, FileType: fileType})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return asynq.NewTask(TypeStockImport, payload,
		asynq.Queue(QueueDefault),
		asynq.MaxRetry(defaultMaxRetry),
		asynq.Timeout(10*time.Minute),
		asynq.Retention(taskRetention)), nil
}

// NewCleanupTempFilesTask builds the periodic cleanup task
func NewCleanupTempFilesTask() *asynq.Task {
	return asynq.NewTask(TypeCleanupTempFiles, nil,
		asynq.Queue(QueueLow),
		asynq.MaxRetry(1))
}

// TaskClient enqueues background work on asynq
type TaskClient struct {
	client *asynq.Client
	logger *slog.Logger
}

var _ ports.TaskQueue = (*TaskClient)(nil)

// NewTaskClient wraps an asynq client
func NewTaskClient(client *asynq.Client, logger *slog.Logger) *TaskClient {
	return &TaskClient{
		client: client,
		logger: logger.With(slog.String("component", "task_client")),
	}
}

// EnqueueLowStockAlert queues a low-stock alert for item
func (c *TaskClient) EnqueueLowStockAlert(ctx context.Context, item domain.InventoryItem, threshold int) error {
	task, err := NewLowStockAlertTask(item, threshold)
	if err != nil {
		return err
	}
	_, err = c.enqueue(ctx, task)
	return err
}

// EnqueueReportExport queues an export of one listing and returns the task id
func (c *TaskClient) EnqueueReportExport(ctx context.Context, kind domain.ReportKind) (string, error) {
	task, err := NewReportExportTask(kind, time.Now())
	if err != nil {
		return "", err
	}
	return c.enqueue(ctx, task)
}

// EnqueueStockImport queues the import of an uploaded receipt file and returns the task id
func (c *TaskClient) EnqueueStockImport(ctx context.Context, filePath, fileType string) (string, error) {
	task, err := NewStockImportTask(filePath, fileType)
	if err != nil {
		return "", err
	}
	return c.enqueue(ctx, task)
}

func (c *TaskClient) enqueue(ctx context.Context, task *asynq.Task) (string, error) {
	info, err := c.client.EnqueueContext(ctx, task)
	if err != nil {
		return "", fmt.Errorf("failed to enqueue %s: %w", task.Type(), err)
	}

	c.logger.DebugContext(ctx, "task enqueued",
		slog.String("task_id", info.ID),
		slog.String("task_type", task.Type()),
		slog.String("queue", info.Queue))

	return info.ID, nil
}

func decodePayload(t *asynq.Task, dst any) error {
	if err := json.Unmarshal(t.Payload(), dst); err != nil {
		return fmt.Errorf("failed to unmarshal %s payload: %v: %w", t.Type(), err, asynq.SkipRetry)
	}
	return nil
}
