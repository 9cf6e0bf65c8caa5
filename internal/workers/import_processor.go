// internal/workers/import_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/hibiken/asynq"

	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// Receipt file types accepted by the import task
const (
	FileTypeXLSX = "xlsx"
	FileTypePDF  = "pdf"
)

// ImportProcessor applies stock receipt files to the inventory
type ImportProcessor struct {
	inventory ports.InventoryService
	logger    *slog.Logger
}

// NewImportProcessor creates an import processor
func NewImportProcessor(inventory ports.InventoryService, logger *slog.Logger) *ImportProcessor {
	return &ImportProcessor{
		inventory: inventory,
		logger:    logger.With(slog.String("processor", "import")),
	}
}

// ProcessStockImport parses the uploaded file and receives every line in one batch.
// Files that cannot be parsed or hold invalid receipts are not retried.
func (p *ImportProcessor) ProcessStockImport(ctx context.Context, t *asynq.Task) error {
	start := time.Now()

	var payload StockImportPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	receipts, err := readReceipts(payload.FilePath, payload.FileType)
	if err != nil {
		p.discard(ctx, payload.FilePath)
		return fmt.Errorf("failed to read %s: %v: %w", payload.FileType, err, asynq.SkipRetry)
	}

	applied, err := p.inventory.ReceiveBatch(ctx, receipts)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			p.discard(ctx, payload.FilePath)
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		// keep the file for the retry
		return err
	}

	p.discard(ctx, payload.FilePath)

	p.logger.InfoContext(ctx, "stock import completed",
		slog.String("file_type", payload.FileType),
		slog.Int("receipts", applied),
		slog.Duration("duration", time.Since(start)))

	return nil
}

func readReceipts(path, fileType string) ([]domain.StockReceipt, error) {
	switch fileType {
	case FileTypeXLSX:
		return documents.ReadReceiptsXLSX(path)
	case FileTypePDF:
		return documents.ReadReceiptsPDF(path)
	default:
		return nil, fmt.Errorf("unsupported file type %q", fileType)
	}
}

func (p *ImportProcessor) discard(ctx context.Context, path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		p.logger.WarnContext(ctx, "failed to remove import file",
			slog.String("file", path),
			"err", err)
	}
}
