// internal/workers/report_processor.go
package workers

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	"github.com/ammerola/frontdesk-be/internal/adapters/storage"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// ReportProcessor builds listing workbooks and stores them
type ReportProcessor struct {
	reports   ports.ReportService
	storage   ports.ReportStorage
	urlExpiry time.Duration
	logger    *slog.Logger
	now       func() time.Time
}

// NewReportProcessor creates a report processor
func NewReportProcessor(reports ports.ReportService, store ports.ReportStorage, urlExpiry time.Duration, logger *slog.Logger) *ReportProcessor {
	return &ReportProcessor{
		reports:   reports,
		storage:   store,
		urlExpiry: urlExpiry,
		logger:    logger.With(slog.String("processor", "report")),
		now:       time.Now,
	}
}

// ProcessReportExport uploads one listing as a workbook and logs its download link
func (p *ReportProcessor) ProcessReportExport(ctx context.Context, t *asynq.Task) error {
	var payload ReportExportPayload
	if err := decodePayload(t, &payload); err != nil {
		return err
	}

	kind, err := domain.ParseReportKind(string(payload.Kind))
	if err != nil {
		return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
	}

	table, err := p.reports.BuildTable(ctx, kind)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidInput) {
			return fmt.Errorf("%v: %w", err, asynq.SkipRetry)
		}
		return err
	}

	data, err := documents.EncodeTable(table)
	if err != nil {
		return err
	}

	key := storage.ReportKey(kind, p.now(), uuid.NewString())
	location, err := p.storage.Upload(ctx, key, bytes.NewReader(data), domain.ReportContentType)
	if err != nil {
		return err
	}

	// the object is stored; a retry would only upload another copy
	url, err := p.storage.GetPresignedURL(ctx, key, p.urlExpiry)
	if err != nil {
		p.logger.WarnContext(ctx, "report stored without download link",
			slog.String("kind", string(kind)),
			slog.String("key", key),
			slog.String("location", location),
			"err", err)
		return nil
	}

	p.logger.InfoContext(ctx, "report exported",
		slog.String("kind", string(kind)),
		slog.Int("rows", len(table.Rows)),
		slog.String("location", location),
		slog.String("url", url),
		slog.Time("requested_at", payload.RequestedAt))

	return nil
}
