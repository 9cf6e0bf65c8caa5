// internal/handlers/export.go
package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// ExportHandler serves Excel listings and queues report uploads
type ExportHandler struct {
	responder
	reports ports.ReportService
	tasks   ports.TaskQueue
	now     func() time.Time
}

// NewExportHandler creates a new export handler
func NewExportHandler(reports ports.ReportService, tasks ports.TaskQueue, logger *slog.Logger) *ExportHandler {
	return &ExportHandler{
		responder: newResponder(logger, "export"),
		reports:   reports,
		tasks:     tasks,
		now:       time.Now,
	}
}

// QueueReportRequest names the listing to export in the background
type QueueReportRequest struct {
	Kind string `json:"kind"`
}

// QueuedTaskResponse acknowledges accepted background work
type QueuedTaskResponse struct {
	TaskID string `json:"task_id"`
	Status string `json:"status"`
}

// ExportListing handles GET /api/v1/export/{file} where file is <kind>.xlsx
func (h *ExportHandler) ExportListing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	name, ok := strings.CutSuffix(r.PathValue("file"), ".xlsx")
	if !ok {
		h.respondError(w, http.StatusNotFound, "Only .xlsx exports are available")
		return
	}

	kind, err := domain.ParseReportKind(name)
	if err != nil {
		h.respondServiceError(w, r, err, "parse report kind")
		return
	}

	table, err := h.reports.BuildTable(ctx, kind)
	if err != nil {
		h.respondServiceError(w, r, err, "build report")
		return
	}

	data, err := documents.EncodeTable(table)
	if err != nil {
		h.respondServiceError(w, r, err, "encode workbook")
		return
	}

	filename := table.FileName(h.now())
	w.Header().Set("Content-Type", domain.ReportContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Header().Set("Cache-Control", "no-cache, no-store, must-revalidate")
	w.WriteHeader(http.StatusOK)

	if _, err := w.Write(data); err != nil {
		h.logger.ErrorContext(ctx, "failed to write workbook", "err", err)
		return
	}

	h.logger.InfoContext(ctx, "listing exported",
		slog.String("kind", string(kind)),
		slog.Int("rows", len(table.Rows)))
}

// QueueReport handles POST /api/v1/reports
func (h *ExportHandler) QueueReport(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req QueueReportRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	kind, err := domain.ParseReportKind(req.Kind)
	if err != nil {
		h.respondServiceError(w, r, err, "parse report kind")
		return
	}

	taskID, err := h.tasks.EnqueueReportExport(ctx, kind)
	if err != nil {
		h.respondServiceError(w, r, err, "queue report export")
		return
	}

	h.logger.InfoContext(ctx, "report export queued",
		slog.String("kind", string(kind)),
		slog.String("task_id", taskID))

	h.respondJSON(w, http.StatusAccepted, QueuedTaskResponse{TaskID: taskID, Status: "queued"})
}
