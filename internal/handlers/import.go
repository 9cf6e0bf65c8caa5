// internal/handlers/import.go
package handlers

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// Accepted stock receipt file types
const (
	FileTypeXLSX = "xlsx"
	FileTypePDF  = "pdf"
)

// ImportHandler accepts stock receipt files for background import
type ImportHandler struct {
	responder
	tasks       ports.TaskQueue
	maxFileSize int64
	uploadDir   string
}

// NewImportHandler creates a new import handler
func NewImportHandler(tasks ports.TaskQueue, maxFileSize int64, uploadDir string, logger *slog.Logger) *ImportHandler {
	return &ImportHandler{
		responder:   newResponder(logger, "import"),
		tasks:       tasks,
		maxFileSize: maxFileSize,
		uploadDir:   uploadDir,
	}
}

// ImportStock handles POST /api/v1/import/stock
func (h *ImportHandler) ImportStock(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.ContentLength > h.maxFileSize {
		h.respondError(w, http.StatusRequestEntityTooLarge, "File too large")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, h.maxFileSize)
	if err := r.ParseMultipartForm(h.maxFileSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.respondError(w, http.StatusRequestEntityTooLarge, "File too large")
			return
		}
		h.respondError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("file")
	if err != nil {
		h.respondError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	fileType := strings.TrimPrefix(strings.ToLower(filepath.Ext(header.Filename)), ".")
	if fileType != FileTypeXLSX && fileType != FileTypePDF {
		h.respondError(w, http.StatusBadRequest, "Only .xlsx and .pdf files are accepted")
		return
	}

	if err := os.MkdirAll(h.uploadDir, 0o755); err != nil {
		h.respondServiceError(w, r, err, "create upload directory")
		return
	}

	path := filepath.Join(h.uploadDir, uuid.NewString()+"."+fileType)
	if err := saveUpload(path, file); err != nil {
		h.respondServiceError(w, r, err, "save upload")
		return
	}

	taskID, err := h.tasks.EnqueueStockImport(ctx, path, fileType)
	if err != nil {
		_ = os.Remove(path)
		h.respondServiceError(w, r, err, "queue stock import")
		return
	}

	h.logger.InfoContext(ctx, "stock import queued",
		slog.String("task_id", taskID),
		slog.String("file_type", fileType),
		slog.Int64("size", header.Size))

	h.respondJSON(w, http.StatusAccepted, QueuedTaskResponse{TaskID: taskID, Status: "queued"})
}

func saveUpload(path string, src io.Reader) error {
	dst, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return err
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		os.Remove(path)
		return err
	}

	return dst.Close()
}
