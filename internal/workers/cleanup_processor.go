// internal/workers/cleanup_processor.go
package workers

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/hibiken/asynq"
)

// CleanupProcessor handles cleanup tasks
type CleanupProcessor struct {
	dir    string
	maxAge time.Duration
	logger *slog.Logger
	now    func() time.Time
}

// NewCleanupProcessor creates a cleanup processor for the upload directory
func NewCleanupProcessor(dir string, maxAge time.Duration, logger *slog.Logger) *CleanupProcessor {
	return &CleanupProcessor{
		dir:    dir,
		maxAge: maxAge,
		logger: logger.With(slog.String("processor", "cleanup")),
		now:    time.Now,
	}
}

// CleanupTempFiles removes upload files older than the configured age
func (p *CleanupProcessor) CleanupTempFiles(ctx context.Context, _ *asynq.Task) error {
	cutoff := p.now().Add(-p.maxAge)

	var deleted int
	err := filepath.WalkDir(p.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == p.dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipAll
			}
			return err
		}
		if d.IsDir() {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		info, err := d.Info()
		if err != nil {
			return nil
		}
		if !info.ModTime().Before(cutoff) {
			return nil
		}

		if err := os.Remove(path); err != nil {
			p.logger.WarnContext(ctx, "failed to delete temp file",
				slog.String("file", path),
				"err", err)
			return nil
		}
		deleted++
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to walk temp directory: %w", err)
	}

	p.logger.InfoContext(ctx, "temp files cleaned up",
		slog.String("dir", p.dir),
		slog.Int("files_deleted", deleted))

	return nil
}
