// internal/adapters/db/device_repository.go
package db

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

var deviceColumns = []string{"id", "name", "model", "status", "created_at", "updated_at"}

// deviceRepository implements ports.DeviceRepository
type deviceRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewDeviceRepository creates a new device repository
func NewDeviceRepository(db *Database, logger *slog.Logger) ports.DeviceRepository {
	return &deviceRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "device")),
	}
}

// Save inserts a new device and fills in its id
func (r *deviceRepository) Save(ctx context.Context, d *domain.Device) error {
	query := `
		INSERT INTO devices (name, model, status)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRow(ctx, query, d.Name, d.Model, string(d.Status)).
		Scan(&d.ID, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to save device: %w", err)
	}

	r.logger.DebugContext(ctx, "device saved", slog.Int64("id", d.ID))
	return nil
}

// FindFirstByName returns the lowest-id device with the exact name
func (r *deviceRepository) FindFirstByName(ctx context.Context, name string) (*domain.Device, error) {
	qb := psql.Select(deviceColumns...).From("devices").Where(squirrel.Eq{"name": name})

	d, err := selectFirst(ctx, r.db, qb, scanDevicePtr)
	if err != nil {
		return nil, fmt.Errorf("failed to find device: %w", err)
	}
	return d, nil
}

// FindFirstAvailableByName returns the lowest-id available device with the exact name
func (r *deviceRepository) FindFirstAvailableByName(ctx context.Context, name string) (*domain.Device, error) {
	qb := psql.Select(deviceColumns...).From("devices").Where(squirrel.Eq{
		"name":   name,
		"status": string(domain.DeviceAvailable),
	})

	d, err := selectFirst(ctx, r.db, qb, scanDevicePtr)
	if err != nil {
		return nil, fmt.Errorf("failed to find available device: %w", err)
	}
	return d, nil
}

// UpdateStatus overwrites the status of the device with the given id
func (r *deviceRepository) UpdateStatus(ctx context.Context, id int64, status domain.DeviceStatus) error {
	query := `UPDATE devices SET status = $2, updated_at = $3 WHERE id = $1`

	tag, err := r.db.Exec(ctx, query, id, string(status), time.Now())
	if err != nil {
		return fmt.Errorf("failed to update device status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.NewNotFoundError(domain.MsgDeviceNotFound)
	}

	r.logger.InfoContext(ctx, "device status updated",
		slog.Int64("id", id),
		slog.String("status", string(status)))

	return nil
}

// FindAll lists every device by id
func (r *deviceRepository) FindAll(ctx context.Context) ([]domain.Device, error) {
	qb := psql.Select(deviceColumns...).From("devices").OrderBy("id ASC")

	devices, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.Device, error) {
		return scanDevice(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list devices: %w", err)
	}
	return devices, nil
}

func scanDevice(row pgx.Row) (domain.Device, error) {
	var (
		d      domain.Device
		status string
	)
	err := row.Scan(&d.ID, &d.Name, &d.Model, &status, &d.CreatedAt, &d.UpdatedAt)
	d.Status = domain.DeviceStatus(status)
	return d, err
}

func scanDevicePtr(row pgx.Row) (*domain.Device, error) {
	d, err := scanDevice(row)
	return &d, err
}
