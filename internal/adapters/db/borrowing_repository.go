// internal/adapters/db/borrowing_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// borrowingRepository implements ports.BorrowingRepository
type borrowingRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewBorrowingRepository creates a new borrowing repository
func NewBorrowingRepository(db *Database, logger *slog.Logger) ports.BorrowingRepository {
	return &borrowingRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "borrowing")),
	}
}

// Create marks the device borrowed and records the loan atomically
func (r *borrowingRepository) Create(ctx context.Context, b *domain.Borrowing) error {
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE devices SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
			b.DeviceID, string(domain.DeviceBorrowed), string(domain.DeviceAvailable))
		if err != nil {
			return fmt.Errorf("failed to mark device borrowed: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrDeviceUnavailable
		}

		query := `
			INSERT INTO borrowings (customer_id, employee_id, device_id, borrow_date)
			VALUES ($1, $2, $3, $4)
			RETURNING id`

		if err := tx.QueryRow(ctx, query, b.CustomerID, b.EmployeeID, b.DeviceID, b.BorrowDate).Scan(&b.ID); err != nil {
			return fmt.Errorf("failed to insert borrowing: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	r.logger.InfoContext(ctx, "borrowing created",
		slog.Int64("id", b.ID),
		slog.Int64("customer_id", b.CustomerID),
		slog.Int64("device_id", b.DeviceID))

	return nil
}

// Return closes an open borrowing and frees the device. It returns nil when
// no open borrowing has the given id.
func (r *borrowingRepository) Return(ctx context.Context, id int64, returnDate time.Time) (*domain.Borrowing, error) {
	var returned *domain.Borrowing

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		returned = nil

		query := `
			UPDATE borrowings SET return_date = $2
			WHERE id = $1 AND return_date IS NULL
			RETURNING id, customer_id, employee_id, device_id, borrow_date, return_date`

		var b domain.Borrowing
		err := tx.QueryRow(ctx, query, id, returnDate).Scan(
			&b.ID, &b.CustomerID, &b.EmployeeID, &b.DeviceID, &b.BorrowDate, &b.ReturnDate)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to close borrowing: %w", err)
		}

		// A device moved to maintenance while out stays there.
		_, err = tx.Exec(ctx,
			`UPDATE devices SET status = $2, updated_at = NOW() WHERE id = $1 AND status = $3`,
			b.DeviceID, string(domain.DeviceAvailable), string(domain.DeviceBorrowed))
		if err != nil {
			return fmt.Errorf("failed to release device: %w", err)
		}

		returned = &b
		return nil
	})
	if err != nil {
		return nil, err
	}

	if returned != nil {
		r.logger.InfoContext(ctx, "borrowing returned",
			slog.Int64("id", returned.ID),
			slog.Int64("device_id", returned.DeviceID))
	}

	return returned, nil
}

// FindAllWithNames lists every borrowing with customer and device names
func (r *borrowingRepository) FindAllWithNames(ctx context.Context) ([]domain.BorrowingView, error) {
	qb := psql.Select(
		"b.id", "b.customer_id", "b.employee_id", "b.device_id",
		"b.borrow_date", "b.return_date", "c.name", "d.name",
	).
		From("borrowings b").
		Join("customers c ON c.id = b.customer_id").
		Join("devices d ON d.id = b.device_id").
		OrderBy("b.id ASC")

	views, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.BorrowingView, error) {
		var v domain.BorrowingView
		err := rows.Scan(
			&v.ID, &v.CustomerID, &v.EmployeeID, &v.DeviceID,
			&v.BorrowDate, &v.ReturnDate, &v.CustomerName, &v.DeviceName,
		)
		return v, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowings: %w", err)
	}
	return views, nil
}
