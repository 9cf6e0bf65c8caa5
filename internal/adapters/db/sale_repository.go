// internal/adapters/db/sale_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// saleRepository implements ports.SaleRepository
type saleRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewSaleRepository creates a new sale repository
func NewSaleRepository(db *Database, logger *slog.Logger) ports.SaleRepository {
	return &saleRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "sale")),
	}
}

// Record inserts the sale and books one unit out of the matching stock row
func (r *saleRepository) Record(ctx context.Context, s *domain.Sale) (*domain.InventoryItem, error) {
	var booked *domain.InventoryItem

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		booked = nil

		insert := `
			INSERT INTO sales (employee_id, product_name, sale_date, amount)
			VALUES ($1, $2, $3, $4)
			RETURNING id`

		if err := tx.QueryRow(ctx, insert, s.EmployeeID, s.ProductName, s.SaleDate, s.Amount).Scan(&s.ID); err != nil {
			return fmt.Errorf("failed to insert sale: %w", err)
		}

		update := `
			UPDATE inventory SET
				quantity_out = quantity_out + 1,
				current_stock = current_stock - 1,
				updated_at = NOW()
			WHERE id = (
				SELECT id FROM inventory WHERE item_name = $1
				ORDER BY id ASC LIMIT 1 FOR UPDATE
			)
			RETURNING ` + inventoryReturning

		item, err := scanInventory(tx.QueryRow(ctx, update, s.ProductName))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return nil
			}
			return fmt.Errorf("failed to book sale against inventory: %w", err)
		}

		booked = &item
		return nil
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "sale recorded",
		slog.Int64("id", s.ID),
		slog.String("product_name", s.ProductName),
		slog.String("amount", s.Amount.StringFixed(2)),
		slog.Bool("inventory_booked", booked != nil))

	return booked, nil
}

// FindAll lists every sale by id
func (r *saleRepository) FindAll(ctx context.Context) ([]domain.Sale, error) {
	qb := psql.Select("id", "employee_id", "product_name", "sale_date", "amount").
		From("sales").
		OrderBy("id ASC")

	sales, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.Sale, error) {
		var s domain.Sale
		err := rows.Scan(&s.ID, &s.EmployeeID, &s.ProductName, &s.SaleDate, &s.Amount)
		return s, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
