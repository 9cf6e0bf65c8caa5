// internal/adapters/db/inventory_repository.go
package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

const inventoryReturning = `id, item_name, quantity_in, quantity_out, current_stock, updated_at`

var inventoryColumns = []string{"id", "item_name", "quantity_in", "quantity_out", "current_stock", "updated_at"}

// inventoryRepository implements ports.InventoryRepository
type inventoryRepository struct {
	db     *Database
	logger *slog.Logger
}

// NewInventoryRepository creates a new inventory repository
func NewInventoryRepository(db *Database, logger *slog.Logger) ports.InventoryRepository {
	return &inventoryRepository{
		db:     db,
		logger: logger.With(slog.String("repository", "inventory")),
	}
}

// Receive adds stock to the first row for the item, creating it when absent
func (r *inventoryRepository) Receive(ctx context.Context, receipt domain.StockReceipt) (*domain.InventoryItem, error) {
	var item domain.InventoryItem

	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		var err error
		item, err = receive(ctx, tx, receipt)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "stock received",
		slog.String("item_name", item.ItemName),
		slog.Int("quantity", receipt.Quantity),
		slog.Int("current_stock", item.CurrentStock))

	return &item, nil
}

// ReceiveBatch applies every receipt in one transaction
func (r *inventoryRepository) ReceiveBatch(ctx context.Context, receipts []domain.StockReceipt) ([]domain.InventoryItem, error) {
	if len(receipts) == 0 {
		return nil, nil
	}

	var items []domain.InventoryItem
	err := r.db.Transaction(ctx, func(tx pgx.Tx) error {
		var err error
		items, err = receiveLines(ctx, tx, receipts)
		return err
	})
	if err != nil {
		return nil, err
	}

	r.logger.InfoContext(ctx, "stock batch received", slog.Int("lines", len(items)))
	return items, nil
}

// receiveLines applies receipts in order. Each call builds its own result, so
// a retried transaction never sees lines from an aborted attempt.
func receiveLines(ctx context.Context, tx pgx.Tx, receipts []domain.StockReceipt) ([]domain.InventoryItem, error) {
	items := make([]domain.InventoryItem, 0, len(receipts))
	for i, receipt := range receipts {
		item, err := receive(ctx, tx, receipt)
		if err != nil {
			return nil, fmt.Errorf("failed to receive line %d: %w", i+1, err)
		}
		items = append(items, item)
	}
	return items, nil
}

// receive serializes receipts per item name so two first receipts cannot
// both insert a row.
func receive(ctx context.Context, tx pgx.Tx, receipt domain.StockReceipt) (domain.InventoryItem, error) {
	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, receipt.ItemName); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("failed to lock item: %w", err)
	}

	update := `
		UPDATE inventory SET
			quantity_in = quantity_in + $2,
			current_stock = current_stock + $2,
			updated_at = NOW()
		WHERE id = (
			SELECT id FROM inventory WHERE item_name = $1
			ORDER BY id ASC LIMIT 1 FOR UPDATE
		)
		RETURNING ` + inventoryReturning

	item, err := scanInventory(tx.QueryRow(ctx, update, receipt.ItemName, receipt.Quantity))
	if err == nil {
		return item, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return domain.InventoryItem{}, fmt.Errorf("failed to add stock: %w", err)
	}

	insert := `
		INSERT INTO inventory (item_name, quantity_in, quantity_out, current_stock)
		VALUES ($1, $2, 0, $2)
		RETURNING ` + inventoryReturning

	item, err = scanInventory(tx.QueryRow(ctx, insert, receipt.ItemName, receipt.Quantity))
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("failed to insert inventory item: %w", err)
	}
	return item, nil
}

// FindByItemName returns the lowest-id stock row for the item
func (r *inventoryRepository) FindByItemName(ctx context.Context, itemName string) (*domain.InventoryItem, error) {
	qb := psql.Select(inventoryColumns...).From("inventory").Where(squirrel.Eq{"item_name": itemName})

	item, err := selectFirst(ctx, r.db, qb, func(row pgx.Row) (*domain.InventoryItem, error) {
		i, err := scanInventory(row)
		return &i, err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find inventory item: %w", err)
	}
	return item, nil
}

// FindLowStock lists rows at or below threshold
func (r *inventoryRepository) FindLowStock(ctx context.Context, threshold int) ([]domain.InventoryItem, error) {
	qb := psql.Select(inventoryColumns...).
		From("inventory").
		Where(squirrel.LtOrEq{"current_stock": threshold}).
		OrderBy("current_stock ASC", "id ASC")

	items, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.InventoryItem, error) {
		return scanInventory(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock: %w", err)
	}
	return items, nil
}

// FindAll lists every stock row by id
func (r *inventoryRepository) FindAll(ctx context.Context) ([]domain.InventoryItem, error) {
	qb := psql.Select(inventoryColumns...).From("inventory").OrderBy("id ASC")

	items, err := selectAll(ctx, r.db, qb, func(rows pgx.Rows) (domain.InventoryItem, error) {
		return scanInventory(rows)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func scanInventory(row pgx.Row) (domain.InventoryItem, error) {
	var i domain.InventoryItem
	err := row.Scan(&i.ID, &i.ItemName, &i.QuantityIn, &i.QuantityOut, &i.CurrentStock, &i.UpdatedAt)
	return i, err
}
