// internal/core/services/inventory.go
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// InventoryService handles stock receipts and stock listings
type InventoryService struct {
	repo   ports.InventoryRepository
	cache  *ListingCache
	logger *slog.Logger
	// lowStockThreshold is the only threshold whose listing is cached
	lowStockThreshold int
}

var _ ports.InventoryService = (*InventoryService)(nil)

// NewInventoryService creates a new inventory service
func NewInventoryService(repo ports.InventoryRepository, cache *ListingCache, lowStockThreshold int, logger *slog.Logger) *InventoryService {
	return &InventoryService{
		repo:              repo,
		cache:             cache,
		logger:            logger.With(slog.String("service", "inventory")),
		lowStockThreshold: lowStockThreshold,
	}
}

// ReceiveStock adds quantity to the counters of an item, creating its row on first receipt
func (s *InventoryService) ReceiveStock(ctx context.Context, receipt domain.StockReceipt) (*domain.InventoryItem, error) {
	if err := receipt.Validate(); err != nil {
		return nil, err
	}

	item, err := s.repo.Receive(ctx, receipt)
	if err != nil {
		return nil, fmt.Errorf("failed to receive stock: %w", err)
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "stock received",
		slog.String("item_name", item.ItemName),
		slog.Int("quantity", receipt.Quantity),
		slog.Int("current_stock", item.CurrentStock))

	return item, nil
}

// ReceiveBatch applies all receipts in one transaction. Nothing is written when any receipt is invalid.
func (s *InventoryService) ReceiveBatch(ctx context.Context, receipts []domain.StockReceipt) (int, error) {
	if len(receipts) == 0 {
		s.logger.InfoContext(ctx, "no receipts to apply")
		return 0, nil
	}

	for i := range receipts {
		if err := receipts[i].Validate(); err != nil {
			return 0, fmt.Errorf("receipt %d (%s): %w", i+1, receipts[i].ItemName, err)
		}
	}

	items, err := s.repo.ReceiveBatch(ctx, receipts)
	if err != nil {
		return 0, fmt.Errorf("failed to receive stock batch: %w", err)
	}

	s.invalidate(ctx)
	s.logger.InfoContext(ctx, "stock batch received",
		slog.Int("receipts", len(receipts)),
		slog.Int("items", len(items)))

	return len(receipts), nil
}

// ListInventory returns every inventory row by id
func (s *InventoryService) ListInventory(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := cachedList(ctx, s.cache, KeyInventory, s.repo.FindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// LowStock returns rows whose current stock is at or below threshold. Only
// the configured threshold goes through the cache; callers pick any other.
func (s *InventoryService) LowStock(ctx context.Context, threshold int) ([]domain.InventoryItem, error) {
	fetch := func(ctx context.Context) ([]domain.InventoryItem, error) {
		return s.repo.FindLowStock(ctx, threshold)
	}

	var (
		items []domain.InventoryItem
		err   error
	)
	if threshold == s.lowStockThreshold {
		items, err = cachedList(ctx, s.cache, LowStockKey(threshold), fetch)
	} else {
		items, err = fetch(ctx)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list low stock (threshold %d): %w", threshold, err)
	}
	return items, nil
}

func (s *InventoryService) invalidate(ctx context.Context) {
	s.cache.invalidate(ctx, KeyInventory, KeyDashboard)
	s.cache.invalidateLowStock(ctx)
}
