// internal/core/services/sale.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// SaleConfig holds the sale rules read from configuration
type SaleConfig struct {
	DefaultEmployeeID int64
	LowStockThreshold int
	AlertCooldown     time.Duration
}

// SaleService records counter sales
type SaleService struct {
	sales     ports.SaleRepository
	devices   ports.DeviceRepository
	employees ports.EmployeeRepository
	tasks     ports.TaskQueue
	cache     *ListingCache
	config    SaleConfig
	now       func() time.Time
	logger    *slog.Logger
}

var _ ports.SaleService = (*SaleService)(nil)

// NewSaleService creates a new sale service. tasks may be nil, which disables low-stock alerts.
func NewSaleService(
	sales ports.SaleRepository,
	devices ports.DeviceRepository,
	employees ports.EmployeeRepository,
	tasks ports.TaskQueue,
	cache *ListingCache,
	config SaleConfig,
	logger *slog.Logger,
) *SaleService {
	if config.DefaultEmployeeID <= 0 {
		config.DefaultEmployeeID = domain.DefaultEmployeeID
	}
	return &SaleService{
		sales:     sales,
		devices:   devices,
		employees: employees,
		tasks:     tasks,
		cache:     cache,
		config:    config,
		now:       time.Now,
		logger:    logger.With(slog.String("service", "sale")),
	}
}

// RecordSale records a sale of an available device and books it against stock.
// The device status is left unchanged.
func (s *SaleService) RecordSale(ctx context.Context, productName, amount string, employeeID *int64) (*domain.SaleResult, error) {
	if productName == "" {
		return nil, domain.NewInputError(domain.MsgSaleFieldsRequired)
	}

	device, err := s.devices.FindFirstAvailableByName(ctx, productName)
	if err != nil {
		return nil, fmt.Errorf("failed to find device: %w", err)
	}
	if device == nil {
		return nil, domain.NewInputError(domain.MsgSaleFieldsRequired)
	}

	value, err := domain.ParseSaleAmount(amount)
	if err != nil {
		return nil, err
	}

	if err := resolveEmployee(ctx, s.employees, employeeID); err != nil {
		return nil, err
	}

	sale := &domain.Sale{
		EmployeeID:  s.config.DefaultEmployeeID,
		ProductName: productName,
		SaleDate:    domain.Today(s.now()),
		Amount:      value,
	}
	if employeeID != nil {
		sale.EmployeeID = *employeeID
	}
	if err := sale.Validate(); err != nil {
		return nil, err
	}

	item, err := s.sales.Record(ctx, sale)
	if err != nil {
		return nil, fmt.Errorf("failed to record sale: %w", err)
	}

	s.cache.invalidate(ctx, KeySales, KeyInventory, KeyDashboard)
	s.cache.invalidateLowStock(ctx)

	result := &domain.SaleResult{Sale: sale, Inventory: item}
	if item == nil {
		result.Warning = domain.InventoryMismatchWarning(productName)
		s.logger.WarnContext(ctx, "sale recorded without inventory row",
			slog.Int64("sale_id", sale.ID),
			slog.String("product_name", productName))
		return result, nil
	}

	if item.IsLow(s.config.LowStockThreshold) {
		s.alertLowStock(ctx, *item)
	}

	return result, nil
}

// alertLowStock enqueues a low-stock alert. Failures never reach the caller.
func (s *SaleService) alertLowStock(ctx context.Context, item domain.InventoryItem) {
	if s.tasks == nil {
		return
	}
	if s.config.AlertCooldown > 0 && !s.cache.claimAlert(ctx, item.ItemName, s.config.AlertCooldown) {
		s.logger.DebugContext(ctx, "low stock alert suppressed", slog.String("item_name", item.ItemName))
		return
	}

	if err := s.tasks.EnqueueLowStockAlert(ctx, item, s.config.LowStockThreshold); err != nil {
		s.logger.ErrorContext(ctx, "failed to enqueue low stock alert",
			slog.String("item_name", item.ItemName),
			"err", err)
	}
}

// ListSales returns every sale by id
func (s *SaleService) ListSales(ctx context.Context) ([]domain.Sale, error) {
	sales, err := cachedList(ctx, s.cache, KeySales, s.sales.FindAll)
	if err != nil {
		return nil, fmt.Errorf("failed to list sales: %w", err)
	}
	return sales, nil
}
