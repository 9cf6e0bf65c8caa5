// internal/core/ports/repositories.go
package ports

import (
	"context"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

// Repositories return (nil, nil) from single-row lookups that match nothing.

// EmployeeRepository defines the persistence port for employees
type EmployeeRepository interface {
	Save(ctx context.Context, employee *domain.Employee) error
	FindByID(ctx context.Context, id int64) (*domain.Employee, error)
	FindAll(ctx context.Context) ([]domain.Employee, error)
}

// CustomerRepository defines the persistence port for customers
type CustomerRepository interface {
	Save(ctx context.Context, customer *domain.Customer) error
	FindFirstByName(ctx context.Context, name string) (*domain.Customer, error)
	FindAll(ctx context.Context) ([]domain.Customer, error)
}

// DeviceRepository defines the persistence port for devices
type DeviceRepository interface {
	Save(ctx context.Context, device *domain.Device) error
	FindFirstByName(ctx context.Context, name string) (*domain.Device, error)
	FindFirstAvailableByName(ctx context.Context, name string) (*domain.Device, error)
	UpdateStatus(ctx context.Context, id int64, status domain.DeviceStatus) error
	FindAll(ctx context.Context) ([]domain.Device, error)
}

// BorrowingRepository defines the persistence port for loans
type BorrowingRepository interface {
	// Create flips the device from available to borrowed and inserts the
	// borrowing in one transaction. It returns domain.ErrDeviceUnavailable
	// when the device was no longer available.
	Create(ctx context.Context, borrowing *domain.Borrowing) error
	// Return closes an open borrowing and frees its device.
	Return(ctx context.Context, id int64, returnDate time.Time) (*domain.Borrowing, error)
	FindAllWithNames(ctx context.Context) ([]domain.BorrowingView, error)
}

// SaleRepository defines the persistence port for sales
type SaleRepository interface {
	// Record inserts the sale and books it against the first inventory row
	// with a matching item name in the same transaction. The returned item
	// is nil when no inventory row matched.
	Record(ctx context.Context, sale *domain.Sale) (*domain.InventoryItem, error)
	FindAll(ctx context.Context) ([]domain.Sale, error)
}

// InventoryRepository defines the persistence port for stock counters
type InventoryRepository interface {
	Receive(ctx context.Context, receipt domain.StockReceipt) (*domain.InventoryItem, error)
	ReceiveBatch(ctx context.Context, receipts []domain.StockReceipt) ([]domain.InventoryItem, error)
	FindByItemName(ctx context.Context, itemName string) (*domain.InventoryItem, error)
	FindLowStock(ctx context.Context, threshold int) ([]domain.InventoryItem, error)
	FindAll(ctx context.Context) ([]domain.InventoryItem, error)
}

// DashboardRepository aggregates figures across tables
type DashboardRepository interface {
	Summary(ctx context.Context, lowStockThreshold int) (*domain.DashboardSummary, error)
}
