// internal/core/ports/services.go
package ports

import (
	"context"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

// EmployeeService defines the application service port for employees
type EmployeeService interface {
	AddEmployee(ctx context.Context, employee *domain.Employee) error
	ListEmployees(ctx context.Context) ([]domain.Employee, error)
}

// CustomerService defines the application service port for customers
type CustomerService interface {
	AddCustomer(ctx context.Context, name, contact string) (*domain.Customer, error)
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
}

// DeviceService defines the application service port for devices
type DeviceService interface {
	AddDevice(ctx context.Context, name, model string) (*domain.Device, error)
	UpdateDeviceStatus(ctx context.Context, name, status string) (*domain.Device, error)
	ListDevices(ctx context.Context) ([]domain.Device, error)
}

// BorrowingService defines the application service port for loans
type BorrowingService interface {
	AddBorrowing(ctx context.Context, customerName, deviceName string, employeeID *int64) (*domain.Borrowing, error)
	ReturnBorrowing(ctx context.Context, id int64) (*domain.Borrowing, error)
	ListBorrowings(ctx context.Context) ([]domain.BorrowingView, error)
}

// SaleService defines the application service port for sales
type SaleService interface {
	RecordSale(ctx context.Context, productName, amount string, employeeID *int64) (*domain.SaleResult, error)
	ListSales(ctx context.Context) ([]domain.Sale, error)
}

// InventoryService defines the application service port for stock
type InventoryService interface {
	ReceiveStock(ctx context.Context, receipt domain.StockReceipt) (*domain.InventoryItem, error)
	ReceiveBatch(ctx context.Context, receipts []domain.StockReceipt) (int, error)
	ListInventory(ctx context.Context) ([]domain.InventoryItem, error)
	LowStock(ctx context.Context, threshold int) ([]domain.InventoryItem, error)
}

// DashboardService defines the application service port for the summary view
type DashboardService interface {
	Summary(ctx context.Context) (*domain.DashboardSummary, error)
}

// ReportService defines the application service port for listing exports
type ReportService interface {
	BuildTable(ctx context.Context, kind domain.ReportKind) (*domain.ReportTable, error)
}
