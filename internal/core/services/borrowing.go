// internal/core/services/borrowing.go
package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// BorrowingService handles device loans
type BorrowingService struct {
	borrowings ports.BorrowingRepository
	customers  ports.CustomerRepository
	devices    ports.DeviceRepository
	employees  ports.EmployeeRepository
	cache      *ListingCache
	now        func() time.Time
	logger     *slog.Logger
}

var _ ports.BorrowingService = (*BorrowingService)(nil)

// NewBorrowingService creates a new borrowing service
func NewBorrowingService(
	borrowings ports.BorrowingRepository,
	customers ports.CustomerRepository,
	devices ports.DeviceRepository,
	employees ports.EmployeeRepository,
	cache *ListingCache,
	logger *slog.Logger,
) *BorrowingService {
	return &BorrowingService{
		borrowings: borrowings,
		customers:  customers,
		devices:    devices,
		employees:  employees,
		cache:      cache,
		now:        time.Now,
		logger:     logger.With(slog.String("service", "borrowing")),
	}
}

// AddBorrowing lends the first available device with deviceName to the
// first customer with customerName
func (s *BorrowingService) AddBorrowing(ctx context.Context, customerName, deviceName string, employeeID *int64) (*domain.Borrowing, error) {
	if customerName == "" || deviceName == "" {
		return nil, domain.NewInputError(domain.MsgInvalidCustomerDevice)
	}

	customer, err := s.customers.FindFirstByName(ctx, customerName)
	if err != nil {
		return nil, fmt.Errorf("failed to find customer: %w", err)
	}
	device, err := s.devices.FindFirstAvailableByName(ctx, deviceName)
	if err != nil {
		return nil, fmt.Errorf("failed to find device: %w", err)
	}
	if customer == nil || device == nil {
		return nil, domain.NewInputError(domain.MsgInvalidCustomerDevice)
	}

	if err := resolveEmployee(ctx, s.employees, employeeID); err != nil {
		return nil, err
	}

	borrowing := &domain.Borrowing{
		CustomerID: customer.ID,
		EmployeeID: employeeID,
		DeviceID:   device.ID,
		BorrowDate: domain.Today(s.now()),
	}

	if err := s.borrowings.Create(ctx, borrowing); err != nil {
		if errors.Is(err, domain.ErrDeviceUnavailable) {
			s.logger.InfoContext(ctx, "device taken by a concurrent borrowing",
				slog.Int64("device_id", device.ID))
			return nil, domain.NewInputError(domain.MsgInvalidCustomerDevice)
		}
		return nil, fmt.Errorf("failed to create borrowing: %w", err)
	}

	s.cache.invalidate(ctx, KeyDevices, KeyBorrowings, KeyDashboard)
	return borrowing, nil
}

// ReturnBorrowing closes an open borrowing and makes its device available
func (s *BorrowingService) ReturnBorrowing(ctx context.Context, id int64) (*domain.Borrowing, error) {
	borrowing, err := s.borrowings.Return(ctx, id, domain.Today(s.now()))
	if err != nil {
		return nil, fmt.Errorf("failed to return borrowing: %w", err)
	}
	if borrowing == nil {
		return nil, domain.NewNotFoundError(domain.MsgBorrowingNotOpen)
	}

	s.cache.invalidate(ctx, KeyDevices, KeyBorrowings, KeyDashboard)
	return borrowing, nil
}

// ListBorrowings returns every borrowing with customer and device names
func (s *BorrowingService) ListBorrowings(ctx context.Context) ([]domain.BorrowingView, error) {
	views, err := cachedList(ctx, s.cache, KeyBorrowings, s.borrowings.FindAllWithNames)
	if err != nil {
		return nil, fmt.Errorf("failed to list borrowings: %w", err)
	}
	return views, nil
}
