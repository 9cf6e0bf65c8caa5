// internal/core/services/report_service_test.go
package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/services"
	"github.com/ammerola/frontdesk-be/test/helpers"
	"github.com/ammerola/frontdesk-be/test/mocks"
)

type reportDeps struct {
	customers  *mocks.MockCustomerService
	devices    *mocks.MockDeviceService
	borrowings *mocks.MockBorrowingService
	sales      *mocks.MockSaleService
	inventory  *mocks.MockInventoryService
}

func newReportService(t *testing.T) (*services.ReportService, reportDeps) {
	ctrl := gomock.NewController(t)
	deps := reportDeps{
		customers:  mocks.NewMockCustomerService(ctrl),
		devices:    mocks.NewMockDeviceService(ctrl),
		borrowings: mocks.NewMockBorrowingService(ctrl),
		sales:      mocks.NewMockSaleService(ctrl),
		inventory:  mocks.NewMockInventoryService(ctrl),
	}
	svc := services.NewReportService(deps.customers, deps.devices, deps.borrowings, deps.sales, deps.inventory, helpers.TestLogger())
	return svc, deps
}

func TestReportService_BuildTable(t *testing.T) {
	borrowedOn := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	returnedOn := time.Date(2024, 3, 4, 0, 0, 0, 0, time.UTC)
	employeeID := int64(2)

	tests := []struct {
		name       string
		kind       domain.ReportKind
		setupMocks func(reportDeps)
		headers    []string
		rows       [][]string
	}{
		{
			name: "customers",
			kind: domain.ReportCustomers,
			setupMocks: func(d reportDeps) {
				d.customers.EXPECT().ListCustomers(gomock.Any()).Return([]domain.Customer{
					*helpers.CreateTestCustomer(func(c *domain.Customer) { c.CreatedAt = borrowedOn }),
				}, nil)
			},
			headers: []string{"ID", "Name", "Contact Info", "Created At"},
			rows:    [][]string{{"1", "Alice", "555-1234", "2024-03-01 00:00:00"}},
		},
		{
			name: "devices",
			kind: domain.ReportDevices,
			setupMocks: func(d reportDeps) {
				d.devices.EXPECT().ListDevices(gomock.Any()).Return([]domain.Device{
					*helpers.CreateTestDevice(func(dev *domain.Device) {
						dev.Status = domain.DeviceBorrowed
						dev.UpdatedAt = time.Time{}
					}),
				}, nil)
			},
			headers: []string{"ID", "Name", "Model", "Status", "Updated At"},
			rows:    [][]string{{"1", "Pod1", "ModelX", "borrowed", ""}},
		},
		{
			name: "borrowings_open_and_returned",
			kind: domain.ReportBorrowings,
			setupMocks: func(d reportDeps) {
				d.borrowings.EXPECT().ListBorrowings(gomock.Any()).Return([]domain.BorrowingView{
					{
						Borrowing:    domain.Borrowing{ID: 1, BorrowDate: borrowedOn, ReturnDate: &returnedOn, EmployeeID: &employeeID},
						CustomerName: "Alice",
						DeviceName:   "Pod1",
					},
					{
						Borrowing:    domain.Borrowing{ID: 2, BorrowDate: borrowedOn},
						CustomerName: "Bob",
						DeviceName:   "Pod2",
					},
				}, nil)
			},
			headers: []string{"ID", "Customer", "Device", "Employee ID", "Borrow Date", "Return Date"},
			rows: [][]string{
				{"1", "Alice", "Pod1", "2", "2024-03-01", "2024-03-04"},
				{"2", "Bob", "Pod2", "", "2024-03-01", ""},
			},
		},
		{
			name: "sales",
			kind: domain.ReportSales,
			setupMocks: func(d reportDeps) {
				d.sales.EXPECT().ListSales(gomock.Any()).Return([]domain.Sale{
					*helpers.CreateTestSale(func(s *domain.Sale) {
						s.Amount = decimal.RequireFromString("5")
						s.SaleDate = borrowedOn
					}),
				}, nil)
			},
			headers: []string{"ID", "Product", "Amount", "Employee ID", "Sale Date"},
			rows:    [][]string{{"1", "Pod1", "5.00", "1", "2024-03-01 00:00:00"}},
		},
		{
			name: "inventory",
			kind: domain.ReportInventory,
			setupMocks: func(d reportDeps) {
				d.inventory.EXPECT().ListInventory(gomock.Any()).Return([]domain.InventoryItem{
					*helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
						i.QuantityOut = 3
						i.CurrentStock = 7
						i.UpdatedAt = returnedOn
					}),
				}, nil)
			},
			headers: []string{"ID", "Item Name", "Quantity In", "Quantity Out", "Current Stock", "Updated At"},
			rows:    [][]string{{"1", "Pod1", "10", "3", "7", "2024-03-04 00:00:00"}},
		},
		{
			name: "empty_listing",
			kind: domain.ReportCustomers,
			setupMocks: func(d reportDeps) {
				d.customers.EXPECT().ListCustomers(gomock.Any()).Return([]domain.Customer{}, nil)
			},
			headers: []string{"ID", "Name", "Contact Info", "Created At"},
			rows:    [][]string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newReportService(t)
			tt.setupMocks(deps)

			table, err := svc.BuildTable(context.Background(), tt.kind)

			require.NoError(t, err)
			assert.Equal(t, tt.kind, table.Kind)
			assert.Equal(t, tt.headers, table.Headers)
			assert.Equal(t, tt.rows, table.Rows)
		})
	}
}

func TestReportService_BuildTable_Errors(t *testing.T) {
	t.Run("unknown_kind", func(t *testing.T) {
		svc, _ := newReportService(t)

		_, err := svc.BuildTable(context.Background(), domain.ReportKind("payroll"))

		require.Error(t, err)
		assert.True(t, domain.IsInputError(err))
	})

	t.Run("listing_error", func(t *testing.T) {
		svc, deps := newReportService(t)
		deps.sales.EXPECT().ListSales(gomock.Any()).Return(nil, errors.New("failed to list sales: timeout"))

		_, err := svc.BuildTable(context.Background(), domain.ReportSales)

		assert.EqualError(t, err, "failed to list sales: timeout")
	})
}

func TestReportTable_FileName(t *testing.T) {
	table := &domain.ReportTable{Kind: domain.ReportInventory}
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	assert.Equal(t, "inventory_20240506_070809.xlsx", table.FileName(at))
}
