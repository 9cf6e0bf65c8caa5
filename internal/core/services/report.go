// internal/core/services/report.go
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

const (
	dateLayout      = "2006-01-02"
	timestampLayout = "2006-01-02 15:04:05"
)

// ReportService flattens listings into tables for export
type ReportService struct {
	customers  ports.CustomerService
	devices    ports.DeviceService
	borrowings ports.BorrowingService
	sales      ports.SaleService
	inventory  ports.InventoryService
	logger     *slog.Logger
}

// NewReportService creates a new report service over the listing services
func NewReportService(
	customers ports.CustomerService,
	devices ports.DeviceService,
	borrowings ports.BorrowingService,
	sales ports.SaleService,
	inventory ports.InventoryService,
	logger *slog.Logger,
) *ReportService {
	return &ReportService{
		customers:  customers,
		devices:    devices,
		borrowings: borrowings,
		sales:      sales,
		inventory:  inventory,
		logger:     logger.With(slog.String("service", "report")),
	}
}

// BuildTable loads the listing for kind and renders it as display rows
func (s *ReportService) BuildTable(ctx context.Context, kind domain.ReportKind) (*domain.ReportTable, error) {
	table := &domain.ReportTable{Kind: kind, Rows: make([][]string, 0)}

	switch kind {
	case domain.ReportCustomers:
		customers, err := s.customers.ListCustomers(ctx)
		if err != nil {
			return nil, err
		}
		table.Headers = []string{"ID", "Name", "Contact Info", "Created At"}
		for _, c := range customers {
			table.Rows = append(table.Rows, []string{
				formatID(c.ID), c.Name, c.ContactInfo, formatTimestamp(c.CreatedAt),
			})
		}

	case domain.ReportDevices:
		devices, err := s.devices.ListDevices(ctx)
		if err != nil {
			return nil, err
		}
		table.Headers = []string{"ID", "Name", "Model", "Status", "Updated At"}
		for _, d := range devices {
			table.Rows = append(table.Rows, []string{
				formatID(d.ID), d.Name, d.Model, d.Status.String(), formatTimestamp(d.UpdatedAt),
			})
		}

	case domain.ReportBorrowings:
		borrowings, err := s.borrowings.ListBorrowings(ctx)
		if err != nil {
			return nil, err
		}
		table.Headers = []string{"ID", "Customer", "Device", "Employee ID", "Borrow Date", "Return Date"}
		for _, b := range borrowings {
			returned := ""
			if b.ReturnDate != nil {
				returned = b.ReturnDate.Format(dateLayout)
			}
			employee := ""
			if b.EmployeeID != nil {
				employee = formatID(*b.EmployeeID)
			}
			table.Rows = append(table.Rows, []string{
				formatID(b.ID), b.CustomerName, b.DeviceName, employee, b.BorrowDate.Format(dateLayout), returned,
			})
		}

	case domain.ReportSales:
		sales, err := s.sales.ListSales(ctx)
		if err != nil {
			return nil, err
		}
		table.Headers = []string{"ID", "Product", "Amount", "Employee ID", "Sale Date"}
		for _, sale := range sales {
			table.Rows = append(table.Rows, []string{
				formatID(sale.ID), sale.ProductName, sale.Amount.StringFixed(2), formatID(sale.EmployeeID), formatTimestamp(sale.SaleDate),
			})
		}

	case domain.ReportInventory:
		items, err := s.inventory.ListInventory(ctx)
		if err != nil {
			return nil, err
		}
		table.Headers = []string{"ID", "Item Name", "Quantity In", "Quantity Out", "Current Stock", "Updated At"}
		for _, item := range items {
			table.Rows = append(table.Rows, []string{
				formatID(item.ID), item.ItemName,
				strconv.Itoa(item.QuantityIn), strconv.Itoa(item.QuantityOut), strconv.Itoa(item.CurrentStock),
				formatTimestamp(item.UpdatedAt),
			})
		}

	default:
		return nil, domain.NewInputError(fmt.Sprintf("Unknown report kind: %s", kind))
	}

	s.logger.DebugContext(ctx, "report table built",
		slog.String("kind", string(kind)),
		slog.Int("rows", len(table.Rows)))

	return table, nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(timestampLayout)
}
