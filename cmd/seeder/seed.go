package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"strings"
	"time"

	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

type demoDevice struct {
	Name  string
	Model string
}

var (
	demoEmployees = []domain.Employee{
		{Name: "Ana Ruiz", Position: "Technician", Department: "Support"},
		{Name: "Ben Okafor", Position: "Clerk", Department: "Retail"},
	}
	demoCustomers = []domain.Customer{
		{Name: "Grace Hopper", ContactInfo: "grace@example.com"},
		{Name: "Alan Turing", ContactInfo: "+44 20 7946 0000"},
		{Name: "Katherine Johnson", ContactInfo: "kj@example.com"},
	}
	demoDevices = []demoDevice{
		{Name: "Laptop", Model: "ThinkPad T14"},
		{Name: "Laptop", Model: "ThinkPad T14"},
		{Name: "Projector", Model: "Epson EB-W49"},
		{Name: "Headset", Model: "Jabra Evolve2 65"},
	}
	demoStock = []domain.StockReceipt{
		{ItemName: "Laptop", Quantity: 5},
		{ItemName: "Projector", Quantity: 2},
		{ItemName: "Headset", Quantity: 10},
	}
)

// SeederState tracks what a previous run already applied
type SeederState struct {
	DemoSeeded        bool      `json:"demo_seeded"`
	ProcessedReceipts []string  `json:"processed_receipts"`
	LastUpdate        time.Time `json:"last_update"`
}

func loadState(path string) (*SeederState, error) {
	var state SeederState
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return &state, nil
	}
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("invalid state file %s: %w", path, err)
	}
	return &state, nil
}

func (s *SeederState) save(path string) error {
	s.LastUpdate = time.Now().UTC()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func (s *SeederState) processed(name string) bool {
	return slices.Contains(s.ProcessedReceipts, name)
}

// Seeder writes demo rows and receipt files through the application services
type Seeder struct {
	employees ports.EmployeeService
	customers ports.CustomerService
	devices   ports.DeviceService
	inventory ports.InventoryService
	logger    *slog.Logger
}

// SeedDemo creates the demo employees, customers, devices and opening stock
func (s *Seeder) SeedDemo(ctx context.Context) error {
	for i := range demoEmployees {
		employee := demoEmployees[i]
		if err := s.employees.AddEmployee(ctx, &employee); err != nil {
			return fmt.Errorf("employee %s: %w", employee.Name, err)
		}
	}

	for _, c := range demoCustomers {
		if _, err := s.customers.AddCustomer(ctx, c.Name, c.ContactInfo); err != nil {
			return fmt.Errorf("customer %s: %w", c.Name, err)
		}
	}

	for _, d := range demoDevices {
		if _, err := s.devices.AddDevice(ctx, d.Name, d.Model); err != nil {
			return fmt.Errorf("device %s: %w", d.Name, err)
		}
	}

	if _, err := s.inventory.ReceiveBatch(ctx, demoStock); err != nil {
		return fmt.Errorf("opening stock: %w", err)
	}

	s.logger.Info("demo data seeded",
		slog.Int("employees", len(demoEmployees)),
		slog.Int("customers", len(demoCustomers)),
		slog.Int("devices", len(demoDevices)),
		slog.Int("stock_lines", len(demoStock)))
	return nil
}

// ReceiptFiles lists the .xlsx and .pdf files in dir in name order
func ReceiptFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".xlsx", ".pdf":
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)
	return files, nil
}

// ReadReceipts parses one receipt file by extension
func ReadReceipts(path string) ([]domain.StockReceipt, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xlsx":
		return documents.ReadReceiptsXLSX(path)
	case ".pdf":
		return documents.ReadReceiptsPDF(path)
	default:
		return nil, fmt.Errorf("unsupported receipt file %s", path)
	}
}

// ImportReceipts applies one file. dryRun parses without writing.
func (s *Seeder) ImportReceipts(ctx context.Context, path string, dryRun bool) (int, error) {
	receipts, err := ReadReceipts(path)
	if err != nil {
		return 0, err
	}
	if len(receipts) == 0 {
		return 0, nil
	}
	if dryRun {
		return len(receipts), nil
	}
	return s.inventory.ReceiveBatch(ctx, receipts)
}
