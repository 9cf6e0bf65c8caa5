package main

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/test/helpers"
	"github.com/ammerola/frontdesk-be/test/mocks"
)

type seederMocks struct {
	employees *mocks.MockEmployeeService
	customers *mocks.MockCustomerService
	devices   *mocks.MockDeviceService
	inventory *mocks.MockInventoryService
}

func newTestSeeder(t *testing.T) (*Seeder, seederMocks) {
	ctrl := gomock.NewController(t)
	m := seederMocks{
		employees: mocks.NewMockEmployeeService(ctrl),
		customers: mocks.NewMockCustomerService(ctrl),
		devices:   mocks.NewMockDeviceService(ctrl),
		inventory: mocks.NewMockInventoryService(ctrl),
	}
	return &Seeder{
		employees: m.employees,
		customers: m.customers,
		devices:   m.devices,
		inventory: m.inventory,
		logger:    helpers.TestLogger(),
	}, m
}

func TestSeeder_SeedDemo(t *testing.T) {
	s, m := newTestSeeder(t)

	m.employees.EXPECT().AddEmployee(gomock.Any(), gomock.Any()).Return(nil).Times(len(demoEmployees))
	m.customers.EXPECT().AddCustomer(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Customer{}, nil).Times(len(demoCustomers))
	m.devices.EXPECT().AddDevice(gomock.Any(), gomock.Any(), gomock.Any()).Return(&domain.Device{}, nil).Times(len(demoDevices))
	m.inventory.EXPECT().ReceiveBatch(gomock.Any(), demoStock).Return(len(demoStock), nil)

	require.NoError(t, s.SeedDemo(context.Background()))
}

func TestSeeder_SeedDemoStopsOnError(t *testing.T) {
	s, m := newTestSeeder(t)

	m.employees.EXPECT().AddEmployee(gomock.Any(), gomock.Any()).Return(errors.New("duplicate"))

	err := s.SeedDemo(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), demoEmployees[0].Name)
}

func TestReceiptFiles(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.xlsx", "notes.txt", "C.PDF"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o600))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.pdf"), 0o755))

	files, err := ReceiptFiles(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{
		filepath.Join(dir, "C.PDF"),
		filepath.Join(dir, "a.xlsx"),
		filepath.Join(dir, "b.pdf"),
	}, files)
}

func TestSeeder_ImportReceipts(t *testing.T) {
	data, err := documents.EncodeTable(&domain.ReportTable{
		Kind:    domain.ReportInventory,
		Headers: []string{"Item", "Quantity"},
		Rows:    [][]string{{"Cable", "4"}},
	})
	require.NoError(t, err)
	path := helpers.CreateTempFile(t, data, ".xlsx")

	t.Run("applies", func(t *testing.T) {
		s, m := newTestSeeder(t)
		m.inventory.EXPECT().
			ReceiveBatch(gomock.Any(), []domain.StockReceipt{{ItemName: "Cable", Quantity: 4}}).
			Return(1, nil)

		n, err := s.ImportReceipts(context.Background(), path, false)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})

	t.Run("dry_run_does_not_write", func(t *testing.T) {
		s, _ := newTestSeeder(t)

		n, err := s.ImportReceipts(context.Background(), path, true)
		require.NoError(t, err)
		assert.Equal(t, 1, n)
	})
}

func TestSeederState_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	state, err := loadState(path)
	require.NoError(t, err)
	assert.False(t, state.DemoSeeded)

	state.DemoSeeded = true
	state.ProcessedReceipts = []string{"a.xlsx"}
	require.NoError(t, state.save(path))

	loaded, err := loadState(path)
	require.NoError(t, err)
	assert.True(t, loaded.DemoSeeded)
	assert.True(t, loaded.processed("a.xlsx"))
	assert.False(t, loaded.processed("b.pdf"))
}
