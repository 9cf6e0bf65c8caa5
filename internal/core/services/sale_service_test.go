// internal/core/services/sale_service_test.go
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

	redis_a "github.com/ammerola/frontdesk-be/internal/adapters/redis_adapter"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/services"
	"github.com/ammerola/frontdesk-be/test/helpers"
	"github.com/ammerola/frontdesk-be/test/mocks"
)

type saleMocks struct {
	sales     *mocks.MockSaleRepository
	devices   *mocks.MockDeviceRepository
	employees *mocks.MockEmployeeRepository
	tasks     *mocks.MockTaskQueue
}

func newSaleService(t *testing.T, cache *services.ListingCache) (*services.SaleService, saleMocks) {
	t.Helper()
	ctrl := gomock.NewController(t)
	m := saleMocks{
		sales:     mocks.NewMockSaleRepository(ctrl),
		devices:   mocks.NewMockDeviceRepository(ctrl),
		employees: mocks.NewMockEmployeeRepository(ctrl),
		tasks:     mocks.NewMockTaskQueue(ctrl),
	}
	service := services.NewSaleService(m.sales, m.devices, m.employees, m.tasks, cache, services.SaleConfig{
		DefaultEmployeeID: 1,
		LowStockThreshold: 2,
		AlertCooldown:     time.Hour,
	}, helpers.TestLogger())
	return service, m
}

func TestSaleService_RecordSale(t *testing.T) {
	tests := []struct {
		name          string
		product       string
		amount        string
		setupMocks    func(saleMocks)
		expectedError string
		check         func(*testing.T, *domain.SaleResult)
	}{
		{
			name:    "books_sale_against_inventory",
			product: "Pod1",
			amount:  "25",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
				m.sales.EXPECT().Record(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, s *domain.Sale) (*domain.InventoryItem, error) {
						assert.Equal(t, int64(1), s.EmployeeID)
						assert.True(t, decimal.NewFromInt(25).Equal(s.Amount))
						s.ID = 7
						return helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
							i.QuantityOut = 1
							i.CurrentStock = 9
						}), nil
					})
			},
			check: func(t *testing.T, r *domain.SaleResult) {
				assert.Empty(t, r.Warning)
				require.NotNil(t, r.Inventory)
				assert.Equal(t, 9, r.Inventory.CurrentStock)
				assert.Equal(t, int64(7), r.Sale.ID)
			},
		},
		{
			name:    "warns_when_no_inventory_row",
			product: "Pod1",
			amount:  "25",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
				m.sales.EXPECT().Record(gomock.Any(), gomock.Any()).Return(nil, nil)
			},
			check: func(t *testing.T, r *domain.SaleResult) {
				assert.Equal(t, "No inventory found for Pod1.", r.Warning)
				assert.Nil(t, r.Inventory)
			},
		},
		{
			name:    "enqueues_low_stock_alert",
			product: "Pod1",
			amount:  "9.5",
			setupMocks: func(m saleMocks) {
				low := helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
					i.QuantityIn, i.QuantityOut, i.CurrentStock = 3, 1, 2
				})
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
				m.sales.EXPECT().Record(gomock.Any(), gomock.Any()).Return(low, nil)
				m.tasks.EXPECT().EnqueueLowStockAlert(gomock.Any(), *low, 2).Return(nil)
			},
		},
		{
			name:    "enqueue_failure_does_not_fail_sale",
			product: "Pod1",
			amount:  "9.5",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
				m.sales.EXPECT().Record(gomock.Any(), gomock.Any()).
					Return(helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
						i.QuantityOut, i.CurrentStock = 10, 0
					}), nil)
				m.tasks.EXPECT().EnqueueLowStockAlert(gomock.Any(), gomock.Any(), 2).Return(errors.New("redis down"))
			},
			check: func(t *testing.T, r *domain.SaleResult) {
				assert.Equal(t, 0, r.Inventory.CurrentStock)
			},
		},
		{
			name:    "device_not_available",
			product: "Pod1",
			amount:  "25",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(nil, nil)
			},
			expectedError: domain.MsgSaleFieldsRequired,
		},
		{
			name:          "empty_product",
			amount:        "25",
			setupMocks:    func(m saleMocks) {},
			expectedError: domain.MsgSaleFieldsRequired,
		},
		{
			name:    "empty_amount",
			product: "Pod1",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
			},
			expectedError: domain.MsgSaleFieldsRequired,
		},
		{
			name:    "non_numeric_amount",
			product: "Pod1",
			amount:  "abc",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
			},
			expectedError: domain.MsgInvalidAmount,
		},
		{
			name:    "negative_amount",
			product: "Pod1",
			amount:  "-5",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
			},
			expectedError: domain.MsgInvalidAmount,
		},
		{
			name:    "zero_amount",
			product: "Pod1",
			amount:  "0",
			setupMocks: func(m saleMocks) {
				m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
			},
			expectedError: domain.MsgInvalidAmount,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service, m := newSaleService(t, nil)
			tt.setupMocks(m)

			result, err := service.RecordSale(context.Background(), tt.product, tt.amount, nil)

			if tt.expectedError != "" {
				require.Error(t, err)
				assert.True(t, domain.IsInputError(err))
				assert.Equal(t, tt.expectedError, err.Error())
				assert.Nil(t, result)
				return
			}
			require.NoError(t, err)
			if tt.check != nil {
				tt.check(t, result)
			}
		})
	}
}

func TestSaleService_RecordSale_ExplicitEmployee(t *testing.T) {
	service, m := newSaleService(t, nil)
	employeeID := int64(3)

	m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Return(helpers.CreateTestDevice(), nil)
	m.employees.EXPECT().FindByID(gomock.Any(), employeeID).
		Return(helpers.CreateTestEmployee(func(e *domain.Employee) { e.ID = employeeID }), nil)
	m.sales.EXPECT().Record(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, s *domain.Sale) (*domain.InventoryItem, error) {
			assert.Equal(t, employeeID, s.EmployeeID)
			return nil, nil
		})

	_, err := service.RecordSale(context.Background(), "Pod1", "10", &employeeID)
	require.NoError(t, err)
}

func TestSaleService_LowStockAlertIsDeduplicated(t *testing.T) {
	redis := helpers.SetupTestRedis(t)
	cache := services.NewListingCache(
		redis_a.NewCache(redis.Client, time.Minute, helpers.TestLogger()), time.Minute, helpers.TestLogger())
	service, m := newSaleService(t, cache)

	low := helpers.CreateTestInventoryItem(func(i *domain.InventoryItem) {
		i.QuantityIn, i.QuantityOut, i.CurrentStock = 2, 1, 1
	})
	m.devices.EXPECT().FindFirstAvailableByName(gomock.Any(), "Pod1").Times(2).Return(helpers.CreateTestDevice(), nil)
	m.sales.EXPECT().Record(gomock.Any(), gomock.Any()).Times(2).Return(low, nil)
	m.tasks.EXPECT().EnqueueLowStockAlert(gomock.Any(), gomock.Any(), 2).Times(1).Return(nil)

	for i := 0; i < 2; i++ {
		_, err := service.RecordSale(context.Background(), "Pod1", "5", nil)
		require.NoError(t, err)
	}
}
