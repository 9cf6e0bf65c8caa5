// internal/core/services/cache_test.go
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

func newListingCache(t *testing.T) (*services.ListingCache, *helpers.TestRedis) {
	t.Helper()
	redis := helpers.SetupTestRedis(t)
	cache := redis_a.NewCache(redis.Client, time.Minute, helpers.TestLogger())
	return services.NewListingCache(cache, 5*time.Minute, helpers.TestLogger()), redis
}

func TestListingCache_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	listing, redis := newListingCache(t)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockCustomerRepository(ctrl)
	service := services.NewCustomerService(repo, listing, helpers.TestLogger())

	first := []domain.Customer{*helpers.CreateTestCustomer()}
	repo.EXPECT().FindAll(gomock.Any()).Return(first, nil).Times(1)

	for i := 0; i < 3; i++ {
		customers, err := service.ListCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, customers, 1)
		assert.Equal(t, "Alice", customers[0].Name)
	}
	assert.True(t, redis.Server.Exists(services.KeyCustomers))

	repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(nil)
	_, err := service.AddCustomer(ctx, "Bob", "555-0000")
	require.NoError(t, err)
	assert.False(t, redis.Server.Exists(services.KeyCustomers))

	second := append(first, *helpers.CreateTestCustomer(func(c *domain.Customer) {
		c.ID, c.Name = 2, "Bob"
	}))
	repo.EXPECT().FindAll(gomock.Any()).Return(second, nil).Times(1)

	customers, err := service.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 2)
}

func TestListingCache_EmptyListingIsNotNil(t *testing.T) {
	listing, _ := newListingCache(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDeviceRepository(ctrl)
	repo.EXPECT().FindAll(gomock.Any()).Return([]domain.Device{}, nil)

	service := services.NewDeviceService(repo, listing, helpers.TestLogger())
	devices, err := service.ListDevices(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, devices)
	assert.Empty(t, devices)
}

func TestListingCache_FallsBackWhenRedisIsDown(t *testing.T) {
	listing, redis := newListingCache(t)
	redis.Server.Close()

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockSaleRepository(ctrl)
	sales := []domain.Sale{*helpers.CreateTestSale()}
	repo.EXPECT().FindAll(gomock.Any()).Return(sales, nil)

	service := services.NewSaleService(repo, nil, nil, nil, listing, services.SaleConfig{}, helpers.TestLogger())
	got, err := service.ListSales(context.Background())

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.True(t, decimal.RequireFromString("19.99").Equal(got[0].Amount))
}

func TestListingCache_StoreErrorIsReturned(t *testing.T) {
	listing, _ := newListingCache(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInventoryRepository(ctrl)
	repo.EXPECT().FindAll(gomock.Any()).Return(nil, errors.New("relation does not exist"))

	service := services.NewInventoryService(repo, listing, 2, helpers.TestLogger())
	_, err := service.ListInventory(context.Background())

	require.Error(t, err)
	assert.ErrorContains(t, err, "relation does not exist")
}

func TestListingCache_DashboardRoundTrip(t *testing.T) {
	listing, _ := newListingCache(t)
	ctrl := gomock.NewController(t)
	repo := mocks.NewMockDashboardRepository(ctrl)
	repo.EXPECT().Summary(gomock.Any(), 2).Return(&domain.DashboardSummary{
		Customers:       3,
		DevicesByStatus: map[domain.DeviceStatus]int64{domain.DeviceAvailable: 2, domain.DeviceBorrowed: 1},
		SalesTotal:      decimal.RequireFromString("45.50"),
	}, nil).Times(1)

	service := services.NewDashboardService(repo, listing, 2, helpers.TestLogger())

	_, err := service.Summary(context.Background())
	require.NoError(t, err)
	cached, err := service.Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(3), cached.Customers)
	assert.Equal(t, int64(1), cached.DevicesByStatus[domain.DeviceBorrowed])
	assert.True(t, decimal.RequireFromString("45.5").Equal(cached.SalesTotal))
}

func TestListingCache_OnlyConfiguredLowStockThresholdIsCached(t *testing.T) {
	ctx := context.Background()
	listing, redis := newListingCache(t)

	ctrl := gomock.NewController(t)
	repo := mocks.NewMockInventoryRepository(ctrl)
	service := services.NewInventoryService(repo, listing, 2, helpers.TestLogger())

	low := []domain.InventoryItem{*helpers.CreateTestInventoryItem()}
	repo.EXPECT().FindLowStock(gomock.Any(), 2).Return(low, nil).Times(1)
	repo.EXPECT().FindLowStock(gomock.Any(), 7).Return(low, nil).Times(2)

	for i := 0; i < 2; i++ {
		_, err := service.LowStock(ctx, 2)
		require.NoError(t, err)
		_, err = service.LowStock(ctx, 7)
		require.NoError(t, err)
	}

	assert.True(t, redis.Server.Exists(services.LowStockKey(2)))
	assert.False(t, redis.Server.Exists(services.LowStockKey(7)))
}

func TestLowStockKey(t *testing.T) {
	assert.Equal(t, "frontdesk:low_stock:2", services.LowStockKey(2))
}
