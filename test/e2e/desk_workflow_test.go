//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"github.com/ammerola/frontdesk-be/internal/adapters/db"
	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	redis_a "github.com/ammerola/frontdesk-be/internal/adapters/redis_adapter"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/services"
	"github.com/ammerola/frontdesk-be/internal/handlers"
	"github.com/ammerola/frontdesk-be/internal/handlers/middleware"
	"github.com/ammerola/frontdesk-be/internal/workers"
	"github.com/ammerola/frontdesk-be/test/helpers"
)

const lowStockThreshold = 2

type DeskE2ESuite struct {
	suite.Suite
	server    *httptest.Server
	client    *http.Client
	baseURL   string
	uploadDir string
	testDB    *helpers.TestDB
	testRedis *helpers.TestRedis
	asynq     *asynq.Client
	inventory *services.InventoryService
}

func (s *DeskE2ESuite) SetupSuite() {
	s.testDB = helpers.SetupTestDB(s.T())
	s.testRedis = helpers.SetupTestRedis(s.T())
	s.uploadDir = s.T().TempDir()

	s.server = s.startTestServer()
	s.client = &http.Client{Timeout: 10 * time.Second}
	s.baseURL = s.server.URL + handlers.APIPrefix
}

func (s *DeskE2ESuite) TearDownSuite() {
	s.server.Close()
	s.asynq.Close()
}

func (s *DeskE2ESuite) SetupTest() {
	helpers.TruncateAllTables(s.T(), s.testDB.PgxPool)
	s.testRedis.Server.FlushAll()
}

func (s *DeskE2ESuite) TestLendReturnAndSellWorkflow() {
	// 1. Register staff, a customer and a device
	resp := s.makeRequest(http.MethodPost, "/employees", map[string]any{
		"name": "Ana Ruiz", "position": "Technician", "department": "Support",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var employee domain.Employee
	s.decodeResponse(resp, &employee)
	s.NotZero(employee.ID)

	resp = s.makeRequest(http.MethodPost, "/customers", map[string]any{
		"name": "Grace Hopper", "contact_info": "grace@example.com",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodPost, "/devices", map[string]any{"name": "Laptop", "model": "T14"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodPost, "/inventory/receipts", map[string]any{"item_name": "Laptop", "quantity": 3})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	// 2. Lend the device
	resp = s.makeRequest(http.MethodPost, "/borrowings", map[string]any{
		"customer_name": "Grace Hopper", "device_name": "Laptop", "employee_id": employee.ID,
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var borrowing domain.Borrowing
	s.decodeResponse(resp, &borrowing)
	s.Equal(employee.ID, *borrowing.EmployeeID)

	var devices []domain.Device
	s.decodeResponse(s.makeRequest(http.MethodGet, "/devices", nil), &devices)
	s.Require().Len(devices, 1)
	s.Equal(domain.DeviceBorrowed, devices[0].Status)

	// 3. A borrowed device cannot be lent or sold
	resp = s.makeRequest(http.MethodPost, "/borrowings", map[string]any{
		"customer_name": "Grace Hopper", "device_name": "Laptop",
	})
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// 4. Return it
	resp = s.makeRequest(http.MethodPost, fmt.Sprintf("/borrowings/%d/return", borrowing.ID), nil)
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodPost, fmt.Sprintf("/borrowings/%d/return", borrowing.ID), nil)
	s.Equal(http.StatusBadRequest, resp.StatusCode)
	resp.Body.Close()

	// 5. Sell it; stock drops to the threshold and an alert is queued
	resp = s.makeRequest(http.MethodPost, "/sales", map[string]any{"product_name": "Laptop", "amount": "999.90"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	var result domain.SaleResult
	s.decodeResponse(resp, &result)
	s.Require().NotNil(result.Inventory)
	s.Equal(2, result.Inventory.CurrentStock)
	s.Equal(domain.DefaultEmployeeID, result.Sale.EmployeeID)

	pending, err := s.testRedis.Server.List("asynq:{critical}:pending")
	s.NoError(err)
	s.Len(pending, 1)

	var low []domain.InventoryItem
	s.decodeResponse(s.makeRequest(http.MethodGet, "/inventory/low-stock", nil), &low)
	s.Len(low, 1)

	// 6. Dashboard reflects all of it
	var summary domain.DashboardSummary
	s.decodeResponse(s.makeRequest(http.MethodGet, "/dashboard", nil), &summary)
	s.Equal(int64(1), summary.Customers)
	s.Equal(int64(1), summary.SalesCount)
	s.True(summary.SalesTotal.Equal(decimal.RequireFromString("999.90")))
	s.Equal(int64(0), summary.OpenBorrowings)
}

func (s *DeskE2ESuite) TestExportListing() {
	resp := s.makeRequest(http.MethodPost, "/customers", map[string]any{
		"name": "Alan Turing", "contact_info": "alan@example.com",
	})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.makeRequest(http.MethodGet, "/export/customers.xlsx", nil)
	defer resp.Body.Close()
	s.Require().Equal(http.StatusOK, resp.StatusCode)
	s.Equal(domain.ReportContentType, resp.Header.Get("Content-Type"))

	data, err := io.ReadAll(resp.Body)
	s.Require().NoError(err)
	s.NotEmpty(data)

	resp = s.makeRequest(http.MethodPost, "/reports", map[string]any{"kind": "customers"})
	s.Equal(http.StatusAccepted, resp.StatusCode)
	resp.Body.Close()
}

func (s *DeskE2ESuite) TestStockImportWorkflow() {
	workbook, err := documents.EncodeTable(&domain.ReportTable{
		Kind:    domain.ReportInventory,
		Headers: []string{"Item", "Quantity"},
		Rows:    [][]string{{"USB-C Cable", "4"}, {"Mouse", "6"}},
	})
	s.Require().NoError(err)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "delivery.xlsx")
	s.Require().NoError(err)
	_, err = part.Write(workbook)
	s.Require().NoError(err)
	s.Require().NoError(writer.Close())

	req, err := http.NewRequest(http.MethodPost, s.baseURL+"/import/stock", body)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	s.Require().NoError(err)
	s.Require().Equal(http.StatusAccepted, resp.StatusCode)

	var queued handlers.QueuedTaskResponse
	s.decodeResponse(resp, &queued)
	s.NotEmpty(queued.TaskID)

	// Run the worker side in process
	files, err := filepath.Glob(filepath.Join(s.uploadDir, "*.xlsx"))
	s.Require().NoError(err)
	s.Require().Len(files, 1)

	task, err := workers.NewStockImportTask(files[0], workers.FileTypeXLSX)
	s.Require().NoError(err)
	processor := workers.NewImportProcessor(s.inventory, helpers.TestLogger())
	s.Require().NoError(processor.ProcessStockImport(context.Background(), task))

	_, err = os.Stat(files[0])
	s.True(os.IsNotExist(err))

	var items []domain.InventoryItem
	s.decodeResponse(s.makeRequest(http.MethodGet, "/inventory", nil), &items)
	s.Require().Len(items, 2)
	s.Equal("USB-C Cable", items[0].ItemName)
	s.Equal(4, items[0].CurrentStock)
	s.Equal(6, items[1].CurrentStock)
}

func (s *DeskE2ESuite) TestConcurrentBorrowingsLendEachDeviceOnce() {
	resp := s.makeRequest(http.MethodPost, "/customers", map[string]any{"name": "Kat", "contact_info": "kat@example.com"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()
	resp = s.makeRequest(http.MethodPost, "/devices", map[string]any{"name": "Projector", "model": "EB-W49"})
	s.Require().Equal(http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	const attempts = 10
	codes := make(chan int, attempts)
	for i := 0; i < attempts; i++ {
		go func() {
			resp := s.makeRequest(http.MethodPost, "/borrowings", map[string]any{
				"customer_name": "Kat", "device_name": "Projector",
			})
			resp.Body.Close()
			codes <- resp.StatusCode
		}()
	}

	created := 0
	for i := 0; i < attempts; i++ {
		if <-codes == http.StatusCreated {
			created++
		}
	}
	s.Equal(1, created)
}

func (s *DeskE2ESuite) TestHealthCheck() {
	resp, err := s.client.Get(s.server.URL + "/health")
	s.Require().NoError(err)
	s.Equal(http.StatusOK, resp.StatusCode)

	var health handlers.HealthStatus
	s.decodeResponse(resp, &health)
	s.Equal(handlers.StatusHealthy, health.Status)
	s.Contains(health.Services, "database")
	s.Contains(health.Services, "redis")
}

// Helper methods

func (s *DeskE2ESuite) startTestServer() *httptest.Server {
	logger := helpers.TestLogger()
	database := s.testDB.Database

	listings := services.NewListingCache(redis_a.NewCache(s.testRedis.Client, time.Minute, logger), time.Minute, logger)

	s.asynq = asynq.NewClient(asynq.RedisClientOpt{Addr: s.testRedis.Server.Addr()})
	tasks := workers.NewTaskClient(s.asynq, logger)

	employeeRepo := db.NewEmployeeRepository(database, logger)
	customerRepo := db.NewCustomerRepository(database, logger)
	deviceRepo := db.NewDeviceRepository(database, logger)

	employeeService := services.NewEmployeeService(employeeRepo, listings, logger)
	customerService := services.NewCustomerService(customerRepo, listings, logger)
	deviceService := services.NewDeviceService(deviceRepo, listings, logger)
	borrowingService := services.NewBorrowingService(db.NewBorrowingRepository(database, logger),
		customerRepo, deviceRepo, employeeRepo, listings, logger)
	saleService := services.NewSaleService(db.NewSaleRepository(database, logger),
		deviceRepo, employeeRepo, tasks, listings, services.SaleConfig{
			LowStockThreshold: lowStockThreshold,
			AlertCooldown:     time.Hour,
		}, logger)
	s.inventory = services.NewInventoryService(db.NewInventoryRepository(database, logger), listings, lowStockThreshold, logger)
	dashboardService := services.NewDashboardService(db.NewDashboardRepository(database, logger), listings, lowStockThreshold, logger)
	reportService := services.NewReportService(customerService, deviceService, borrowingService, saleService, s.inventory, logger)

	mux := http.NewServeMux()
	handlers.RegisterRoutes(mux, &handlers.Handlers{
		Customers: handlers.NewCustomerHandler(customerService, logger),
		Employees: handlers.NewEmployeeHandler(employeeService, logger),
		Devices:   handlers.NewDeviceHandler(deviceService, borrowingService, logger),
		Sales:     handlers.NewSaleHandler(saleService, logger),
		Inventory: handlers.NewInventoryHandler(s.inventory, dashboardService, lowStockThreshold, logger),
		Export:    handlers.NewExportHandler(reportService, tasks, logger),
		Import:    handlers.NewImportHandler(tasks, 1<<20, s.uploadDir, logger),
		Health:    handlers.NewHealthHandler(database, s.testRedis.Client, nil, "e2e", "test", logger),
	})

	handler := middleware.Chain(mux,
		middleware.RequestID(""),
		middleware.Logger(logger),
		middleware.Recovery(logger),
		middleware.Timeout(5*time.Second),
	)

	return httptest.NewServer(handler)
}

func (s *DeskE2ESuite) makeRequest(method, path string, body any) *http.Response {
	var reqBody io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		s.NoError(err)
		reqBody = bytes.NewReader(jsonBody)
	}

	req, err := http.NewRequest(method, s.baseURL+path, reqBody)
	s.NoError(err)

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := s.client.Do(req)
	s.Require().NoError(err)

	return resp
}

func (s *DeskE2ESuite) decodeResponse(resp *http.Response, v any) {
	defer resp.Body.Close()
	err := json.NewDecoder(resp.Body).Decode(v)
	s.NoError(err)
}

func TestDeskE2ESuite(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping E2E tests in short mode")
	}
	suite.Run(t, new(DeskE2ESuite))
}
