// internal/handlers/routes.go
package handlers

import "net/http"

// APIPrefix is the path prefix of the desk API
const APIPrefix = "/api/v1"

// Handlers groups the HTTP handlers served by the API
type Handlers struct {
	Customers *CustomerHandler
	Employees *EmployeeHandler
	Devices   *DeviceHandler
	Sales     *SaleHandler
	Inventory *InventoryHandler
	Export    *ExportHandler
	Import    *ImportHandler
	Health    *HealthHandler
}

// RegisterRoutes registers every desk endpoint on mux. A nil handler group
// leaves its routes unregistered.
func RegisterRoutes(mux *http.ServeMux, h *Handlers) {
	if h.Health != nil {
		mux.HandleFunc("GET /health", h.Health.Health)
		mux.HandleFunc("GET /health/live", h.Health.Live)
		mux.HandleFunc("GET /health/ready", h.Health.Readiness)
	}

	if h.Customers != nil {
		mux.HandleFunc("POST "+APIPrefix+"/customers", h.Customers.CreateCustomer)
		mux.HandleFunc("GET "+APIPrefix+"/customers", h.Customers.ListCustomers)
	}

	if h.Employees != nil {
		mux.HandleFunc("POST "+APIPrefix+"/employees", h.Employees.CreateEmployee)
		mux.HandleFunc("GET "+APIPrefix+"/employees", h.Employees.ListEmployees)
	}

	if h.Devices != nil {
		mux.HandleFunc("POST "+APIPrefix+"/devices", h.Devices.CreateDevice)
		mux.HandleFunc("GET "+APIPrefix+"/devices", h.Devices.ListDevices)
		mux.HandleFunc("PUT "+APIPrefix+"/devices/status", h.Devices.UpdateDeviceStatus)
		mux.HandleFunc("POST "+APIPrefix+"/borrowings", h.Devices.CreateBorrowing)
		mux.HandleFunc("GET "+APIPrefix+"/borrowings", h.Devices.ListBorrowings)
		mux.HandleFunc("POST "+APIPrefix+"/borrowings/{id}/return", h.Devices.ReturnBorrowing)
	}

	if h.Sales != nil {
		mux.HandleFunc("POST "+APIPrefix+"/sales", h.Sales.RecordSale)
		mux.HandleFunc("GET "+APIPrefix+"/sales", h.Sales.ListSales)
	}

	if h.Inventory != nil {
		mux.HandleFunc("POST "+APIPrefix+"/inventory/receipts", h.Inventory.ReceiveStock)
		mux.HandleFunc("GET "+APIPrefix+"/inventory", h.Inventory.ListInventory)
		mux.HandleFunc("GET "+APIPrefix+"/inventory/low-stock", h.Inventory.LowStock)
		mux.HandleFunc("GET "+APIPrefix+"/dashboard", h.Inventory.GetDashboard)
	}

	if h.Export != nil {
		mux.HandleFunc("GET "+APIPrefix+"/export/{file}", h.Export.ExportListing)
		mux.HandleFunc("POST "+APIPrefix+"/reports", h.Export.QueueReport)
	}

	if h.Import != nil {
		mux.HandleFunc("POST "+APIPrefix+"/import/stock", h.Import.ImportStock)
	}
}
