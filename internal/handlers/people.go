// internal/handlers/people.go
package handlers

import (
	"log/slog"
	"net/http"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// CustomerHandler handles customer registration and listing
type CustomerHandler struct {
	responder
	service ports.CustomerService
}

// NewCustomerHandler creates a new customer handler
func NewCustomerHandler(service ports.CustomerService, logger *slog.Logger) *CustomerHandler {
	return &CustomerHandler{
		responder: newResponder(logger, "customer"),
		service:   service,
	}
}

// CreateCustomerRequest is the customer form
type CreateCustomerRequest struct {
	Name        string `json:"name"`
	ContactInfo string `json:"contact_info"`
}

// CreateCustomer handles POST /api/v1/customers
func (h *CustomerHandler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var req CreateCustomerRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	customer, err := h.service.AddCustomer(r.Context(), req.Name, req.ContactInfo)
	if err != nil {
		h.respondServiceError(w, r, err, "add customer")
		return
	}

	h.respondJSON(w, http.StatusCreated, customer)
}

// ListCustomers handles GET /api/v1/customers
func (h *CustomerHandler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.service.ListCustomers(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list customers")
		return
	}

	h.respondJSON(w, http.StatusOK, customers)
}

// EmployeeHandler handles desk staff
type EmployeeHandler struct {
	responder
	service ports.EmployeeService
}

// NewEmployeeHandler creates a new employee handler
func NewEmployeeHandler(service ports.EmployeeService, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{
		responder: newResponder(logger, "employee"),
		service:   service,
	}
}

// CreateEmployeeRequest is the employee form
type CreateEmployeeRequest struct {
	Name       string `json:"name"`
	Position   string `json:"position"`
	Department string `json:"department"`
}

// ToDomain converts the request to a domain employee
func (req *CreateEmployeeRequest) ToDomain() *domain.Employee {
	return &domain.Employee{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
	}
}

// CreateEmployee handles POST /api/v1/employees
func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	employee := req.ToDomain()
	if err := h.service.AddEmployee(r.Context(), employee); err != nil {
		h.respondServiceError(w, r, err, "add employee")
		return
	}

	h.respondJSON(w, http.StatusCreated, employee)
}

// ListEmployees handles GET /api/v1/employees
func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.ListEmployees(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list employees")
		return
	}

	h.respondJSON(w, http.StatusOK, employees)
}
