// internal/handlers/devices.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// DeviceHandler handles device registration, status changes and loans
type DeviceHandler struct {
	responder
	devices    ports.DeviceService
	borrowings ports.BorrowingService
}

// NewDeviceHandler creates a new device handler
func NewDeviceHandler(devices ports.DeviceService, borrowings ports.BorrowingService, logger *slog.Logger) *DeviceHandler {
	return &DeviceHandler{
		responder:  newResponder(logger, "device"),
		devices:    devices,
		borrowings: borrowings,
	}
}

// CreateDeviceRequest is the device form
type CreateDeviceRequest struct {
	Name  string `json:"name"`
	Model string `json:"model"`
}

// UpdateDeviceStatusRequest names a device and its new status
type UpdateDeviceStatusRequest struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// CreateBorrowingRequest is the borrowing form
type CreateBorrowingRequest struct {
	CustomerName string `json:"customer_name"`
	DeviceName   string `json:"device_name"`
	EmployeeID   *int64 `json:"employee_id,omitempty"`
}

// CreateDevice handles POST /api/v1/devices
func (h *DeviceHandler) CreateDevice(w http.ResponseWriter, r *http.Request) {
	var req CreateDeviceRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	device, err := h.devices.AddDevice(r.Context(), req.Name, req.Model)
	if err != nil {
		h.respondServiceError(w, r, err, "add device")
		return
	}

	h.respondJSON(w, http.StatusCreated, device)
}

// UpdateDeviceStatus handles PUT /api/v1/devices/status
func (h *DeviceHandler) UpdateDeviceStatus(w http.ResponseWriter, r *http.Request) {
	var req UpdateDeviceStatusRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	device, err := h.devices.UpdateDeviceStatus(r.Context(), req.Name, req.Status)
	if err != nil {
		h.respondServiceError(w, r, err, "update device status")
		return
	}

	h.respondJSON(w, http.StatusOK, device)
}

// ListDevices handles GET /api/v1/devices
func (h *DeviceHandler) ListDevices(w http.ResponseWriter, r *http.Request) {
	devices, err := h.devices.ListDevices(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list devices")
		return
	}

	h.respondJSON(w, http.StatusOK, devices)
}

// CreateBorrowing handles POST /api/v1/borrowings
func (h *DeviceHandler) CreateBorrowing(w http.ResponseWriter, r *http.Request) {
	var req CreateBorrowingRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	borrowing, err := h.borrowings.AddBorrowing(r.Context(), req.CustomerName, req.DeviceName, req.EmployeeID)
	if err != nil {
		h.respondServiceError(w, r, err, "add borrowing")
		return
	}

	h.respondJSON(w, http.StatusCreated, borrowing)
}

// ReturnBorrowing handles POST /api/v1/borrowings/{id}/return
func (h *DeviceHandler) ReturnBorrowing(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "Invalid borrowing ID")
		return
	}

	borrowing, err := h.borrowings.ReturnBorrowing(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, r, err, "return borrowing")
		return
	}

	h.respondJSON(w, http.StatusOK, borrowing)
}

// ListBorrowings handles GET /api/v1/borrowings
func (h *DeviceHandler) ListBorrowings(w http.ResponseWriter, r *http.Request) {
	borrowings, err := h.borrowings.ListBorrowings(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list borrowings")
		return
	}

	h.respondJSON(w, http.StatusOK, borrowings)
}
