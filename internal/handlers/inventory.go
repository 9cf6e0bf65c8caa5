// internal/handlers/inventory.go
package handlers

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// InventoryHandler handles stock receipts, listings and the dashboard
type InventoryHandler struct {
	responder
	inventory         ports.InventoryService
	dashboard         ports.DashboardService
	lowStockThreshold int
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(inventory ports.InventoryService, dashboard ports.DashboardService, lowStockThreshold int, logger *slog.Logger) *InventoryHandler {
	return &InventoryHandler{
		responder:         newResponder(logger, "inventory"),
		inventory:         inventory,
		dashboard:         dashboard,
		lowStockThreshold: lowStockThreshold,
	}
}

// ReceiveStock handles POST /api/v1/inventory/receipts
func (h *InventoryHandler) ReceiveStock(w http.ResponseWriter, r *http.Request) {
	var receipt domain.StockReceipt
	if !h.decodeJSON(w, r, &receipt) {
		return
	}

	item, err := h.inventory.ReceiveStock(r.Context(), receipt)
	if err != nil {
		h.respondServiceError(w, r, err, "receive stock")
		return
	}

	h.respondJSON(w, http.StatusCreated, item)
}

// ListInventory handles GET /api/v1/inventory
func (h *InventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) {
	items, err := h.inventory.ListInventory(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list inventory")
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// LowStock handles GET /api/v1/inventory/low-stock?threshold=n
func (h *InventoryHandler) LowStock(w http.ResponseWriter, r *http.Request) {
	threshold := h.lowStockThreshold
	if raw := r.URL.Query().Get("threshold"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			h.respondError(w, http.StatusBadRequest, "Invalid threshold")
			return
		}
		threshold = n
	}

	items, err := h.inventory.LowStock(r.Context(), threshold)
	if err != nil {
		h.respondServiceError(w, r, err, "list low stock")
		return
	}

	h.respondJSON(w, http.StatusOK, items)
}

// GetDashboard handles GET /api/v1/dashboard
func (h *InventoryHandler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	summary, err := h.dashboard.Summary(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "load dashboard")
		return
	}

	w.Header().Set("Cache-Control", "no-cache")
	h.respondJSON(w, http.StatusOK, summary)
}
