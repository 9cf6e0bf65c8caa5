// internal/handlers/sales.go
package handlers

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/ammerola/frontdesk-be/internal/core/ports"
)

// SaleHandler handles counter sales
type SaleHandler struct {
	responder
	service ports.SaleService
}

// NewSaleHandler creates a new sale handler
func NewSaleHandler(service ports.SaleService, logger *slog.Logger) *SaleHandler {
	return &SaleHandler{
		responder: newResponder(logger, "sale"),
		service:   service,
	}
}

// AmountInput accepts the sale amount as a JSON string or number and keeps
// the text exactly as typed
type AmountInput string

// UnmarshalJSON implements json.Unmarshaler
func (a *AmountInput) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*a = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = AmountInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*a = AmountInput(n.String())
	return nil
}

// RecordSaleRequest is the sale form
type RecordSaleRequest struct {
	ProductName string      `json:"product_name"`
	Amount      AmountInput `json:"amount"`
	EmployeeID  *int64      `json:"employee_id,omitempty"`
}

// RecordSale handles POST /api/v1/sales
func (h *SaleHandler) RecordSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecordSaleRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	result, err := h.service.RecordSale(ctx, req.ProductName, string(req.Amount), req.EmployeeID)
	if err != nil {
		h.respondServiceError(w, r, err, "record sale")
		return
	}

	if result.Warning != "" {
		h.logger.WarnContext(ctx, "sale recorded without inventory",
			slog.String("product", req.ProductName))
	}

	h.respondJSON(w, http.StatusCreated, result)
}

// ListSales handles GET /api/v1/sales
func (h *SaleHandler) ListSales(w http.ResponseWriter, r *http.Request) {
	sales, err := h.service.ListSales(r.Context())
	if err != nil {
		h.respondServiceError(w, r, err, "list sales")
		return
	}

	h.respondJSON(w, http.StatusOK, sales)
}
