// internal/core/domain/inventory.go
package domain

import (
	"math"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
)

// InventoryItem holds the stock counters for one product name
type InventoryItem struct {
	ID           int64     `json:"id"`
	ItemName     string    `json:"item_name"`
	QuantityIn   int       `json:"quantity_in"`
	QuantityOut  int       `json:"quantity_out"`
	CurrentStock int       `json:"current_stock"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsBalanced reports whether current stock matches the in and out counters
func (i *InventoryItem) IsBalanced() bool {
	return i.CurrentStock == i.QuantityIn-i.QuantityOut
}

// IsLow reports whether stock is at or below threshold
func (i *InventoryItem) IsLow(threshold int) bool {
	return i.CurrentStock <= threshold
}

// StockReceipt is a quantity of an item taken into stock
type StockReceipt struct {
	ItemName string `json:"item_name"`
	Quantity int    `json:"quantity"`
}

// MaxReceiptQuantity is the largest quantity a stock counter column holds
const MaxReceiptQuantity = math.MaxInt32

// Validate performs domain validation on the receipt. Item names end up in
// alert mail subjects, so control characters are refused.
func (r *StockReceipt) Validate() error {
	if r.ItemName == "" || r.Quantity <= 0 {
		return NewInputError(MsgReceiptFieldsRequired)
	}
	if r.Quantity > MaxReceiptQuantity {
		return NewInputError(MsgQuantityTooLarge)
	}
	if strings.IndexFunc(r.ItemName, unicode.IsControl) >= 0 {
		return NewInputError(MsgInvalidItemName)
	}
	return nil
}

// DashboardSummary aggregates desk figures
type DashboardSummary struct {
	Customers       int64                  `json:"customers"`
	Employees       int64                  `json:"employees"`
	DevicesByStatus map[DeviceStatus]int64 `json:"devices_by_status"`
	OpenBorrowings  int64                  `json:"open_borrowings"`
	SalesCount      int64                  `json:"sales_count"`
	SalesTotal      decimal.Decimal        `json:"sales_total"`
	LowStockItems   int64                  `json:"low_stock_items"`
	GeneratedAt     time.Time              `json:"generated_at"`
}
