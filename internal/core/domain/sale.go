// internal/core/domain/sale.go
package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Sale represents a product sold over the counter
type Sale struct {
	ID          int64           `json:"id"`
	EmployeeID  int64           `json:"employee_id"`
	ProductName string          `json:"product_name"`
	SaleDate    time.Time       `json:"sale_date"`
	Amount      decimal.Decimal `json:"amount"`
}

// Validate performs domain validation on the sale
func (s *Sale) Validate() error {
	if s.ProductName == "" {
		return NewInputError(MsgSaleFieldsRequired)
	}
	if !validAmount(s.Amount) {
		return NewInputError(MsgInvalidAmount)
	}
	if s.EmployeeID <= 0 {
		s.EmployeeID = DefaultEmployeeID
	}
	return nil
}

// MaxSaleAmount is the first amount the sales table cannot hold (NUMERIC(12,2))
var MaxSaleAmount = decimal.New(1, 10)

// maxAmountLength bounds the text parsed as an amount
const maxAmountLength = 24

// ParseSaleAmount converts the amount typed at the desk into a decimal.
// Exponent notation is rejected and the result is rounded to cents.
func ParseSaleAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, NewInputError(MsgSaleFieldsRequired)
	}
	if len(raw) > maxAmountLength || strings.ContainsAny(raw, "eE") {
		return decimal.Zero, NewInputError(MsgInvalidAmount)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, NewInputError(MsgInvalidAmount)
	}

	amount = amount.Round(2)
	if !validAmount(amount) {
		return decimal.Zero, NewInputError(MsgInvalidAmount)
	}
	return amount, nil
}

func validAmount(amount decimal.Decimal) bool {
	return amount.IsPositive() && amount.LessThan(MaxSaleAmount)
}

// SaleResult is the outcome of recording a sale
type SaleResult struct {
	Sale      *Sale          `json:"sale"`
	Inventory *InventoryItem `json:"inventory,omitempty"`
	Warning   string         `json:"warning,omitempty"`
}

// InventoryMismatchWarning is reported when a sale has no stock row to book against
func InventoryMismatchWarning(product string) string {
	return fmt.Sprintf("No inventory found for %s.", product)
}
