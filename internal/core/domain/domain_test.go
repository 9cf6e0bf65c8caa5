package domain_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

func TestCustomer_Validate(t *testing.T) {
	tests := []struct {
		name      string
		customer  *domain.Customer
		wantError bool
	}{
		{
			name:     "valid_customer",
			customer: &domain.Customer{Name: "Alice", ContactInfo: "555-1234"},
		},
		{
			name:     "whitespace_values_are_kept_as_given",
			customer: &domain.Customer{Name: " ", ContactInfo: " "},
		},
		{
			name:      "missing_name",
			customer:  &domain.Customer{ContactInfo: "555-1234"},
			wantError: true,
		},
		{
			name:      "missing_contact",
			customer:  &domain.Customer{Name: "Alice"},
			wantError: true,
		},
		{
			name:      "missing_both",
			customer:  &domain.Customer{},
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.customer.Validate()

			if tt.wantError {
				require.Error(t, err)
				assert.True(t, domain.IsInputError(err))
				assert.Equal(t, domain.MsgCustomerFieldsRequired, err.Error())
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDevice_Validate(t *testing.T) {
	t.Run("defaults_status_to_available", func(t *testing.T) {
		device := &domain.Device{Name: "Pod1", Model: "ModelX"}

		require.NoError(t, device.Validate())
		assert.Equal(t, domain.DeviceAvailable, device.Status)
		assert.True(t, device.IsAvailable())
	})

	t.Run("rejects_missing_model", func(t *testing.T) {
		device := &domain.Device{Name: "Pod1"}

		err := device.Validate()
		require.Error(t, err)
		assert.True(t, domain.IsInputError(err))
		assert.Equal(t, domain.MsgDeviceFieldsRequired, err.Error())
	})

	t.Run("rejects_unknown_status", func(t *testing.T) {
		device := &domain.Device{Name: "Pod1", Model: "ModelX", Status: "lost"}

		err := device.Validate()
		require.Error(t, err)
		assert.Equal(t, domain.MsgInvalidDeviceStatus, err.Error())
	})
}

func TestParseDeviceStatus(t *testing.T) {
	tests := []struct {
		input     string
		expected  domain.DeviceStatus
		wantError bool
	}{
		{input: "available", expected: domain.DeviceAvailable},
		{input: "Borrowed", expected: domain.DeviceBorrowed},
		{input: " maintenance ", expected: domain.DeviceMaintenance},
		{input: "retired", expected: domain.DeviceRetired},
		{input: "", wantError: true},
		{input: "sold", wantError: true},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("input_%q", tt.input), func(t *testing.T) {
			status, err := domain.ParseDeviceStatus(tt.input)

			if tt.wantError {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestParseSaleAmount(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected string
		errorMsg string
	}{
		{name: "integer", raw: "25", expected: "25"},
		{name: "decimal", raw: "19.99", expected: "19.99"},
		{name: "rounds_to_cents", raw: "10.005", expected: "10.01"},
		{name: "surrounding_space", raw: " 7.5 ", expected: "7.5"},
		{name: "empty", raw: "", errorMsg: domain.MsgSaleFieldsRequired},
		{name: "not_a_number", raw: "abc", errorMsg: domain.MsgInvalidAmount},
		{name: "zero", raw: "0", errorMsg: domain.MsgInvalidAmount},
		{name: "negative", raw: "-5", errorMsg: domain.MsgInvalidAmount},
		{name: "largest_storable", raw: "9999999999.99", expected: "9999999999.99"},
		{name: "beyond_column_range", raw: "99999999999", errorMsg: domain.MsgInvalidAmount},
		{name: "rounds_past_column_range", raw: "9999999999.999", errorMsg: domain.MsgInvalidAmount},
		{name: "exponent", raw: "1e12", errorMsg: domain.MsgInvalidAmount},
		{name: "huge_exponent", raw: "1E1000000", errorMsg: domain.MsgInvalidAmount},
		{name: "too_long", raw: "1." + strings.Repeat("0", 40), errorMsg: domain.MsgInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, err := domain.ParseSaleAmount(tt.raw)

			if tt.errorMsg != "" {
				require.Error(t, err)
				assert.True(t, domain.IsInputError(err))
				assert.Equal(t, tt.errorMsg, err.Error())
				return
			}
			require.NoError(t, err)
			assert.True(t, decimal.RequireFromString(tt.expected).Equal(amount),
				"Expected: %s, Got: %s", tt.expected, amount)
		})
	}
}

func TestSale_Validate(t *testing.T) {
	t.Run("defaults_employee", func(t *testing.T) {
		sale := &domain.Sale{ProductName: "Pod1", Amount: decimal.NewFromInt(10)}

		require.NoError(t, sale.Validate())
		assert.Equal(t, domain.DefaultEmployeeID, sale.EmployeeID)
	})

	t.Run("rejects_zero_amount", func(t *testing.T) {
		sale := &domain.Sale{ProductName: "Pod1", Amount: decimal.Zero}

		assert.ErrorIs(t, sale.Validate(), domain.ErrInvalidInput)
	})

	t.Run("rejects_amount_beyond_column_range", func(t *testing.T) {
		sale := &domain.Sale{ProductName: "Pod1", Amount: domain.MaxSaleAmount}

		assert.ErrorIs(t, sale.Validate(), domain.ErrInvalidInput)
	})
}

func TestInventoryItem_Counters(t *testing.T) {
	item := &domain.InventoryItem{QuantityIn: 10, QuantityOut: 3, CurrentStock: 7}

	assert.True(t, item.IsBalanced())
	assert.False(t, item.IsLow(2))
	assert.True(t, item.IsLow(7))

	item.CurrentStock = 8
	assert.False(t, item.IsBalanced())
}

func TestStockReceipt_Validate(t *testing.T) {
	tests := []struct {
		name     string
		receipt  domain.StockReceipt
		errorMsg string
	}{
		{name: "valid", receipt: domain.StockReceipt{ItemName: "Pod1", Quantity: 1}},
		{name: "largest_quantity", receipt: domain.StockReceipt{ItemName: "Pod1", Quantity: domain.MaxReceiptQuantity}},
		{name: "missing_quantity", receipt: domain.StockReceipt{ItemName: "Pod1"}, errorMsg: domain.MsgReceiptFieldsRequired},
		{name: "missing_name", receipt: domain.StockReceipt{Quantity: 4}, errorMsg: domain.MsgReceiptFieldsRequired},
		{name: "quantity_overflows_counter", receipt: domain.StockReceipt{ItemName: "Pod1", Quantity: 3000000000}, errorMsg: domain.MsgQuantityTooLarge},
		{name: "header_break_in_name", receipt: domain.StockReceipt{ItemName: "Pods\r\nBcc: someone@example.com", Quantity: 1}, errorMsg: domain.MsgInvalidItemName},
		{name: "tab_in_name", receipt: domain.StockReceipt{ItemName: "Pod\t1", Quantity: 1}, errorMsg: domain.MsgInvalidItemName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.receipt.Validate()

			if tt.errorMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tt.errorMsg, err.Error())
		})
	}
}

func TestDeskError_Categories(t *testing.T) {
	inputErr := domain.NewInputError("bad")
	notFoundErr := domain.NewNotFoundError("missing")
	wrapped := fmt.Errorf("failed to add: %w", notFoundErr)

	assert.True(t, domain.IsInputError(inputErr))
	assert.False(t, domain.IsNotFound(inputErr))
	assert.True(t, domain.IsNotFound(wrapped))
	assert.Equal(t, "missing", notFoundErr.Error())

	var deskErr *domain.DeskError
	assert.True(t, errors.As(wrapped, &deskErr))
}

func TestToday(t *testing.T) {
	loc := time.FixedZone("UTC+9", 9*3600)
	in := time.Date(2025, 3, 2, 1, 30, 0, 0, loc)

	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), domain.Today(in))
}

func BenchmarkParseSaleAmount(b *testing.B) {
	for i := 0; i < b.N; i++ {
		_, _ = domain.ParseSaleAmount("129.95")
	}
}
