// internal/core/domain/errors.go
package domain

import "errors"

// Error categories surfaced to the desk user
var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")

	// ErrDeviceUnavailable is returned by the store when a conditional
	// status change found the device already taken
	ErrDeviceUnavailable = errors.New("device is no longer available")
)

// User-facing messages
const (
	MsgCustomerFieldsRequired = "Both Name and Contact are required!"
	MsgDeviceFieldsRequired   = "Please fill out all fields."
	MsgInvalidCustomerDevice  = "Invalid customer or device."
	MsgDeviceNotFound         = "Device not found!"
	MsgInvalidDeviceStatus    = "Invalid device status."
	MsgSaleFieldsRequired     = "Please provide valid device and amount."
	MsgInvalidAmount          = "Amount must be a positive number."
	MsgEmployeeNameRequired   = "Employee name is required."
	MsgBorrowingNotOpen       = "Borrowing not found or already returned."
	MsgReceiptFieldsRequired  = "Item name and a positive quantity are required."
	MsgUnknownEmployee        = "Unknown employee."
	MsgQuantityTooLarge       = "Quantity is too large."
	MsgInvalidItemName        = "Item name contains invalid characters."
)

// DeskError carries a user-facing message and the category it belongs to
type DeskError struct {
	kind    error
	message string
}

func (e *DeskError) Error() string {
	return e.message
}

func (e *DeskError) Unwrap() error {
	return e.kind
}

// NewInputError reports a missing or invalid required field
func NewInputError(message string) error {
	return &DeskError{kind: ErrInvalidInput, message: message}
}

// NewNotFoundError reports an absent referenced row
func NewNotFoundError(message string) error {
	return &DeskError{kind: ErrNotFound, message: message}
}

// IsInputError reports whether err belongs to the input category
func IsInputError(err error) bool {
	return errors.Is(err, ErrInvalidInput)
}

// IsNotFound reports whether err belongs to the not-found category
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
