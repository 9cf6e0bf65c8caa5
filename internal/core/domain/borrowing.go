// internal/core/domain/borrowing.go
package domain

import "time"

// Borrowing represents a device loan to a customer
type Borrowing struct {
	ID         int64      `json:"id"`
	CustomerID int64      `json:"customer_id"`
	EmployeeID *int64     `json:"employee_id,omitempty"`
	DeviceID   int64      `json:"device_id"`
	BorrowDate time.Time  `json:"borrow_date"`
	ReturnDate *time.Time `json:"return_date,omitempty"`
}

// IsOpen reports whether the device has not been returned yet
func (b *Borrowing) IsOpen() bool {
	return b.ReturnDate == nil
}

// BorrowingView is a borrowing joined with the names shown at the desk
type BorrowingView struct {
	Borrowing
	CustomerName string `json:"customer_name"`
	DeviceName   string `json:"device_name"`
}

// Today truncates t to the calendar date in UTC
func Today(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
