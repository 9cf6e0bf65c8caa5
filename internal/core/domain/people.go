// internal/core/domain/people.go
package domain

import "time"

// DefaultEmployeeID is the counter employee sales fall back to
const DefaultEmployeeID int64 = 1

// Employee represents a desk staff member
type Employee struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	Position   string    `json:"position"`
	Department string    `json:"department"`
	CreatedAt  time.Time `json:"created_at"`
}

// Validate performs domain validation on the employee
func (e *Employee) Validate() error {
	if e.Name == "" {
		return NewInputError(MsgEmployeeNameRequired)
	}
	return nil
}

// Customer represents a registered customer
type Customer struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	ContactInfo string    `json:"contact_info"`
	CreatedAt   time.Time `json:"created_at"`
}

// Validate rejects a customer without name or contact
func (c *Customer) Validate() error {
	if c.Name == "" || c.ContactInfo == "" {
		return NewInputError(MsgCustomerFieldsRequired)
	}
	return nil
}
