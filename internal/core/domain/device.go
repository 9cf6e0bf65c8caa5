// internal/core/domain/device.go
package domain

import (
	"strings"
	"time"
)

// DeviceStatus represents device availability
type DeviceStatus string

// Device status constants
const (
	DeviceAvailable   DeviceStatus = "available"
	DeviceBorrowed    DeviceStatus = "borrowed"
	DeviceMaintenance DeviceStatus = "maintenance"
	DeviceRetired     DeviceStatus = "retired"
)

// DeviceStatuses lists every accepted status in display order
var DeviceStatuses = []DeviceStatus{
	DeviceAvailable,
	DeviceBorrowed,
	DeviceMaintenance,
	DeviceRetired,
}

// ParseDeviceStatus converts free text into a DeviceStatus
func ParseDeviceStatus(s string) (DeviceStatus, error) {
	candidate := DeviceStatus(strings.ToLower(strings.TrimSpace(s)))
	if candidate.IsValid() {
		return candidate, nil
	}
	return "", NewInputError(MsgInvalidDeviceStatus)
}

// IsValid reports whether the status is one of the known values
func (s DeviceStatus) IsValid() bool {
	for _, known := range DeviceStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s DeviceStatus) String() string {
	return string(s)
}

// Device represents a lendable or sellable device
type Device struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Model     string       `json:"model"`
	Status    DeviceStatus `json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// Validate performs domain validation on the device
func (d *Device) Validate() error {
	if d.Name == "" || d.Model == "" {
		return NewInputError(MsgDeviceFieldsRequired)
	}
	if d.Status == "" {
		d.Status = DeviceAvailable
	}
	if !d.Status.IsValid() {
		return NewInputError(MsgInvalidDeviceStatus)
	}
	return nil
}

// IsAvailable reports whether the device can be lent or sold
func (d *Device) IsAvailable() bool {
	return d.Status == DeviceAvailable
}
