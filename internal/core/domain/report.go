// internal/core/domain/report.go
package domain

import (
	"fmt"
	"time"
)

// ReportContentType is the media type of exported listings
const ReportContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportKind names a listing that can be exported
type ReportKind string

// Report kinds
const (
	ReportCustomers  ReportKind = "customers"
	ReportDevices    ReportKind = "devices"
	ReportBorrowings ReportKind = "borrowings"
	ReportSales      ReportKind = "sales"
	ReportInventory  ReportKind = "inventory"
)

// ReportKinds lists every exportable listing
var ReportKinds = []ReportKind{
	ReportCustomers,
	ReportDevices,
	ReportBorrowings,
	ReportSales,
	ReportInventory,
}

// ParseReportKind validates a report kind taken from a request
func ParseReportKind(s string) (ReportKind, error) {
	for _, kind := range ReportKinds {
		if string(kind) == s {
			return kind, nil
		}
	}
	return "", NewInputError("Unknown report kind: " + s)
}

// ReportTable is a listing flattened into rows of display strings
type ReportTable struct {
	Kind    ReportKind `json:"kind"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

// FileName returns the download name for the table at the given instant
func (t *ReportTable) FileName(at time.Time) string {
	return fmt.Sprintf("%s_%s.xlsx", t.Kind, at.UTC().Format("20060102_150405"))
}
