// test/benchmarks/helpers.go
package benchmarks

import (
	"fmt"
	"strconv"
	"time"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

var itemNames = []string{
	"USB-C Cable",
	"Wireless Mouse",
	"Laptop Charger 65W",
	"HDMI Adapter",
	"Noise Cancelling Headset",
	"Projector Lamp",
	"Ethernet Cable 5m",
	"Keyboard",
}

// createReceiptLines simulates text pulled from a delivery note
func createReceiptLines(numItems int) []string {
	lines := make([]string, 0, numItems+3)
	lines = append(lines, "DELIVERY NOTE 4711", "Supplier: Example Distribution", "")

	for i := 0; i < numItems; i++ {
		name := itemNames[i%len(itemNames)]
		if i%2 == 0 {
			lines = append(lines, fmt.Sprintf("%s   x%d", name, i%20+1))
		} else {
			lines = append(lines, fmt.Sprintf("%s %d", name, i%20+1))
		}
	}
	return lines
}

// createInventoryTable builds an inventory listing with numRows rows
func createInventoryTable(numRows int) *domain.ReportTable {
	table := &domain.ReportTable{
		Kind:    domain.ReportInventory,
		Headers: []string{"ID", "Item Name", "Quantity In", "Quantity Out", "Current Stock", "Updated At"},
		Rows:    make([][]string, 0, numRows),
	}

	updated := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC).Format("2006-01-02 15:04:05")
	for i := 0; i < numRows; i++ {
		in, out := 10+i%50, i%10
		table.Rows = append(table.Rows, []string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%s #%d", itemNames[i%len(itemNames)], i),
			strconv.Itoa(in),
			strconv.Itoa(out),
			strconv.Itoa(in - out),
			updated,
		})
	}
	return table
}
