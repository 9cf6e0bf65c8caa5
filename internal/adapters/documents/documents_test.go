// internal/adapters/documents/documents_test.go
package documents_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/frontdesk-be/internal/adapters/documents"
	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

func writeWorkbook(t *testing.T, table *domain.ReportTable) string {
	t.Helper()

	data, err := documents.EncodeTable(table)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "receipts.xlsx")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

func TestEncodeTable(t *testing.T) {
	table := &domain.ReportTable{
		Kind:    domain.ReportDevices,
		Headers: []string{"ID", "Name"},
		Rows:    [][]string{{"1", "Pod1"}, {"2", "Pod2"}},
	}

	data, err := documents.EncodeTable(table)
	require.NoError(t, err)

	file, err := xlsx.OpenBinary(data)
	require.NoError(t, err)
	require.Len(t, file.Sheets, 1)

	sheet := file.Sheets[0]
	assert.Equal(t, "Devices", sheet.Name)

	cell, err := sheet.Cell(0, 1)
	require.NoError(t, err)
	assert.Equal(t, "Name", cell.String())

	cell, err = sheet.Cell(2, 1)
	require.NoError(t, err)
	assert.Equal(t, "Pod2", cell.String())
}

func TestEncodeTable_HeadersOnly(t *testing.T) {
	data, err := documents.EncodeTable(&domain.ReportTable{
		Kind:    domain.ReportSales,
		Headers: []string{"ID"},
		Rows:    [][]string{},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}

func TestReadReceiptsXLSX(t *testing.T) {
	path := writeWorkbook(t, &domain.ReportTable{
		Kind:    domain.ReportInventory,
		Headers: []string{"item_name", "quantity"},
		Rows: [][]string{
			{"Pod1", "5"},
			{"", ""},
			{" Charger ", "12"},
		},
	})

	receipts, err := documents.ReadReceiptsXLSX(path)
	require.NoError(t, err)

	assert.Equal(t, []domain.StockReceipt{
		{ItemName: "Pod1", Quantity: 5},
		{ItemName: "Charger", Quantity: 12},
	}, receipts)
}

func TestReadReceiptsXLSX_InvalidQuantity(t *testing.T) {
	path := writeWorkbook(t, &domain.ReportTable{
		Kind:    domain.ReportInventory,
		Headers: []string{"item_name", "quantity"},
		Rows:    [][]string{{"Pod1", "five"}},
	})

	_, err := documents.ReadReceiptsXLSX(path)
	assert.EqualError(t, err, `row 2: invalid quantity "five"`)
}

func TestReadReceiptsXLSX_MissingFile(t *testing.T) {
	_, err := documents.ReadReceiptsXLSX(filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorContains(t, err, "failed to open workbook")
}

func TestParseReceiptLines(t *testing.T) {
	lines := []string{
		"Stock delivery 2024-03-01",
		"Pod1 5",
		"Travel Charger   x12",
		"  Pod2 X3  ",
		"",
		"Signed by the courier",
		"Case 0",
	}

	assert.Equal(t, []domain.StockReceipt{
		{ItemName: "Pod1", Quantity: 5},
		{ItemName: "Travel Charger", Quantity: 12},
		{ItemName: "Pod2", Quantity: 3},
		{ItemName: "Case", Quantity: 0},
	}, documents.ParseReceiptLines(lines))
}

func TestParseReceiptLines_NoMatches(t *testing.T) {
	receipts := documents.ParseReceiptLines([]string{"nothing here"})
	assert.NotNil(t, receipts)
	assert.Empty(t, receipts)
}

func TestReadReceiptsPDF_NotAPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "receipt.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

	_, err := documents.ReadReceiptsPDF(path)
	assert.ErrorContains(t, err, "failed to open PDF")
}
