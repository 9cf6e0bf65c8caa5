// internal/adapters/documents/xlsx.go
package documents

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/tealeg/xlsx/v3"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

const columnWidth = 18

// EncodeTable renders the table as a single-sheet workbook with a bold header row
func EncodeTable(table *domain.ReportTable) ([]byte, error) {
	file := xlsx.NewFile()

	sheet, err := file.AddSheet(sheetName(table.Kind))
	if err != nil {
		return nil, fmt.Errorf("failed to add worksheet: %w", err)
	}

	header := sheet.AddRow()
	for _, title := range table.Headers {
		cell := header.AddCell()
		cell.SetString(title)
		style := cell.GetStyle()
		style.Font.Bold = true
		style.Fill.PatternType = "solid"
		style.Fill.FgColor = "FFCCCCCC"
	}

	for _, values := range table.Rows {
		row := sheet.AddRow()
		for _, value := range values {
			row.AddCell().SetString(value)
		}
	}

	if len(table.Headers) > 0 {
		sheet.SetColWidth(1, len(table.Headers), columnWidth)
	}

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadReceiptsXLSX reads item_name, quantity rows from the first sheet of
// the workbook at path. A leading header row and blank rows are skipped.
func ReadReceiptsXLSX(path string) ([]domain.StockReceipt, error) {
	file, err := xlsx.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	if len(file.Sheets) == 0 {
		return []domain.StockReceipt{}, nil
	}

	receipts := make([]domain.StockReceipt, 0)
	rowNum := 0

	err = file.Sheets[0].ForEachRow(func(r *xlsx.Row) error {
		rowNum++

		name := cellText(r, 0)
		rawQty := cellText(r, 1)
		if name == "" && rawQty == "" {
			return nil
		}

		qty, err := strconv.Atoi(rawQty)
		if err != nil {
			if rowNum == 1 {
				return nil
			}
			return fmt.Errorf("row %d: invalid quantity %q", rowNum, rawQty)
		}

		receipts = append(receipts, domain.StockReceipt{ItemName: name, Quantity: qty})
		return nil
	})
	if err != nil {
		return nil, err
	}

	return receipts, nil
}

func cellText(r *xlsx.Row, i int) string {
	c := r.GetCell(i)
	if c == nil {
		return ""
	}
	return strings.TrimSpace(c.String())
}

func sheetName(kind domain.ReportKind) string {
	if kind == "" {
		return "Report"
	}
	s := string(kind)
	return strings.ToUpper(s[:1]) + s[1:]
}
