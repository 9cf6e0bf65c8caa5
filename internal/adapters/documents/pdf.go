// internal/adapters/documents/pdf.go
package documents

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/ammerola/frontdesk-be/internal/core/domain"
)

// receiptLineRe matches "<item name> <qty>" and "<item name> x<qty>"
var receiptLineRe = regexp.MustCompile(`^(.+?)\s+[xX]?(\d+)$`)

// ReadReceiptsPDF extracts stock receipt lines from every page of the PDF at path
func ReadReceiptsPDF(path string) ([]domain.StockReceipt, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageNum := 1; pageNum <= r.NumPage(); pageNum++ {
		page := r.Page(pageNum)
		if page.V.IsNull() {
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to extract text from page %d: %w", pageNum, err)
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}

	return ParseReceiptLines(lines), nil
}

// ParseReceiptLines keeps the lines that end in a quantity and ignores the rest
func ParseReceiptLines(lines []string) []domain.StockReceipt {
	receipts := make([]domain.StockReceipt, 0)

	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}

		m := receiptLineRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}

		qty, err := strconv.Atoi(m[2])
		if err != nil {
			continue
		}

		receipts = append(receipts, domain.StockReceipt{
			ItemName: strings.TrimSpace(m[1]),
			Quantity: qty,
		})
	}

	return receipts
}
