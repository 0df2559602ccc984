package normalize

import (
	"fmt"
	"strings"
)

// quickColumns is the fixed field order of the quick import format:
// supplier, order date (DD/MM/YYYY), amount, receipt date, payment date.
// Trailing fields are optional.
var quickColumns = []string{
	ColSupplier,
	ColOrderDate,
	ColOrderAmount,
	ColReceiptDate,
	ColPaymentDate,
}

// ParseQuickLines parses pasted comma-separated lines in the quick import
// format into rows. Lines with fewer than three fields are rejected; blank
// lines are skipped without counting as rejections.
func ParseQuickLines(text string) ([]Row, []Rejection) {
	var (
		rows       []Row
		rejections []Rejection
	)

	for i, raw := range strings.Split(strings.TrimSpace(text), "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		parts := strings.Split(line, ",")
		if len(parts) < 3 {
			rejections = append(rejections, Rejection{
				Line:   i + 1,
				Reason: fmt.Sprintf("expected at least 3 fields, got %d", len(parts)),
			})
			continue
		}

		row := Row{}
		for j, col := range quickColumns {
			if j >= len(parts) {
				break
			}
			if v := strings.TrimSpace(parts[j]); v != "" {
				row[col] = v
			}
		}
		rows = append(rows, row)
	}

	return rows, rejections
}
