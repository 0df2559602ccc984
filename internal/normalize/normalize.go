// Package normalize coerces loosely-typed tabular rows (spreadsheet or CSV
// input) into payment records carrying base fields only. Malformed values
// never abort a batch: a row that cannot produce a valid record becomes a
// Rejection the caller can report, and an unparseable optional date is
// simply absent.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// Canonical column names, matching the legacy workbook layout.
const (
	ColSupplier    = "Nom du fournisseur"
	ColOrderDate   = "Date de commande"
	ColOrderAmount = "Montant de la commande"
	ColReceiptDate = "Date de réception"
	ColPaymentDate = "Date de paiement"
)

// headerAliases maps accepted header spellings to canonical columns.
var headerAliases = map[string]string{
	"nom du fournisseur":     ColSupplier,
	"supplier_name":          ColSupplier,
	"date de commande":       ColOrderDate,
	"order_date":             ColOrderDate,
	"montant de la commande": ColOrderAmount,
	"order_amount":           ColOrderAmount,
	"amount":                 ColOrderAmount,
	"date de réception":      ColReceiptDate,
	"receipt_date":           ColReceiptDate,
	"date de paiement":       ColPaymentDate,
	"payment_date":           ColPaymentDate,
}

// Row is one loosely-typed input row keyed by canonical column name.
type Row map[string]any

// Rejection reports a row that could not produce a valid record. Line is
// the 1-based position in the input sequence.
type Rejection struct {
	Line   int
	Reason string
}

func (r Rejection) String() string {
	return fmt.Sprintf("line %d: %s", r.Line, r.Reason)
}

// Normalize converts rows into records with base fields only. Rows missing
// a supplier name, a parseable order date or a valid non-negative amount
// are rejected individually; optional dates that fail to parse are treated
// as absent.
func Normalize(rows []Row) ([]domain.PaymentRecord, []Rejection) {
	records := make([]domain.PaymentRecord, 0, len(rows))
	var rejections []Rejection

	for i, row := range rows {
		line := i + 1

		supplier := strings.TrimSpace(cast.ToString(row[ColSupplier]))
		if supplier == "" {
			rejections = append(rejections, Rejection{Line: line, Reason: "missing supplier name"})
			continue
		}

		orderDate := ParseDate(row[ColOrderDate])
		if orderDate == nil {
			rejections = append(rejections, Rejection{Line: line, Reason: "missing or unparseable order date"})
			continue
		}

		amount, err := ParseAmount(row[ColOrderAmount])
		if err != nil {
			rejections = append(rejections, Rejection{Line: line, Reason: fmt.Sprintf("invalid order amount: %v", err)})
			continue
		}

		records = append(records, domain.PaymentRecord{
			SupplierName: supplier,
			OrderDate:    *orderDate,
			OrderAmount:  amount,
			ReceiptDate:  ParseDate(row[ColReceiptDate]),
			PaymentDate:  ParseDate(row[ColPaymentDate]),
		})
	}

	return records, rejections
}

// dateLayouts are tried in order when parsing a date string.
var dateLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04",
	time.RFC3339,
}

// ParseDate coerces a cell value into a calendar date. Empty, nil and
// unparseable values all yield nil (absent).
func ParseDate(v any) *time.Time {
	switch t := v.(type) {
	case nil:
		return nil
	case time.Time:
		if t.IsZero() {
			return nil
		}
		d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
		return &d
	case *time.Time:
		if t == nil {
			return nil
		}
		return ParseDate(*t)
	}

	s := strings.TrimSpace(cast.ToString(v))
	if s == "" {
		return nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return &d
		}
	}
	return nil
}

// ParseAmount coerces a cell value into a non-negative decimal. Strings may
// use spaces as thousand separators and a comma as decimal separator.
func ParseAmount(v any) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, fmt.Errorf("missing value")
	}

	var d decimal.Decimal
	switch n := v.(type) {
	case decimal.Decimal:
		d = n
	case float64, float32, int, int32, int64:
		d = decimal.NewFromFloat(cast.ToFloat64(n))
	default:
		s := strings.TrimSpace(cast.ToString(v))
		if s == "" {
			return decimal.Zero, fmt.Errorf("missing value")
		}
		s = strings.ReplaceAll(s, " ", "")
		s = strings.ReplaceAll(s, " ", "")
		if strings.Contains(s, ",") && !strings.Contains(s, ".") {
			s = strings.Replace(s, ",", ".", 1)
		}
		var err error
		d, err = decimal.NewFromString(s)
		if err != nil {
			return decimal.Zero, fmt.Errorf("not a number: %q", v)
		}
	}

	if d.IsNegative() {
		return decimal.Zero, fmt.Errorf("negative amount %s", d)
	}
	return d, nil
}

// canonicalHeader maps a raw header cell to its canonical column name, or
// "" when the header is not recognized.
func canonicalHeader(h string) string {
	return headerAliases[strings.ToLower(strings.TrimSpace(h))]
}
