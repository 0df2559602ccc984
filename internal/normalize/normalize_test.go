package normalize

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestNormalizePartialBatch(t *testing.T) {
	rows := []Row{
		{
			ColSupplier:    "Fournisseur A",
			ColOrderDate:   "15/01/2025",
			ColOrderAmount: "10000",
			ColPaymentDate: "20/02/2025",
		},
		{
			ColSupplier:    "Fournisseur B",
			ColOrderDate:   "16/01/2025",
			ColOrderAmount: "abc",
		},
		{
			ColSupplier:    "Fournisseur C",
			ColOrderDate:   "17/01/2025",
			ColOrderAmount: "2500.50",
		},
	}

	records, rejections := Normalize(rows)

	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if len(rejections) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejections))
	}
	if rejections[0].Line != 2 {
		t.Errorf("expected rejection on line 2, got %d", rejections[0].Line)
	}
	if !strings.Contains(rejections[0].Reason, "invalid order amount") {
		t.Errorf("unexpected rejection reason: %s", rejections[0].Reason)
	}

	if records[0].SupplierName != "Fournisseur A" {
		t.Errorf("unexpected supplier: %s", records[0].SupplierName)
	}
	if records[0].PaymentDate == nil {
		t.Error("expected payment date on first record")
	}
	if !records[1].OrderAmount.Equal(decimal.NewFromFloat(2500.50)) {
		t.Errorf("unexpected amount: %s", records[1].OrderAmount)
	}
}

func TestNormalizeMissingSupplier(t *testing.T) {
	records, rejections := Normalize([]Row{
		{ColOrderDate: "15/01/2025", ColOrderAmount: "100"},
		{ColSupplier: "   ", ColOrderDate: "15/01/2025", ColOrderAmount: "100"},
	})

	if len(records) != 0 {
		t.Fatalf("expected no records, got %d", len(records))
	}
	if len(rejections) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(rejections))
	}
	for _, rej := range rejections {
		if !strings.Contains(rej.Reason, "missing supplier") {
			t.Errorf("unexpected rejection reason: %s", rej.Reason)
		}
	}
}

func TestNormalizeMissingOrderDate(t *testing.T) {
	_, rejections := Normalize([]Row{
		{ColSupplier: "Fournisseur A", ColOrderAmount: "100"},
		{ColSupplier: "Fournisseur A", ColOrderDate: "not-a-date", ColOrderAmount: "100"},
	})

	if len(rejections) != 2 {
		t.Fatalf("expected 2 rejections, got %d", len(rejections))
	}
}

func TestNormalizeUnparseableOptionalDateIsAbsent(t *testing.T) {
	records, rejections := Normalize([]Row{
		{
			ColSupplier:    "Fournisseur A",
			ColOrderDate:   "15/01/2025",
			ColOrderAmount: "100",
			ColReceiptDate: "???",
			ColPaymentDate: "",
		},
	})

	if len(rejections) != 0 {
		t.Fatalf("unexpected rejections: %v", rejections)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record, got %d", len(records))
	}
	if records[0].ReceiptDate != nil {
		t.Errorf("expected absent receipt date, got %v", records[0].ReceiptDate)
	}
	if records[0].PaymentDate != nil {
		t.Errorf("expected absent payment date, got %v", records[0].PaymentDate)
	}
}

func TestParseDateLayouts(t *testing.T) {
	want := time.Date(2025, time.March, 7, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		in   any
	}{
		{"french", "07/03/2025"},
		{"iso", "2025-03-07"},
		{"iso datetime", "2025-03-07 14:30:00"},
		{"french datetime", "07/03/2025 14:30"},
		{"rfc3339", "2025-03-07T14:30:00Z"},
		{"time value", time.Date(2025, time.March, 7, 9, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseDate(tt.in)
			if got == nil {
				t.Fatalf("ParseDate(%v) = nil", tt.in)
			}
			if !got.Equal(want) {
				t.Errorf("ParseDate(%v) = %v, want %v", tt.in, got, want)
			}
		})
	}
}

func TestParseDateInvalid(t *testing.T) {
	for _, in := range []any{nil, "", "  ", "32/13/2025", "soon", time.Time{}} {
		if got := ParseDate(in); got != nil {
			t.Errorf("ParseDate(%v) = %v, want nil", in, got)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"plain string", "10000", "10000"},
		{"decimal point", "2500.50", "2500.5"},
		{"decimal comma", "2500,50", "2500.5"},
		{"spaced thousands", "12 500", "12500"},
		{"float", 1234.5, "1234.5"},
		{"int", 42, "42"},
		{"zero", "0", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if err != nil {
				t.Fatalf("ParseAmount(%v) error: %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("ParseAmount(%v) = %s, want %s", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseAmountInvalid(t *testing.T) {
	for _, in := range []any{nil, "", "abc", "-100"} {
		if _, err := ParseAmount(in); err == nil {
			t.Errorf("ParseAmount(%v) should fail", in)
		}
	}
}

func TestCanonicalHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Nom du fournisseur", ColSupplier},
		{"SUPPLIER_NAME", ColSupplier},
		{" Date de commande ", ColOrderDate},
		{"amount", ColOrderAmount},
		{"unknown column", ""},
	}

	for _, tt := range tests {
		if got := canonicalHeader(tt.in); got != tt.want {
			t.Errorf("canonicalHeader(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseQuickLines(t *testing.T) {
	text := `
Fournisseur A, 15/01/2025, 10000, 20/01/2025, 20/02/2025
Fournisseur B, 16/01/2025, 5000

Fournisseur C, 17/01/2025
`

	rows, rejections := ParseQuickLines(text)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if len(rejections) != 1 {
		t.Fatalf("expected 1 rejection, got %d", len(rejections))
	}
	if !strings.Contains(rejections[0].Reason, "at least 3 fields") {
		t.Errorf("unexpected rejection reason: %s", rejections[0].Reason)
	}

	records, normRejections := Normalize(rows)
	if len(normRejections) != 0 {
		t.Fatalf("unexpected rejections: %v", normRejections)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].PaymentDate == nil || records[0].ReceiptDate == nil {
		t.Error("expected optional dates on fully-specified quick line")
	}
	if records[1].PaymentDate != nil {
		t.Error("expected no payment date on three-field quick line")
	}
}
