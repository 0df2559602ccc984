package derive

import (
	"testing"
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestApplyOnTime(t *testing.T) {
	rec := domain.PaymentRecord{
		SupplierName: "Fournisseur A",
		OrderDate:    date(2025, time.January, 1),
		OrderAmount:  decimal.NewFromInt(10000),
		PaymentDate:  datePtr(2025, time.January, 16),
	}

	out := Apply(rec, DefaultParams())

	if out.PaymentDelayDays == nil || *out.PaymentDelayDays != 15 {
		t.Fatalf("expected delay 15, got %v", out.PaymentDelayDays)
	}
	if out.PaymentStatus == nil || *out.PaymentStatus != domain.StatusOnTime {
		t.Errorf("expected status %q, got %v", domain.StatusOnTime, out.PaymentStatus)
	}
	if out.DaysOverdue != 0 {
		t.Errorf("expected 0 days overdue, got %d", out.DaysOverdue)
	}
	if !out.PenaltyAmount.IsZero() {
		t.Errorf("expected zero penalty, got %s", out.PenaltyAmount)
	}
	if out.AnomalousChronology {
		t.Error("unexpected anomalous chronology flag")
	}
}

func TestApplyLateWithPenalty(t *testing.T) {
	rec := domain.PaymentRecord{
		SupplierName: "Fournisseur B",
		OrderDate:    date(2025, time.January, 1),
		OrderAmount:  decimal.NewFromInt(10000),
		PaymentDate:  datePtr(2025, time.March, 17), // 75 days later
	}

	out := Apply(rec, DefaultParams())

	if out.PaymentDelayDays == nil || *out.PaymentDelayDays != 75 {
		t.Fatalf("expected delay 75, got %v", out.PaymentDelayDays)
	}
	if out.PaymentStatus == nil || *out.PaymentStatus != domain.StatusLate {
		t.Errorf("expected status %q, got %v", domain.StatusLate, out.PaymentStatus)
	}
	if out.DaysOverdue != 15 {
		t.Errorf("expected 15 days overdue, got %d", out.DaysOverdue)
	}

	// 10000 * 0.03 * 15 / 365
	want := decimal.NewFromInt(10000).
		Mul(decimal.NewFromFloat(0.03)).
		Mul(decimal.NewFromInt(15)).
		Div(decimal.NewFromInt(365))
	if !out.PenaltyAmount.Equal(want) {
		t.Errorf("expected penalty %s, got %s", want, out.PenaltyAmount)
	}
}

func TestApplyExactlyAtStandardDelayIsOnTime(t *testing.T) {
	rec := domain.PaymentRecord{
		OrderDate:   date(2025, time.January, 1),
		OrderAmount: decimal.NewFromInt(5000),
		PaymentDate: datePtr(2025, time.March, 2), // exactly 60 days
	}

	out := Apply(rec, DefaultParams())

	if out.PaymentDelayDays == nil || *out.PaymentDelayDays != 60 {
		t.Fatalf("expected delay 60, got %v", out.PaymentDelayDays)
	}
	if out.PaymentStatus == nil || *out.PaymentStatus != domain.StatusOnTime {
		t.Errorf("payment on the last allowed day should be on time, got %v", out.PaymentStatus)
	}
	if out.DaysOverdue != 0 || !out.PenaltyAmount.IsZero() {
		t.Errorf("expected no overdue/penalty, got %d / %s", out.DaysOverdue, out.PenaltyAmount)
	}
}

func TestApplyUnpaidRecord(t *testing.T) {
	rec := domain.PaymentRecord{
		SupplierName: "Fournisseur C",
		OrderDate:    date(2025, time.February, 10),
		OrderAmount:  decimal.NewFromInt(2500),
		ReceiptDate:  datePtr(2025, time.February, 20),
	}

	out := Apply(rec, DefaultParams())

	if out.PaymentDelayDays != nil {
		t.Errorf("expected nil delay for unpaid record, got %d", *out.PaymentDelayDays)
	}
	if out.PaymentStatus != nil {
		t.Errorf("expected nil status for unpaid record, got %q", *out.PaymentStatus)
	}
	if out.DaysOverdue != 0 || !out.PenaltyAmount.IsZero() {
		t.Errorf("expected no overdue/penalty, got %d / %s", out.DaysOverdue, out.PenaltyAmount)
	}
	if out.ReceiptDate == nil || !out.ReceiptDate.Equal(date(2025, time.February, 20)) {
		t.Errorf("receipt date should pass through unchanged, got %v", out.ReceiptDate)
	}
}

func TestApplyNegativeDelayFlagsAnomaly(t *testing.T) {
	rec := domain.PaymentRecord{
		OrderDate:   date(2025, time.March, 10),
		OrderAmount: decimal.NewFromInt(1000),
		PaymentDate: datePtr(2025, time.March, 1),
	}

	out := Apply(rec, DefaultParams())

	if out.PaymentDelayDays == nil || *out.PaymentDelayDays != -9 {
		t.Fatalf("expected delay -9, got %v", out.PaymentDelayDays)
	}
	if !out.AnomalousChronology {
		t.Error("expected anomalous chronology flag for payment before order")
	}
	if out.PaymentStatus == nil || *out.PaymentStatus != domain.StatusOnTime {
		t.Errorf("negative delay is within the window, got %v", out.PaymentStatus)
	}
	if out.DaysOverdue != 0 || !out.PenaltyAmount.IsZero() {
		t.Errorf("expected no overdue/penalty, got %d / %s", out.DaysOverdue, out.PenaltyAmount)
	}
}

func TestApplyIsIdempotent(t *testing.T) {
	rec := domain.PaymentRecord{
		SupplierName: "Fournisseur D",
		OrderDate:    date(2024, time.November, 5),
		OrderAmount:  decimal.NewFromFloat(12345.67),
		PaymentDate:  datePtr(2025, time.February, 1),
	}

	first := Apply(rec, DefaultParams())
	second := Apply(first, DefaultParams())

	if *first.PaymentDelayDays != *second.PaymentDelayDays {
		t.Errorf("delay changed on re-derivation: %d vs %d", *first.PaymentDelayDays, *second.PaymentDelayDays)
	}
	if *first.PaymentStatus != *second.PaymentStatus {
		t.Errorf("status changed on re-derivation: %q vs %q", *first.PaymentStatus, *second.PaymentStatus)
	}
	if first.DaysOverdue != second.DaysOverdue {
		t.Errorf("days overdue changed on re-derivation: %d vs %d", first.DaysOverdue, second.DaysOverdue)
	}
	if !first.PenaltyAmount.Equal(second.PenaltyAmount) {
		t.Errorf("penalty changed on re-derivation: %s vs %s", first.PenaltyAmount, second.PenaltyAmount)
	}
}

func TestApplyIgnoresTimeOfDay(t *testing.T) {
	order := time.Date(2025, time.January, 1, 23, 30, 0, 0, time.UTC)
	payment := time.Date(2025, time.January, 16, 0, 15, 0, 0, time.UTC)

	out := Apply(domain.PaymentRecord{
		OrderDate:   order,
		OrderAmount: decimal.NewFromInt(100),
		PaymentDate: &payment,
	}, DefaultParams())

	if out.PaymentDelayDays == nil || *out.PaymentDelayDays != 15 {
		t.Fatalf("expected calendar delay 15 regardless of time of day, got %v", out.PaymentDelayDays)
	}
}

func TestApplyAllCustomParams(t *testing.T) {
	params := Params{StandardDelayDays: 30, InterestRate: decimal.NewFromFloat(0.05)}

	recs := []domain.PaymentRecord{
		{OrderDate: date(2025, time.January, 1), OrderAmount: decimal.NewFromInt(1000), PaymentDate: datePtr(2025, time.January, 20)},
		{OrderDate: date(2025, time.January, 1), OrderAmount: decimal.NewFromInt(1000), PaymentDate: datePtr(2025, time.February, 15)},
	}

	out := ApplyAll(recs, params)

	if len(out) != 2 {
		t.Fatalf("expected 2 derived records, got %d", len(out))
	}
	if *out[0].PaymentStatus != domain.StatusOnTime {
		t.Errorf("19-day delay under a 30-day window should be on time, got %q", *out[0].PaymentStatus)
	}
	if *out[1].PaymentStatus != domain.StatusLate || out[1].DaysOverdue != 15 {
		t.Errorf("45-day delay under a 30-day window: want late with 15 overdue, got %q / %d",
			*out[1].PaymentStatus, out[1].DaysOverdue)
	}
}
