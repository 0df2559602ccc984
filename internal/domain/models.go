// internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord represents one supplier order/payment cycle.
// The base fields (supplier, order date, amount, receipt date, payment
// date) drive every derived field; receipt date is stored but never used
// in derivation.
type PaymentRecord struct {
	ID           int64           `json:"id" db:"id"`
	SupplierName string          `json:"supplier_name" db:"supplier_name"`
	OrderDate    time.Time       `json:"order_date" db:"order_date"`
	OrderAmount  decimal.Decimal `json:"order_amount" db:"order_amount"`
	ReceiptDate  *time.Time      `json:"receipt_date,omitempty" db:"receipt_date"`
	PaymentDate  *time.Time      `json:"payment_date,omitempty" db:"payment_date"`

	// Derived fields. Never set by callers; recomputed from the base
	// fields on every write.
	PaymentDelayDays *int            `json:"payment_delay_days,omitempty" db:"payment_delay_days"`
	PaymentStatus    *Status         `json:"payment_status,omitempty" db:"payment_status"`
	DaysOverdue      int             `json:"days_overdue" db:"days_overdue"`
	PenaltyAmount    decimal.Decimal `json:"penalty_amount" db:"penalty_amount"`

	// AnomalousChronology marks a payment recorded before its order date.
	// The negative delay still flows through the formulas; this flag only
	// lets callers highlight the row. Not persisted.
	AnomalousChronology bool `json:"anomalous_chronology,omitempty" db:"-"`
}

// BaseFields returns a copy of the record with all derived fields cleared.
func (r PaymentRecord) BaseFields() PaymentRecord {
	return PaymentRecord{
		ID:           r.ID,
		SupplierName: r.SupplierName,
		OrderDate:    r.OrderDate,
		OrderAmount:  r.OrderAmount,
		ReceiptDate:  r.ReceiptDate,
		PaymentDate:  r.PaymentDate,
	}
}

// RecordPatch carries a partial update of base fields. Nil means "leave
// unchanged"; the Clear flags null out the optional dates.
type RecordPatch struct {
	SupplierName *string          `json:"supplier_name,omitempty"`
	OrderDate    *time.Time       `json:"order_date,omitempty"`
	OrderAmount  *decimal.Decimal `json:"order_amount,omitempty"`
	ReceiptDate  *time.Time       `json:"receipt_date,omitempty"`
	PaymentDate  *time.Time       `json:"payment_date,omitempty"`

	ClearReceiptDate bool `json:"clear_receipt_date,omitempty"`
	ClearPaymentDate bool `json:"clear_payment_date,omitempty"`
}

// ApplyTo overlays the patch onto a record and returns the result with
// derived fields cleared, ready for re-derivation.
func (p RecordPatch) ApplyTo(rec PaymentRecord) PaymentRecord {
	out := rec.BaseFields()
	if p.SupplierName != nil {
		out.SupplierName = *p.SupplierName
	}
	if p.OrderDate != nil {
		out.OrderDate = *p.OrderDate
	}
	if p.OrderAmount != nil {
		out.OrderAmount = *p.OrderAmount
	}
	if p.ReceiptDate != nil {
		out.ReceiptDate = p.ReceiptDate
	}
	if p.ClearReceiptDate {
		out.ReceiptDate = nil
	}
	if p.PaymentDate != nil {
		out.PaymentDate = p.PaymentDate
	}
	if p.ClearPaymentDate {
		out.PaymentDate = nil
	}
	return out
}

// RatioInputs is the scalar tuple consumed by the ratio calculator. It has
// no identity and no lifecycle beyond a single call.
type RatioInputs struct {
	Stock              decimal.Decimal `json:"stock"`
	Receivables        decimal.Decimal `json:"receivables"`
	Payables           decimal.Decimal `json:"payables"`
	Cash               decimal.Decimal `json:"cash"`
	CurrentAssets      decimal.Decimal `json:"current_assets"`
	CurrentLiabilities decimal.Decimal `json:"current_liabilities"`
	Purchases          decimal.Decimal `json:"purchases"`
}
