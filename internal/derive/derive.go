// Package derive computes the regulatory compliance fields of a payment
// record: payment delay, status against the standard delay, days overdue
// and the Law 69-21 penalty amount. Everything here is a pure function of
// the record's base fields and the supplied parameters; re-deriving an
// already derived record yields the same output.
package derive

import (
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultStandardDelayDays is the legal payment window of Law 69-21.
	DefaultStandardDelayDays = 60
	// DefaultInterestRate is the annual penalty interest rate.
	DefaultInterestRate = 0.03

	daysPerYear = 365
	hoursPerDay = 24
)

// Params are the regulatory inputs of a derivation. Callers must always
// pass them explicitly so that recomputation under different parameters is
// reproducible; the engine holds no hidden defaults.
type Params struct {
	StandardDelayDays int
	InterestRate      decimal.Decimal
}

// DefaultParams returns the Law 69-21 defaults (60 days, 3%).
func DefaultParams() Params {
	return Params{
		StandardDelayDays: DefaultStandardDelayDays,
		InterestRate:      decimal.NewFromFloat(DefaultInterestRate),
	}
}

// Apply recomputes all derived fields of rec from its base fields.
//
// Unpaid records (nil payment date) get nil delay and status, zero days
// overdue and a zero penalty. A payment date before the order date yields
// a negative delay; it is surfaced as-is and flagged via
// AnomalousChronology rather than rejected, since chronology is the
// caller's data-quality concern.
func Apply(rec domain.PaymentRecord, params Params) domain.PaymentRecord {
	out := rec.BaseFields()

	if rec.PaymentDate == nil {
		return out
	}

	delay := daysBetween(rec.OrderDate, *rec.PaymentDate)
	out.PaymentDelayDays = &delay
	out.AnomalousChronology = delay < 0

	status := domain.StatusOnTime
	if delay > params.StandardDelayDays {
		status = domain.StatusLate
	}
	out.PaymentStatus = &status

	if overdue := delay - params.StandardDelayDays; overdue > 0 {
		out.DaysOverdue = overdue
	}

	// Penalty = amount * rate * days overdue / 365
	out.PenaltyAmount = rec.OrderAmount.
		Mul(params.InterestRate).
		Mul(decimal.NewFromInt(int64(out.DaysOverdue))).
		Div(decimal.NewFromInt(daysPerYear))

	return out
}

// ApplyAll derives every record in a batch with the same parameters.
func ApplyAll(recs []domain.PaymentRecord, params Params) []domain.PaymentRecord {
	out := make([]domain.PaymentRecord, len(recs))
	for i, rec := range recs {
		out[i] = Apply(rec, params)
	}
	return out
}

// daysBetween counts whole calendar days from a to b, ignoring any
// time-of-day component the normalizer may have left on the values.
func daysBetween(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / hoursPerDay)
}
