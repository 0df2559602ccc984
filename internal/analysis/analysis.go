// Package analysis aggregates derived payment records into the audit
// indicators: headline compliance summary, month-by-month trend and the
// per-supplier risk table. All functions are pure; they expect records
// whose derived fields are already populated.
package analysis

import (
	"sort"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
)

// Audit position thresholds on the compliance rate, in percent.
const (
	FavorableThreshold = 90
	AlertThreshold     = 70
)

// Summarize computes the headline audit indicators over a record set.
func Summarize(recs []domain.PaymentRecord) domain.ComplianceSummary {
	s := domain.ComplianceSummary{
		TotalRecords:   len(recs),
		UnpaidAmount:   decimal.Zero,
		OnTimeAmount:   decimal.Zero,
		TotalPenalties: decimal.Zero,
	}

	var (
		delaySum   int
		delayCount int
		lateCounts = map[string]int{}
	)

	for _, rec := range recs {
		if rec.PaymentDelayDays != nil {
			delaySum += *rec.PaymentDelayDays
			delayCount++
		}
		if rec.PaymentDate == nil {
			s.UnpaidAmount = s.UnpaidAmount.Add(rec.OrderAmount)
		}
		if rec.PaymentStatus != nil {
			switch *rec.PaymentStatus {
			case domain.StatusOnTime:
				s.OnTimeAmount = s.OnTimeAmount.Add(rec.OrderAmount)
			case domain.StatusLate:
				s.LateRecords++
				lateCounts[rec.SupplierName]++
			}
		}
		if rec.AnomalousChronology {
			s.AnomalousCount++
		}
		s.TotalPenalties = s.TotalPenalties.Add(rec.PenaltyAmount)
	}

	if delayCount > 0 {
		s.MeanDelayDays = float64(delaySum) / float64(delayCount)
	}
	if s.TotalRecords > 0 {
		s.ComplianceRate = float64(s.TotalRecords-s.LateRecords) / float64(s.TotalRecords) * 100
	}
	s.WorstSupplier = worstSupplier(lateCounts)
	s.Position = Position(s.ComplianceRate)

	return s
}

// Position maps a compliance rate (percent) onto the reporting scale.
func Position(complianceRate float64) domain.AuditPosition {
	switch {
	case complianceRate >= FavorableThreshold:
		return domain.PositionFavorable
	case complianceRate >= AlertThreshold:
		return domain.PositionNeutral
	default:
		return domain.PositionAlert
	}
}

// worstSupplier picks the supplier with the most late payments; ties break
// alphabetically so the result is stable.
func worstSupplier(lateCounts map[string]int) string {
	var (
		worst string
		max   int
	)
	names := make([]string, 0, len(lateCounts))
	for name := range lateCounts {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if lateCounts[name] > max {
			worst = name
			max = lateCounts[name]
		}
	}
	return worst
}

// MonthlyTrend groups records by order month and computes the compliance
// rate per month, sorted chronologically. Records without a status count
// as compliant, mirroring the dashboard's trend chart.
func MonthlyTrend(recs []domain.PaymentRecord) []domain.MonthlyCompliance {
	type bucket struct {
		total int
		late  int
	}
	buckets := map[string]*bucket{}

	for _, rec := range recs {
		month := rec.OrderDate.Format("2006-01")
		b, ok := buckets[month]
		if !ok {
			b = &bucket{}
			buckets[month] = b
		}
		b.total++
		if rec.PaymentStatus != nil && *rec.PaymentStatus == domain.StatusLate {
			b.late++
		}
	}

	months := make([]string, 0, len(buckets))
	for month := range buckets {
		months = append(months, month)
	}
	sort.Strings(months)

	trend := make([]domain.MonthlyCompliance, 0, len(months))
	for _, month := range months {
		b := buckets[month]
		trend = append(trend, domain.MonthlyCompliance{
			Month:          month,
			TotalRecords:   b.total,
			ComplianceRate: float64(b.total-b.late) / float64(b.total) * 100,
		})
	}
	return trend
}

// SupplierRiskTable computes per-supplier exposure, mean delay and late
// rate, sorted by descending late rate then supplier name.
func SupplierRiskTable(recs []domain.PaymentRecord) []domain.SupplierRisk {
	type bucket struct {
		exposure   decimal.Decimal
		delaySum   int
		delayCount int
		total      int
		late       int
	}
	buckets := map[string]*bucket{}

	for _, rec := range recs {
		b, ok := buckets[rec.SupplierName]
		if !ok {
			b = &bucket{exposure: decimal.Zero}
			buckets[rec.SupplierName] = b
		}
		b.exposure = b.exposure.Add(rec.OrderAmount)
		b.total++
		if rec.PaymentDelayDays != nil {
			b.delaySum += *rec.PaymentDelayDays
			b.delayCount++
		}
		if rec.PaymentStatus != nil && *rec.PaymentStatus == domain.StatusLate {
			b.late++
		}
	}

	table := make([]domain.SupplierRisk, 0, len(buckets))
	for name, b := range buckets {
		risk := domain.SupplierRisk{
			SupplierName:      name,
			FinancialExposure: b.exposure,
			LateRate:          float64(b.late) / float64(b.total) * 100,
		}
		if b.delayCount > 0 {
			risk.MeanDelayDays = float64(b.delaySum) / float64(b.delayCount)
		}
		table = append(table, risk)
	}

	sort.Slice(table, func(i, j int) bool {
		if table[i].LateRate != table[j].LateRate {
			return table[i].LateRate > table[j].LateRate
		}
		return table[i].SupplierName < table[j].SupplierName
	})
	return table
}

// NonCompliant returns the late records sorted by descending payment
// delay, the order the audit report lists them in.
func NonCompliant(recs []domain.PaymentRecord) []domain.PaymentRecord {
	var late []domain.PaymentRecord
	for _, rec := range recs {
		if rec.PaymentStatus != nil && *rec.PaymentStatus == domain.StatusLate {
			late = append(late, rec)
		}
	}
	sort.Slice(late, func(i, j int) bool {
		return *late[i].PaymentDelayDays > *late[j].PaymentDelayDays
	})
	return late
}
