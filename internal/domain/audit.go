package domain

import "github.com/shopspring/decimal"

// AuditPosition qualifies the overall compliance rate against the 90%/70%
// reporting thresholds.
type AuditPosition string

const (
	PositionFavorable AuditPosition = "Position favorable"
	PositionNeutral   AuditPosition = "Position neutre"
	PositionAlert     AuditPosition = "Position d'alerte"
)

// ComplianceSummary aggregates the headline audit indicators over a set of
// payment records.
type ComplianceSummary struct {
	TotalRecords   int             `json:"total_records"`
	LateRecords    int             `json:"late_records"`
	ComplianceRate float64         `json:"compliance_rate"` // percent, 0-100
	MeanDelayDays  float64         `json:"mean_delay_days"`
	UnpaidAmount   decimal.Decimal `json:"unpaid_amount"`
	OnTimeAmount   decimal.Decimal `json:"on_time_amount"`
	TotalPenalties decimal.Decimal `json:"total_penalties"`
	WorstSupplier  string          `json:"worst_supplier"` // most late payments, "" when none late
	Position       AuditPosition   `json:"position"`
	AnomalousCount int             `json:"anomalous_count"`
}

// MonthlyCompliance is one point of the month-by-month compliance trend.
type MonthlyCompliance struct {
	Month          string  `json:"month"` // "2006-01"
	TotalRecords   int     `json:"total_records"`
	ComplianceRate float64 `json:"compliance_rate"`
}

// SupplierRisk is one row of the per-supplier risk table.
type SupplierRisk struct {
	SupplierName      string          `json:"supplier_name"`
	FinancialExposure decimal.Decimal `json:"financial_exposure"` // sum of order amounts
	MeanDelayDays     float64         `json:"mean_delay_days"`
	LateRate          float64         `json:"late_rate"` // percent, 0-100
}
