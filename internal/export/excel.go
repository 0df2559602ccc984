// Package export writes the spreadsheet artifacts consumed by auditors:
// the full record table (xlsx/csv) and the multi-section audit report.
package export

import (
	"fmt"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/xuri/excelize/v2"
)

const dateLayout = "02/01/2006"

// recordHeader is the record sheet layout, base fields then derived, in
// the legacy column order.
var recordHeader = []any{
	"ID",
	"Nom du fournisseur",
	"Date de commande",
	"Montant de la commande",
	"Date de réception",
	"Date de paiement",
	"Délai de paiement",
	"Statut du paiement",
	"Jours de retard",
	"Montant pénalité",
}

// WriteRecordsXLSX writes all records to a single-sheet workbook.
func WriteRecordsXLSX(path string, recs []domain.PaymentRecord) error {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Données"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	if err := writeRow(f, sheet, 1, recordHeader); err != nil {
		return err
	}
	for i, rec := range recs {
		if err := writeRow(f, sheet, i+2, recordValues(rec)); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

// WriteAuditReportXLSX writes the four-section audit report: summary,
// non-compliant records, monthly compliance trend and supplier risk.
func WriteAuditReportXLSX(
	path string,
	summary domain.ComplianceSummary,
	nonCompliant []domain.PaymentRecord,
	trend []domain.MonthlyCompliance,
	risk []domain.SupplierRisk,
) error {
	f := excelize.NewFile()
	defer f.Close()

	const summarySheet = "Résumé"
	if err := f.SetSheetName(f.GetSheetName(0), summarySheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	worst := summary.WorstSupplier
	if worst == "" {
		worst = "N/A"
	}
	summaryRows := [][]any{
		{"Indicateur", "Valeur"},
		{"Nombre total de factures", summary.TotalRecords},
		{"Factures non conformes", summary.LateRecords},
		{"Taux de conformité", fmt.Sprintf("%.1f%%", summary.ComplianceRate)},
		{"Total des pénalités", fmt.Sprintf("%.2f €", summary.TotalPenalties.InexactFloat64())},
		{"Fournisseur avec le plus de retards", worst},
		{"Position d'audit", string(summary.Position)},
	}
	for i, row := range summaryRows {
		if err := writeRow(f, summarySheet, i+1, row); err != nil {
			return err
		}
	}

	const lateSheet = "Factures non conformes"
	if _, err := f.NewSheet(lateSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	lateHeader := []any{
		"Nom du fournisseur", "Date de commande", "Date de paiement",
		"Montant de la commande", "Délai de paiement", "Jours de retard",
		"Montant pénalité",
	}
	if err := writeRow(f, lateSheet, 1, lateHeader); err != nil {
		return err
	}
	for i, rec := range nonCompliant {
		row := []any{
			rec.SupplierName,
			rec.OrderDate.Format(dateLayout),
			formatDate(rec.PaymentDate),
			rec.OrderAmount.Round(2).InexactFloat64(),
			derefInt(rec.PaymentDelayDays),
			rec.DaysOverdue,
			rec.PenaltyAmount.Round(2).InexactFloat64(),
		}
		if err := writeRow(f, lateSheet, i+2, row); err != nil {
			return err
		}
	}

	const trendSheet = "Évolution mensuelle"
	if _, err := f.NewSheet(trendSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	if err := writeRow(f, trendSheet, 1, []any{"Mois", "Taux de conformité"}); err != nil {
		return err
	}
	for i, point := range trend {
		if err := writeRow(f, trendSheet, i+2, []any{point.Month, point.ComplianceRate}); err != nil {
			return err
		}
	}

	const riskSheet = "Risque fournisseurs"
	if _, err := f.NewSheet(riskSheet); err != nil {
		return fmt.Errorf("failed to create sheet: %w", err)
	}
	riskHeader := []any{
		"Nom du fournisseur", "Exposition financière", "Délai moyen", "Taux de retard (%)",
	}
	if err := writeRow(f, riskSheet, 1, riskHeader); err != nil {
		return err
	}
	for i, row := range risk {
		values := []any{
			row.SupplierName,
			row.FinancialExposure.Round(2).InexactFloat64(),
			row.MeanDelayDays,
			row.LateRate,
		}
		if err := writeRow(f, riskSheet, i+2, values); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook %s: %w", path, err)
	}
	return nil
}

func recordValues(rec domain.PaymentRecord) []any {
	return []any{
		rec.ID,
		rec.SupplierName,
		rec.OrderDate.Format(dateLayout),
		rec.OrderAmount.Round(2).InexactFloat64(),
		formatDate(rec.ReceiptDate),
		formatDate(rec.PaymentDate),
		derefInt(rec.PaymentDelayDays),
		formatStatus(rec.PaymentStatus),
		rec.DaysOverdue,
		rec.PenaltyAmount.Round(2).InexactFloat64(),
	}
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	for col, v := range values {
		cell, err := excelize.CoordinatesToCellName(col+1, row)
		if err != nil {
			return fmt.Errorf("invalid cell coordinates: %w", err)
		}
		if err := f.SetCellValue(sheet, cell, v); err != nil {
			return fmt.Errorf("failed to write cell %s: %w", cell, err)
		}
	}
	return nil
}
