package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/andresuchdata/paywatch/internal/analysis"
	"github.com/andresuchdata/paywatch/internal/derive"
	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func testRecords() []domain.PaymentRecord {
	paid := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	recs := []domain.PaymentRecord{
		{
			ID:           1,
			SupplierName: "Fournisseur A",
			OrderDate:    time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC),
			OrderAmount:  decimal.NewFromInt(10000),
			PaymentDate:  &paid,
		},
		{
			ID:           2,
			SupplierName: "Fournisseur B",
			OrderDate:    time.Date(2025, time.February, 10, 0, 0, 0, 0, time.UTC),
			OrderAmount:  decimal.NewFromFloat(2500.50),
		},
	}
	return derive.ApplyAll(recs, derive.DefaultParams())
}

func TestWriteRecordsCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.csv")
	recs := testRecords()

	if err := WriteRecordsCSV(path, recs); err != nil {
		t.Fatalf("WriteRecordsCSV: %v", err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	rows, err := csv.NewReader(file).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}

	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[0][1] != "Nom du fournisseur" {
		t.Errorf("unexpected header: %v", rows[0])
	}

	// Paid late record: delay 90, overdue 30.
	if rows[1][2] != "01/01/2025" || rows[1][6] != "90" || rows[1][7] != "En retard" {
		t.Errorf("unexpected first row: %v", rows[1])
	}

	// Unpaid record leaves delay and status empty.
	if rows[2][5] != "" || rows[2][6] != "" || rows[2][7] != "" {
		t.Errorf("unpaid record should have empty payment columns: %v", rows[2])
	}
	if rows[2][3] != "2500.50" {
		t.Errorf("unexpected amount formatting: %q", rows[2][3])
	}
}

func TestWriteRecordsXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "records.xlsx")
	recs := testRecords()

	if err := WriteRecordsXLSX(path, recs); err != nil {
		t.Fatalf("WriteRecordsXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Données")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(rows))
	}
	if rows[1][1] != "Fournisseur A" {
		t.Errorf("unexpected supplier cell: %q", rows[1][1])
	}
	if rows[1][7] != "En retard" {
		t.Errorf("unexpected status cell: %q", rows[1][7])
	}
}

func TestWriteAuditReportXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.xlsx")
	recs := testRecords()

	summary := analysis.Summarize(recs)
	err := WriteAuditReportXLSX(path,
		summary,
		analysis.NonCompliant(recs),
		analysis.MonthlyTrend(recs),
		analysis.SupplierRiskTable(recs),
	)
	if err != nil {
		t.Fatalf("WriteAuditReportXLSX: %v", err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	defer f.Close()

	want := []string{"Résumé", "Factures non conformes", "Évolution mensuelle", "Risque fournisseurs"}
	got := f.GetSheetList()
	if len(got) != len(want) {
		t.Fatalf("expected %d sheets, got %v", len(want), got)
	}
	for i, name := range want {
		if got[i] != name {
			t.Errorf("sheet %d = %q, want %q", i, got[i], name)
		}
	}

	rows, err := f.GetRows("Factures non conformes")
	if err != nil {
		t.Fatalf("read non-compliant sheet: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected header + 1 late record, got %d rows", len(rows))
	}
}
