package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
)

// WriteRecordsCSV writes all records to a comma-separated file with the
// same column layout as the xlsx export.
func WriteRecordsCSV(path string, recs []domain.PaymentRecord) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := make([]string, len(recordHeader))
	for i, h := range recordHeader {
		header[i] = fmt.Sprint(h)
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, rec := range recs {
		row := []string{
			fmt.Sprintf("%d", rec.ID),
			rec.SupplierName,
			rec.OrderDate.Format(dateLayout),
			rec.OrderAmount.StringFixed(2),
			formatDate(rec.ReceiptDate),
			formatDate(rec.PaymentDate),
			formatDelay(rec.PaymentDelayDays),
			formatStatus(rec.PaymentStatus),
			fmt.Sprintf("%d", rec.DaysOverdue),
			rec.PenaltyAmount.StringFixed(2),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	return nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}

func formatDelay(d *int) string {
	if d == nil {
		return ""
	}
	return fmt.Sprintf("%d", *d)
}

func formatStatus(s *domain.Status) string {
	if s == nil {
		return ""
	}
	return s.String()
}

func derefInt(d *int) any {
	if d == nil {
		return ""
	}
	return *d
}
