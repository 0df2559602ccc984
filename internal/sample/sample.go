// Package sample generates demonstration datasets shaped like the legacy
// dashboard's example data: a handful of suppliers, order dates spread
// over the last few months, and a mix of on-time and late payments.
package sample

import (
	"math/rand"
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/shopspring/decimal"
)

var suppliers = []string{
	"Fournisseur A",
	"Fournisseur B",
	"Fournisseur C",
	"Fournisseur D",
	"Fournisseur E",
}

// delayFactors scale the 60-day standard window; factors above 1 produce
// late payments.
var delayFactors = []float64{0.8, 1.2, 1.5, 2.0}

// DefaultCount matches the legacy sample generator.
const DefaultCount = 50

// Generate produces n records with base fields only, relative to now.
// Pass a seeded rng for reproducible datasets.
func Generate(n int, now time.Time, rng *rand.Rand) []domain.PaymentRecord {
	records := make([]domain.PaymentRecord, 0, n)

	for i := 0; i < n; i++ {
		orderDate := now.AddDate(0, 0, -(90 + rng.Intn(90)))
		orderDate = time.Date(orderDate.Year(), orderDate.Month(), orderDate.Day(), 0, 0, 0, 0, time.UTC)

		receiptDate := orderDate.AddDate(0, 0, 5+rng.Intn(15))
		factor := delayFactors[rng.Intn(len(delayFactors))]
		paymentDate := orderDate.AddDate(0, 0, int(60*factor))

		records = append(records, domain.PaymentRecord{
			SupplierName: suppliers[rng.Intn(len(suppliers))],
			OrderDate:    orderDate,
			OrderAmount:  decimal.NewFromInt(int64(1000 + rng.Intn(49000))),
			ReceiptDate:  &receiptDate,
			PaymentDate:  &paymentDate,
		})
	}

	return records
}
