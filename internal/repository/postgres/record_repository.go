// internal/repository/postgres/record_repository.go
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

// RecordRepository persists payment records. Every operation acquires and
// releases its resources within the call; nothing is held across calls.
type RecordRepository struct {
	db *DB
}

func NewRecordRepository(db *DB) *RecordRepository {
	return &RecordRepository{db: db}
}

// recordRow is the scan target for payment_records; nullable derived
// columns map to sql.Null* before conversion to the domain type.
type recordRow struct {
	ID               int64           `db:"id"`
	SupplierName     string          `db:"supplier_name"`
	OrderDate        time.Time       `db:"order_date"`
	OrderAmount      decimal.Decimal `db:"order_amount"`
	ReceiptDate      sql.NullTime    `db:"receipt_date"`
	PaymentDate      sql.NullTime    `db:"payment_date"`
	PaymentDelayDays sql.NullInt64   `db:"payment_delay_days"`
	DaysOverdue      int             `db:"days_overdue"`
	PaymentStatus    sql.NullString  `db:"payment_status"`
	PenaltyAmount    decimal.Decimal `db:"penalty_amount"`
}

func (r recordRow) toDomain() domain.PaymentRecord {
	rec := domain.PaymentRecord{
		ID:            r.ID,
		SupplierName:  r.SupplierName,
		OrderDate:     r.OrderDate,
		OrderAmount:   r.OrderAmount,
		DaysOverdue:   r.DaysOverdue,
		PenaltyAmount: r.PenaltyAmount,
	}
	if r.ReceiptDate.Valid {
		t := r.ReceiptDate.Time
		rec.ReceiptDate = &t
	}
	if r.PaymentDate.Valid {
		t := r.PaymentDate.Time
		rec.PaymentDate = &t
	}
	if r.PaymentDelayDays.Valid {
		d := int(r.PaymentDelayDays.Int64)
		rec.PaymentDelayDays = &d
		rec.AnomalousChronology = d < 0
	}
	if r.PaymentStatus.Valid {
		if s, ok := domain.ParseStatus(r.PaymentStatus.String); ok {
			rec.PaymentStatus = &s
		}
	}
	return rec
}

func nullInt(v *int) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func nullStatus(s *domain.Status) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: s.String(), Valid: true}
}

const selectColumns = `
	id, supplier_name, order_date, order_amount, receipt_date, payment_date,
	payment_delay_days, COALESCE(days_overdue, 0) AS days_overdue,
	payment_status, COALESCE(penalty_amount, 0) AS penalty_amount
`

// Insert persists a fully derived record and returns its new id.
func (r *RecordRepository) Insert(ctx context.Context, rec domain.PaymentRecord) (int64, error) {
	var id int64
	err := r.db.WithTx(ctx, func(tx *sql.Tx) error {
		query := `
			INSERT INTO payment_records (
				supplier_name, order_date, order_amount, receipt_date, payment_date,
				payment_delay_days, days_overdue, payment_status, penalty_amount,
				created_at, updated_at
			) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW(), NOW())
			RETURNING id
		`
		return tx.QueryRowContext(ctx, query,
			rec.SupplierName,
			rec.OrderDate,
			rec.OrderAmount.Round(2),
			rec.ReceiptDate,
			rec.PaymentDate,
			nullInt(rec.PaymentDelayDays),
			rec.DaysOverdue,
			nullStatus(rec.PaymentStatus),
			rec.PenaltyAmount.Round(2),
		).Scan(&id)
	})
	if err != nil {
		return 0, fmt.Errorf("failed to insert payment record: %w", err)
	}
	return id, nil
}

// Get returns one record by id, or sql.ErrNoRows.
func (r *RecordRepository) Get(ctx context.Context, id int64) (domain.PaymentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_records WHERE id = $1`, selectColumns)

	var row recordRow
	if err := sqlx.GetContext(ctx, r.db, &row, query, id); err != nil {
		return domain.PaymentRecord{}, fmt.Errorf("failed to get payment record %d: %w", id, err)
	}
	return row.toDomain(), nil
}

// GetAll returns every record in the store; order is not specified.
func (r *RecordRepository) GetAll(ctx context.Context) ([]domain.PaymentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM payment_records`, selectColumns)

	var rows []recordRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query); err != nil {
		return nil, fmt.Errorf("failed to list payment records: %w", err)
	}

	records := make([]domain.PaymentRecord, 0, len(rows))
	for _, row := range rows {
		records = append(records, row.toDomain())
	}
	return records, nil
}

// Update overwrites all base and derived fields of an existing record.
// Returns false when the id does not exist.
func (r *RecordRepository) Update(ctx context.Context, rec domain.PaymentRecord) (bool, error) {
	query := `
		UPDATE payment_records SET
			supplier_name = $1,
			order_date = $2,
			order_amount = $3,
			receipt_date = $4,
			payment_date = $5,
			payment_delay_days = $6,
			days_overdue = $7,
			payment_status = $8,
			penalty_amount = $9,
			updated_at = NOW()
		WHERE id = $10
	`
	res, err := r.db.ExecContext(ctx, query,
		rec.SupplierName,
		rec.OrderDate,
		rec.OrderAmount.Round(2),
		rec.ReceiptDate,
		rec.PaymentDate,
		nullInt(rec.PaymentDelayDays),
		rec.DaysOverdue,
		nullStatus(rec.PaymentStatus),
		rec.PenaltyAmount.Round(2),
		rec.ID,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update payment record %d: %w", rec.ID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// Delete removes one record. Returns false when the id does not exist.
func (r *RecordRepository) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM payment_records WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete payment record %d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected > 0, nil
}

// DeleteAll empties the store.
func (r *RecordRepository) DeleteAll(ctx context.Context) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM payment_records`); err != nil {
			return fmt.Errorf("failed to delete payment records: %w", err)
		}
		return nil
	})
}

// Count returns the number of stored records.
func (r *RecordRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM payment_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count payment records: %w", err)
	}
	return count, nil
}
