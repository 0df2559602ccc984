package postgres

// Schema is the DDL for the payment record store. Both the sqlx-backed
// repository and the pgx-based seed tool create the same layout: one row
// per supplier payment cycle, derived columns nullable.
const Schema = `
CREATE TABLE IF NOT EXISTS payment_records (
	id                 BIGSERIAL PRIMARY KEY,
	supplier_name      TEXT NOT NULL,
	order_date         DATE NOT NULL,
	order_amount       NUMERIC(14,2) NOT NULL,
	receipt_date       DATE,
	payment_date       DATE,
	payment_delay_days INTEGER,
	days_overdue       INTEGER,
	payment_status     VARCHAR(20),
	penalty_amount     NUMERIC(14,2),
	created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE INDEX IF NOT EXISTS idx_payment_records_supplier
	ON payment_records (supplier_name);
CREATE INDEX IF NOT EXISTS idx_payment_records_order_date
	ON payment_records (order_date);
`
