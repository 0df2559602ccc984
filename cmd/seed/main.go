package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/andresuchdata/paywatch/internal/derive"
	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/andresuchdata/paywatch/internal/repository/postgres"
	"github.com/andresuchdata/paywatch/internal/sample"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

func newDBURLFlag() *cli.StringFlag {
	return &cli.StringFlag{
		Name:     "db-url",
		Usage:    "Database connection string",
		Required: true,
		EnvVars:  []string{"DATABASE_URL"},
	}
}

func main() {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: could not load .env file: %v", err)
	}

	app := &cli.App{
		Name:  "seed",
		Usage: "Initialize and seed the payment compliance database",
		Commands: []*cli.Command{
			{
				Name:  "init",
				Usage: "Create the payment_records schema",
				Flags: []cli.Flag{
					newDBURLFlag(),
				},
				Action: runInit,
			},
			{
				Name:  "sample",
				Usage: "Seed generated demo payment records",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of records to generate",
						Value: sample.DefaultCount,
					},
					&cli.Int64Flag{
						Name:  "seed",
						Usage: "Random seed; time-based when omitted",
					},
				},
				Action: runSample,
			},
			{
				Name:  "all",
				Usage: "Create the schema then seed demo records",
				Flags: []cli.Flag{
					newDBURLFlag(),
					&cli.IntFlag{
						Name:  "count",
						Usage: "Number of records to generate",
						Value: sample.DefaultCount,
					},
				},
				Action: func(c *cli.Context) error {
					if err := runInit(c); err != nil {
						return fmt.Errorf("error creating schema: %w", err)
					}
					if err := runSample(c); err != nil {
						return fmt.Errorf("error seeding records: %w", err)
					}
					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func openDB(c *cli.Context) (*sql.DB, error) {
	db, err := sql.Open("pgx", c.String("db-url"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}

func runInit(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	log.Println("Creating payment_records schema...")
	if _, err := db.ExecContext(context.Background(), postgres.Schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	log.Println("Schema ready")
	return nil
}

func runSample(c *cli.Context) error {
	db, err := openDB(c)
	if err != nil {
		return err
	}
	defer db.Close()

	seed := c.Int64("seed")
	if !c.IsSet("seed") {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))
	records := derive.ApplyAll(sample.Generate(c.Int("count"), time.Now(), rng), derive.DefaultParams())

	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	log.Printf("Seeding %d payment records...", len(records))
	for _, rec := range records {
		if err := insertRecord(ctx, tx, rec); err != nil {
			return fmt.Errorf("failed to insert record for %s: %w", rec.SupplierName, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	log.Println("Seeding complete")
	return nil
}

func insertRecord(ctx context.Context, tx *sql.Tx, rec domain.PaymentRecord) error {
	const query = `
		INSERT INTO payment_records (
			supplier_name, order_date, order_amount,
			receipt_date, payment_date,
			payment_delay_days, payment_status, days_overdue, penalty_amount
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	_, err := tx.ExecContext(ctx, query,
		rec.SupplierName,
		rec.OrderDate,
		rec.OrderAmount,
		nullTime(rec.ReceiptDate),
		nullTime(rec.PaymentDate),
		nullInt(rec.PaymentDelayDays),
		nullStatus(rec.PaymentStatus),
		rec.DaysOverdue,
		rec.PenaltyAmount,
	)
	return err
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
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
