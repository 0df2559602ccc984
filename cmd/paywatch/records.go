// cmd/paywatch/records.go
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/andresuchdata/paywatch/internal/normalize"
	"github.com/urfave/cli/v2"
)

func importCommand() *cli.Command {
	return &cli.Command{
		Name:      "import",
		Usage:     "Import supplier payment records from an xlsx or csv file",
		ArgsUsage: "<file>",
		Action: func(c *cli.Context) error {
			if c.NArg() != 1 {
				return fmt.Errorf("expected exactly one file argument")
			}
			path := c.Args().First()

			var (
				rows []normalize.Row
				err  error
			)
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx":
				rows, err = normalize.ReadXLSX(path)
			case ".csv":
				rows, err = normalize.ReadCSVFile(path)
			default:
				return fmt.Errorf("unsupported file type %q, expected .xlsx or .csv", filepath.Ext(path))
			}
			if err != nil {
				return err
			}

			records, rejections := normalize.Normalize(rows)
			return runImport(c, records, rejections)
		},
	}
}

func quickImportCommand() *cli.Command {
	return &cli.Command{
		Name:  "quick-import",
		Usage: "Import records pasted as 'supplier, order DD/MM/YYYY, amount[, receipt[, payment]]' lines (stdin or --text)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "text",
				Usage: "Lines to import; reads stdin when omitted",
			},
		},
		Action: func(c *cli.Context) error {
			text := c.String("text")
			if text == "" {
				data, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("failed to read stdin: %w", err)
				}
				text = string(data)
			}

			rows, lineRejections := normalize.ParseQuickLines(text)
			records, rejections := normalize.Normalize(rows)
			return runImport(c, records, append(lineRejections, rejections...))
		},
	}
}

// runImport persists normalized records and reports partial success.
func runImport(c *cli.Context, records []domain.PaymentRecord, rejections []normalize.Rejection) error {
	store, db, err := openStore()
	if err != nil {
		return err
	}
	defer db.Close()

	succeeded, failed := store.ImportRecords(c.Context, records)
	total := len(records) + len(rejections)

	fmt.Printf("%d of %d rows imported (%d rejected, %d failed to persist)\n",
		succeeded, total, len(rejections), failed)
	printRejections(rejections)

	return nil
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:  "add",
		Usage: "Add a single supplier payment record",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "supplier", Usage: "Supplier name", Required: true},
			&cli.StringFlag{Name: "order-date", Usage: "Order date (DD/MM/YYYY)", Required: true},
			&cli.StringFlag{Name: "amount", Usage: "Order amount", Required: true},
			&cli.StringFlag{Name: "receipt-date", Usage: "Receipt date (DD/MM/YYYY)"},
			&cli.StringFlag{Name: "payment-date", Usage: "Payment date (DD/MM/YYYY); omit for unpaid orders"},
		},
		Action: func(c *cli.Context) error {
			row := normalize.Row{
				normalize.ColSupplier:    c.String("supplier"),
				normalize.ColOrderDate:   c.String("order-date"),
				normalize.ColOrderAmount: c.String("amount"),
			}
			if c.IsSet("receipt-date") {
				row[normalize.ColReceiptDate] = c.String("receipt-date")
			}
			if c.IsSet("payment-date") {
				row[normalize.ColPaymentDate] = c.String("payment-date")
			}

			records, rejections := normalize.Normalize([]normalize.Row{row})
			if len(rejections) > 0 {
				return fmt.Errorf("invalid record: %s", rejections[0].Reason)
			}

			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			id, ok := store.Create(c.Context, records[0])
			if !ok {
				return fmt.Errorf("failed to persist record")
			}
			fmt.Printf("created record %d\n", id)
			return nil
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:  "list",
		Usage: "List all stored payment records",
		Action: func(c *cli.Context) error {
			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			records := store.ReadAll(c.Context)
			if len(records) == 0 {
				fmt.Println("no records")
				return nil
			}

			sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })

			fmt.Printf("%-6s %-24s %-12s %12s %-12s %-16s %8s %10s\n",
				"ID", "Supplier", "Order", "Amount", "Payment", "Status", "Overdue", "Penalty")
			for _, rec := range records {
				payment := "-"
				if rec.PaymentDate != nil {
					payment = rec.PaymentDate.Format("02/01/2006")
				}
				status := "-"
				if rec.PaymentStatus != nil {
					status = rec.PaymentStatus.String()
				}
				if rec.AnomalousChronology {
					status += " (!)"
				}
				fmt.Printf("%-6d %-24s %-12s %12s %-12s %-16s %8d %10s\n",
					rec.ID,
					rec.SupplierName,
					rec.OrderDate.Format("02/01/2006"),
					rec.OrderAmount.StringFixed(2),
					payment,
					status,
					rec.DaysOverdue,
					rec.PenaltyAmount.StringFixed(2),
				)
			}
			return nil
		},
	}
}

func updateCommand() *cli.Command {
	return &cli.Command{
		Name:  "update",
		Usage: "Update base fields of a record; derived fields are recomputed",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Usage: "Record id", Required: true},
			&cli.StringFlag{Name: "supplier", Usage: "Supplier name"},
			&cli.StringFlag{Name: "order-date", Usage: "Order date (DD/MM/YYYY)"},
			&cli.StringFlag{Name: "amount", Usage: "Order amount"},
			&cli.StringFlag{Name: "receipt-date", Usage: "Receipt date (DD/MM/YYYY)"},
			&cli.StringFlag{Name: "payment-date", Usage: "Payment date (DD/MM/YYYY)"},
			&cli.BoolFlag{Name: "clear-receipt-date", Usage: "Remove the receipt date"},
			&cli.BoolFlag{Name: "clear-payment-date", Usage: "Mark the order unpaid"},
		},
		Action: func(c *cli.Context) error {
			patch := domain.RecordPatch{
				ClearReceiptDate: c.Bool("clear-receipt-date"),
				ClearPaymentDate: c.Bool("clear-payment-date"),
			}
			if c.IsSet("supplier") {
				supplier := strings.TrimSpace(c.String("supplier"))
				if supplier == "" {
					return fmt.Errorf("supplier name cannot be empty")
				}
				patch.SupplierName = &supplier
			}
			if d := parseDateFlag(c, "order-date"); d != nil {
				patch.OrderDate = d
			} else if c.IsSet("order-date") {
				return fmt.Errorf("unparseable order date %q", c.String("order-date"))
			}
			if c.IsSet("amount") {
				amount, err := normalize.ParseAmount(c.String("amount"))
				if err != nil {
					return fmt.Errorf("invalid amount: %w", err)
				}
				patch.OrderAmount = &amount
			}
			patch.ReceiptDate = parseDateFlag(c, "receipt-date")
			patch.PaymentDate = parseDateFlag(c, "payment-date")

			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if !store.Update(c.Context, c.Int64("id"), patch) {
				return fmt.Errorf("record %d not found or update failed", c.Int64("id"))
			}
			fmt.Printf("updated record %d\n", c.Int64("id"))
			return nil
		},
	}
}

func deleteCommand() *cli.Command {
	return &cli.Command{
		Name:  "delete",
		Usage: "Permanently delete one record",
		Flags: []cli.Flag{
			&cli.Int64Flag{Name: "id", Usage: "Record id", Required: true},
		},
		Action: func(c *cli.Context) error {
			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if !store.Delete(c.Context, c.Int64("id")) {
				return fmt.Errorf("record %d not found or delete failed", c.Int64("id"))
			}
			fmt.Printf("deleted record %d\n", c.Int64("id"))
			return nil
		},
	}
}

func clearCommand() *cli.Command {
	return &cli.Command{
		Name:  "clear",
		Usage: "Permanently delete ALL records",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "yes",
				Usage: "Confirm deletion of every stored record",
			},
		},
		Action: func(c *cli.Context) error {
			if !c.Bool("yes") {
				return fmt.Errorf("refusing to delete all records without --yes")
			}

			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			if !store.DeleteAll(c.Context) {
				return fmt.Errorf("failed to delete records")
			}
			fmt.Println("all records deleted")
			return nil
		},
	}
}
