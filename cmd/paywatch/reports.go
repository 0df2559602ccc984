// cmd/paywatch/reports.go
package main

import (
	"fmt"
	"math/rand"
	"path/filepath"
	"strings"
	"time"

	"github.com/andresuchdata/paywatch/internal/analysis"
	"github.com/andresuchdata/paywatch/internal/cache"
	"github.com/andresuchdata/paywatch/internal/config"
	"github.com/andresuchdata/paywatch/internal/domain"
	"github.com/andresuchdata/paywatch/internal/export"
	"github.com/andresuchdata/paywatch/internal/ratio"
	"github.com/andresuchdata/paywatch/internal/sample"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func exportCommand() *cli.Command {
	return &cli.Command{
		Name:  "export",
		Usage: "Export all records to an xlsx or csv file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output path; written under the export dir when relative, format from extension",
				Value: "paywatch_export.xlsx",
			},
		},
		Action: func(c *cli.Context) error {
			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			records := store.ReadAll(c.Context)
			if len(records) == 0 {
				return fmt.Errorf("nothing to export: no records stored")
			}

			path := exportPath(c.String("out"))
			switch strings.ToLower(filepath.Ext(path)) {
			case ".xlsx":
				err = export.WriteRecordsXLSX(path, records)
			case ".csv":
				err = export.WriteRecordsCSV(path, records)
			default:
				return fmt.Errorf("unsupported export format %q, expected .xlsx or .csv", filepath.Ext(path))
			}
			if err != nil {
				return err
			}

			fmt.Printf("exported %d records to %s\n", len(records), path)
			return nil
		},
	}
}

func reportCommand() *cli.Command {
	return &cli.Command{
		Name:  "report",
		Usage: "Write the full audit report workbook (summary, non-compliant, trend, supplier risk)",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "out",
				Usage: "Output path for the xlsx report",
				Value: "paywatch_audit.xlsx",
			},
		},
		Action: func(c *cli.Context) error {
			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			workset := cache.NewWorkset(store)
			workset.Refresh(c.Context)
			records := workset.Records()
			if len(records) == 0 {
				return fmt.Errorf("nothing to report: no records stored")
			}

			summary := analysis.Summarize(records)
			nonCompliant := analysis.NonCompliant(records)
			trend := analysis.MonthlyTrend(records)
			risk := analysis.SupplierRiskTable(records)

			path := exportPath(c.String("out"))
			if err := export.WriteAuditReportXLSX(path, summary, nonCompliant, trend, risk); err != nil {
				return err
			}

			fmt.Printf("audit report written to %s (%d records, %d non-compliant)\n",
				path, summary.TotalRecords, summary.LateRecords)
			return nil
		},
	}
}

func summaryCommand() *cli.Command {
	return &cli.Command{
		Name:  "summary",
		Usage: "Print the compliance summary",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "refresh",
				Usage: "Recompute even when a cached summary exists",
			},
		},
		Action: func(c *cli.Context) error {
			cfg := config.Load()

			summaryCache, err := cache.NewSummaryCache(cfg.Cache)
			if err != nil {
				log.Warn().Err(err).Msg("summary cache unavailable, computing directly")
				summaryCache = cache.NewNoopSummaryCache()
			}

			if !c.Bool("refresh") {
				if cached, ok, err := summaryCache.Get(c.Context); err == nil && ok {
					printSummary(*cached, true)
					return nil
				}
			}

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

			summary := analysis.Summarize(records)
			if err := summaryCache.Set(c.Context, &summary); err != nil {
				log.Warn().Err(err).Msg("failed to cache summary")
			}

			printSummary(summary, false)
			return nil
		},
	}
}

func printSummary(s domain.ComplianceSummary, fromCache bool) {
	if fromCache {
		fmt.Println("(cached)")
	}
	fmt.Printf("Records:          %d\n", s.TotalRecords)
	fmt.Printf("Late:             %d\n", s.LateRecords)
	fmt.Printf("Compliance rate:  %.1f%%\n", s.ComplianceRate)
	fmt.Printf("Mean delay:       %.1f days\n", s.MeanDelayDays)
	fmt.Printf("Unpaid amount:    %s\n", s.UnpaidAmount.StringFixed(2))
	fmt.Printf("On-time amount:   %s\n", s.OnTimeAmount.StringFixed(2))
	fmt.Printf("Total penalties:  %s\n", s.TotalPenalties.StringFixed(2))
	if s.WorstSupplier != "" {
		fmt.Printf("Worst supplier:   %s\n", s.WorstSupplier)
	}
	if s.AnomalousCount > 0 {
		fmt.Printf("Anomalous dates:  %d\n", s.AnomalousCount)
	}
	fmt.Printf("Audit position:   %s\n", s.Position)
}

func ratiosCommand() *cli.Command {
	return &cli.Command{
		Name:  "ratios",
		Usage: "Compute BFR, DPO, cash ratio and current ratio from balance-sheet figures",
		Flags: []cli.Flag{
			&cli.Float64Flag{Name: "stock", Usage: "Inventory value"},
			&cli.Float64Flag{Name: "receivables", Usage: "Accounts receivable"},
			&cli.Float64Flag{Name: "payables", Usage: "Accounts payable"},
			&cli.Float64Flag{Name: "cash", Usage: "Cash and equivalents"},
			&cli.Float64Flag{Name: "current-assets", Usage: "Total current assets"},
			&cli.Float64Flag{Name: "current-liabilities", Usage: "Total current liabilities"},
			&cli.Float64Flag{Name: "purchases", Usage: "Annual purchases"},
		},
		Action: func(c *cli.Context) error {
			in := domain.RatioInputs{
				Stock:              decimal.NewFromFloat(c.Float64("stock")),
				Receivables:        decimal.NewFromFloat(c.Float64("receivables")),
				Payables:           decimal.NewFromFloat(c.Float64("payables")),
				Cash:               decimal.NewFromFloat(c.Float64("cash")),
				CurrentAssets:      decimal.NewFromFloat(c.Float64("current-assets")),
				CurrentLiabilities: decimal.NewFromFloat(c.Float64("current-liabilities")),
				Purchases:          decimal.NewFromFloat(c.Float64("purchases")),
			}

			results := ratio.Compute(in)
			fmt.Printf("BFR:            %s\n", results.BFR.StringFixed(2))
			fmt.Printf("DPO:            %s days\n", results.DPO.StringFixed(1))
			fmt.Printf("Cash ratio:     %s\n", results.CashRatio.StringFixed(2))
			fmt.Printf("Current ratio:  %s\n", results.CurrentRatio.StringFixed(2))
			return nil
		},
	}
}

func sampleCommand() *cli.Command {
	return &cli.Command{
		Name:  "sample",
		Usage: "Generate and import demo records",
		Flags: []cli.Flag{
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
		Action: func(c *cli.Context) error {
			seed := c.Int64("seed")
			if !c.IsSet("seed") {
				seed = time.Now().UnixNano()
			}
			rng := rand.New(rand.NewSource(seed))

			records := sample.Generate(c.Int("count"), time.Now(), rng)

			store, db, err := openStore()
			if err != nil {
				return err
			}
			defer db.Close()

			succeeded, failed := store.ImportRecords(c.Context, records)
			fmt.Printf("%d sample records imported (%d failed)\n", succeeded, failed)
			return nil
		},
	}
}

// exportPath resolves a relative output path against the configured export dir.
func exportPath(out string) string {
	if filepath.IsAbs(out) {
		return out
	}
	return filepath.Join(config.Load().App.ExportDir, out)
}
