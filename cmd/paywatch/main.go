// cmd/paywatch/main.go
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/andresuchdata/paywatch/internal/config"
	"github.com/andresuchdata/paywatch/internal/derive"
	"github.com/andresuchdata/paywatch/internal/normalize"
	"github.com/andresuchdata/paywatch/internal/repository/postgres"
	"github.com/andresuchdata/paywatch/internal/service"
	"github.com/andresuchdata/paywatch/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.App.LogLevel)

	app := &cli.App{
		Name:  "paywatch",
		Usage: "Supplier payment compliance tracking (Law 69-21)",
		Commands: []*cli.Command{
			importCommand(),
			quickImportCommand(),
			addCommand(),
			listCommand(),
			updateCommand(),
			deleteCommand(),
			clearCommand(),
			exportCommand(),
			reportCommand(),
			summaryCommand(),
			ratiosCommand(),
			sampleCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("command failed")
	}
}

// openStore builds the record store from configuration. The caller must
// close the returned DB.
func openStore() (*service.RecordStore, *postgres.DB, error) {
	cfg := config.Load()

	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	params := derive.Params{
		StandardDelayDays: cfg.Compliance.StandardDelayDays,
		InterestRate:      decimal.NewFromFloat(cfg.Compliance.InterestRate),
	}

	return service.NewRecordStore(postgres.NewRecordRepository(db), params), db, nil
}

// parseDateFlag parses an optional DD/MM/YYYY (or ISO) date flag value.
func parseDateFlag(c *cli.Context, name string) *time.Time {
	if !c.IsSet(name) {
		return nil
	}
	return normalize.ParseDate(c.String(name))
}

func printRejections(rejections []normalize.Rejection) {
	const maxShown = 5
	for i, rej := range rejections {
		if i == maxShown {
			fmt.Printf("... and %d more rejected rows\n", len(rejections)-maxShown)
			break
		}
		fmt.Printf("rejected %s\n", rej)
	}
}
