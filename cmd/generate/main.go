package main

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"time"

	"github.com/shopspring/decimal"

	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/internal/generator"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
)

// generate writes the synthetic dataset to CSV and, when requested, a
// sqlite database the API can serve from.
func main() {
	var (
		startFlag  = flag.String("start", "2020-01-01", "first calendar day (YYYY-MM-DD)")
		endFlag    = flag.String("end", "2024-10-31", "last calendar day (YYYY-MM-DD)")
		seedFlag   = flag.Int64("seed", 42, "random seed")
		csvFlag    = flag.String("csv", "data/raw/ethiopia_sales_raw.csv", "CSV output path")
		sqliteFlag = flag.String("sqlite", "", "optional sqlite output path")
	)
	flag.Parse()

	logg := logger.New(logger.Options{ServiceName: "generate"})
	ctx := context.Background()

	start, err := time.Parse("2006-01-02", *startFlag)
	if err != nil {
		logg.Error(ctx, "invalid start date", err)
		os.Exit(1)
	}
	end, err := time.Parse("2006-01-02", *endFlag)
	if err != nil {
		logg.Error(ctx, "invalid end date", err)
		os.Exit(1)
	}

	rows, err := generator.Generate(generator.Config{
		Start: start.UTC(),
		End:   end.UTC(),
		Seed:  *seedFlag,
	})
	if err != nil {
		logg.Error(ctx, "failed to generate dataset", err)
		os.Exit(1)
	}

	if err := writeCSV(*csvFlag, rows); err != nil {
		logg.Error(ctx, "failed to write csv", err)
		os.Exit(1)
	}

	if *sqliteFlag != "" {
		if err := writeSQLite(*sqliteFlag, rows); err != nil {
			logg.Error(ctx, "failed to write sqlite", err)
			os.Exit(1)
		}
	}

	total := decimal.Zero
	for _, tx := range rows {
		total = total.Add(decimal.NewFromFloat(tx.TotalSales))
	}
	ctx = logg.WithFields(ctx, map[string]any{
		"transactions": len(rows),
		"start":        *startFlag,
		"end":          *endFlag,
		"seed":         *seedFlag,
		"total_sales":  total.Round(2).String(),
		"csv":          *csvFlag,
	})
	if *sqliteFlag != "" {
		ctx = logg.WithField(ctx, "sqlite", *sqliteFlag)
	}
	logg.Info(ctx, "dataset generated")
}

func writeCSV(path string, rows []dataset.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()
	return dataset.WriteCSV(file, rows)
}

func writeSQLite(path string, rows []dataset.Transaction) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	store, err := dataset.OpenSQLite(path)
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(); err != nil {
		return err
	}
	return store.Replace(rows)
}
