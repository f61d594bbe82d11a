package main

import (
	"context"
	"net/http"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/abenezer-t/bizpredict-backend/api/routes"
	"github.com/abenezer-t/bizpredict-backend/internal/analytics"
	"github.com/abenezer-t/bizpredict-backend/internal/dataset"
	"github.com/abenezer-t/bizpredict-backend/internal/generator"
	"github.com/abenezer-t/bizpredict-backend/pkg/config"
	"github.com/abenezer-t/bizpredict-backend/pkg/logger"
	"github.com/abenezer-t/bizpredict-backend/pkg/metrics"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	table, err := loadTable(cfg, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to load dataset", err)
		os.Exit(1)
	}

	service, err := analytics.NewService(table, cfg.Forecast, logg)
	if err != nil {
		logg.Error(context.Background(), "failed to bootstrap analytics service", err)
		os.Exit(1)
	}

	registry := prometheus.NewRegistry()
	httpMetrics := metrics.NewHTTPMetrics(registry)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	ctx := logg.WithFields(context.Background(), map[string]any{
		"env":          cfg.App.Env,
		"addr":         addr,
		"dataset":      strings.ToLower(cfg.Dataset.Source),
		"transactions": table.Len(),
	})
	logg.Info(ctx, "starting api server")

	server := &http.Server{
		Addr:    addr,
		Handler: routes.NewRouter(cfg, logg, service, httpMetrics, registry),
	}

	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logg.Error(ctx, "api server stopped unexpectedly", err)
		os.Exit(1)
	}
}

// loadTable builds the transaction table from the configured source.
func loadTable(cfg *config.Config, logg *logger.Logger) (*dataset.Table, error) {
	source := strings.ToLower(cfg.Dataset.Source)
	ctx := logg.WithDataset(context.Background(), source)

	switch source {
	case "csv":
		logg.Info(logg.WithField(ctx, "path", cfg.Dataset.CSVPath), "loading dataset from csv")
		return dataset.LoadCSV(cfg.Dataset.CSVPath)
	case "sqlite":
		logg.Info(logg.WithField(ctx, "path", cfg.Dataset.SQLitePath), "loading dataset from sqlite")
		store, err := dataset.OpenSQLite(cfg.Dataset.SQLitePath)
		if err != nil {
			return nil, err
		}
		defer store.Close()
		return store.LoadTable()
	default:
		start, end := cfg.Generator.Range()
		logg.Info(logg.WithFields(ctx, map[string]any{
			"start": cfg.Generator.StartDate,
			"end":   cfg.Generator.EndDate,
			"seed":  cfg.Generator.Seed,
		}), "generating dataset in memory")
		rows, err := generator.Generate(generator.Config{Start: start, End: end, Seed: cfg.Generator.Seed})
		if err != nil {
			return nil, err
		}
		return dataset.NewTable(rows)
	}
}
