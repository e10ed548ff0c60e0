package main

import (
	"log"
	"net/http"

	"github.com/joho/godotenv"

	"sgsalary/internal"
	"sgsalary/internal/analytics"
	"sgsalary/internal/config"
	"sgsalary/internal/pipeline"
	"sgsalary/ui"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	logger := internal.DefaultLogger

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("configuration error: %v", err)
	}

	logger.Info("Loading dataset from %s", cfg.Data.DatasetFile)
	result, err := pipeline.LoadAndClean(cfg.Data.DatasetFile, pipeline.Options{
		SalaryBandMin: cfg.Pipeline.SalaryBandMin,
		SalaryBandMax: cfg.Pipeline.SalaryBandMax,
	})
	if err != nil {
		log.Fatalf("dataset load failed: %v", err)
	}

	report := result.Report
	logger.Info("Dataset cleaned: %d of %d rows kept (%d dropped: %d coercion, %d inverted bounds, %d out of band, %d non-monthly; %d without salary)",
		report.RowsKept, report.RowsIn, report.Dropped(),
		report.DroppedCoercion, report.DroppedInvertedBounds,
		report.DroppedOutOfBand, report.DroppedNonMonthly,
		report.MissingSalary)

	app, err := ui.NewApp(result, analytics.Options{
		MinSampleSize:  cfg.Pipeline.MinSampleSize,
		DemandMinCount: cfg.Pipeline.DemandMinCount,
	})
	if err != nil {
		log.Fatalf("dashboard setup failed: %v", err)
	}

	addr := ":" + cfg.Server.Port
	logger.Info("Dashboard API listening on %s", addr)
	if err := http.ListenAndServe(addr, app.Router()); err != nil {
		log.Fatalf("server failed: %v", err)
	}
}
