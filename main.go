package main

import (
	"fmt"
	"os"
	"time"

	"ubi-analysis/config"
	"ubi-analysis/models"
	"ubi-analysis/services"
	"ubi-analysis/storage"
	"ubi-analysis/utils"
)

func main() {
	cfg := config.Load()
	logger := utils.NewLoggerWithLevel(os.Stdout, cfg.LogLevel)

	logger.Info("=== UBI steady-state analysis starting ===")
	logger.Info("Config: baseline %s | reform %s | output %s | postgres %t",
		cfg.BaselineDir, cfg.ReformDir, cfg.OutputDir, cfg.PostgresEnabled)

	loader := storage.NewScenarioLoader(cfg.SSVarsFile, cfg.ParamsFile, logger)
	baseline, err := loader.Load("baseline", cfg.BaselineDir)
	if err != nil {
		logger.Error("Failed to load baseline: %v", err)
		os.Exit(1)
	}
	reform, err := loader.Load("reform", cfg.ReformDir)
	if err != nil {
		logger.Error("Failed to load reform: %v", err)
		os.Exit(1)
	}

	opts := services.DefaultOptions()
	opts.IncomeGroupLabels = cfg.IncomeGroupLabels
	opts.Naming = services.Naming{BaseSuffix: cfg.BaseSuffix, ReformSuffix: cfg.ReformSuffix}
	opts.ShareTolerance = cfg.ShareTolerance
	opts.CompareTolerance = cfg.CompareTolerance
	opts.DisplayDecimals = cfg.DisplayDecimals

	analysis, err := services.NewPipeline(opts, logger).Run(baseline, reform)
	if err != nil {
		logger.Error("Analysis failed: %v", err)
		os.Exit(1)
	}

	csvWriter, err := storage.NewCSVWriter(cfg.OutputDir)
	if err != nil {
		logger.Error("Failed to create CSV writer: %v", err)
		os.Exit(1)
	}
	writers := []storage.TableWriter{csvWriter}

	var pgWriter *storage.PostgresWriter
	if cfg.PostgresEnabled {
		retry := &utils.RetryConfig{MaxAttempts: cfg.MaxRetries, BaseDelay: time.Second, Logger: logger}
		if pgWriter, err = storage.NewPostgresWriter(cfg.DSN(), cfg.PostgresTablePrefix, retry); err != nil {
			logger.Error("Failed to connect to PostgreSQL, exporting CSV only: %v", err)
		} else {
			writers = append(writers, pgWriter)
		}
	}
	defer func() {
		for _, w := range writers {
			w.Close()
		}
	}()

	tables := analysis.Tables()
	if err := storage.ExportTables(writers, tables); err != nil {
		logger.Error("Export failed: %v", err)
		os.Exit(1)
	}
	for _, t := range tables {
		logger.Info("Wrote %d rows to %s", t.Len(), csvWriter.Path(t))
	}
	if pgWriter != nil {
		verifyPostgres(logger, pgWriter, tables)
	}

	if err := services.NewReportPrinter(os.Stdout).Print(analysis); err != nil {
		logger.Warn("Report output failed: %v", err)
	}

	fmt.Printf("  Done. Tables -> %s\n\n", cfg.OutputDir)
}

// verifyPostgres logs the stored row count of each exported table.
func verifyPostgres(logger *utils.Logger, pgWriter *storage.PostgresWriter, tables []*models.Table) {
	for _, t := range tables {
		n, err := pgWriter.Count(t)
		if err != nil {
			logger.Warn("Could not verify %s: %v", pgWriter.TableName(t), err)
			continue
		}
		logger.Info("Stored %d rows in PostgreSQL table %s", n, pgWriter.TableName(t))
	}
}
