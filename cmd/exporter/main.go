// Package main provides the exporter command that runs the cleaning pipeline
// over everything in the record store and writes the analysis outputs.
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"qagate/internal/analytics"
	"qagate/internal/config"
	"qagate/internal/export"
	"qagate/internal/logger"
	"qagate/internal/pipeline"
	"qagate/internal/store"
)

func main() {
	configPath := flag.String("config", "", "Path to YAML config (optional, defaults apply)")
	dbPath := flag.String("db", "", "Record store path (overrides config)")
	outDir := flag.String("out", "out", "Output directory for report and CSVs")
	flag.Parse()

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting QA gate export")
	log.Info(fmt.Sprintf("🗄️  Store: %s", cfg.Storage.Path))

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Store open failed: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	raws, err := db.AllRecords()
	if err != nil {
		log.Error(fmt.Sprintf("❌ Store read failed: %v", err))
		os.Exit(1)
	}

	if len(raws) == 0 {
		log.Warn("⚠️  Record store is empty, nothing to export")
		return
	}

	rows, failures := pipeline.New(cfg).Run(raws)

	log.Info(fmt.Sprintf("✅ Cleaned %d rows, extracted %d failure records", len(rows), len(failures)))

	data := export.ReportData{
		GeneratedAt:     time.Now(),
		Summary:         analytics.Summarize(rows, failures, cfg.Thresholds.YieldWarning, cfg.Thresholds.YieldCritical),
		Weekly:          analytics.Weekly(rows),
		Process:         analytics.ByProcessStep(rows),
		Assignees:       analytics.RejectionsByAssignee(rows),
		FailureModes:    analytics.FailureModes(failures, cfg.IsExcludedFailureMode),
		TopFailureModes: cfg.Report.TopFailureModes,
		TopAssignees:    cfg.Report.TopAssignees,
	}

	if err := os.MkdirAll(*outDir, 0755); err != nil {
		log.Error(fmt.Sprintf("❌ Output directory: %v", err))
		os.Exit(1)
	}

	report, err := os.Create(filepath.Join(*outDir, "report.md"))
	if err != nil {
		log.Error(fmt.Sprintf("❌ Write failed: %v", err))
		os.Exit(1)
	}
	defer report.Close()

	if err := export.WriteReport(report, data); err != nil {
		log.Error(fmt.Sprintf("❌ Report render failed: %v", err))
		os.Exit(1)
	}

	cleaned, err := os.Create(filepath.Join(*outDir, "cleaned_records.csv"))
	if err != nil {
		log.Error(fmt.Sprintf("❌ Write failed: %v", err))
		os.Exit(1)
	}
	defer cleaned.Close()

	if err := export.GateRecordsCSV(cleaned, rows); err != nil {
		log.Error(fmt.Sprintf("❌ CSV write failed: %v", err))
		os.Exit(1)
	}

	failuresFile, err := os.Create(filepath.Join(*outDir, "failure_records.csv"))
	if err != nil {
		log.Error(fmt.Sprintf("❌ Write failed: %v", err))
		os.Exit(1)
	}
	defer failuresFile.Close()

	if err := export.FailuresCSV(failuresFile, failures); err != nil {
		log.Error(fmt.Sprintf("❌ CSV write failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Outputs written to %s (overall yield %.2f%%, status %s)",
		*outDir, data.Summary.OverallYieldPct, data.Summary.YieldStatus))
}
