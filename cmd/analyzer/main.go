// Package main provides the analyzer command that cleans a tracker CSV export
// and writes the analysis report plus cleaned-data CSVs.
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
	"qagate/internal/ingest"
	"qagate/internal/logger"
	"qagate/internal/models"
	"qagate/internal/pipeline"
)

func main() {
	inputPath := flag.String("input", "", "Path to the tracker CSV export")
	configPath := flag.String("config", "", "Path to YAML config (optional, defaults apply)")
	outDir := flag.String("out", "out", "Output directory for report and CSVs")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: analyzer -input <export.csv> [-config <config.yaml>] [-out <dir>]")
		flag.PrintDefaults()
		os.Exit(1)
	}

	cfg := config.Default()

	if *configPath != "" {
		loaded, err := config.LoadConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "❌ Config error: %v\n", err)
			os.Exit(1)
		}

		cfg = loaded
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting QA gate analysis")
	log.Info(fmt.Sprintf("📂 Source: %s", *inputPath))

	// 1. Ingest
	// ---------
	result, err := ingest.ReadFile(*inputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ CSV read failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Read %d rows (%d skipped)", len(result.Records), result.Skipped))

	// 2. Clean and extract
	// --------------------
	rows, failures := pipeline.New(cfg).Run(result.Records)

	log.Info(fmt.Sprintf("✅ Cleaned %d rows, extracted %d failure records", len(rows), len(failures)))

	// 3. Aggregate and render
	// -----------------------
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

	if err := writeOutputs(*outDir, data, rows, failures); err != nil {
		log.Error(fmt.Sprintf("❌ Write failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Report and CSVs written to %s (overall yield %.2f%%, status %s)",
		*outDir, data.Summary.OverallYieldPct, data.Summary.YieldStatus))
}

func writeOutputs(dir string, data export.ReportData, rows []models.GateRecord, failures []models.FailureRecord) error {
	report, err := os.Create(filepath.Join(dir, "report.md"))
	if err != nil {
		return err
	}
	defer report.Close()

	if err := export.WriteReport(report, data); err != nil {
		return err
	}

	cleaned, err := os.Create(filepath.Join(dir, "cleaned_records.csv"))
	if err != nil {
		return err
	}
	defer cleaned.Close()

	if err := export.GateRecordsCSV(cleaned, rows); err != nil {
		return err
	}

	failuresFile, err := os.Create(filepath.Join(dir, "failure_records.csv"))
	if err != nil {
		return err
	}
	defer failuresFile.Close()

	return export.FailuresCSV(failuresFile, failures)
}
