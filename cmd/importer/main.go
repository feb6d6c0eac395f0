// Package main provides the importer command that loads QC gate CSV exports
// into the local record store, deduplicating by issue key and file checksum.
package main

import (
	"flag"
	"fmt"
	"os"

	"qagate/internal/config"
	"qagate/internal/ingest"
	"qagate/internal/logger"
	"qagate/internal/store"
	"qagate/pkg/checksum"
)

func main() {
	inputPath := flag.String("input", "", "Path to the tracker CSV export")
	configPath := flag.String("config", "", "Path to YAML config (optional, defaults apply)")
	dbPath := flag.String("db", "", "Record store path (overrides config)")
	force := flag.Bool("force", false, "Import even if this file was already ingested")
	flag.Parse()

	if *inputPath == "" {
		fmt.Println("Usage: importer -input <export.csv> [-config <config.yaml>] [-db <store.db>] [-force]")
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

	if *dbPath != "" {
		cfg.Storage.Path = *dbPath
	}

	log := logger.NewLogger(cfg.Logging.Level)

	log.Info("🚀 Starting QA gate import")
	log.Info(fmt.Sprintf("📂 Source: %s", *inputPath))
	log.Info(fmt.Sprintf("🗄️  Store: %s", cfg.Storage.Path))

	// 1. Fingerprint the file
	// -----------------------
	sum, err := checksum.File(*inputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Checksum failed: %v", err))
		os.Exit(1)
	}

	db, err := store.Open(cfg.Storage.Path)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Store open failed: %v", err))
		os.Exit(1)
	}
	defer db.Close()

	seen, err := db.SeenFile(sum)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Fingerprint lookup failed: %v", err))
		os.Exit(1)
	}

	if seen && !*force {
		log.Info(fmt.Sprintf("⏭️  File %s already ingested (checksum %s), use -force to re-import", *inputPath, sum))
		return
	}

	// 2. Read the CSV
	// ---------------
	result, err := ingest.ReadFile(*inputPath)
	if err != nil {
		log.Error(fmt.Sprintf("❌ CSV read failed: %v", err))
		os.Exit(1)
	}

	if result.Skipped > 0 {
		log.Warn(fmt.Sprintf("⚠️  Skipped %d rows without an issue key", result.Skipped))
	}

	// 3. Insert with dedup
	// --------------------
	newCount, dupCount, err := db.InsertRecords(result.Records)
	if err != nil {
		log.Error(fmt.Sprintf("❌ Insert failed: %v", err))
		os.Exit(1)
	}

	if err := db.RecordFile(sum, *inputPath); err != nil {
		log.Error(fmt.Sprintf("❌ Fingerprint record failed: %v", err))
		os.Exit(1)
	}

	log.Info(fmt.Sprintf("✅ Imported %d new records, %d duplicates skipped", newCount, dupCount))
}
