// Package store persists raw gate records in SQLite, keyed by issue key.
// The store holds rows exactly as uploaded; normalization is re-applied after
// retrieval so policy changes never require a migration.
package store

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"qagate/internal/models"
)

const schema = `
CREATE TABLE IF NOT EXISTS gate_records (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	issue_key TEXT UNIQUE NOT NULL,
	summary TEXT,
	assignee TEXT,
	created TEXT,
	start_quantity TEXT,
	rejected_quantity TEXT,
	conclusion TEXT,
	rejected_sensors TEXT,
	inserted_at TEXT DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS ingested_files (
	checksum TEXT PRIMARY KEY,
	name TEXT,
	inserted_at TEXT DEFAULT CURRENT_TIMESTAMP
);
`

// Store is a SQLite-backed record store.
type Store struct {
	db *sql.DB
}

// Open opens or creates the store at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()

		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// OpenMemory opens an in-memory store for testing.
func OpenMemory() (*Store, error) {
	return Open(":memory:")
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// InsertRecords inserts raw rows with deduplication on issue key. An existing
// key is a counted no-op. Rows without an issue key are ignored entirely.
func (s *Store) InsertRecords(raws []models.RawRecord) (newCount, dupCount int, err error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT INTO gate_records (
			issue_key, summary, assignee, created,
			start_quantity, rejected_quantity, conclusion, rejected_sensors
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(issue_key) DO NOTHING`)
	if err != nil {
		return 0, 0, fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, raw := range raws {
		if raw.IssueKey == "" {
			continue
		}

		res, err := stmt.Exec(
			raw.IssueKey, raw.Summary, raw.Assignee, raw.Created,
			raw.StartQuantity, raw.RejectedQuantity, raw.Conclusion, raw.RejectedSensors,
		)
		if err != nil {
			return 0, 0, fmt.Errorf("failed to insert %s: %w", raw.IssueKey, err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, 0, fmt.Errorf("failed to read insert result: %w", err)
		}

		if affected == 0 {
			dupCount++
		} else {
			newCount++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, 0, fmt.Errorf("failed to commit: %w", err)
	}

	return newCount, dupCount, nil
}

// AllRecords returns every stored raw row, newest created first.
func (s *Store) AllRecords() ([]models.RawRecord, error) {
	rows, err := s.db.Query(`
		SELECT issue_key, summary, assignee, created,
			start_quantity, rejected_quantity, conclusion, rejected_sensors
		FROM gate_records
		ORDER BY created DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var raws []models.RawRecord

	for rows.Next() {
		var raw models.RawRecord
		if err := rows.Scan(
			&raw.IssueKey, &raw.Summary, &raw.Assignee, &raw.Created,
			&raw.StartQuantity, &raw.RejectedQuantity, &raw.Conclusion, &raw.RejectedSensors,
		); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}

		raws = append(raws, raw)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate records: %w", err)
	}

	return raws, nil
}

// Count returns the number of stored records.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM gate_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count records: %w", err)
	}

	return count, nil
}

// ClearAll deletes every record and file fingerprint.
func (s *Store) ClearAll() error {
	if _, err := s.db.Exec(`DELETE FROM gate_records`); err != nil {
		return fmt.Errorf("failed to clear records: %w", err)
	}

	if _, err := s.db.Exec(`DELETE FROM ingested_files`); err != nil {
		return fmt.Errorf("failed to clear file fingerprints: %w", err)
	}

	return nil
}

// SeenFile reports whether a file fingerprint was already ingested.
func (s *Store) SeenFile(sum string) (bool, error) {
	var one int

	err := s.db.QueryRow(`SELECT 1 FROM ingested_files WHERE checksum = ?`, sum).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to look up fingerprint: %w", err)
	}

	return true, nil
}

// RecordFile remembers a file fingerprint so identical uploads can be skipped.
func (s *Store) RecordFile(sum, name string) error {
	if _, err := s.db.Exec(
		`INSERT INTO ingested_files (checksum, name) VALUES (?, ?)
		 ON CONFLICT(checksum) DO NOTHING`, sum, name,
	); err != nil {
		return fmt.Errorf("failed to record fingerprint: %w", err)
	}

	return nil
}
