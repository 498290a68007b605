/*
  File: rule_store.go
  Purpose: SQLite-based cache of extracted CSS rules across builds.
  Author: taikocss project
  Notes: The transform core is stateless; this store is the host-side
         memory. Rules are keyed by content hash, and per-build emission
         records note which hashes each source file produced.
*/

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// RuleStore manages persistent storage of extracted rules and the
// file-to-hash emission map.
type RuleStore struct {
	db *sql.DB
}

// CachedRule is one stored rule.
type CachedRule struct {
	Hash      string `json:"hash"`
	Kind      string `json:"kind"` // component, global, or kf
	CSS       string `json:"css"`
	CreatedAt string `json:"created_at"`
}

// NewRuleStore opens (or creates) the cache database at dbPath and brings
// its schema up to date.
func NewRuleStore(dbPath string) (*RuleStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	store := &RuleStore{db: db}
	if err := store.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return store, nil
}

// Close releases the database connection.
func (s *RuleStore) Close() error {
	return s.db.Close()
}

// BeginBuild allocates a build identifier for emission records.
func (s *RuleStore) BeginBuild() string {
	return uuid.NewString()
}

// PutRule inserts a rule, ignoring duplicates by hash and kind. Returns
// true when the rule was new to the cache.
func (s *RuleStore) PutRule(hash, kind, css string) (bool, error) {
	result, err := s.db.Exec(
		`INSERT OR IGNORE INTO rules (hash, kind, css, created_at) VALUES (?, ?, ?, ?)`,
		hash, kind, css, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return false, fmt.Errorf("failed to store rule %s: %w", hash, err)
	}
	inserted, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read insert result: %w", err)
	}
	return inserted > 0, nil
}

// GetRule fetches a cached rule by hash and kind.
func (s *RuleStore) GetRule(hash, kind string) (*CachedRule, error) {
	row := s.db.QueryRow(
		`SELECT hash, kind, css, created_at FROM rules WHERE hash = ? AND kind = ?`,
		hash, kind,
	)
	var rule CachedRule
	if err := row.Scan(&rule.Hash, &rule.Kind, &rule.CSS, &rule.CreatedAt); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load rule %s: %w", hash, err)
	}
	return &rule, nil
}

// RecordEmission notes that a source file produced a hash during a build.
func (s *RuleStore) RecordEmission(buildID, file, hash string) error {
	_, err := s.db.Exec(
		`INSERT INTO emissions (build_id, file, hash) VALUES (?, ?, ?)`,
		buildID, file, hash,
	)
	if err != nil {
		return fmt.Errorf("failed to record emission for %s: %w", file, err)
	}
	return nil
}

// EmittedHashes lists the hashes a file produced in a build, in insertion
// order. The CLI does not call it; stale artifacts are not removed.
func (s *RuleStore) EmittedHashes(buildID, file string) ([]string, error) {
	rows, err := s.db.Query(
		`SELECT hash FROM emissions WHERE build_id = ? AND file = ? ORDER BY rowid`,
		buildID, file,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list emissions for %s: %w", file, err)
	}
	defer rows.Close()

	var hashes []string
	for rows.Next() {
		var hash string
		if err := rows.Scan(&hash); err != nil {
			return nil, fmt.Errorf("failed to scan emission: %w", err)
		}
		hashes = append(hashes, hash)
	}
	return hashes, rows.Err()
}

// ClearEmissions drops a file's emission records, across all builds,
// before the file is transformed again (in build and watch alike).
func (s *RuleStore) ClearEmissions(file string) error {
	_, err := s.db.Exec(`DELETE FROM emissions WHERE file = ?`, file)
	if err != nil {
		return fmt.Errorf("failed to clear emissions for %s: %w", file, err)
	}
	return nil
}

// RuleCount reports how many distinct rules the cache holds.
func (s *RuleStore) RuleCount() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM rules`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count rules: %w", err)
	}
	return count, nil
}
