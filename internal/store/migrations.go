/*
  File: migrations.go
  Purpose: Database schema migration system using golang-migrate.
  Author: taikocss project
  Notes: Uses golang-migrate/migrate with embedded SQL files so the cache
         schema can evolve without manual intervention.
*/

package store

import (
	"embed"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations executes all pending migrations against the cache
// database.
func (s *RuleStore) runMigrations() error {
	sourceDriver, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to create migration source: %w", err)
	}

	// NoTxWrap keeps the shared connection open across migrations.
	dbDriver, err := sqlite.WithInstance(s.db, &sqlite.Config{
		NoTxWrap: true,
	})
	if err != nil {
		return fmt.Errorf("failed to create database driver: %w", err)
	}

	m, err := migrate.NewWithInstance(
		"iofs",
		sourceDriver,
		"sqlite",
		dbDriver,
	)
	if err != nil {
		return fmt.Errorf("failed to create migrate instance: %w", err)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	return nil
}
