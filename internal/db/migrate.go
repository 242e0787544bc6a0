package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is re-applied on each open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN has no IF NOT EXISTS form in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS studies (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`ALTER TABLE studies ADD COLUMN description TEXT NOT NULL DEFAULT ''`,

	`CREATE TABLE IF NOT EXISTS measurements (
		id          TEXT PRIMARY KEY,
		study_id    TEXT NOT NULL REFERENCES studies(id) ON DELETE CASCADE,
		operator    TEXT NOT NULL CHECK(operator <> ''),
		target      TEXT NOT NULL CHECK(target <> ''),
		time_ms     REAL NOT NULL CHECK(time_ms >= 0),
		recorded_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_measurements_study ON measurements(study_id)`,
	`CREATE INDEX IF NOT EXISTS idx_measurements_cell ON measurements(study_id, target, operator)`,
}
