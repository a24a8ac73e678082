package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS cases (
		id          TEXT PRIMARY KEY,
		title       TEXT NOT NULL,
		client_name TEXT NOT NULL DEFAULT '',
		category    TEXT NOT NULL,
		status      TEXT NOT NULL DEFAULT 'open'
		            CHECK(status IN ('open','closed')),
		opened_at   TEXT NOT NULL,
		closed_at   TEXT,
		created_at  TEXT NOT NULL,
		updated_at  TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_cases_status ON cases(status)`,

	`CREATE TABLE IF NOT EXISTS service_records (
		id           TEXT PRIMARY KEY,
		case_id      TEXT NOT NULL REFERENCES cases(id) ON DELETE CASCADE,
		service_type TEXT NOT NULL,
		status       TEXT NOT NULL DEFAULT 'pending'
		             CHECK(status IN ('pending','in_progress','completed','cancelled')),
		start_time   TEXT NOT NULL,
		end_time     TEXT,
		created_at   TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_records_case ON service_records(case_id)`,
	`CREATE INDEX IF NOT EXISTS idx_records_start ON service_records(start_time)`,

	`CREATE TABLE IF NOT EXISTS record_dependencies (
		predecessor_record_id TEXT NOT NULL REFERENCES service_records(id) ON DELETE CASCADE,
		successor_record_id   TEXT NOT NULL REFERENCES service_records(id) ON DELETE CASCADE,
		PRIMARY KEY (predecessor_record_id, successor_record_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_record_deps_successor ON record_dependencies(successor_record_id)`,

	// Free-text notes on service records
	`ALTER TABLE service_records ADD COLUMN notes TEXT NOT NULL DEFAULT ''`,
}
