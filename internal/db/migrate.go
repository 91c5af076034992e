package db

import (
	"database/sql"
	"fmt"
)

// migrations are idempotent schema statements, run in order on every
// startup.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schedules (
		user_id       TEXT NOT NULL,
		schedule_date TEXT NOT NULL,
		schedule      TEXT NOT NULL DEFAULT '[]',
		unscheduled   TEXT NOT NULL DEFAULT '[]',
		mood          TEXT NOT NULL DEFAULT 'unknown',
		last_updated  TEXT NOT NULL,
		PRIMARY KEY (user_id, schedule_date)
	)`,
}

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}
