package db

import (
	"database/sql"
	"fmt"
)

// migrations are applied in order and must be idempotent.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS session (
		id         INTEGER PRIMARY KEY CHECK(id = 1),
		token      TEXT NOT NULL,
		emp_id     TEXT NOT NULL,
		role       TEXT NOT NULL DEFAULT '',
		profile    TEXT NOT NULL DEFAULT '{}',
		saved_at   TEXT NOT NULL
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
