package db

import (
	"database/sql"
	"fmt"
)

// migrations is the ordered list of schema statements. Statements are
// idempotent so the full list re-runs safely on every start.
var migrations = []string{
	`CREATE TABLE IF NOT EXISTS drafts (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('task','epic','challenge','event','bill','note')),
		title TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_drafts_user ON drafts(user_id)`,

	`CREATE TABLE IF NOT EXISTS entities (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		kind TEXT NOT NULL CHECK (kind IN ('task','epic','challenge','event','bill','note')),
		title TEXT NOT NULL DEFAULT '',
		payload TEXT NOT NULL,
		source_draft_id TEXT,
		created_at TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_entities_user_kind ON entities(user_id, kind)`,
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
