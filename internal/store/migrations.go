package store

import (
	"fmt"
)

type migration struct {
	Version     int
	Description string
	SQL         string
}

var migrations = []migration{
	{
		Version:     1,
		Description: "items: captured commitments",
		SQL: `
CREATE TABLE items (
    id              TEXT PRIMARY KEY,
    description     TEXT NOT NULL,
    status          TEXT NOT NULL DEFAULT 'open' CHECK (status IN ('open', 'done')),

    added_at        INTEGER NOT NULL,
    last_touched_at INTEGER NOT NULL,
    completed_at    INTEGER
);

CREATE INDEX idx_items_status  ON items(status);
CREATE INDEX idx_items_touched ON items(last_touched_at DESC);
CREATE INDEX idx_items_added   ON items(added_at DESC);
`,
	},
	{
		Version:     2,
		Description: "notes: debrief and free-form notes, optionally tied to an item",
		SQL: `
CREATE TABLE notes (
    id         INTEGER PRIMARY KEY,
    item_id    TEXT,
    title      TEXT NOT NULL,
    body       TEXT,
    created_at INTEGER NOT NULL,

    FOREIGN KEY (item_id) REFERENCES items(id)
);

CREATE INDEX idx_notes_item    ON notes(item_id);
CREATE INDEX idx_notes_created ON notes(created_at DESC);
`,
	},
	{
		Version:     3,
		Description: "reviews: daily and weekly review history",
		SQL: `
CREATE TABLE reviews (
    id           INTEGER PRIMARY KEY,
    kind         TEXT NOT NULL CHECK (kind IN ('daily', 'weekly')),
    period_start INTEGER NOT NULL,
    period_end   INTEGER NOT NULL,
    summary      TEXT,
    created_at   INTEGER NOT NULL
);

CREATE INDEX idx_reviews_kind    ON reviews(kind);
CREATE INDEX idx_reviews_created ON reviews(created_at DESC);
`,
	},
}

func (db *DB) migrate() error {
	// Create schema_versions table if it doesn't exist
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_versions (
			version     INTEGER PRIMARY KEY,
			description TEXT NOT NULL,
			applied_at  INTEGER NOT NULL DEFAULT (strftime('%s', 'now') * 1000)
		)
	`)
	if err != nil {
		return fmt.Errorf("create schema_versions: %w", err)
	}

	for _, m := range migrations {
		var count int
		err := db.QueryRow("SELECT COUNT(*) FROM schema_versions WHERE version = ?", m.Version).Scan(&count)
		if err != nil {
			return fmt.Errorf("check migration %d: %w", m.Version, err)
		}
		if count > 0 {
			continue
		}

		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", m.Version, err)
		}

		if _, err := tx.Exec(m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("migration %d (%s): %w", m.Version, m.Description, err)
		}

		if _, err := tx.Exec(
			"INSERT INTO schema_versions (version, description) VALUES (?, ?)",
			m.Version, m.Description,
		); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %d: %w", m.Version, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", m.Version, err)
		}
	}

	return nil
}

// SchemaVersion returns the current schema version.
func (db *DB) SchemaVersion() (int, error) {
	var version int
	err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_versions").Scan(&version)
	return version, err
}
