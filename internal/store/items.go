package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Item is a captured commitment. Timestamps are stored as Unix millis;
// the accessors below convert at the boundary.
type Item struct {
	ID            string
	Description   string
	Status        string
	AddedAt       int64
	LastTouchedAt int64
	CompletedAt   *int64
}

// Added returns the item's added_at as a time.Time.
func (i *Item) Added() time.Time { return time.UnixMilli(i.AddedAt) }

// LastTouched returns the item's last_touched_at as a time.Time.
func (i *Item) LastTouched() time.Time { return time.UnixMilli(i.LastTouchedAt) }

const itemColumns = "id, description, status, added_at, last_touched_at, completed_at"

func scanItem(row interface{ Scan(...any) error }) (*Item, error) {
	var it Item
	err := row.Scan(&it.ID, &it.Description, &it.Status, &it.AddedAt, &it.LastTouchedAt, &it.CompletedAt)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// CreateItem captures a new open item. A fresh item has last_touched_at
// equal to added_at until progress is recorded.
func (db *DB) CreateItem(description string) (*Item, error) {
	now := time.Now().UnixMilli()
	id := uuid.NewString()

	_, err := db.Exec(`
		INSERT INTO items (id, description, status, added_at, last_touched_at)
		VALUES (?, ?, 'open', ?, ?)
	`, id, description, now, now)
	if err != nil {
		return nil, fmt.Errorf("insert item: %w", err)
	}

	return &Item{
		ID:            id,
		Description:   description,
		Status:        "open",
		AddedAt:       now,
		LastTouchedAt: now,
	}, nil
}

// ImportItem inserts an item with its timestamps preserved. Used by the
// YAML import path; normal capture goes through CreateItem.
func (db *DB) ImportItem(it Item) error {
	if it.ID == "" || it.Description == "" {
		return fmt.Errorf("imported item needs id and description")
	}
	if it.Status == "" {
		it.Status = "open"
	}
	_, err := db.Exec(`
		INSERT INTO items (id, description, status, added_at, last_touched_at, completed_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, it.ID, it.Description, it.Status, it.AddedAt, it.LastTouchedAt, it.CompletedAt)
	if err != nil {
		return fmt.Errorf("insert imported item: %w", err)
	}
	return nil
}

// GetItem returns an item by ID, or nil if not found. A unique ID prefix
// is accepted so CLI users can type short IDs.
func (db *DB) GetItem(id string) (*Item, error) {
	it, err := scanItem(db.QueryRow(
		`SELECT `+itemColumns+` FROM items WHERE id = ?`, id))
	if err == nil {
		return it, nil
	}
	if err != sql.ErrNoRows {
		return nil, fmt.Errorf("get item: %w", err)
	}

	// Prefix match fallback
	rows, err := db.Query(`SELECT `+itemColumns+` FROM items WHERE id LIKE ? || '%'`, id)
	if err != nil {
		return nil, fmt.Errorf("get item by prefix: %w", err)
	}
	defer rows.Close()

	var matches []*Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		matches = append(matches, it)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("item prefix %q is ambiguous (%d matches)", id, len(matches))
	}
}

// TouchItem records progress on an item, moving last_touched_at to now.
func (db *DB) TouchItem(id string) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE items SET last_touched_at = ? WHERE id = ? AND status = 'open'
	`, now, id)
	if err != nil {
		return fmt.Errorf("touch item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no open item found for %s", id)
	}
	return nil
}

// CompleteItem marks an open item as done.
func (db *DB) CompleteItem(id string) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE items SET status = 'done', completed_at = ?, last_touched_at = ?
		WHERE id = ? AND status = 'open'
	`, now, now, id)
	if err != nil {
		return fmt.Errorf("complete item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no open item found for %s", id)
	}
	return nil
}

// ReopenItem moves a done item back to open, clearing completed_at.
func (db *DB) ReopenItem(id string) error {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		UPDATE items SET status = 'open', completed_at = NULL, last_touched_at = ?
		WHERE id = ? AND status = 'done'
	`, now, id)
	if err != nil {
		return fmt.Errorf("reopen item: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("no done item found for %s", id)
	}
	return nil
}

// ListOpenItems returns all open items, oldest touch first so the most
// neglected items surface at the top.
func (db *DB) ListOpenItems() ([]Item, error) {
	return db.listItems(`SELECT ` + itemColumns + ` FROM items WHERE status = 'open' ORDER BY last_touched_at ASC`)
}

// ListItems returns all items, newest first.
func (db *DB) ListItems() ([]Item, error) {
	return db.listItems(`SELECT ` + itemColumns + ` FROM items ORDER BY added_at DESC`)
}

// ItemsCompletedBetween returns items completed in [start, end), newest first.
func (db *DB) ItemsCompletedBetween(start, end time.Time) ([]Item, error) {
	return db.listItems(`
		SELECT `+itemColumns+` FROM items
		WHERE completed_at >= ? AND completed_at < ?
		ORDER BY completed_at DESC
	`, start.UnixMilli(), end.UnixMilli())
}

// ItemsAddedBetween returns items added in [start, end), newest first.
func (db *DB) ItemsAddedBetween(start, end time.Time) ([]Item, error) {
	return db.listItems(`
		SELECT `+itemColumns+` FROM items
		WHERE added_at >= ? AND added_at < ?
		ORDER BY added_at DESC
	`, start.UnixMilli(), end.UnixMilli())
}

// ItemsTouchedBetween returns open or done items whose last touch falls in
// [start, end). Used by the end-of-day reflection.
func (db *DB) ItemsTouchedBetween(start, end time.Time) ([]Item, error) {
	return db.listItems(`
		SELECT `+itemColumns+` FROM items
		WHERE last_touched_at >= ? AND last_touched_at < ?
		ORDER BY last_touched_at DESC
	`, start.UnixMilli(), end.UnixMilli())
}

func (db *DB) listItems(query string, args ...any) ([]Item, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, *it)
	}
	return items, rows.Err()
}
