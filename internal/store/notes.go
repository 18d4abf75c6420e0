package store

import (
	"fmt"
	"time"
)

// Note is a debrief or free-form note, optionally attached to an item.
type Note struct {
	ID        int64
	ItemID    *string
	Title     string
	Body      string
	CreatedAt int64
}

// AddNote stores a note. itemID may be empty for standalone notes.
func (db *DB) AddNote(itemID, title, body string) (*Note, error) {
	now := time.Now().UnixMilli()

	var itemRef any
	if itemID != "" {
		itemRef = itemID
	}

	result, err := db.Exec(`
		INSERT INTO notes (item_id, title, body, created_at)
		VALUES (?, ?, ?, ?)
	`, itemRef, title, body, now)
	if err != nil {
		return nil, fmt.Errorf("insert note: %w", err)
	}

	id, _ := result.LastInsertId()
	n := &Note{ID: id, Title: title, Body: body, CreatedAt: now}
	if itemID != "" {
		n.ItemID = &itemID
	}
	return n, nil
}

// NotesForItem returns notes attached to an item, oldest first.
func (db *DB) NotesForItem(itemID string) ([]Note, error) {
	return db.listNotes(`
		SELECT id, item_id, title, body, created_at
		FROM notes WHERE item_id = ? ORDER BY created_at
	`, itemID)
}

// RecentNotes returns the most recent notes, newest first.
func (db *DB) RecentNotes(limit int) ([]Note, error) {
	return db.listNotes(`
		SELECT id, item_id, title, body, created_at
		FROM notes ORDER BY created_at DESC LIMIT ?
	`, limit)
}

// NotesBetween returns notes created in [start, end), oldest first.
func (db *DB) NotesBetween(start, end time.Time) ([]Note, error) {
	return db.listNotes(`
		SELECT id, item_id, title, body, created_at
		FROM notes WHERE created_at >= ? AND created_at < ?
		ORDER BY created_at
	`, start.UnixMilli(), end.UnixMilli())
}

func (db *DB) listNotes(query string, args ...any) ([]Note, error) {
	rows, err := db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list notes: %w", err)
	}
	defer rows.Close()

	var notes []Note
	for rows.Next() {
		var n Note
		if err := rows.Scan(&n.ID, &n.ItemID, &n.Title, &n.Body, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan note: %w", err)
		}
		notes = append(notes, n)
	}
	return notes, rows.Err()
}
