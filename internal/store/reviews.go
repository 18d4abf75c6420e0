package store

import (
	"fmt"
	"time"
)

// Review records that a daily reflection or weekly review ran, with its
// rendered summary, so past reviews stay browsable.
type Review struct {
	ID          int64
	Kind        string // "daily" or "weekly"
	PeriodStart int64
	PeriodEnd   int64
	Summary     string
	CreatedAt   int64
}

// RecordReview stores a review over [start, end).
func (db *DB) RecordReview(kind string, start, end time.Time, summary string) (*Review, error) {
	now := time.Now().UnixMilli()
	result, err := db.Exec(`
		INSERT INTO reviews (kind, period_start, period_end, summary, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, kind, start.UnixMilli(), end.UnixMilli(), summary, now)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	id, _ := result.LastInsertId()
	return &Review{
		ID:          id,
		Kind:        kind,
		PeriodStart: start.UnixMilli(),
		PeriodEnd:   end.UnixMilli(),
		Summary:     summary,
		CreatedAt:   now,
	}, nil
}

// RecentReviews returns the most recent reviews of a kind, newest first.
// An empty kind returns all kinds.
func (db *DB) RecentReviews(kind string, limit int) ([]Review, error) {
	query := `
		SELECT id, kind, period_start, period_end, summary, created_at
		FROM reviews WHERE (? = '' OR kind = ?)
		ORDER BY created_at DESC LIMIT ?
	`
	rows, err := db.Query(query, kind, kind, limit)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Kind, &r.PeriodStart, &r.PeriodEnd, &r.Summary, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
