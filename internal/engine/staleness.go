package engine

import "time"

// Freshness classifies how recently a work item has seen progress.
type Freshness string

const (
	Fresh Freshness = "fresh"
	Aging Freshness = "aging"
	Stale Freshness = "stale"
)

// WorkItem is the read-only view of a commitment the evaluator classifies.
// Created and mutated externally; a never-touched item has LastTouchedAt
// equal to AddedAt.
type WorkItem struct {
	ID            string
	Description   string
	AddedAt       time.Time
	LastTouchedAt time.Time
}

// Classify evaluates one work item against now. Pure function, no side
// effects. Stale takes precedence over aging when both match: the longer
// inactivity signal wins. Items outside the fresh window that have seen
// some progress still classify as aging rather than falling through.
func Classify(now time.Time, item WorkItem, t Thresholds) (Freshness, error) {
	if item.AddedAt.IsZero() {
		return "", invalidItem(itemName(item), "missing addedAt timestamp")
	}
	if item.LastTouchedAt.IsZero() {
		return "", invalidItem(itemName(item), "missing lastTouchedAt timestamp")
	}

	switch {
	case now.Sub(item.LastTouchedAt) > t.StaleWindow:
		return Stale, nil
	case now.Sub(item.LastTouchedAt) <= t.FreshWindow:
		return Fresh, nil
	default:
		return Aging, nil
	}
}

// Classification pairs a work item with its freshness.
type Classification struct {
	Item      WorkItem
	Freshness Freshness
}

// StalenessReport is the result of classifying a batch of items.
type StalenessReport struct {
	Classified []Classification
	Counts     map[Freshness]int
	Errors     []error
}

// ClassifyAll classifies a batch of items. Invalid items are collected in
// the report's Errors and the batch continues, unless failFast is set, in
// which case the first invalid item aborts the whole batch.
func ClassifyAll(now time.Time, items []WorkItem, t Thresholds, failFast bool) (*StalenessReport, error) {
	report := &StalenessReport{Counts: make(map[Freshness]int)}

	for _, item := range items {
		f, err := Classify(now, item, t)
		if err != nil {
			if failFast {
				return nil, err
			}
			report.Errors = append(report.Errors, err)
			continue
		}
		report.Classified = append(report.Classified, Classification{Item: item, Freshness: f})
		report.Counts[f]++
	}

	return report, nil
}

func itemName(item WorkItem) string {
	if item.ID != "" {
		return item.ID
	}
	return item.Description
}
