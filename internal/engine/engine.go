package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/mwhite/daybrief/internal/store"
)

// EventSource fetches calendar events overlapping a window. Implemented by
// the calendar package; tests substitute a stub.
type EventSource interface {
	FetchWindow(ctx context.Context, w Window) ([]Event, error)
}

// Engine orchestrates day planning, staleness review, and reflections over
// the item store and a calendar event source.
type Engine struct {
	DB         *store.DB
	Calendar   EventSource
	Workday    Workday
	Thresholds Thresholds
}

// New creates a new Engine. Calendar may be nil when no feeds are
// configured; plans then analyze an empty event list.
func New(db *store.DB, cal EventSource, day Workday, t Thresholds) *Engine {
	return &Engine{DB: db, Calendar: cal, Workday: day, Thresholds: t}
}

// DayPlan is the morning-planning result for one date.
type DayPlan struct {
	Date     time.Time
	Events   []Event // everything on the calendar, meetings or not
	Analysis *DayAnalysis
	Items    *StalenessReport // open items, most neglected first
}

// PlanDay builds the morning plan for the given date: the day's calendar
// analysis plus open items with their staleness.
func (e *Engine) PlanDay(ctx context.Context, date time.Time) (*DayPlan, error) {
	window := e.Workday.WindowFor(date)

	events, err := e.fetchEvents(ctx, window)
	if err != nil {
		return nil, fmt.Errorf("fetch events: %w", err)
	}

	analysis, err := AnalyzeDay(window, events, e.Thresholds)
	if err != nil {
		return nil, fmt.Errorf("analyze day: %w", err)
	}

	// Staleness is judged as of the planned day, so planning yesterday or
	// next Monday reports item state consistent with the calendar window.
	items, err := e.Status(window.Start)
	if err != nil {
		return nil, err
	}

	return &DayPlan{Date: date, Events: events, Analysis: analysis, Items: items}, nil
}

// Status classifies all open items by staleness.
func (e *Engine) Status(now time.Time) (*StalenessReport, error) {
	open, err := e.DB.ListOpenItems()
	if err != nil {
		return nil, fmt.Errorf("list open items: %w", err)
	}
	return ClassifyAll(now, toWorkItems(open), e.Thresholds, false)
}

// Reflection is the end-of-day summary for one date.
type Reflection struct {
	Date      time.Time
	Touched   []store.Item
	Completed []store.Item
	Notes     []store.Note
	Tomorrow  *DayAnalysis // next day's meeting load preview
}

// Reflect builds the end-of-day reflection for date and records it as a
// daily review.
func (e *Engine) Reflect(ctx context.Context, date time.Time) (*Reflection, error) {
	// Item activity counts against the full calendar date in the configured
	// timezone, not just the working window.
	y, m, d := date.In(e.Workday.Loc).Date()
	dayStart := time.Date(y, m, d, 0, 0, 0, 0, e.Workday.Loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	touched, err := e.DB.ItemsTouchedBetween(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("items touched: %w", err)
	}
	completed, err := e.DB.ItemsCompletedBetween(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("items completed: %w", err)
	}
	notes, err := e.DB.NotesBetween(dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("notes: %w", err)
	}

	ref := &Reflection{Date: date, Touched: touched, Completed: completed, Notes: notes}

	tomorrowWindow := e.Workday.WindowFor(date.AddDate(0, 0, 1))
	events, err := e.fetchEvents(ctx, tomorrowWindow)
	if err == nil {
		if analysis, aerr := AnalyzeDay(tomorrowWindow, events, e.Thresholds); aerr == nil {
			ref.Tomorrow = analysis
		}
	}

	summary := fmt.Sprintf("%d touched, %d completed, %d notes", len(touched), len(completed), len(notes))
	if _, err := e.DB.RecordReview("daily", dayStart, dayEnd, summary); err != nil {
		return nil, fmt.Errorf("record reflection: %w", err)
	}

	return ref, nil
}

// WeekReview is the weekly-review result over the 7 days ending at weekEnding.
type WeekReview struct {
	PeriodStart time.Time
	PeriodEnd   time.Time
	Added       []store.Item
	Completed   []store.Item
	Open        *StalenessReport
	MeetingLoad []DayLoad // per-day meeting totals, oldest first
}

// DayLoad is one day's total meeting time within the review period.
type DayLoad struct {
	Date         time.Time
	TotalMeeting time.Duration
	MeetingHeavy bool
}

// WeeklyReview builds the review covering [weekEnding-7d, weekEnding) and
// records it.
func (e *Engine) WeeklyReview(ctx context.Context, weekEnding time.Time) (*WeekReview, error) {
	y, m, d := weekEnding.In(e.Workday.Loc).Date()
	end := time.Date(y, m, d, 0, 0, 0, 0, e.Workday.Loc).AddDate(0, 0, 1)
	start := end.AddDate(0, 0, -7)

	added, err := e.DB.ItemsAddedBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("items added: %w", err)
	}
	completed, err := e.DB.ItemsCompletedBetween(start, end)
	if err != nil {
		return nil, fmt.Errorf("items completed: %w", err)
	}
	open, err := e.Status(time.Now())
	if err != nil {
		return nil, err
	}

	review := &WeekReview{
		PeriodStart: start,
		PeriodEnd:   end,
		Added:       added,
		Completed:   completed,
		Open:        open,
	}

	for day := start; day.Before(end); day = day.AddDate(0, 0, 1) {
		window := e.Workday.WindowFor(day)
		events, err := e.fetchEvents(ctx, window)
		if err != nil {
			// A feed hiccup should not sink the whole review; the day just
			// shows zero load.
			events = nil
		}
		analysis, err := AnalyzeDay(window, events, e.Thresholds)
		if err != nil {
			continue
		}
		review.MeetingLoad = append(review.MeetingLoad, DayLoad{
			Date:         day,
			TotalMeeting: analysis.TotalMeeting,
			MeetingHeavy: analysis.MeetingHeavy,
		})
	}

	summary := fmt.Sprintf("%d added, %d completed, %d stale",
		len(added), len(completed), open.Counts[Stale])
	if _, err := e.DB.RecordReview("weekly", start, end, summary); err != nil {
		return nil, fmt.Errorf("record review: %w", err)
	}

	return review, nil
}

func (e *Engine) fetchEvents(ctx context.Context, w Window) ([]Event, error) {
	if e.Calendar == nil {
		return nil, nil
	}
	return e.Calendar.FetchWindow(ctx, w)
}

func toWorkItems(items []store.Item) []WorkItem {
	out := make([]WorkItem, 0, len(items))
	for _, it := range items {
		out = append(out, WorkItem{
			ID:            it.ID,
			Description:   it.Description,
			AddedAt:       it.Added(),
			LastTouchedAt: it.LastTouched(),
		})
	}
	return out
}
