package engine

import (
	"sort"
	"time"
)

// EventKind classifies a calendar event. Only meetings count as busy time
// in schedule analysis.
type EventKind string

const (
	KindMeeting         EventKind = "meeting"
	KindFocusTime       EventKind = "focus_time"
	KindWorkingLocation EventKind = "working_location"
	KindOther           EventKind = "other"
)

// Event is an immutable calendar event snapshot. Fetched externally,
// never persisted here.
type Event struct {
	ID        string
	Title     string
	Start     time.Time
	End       time.Time
	Attendees []string
	Kind      EventKind
}

// Duration returns the event's span.
func (e Event) Duration() time.Duration { return e.End.Sub(e.Start) }

// Window is a half-open day boundary [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Duration returns the window's span.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

// FreeInterval is a gap between meetings within a day window. Recomputed
// on every analysis, never persisted.
type FreeInterval struct {
	Start time.Time
	End   time.Time
}

// Duration returns the interval's span.
func (f FreeInterval) Duration() time.Duration { return f.End.Sub(f.Start) }

// BackToBack warns about a pair of consecutive meetings with little or no
// gap between them. Gap is never negative; overlapping pairs report zero.
type BackToBack struct {
	First  Event
	Second Event
	Gap    time.Duration
}

// DayAnalysis is the result of analyzing one day's meetings.
type DayAnalysis struct {
	Window        Window
	TotalMeeting  time.Duration
	FreeIntervals []FreeInterval
	MeetingHeavy  bool
	BackToBack    []BackToBack
}

// AnalyzeDay computes meeting load, free intervals, and scheduling warnings
// for the events falling within window. Only KindMeeting events count as
// busy; events spanning outside the window are clipped to it. Overlapping
// and touching meetings merge before the total is summed, so the total
// never double-counts. An event with missing or inverted timestamps fails
// the analysis with an InvalidInputError naming it.
func AnalyzeDay(window Window, events []Event, t Thresholds) (*DayAnalysis, error) {
	if window.Start.IsZero() || window.End.IsZero() || !window.End.After(window.Start) {
		return nil, &InvalidInputError{Kind: "window", Reason: "day window must satisfy start < end"}
	}

	meetings := make([]Event, 0, len(events))
	for _, ev := range events {
		if ev.Kind != KindMeeting {
			continue
		}
		if ev.Start.IsZero() || ev.End.IsZero() {
			return nil, invalidEvent(eventName(ev), "missing start or end timestamp")
		}
		if !ev.End.After(ev.Start) {
			return nil, invalidEvent(eventName(ev), "end is not after start")
		}

		// Clip to the window; skip events entirely outside it.
		if !ev.End.After(window.Start) || !ev.Start.Before(window.End) {
			continue
		}
		if ev.Start.Before(window.Start) {
			ev.Start = window.Start
		}
		if ev.End.After(window.End) {
			ev.End = window.End
		}
		meetings = append(meetings, ev)
	}

	// Identical starts order by shorter duration first.
	sort.SliceStable(meetings, func(i, j int) bool {
		if meetings[i].Start.Equal(meetings[j].Start) {
			return meetings[i].Duration() < meetings[j].Duration()
		}
		return meetings[i].Start.Before(meetings[j].Start)
	})

	analysis := &DayAnalysis{Window: window}

	// Back-to-back warnings use the pre-merge order: a warning is about two
	// distinct meetings, even if the busy set later merges them.
	for i := 1; i < len(meetings); i++ {
		gap := meetings[i].Start.Sub(meetings[i-1].End)
		if gap < t.BackToBackGap {
			if gap < 0 {
				gap = 0
			}
			analysis.BackToBack = append(analysis.BackToBack, BackToBack{
				First:  meetings[i-1],
				Second: meetings[i],
				Gap:    gap,
			})
		}
	}

	// Coalesce overlapping and touching spans into a busy set.
	var busy []FreeInterval
	for _, m := range meetings {
		if n := len(busy); n > 0 && !m.Start.After(busy[n-1].End) {
			if m.End.After(busy[n-1].End) {
				busy[n-1].End = m.End
			}
			continue
		}
		busy = append(busy, FreeInterval{Start: m.Start, End: m.End})
	}

	for _, b := range busy {
		analysis.TotalMeeting += b.Duration()
	}
	analysis.MeetingHeavy = analysis.TotalMeeting > t.HeavyMeetingLoad

	// Free intervals are the complement of the busy set within the window.
	cursor := window.Start
	for _, b := range busy {
		if gap := b.Start.Sub(cursor); gap >= t.MinFreeGap {
			analysis.FreeIntervals = append(analysis.FreeIntervals, FreeInterval{Start: cursor, End: b.Start})
		}
		cursor = b.End
	}
	if gap := window.End.Sub(cursor); gap >= t.MinFreeGap {
		analysis.FreeIntervals = append(analysis.FreeIntervals, FreeInterval{Start: cursor, End: window.End})
	}

	return analysis, nil
}

func eventName(ev Event) string {
	if ev.Title != "" {
		return ev.Title
	}
	return ev.ID
}
