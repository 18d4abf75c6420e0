package calendar

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/teambition/rrule-go"

	"github.com/mwhite/daybrief/internal/engine"
)

// ParseFeed decodes an iCalendar stream and returns the events overlapping
// the window. Recurring events are expanded into per-occurrence instances;
// cancelled events are dropped; events with no usable timestamps are logged
// and skipped so one bad entry cannot sink the day; kinds are classified
// heuristically (see classifyKind).
func ParseFeed(r io.Reader, w engine.Window) ([]engine.Event, error) {
	body, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read feed: %w", err)
	}

	text := strings.TrimSpace(string(body))
	if !strings.HasPrefix(text, "BEGIN:VCALENDAR") {
		// Auth walls tend to return HTML login pages with a 200 status.
		return nil, fmt.Errorf("not an iCalendar stream (expected BEGIN:VCALENDAR)")
	}

	decoder := ical.NewDecoder(strings.NewReader(text))

	var events []engine.Event
	for {
		cal, err := decoder.Decode()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("decode calendar: %w", err)
		}

		for _, comp := range cal.Children {
			if comp.Name != ical.CompEvent {
				continue
			}

			base, err := parseComponent(comp, w.Start.Location())
			if err != nil {
				return nil, err
			}
			if base == nil {
				continue // cancelled
			}
			if base.Start.IsZero() || !base.End.After(base.Start) {
				log.Printf("calendar: skipping event %q: missing or inverted timestamps", eventLabel(*base))
				continue
			}

			if rruleProp := comp.Props.Get(ical.PropRecurrenceRule); rruleProp != nil {
				events = append(events, expandRecurrence(*base, rruleProp.Value, w)...)
				continue
			}

			if overlaps(*base, w) {
				events = append(events, *base)
			}
		}
	}

	return events, nil
}

// parseComponent extracts one VEVENT. Returns nil for cancelled events.
func parseComponent(comp *ical.Component, loc *time.Location) (*engine.Event, error) {
	ev := engine.Event{}

	if p := comp.Props.Get(ical.PropUID); p != nil {
		ev.ID = p.Value
	}
	if p := comp.Props.Get(ical.PropSummary); p != nil {
		ev.Title = p.Value
	}
	if p := comp.Props.Get(ical.PropStatus); p != nil && strings.EqualFold(p.Value, "CANCELLED") {
		return nil, nil
	}

	startDateOnly := false
	if p := comp.Props.Get(ical.PropDateTimeStart); p != nil {
		t, err := p.DateTime(loc)
		if err != nil {
			return nil, fmt.Errorf("event %q: parse start: %w", eventLabel(ev), err)
		}
		ev.Start = t
		// A DATE value (20250312) has no time component.
		startDateOnly = !strings.ContainsRune(p.Value, 'T')
	}
	if p := comp.Props.Get(ical.PropDateTimeEnd); p != nil {
		t, err := p.DateTime(loc)
		if err != nil {
			return nil, fmt.Errorf("event %q: parse end: %w", eventLabel(ev), err)
		}
		ev.End = t
	}
	if ev.End.IsZero() && !ev.Start.IsZero() {
		if p := comp.Props.Get("DURATION"); p != nil {
			d, err := parseDuration(p.Value)
			if err != nil {
				return nil, fmt.Errorf("event %q: parse duration: %w", eventLabel(ev), err)
			}
			ev.End = ev.Start.Add(d)
		} else if startDateOnly {
			// RFC 5545: a DATE start with no DTEND spans one day.
			ev.End = ev.Start.Add(24 * time.Hour)
		}
	}

	for _, p := range comp.Props.Values(ical.PropAttendee) {
		ev.Attendees = append(ev.Attendees, strings.TrimPrefix(p.Value, "mailto:"))
	}

	transparent := false
	if p := comp.Props.Get("TRANSP"); p != nil {
		transparent = strings.EqualFold(p.Value, "TRANSPARENT")
	}
	ev.Kind = classifyKind(ev, transparent)

	return &ev, nil
}

// classifyKind maps an ICS event onto the analyzer's kinds. All-day spans
// are working-location blocks; transparent or "focus" events are focus
// time; everything else on the calendar is treated as a meeting, since a
// solo feed carries meetings without ATTENDEE properties.
func classifyKind(ev engine.Event, transparent bool) engine.EventKind {
	if !ev.Start.IsZero() && !ev.End.IsZero() && ev.End.Sub(ev.Start) >= 24*time.Hour {
		return engine.KindWorkingLocation
	}
	if transparent || strings.Contains(strings.ToLower(ev.Title), "focus") {
		return engine.KindFocusTime
	}
	return engine.KindMeeting
}

// expandRecurrence materializes the occurrences of a recurring event that
// overlap the window. The caller guarantees base has valid timestamps.
func expandRecurrence(base engine.Event, rruleValue string, w engine.Window) []engine.Event {
	rule, err := rrule.StrToRRule(rruleValue)
	if err != nil {
		// An RRULE we cannot parse degrades to the base occurrence.
		if overlaps(base, w) {
			return []engine.Event{base}
		}
		return nil
	}
	rule.DTStart(base.Start)

	duration := base.End.Sub(base.Start)
	var out []engine.Event
	// Widen the query so occurrences straddling the window start are kept.
	for _, start := range rule.Between(w.Start.Add(-duration), w.End, true) {
		inst := base
		inst.Start = start
		inst.End = start.Add(duration)
		inst.ID = base.ID + "-" + start.Format(time.RFC3339)
		if overlaps(inst, w) {
			out = append(out, inst)
		}
	}
	return out
}

func overlaps(ev engine.Event, w engine.Window) bool {
	return ev.End.After(w.Start) && ev.Start.Before(w.End)
}

// parseDuration reads an RFC 5545 dur-value (PT1H30M, P1D, P1W, -PT15M).
func parseDuration(v string) (time.Duration, error) {
	s := strings.TrimPrefix(v, "+")
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	if !strings.HasPrefix(s, "P") {
		return 0, fmt.Errorf("bad duration %q", v)
	}
	s = s[1:]

	var d time.Duration
	num := 0
	inTime := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= '0' && c <= '9':
			num = num*10 + int(c-'0')
		case c == 'T':
			inTime = true
		case c == 'W':
			d += time.Duration(num) * 7 * 24 * time.Hour
			num = 0
		case c == 'D':
			d += time.Duration(num) * 24 * time.Hour
			num = 0
		case c == 'H' && inTime:
			d += time.Duration(num) * time.Hour
			num = 0
		case c == 'M' && inTime:
			d += time.Duration(num) * time.Minute
			num = 0
		case c == 'S' && inTime:
			d += time.Duration(num) * time.Second
			num = 0
		default:
			return 0, fmt.Errorf("bad duration %q", v)
		}
	}
	if neg {
		d = -d
	}
	return d, nil
}

func eventLabel(ev engine.Event) string {
	if ev.Title != "" {
		return ev.Title
	}
	return ev.ID
}
