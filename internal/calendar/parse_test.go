package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/mwhite/daybrief/internal/engine"
)

func icsFeed(events ...string) string {
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//test//test//EN",
	}
	lines = append(lines, events...)
	lines = append(lines, "END:VCALENDAR", "")
	return strings.Join(lines, "\r\n")
}

func vevent(lines ...string) string {
	all := append([]string{"BEGIN:VEVENT"}, lines...)
	all = append(all, "END:VEVENT")
	return strings.Join(all, "\r\n")
}

func testWindow() engine.Window {
	return engine.Window{
		Start: time.Date(2025, 3, 12, 9, 0, 0, 0, time.UTC),
		End:   time.Date(2025, 3, 12, 17, 0, 0, 0, time.UTC),
	}
}

func TestParseFeedBasicMeeting(t *testing.T) {
	feed := icsFeed(vevent(
		"UID:ev-1",
		"SUMMARY:Design review",
		"DTSTART:20250312T103000Z",
		"DTEND:20250312T112000Z",
		"ATTENDEE:mailto:sam@example.com",
		"ATTENDEE:mailto:alex@example.com",
	))

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}

	ev := events[0]
	if ev.ID != "ev-1" || ev.Title != "Design review" {
		t.Errorf("event = %+v", ev)
	}
	if ev.Kind != engine.KindMeeting {
		t.Errorf("kind = %s, want meeting", ev.Kind)
	}
	if len(ev.Attendees) != 2 || ev.Attendees[0] != "sam@example.com" {
		t.Errorf("attendees = %v", ev.Attendees)
	}
	if ev.Duration() != 50*time.Minute {
		t.Errorf("duration = %v, want 50m", ev.Duration())
	}
}

func TestParseFeedDropsCancelled(t *testing.T) {
	feed := icsFeed(vevent(
		"UID:ev-1",
		"SUMMARY:Cancelled sync",
		"STATUS:CANCELLED",
		"DTSTART:20250312T100000Z",
		"DTEND:20250312T110000Z",
	))

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("cancelled event survived: %+v", events)
	}
}

func TestParseFeedClassifiesKinds(t *testing.T) {
	feed := icsFeed(
		vevent(
			"UID:ev-focus",
			"SUMMARY:Focus time",
			"DTSTART:20250312T090000Z",
			"DTEND:20250312T110000Z",
		),
		vevent(
			"UID:ev-transparent",
			"SUMMARY:Blocked off",
			"TRANSP:TRANSPARENT",
			"DTSTART:20250312T130000Z",
			"DTEND:20250312T140000Z",
		),
		vevent(
			"UID:ev-office",
			"SUMMARY:Office day",
			"DTSTART:20250312T000000Z",
			"DTEND:20250313T000000Z",
		),
	)

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}

	kinds := map[string]engine.EventKind{}
	for _, ev := range events {
		kinds[ev.ID] = ev.Kind
	}
	if kinds["ev-focus"] != engine.KindFocusTime {
		t.Errorf("focus event kind = %s", kinds["ev-focus"])
	}
	if kinds["ev-transparent"] != engine.KindFocusTime {
		t.Errorf("transparent event kind = %s", kinds["ev-transparent"])
	}
	if kinds["ev-office"] != engine.KindWorkingLocation {
		t.Errorf("all-day event kind = %s", kinds["ev-office"])
	}
}

func TestParseFeedExpandsDailyRecurrence(t *testing.T) {
	// A daily standup defined a week earlier should produce exactly one
	// instance inside the analysis window.
	feed := icsFeed(vevent(
		"UID:standup",
		"SUMMARY:Standup",
		"DTSTART:20250305T091500Z",
		"DTEND:20250305T093000Z",
		"RRULE:FREQ=DAILY",
	))

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1 occurrence in window", len(events))
	}

	ev := events[0]
	want := time.Date(2025, 3, 12, 9, 15, 0, 0, time.UTC)
	if !ev.Start.Equal(want) {
		t.Errorf("occurrence start = %v, want %v", ev.Start, want)
	}
	if ev.End.Sub(ev.Start) != 15*time.Minute {
		t.Errorf("occurrence duration = %v, want 15m", ev.End.Sub(ev.Start))
	}
	if ev.ID == "standup" {
		t.Error("occurrence should get a distinct per-instance ID")
	}
}

func TestParseFeedSkipsOutOfWindow(t *testing.T) {
	feed := icsFeed(vevent(
		"UID:ev-1",
		"SUMMARY:Evening thing",
		"DTSTART:20250312T190000Z",
		"DTEND:20250312T200000Z",
	))

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("out-of-window event survived: %+v", events)
	}
}

func TestParseFeedRejectsHTML(t *testing.T) {
	_, err := ParseFeed(strings.NewReader("<!DOCTYPE html><html>login</html>"), testWindow())
	if err == nil {
		t.Error("expected error for non-ICS body")
	}
}

func TestParseFeedAllDayWithoutEnd(t *testing.T) {
	// Date-valued entries commonly omit DTEND; they span one day and must
	// not break analysis of the meetings around them.
	feed := icsFeed(
		vevent(
			"UID:holiday",
			"SUMMARY:Company holiday",
			"DTSTART;VALUE=DATE:20250312",
		),
		vevent(
			"UID:ev-1",
			"SUMMARY:Design review",
			"DTSTART:20250312T103000Z",
			"DTEND:20250312T112000Z",
		),
	)

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("events = %d, want 2", len(events))
	}

	byID := map[string]engine.Event{}
	for _, ev := range events {
		byID[ev.ID] = ev
	}
	holiday := byID["holiday"]
	if holiday.Kind != engine.KindWorkingLocation {
		t.Errorf("all-day kind = %s, want working-location", holiday.Kind)
	}
	if holiday.End.Sub(holiday.Start) != 24*time.Hour {
		t.Errorf("all-day span = %v, want 24h", holiday.End.Sub(holiday.Start))
	}

	analysis, err := engine.AnalyzeDay(testWindow(), events, engine.DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}
	if analysis.TotalMeeting != 50*time.Minute {
		t.Errorf("TotalMeeting = %v, want 50m (all-day entry is not busy time)", analysis.TotalMeeting)
	}
}

func TestParseFeedDurationEnd(t *testing.T) {
	feed := icsFeed(vevent(
		"UID:ev-1",
		"SUMMARY:Planning",
		"DTSTART:20250312T100000Z",
		"DURATION:PT1H30M",
	))

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if d := events[0].End.Sub(events[0].Start); d != 90*time.Minute {
		t.Errorf("duration = %v, want 1h30m", d)
	}
}

func TestParseFeedSkipsEventWithoutTimestamps(t *testing.T) {
	// A timed DTSTART with no DTEND or DURATION occupies no time; it is
	// skipped rather than failing the whole feed.
	feed := icsFeed(
		vevent(
			"UID:dangling",
			"SUMMARY:Reminder",
			"DTSTART:20250312T100000Z",
		),
		vevent(
			"UID:ev-1",
			"SUMMARY:Design review",
			"DTSTART:20250312T103000Z",
			"DTEND:20250312T112000Z",
		),
	)

	events, err := ParseFeed(strings.NewReader(feed), testWindow())
	if err != nil {
		t.Fatalf("ParseFeed: %v", err)
	}
	if len(events) != 1 || events[0].ID != "ev-1" {
		t.Errorf("events = %+v, want just ev-1", events)
	}
}

func TestParseDuration(t *testing.T) {
	cases := []struct {
		in   string
		want time.Duration
	}{
		{"PT1H30M", 90 * time.Minute},
		{"PT45M", 45 * time.Minute},
		{"P1D", 24 * time.Hour},
		{"P1W", 7 * 24 * time.Hour},
		{"-PT15M", -15 * time.Minute},
		{"P1DT12H", 36 * time.Hour},
	}
	for _, c := range cases {
		got, err := parseDuration(c.in)
		if err != nil {
			t.Errorf("parseDuration(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("parseDuration(%q) = %v, want %v", c.in, got, c.want)
		}
	}

	for _, bad := range []string{"", "1H", "PXH"} {
		if _, err := parseDuration(bad); err == nil {
			t.Errorf("parseDuration(%q): expected error", bad)
		}
	}
}
