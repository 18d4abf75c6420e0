package engine

import (
	"errors"
	"testing"
	"time"
)

var testLoc = time.UTC

func day(hour, min int) time.Time {
	return time.Date(2025, 3, 12, hour, min, 0, 0, testLoc)
}

func meeting(title string, start, end time.Time) Event {
	return Event{ID: title, Title: title, Start: start, End: end, Kind: KindMeeting}
}

func workWindow() Window {
	return Window{Start: day(9, 0), End: day(17, 0)}
}

func TestAnalyzeDayNoMeetings(t *testing.T) {
	a, err := AnalyzeDay(workWindow(), nil, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}

	if a.TotalMeeting != 0 {
		t.Errorf("TotalMeeting = %v, want 0", a.TotalMeeting)
	}
	if len(a.FreeIntervals) != 1 {
		t.Fatalf("FreeIntervals = %d, want 1", len(a.FreeIntervals))
	}
	free := a.FreeIntervals[0]
	if !free.Start.Equal(day(9, 0)) || !free.End.Equal(day(17, 0)) {
		t.Errorf("sole free interval = [%v, %v), want the whole window", free.Start, free.End)
	}
	if a.MeetingHeavy {
		t.Error("empty day flagged meeting-heavy")
	}
}

// The worked example from the design discussion: two short meetings leave
// two qualifying gaps.
func TestAnalyzeDayWorkedExample(t *testing.T) {
	events := []Event{
		meeting("standup", day(9, 0), day(9, 20)),
		meeting("design review", day(10, 30), day(11, 20)),
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}

	if a.TotalMeeting != 70*time.Minute {
		t.Errorf("TotalMeeting = %v, want 70m", a.TotalMeeting)
	}
	if a.MeetingHeavy {
		t.Error("70 minutes flagged meeting-heavy")
	}

	want := []FreeInterval{
		{Start: day(9, 20), End: day(10, 30)},
		{Start: day(11, 20), End: day(17, 0)},
	}
	if len(a.FreeIntervals) != len(want) {
		t.Fatalf("FreeIntervals = %d, want %d", len(a.FreeIntervals), len(want))
	}
	for i, w := range want {
		got := a.FreeIntervals[i]
		if !got.Start.Equal(w.Start) || !got.End.Equal(w.End) {
			t.Errorf("free[%d] = [%v, %v), want [%v, %v)", i, got.Start, got.End, w.Start, w.End)
		}
	}
	if a.FreeIntervals[0].Duration() != 70*time.Minute {
		t.Errorf("free[0] duration = %v, want 70m", a.FreeIntervals[0].Duration())
	}
	if a.FreeIntervals[1].Duration() != 340*time.Minute {
		t.Errorf("free[1] duration = %v, want 340m", a.FreeIntervals[1].Duration())
	}
}

func TestAnalyzeDayOverlapMerges(t *testing.T) {
	events := []Event{
		meeting("a", day(10, 0), day(11, 0)),
		meeting("b", day(10, 30), day(11, 30)),
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}

	// Merged busy duration is less than the sum of individual durations
	// exactly because the pair overlaps.
	if a.TotalMeeting != 90*time.Minute {
		t.Errorf("TotalMeeting = %v, want 90m (merged)", a.TotalMeeting)
	}

	// Touching meetings also coalesce
	events = []Event{
		meeting("a", day(10, 0), day(11, 0)),
		meeting("b", day(11, 0), day(12, 0)),
	}
	a, err = AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay touching: %v", err)
	}
	if a.TotalMeeting != 2*time.Hour {
		t.Errorf("TotalMeeting = %v, want 2h", a.TotalMeeting)
	}
}

func TestAnalyzeDayClipsToWindow(t *testing.T) {
	events := []Event{
		meeting("early", day(8, 0), day(9, 30)),   // spills before window
		meeting("late", day(16, 30), day(18, 0)),  // spills after window
		meeting("offsite", day(19, 0), day(20, 0)), // entirely outside
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}

	if a.TotalMeeting != time.Hour {
		t.Errorf("TotalMeeting = %v, want 1h after clipping", a.TotalMeeting)
	}
	if len(a.FreeIntervals) != 1 {
		t.Fatalf("FreeIntervals = %d, want 1", len(a.FreeIntervals))
	}
	if !a.FreeIntervals[0].Start.Equal(day(9, 30)) || !a.FreeIntervals[0].End.Equal(day(16, 30)) {
		t.Errorf("free = [%v, %v), want [9:30, 16:30)", a.FreeIntervals[0].Start, a.FreeIntervals[0].End)
	}
}

func TestAnalyzeDayMeetingHeavy(t *testing.T) {
	events := []Event{
		meeting("block a", day(9, 0), day(12, 0)),
		meeting("block b", day(13, 0), day(14, 30)),
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}
	if a.TotalMeeting != 4*time.Hour+30*time.Minute {
		t.Errorf("TotalMeeting = %v", a.TotalMeeting)
	}
	if !a.MeetingHeavy {
		t.Error("4.5h day not flagged meeting-heavy")
	}

	// Exactly at the threshold does not flag
	events = []Event{meeting("block", day(9, 0), day(13, 0))}
	a, err = AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay at threshold: %v", err)
	}
	if a.MeetingHeavy {
		t.Error("exactly 4h flagged meeting-heavy; flag requires exceeding the threshold")
	}
}

func TestAnalyzeDayBackToBack(t *testing.T) {
	events := []Event{
		meeting("standup", day(9, 0), day(9, 30)),
		meeting("sync", day(9, 32), day(10, 0)),    // 2m gap — warns
		meeting("planning", day(10, 30), day(11, 0)), // 30m gap — fine
		meeting("retro", day(11, 0), day(11, 30)),  // zero gap — warns
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}

	if len(a.BackToBack) != 2 {
		t.Fatalf("BackToBack = %d warnings, want 2", len(a.BackToBack))
	}
	if a.BackToBack[0].First.Title != "standup" || a.BackToBack[0].Second.Title != "sync" {
		t.Errorf("first warning = %s/%s", a.BackToBack[0].First.Title, a.BackToBack[0].Second.Title)
	}
	if a.BackToBack[0].Gap != 2*time.Minute {
		t.Errorf("gap = %v, want 2m", a.BackToBack[0].Gap)
	}
	if a.BackToBack[1].Gap != 0 {
		t.Errorf("zero-gap warning gap = %v, want 0", a.BackToBack[1].Gap)
	}
}

func TestAnalyzeDayIdenticalStartsTieBreak(t *testing.T) {
	events := []Event{
		meeting("long", day(10, 0), day(12, 0)),
		meeting("short", day(10, 0), day(10, 30)),
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}
	// Shorter-first ordering does not change the merged result.
	if a.TotalMeeting != 2*time.Hour {
		t.Errorf("TotalMeeting = %v, want 2h", a.TotalMeeting)
	}
}

func TestAnalyzeDayIgnoresNonMeetings(t *testing.T) {
	events := []Event{
		{ID: "focus", Title: "deep work", Start: day(9, 0), End: day(12, 0), Kind: KindFocusTime},
		{ID: "office", Title: "office", Start: day(9, 0), End: day(17, 0), Kind: KindWorkingLocation},
		meeting("standup", day(12, 0), day(12, 15)),
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}
	if a.TotalMeeting != 15*time.Minute {
		t.Errorf("TotalMeeting = %v, want 15m; non-meetings must not count", a.TotalMeeting)
	}
}

func TestAnalyzeDayInvalidEvent(t *testing.T) {
	events := []Event{
		{ID: "ev1", Title: "broken", End: day(10, 0), Kind: KindMeeting}, // missing start
	}

	_, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err == nil {
		t.Fatal("expected error for event with missing start")
	}
	var inv *InvalidInputError
	if !errors.As(err, &inv) {
		t.Fatalf("error type = %T, want *InvalidInputError", err)
	}
	if inv.ID != "broken" {
		t.Errorf("error names %q, want the offending event", inv.ID)
	}

	// Inverted span
	events = []Event{meeting("inverted", day(11, 0), day(10, 0))}
	if _, err := AnalyzeDay(workWindow(), events, DefaultThresholds()); err == nil {
		t.Error("expected error for end before start")
	}

	// Bad window
	if _, err := AnalyzeDay(Window{Start: day(17, 0), End: day(9, 0)}, nil, DefaultThresholds()); err == nil {
		t.Error("expected error for inverted window")
	}
}

func TestAnalyzeDayMinFreeGapFilter(t *testing.T) {
	events := []Event{
		meeting("a", day(9, 0), day(10, 0)),
		meeting("b", day(10, 20), day(17, 0)), // 20m gap, below the 30m floor
	}

	a, err := AnalyzeDay(workWindow(), events, DefaultThresholds())
	if err != nil {
		t.Fatalf("AnalyzeDay: %v", err)
	}
	if len(a.FreeIntervals) != 0 {
		t.Errorf("FreeIntervals = %v, want none below the minimum gap", a.FreeIntervals)
	}
}
