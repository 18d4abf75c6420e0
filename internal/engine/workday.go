package engine

import (
	"fmt"
	"time"
)

// Workday describes the analyzable portion of a day: start and end as
// minutes from midnight in a fixed location.
type Workday struct {
	StartMin int
	EndMin   int
	Loc      *time.Location
}

// ParseWorkday builds a Workday from "HH:MM" boundaries and an IANA
// timezone name. An empty timezone means local time.
func ParseWorkday(start, end, timezone string) (Workday, error) {
	loc := time.Local
	if timezone != "" {
		var err error
		loc, err = time.LoadLocation(timezone)
		if err != nil {
			return Workday{}, fmt.Errorf("load timezone %q: %w", timezone, err)
		}
	}

	startMin, err := parseClock(start)
	if err != nil {
		return Workday{}, fmt.Errorf("day start: %w", err)
	}
	endMin, err := parseClock(end)
	if err != nil {
		return Workday{}, fmt.Errorf("day end: %w", err)
	}
	if endMin <= startMin {
		return Workday{}, fmt.Errorf("day end %s must be after day start %s", end, start)
	}

	return Workday{StartMin: startMin, EndMin: endMin, Loc: loc}, nil
}

// WindowFor returns the [dayStart, dayEnd) window for the calendar date of t.
func (w Workday) WindowFor(t time.Time) Window {
	year, month, day := t.In(w.Loc).Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, w.Loc)
	return Window{
		Start: midnight.Add(time.Duration(w.StartMin) * time.Minute),
		End:   midnight.Add(time.Duration(w.EndMin) * time.Minute),
	}
}

func parseClock(s string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(s, "%d:%d", &h, &m); err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock %q out of range", s)
	}
	return h*60 + m, nil
}
