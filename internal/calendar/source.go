// Package calendar fetches iCalendar feeds and turns them into engine
// events for schedule analysis.
package calendar

import "fmt"

// Source is a named iCalendar feed.
type Source struct {
	Name string
	URL  string
}

// Validate checks that the source has the required fields.
func (s Source) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("calendar source missing name")
	}
	if s.URL == "" {
		return fmt.Errorf("calendar source %q missing url", s.Name)
	}
	return nil
}
