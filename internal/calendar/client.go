package calendar

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/mwhite/daybrief/internal/engine"
)

const fetchTimeout = 15 * time.Second

// Client fetches events from a set of iCalendar sources.
type Client struct {
	sources []Source
	http    *http.Client
}

// NewClient creates a Client over the given sources. Invalid sources are
// rejected up front rather than failing on first fetch.
func NewClient(sources []Source) (*Client, error) {
	for _, s := range sources {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}
	return &Client{
		sources: sources,
		http:    &http.Client{Timeout: fetchTimeout},
	}, nil
}

// FetchWindow fetches all sources and returns the events overlapping the
// window, sorted arrival order. One broken feed does not sink the rest:
// its error is logged and the other sources still contribute. Duplicates
// are dropped across sources, so an event shared between two calendars
// shows up once.
func (c *Client) FetchWindow(ctx context.Context, w engine.Window) ([]engine.Event, error) {
	var events []engine.Event
	var failed int
	for _, src := range c.sources {
		evs, err := c.fetchSource(ctx, src, w)
		if err != nil {
			failed++
			log.Printf("calendar: source %s: %v", src.Name, err)
			continue
		}
		events = append(events, evs...)
	}
	if failed == len(c.sources) && failed > 0 {
		return nil, fmt.Errorf("all %d calendar sources failed", failed)
	}
	return dedupe(events), nil
}

func (c *Client) fetchSource(ctx context.Context, src Source, w engine.Window) ([]engine.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed returned %s", resp.Status)
	}

	events, err := ParseFeed(resp.Body, w)
	if err != nil {
		return nil, err
	}

	// Fallback IDs keep deduplication stable when a feed omits UIDs.
	for i := range events {
		if events[i].ID == "" {
			events[i].ID = src.Name + "-" + events[i].Start.Format(time.RFC3339) + "-" + events[i].Title
		}
	}
	return events, nil
}

// dedupe drops events sharing an ID or an identical title + start pair.
func dedupe(events []engine.Event) []engine.Event {
	seenID := make(map[string]bool)
	seenKey := make(map[string]bool)

	out := events[:0]
	for _, ev := range events {
		key := ev.Title + "|" + ev.Start.Format(time.RFC3339)
		if seenID[ev.ID] || seenKey[key] {
			continue
		}
		seenID[ev.ID] = true
		seenKey[key] = true
		out = append(out, ev)
	}
	return out
}
