package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/mwhite/daybrief/internal/calendar"
	"github.com/mwhite/daybrief/internal/config"
	"github.com/mwhite/daybrief/internal/engine"
	"github.com/mwhite/daybrief/internal/store"
)

// openDB is a helper that opens the database for CLI commands.
func openDB(cfg config.Config) (*store.DB, error) {
	dbPath := cfg.Database.Path
	if dbPath == "" {
		var err error
		dbPath, err = store.DefaultDBPath()
		if err != nil {
			return nil, err
		}
	}
	return store.Open(dbPath)
}

// buildEngine assembles the engine from config: store, optional calendar
// client, workday window, and thresholds.
func buildEngine(cfg config.Config, db *store.DB) (*engine.Engine, error) {
	day, err := engine.ParseWorkday(cfg.Calendar.DayStart, cfg.Calendar.DayEnd, cfg.Calendar.Timezone)
	if err != nil {
		return nil, fmt.Errorf("workday: %w", err)
	}

	var src engine.EventSource
	if len(cfg.Calendar.Feeds) > 0 {
		sources := make([]calendar.Source, 0, len(cfg.Calendar.Feeds))
		for _, f := range cfg.Calendar.Feeds {
			sources = append(sources, calendar.Source{Name: f.Name, URL: f.URL})
		}
		client, err := calendar.NewClient(sources)
		if err != nil {
			return nil, fmt.Errorf("calendar: %w", err)
		}
		src = client
	} else {
		fmt.Fprintln(os.Stderr, "note: no calendar feeds configured; plans show item state only")
	}

	return engine.New(db, src, day, thresholds(cfg)), nil
}

func thresholds(cfg config.Config) engine.Thresholds {
	return engine.Thresholds{
		MinFreeGap:       time.Duration(cfg.Schedule.MinFreeGapMinutes) * time.Minute,
		HeavyMeetingLoad: time.Duration(cfg.Schedule.HeavyMeetingMinutes) * time.Minute,
		BackToBackGap:    time.Duration(cfg.Schedule.BackToBackGapMinutes) * time.Minute,
		FreshWindow:      time.Duration(cfg.Staleness.FreshDays) * 24 * time.Hour,
		StaleWindow:      time.Duration(cfg.Staleness.StaleDays) * 24 * time.Hour,
	}
}

// withEngine loads config, opens the DB, builds the engine, runs fn, and
// closes up. Most commands are this shape.
func withEngine(fn func(*engine.Engine, *store.DB) error) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	eng, err := buildEngine(cfg, db)
	if err != nil {
		return err
	}
	return fn(eng, db)
}

// parseDateArg reads an optional YYYY-MM-DD positional arg, defaulting to
// today.
func parseDateArg(args []string) (time.Time, error) {
	if len(args) == 0 {
		return time.Now(), nil
	}
	t, err := time.Parse("2006-01-02", args[0])
	if err != nil {
		return time.Time{}, fmt.Errorf("parse date %q (want YYYY-MM-DD): %w", args[0], err)
	}
	return t, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
