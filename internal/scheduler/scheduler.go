// Package scheduler runs the periodic staleness sweep while the server
// is up.
package scheduler

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mwhite/daybrief/internal/engine"
)

// Scheduler owns the cron runner for background sweeps.
type Scheduler struct {
	cron *cron.Cron
	eng  *engine.Engine
}

// New creates a Scheduler over the given engine.
func New(eng *engine.Engine) *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		eng:  eng,
	}
}

// Start registers the sweep at the given cron expression and starts the
// runner.
func (s *Scheduler) Start(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.sweep); err != nil {
		return fmt.Errorf("schedule sweep %q: %w", spec, err)
	}
	s.cron.Start()
	log.Printf("scheduler: sweep registered (%s)", spec)
	return nil
}

// Stop halts the cron runner. Running jobs finish.
func (s *Scheduler) Stop() {
	s.cron.Stop()
}

// sweep classifies all open items, logs what needs attention, and records
// the counts as a daily review row. The classification itself is pure;
// this is just the periodic reporting wrapper around it.
func (s *Scheduler) sweep() {
	report, err := s.eng.Status(time.Now())
	if err != nil {
		log.Printf("sweep: %v", err)
		return
	}

	log.Printf("sweep: %d open items (%d fresh, %d aging, %d stale)",
		len(report.Classified),
		report.Counts[engine.Fresh],
		report.Counts[engine.Aging],
		report.Counts[engine.Stale])

	for _, c := range report.Classified {
		if c.Freshness == engine.Stale {
			id := c.Item.ID
			if len(id) > 8 {
				id = id[:8]
			}
			log.Printf("sweep: stale item %s: %s", id, c.Item.Description)
		}
	}
	for _, err := range report.Errors {
		log.Printf("sweep: skipped item: %v", err)
	}

	now := time.Now()
	summary := fmt.Sprintf("sweep: %d open (%d fresh, %d aging, %d stale)",
		len(report.Classified),
		report.Counts[engine.Fresh],
		report.Counts[engine.Aging],
		report.Counts[engine.Stale])
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if _, err := s.eng.DB.RecordReview("daily", start, now, summary); err != nil {
		log.Printf("sweep: record review: %v", err)
	}
}
