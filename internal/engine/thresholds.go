package engine

import "time"

// Thresholds tunes schedule analysis and staleness classification.
// All values come from configuration; the engine never reads config itself.
type Thresholds struct {
	MinFreeGap       time.Duration // minimum gap reported as free time
	HeavyMeetingLoad time.Duration // total meeting time above this flags the day
	BackToBackGap    time.Duration // consecutive meetings closer than this warn
	FreshWindow      time.Duration // touched within this window = fresh
	StaleWindow      time.Duration // untouched beyond this window = stale
}

// DefaultThresholds returns the stock tuning: 30-minute free gaps, 4-hour
// meeting-heavy days, 5-minute back-to-back warnings, 7/14-day staleness.
func DefaultThresholds() Thresholds {
	return Thresholds{
		MinFreeGap:       30 * time.Minute,
		HeavyMeetingLoad: 4 * time.Hour,
		BackToBackGap:    5 * time.Minute,
		FreshWindow:      7 * 24 * time.Hour,
		StaleWindow:      14 * 24 * time.Hour,
	}
}
