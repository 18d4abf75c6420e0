package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Schedule.MinFreeGapMinutes != 30 {
		t.Errorf("MinFreeGapMinutes = %d, want 30", cfg.Schedule.MinFreeGapMinutes)
	}
	if cfg.Schedule.HeavyMeetingMinutes != 240 {
		t.Errorf("HeavyMeetingMinutes = %d, want 240", cfg.Schedule.HeavyMeetingMinutes)
	}
	if cfg.Staleness.FreshDays != 7 || cfg.Staleness.StaleDays != 14 {
		t.Errorf("staleness = %d/%d, want 7/14", cfg.Staleness.FreshDays, cfg.Staleness.StaleDays)
	}
	if cfg.ListenAddr() != "127.0.0.1:38400" {
		t.Errorf("ListenAddr = %q", cfg.ListenAddr())
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")

	content := `
[server]
bind = "0.0.0.0"
port = 9090

[calendar]
day_start = "08:00"
day_end = "16:00"
timezone = "Europe/Berlin"

[[calendar.feeds]]
name = "work"
url = "https://example.com/work.ics"

[schedule]
min_free_gap_minutes = 45
heavy_meeting_minutes = 300
back_to_back_gap_minutes = 10

[staleness]
fresh_days = 5
stale_days = 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("DAYBRIEF_CONFIG", path)
	t.Setenv("DAYBRIEF_DB", filepath.Join(dir, "test.db"))

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Server.Port)
	}
	if len(cfg.Calendar.Feeds) != 1 || cfg.Calendar.Feeds[0].Name != "work" {
		t.Errorf("Feeds = %+v", cfg.Calendar.Feeds)
	}
	if cfg.Schedule.MinFreeGapMinutes != 45 {
		t.Errorf("MinFreeGapMinutes = %d, want 45", cfg.Schedule.MinFreeGapMinutes)
	}
	if cfg.Staleness.StaleDays != 10 {
		t.Errorf("StaleDays = %d, want 10", cfg.Staleness.StaleDays)
	}
	if cfg.Database.Path != filepath.Join(dir, "test.db") {
		t.Errorf("Database.Path = %q, env override not applied", cfg.Database.Path)
	}
	// Sections not present in the file keep their defaults
	if cfg.Sweep.Cron != "0 18 * * 1-5" {
		t.Errorf("Sweep.Cron = %q, want default", cfg.Sweep.Cron)
	}
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("DAYBRIEF_CONFIG", filepath.Join(t.TempDir(), "nope.toml"))
	t.Setenv("DAYBRIEF_DB", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Port != Default().Server.Port {
		t.Errorf("missing file should keep defaults, got port %d", cfg.Server.Port)
	}
}
