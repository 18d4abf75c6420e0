package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all daybrief configuration. Loaded from
// ~/.daybrief/config.toml with env-var overrides.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Calendar  CalendarConfig  `toml:"calendar"`
	Schedule  ScheduleConfig  `toml:"schedule"`
	Staleness StalenessConfig `toml:"staleness"`
	Sweep     SweepConfig     `toml:"sweep"`
}

type ServerConfig struct {
	Bind string `toml:"bind"`
	Port int    `toml:"port"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

// Feed is one iCalendar source.
type Feed struct {
	Name string `toml:"name"`
	URL  string `toml:"url"`
}

type CalendarConfig struct {
	Feeds    []Feed `toml:"feeds"`
	DayStart string `toml:"day_start"` // "HH:MM"
	DayEnd   string `toml:"day_end"`   // "HH:MM"
	Timezone string `toml:"timezone"`  // IANA name; empty = local
}

type ScheduleConfig struct {
	MinFreeGapMinutes    int `toml:"min_free_gap_minutes"`
	HeavyMeetingMinutes  int `toml:"heavy_meeting_minutes"`
	BackToBackGapMinutes int `toml:"back_to_back_gap_minutes"`
}

type StalenessConfig struct {
	FreshDays int `toml:"fresh_days"`
	StaleDays int `toml:"stale_days"`
}

type SweepConfig struct {
	Enabled bool   `toml:"enabled"`
	Cron    string `toml:"cron"` // standard 5-field cron expression
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Bind: "127.0.0.1",
			Port: 38400,
		},
		Database: DatabaseConfig{
			Path: "", // resolved at runtime via store.DefaultDBPath()
		},
		Calendar: CalendarConfig{
			DayStart: "09:00",
			DayEnd:   "17:30",
		},
		Schedule: ScheduleConfig{
			MinFreeGapMinutes:    30,
			HeavyMeetingMinutes:  240,
			BackToBackGapMinutes: 5,
		},
		Staleness: StalenessConfig{
			FreshDays: 7,
			StaleDays: 14,
		},
		Sweep: SweepConfig{
			Enabled: true,
			Cron:    "0 18 * * 1-5",
		},
	}
}

// DefaultPath returns the default config path: ~/.daybrief/config.toml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".daybrief", "config.toml"), nil
}

// Load reads configuration: .env first (if present), then the TOML file,
// then env-var overrides. A missing config file is not an error; defaults
// apply. DAYBRIEF_CONFIG overrides the file location, DAYBRIEF_DB the
// database path.
func Load() (Config, error) {
	_ = godotenv.Load() // ignore error if no .env

	cfg := Default()

	path := os.Getenv("DAYBRIEF_CONFIG")
	if path == "" {
		var err error
		path, err = DefaultPath()
		if err != nil {
			return cfg, err
		}
	}

	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if db := os.Getenv("DAYBRIEF_DB"); db != "" {
		cfg.Database.Path = db
	}

	return cfg, nil
}

// ListenAddr returns the bind:port address string.
func (c *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Bind, c.Server.Port)
}
