// Package config handles loading the roadmap config file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

// Backend names accepted in the storage setting.
const (
	BackendSnapshot = "snapshot"
	BackendSQLite   = "sqlite"
)

// Config represents the config.toml configuration file.
type Config struct {
	// Storage selects the persistence backend: "snapshot" (a single JSON
	// file) or "sqlite".
	Storage string `toml:"storage"`

	// SnapshotPath is the JSON snapshot location for the snapshot backend.
	SnapshotPath string `toml:"snapshot-path"`

	// DBPath is the SQLite database location for the sqlite backend.
	DBPath string `toml:"db-path"`

	// WeekStart names the first day of the calendar week, e.g. "monday".
	WeekStart string `toml:"week-start"`
}

// Load reads the config file, falling back to defaults when it does not
// exist. The path comes from ROADMAP_CONFIG or ~/.roadmap/config.toml.
func Load() (*Config, error) {
	path := os.Getenv("ROADMAP_CONFIG")
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("finding home directory: %w", err)
		}
		path = filepath.Join(home, ".roadmap", "config.toml")
	}
	return LoadFile(path)
}

// LoadFile reads the config from an explicit path. A missing file yields
// the defaults; a malformed file is an error.
func LoadFile(path string) (*Config, error) {
	cfg := &Config{Storage: BackendSnapshot, WeekStart: "monday"}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg.withDefaults()
	}
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg.withDefaults()
}

func (c *Config) withDefaults() (*Config, error) {
	if c.Storage == "" {
		c.Storage = BackendSnapshot
	}
	if c.Storage != BackendSnapshot && c.Storage != BackendSQLite {
		return nil, fmt.Errorf("unknown storage backend %q (want %q or %q)", c.Storage, BackendSnapshot, BackendSQLite)
	}
	if c.WeekStart == "" {
		c.WeekStart = "monday"
	}
	if _, err := parseWeekday(c.WeekStart); err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("finding home directory: %w", err)
	}
	if c.SnapshotPath == "" {
		c.SnapshotPath = filepath.Join(home, ".roadmap", "roadmap.json")
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(home, ".roadmap", "roadmap.db")
	}
	return c, nil
}

// FirstDay returns the configured first day of the week. The setting is
// validated at load time, so an unknown value here falls back to Monday.
func (c *Config) FirstDay() time.Weekday {
	d, err := parseWeekday(c.WeekStart)
	if err != nil {
		return time.Monday
	}
	return d
}

func parseWeekday(name string) (time.Weekday, error) {
	switch strings.ToLower(name) {
	case "monday":
		return time.Monday, nil
	case "tuesday":
		return time.Tuesday, nil
	case "wednesday":
		return time.Wednesday, nil
	case "thursday":
		return time.Thursday, nil
	case "friday":
		return time.Friday, nil
	case "saturday":
		return time.Saturday, nil
	case "sunday":
		return time.Sunday, nil
	}
	return time.Monday, fmt.Errorf("unknown week-start %q", name)
}
