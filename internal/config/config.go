// Package config defines the TaskFlow configuration: a YAML file with
// environment overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"

	DefaultSlotKey = "plannerpro_state_v1"

	configFileName = "config.yaml"
	dbFileName     = "planner.db"
	logFileName    = "taskflow.log"
)

// Config is the top-level configuration.
type Config struct {
	DataDir    string `yaml:"data_dir"`
	Backend    string `yaml:"backend"`   // "json" | "sqlite"
	SlotKey    string `yaml:"slot_key"`  // key of the persisted snapshot
	Theme      string `yaml:"theme"`     // "classic" | "neon" | "mono"
	LogLevel   string `yaml:"log_level"` // "debug" | "info" | "warn" | "error"
	LogFile    string `yaml:"log_file"`
	RolloverAt string `yaml:"rollover_at"` // HH:MM the board moves to the new day
}

// DefaultConfig returns a config rooted at dataDir.
func DefaultConfig(dataDir string) *Config {
	return &Config{
		DataDir:    dataDir,
		Backend:    BackendJSON,
		SlotKey:    DefaultSlotKey,
		Theme:      "classic",
		LogLevel:   "info",
		RolloverAt: "00:00",
	}
}

// DefaultDataDir is ~/.taskflow.
func DefaultDataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("home: %w", err)
	}
	return filepath.Join(home, ".taskflow"), nil
}

// Load resolves the configuration. path may be empty, in which case
// <data_dir>/config.yaml is used when it exists. Environment variables
// (TASKFLOW_*) override file values.
func Load(path string) (*Config, error) {
	dataDir := strings.TrimSpace(os.Getenv("TASKFLOW_DATA_DIR"))
	if dataDir == "" {
		d, err := DefaultDataDir()
		if err != nil {
			return nil, err
		}
		dataDir = d
	}
	cfg := DefaultConfig(dataDir)

	explicit := path != ""
	if !explicit {
		path = filepath.Join(dataDir, configFileName)
	}
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
		// defaults
	default:
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	set := func(dst *string, name string) {
		if v := strings.TrimSpace(os.Getenv(name)); v != "" {
			*dst = v
		}
	}
	set(&c.DataDir, "TASKFLOW_DATA_DIR")
	set(&c.Backend, "TASKFLOW_BACKEND")
	set(&c.SlotKey, "TASKFLOW_SLOT_KEY")
	set(&c.Theme, "TASKFLOW_THEME")
	set(&c.LogLevel, "TASKFLOW_LOG_LEVEL")
	set(&c.LogFile, "TASKFLOW_LOG_FILE")
	set(&c.RolloverAt, "TASKFLOW_ROLLOVER_AT")
}

// Validate normalizes case and rejects unknown values.
func (c *Config) Validate() error {
	c.Backend = strings.ToLower(strings.TrimSpace(c.Backend))
	c.Theme = strings.ToLower(strings.TrimSpace(c.Theme))
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}
	switch c.Backend {
	case BackendJSON, BackendSQLite:
	default:
		return fmt.Errorf("unknown backend %q (want json or sqlite)", c.Backend)
	}
	if strings.TrimSpace(c.SlotKey) == "" {
		return fmt.Errorf("slot_key is required")
	}
	switch c.Theme {
	case "classic", "neon", "mono":
	default:
		return fmt.Errorf("unknown theme %q", c.Theme)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	if _, _, err := ParseClock(c.RolloverAt); err != nil {
		return fmt.Errorf("rollover_at: %w", err)
	}
	return nil
}

// DBPath is the SQLite file for the sqlite backend.
func (c *Config) DBPath() string { return filepath.Join(c.DataDir, dbFileName) }

// LogPath is the log file, defaulting into the data dir.
func (c *Config) LogPath() string {
	if c.LogFile != "" {
		return c.LogFile
	}
	return filepath.Join(c.DataDir, logFileName)
}

// ParseClock splits an HH:MM string.
func ParseClock(s string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid time %q, expected HH:MM", s)
	}
	hour, err = strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err = strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("invalid minute in %q", s)
	}
	return hour, minute, nil
}
