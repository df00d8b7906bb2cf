package config

import (
	"fmt"
	"time"

	"cloud.google.com/go/civil"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// Default values.
const (
	DefaultDataFile  = "plants.json"
	DefaultLogDir    = "~/.greenthumb/logs"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"
)

// Config holds the full configuration for greenthumb.
type Config struct {
	// Paths
	DataFile string `toml:"data_file"`
	LogDir   string `toml:"log_dir"`

	// Logging configuration
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`

	// Today overrides the system clock for due-date evaluation (YYYY-MM-DD).
	Today string `toml:"today"`

	// Working directory (computed)
	WorkDir string `toml:"-"`

	// Sources records where each field was last set from.
	Sources map[string]ConfigSource `toml:"-"`

	// Files lists the config files that were read, lowest priority first.
	Files []string `toml:"-"`

	today civil.Date
}

// TodayDate returns the configured "today", falling back to the local clock.
func (c *Config) TodayDate() civil.Date {
	if c.today.IsValid() {
		return c.today
	}
	return civil.DateOf(time.Now())
}

// Source reports where the named field came from.
func (c *Config) Source(field string) ConfigSource {
	if src, ok := c.Sources[field]; ok {
		return src
	}
	return SourceDefault
}

func (c *Config) setSource(field string, source ConfigSource) {
	if c.Sources == nil {
		c.Sources = make(map[string]ConfigSource)
	}
	c.Sources[field] = source
}

// parseToday validates the Today override and caches the parsed date.
func (c *Config) parseToday() error {
	if c.Today == "" {
		c.today = civil.Date{}
		return nil
	}
	d, err := civil.ParseDate(c.Today)
	if err != nil {
		return fmt.Errorf("invalid today %q: expected YYYY-MM-DD", c.Today)
	}
	c.today = d
	return nil
}
