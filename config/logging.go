package config

import (
	"fmt"
	"strings"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled"}

// LoggingConfig defines log verbosity and an optional rotating log file.
type LoggingConfig struct {
	// Level is a zerolog level name.
	Level string `json:"level"`
	// File redirects logs from stderr to a rotating file.
	File string `json:"file"`
	// MaxSizeMB triggers rotation when the file exceeds this size in megabytes.
	MaxSizeMB int `json:"max_size_mb"`
	// MaxBackups limits the number of rotated files to keep.
	MaxBackups int `json:"max_backups"`
	// MaxAgeDays removes rotated files older than this number of days.
	MaxAgeDays int `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "warn"
	}
	if c.File != "" && c.MaxSizeMB == 0 {
		c.MaxSizeMB = 10
	}
}

// Validate checks the level name and rotation limits.
func (c LoggingConfig) Validate() error {
	ok := false
	for _, l := range logLevels {
		if strings.EqualFold(c.Level, l) {
			ok = true
			break
		}
	}
	if !ok {
		return fmt.Errorf("unknown log level %s", c.Level)
	}
	if c.MaxSizeMB < 0 || c.MaxBackups < 0 || c.MaxAgeDays < 0 {
		return fmt.Errorf("log rotation limits must not be negative")
	}
	return nil
}
