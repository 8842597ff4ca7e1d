package config

import (
	"fmt"

	"github.com/pb33f/hareport/motor"
)

// Config holds the application configuration.
type Config struct {
	DefaultClasses   []string `yaml:"default_classes"`
	PageSize         int      `yaml:"page_size"`
	ConfirmExpensive bool     `yaml:"confirm_expensive"`
	CacheEntries     int      `yaml:"cache_entries"`
	LogFile          string   `yaml:"log_file"`
	LogMaxSizeMB     int      `yaml:"log_max_size_mb"`
	LogMaxBackups    int      `yaml:"log_max_backups"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		DefaultClasses:   []string{"4xx", "5xx"},
		PageSize:         motor.DefaultPageSize,
		ConfirmExpensive: true,
		CacheEntries:     motor.DefaultCacheSize,
		LogFile:          "",
		LogMaxSizeMB:     10,
		LogMaxBackups:    3,
	}
}

// Selection parses DefaultClasses.
func (c Config) Selection() (motor.CodeSelection, error) {
	return motor.ParseCodeSelection(c.DefaultClasses)
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if _, err := c.Selection(); err != nil {
		return fmt.Errorf("default_classes: %w", err)
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page_size must be positive, got %d", c.PageSize)
	}
	if c.CacheEntries < 0 {
		return fmt.Errorf("cache_entries must not be negative, got %d", c.CacheEntries)
	}
	if c.LogMaxSizeMB <= 0 {
		return fmt.Errorf("log_max_size_mb must be positive, got %d", c.LogMaxSizeMB)
	}
	if c.LogMaxBackups < 0 {
		return fmt.Errorf("log_max_backups must not be negative, got %d", c.LogMaxBackups)
	}
	return nil
}
