// Package config provides configuration management for httop.
package config

import "time"

// Config holds all configuration options for the dashboard.
type Config struct {
	// Dashboard
	TickInterval time.Duration `json:"tick_interval"`
	DisplayLimit int           `json:"display_limit"`
	SortBy       string        `json:"sort_by"` // count, path, status, ip, user-agent
	RecentEvents int           `json:"recent_events"`

	// Control input
	ControlPath string `json:"control_path"`

	// Observability
	MetricsAddr string `json:"metrics_addr"` // empty = disabled
	LogFile     string `json:"log_file"`     // empty = discard
	LogFormat   string `json:"log_format"`   // json, text
	Verbose     bool   `json:"verbose"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		// Dashboard
		TickInterval: 500 * time.Millisecond,
		DisplayLimit: 20,
		SortBy:       "count",
		RecentEvents: 100,

		// Control input
		ControlPath: "/dev/tty",

		// Observability
		MetricsAddr: "", // Disabled unless requested
		LogFile:     "",
		LogFormat:   "json",
		Verbose:     false,
	}
}
