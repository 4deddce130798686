package config

import (
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.TickInterval != 500*time.Millisecond {
		t.Errorf("TickInterval = %v, want 500ms", cfg.TickInterval)
	}
	if cfg.DisplayLimit != 20 {
		t.Errorf("DisplayLimit = %d, want 20", cfg.DisplayLimit)
	}
	if cfg.SortBy != "count" {
		t.Errorf("SortBy = %q, want count", cfg.SortBy)
	}
	if cfg.RecentEvents != 100 {
		t.Errorf("RecentEvents = %d, want 100", cfg.RecentEvents)
	}
	if cfg.ControlPath != "/dev/tty" {
		t.Errorf("ControlPath = %q, want /dev/tty", cfg.ControlPath)
	}
	if cfg.MetricsAddr != "" {
		t.Errorf("MetricsAddr = %q, want disabled by default", cfg.MetricsAddr)
	}
}

func TestValidate_DefaultsAreValid(t *testing.T) {
	if err := Validate(DefaultConfig()); err != nil {
		t.Errorf("default config must validate, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"zero tick", func(c *Config) { c.TickInterval = 0 }, "tick"},
		{"negative tick", func(c *Config) { c.TickInterval = -time.Second }, "tick"},
		{"zero limit", func(c *Config) { c.DisplayLimit = 0 }, "limit"},
		{"zero recent", func(c *Config) { c.RecentEvents = 0 }, "recent"},
		{"bad sort", func(c *Config) { c.SortBy = "bogus" }, "sort"},
		{"empty control", func(c *Config) { c.ControlPath = "" }, "control"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)

			err := Validate(cfg)
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !strings.Contains(err.Error(), tt.field) {
				t.Errorf("error %q does not mention field %q", err, tt.field)
			}
		})
	}
}

func TestValidate_CollectsAllErrors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TickInterval = 0
	cfg.SortBy = "bogus"

	err := Validate(cfg)
	if err == nil {
		t.Fatal("Validate() = nil, want error")
	}
	if !strings.Contains(err.Error(), "tick") || !strings.Contains(err.Error(), "sort") {
		t.Errorf("error %q should report both invalid fields", err)
	}
}
