package config

import (
	"errors"
	"fmt"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the configuration for errors and inconsistencies.
// Returns nil if valid, or an error describing every problem found.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.TickInterval <= 0 {
		errs = append(errs, ValidationError{
			Field:   "tick",
			Message: "must be positive",
		})
	}

	if cfg.DisplayLimit < 1 {
		errs = append(errs, ValidationError{
			Field:   "limit",
			Message: "must be at least 1",
		})
	}

	if cfg.RecentEvents < 1 {
		errs = append(errs, ValidationError{
			Field:   "recent",
			Message: "must be at least 1",
		})
	}

	validSorts := map[string]bool{
		"count": true, "path": true, "status": true, "ip": true, "user-agent": true,
	}
	if !validSorts[cfg.SortBy] {
		errs = append(errs, ValidationError{
			Field:   "sort",
			Message: fmt.Sprintf("must be one of: count, path, status, ip, user-agent (got %q)", cfg.SortBy),
		})
	}

	if cfg.ControlPath == "" {
		errs = append(errs, ValidationError{
			Field:   "control",
			Message: "must not be empty",
		})
	}

	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[cfg.LogFormat] {
		errs = append(errs, ValidationError{
			Field:   "log_format",
			Message: fmt.Sprintf("must be 'json' or 'text' (got %q)", cfg.LogFormat),
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	return nil
}
