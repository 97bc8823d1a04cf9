package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/davetashner/tally/internal/output"
)

// Validate checks all fields in the config and returns all errors at once.
func Validate(cfg *Config) error {
	var errs []string

	if cfg.DeliveryDate != "" {
		if _, err := ParseDate(cfg.DeliveryDate); err != nil {
			errs = append(errs, fmt.Sprintf("delivery_date: must be YYYY-MM-DD, got %q", cfg.DeliveryDate))
		}
	}

	if cfg.TeamSize != nil && *cfg.TeamSize < 1 {
		errs = append(errs, fmt.Sprintf("team_size: must be at least 1, got %d", *cfg.TeamSize))
	}

	if cfg.OutputFormat != "" {
		if _, err := output.GetFormatter(cfg.OutputFormat); err != nil {
			errs = append(errs, fmt.Sprintf("output_format: %v", err))
		}
	}

	if cfg.Server.Addr != "" {
		if _, _, err := net.SplitHostPort(cfg.Server.Addr); err != nil {
			errs = append(errs, fmt.Sprintf("server.addr: %v", err))
		}
	}

	if cfg.Server.MaxUploadMB < 0 {
		errs = append(errs, fmt.Sprintf("server.max_upload_mb: must be non-negative, got %d", cfg.Server.MaxUploadMB))
	}

	if cfg.Watch.Debounce != "" {
		d, err := time.ParseDuration(cfg.Watch.Debounce)
		switch {
		case err != nil:
			errs = append(errs, fmt.Sprintf("watch.debounce: invalid duration %q", cfg.Watch.Debounce))
		case d <= 0:
			errs = append(errs, fmt.Sprintf("watch.debounce: must be positive, got %s", d))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}
