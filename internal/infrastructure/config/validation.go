package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

func validate(cfg *Config) error {
	switch cfg.Logging.Level {
	case "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalidConfig, cfg.Logging.Level)
	}

	switch cfg.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format %q", ErrInvalidConfig, cfg.Logging.Format)
	}

	if cfg.Dashboard.Cols < 1 || cfg.Dashboard.Cols > 12 {
		return fmt.Errorf("%w: dashboard.cols %d not in [1,12]", ErrInvalidConfig, cfg.Dashboard.Cols)
	}
	if cfg.Dashboard.Rows < 1 || cfg.Dashboard.Rows > 8 {
		return fmt.Errorf("%w: dashboard.rows %d not in [1,8]", ErrInvalidConfig, cfg.Dashboard.Rows)
	}
	if cfg.Dashboard.CellWidth < 8 {
		return fmt.Errorf("%w: dashboard.cell_width %d below 8", ErrInvalidConfig, cfg.Dashboard.CellWidth)
	}
	if cfg.Dashboard.CellHeight < 3 {
		return fmt.Errorf("%w: dashboard.cell_height %d below 3", ErrInvalidConfig, cfg.Dashboard.CellHeight)
	}

	if cfg.Ingest.MinConfidence < 0 || cfg.Ingest.MinConfidence > 1 {
		return fmt.Errorf("%w: ingest.min_confidence %.2f not in [0,1]", ErrInvalidConfig, cfg.Ingest.MinConfidence)
	}
	if cfg.Ingest.Concurrency < 1 {
		return fmt.Errorf("%w: ingest.concurrency %d below 1", ErrInvalidConfig, cfg.Ingest.Concurrency)
	}

	return nil
}
