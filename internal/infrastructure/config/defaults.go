package config

// Defaults returns the built-in configuration used when no file exists.
func Defaults() *Config {
	return &Config{
		Database: DatabaseConfig{
			// Path is resolved against the XDG data dir when empty.
			Path: "",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 14,
		},
		Dashboard: DashboardConfig{
			Cols:       5,
			Rows:       2,
			CellWidth:  24,
			CellHeight: 8,
		},
		Ingest: IngestConfig{
			MinConfidence: 0.6,
			Concurrency:   4,
		},
	}
}

func applyDefaults(cfg *Config) {
	defaults := Defaults()

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaults.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaults.Logging.Format
	}
	if cfg.Logging.MaxSizeMB <= 0 {
		cfg.Logging.MaxSizeMB = defaults.Logging.MaxSizeMB
	}
	if cfg.Logging.MaxBackups <= 0 {
		cfg.Logging.MaxBackups = defaults.Logging.MaxBackups
	}
	if cfg.Logging.MaxAgeDays <= 0 {
		cfg.Logging.MaxAgeDays = defaults.Logging.MaxAgeDays
	}
	if cfg.Dashboard.Cols <= 0 {
		cfg.Dashboard.Cols = defaults.Dashboard.Cols
	}
	if cfg.Dashboard.Rows <= 0 {
		cfg.Dashboard.Rows = defaults.Dashboard.Rows
	}
	if cfg.Dashboard.CellWidth <= 0 {
		cfg.Dashboard.CellWidth = defaults.Dashboard.CellWidth
	}
	if cfg.Dashboard.CellHeight <= 0 {
		cfg.Dashboard.CellHeight = defaults.Dashboard.CellHeight
	}
	if cfg.Ingest.MinConfidence <= 0 {
		cfg.Ingest.MinConfidence = defaults.Ingest.MinConfidence
	}
	if cfg.Ingest.Concurrency <= 0 {
		cfg.Ingest.Concurrency = defaults.Ingest.Concurrency
	}
}
