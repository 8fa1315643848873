// Package config loads and watches the atelo configuration: a TOML file in
// the XDG config directory with ATELO_-prefixed environment overrides.
package config

// Config represents the complete configuration for atelo.
type Config struct {
	Database   DatabaseConfig   `mapstructure:"database" toml:"database"`
	Logging    LoggingConfig    `mapstructure:"logging" toml:"logging"`
	Dashboard  DashboardConfig  `mapstructure:"dashboard" toml:"dashboard"`
	Ingest     IngestConfig     `mapstructure:"ingest" toml:"ingest"`
	Appearance AppearanceConfig `mapstructure:"appearance" toml:"appearance"`
}

// DatabaseConfig locates the local document store.
type DatabaseConfig struct {
	// Path is the SQLite database file. Defaults to the XDG data dir.
	Path string `mapstructure:"path" toml:"path"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	// Level is one of trace, debug, info, warn, error.
	Level string `mapstructure:"level" toml:"level"`
	// Format is json or console.
	Format string `mapstructure:"format" toml:"format"`
	// MaxSizeMB rotates the dashboard log file past this size.
	MaxSizeMB int `mapstructure:"max_size_mb" toml:"max_size_mb"`
	// MaxBackups bounds how many rotated files are kept.
	MaxBackups int `mapstructure:"max_backups" toml:"max_backups"`
	// MaxAgeDays drops rotated files older than this.
	MaxAgeDays int `mapstructure:"max_age_days" toml:"max_age_days"`
}

// DashboardConfig shapes the dashboard grid. Cols and Rows are read once
// per dashboard session; the grid is immutable while a session runs.
type DashboardConfig struct {
	Cols int `mapstructure:"cols" toml:"cols"`
	Rows int `mapstructure:"rows" toml:"rows"`
	// CellWidth and CellHeight are the terminal-cell dimensions of one
	// grid cell.
	CellWidth  int `mapstructure:"cell_width" toml:"cell_width"`
	CellHeight int `mapstructure:"cell_height" toml:"cell_height"`
}

// AppearanceConfig themes the TUI.
type AppearanceConfig struct {
	DarkPalette ColorPalette `mapstructure:"dark_palette" toml:"dark_palette"`
}

// ColorPalette holds the hex colors the TUI theme is derived from. Empty
// fields fall back to the built-in dark palette.
type ColorPalette struct {
	Background     string `mapstructure:"background" toml:"background"`
	Surface        string `mapstructure:"surface" toml:"surface"`
	SurfaceVariant string `mapstructure:"surface_variant" toml:"surface_variant"`
	Text           string `mapstructure:"text" toml:"text"`
	Muted          string `mapstructure:"muted" toml:"muted"`
	Accent         string `mapstructure:"accent" toml:"accent"`
	Border         string `mapstructure:"border" toml:"border"`
}

// IngestConfig tunes the free-text ingestion pipeline.
type IngestConfig struct {
	// MinConfidence is the lowest extractor confidence that still stores
	// a record, in [0,1].
	MinConfidence float64 `mapstructure:"min_confidence" toml:"min_confidence"`
	// Concurrency bounds parallel extractions in batch ingestion.
	Concurrency int `mapstructure:"concurrency" toml:"concurrency"`
}
