package config

import (
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 5, cfg.Dashboard.Cols)
	assert.Equal(t, 2, cfg.Dashboard.Rows)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Database.Path)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := filepath.Join(configHome, appDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[logging]
level = "debug"

[dashboard]
cols = 6
rows = 3
`), 0o600))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 6, cfg.Dashboard.Cols)
	assert.Equal(t, 3, cfg.Dashboard.Rows)
	// Unset sections keep their defaults.
	assert.Equal(t, 0.6, cfg.Ingest.MinConfidence)
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := filepath.Join(configHome, appDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(`
[dashboard]
cols = 40
`), 0o600))

	m, err := NewManager()
	require.NoError(t, err)

	err = m.Load()
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestWatch_ReloadsAndNotifiesOnFileChange(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	dir := filepath.Join(configHome, appDirName)
	require.NoError(t, os.MkdirAll(dir, 0o750))
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[logging]
level = "info"
`), 0o600))

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	var mu sync.Mutex
	var notified []*Config
	m.OnConfigChange(func(c *Config) {
		mu.Lock()
		notified = append(notified, c)
		mu.Unlock()
	})
	m.Watch()
	m.Watch() // second call is a no-op

	require.NoError(t, os.WriteFile(path, []byte(`
[logging]
level = "debug"
`), 0o600))

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(notified) > 0 && notified[len(notified)-1].Logging.Level == "debug"
	}, 5*time.Second, 25*time.Millisecond)

	assert.Equal(t, "debug", m.Get().Logging.Level)
}

func TestValidate_Table(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults are valid", func(*Config) {}, true},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, false},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, false},
		{"zero rows", func(c *Config) { c.Dashboard.Rows = 0 }, false},
		{"narrow cells", func(c *Config) { c.Dashboard.CellWidth = 2 }, false},
		{"confidence above one", func(c *Config) { c.Ingest.MinConfidence = 1.5 }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			applyDefaults(cfg)
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidConfig)
			}
		})
	}
}
