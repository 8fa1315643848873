package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"

	"github.com/atelo/atelo/internal/logging"
)

// Manager handles configuration loading, watching, and reloading. It is
// constructed once at startup and passed down explicitly; there is no
// package-level instance.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a configuration manager reading config.toml from the
// XDG config dir with ATELO_-prefixed env overrides.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := ConfigDir()
	if err != nil {
		return nil, fmt.Errorf("determine config directory: %w", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // current directory for development

	v.SetEnvPrefix("ATELO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "ATELO_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("bind ATELO_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "ATELO_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("bind ATELO_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load reads the configuration file. A missing file is not an error; the
// defaults apply.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.reload()
}

// reload must be called with m.mu held for write.
func (m *Manager) reload() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return fmt.Errorf("read config: %w", err)
		}
	}

	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	applyDefaults(config)

	if config.Database.Path == "" {
		dbPath, err := DatabaseFile()
		if err != nil {
			return fmt.Errorf("determine database path: %w", err)
		}
		config.Database.Path = dbPath
	}

	if err := validate(config); err != nil {
		return fmt.Errorf("configuration invalid: %w", err)
	}

	m.config = config
	return nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

// Watch starts watching the config file and reloads on external changes.
// Registered callbacks run with the fresh config after each reload.
func (m *Manager) Watch() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return
	}

	m.viper.WatchConfig()
	m.viper.OnConfigChange(func(e fsnotify.Event) {
		log := logging.NewFromEnv()
		log.Debug().Str("op", e.Op.String()).Str("file", e.Name).Msg("config change detected")

		m.mu.Lock()
		if err := m.reload(); err != nil {
			m.mu.Unlock()
			log.Warn().Err(err).Msg("failed to reload config, keeping previous")
			return
		}

		config := m.config
		callbacks := make([]func(*Config), len(m.callbacks))
		copy(callbacks, m.callbacks)
		m.mu.Unlock()

		for _, callback := range callbacks {
			callback(config)
		}
	})

	m.watching = true
}

// OnConfigChange registers a callback invoked after each successful reload.
func (m *Manager) OnConfigChange(callback func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, callback)
}
