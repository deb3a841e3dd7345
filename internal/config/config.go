package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pelletier/go-toml/v2"

	"moviescroll/internal/eventbus"
	"moviescroll/internal/omdb"
)

// Environment variables that override the config file
const (
	EnvAPIKey  = "OMDB_API_KEY"
	EnvBaseURL = "MOVIESCROLL_BASE_URL"
)

// DefaultBaseURL is the public OMDb endpoint
const DefaultBaseURL = omdb.DefaultBaseURL

// ErrMissingAPIKey is returned by Validate when no API key is configured
var ErrMissingAPIKey = errors.New("no OMDb API key configured (set " + EnvAPIKey + " or api_key in the config file)")

// Config represents the application configuration
type Config struct {
	Version               int        `toml:"version"`
	APIKey                string     `toml:"api_key"`
	BaseURL               string     `toml:"base_url"`
	DebounceMs            int        `toml:"debounce_ms"`
	MinQueryLength        int        `toml:"min_query_length"` // committed text must be longer than this
	RequestTimeoutSeconds int        `toml:"request_timeout_seconds"`
	DetailConcurrency     int        `toml:"detail_concurrency"`
	UISettings            UISettings `toml:"ui"`
}

// UISettings represents UI-related configuration
type UISettings struct {
	MaxColumns   int  `toml:"max_columns"`
	MinCardWidth int  `toml:"min_card_width"`
	Mouse        bool `toml:"mouse"`
}

// Debounce returns the quiet period before a search is committed
func (c *Config) Debounce() time.Duration {
	return time.Duration(c.DebounceMs) * time.Millisecond
}

// RequestTimeout returns the timeout applied to each page fetch
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutSeconds) * time.Second
}

// Validate checks the settings the application cannot run without
func (c *Config) Validate() error {
	if strings.TrimSpace(c.APIKey) == "" {
		return ErrMissingAPIKey
	}
	if c.DebounceMs < 0 {
		return fmt.Errorf("debounce_ms must not be negative, got %d", c.DebounceMs)
	}
	if c.MinQueryLength < 0 {
		return fmt.Errorf("min_query_length must not be negative, got %d", c.MinQueryLength)
	}
	return nil
}

// ApplyEnv overlays environment variables on top of the file settings
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && strings.TrimSpace(v) != "" {
		c.APIKey = strings.TrimSpace(v)
	}
	if v, ok := lookup(EnvBaseURL); ok && strings.TrimSpace(v) != "" {
		c.BaseURL = strings.TrimSpace(v)
	}
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		// Fallback to home directory
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "moviescroll", "config.toml")
}

// NewConfigService creates a config service reading the per-user config file
func NewConfigService() ConfigService {
	return &configService{filePath: DefaultPath()}
}

// NewConfigServiceWithBus creates a config service for path with event bus support.
// An empty path means the per-user default.
func NewConfigServiceWithBus(bus eventbus.EventBus, path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{bus: bus, filePath: path}
}

// Path returns the file the service loads from and saves to
func (cs *configService) Path() string {
	return cs.filePath
}

// Load loads the configuration from file, falling back to defaults when it does not exist
func (cs *configService) Load() (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(cs.filePath); os.IsNotExist(err) {
		cfg = DefaultConfig()
	} else {
		loaded, err := cs.LoadFromPath(cs.filePath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{
			Path:       cs.filePath,
			HasAPIKey:  cfg.APIKey != "",
			DebounceMs: cfg.DebounceMs,
		})
	}

	return cfg, nil
}

// Save saves the configuration to file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}

	return nil
}

// LoadFromPath loads configuration from a specific path.
// Settings missing from the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.normalize()

	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// The file may hold an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// normalize replaces unusable values with defaults
func (c *Config) normalize() {
	d := DefaultConfig()
	if c.BaseURL == "" {
		c.BaseURL = d.BaseURL
	}
	if c.RequestTimeoutSeconds <= 0 {
		c.RequestTimeoutSeconds = d.RequestTimeoutSeconds
	}
	if c.DetailConcurrency <= 0 {
		c.DetailConcurrency = d.DetailConcurrency
	}
	if c.UISettings.MaxColumns <= 0 {
		c.UISettings.MaxColumns = d.UISettings.MaxColumns
	}
	if c.UISettings.MinCardWidth <= 0 {
		c.UISettings.MinCardWidth = d.UISettings.MinCardWidth
	}
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version:               1,
		BaseURL:               DefaultBaseURL,
		DebounceMs:            500,
		MinQueryLength:        3,
		RequestTimeoutSeconds: 10,
		DetailConcurrency:     10,
		UISettings: UISettings{
			MaxColumns:   4,
			MinCardWidth: 28,
			Mouse:        true,
		},
	}
}
