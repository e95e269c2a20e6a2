package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Default config file path.
const DefaultConfigPath = "~/.config/streak/config.yaml"

// Config holds all process-level streak configuration. The application's
// own record (yearly goal, counter, sync key) is data and lives in the
// store, not here.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Remote  RemoteConfig  `yaml:"remote"`
	Logging LoggingConfig `yaml:"logging"`
}

// StorageConfig selects and locates the local key-value backend.
type StorageConfig struct {
	// Driver is one of "disk", "sqlite", "memory".
	Driver string `yaml:"driver"`
	// Path is the data directory. The sqlite driver stores its database
	// file inside it.
	Path string `yaml:"path"`
	// SQLiteFile is the database filename used by the sqlite driver.
	SQLiteFile string `yaml:"sqlite_file"`
}

// RemoteConfig points at the cloud backup endpoint.
type RemoteConfig struct {
	URL            string `yaml:"url"`
	APIKey         string `yaml:"api_key"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads a YAML config file at path and merges it with defaults.
// Returns an error if the file cannot be read or contains invalid YAML.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks fills zero-valued fields with defaults so a partial file
// still yields a usable Config.
func (c *Config) applyFallbacks() {
	def := DefaultConfig()
	if c.Storage.Driver == "" {
		c.Storage.Driver = def.Storage.Driver
	}
	if c.Storage.Path == "" {
		c.Storage.Path = def.Storage.Path
	}
	if c.Storage.SQLiteFile == "" {
		c.Storage.SQLiteFile = def.Storage.SQLiteFile
	}
	if c.Remote.URL == "" {
		c.Remote.URL = def.Remote.URL
	}
	if c.Remote.APIKey == "" {
		c.Remote.APIKey = def.Remote.APIKey
	}
	if c.Remote.TimeoutSeconds <= 0 {
		c.Remote.TimeoutSeconds = def.Remote.TimeoutSeconds
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
}

// Validate checks configuration consistency.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case "disk", "sqlite", "memory":
	default:
		return fmt.Errorf("unknown storage driver %q (use disk, sqlite, or memory)", c.Storage.Driver)
	}
	if c.Remote.URL == "" {
		return fmt.Errorf("remote.url must not be empty")
	}
	if c.Remote.TimeoutSeconds <= 0 {
		return fmt.Errorf("remote.timeout_seconds must be positive, got %d", c.Remote.TimeoutSeconds)
	}
	return nil
}

// ExpandPath replaces a leading ~ with the user's home directory.
func ExpandPath(path string) (string, error) {
	if len(path) > 0 && path[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolving home directory: %w", err)
		}
		return filepath.Join(home, path[1:]), nil
	}
	return path, nil
}

// LoadOrCreate loads the config from the default path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreate() (*Config, error) {
	path, err := ExpandPath(DefaultConfigPath)
	if err != nil {
		return nil, err
	}
	return LoadOrCreateAt(path)
}

// LoadOrCreateAt loads the config from the given path. If the file does
// not exist, it creates the directory structure and writes defaults.
func LoadOrCreateAt(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		cfg := DefaultConfig()

		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating config directory: %w", err)
		}

		data, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("marshaling default config: %w", err)
		}

		if err := os.WriteFile(path, data, 0644); err != nil {
			return nil, fmt.Errorf("writing default config: %w", err)
		}

		return cfg, nil
	}

	return Load(path)
}
