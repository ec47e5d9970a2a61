package shared

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

//go:embed config.example.toml
var exampleConf []byte

// Environment variables that override the catalog credentials from the config file.
const (
	EnvBaseURL = "MARQUEE_BASE_URL"
	EnvAPIKey  = "MARQUEE_API_KEY"
)

// Config represents the application configuration loaded from a TOML file.
type Config struct {
	Catalog  CatalogConfig  `toml:"catalog"`
	Display  DisplayConfig  `toml:"display"`
	Posters  PostersConfig  `toml:"posters"`
	Database DatabaseConfig `toml:"database"`
	Logging  LoggingConfig  `toml:"logging"`
}

// CatalogConfig contains the catalog API endpoint and credentials.
type CatalogConfig struct {
	BaseURL        string `toml:"base_url"`
	APIKey         string `toml:"api_key"`
	Host           string `toml:"host"`
	Language       string `toml:"language"`
	Adult          bool   `toml:"adult"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	DefaultGroup   string `toml:"default_group"`
}

// DisplayConfig contains the terminal geometry and animation settings of the gallery.
type DisplayConfig struct {
	CellWidth   int          `toml:"cell_width"`
	CellHeight  int          `toml:"cell_height"`
	Columns     int          `toml:"columns"`
	FPS         int          `toml:"fps"`
	StaggerMS   int          `toml:"stagger_ms"`
	ClampOffset bool         `toml:"clamp_offset"`
	SpringX     SpringConfig `toml:"spring_x"`
	SpringY     SpringConfig `toml:"spring_y"`
}

// SpringConfig holds physical spring constants for one pan axis.
type SpringConfig struct {
	Stiffness float64 `toml:"stiffness"`
	Damping   float64 `toml:"damping"`
	Mass      float64 `toml:"mass"`
}

// PostersConfig controls background poster downloads.
type PostersConfig struct {
	Enabled        bool    `toml:"enabled"`
	RateLimit      float64 `toml:"rate_limit"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// DatabaseConfig contains database connection settings.
type DatabaseConfig struct {
	Path         string `toml:"path"`
	MaxOpenConns int    `toml:"max_open_conns"`
	MaxIdleConns int    `toml:"max_idle_conns"`
}

// LoggingConfig contains log level and the log file used while the TUI runs.
type LoggingConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// LoadConfig reads and parses a TOML configuration file from the specified path.
//
// Keys missing from the file keep the values of [DefaultConfig].
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrMissingConfig, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// DefaultConfig returns a Config with sensible defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// CreateConfigFile creates a config.toml file at the specified path using the embedded example config.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.WriteFile(path, exampleConf, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// LoadEnvFile loads KEY=VALUE pairs from a dotenv file into the process environment.
//
// A missing file is not an error.
func LoadEnvFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// ApplyEnv overrides catalog credentials with [EnvBaseURL] and [EnvAPIKey] when they are set.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv(EnvBaseURL)); v != "" {
		c.Catalog.BaseURL = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvAPIKey)); v != "" {
		c.Catalog.APIKey = v
	}
}

// Validate reports the first setting that would make the gallery unusable.
func (c *Config) Validate() error {
	if c.Catalog.BaseURL == "" {
		return fmt.Errorf("%w: catalog.base_url is empty", ErrInvalidConfig)
	}
	if u, err := url.Parse(c.Catalog.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: catalog.base_url %q is not an absolute URL", ErrInvalidConfig, c.Catalog.BaseURL)
	}
	if c.Display.CellWidth <= 0 || c.Display.CellHeight <= 0 {
		return fmt.Errorf("%w: display cell metrics must be positive", ErrInvalidConfig)
	}
	if c.Display.Columns <= 0 {
		return fmt.Errorf("%w: display.columns must be positive", ErrInvalidConfig)
	}
	if c.Display.FPS <= 0 {
		return fmt.Errorf("%w: display.fps must be positive", ErrInvalidConfig)
	}
	for name, s := range map[string]SpringConfig{"spring_x": c.Display.SpringX, "spring_y": c.Display.SpringY} {
		if s.Stiffness <= 0 || s.Mass <= 0 || s.Damping < 0 {
			return fmt.Errorf("%w: display.%s constants out of range", ErrInvalidConfig, name)
		}
	}
	return nil
}
