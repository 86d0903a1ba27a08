package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the root configuration structure for Soundcork.
// All configuration is loaded from YAML and can be overridden by environment variables.
type Config struct {
	Store   StoreConfig   `yaml:"store"`
	Devices DevicesConfig `yaml:"devices"`
	Box     BoxConfig     `yaml:"box"`
	API     APIConfig     `yaml:"api"`
	Logging LoggingConfig `yaml:"logging"`
}

// StoreConfig contains filesystem datastore settings.
type StoreConfig struct {
	// DataDir is the root of the account/device/group record tree.
	DataDir string `yaml:"data_dir"`
}

// DevicesConfig contains device registry settings.
type DevicesConfig struct {
	// EligibleType is the one hardware model permitted to join stereo groups.
	EligibleType string `yaml:"eligible_type"`
}

// BoxConfig contains settings for the speakers' own control endpoints.
type BoxConfig struct {
	// Port is the fixed control port every speaker listens on.
	Port int `yaml:"port"`
	// Timeout is the per-call timeout in seconds.
	Timeout int `yaml:"timeout"`
}

// APIConfig contains HTTP API server settings.
type APIConfig struct {
	Host     string           `yaml:"host"`
	Port     int              `yaml:"port"`
	Timeouts APITimeoutConfig `yaml:"timeouts"`
}

// APITimeoutConfig contains HTTP timeout settings in seconds.
type APITimeoutConfig struct {
	Read  int `yaml:"read"`
	Write int `yaml:"write"`
	Idle  int `yaml:"idle"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Output string `yaml:"output"`
}

// Load reads configuration from a YAML file and applies environment variable overrides.
//
// The configuration loading order is:
//  1. Default values (hardcoded)
//  2. YAML file values (override defaults)
//  3. Environment variables (override file values)
//
// Environment variables follow the pattern: SOUNDCORK_SECTION_KEY
// For example: SOUNDCORK_STORE_DATA_DIR, SOUNDCORK_API_PORT
//
// Parameters:
//   - path: Path to the YAML configuration file
//
// Returns:
//   - *Config: Loaded and validated configuration
//   - error: If file cannot be read, parsed, or validation fails
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// defaultConfig returns a Config with sensible defaults.
func defaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DataDir: "./data",
		},
		Devices: DevicesConfig{
			EligibleType: "SoundTouch 10",
		},
		Box: BoxConfig{
			Port:    8090,
			Timeout: 4,
		},
		API: APIConfig{
			Host: "0.0.0.0",
			Port: 8000,
			Timeouts: APITimeoutConfig{
				Read:  30,
				Write: 30,
				Idle:  60,
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: "stdout",
		},
	}
}

// applyEnvOverrides applies environment variable overrides to the configuration.
// Environment variables follow the pattern: SOUNDCORK_SECTION_KEY
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("SOUNDCORK_STORE_DATA_DIR"); v != "" {
		cfg.Store.DataDir = v
	}
	if v := os.Getenv("SOUNDCORK_DEVICES_ELIGIBLE_TYPE"); v != "" {
		cfg.Devices.EligibleType = v
	}
	if v := os.Getenv("SOUNDCORK_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("SOUNDCORK_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}
	if v := os.Getenv("SOUNDCORK_BOX_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Box.Port = port
		}
	}
	if v := os.Getenv("SOUNDCORK_LOGGING_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
}

// Validate checks the configuration for errors.
//
// Returns:
//   - error: Description of validation failure, or nil if valid
func (c *Config) Validate() error {
	var errs []string

	if c.Store.DataDir == "" {
		errs = append(errs, "store.data_dir is required")
	}
	if c.Devices.EligibleType == "" {
		errs = append(errs, "devices.eligible_type is required")
	}
	if c.Box.Port < 1 || c.Box.Port > 65535 {
		errs = append(errs, "box.port must be between 1 and 65535")
	}
	if c.Box.Timeout < 1 {
		errs = append(errs, "box.timeout must be at least 1 second")
	}
	if c.API.Port < 1 || c.API.Port > 65535 {
		errs = append(errs, "api.port must be between 1 and 65535")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}

	return nil
}

// GetBoxTimeout returns the per-call box timeout as a Duration.
func (c *Config) GetBoxTimeout() time.Duration {
	return time.Duration(c.Box.Timeout) * time.Second
}

// GetReadTimeout returns the API read timeout as a Duration.
func (c *Config) GetReadTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Read) * time.Second
}

// GetWriteTimeout returns the API write timeout as a Duration.
func (c *Config) GetWriteTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Write) * time.Second
}

// GetIdleTimeout returns the API idle timeout as a Duration.
func (c *Config) GetIdleTimeout() time.Duration {
	return time.Duration(c.API.Timeouts.Idle) * time.Second
}
