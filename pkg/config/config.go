// Package config holds the runtime configuration for the range-builder
// controller. Configuration is loaded from an optional YAML file;
// command-line flags override file values in main.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration.
type Config struct {
	// BindAddress is the host:port the HTTP API listens on.
	BindAddress string `yaml:"bind_address"`

	// Browser configures the sessions the registry launches.
	Browser BrowserConfig `yaml:"browser"`
}

// BrowserConfig configures launched browser sessions.
type BrowserConfig struct {
	// Engine selects the browser binary: "firefox" or "chromium".
	Engine string `yaml:"engine"`

	// Headless controls whether browsers run without a visible window.
	Headless bool `yaml:"headless"`

	// ViewportWidth and ViewportHeight set the context viewport.
	ViewportWidth  int `yaml:"viewport_width"`
	ViewportHeight int `yaml:"viewport_height"`

	// UserAgent overrides the context user agent string.
	UserAgent string `yaml:"user_agent"`
}

// Default returns the configuration used when no file or flags are
// given.
func Default() *Config {
	return &Config{
		BindAddress: "127.0.0.1:8000",
		Browser: BrowserConfig{
			Engine:         "firefox",
			Headless:       false,
			ViewportWidth:  1920,
			ViewportHeight: 1080,
		},
	}
}

// Load reads a YAML configuration file over the defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for values the server cannot run
// with.
func (c *Config) Validate() error {
	if c.BindAddress == "" {
		return fmt.Errorf("bind_address is required")
	}
	switch c.Browser.Engine {
	case "firefox", "chromium":
	default:
		return fmt.Errorf("invalid browser engine: %s (must be 'firefox' or 'chromium')", c.Browser.Engine)
	}
	if c.Browser.ViewportWidth <= 0 || c.Browser.ViewportHeight <= 0 {
		return fmt.Errorf("viewport dimensions must be positive")
	}
	return nil
}
