package config

import (
	"fmt"
	"net/url"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration
type Config struct {
	// Service settings
	UniverseURL  string `env:"ROVER_UNIVERSE_URL" envDefault:"https://dev.yieldx.app/apis/universe/v1"`
	OptimizerURL string `env:"ROVER_OPTIMIZER_URL" envDefault:"https://dev.yieldx.app/apis/optimizer/v1"`
	AnalyzerURL  string `env:"ROVER_ANALYZER_URL" envDefault:"https://dev.yieldx.app/apis/portfolio-analyzer/v1"`
	IceDataURL   string `env:"ROVER_ICE_DATA_URL" envDefault:"https://dev.yieldx.app/apis/ice-data/v1/cusips"`

	HTTPTimeout time.Duration `env:"ROVER_HTTP_TIMEOUT" envDefault:"30s"`

	// Search settings
	SearchIndex string `env:"ROVER_SEARCH_INDEX" envDefault:"rover-universe-assets"`
	SearchSize  int    `env:"ROVER_SEARCH_SIZE" envDefault:"1000"`

	// Credentials
	DotenvPath string `env:"ROVER_DOTENV_PATH" envDefault:".env"`

	// Snapshot settings
	DataDir string `env:"ROVER_DATA_DIR"`
}

// NewConfig creates a new configuration with default values
func NewConfig() *Config {
	cfg := &Config{}
	// An empty environment makes env apply only the envDefault tags.
	if err := env.ParseWithOptions(cfg, env.Options{Environment: map[string]string{}}); err != nil {
		panic(fmt.Sprintf("invalid config defaults: %v", err))
	}
	return cfg
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	for name, raw := range map[string]string{
		"universe URL":  c.UniverseURL,
		"optimizer URL": c.OptimizerURL,
		"analyzer URL":  c.AnalyzerURL,
		"ICE data URL":  c.IceDataURL,
	} {
		if raw == "" {
			return fmt.Errorf("%s cannot be empty", name)
		}
		if _, err := url.ParseRequestURI(raw); err != nil {
			return fmt.Errorf("%s is not a valid URL: %w", name, err)
		}
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP timeout must be positive, got: %s", c.HTTPTimeout)
	}

	if c.SearchIndex == "" {
		return fmt.Errorf("search index cannot be empty")
	}

	if c.SearchSize <= 0 {
		return fmt.Errorf("search size must be positive, got: %d", c.SearchSize)
	}

	return nil
}
