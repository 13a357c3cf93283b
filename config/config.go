package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Database DatabaseConfig
	HTTP     HTTPConfig
	Catalogs CatalogsConfig
	Enrich   EnrichConfig
	Logging  LoggingConfig
}

// DatabaseConfig holds the SQLite database location
type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

// HTTPConfig holds settings shared by all outbound catalog clients
type HTTPConfig struct {
	UserAgent string `mapstructure:"user_agent"`
}

// CatalogConfig holds per-catalog endpoint settings
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// CatalogsConfig holds the three external image catalogs
type CatalogsConfig struct {
	OpenFoodFacts CatalogConfig `mapstructure:"openfoodfacts"`
	Openverse     CatalogConfig `mapstructure:"openverse"`
	Wikipedia     CatalogConfig `mapstructure:"wikipedia"`
}

// EnrichConfig holds enrichment run settings
type EnrichConfig struct {
	Limit   int `mapstructure:"limit"`
	DelayMS int `mapstructure:"delay_ms"`
}

// LoggingConfig holds logger settings. An empty file keeps log output
// on the console only.
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("pricehound")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/pricehound/")

	v.SetEnvPrefix("PRICEHOUND")
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "data/grocery.db")

	v.SetDefault("http.user_agent", "pricehound/1.0 (+https://github.com/pricehound/pricehound)")

	v.SetDefault("catalogs.openfoodfacts.base_url", "https://world.openfoodfacts.org")
	v.SetDefault("catalogs.openfoodfacts.timeout", "4s")
	// Openverse is slower to answer; it gets a longer budget.
	v.SetDefault("catalogs.openverse.base_url", "https://api.openverse.org")
	v.SetDefault("catalogs.openverse.timeout", "8s")
	v.SetDefault("catalogs.wikipedia.base_url", "https://en.wikipedia.org")
	v.SetDefault("catalogs.wikipedia.timeout", "4s")

	v.SetDefault("enrich.limit", 0)
	v.SetDefault("enrich.delay_ms", 120)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.file", "")
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Database.Path == "" {
		return fmt.Errorf("database path must not be empty")
	}

	if config.Enrich.DelayMS < 0 {
		return fmt.Errorf("enrich delay must be >= 0, got: %d", config.Enrich.DelayMS)
	}

	for name, c := range map[string]CatalogConfig{
		"openfoodfacts": config.Catalogs.OpenFoodFacts,
		"openverse":     config.Catalogs.Openverse,
		"wikipedia":     config.Catalogs.Wikipedia,
	} {
		if c.BaseURL == "" {
			return fmt.Errorf("catalog %s: base URL must not be empty", name)
		}
		if c.Timeout <= 0 {
			return fmt.Errorf("catalog %s: timeout must be positive, got: %s", name, c.Timeout)
		}
	}

	return nil
}
