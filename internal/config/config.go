package config

import (
	"errors"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

var ErrMissingDatabaseURL = errors.New("config: DATABASE_URL is required")

// Config holds server configuration. Values come from an optional YAML file
// (CONFIG_FILE, default config.yaml) with environment variables taking
// precedence, so deployments can override a checked-in file per environment.
type Config struct {
	Port           string   `yaml:"port"`
	Environment    string   `yaml:"environment"`
	DatabaseURL    string   `yaml:"database_url"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

// Load reads the YAML file at path (missing file is fine), then applies env
// overrides and defaults.
//
// Environment variables:
//   - PORT: listen port (default "5050")
//   - APP_ENV: "production" enables secure cookies (default "development")
//   - DATABASE_URL: postgres DSN (required)
//   - ALLOWED_ORIGINS: comma-separated CORS allow-list
func Load(path string) (Config, error) {
	var cfg Config

	if path == "" {
		path = "config.yaml"
	}
	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, err
		}
	} else if !os.IsNotExist(err) {
		return Config{}, err
	}

	if v := os.Getenv("PORT"); v != "" {
		cfg.Port = v
	}
	if v := strings.ToLower(strings.TrimSpace(os.Getenv("APP_ENV"))); v != "" {
		cfg.Environment = v
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, origin := range strings.Split(v, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
			}
		}
	}

	if cfg.Port == "" {
		cfg.Port = "5050"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	return cfg, nil
}

func (c Config) Production() bool {
	return c.Environment == "production"
}

// Validate checks the configuration is complete enough to start the server.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return ErrMissingDatabaseURL
	}
	return nil
}
