// ABOUTME: Application configuration for the ConnectHub client and dev backend
// ABOUTME: Layers defaults, an XDG JSON config file, .env, and environment variables
package config

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

const (
	// AppName names the XDG directories.
	AppName = "connecthub"

	// ConfigFileName is the JSON config file inside the XDG config directory.
	ConfigFileName = "config.json"

	DefaultAPIURL = "http://localhost:5000/api"
)

// Config holds client and dev backend settings. Environment variables win
// over the config file, which wins over defaults.
type Config struct {
	APIURL    string        `json:"api_url,omitempty" env:"CONNECTHUB_API_URL, overwrite, default=http://localhost:5000/api"`
	CacheTTL  time.Duration `json:"cache_ttl,omitempty" env:"CONNECTHUB_CACHE_TTL, overwrite, default=30s"`
	LogLevel  string        `json:"log_level,omitempty" env:"CONNECTHUB_LOG_LEVEL, overwrite, default=warn"`
	LogPretty bool          `json:"log_pretty,omitempty" env:"CONNECTHUB_LOG_PRETTY, overwrite"`

	Server ServerConfig `json:"server"`
}

// ServerConfig configures the local development backend.
type ServerConfig struct {
	Addr           string   `json:"addr,omitempty" env:"CONNECTHUB_SERVER_ADDR, overwrite, default=:5000"`
	DBPath         string   `json:"db_path,omitempty" env:"CONNECTHUB_DB_PATH, overwrite"`
	AllowedOrigins []string `json:"allowed_origins,omitempty" env:"CONNECTHUB_ALLOWED_ORIGINS, overwrite, default=http://localhost:3000"`
}

// Path returns the config file location.
func Path() string {
	return filepath.Join(xdg.ConfigHome, AppName, ConfigFileName)
}

// DefaultDBPath returns the dev backend database location.
func DefaultDBPath() string {
	return filepath.Join(xdg.DataHome, AppName, AppName+".db")
}

// Load reads the config file at Path, then .env in the working directory,
// then the process environment.
func Load(ctx context.Context) (*Config, error) {
	return LoadFrom(ctx, Path(), envconfig.OsLookuper())
}

// LoadFrom is Load with an explicit file path and environment lookuper.
func LoadFrom(ctx context.Context, path string, lookuper envconfig.Lookuper) (*Config, error) {
	cfg := &Config{}

	if err := readFile(path, cfg); err != nil {
		return nil, err
	}

	// .env is optional; a missing file is the common case
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("failed to process environment: %w", err)
	}

	if cfg.Server.DBPath == "" {
		cfg.Server.DBPath = DefaultDBPath()
	}

	return cfg, nil
}

func readFile(path string, cfg *Config) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

// Save writes the config file with restricted permissions.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	return os.WriteFile(path, data, 0600)
}
