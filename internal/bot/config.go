// Package bot wires the shop dialogue engine on top of the reusable
// Telegram core: command/callback handlers, conversation routing, the
// admin panel, and the app lifecycle.
package bot

import (
	"fmt"
	"os"
	"strings"
	"time"

	coreconfig "bazaarbot/core/config"
	coredatabase "bazaarbot/core/database"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// AdminConfig holds operator authentication settings.
type AdminConfig struct {
	// Password is a placeholder by default and must be overridden in
	// production deployments.
	Password       string `yaml:"password" envconfig:"ADMIN_PASSWORD"`
	SessionSeconds int    `yaml:"session_seconds" envconfig:"ADMIN_SESSION_SECONDS"`
}

const (
	defaultAdminPassword  = "admin123"
	defaultSessionSeconds = 3600
)

// SessionDuration returns the configured admin session lifetime.
func (a AdminConfig) SessionDuration() time.Duration {
	return time.Duration(a.SessionSeconds) * time.Second
}

// Config aggregates core, database, and shop-specific settings.
type Config struct {
	Core     coreconfig.Config   `yaml:",inline"`
	Database coredatabase.Config `yaml:"database"`
	Admin    AdminConfig         `yaml:"admin"`
}

// CoreConfig exposes the embedded core configuration for the runner.
func (c *Config) CoreConfig() *coreconfig.Config {
	if c == nil {
		return nil
	}
	return &c.Core
}

// LoadConfig reads the YAML config file, overlays environment variables,
// and applies defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML config: %w", err)
	}
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env: %w", err)
	}

	if err := coreconfig.Normalize(&cfg.Core); err != nil {
		return nil, err
	}
	if err := normalizeApp(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func normalizeApp(cfg *Config) error {
	if strings.TrimSpace(cfg.Admin.Password) == "" {
		cfg.Admin.Password = defaultAdminPassword
	}
	if cfg.Admin.SessionSeconds <= 0 {
		cfg.Admin.SessionSeconds = defaultSessionSeconds
	}
	if cfg.Database.Host == "" {
		return fmt.Errorf("database.host is required")
	}
	if cfg.Database.Name == "" {
		return fmt.Errorf("database.name is required")
	}
	if cfg.Database.Port == "" {
		cfg.Database.Port = "5432"
	}
	if cfg.Database.SSLMode == "" {
		cfg.Database.SSLMode = "disable"
	}
	if cfg.Database.ClientEncoding == "" {
		cfg.Database.ClientEncoding = "UTF8"
	}
	if cfg.Database.MaxConnections <= 0 {
		cfg.Database.MaxConnections = 10
	}
	return nil
}
