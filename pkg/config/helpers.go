package config

import (
	"fmt"
	"strconv"

	"github.com/narwhalmedia/requestbot/pkg/logger"
)

// Load is a helper to load the bot configuration over the defaults.
func Load() (*Config, error) {
	cfg := GetDefaults()
	if err := NewManager().LoadConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ToLoggerConfig converts config to logger package config
func (c LoggerConfig) ToLoggerConfig(service ServiceConfig) *logger.Config {
	cfg := logger.DefaultConfig()
	if c.Development || IsDevelopment(&service) {
		cfg = logger.DevelopmentConfig()
	}
	if c.Level != "" {
		cfg.Level = c.Level
	}
	if c.Format != "" {
		cfg.Encoding = c.Format
	}
	cfg.InitialFields = map[string]interface{}{
		"service": service.Name,
		"env":     service.Environment,
	}
	return cfg
}

// OwnerUserID parses the configured owner. ok is false in open mode;
// err is set when an owner is configured but is not a number.
func (c AccessConfig) OwnerUserID() (id int64, ok bool, err error) {
	if c.OwnerID == "" {
		return 0, false, nil
	}
	id, err = strconv.ParseInt(c.OwnerID, 10, 64)
	if err != nil {
		return 0, true, fmt.Errorf("owner id %q is not an integer: %w", c.OwnerID, err)
	}
	return id, true, nil
}

// GetServiceVersion returns the service version from config
func GetServiceVersion(cfg *ServiceConfig) string {
	if cfg.Version != "" {
		return cfg.Version
	}
	return "dev"
}

// IsDevelopment returns true if running in development environment
func IsDevelopment(cfg *ServiceConfig) bool {
	return cfg.Environment == "development" || cfg.Environment == "dev"
}

// HealthAddress returns the listen address for the health server
func HealthAddress(cfg *HealthConfig) string {
	return fmt.Sprintf(":%d", cfg.Port)
}
