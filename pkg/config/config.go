package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	apperrors "github.com/narwhalmedia/requestbot/pkg/errors"
)

// Config is the full bot configuration.
type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	Telegram  TelegramConfig  `koanf:"telegram"`
	Overseerr OverseerrConfig `koanf:"overseerr"`
	Access    AccessConfig    `koanf:"access"`
	Bot       BotConfig       `koanf:"bot"`
	Logger    LoggerConfig    `koanf:"logger"`
	NATS      NATSConfig      `koanf:"nats"`
	Health    HealthConfig    `koanf:"health"`
}

// ServiceConfig contains service metadata.
type ServiceConfig struct {
	Name        string `koanf:"name"`
	Version     string `koanf:"version"`
	Environment string `koanf:"environment"` // dev, staging, production
}

// TelegramConfig contains chat transport settings.
type TelegramConfig struct {
	Token       string  `koanf:"token"`
	PollTimeout int     `koanf:"poll_timeout"` // seconds
	SendRate    float64 `koanf:"send_rate"`    // messages per second
	SendBurst   int     `koanf:"send_burst"`
	Debug       bool    `koanf:"debug"`
}

// OverseerrConfig contains the media-request service settings.
type OverseerrConfig struct {
	URL       string        `koanf:"url"`
	APIKey    string        `koanf:"api_key"`
	ImageBase string        `koanf:"image_base"`
	Request4K bool          `koanf:"request_4k"`
	Timeout   time.Duration `koanf:"timeout"`
}

// AccessConfig restricts the bot to one owner. Empty means open mode.
type AccessConfig struct {
	OwnerID string `koanf:"owner_id"`
}

// BotConfig tunes the interaction controller.
type BotConfig struct {
	EnrichWorkers int `koanf:"enrich_workers"`
}

// LoggerConfig contains logging configuration.
type LoggerConfig struct {
	Level       string `koanf:"level"`  // debug, info, warn, error
	Format      string `koanf:"format"` // json, console
	Development bool   `koanf:"development"`
}

// NATSConfig enables request event publishing when URL is set.
type NATSConfig struct {
	URL           string        `koanf:"url"`
	SubjectPrefix string        `koanf:"subject_prefix"`
	MaxReconnect  int           `koanf:"max_reconnect"`
	ReconnectWait time.Duration `koanf:"reconnect_wait"`
}

// HealthConfig controls the liveness endpoint. Port 0 disables it.
type HealthConfig struct {
	Port int `koanf:"port"`
}

// envKeys maps the deployment's environment variable names onto config keys.
var envKeys = map[string]string{
	"SERVICE_NAME":           "service.name",
	"SERVICE_VERSION":        "service.version",
	"ENVIRONMENT":            "service.environment",
	"TELEGRAM_BOT_TOKEN":     "telegram.token",
	"TELEGRAM_POLL_TIMEOUT":  "telegram.poll_timeout",
	"TELEGRAM_SEND_RATE":     "telegram.send_rate",
	"TELEGRAM_SEND_BURST":    "telegram.send_burst",
	"TELEGRAM_DEBUG":         "telegram.debug",
	"OVERSEERR_URL":          "overseerr.url",
	"OVERSEERR_API_KEY":      "overseerr.api_key",
	"OVERSEERR_TIMEOUT":      "overseerr.timeout",
	"TMDB_IMAGE_BASE":        "overseerr.image_base",
	"REQUEST_4K":             "overseerr.request_4k",
	"OWNER_TELEGRAM_USER_ID": "access.owner_id",
	"ENRICH_WORKERS":         "bot.enrich_workers",
	"LOG_LEVEL":              "logger.level",
	"LOG_FORMAT":             "logger.format",
	"LOG_DEVELOPMENT":        "logger.development",
	"NATS_URL":               "nats.url",
	"NATS_SUBJECT_PREFIX":    "nats.subject_prefix",
	"NATS_MAX_RECONNECT":     "nats.max_reconnect",
	"NATS_RECONNECT_WAIT":    "nats.reconnect_wait",
	"HEALTH_PORT":            "health.port",
}

// required lists mandatory settings by their environment variable name.
var required = []struct {
	env   string
	value func(*Config) string
}{
	{"TELEGRAM_BOT_TOKEN", func(c *Config) string { return c.Telegram.Token }},
	{"OVERSEERR_URL", func(c *Config) string { return c.Overseerr.URL }},
	{"OVERSEERR_API_KEY", func(c *Config) string { return c.Overseerr.APIKey }},
}

// Manager handles configuration loading and parsing.
type Manager struct {
	k           *koanf.Koanf
	configPaths []string
	dotenvPath  string
}

// NewManager creates a new configuration manager.
func NewManager() *Manager {
	return &Manager{
		k:           koanf.New("."),
		configPaths: getDefaultConfigPaths(),
		dotenvPath:  ".env",
	}
}

// LoadConfig loads configuration from all sources, lowest precedence first:
// struct defaults, config files, .env, process environment.
func (m *Manager) LoadConfig(cfg *Config) error {
	if err := m.loadDotenv(); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeConfig, "failed to load "+m.dotenvPath, err)
	}

	if err := m.k.Load(structs.Provider(cfg, "koanf"), nil); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeConfig, "failed to load defaults", err)
	}

	for _, path := range m.configPaths {
		if err := m.loadFromFile(path); err != nil {
			if !os.IsNotExist(err) {
				return apperrors.Wrap(apperrors.ErrorTypeConfig, "failed to load config from "+path, err)
			}
		}
	}

	if err := m.k.Load(env.ProviderWithValue("", ".", mapEnv), nil); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeConfig, "failed to load from environment", err)
	}

	if err := m.k.Unmarshal("", cfg); err != nil {
		return apperrors.Wrap(apperrors.ErrorTypeConfig, "failed to unmarshal config", err)
	}

	cfg.normalize()
	return cfg.Validate()
}

// String returns a string value for the given key.
func (m *Manager) String(key string) string {
	return m.k.String(key)
}

// loadDotenv exports KEY=VALUE pairs from the dotenv file without
// overriding variables already set in the process environment.
func (m *Manager) loadDotenv() error {
	if _, err := os.Stat(m.dotenvPath); os.IsNotExist(err) {
		return nil
	}
	return godotenv.Load(m.dotenvPath)
}

// loadFromFile loads configuration from a file.
func (m *Manager) loadFromFile(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return err
	}

	var parser koanf.Parser
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return fmt.Errorf("unsupported config file format: %s", ext)
	}

	return m.k.Load(file.Provider(path), parser)
}

// mapEnv translates a known environment variable into its config key.
// Unknown and empty variables are dropped.
func mapEnv(name, value string) (string, interface{}) {
	key, ok := envKeys[name]
	if !ok || strings.TrimSpace(value) == "" {
		return "", nil
	}
	if key == "overseerr.request_4k" {
		return key, ParseFlag(value)
	}
	return key, strings.TrimSpace(value)
}

// ParseFlag accepts 1/true/yes/y in any casing as true.
func ParseFlag(value string) bool {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "1", "true", "yes", "y":
		return true
	}
	return false
}

// getDefaultConfigPaths returns the default config paths to check.
func getDefaultConfigPaths() []string {
	paths := []string{
		"config.yaml",
		"config.json",
		ServiceName + ".yaml",
		"configs/" + ServiceName + ".yaml",
	}

	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		paths = append([]string{configPath}, paths...)
	}

	return paths
}

func (c *Config) normalize() {
	c.Overseerr.URL = strings.TrimRight(strings.TrimSpace(c.Overseerr.URL), "/")
	c.Overseerr.ImageBase = strings.TrimRight(strings.TrimSpace(c.Overseerr.ImageBase), "/")
	c.Access.OwnerID = strings.TrimSpace(c.Access.OwnerID)
}

// Validate reports every missing mandatory setting at once.
func (c *Config) Validate() error {
	var missing []string
	for _, r := range required {
		if strings.TrimSpace(r.value(c)) == "" {
			missing = append(missing, r.env)
		}
	}
	if len(missing) > 0 {
		return apperrors.Config("missing required env vars: " + strings.Join(missing, ", "))
	}

	u, err := url.Parse(c.Overseerr.URL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.Config(fmt.Sprintf("OVERSEERR_URL must be an absolute http(s) URL, got %q", c.Overseerr.URL))
	}
	if c.Overseerr.Timeout <= 0 {
		return apperrors.Config("overseerr timeout must be positive")
	}
	if c.Bot.EnrichWorkers < 1 {
		return apperrors.Config("enrich workers must be at least 1")
	}
	if c.Health.Port < 0 || c.Health.Port > 65535 {
		return apperrors.Config("invalid health port: " + strconv.Itoa(c.Health.Port))
	}
	return nil
}

// GetDefaults returns default configuration values.
func GetDefaults() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:        ServiceName,
			Environment: "production",
		},
		Telegram: TelegramConfig{
			PollTimeout: DefaultPollTimeout,
			SendRate:    DefaultSendRate,
			SendBurst:   DefaultSendBurst,
		},
		Overseerr: OverseerrConfig{
			ImageBase: DefaultImageBase,
			Timeout:   DefaultUpstreamTimeout,
		},
		Bot: BotConfig{
			EnrichWorkers: DefaultEnrichWorkers,
		},
		Logger: LoggerConfig{
			Level:  "info",
			Format: "json",
		},
		NATS: NATSConfig{
			SubjectPrefix: DefaultSubjectPrefix,
			MaxReconnect:  DefaultMaxReconnect,
			ReconnectWait: DefaultReconnectWait,
		},
		Health: HealthConfig{
			Port: DefaultHealthPort,
		},
	}
}
