package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/narwhalmedia/requestbot/pkg/config"
	apperrors "github.com/narwhalmedia/requestbot/pkg/errors"
)

type ConfigTestSuite struct {
	suite.Suite
}

func (s *ConfigTestSuite) SetupTest() {
	// Run every case from an empty directory so no stray .env or
	// config.yaml is picked up, with the relevant variables blanked.
	s.T().Chdir(s.T().TempDir())
	for _, name := range []string{
		"CONFIG_PATH", "TELEGRAM_BOT_TOKEN", "OVERSEERR_URL", "OVERSEERR_API_KEY",
		"TMDB_IMAGE_BASE", "REQUEST_4K", "OWNER_TELEGRAM_USER_ID", "OVERSEERR_TIMEOUT",
		"ENVIRONMENT", "LOG_LEVEL", "HEALTH_PORT", "NATS_URL",
	} {
		s.T().Setenv(name, "")
	}
}

func (s *ConfigTestSuite) setRequired() {
	s.T().Setenv("TELEGRAM_BOT_TOKEN", "123:abc")
	s.T().Setenv("OVERSEERR_URL", "http://overseerr.local:5055/")
	s.T().Setenv("OVERSEERR_API_KEY", "key")
}

func (s *ConfigTestSuite) TestMissingRequiredListsEveryName() {
	_, err := config.Load()
	s.Require().Error(err)
	s.True(apperrors.IsConfig(err))
	s.Contains(err.Error(), "TELEGRAM_BOT_TOKEN")
	s.Contains(err.Error(), "OVERSEERR_URL")
	s.Contains(err.Error(), "OVERSEERR_API_KEY")
}

func (s *ConfigTestSuite) TestDefaultsAndNormalization() {
	s.setRequired()

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal("http://overseerr.local:5055", cfg.Overseerr.URL)
	s.Equal(config.DefaultImageBase, cfg.Overseerr.ImageBase)
	s.Equal(config.DefaultUpstreamTimeout, cfg.Overseerr.Timeout)
	s.False(cfg.Overseerr.Request4K)
	s.Empty(cfg.Access.OwnerID)
	s.Equal(config.DefaultEnrichWorkers, cfg.Bot.EnrichWorkers)
}

func (s *ConfigTestSuite) TestEnvironmentOverrides() {
	s.setRequired()
	s.T().Setenv("TMDB_IMAGE_BASE", "https://img.example/t/p/w342/")
	s.T().Setenv("REQUEST_4K", "Yes")
	s.T().Setenv("OWNER_TELEGRAM_USER_ID", "42")
	s.T().Setenv("OVERSEERR_TIMEOUT", "3s")
	s.T().Setenv("HEALTH_PORT", "0")

	cfg, err := config.Load()
	s.Require().NoError(err)

	s.Equal("https://img.example/t/p/w342", cfg.Overseerr.ImageBase)
	s.True(cfg.Overseerr.Request4K)
	s.Equal("42", cfg.Access.OwnerID)
	s.Equal(3*time.Second, cfg.Overseerr.Timeout)
	s.Equal(0, cfg.Health.Port)
}

func (s *ConfigTestSuite) TestDotenvFile() {
	s.Require().NoError(os.WriteFile(".env", []byte(
		"TELEGRAM_BOT_TOKEN=from-dotenv\nOVERSEERR_URL=https://seerr.example\nOVERSEERR_API_KEY=k\n"), 0o600))
	s.T().Cleanup(func() {
		os.Unsetenv("TELEGRAM_BOT_TOKEN")
		os.Unsetenv("OVERSEERR_URL")
		os.Unsetenv("OVERSEERR_API_KEY")
	})
	// godotenv never overrides variables that are already set, even empty.
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	os.Unsetenv("OVERSEERR_URL")
	os.Unsetenv("OVERSEERR_API_KEY")

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.Equal("from-dotenv", cfg.Telegram.Token)
	s.Equal("https://seerr.example", cfg.Overseerr.URL)
}

func (s *ConfigTestSuite) TestYAMLFileBelowEnvironment() {
	s.setRequired()
	path := filepath.Join(s.T().TempDir(), "bot.yaml")
	s.Require().NoError(os.WriteFile(path, []byte(
		"overseerr:\n  image_base: https://yaml.example/w500\nbot:\n  enrich_workers: 2\naccess:\n  owner_id: \"7\"\n"), 0o600))
	s.T().Setenv("CONFIG_PATH", path)
	s.T().Setenv("OWNER_TELEGRAM_USER_ID", "8")

	cfg, err := config.Load()
	s.Require().NoError(err)
	s.Equal("https://yaml.example/w500", cfg.Overseerr.ImageBase)
	s.Equal(2, cfg.Bot.EnrichWorkers)
	s.Equal("8", cfg.Access.OwnerID)
}

func (s *ConfigTestSuite) TestRejectsRelativeURL() {
	s.setRequired()
	s.T().Setenv("OVERSEERR_URL", "overseerr.local")

	_, err := config.Load()
	s.Require().Error(err)
	s.True(apperrors.IsConfig(err))
}

func TestConfigTestSuite(t *testing.T) {
	suite.Run(t, new(ConfigTestSuite))
}

func TestParseFlag(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", "yes", "y", " Y "} {
		assert.True(t, config.ParseFlag(v), v)
	}
	for _, v := range []string{"", "0", "false", "no", "on"} {
		assert.False(t, config.ParseFlag(v), v)
	}
}

func TestOwnerUserID(t *testing.T) {
	_, ok, err := config.AccessConfig{}.OwnerUserID()
	require.NoError(t, err)
	assert.False(t, ok)

	id, ok, err := config.AccessConfig{OwnerID: "1234"}.OwnerUserID()
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(1234), id)

	_, ok, err = config.AccessConfig{OwnerID: "@me"}.OwnerUserID()
	assert.Error(t, err)
	assert.True(t, ok)
}
