package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		App:      AppConfig{Environment: "development"},
		Logger:   LoggerConfig{Level: "info"},
		Database: DatabaseConfig{Path: "/tmp/connector.db"},
	}
}

func TestValidate_OK(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidate_Environment(t *testing.T) {
	cfg := validConfig()
	cfg.App.Environment = "qa"
	assert.Error(t, cfg.Validate())

	cfg.App.Environment = ""
	assert.Error(t, cfg.Validate())

	for _, env := range []string{"development", "staging", "production"} {
		cfg.App.Environment = env
		assert.NoError(t, cfg.Validate(), env)
	}
}

func TestValidate_LogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logger.Level = "verbose"
	assert.Error(t, cfg.Validate())

	cfg.Logger.Level = "WARN"
	assert.NoError(t, cfg.Validate())
}

func TestValidate_DatabasePath(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Path = ""
	assert.Error(t, cfg.Validate())
}

func TestExpandPath(t *testing.T) {
	got, err := expandPath("", "/default/path")
	require.NoError(t, err)
	assert.Equal(t, "/default/path", got)

	got, err = expandPath("/var/lib/connector.db", "/default")
	require.NoError(t, err)
	assert.Equal(t, "/var/lib/connector.db", got)

	got, err = expandPath("~/data/connector.db", "")
	require.NoError(t, err)
	assert.True(t, len(got) > len("/data/connector.db"))
	assert.NotContains(t, got, "~")
}

func TestGetConfigValue_Precedence(t *testing.T) {
	t.Setenv("CONNECTOR_TEST_KEY", "from-env")

	assert.Equal(t, "from-flag", getConfigValue("from-flag", "CONNECTOR_TEST_KEY", "fallback"))
	assert.Equal(t, "from-env", getConfigValue("", "CONNECTOR_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", getConfigValue("", "CONNECTOR_TEST_MISSING", "fallback"))
}

func TestParseDurationValue(t *testing.T) {
	d, err := parseDurationValue("", "CONNECTOR_TEST_TIMEOUT", "15s")
	require.NoError(t, err)
	assert.Equal(t, "15s", d.String())

	t.Setenv("CONNECTOR_TEST_TIMEOUT", "bogus")
	_, err = parseDurationValue("", "CONNECTOR_TEST_TIMEOUT", "15s")
	assert.Error(t, err)
}
