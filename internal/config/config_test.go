package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 168, cfg.SessionTTL)
	assert.Equal(t, []string{"localhost:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.BypassEnabled)
	assert.Equal(t, "admin@gmail.com", cfg.BypassEmail)
}

func TestLoad_OverridesFromEnvironment(t *testing.T) {
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOGIN_BYPASS_ENABLED", "false")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.False(t, cfg.BypassEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("HTTP_PORT", "99999")

	_, err := Load()

	assert.Error(t, err)
}

func TestLoad_InvalidSessionTTL(t *testing.T) {
	t.Setenv("SESSION_TTL_HOURS", "0")

	_, err := Load()

	assert.Error(t, err)
}
