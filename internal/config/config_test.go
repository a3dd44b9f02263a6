package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "clinic-portal", cfg.App.Name)
	assert.Equal(t, "127.0.0.1:4200", cfg.App.Addr())
	assert.Equal(t, "http://127.0.0.1:5000/api/v1.0", cfg.Records.BaseURL)
	assert.Equal(t, "x-access-token", cfg.Records.CredentialHeader)
	assert.Equal(t, 30*time.Second, cfg.Records.Timeout())
	assert.Equal(t, "file", cfg.Session.Backend)
	assert.NotEmpty(t, cfg.Session.TokenPath)
	assert.Equal(t, "info", cfg.Logger.Level)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("APP_PORT", "9999")
	t.Setenv("RECORDS_CREDENTIAL_HEADER", "authorization")
	t.Setenv("SESSION_BACKEND", "redis")
	t.Setenv("SESSION_REDIS_KEY", "custom:token")
	t.Setenv("RECORDS_TIMEOUT_SECONDS", "5")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9999", cfg.App.Addr())
	assert.Equal(t, "authorization", cfg.Records.CredentialHeader)
	assert.Equal(t, "redis", cfg.Session.Backend)
	assert.Equal(t, "custom:token", cfg.Session.RedisKey)
	assert.Equal(t, 5*time.Second, cfg.Records.Timeout())
}

func TestLoad_InvalidBackend(t *testing.T) {
	t.Setenv("SESSION_BACKEND", "carrier-pigeon")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_InvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BadIntFallsBack(t *testing.T) {
	t.Setenv("RECORDS_TIMEOUT_SECONDS", "soon")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.Records.TimeoutSeconds)
}
