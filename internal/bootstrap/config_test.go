package bootstrap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.HTTP.Addr)
	assert.Equal(t, 12*time.Hour, cfg.Auth.Session.TTL)
	assert.True(t, cfg.Postgres.RunMigrationsOnStart)
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("DB_NAME", "dialtone_test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.HTTP.Addr)
	assert.Equal(t, time.Hour, cfg.Auth.Session.TTL)
	assert.Equal(t, "dialtone_test", cfg.Postgres.Name)
}

func TestLoadConfig_SanitizeApplied(t *testing.T) {
	// RememberTTL below the base TTL is rewritten by Sanitize.
	t.Setenv("SESSION_TTL", "12h")
	t.Setenv("SESSION_REMEMBER_TTL", "1h")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Greater(t, cfg.Auth.Session.RememberTTL, cfg.Auth.Session.TTL)
}
