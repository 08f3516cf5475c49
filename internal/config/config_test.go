package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresBaseURL(t *testing.T) {
	t.Setenv("PORTAL_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PORTAL_API_BASE_URL")
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORTAL_API_BASE_URL", "http://hotel.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Port)
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "http://hotel.internal", cfg.HotelAPI.BaseURL)
	assert.Equal(t, 15*time.Second, cfg.HotelAPI.Timeout)
	assert.Equal(t, 5*time.Minute, cfg.Redis.TTL)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORS.AllowOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORTAL_API_BASE_URL", "http://hotel.internal")
	t.Setenv("PORTAL_PORT", ":9000")
	t.Setenv("PORTAL_APP_ENV", "production")
	t.Setenv("PORTAL_API_TIMEOUT", "30s")
	t.Setenv("PORTAL_REDIS_ADDR", "localhost:6379")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Port)
	assert.Equal(t, "production", cfg.AppEnv)
	assert.Equal(t, 30*time.Second, cfg.HotelAPI.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
}
