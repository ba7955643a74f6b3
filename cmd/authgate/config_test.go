package main

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/authgate"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("API_ROUTING", "namespace")
	t.Setenv("HTTP_CORS_ORIGINS", "https://a.example.com,https://b.example.com")

	cfg, err := loadConfig()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, authgate.RoutingNamespace, cfg.Routing)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
	assert.Equal(t, 5*time.Minute, cfg.UserCacheTTL)
	assert.Equal(t, "@every 1h", cfg.PurgeSchedule)
	assert.Equal(t, "postgres://localhost/authgate", cfg.DB.ConnectionString)
	assert.False(t, cfg.Redis.Enabled())
}

func TestLoadConfigErrors(t *testing.T) {
	t.Run("missing secret", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
		t.Setenv("JWT_SECRET", "")
		_, err := loadConfig()
		require.Error(t, err)
	})

	t.Run("unknown routing", func(t *testing.T) {
		t.Setenv("DATABASE_URL", "postgres://localhost/authgate")
		t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
		t.Setenv("API_ROUTING", "flat")
		_, err := loadConfig()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown routing strategy")
	})
}
