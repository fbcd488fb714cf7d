package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("BACKEND_URL", "")
	t.Setenv("KV_DRIVER", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("BACKEND_TIMEOUT", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, "memory", cfg.KVDriver)
	assert.Equal(t, 10*time.Second, cfg.BackendTimeout)
	assert.True(t, cfg.IsDevelopment())
	require.NoError(t, cfg.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "https://api.gowear.test/")
	t.Setenv("BACKEND_TIMEOUT", "3s")
	t.Setenv("COOKIE_SECURE", "true")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("CORS_ORIGINS", "https://a.test, https://b.test,")

	cfg := Load()
	assert.Equal(t, "https://api.gowear.test", cfg.BackendURL)
	assert.Equal(t, 3*time.Second, cfg.BackendTimeout)
	assert.True(t, cfg.CookieSecure)
	assert.Equal(t, 2, cfg.RedisDB)
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
}

func TestValidate(t *testing.T) {
	cfg := Config{BackendURL: "http://x", Env: "production", KVDriver: "mysql"}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET")
	assert.Contains(t, err.Error(), "DB_DSN")

	cfg = Config{BackendURL: "http://x", Env: "production", SessionSecret: "s", KVDriver: "redis"}
	assert.NoError(t, cfg.Validate())

	cfg.KVDriver = "etcd"
	assert.Error(t, cfg.Validate())
}
