package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "http://localhost:8080"}, cfg.Server.AllowedOrigins)
	assert.True(t, cfg.Database.AutoMigrate)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, 300*time.Second, cfg.Cache.ProductTTL)
	assert.Equal(t, 100, cfg.RateLimit.Requests)
	assert.Equal(t, time.Minute, cfg.RateLimit.Window)
	assert.Equal(t, 5*time.Second, cfg.Worker.DebounceWindow)
}

func TestLoad_FromEnvironment(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example , https://b.example")
	t.Setenv("CACHE_ENABLED", "false")
	t.Setenv("NATS_ENABLED", "false")
	t.Setenv("STOCK_DEBOUNCE_WINDOW", "250ms")
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
	assert.False(t, cfg.Cache.Enabled)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, 250*time.Millisecond, cfg.Worker.DebounceWindow)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_InvalidDuration(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("CACHE_TTL_PRODUCT", "forever")

	_, err := Load()
	assert.ErrorContains(t, err, "invalid CACHE_TTL_PRODUCT")
}

func TestConfig_Addresses(t *testing.T) {
	cfg := &Config{
		Database: DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable"},
		Redis:    RedisConfig{Host: "cache", Port: "6379"},
	}

	assert.Equal(t, "host=db port=5432 user=u password=p dbname=n sslmode=disable", cfg.GetDSN())
	assert.Equal(t, "cache:6379", cfg.GetRedisAddr())
}
