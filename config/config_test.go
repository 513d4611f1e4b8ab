package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var relevantEnv = []string{
	"APP_NAME", "APP_ENV", "ROOT_PATH", "STORAGE_BACKEND", "SQLITE_DB_PATH",
	"AUTH_TOKEN_SECRET_KEY", "AUTH_TOKEN_ALGORITHM", "AUTH_TOKEN_ACCESS_TTL", "AUTH_TOKEN_REFRESH_TTL",
	"PASSWORD_HASHING_HASH_NAME", "PASSWORD_HASHING_HASH_ITERATIONS", "PASSWORD_HASHING_SALT_SIZE",
	"PASSWORD_HASHING_SPLIT_CHAR", "CACHE_TTL", "CACHE_ENABLED",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range relevantEnv {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	assert.Equal(t, "mood-diary", cfg.AppName)
	assert.Equal(t, "/api", cfg.RootPath)
	assert.Equal(t, BackendSQLite, cfg.StorageBackend)
	assert.Equal(t, "mood_diary.db", cfg.SQLitePath)
	assert.Equal(t, "HS256", cfg.TokenAlgorithm)
	assert.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, 30*24*time.Hour, cfg.RefreshTokenTTL)
	assert.Equal(t, "sha256", cfg.HashName)
	assert.Equal(t, 100000, cfg.HashIterations)
	assert.Equal(t, 16, cfg.HashSaltSize)
	assert.Equal(t, "$", cfg.HashSplitChar)
	assert.True(t, cfg.CacheEnabled)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Empty(t, cfg.TokenSecret)
}

func TestLoad_EnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_NAME", "My Diary")
	t.Setenv("AUTH_TOKEN_ACCESS_TTL", "1h")
	t.Setenv("PASSWORD_HASHING_HASH_ITERATIONS", "150000")
	t.Setenv("CACHE_ENABLED", "false")

	cfg := Load()
	assert.Equal(t, "My Diary", cfg.AppName)
	assert.Equal(t, time.Hour, cfg.AccessTokenTTL)
	assert.Equal(t, 150000, cfg.HashIterations)
	assert.False(t, cfg.CacheEnabled)
	assert.Equal(t, "sha256", cfg.HashName)
}

func TestLoad_InvalidValuesFallBackToDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("PASSWORD_HASHING_HASH_ITERATIONS", "lots")
	t.Setenv("CACHE_TTL", "soon")

	cfg := Load()
	assert.Equal(t, 100000, cfg.HashIterations)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	valid := func() *Config {
		c := Load()
		c.TokenSecret = "secret"
		return c
	}

	require.NoError(t, valid().Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing secret", func(c *Config) { c.TokenSecret = "" }},
		{"unknown env", func(c *Config) { c.Env = "qa" }},
		{"unknown backend", func(c *Config) { c.StorageBackend = "mongo" }},
		{"empty sqlite path", func(c *Config) { c.SQLitePath = "" }},
		{"unknown algorithm", func(c *Config) { c.TokenAlgorithm = "RS256" }},
		{"unknown hash", func(c *Config) { c.HashName = "md4" }},
		{"zero iterations", func(c *Config) { c.HashIterations = 0 }},
		{"zero salt", func(c *Config) { c.HashSaltSize = 0 }},
		{"empty separator", func(c *Config) { c.HashSplitChar = "" }},
		{"hex separator", func(c *Config) { c.HashSplitChar = "a" }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestCORSOrigins(t *testing.T) {
	c := &Config{CORSAllowedOrigins: " http://a.test, ,http://b.test "}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.CORSOrigins())
}
