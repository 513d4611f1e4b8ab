package container

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/mood-diary/config"
)

func baseConfig(t *testing.T) *config.Config {
	return &config.Config{
		Env:             "development",
		StorageBackend:  config.BackendSQLite,
		SQLitePath:      filepath.Join(t.TempDir(), "c.db"),
		TokenSecret:     "secret",
		TokenAlgorithm:  "HS256",
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
		HashName:        "sha256",
		HashIterations:  1000,
		HashSaltSize:    16,
		HashSplitChar:   "$",
	}
}

func TestNew_SQLiteWithCache(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := baseConfig(t)
	cfg.CacheEnabled = true
	cfg.RedisAddr = mr.Addr()
	logger, _ := logtest.NewNullLogger()

	c, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer c.Close()

	assert.NotNil(t, c.Redis)
	p, err := c.AuthService.Register(context.Background(), "alice", "Passw0rd!", "Alice")
	require.NoError(t, err)
	got, err := c.Users.GetByID(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", got.Username)
}

func TestNew_CacheDisabledHasNoRedis(t *testing.T) {
	logger, _ := logtest.NewNullLogger()
	c, err := New(context.Background(), baseConfig(t), logger)
	require.NoError(t, err)
	assert.Nil(t, c.Redis)
	c.Close()
	c.Close()
}

func TestNew_UnreachableRedisOnlyWarns(t *testing.T) {
	cfg := baseConfig(t)
	cfg.CacheEnabled = true
	cfg.RedisAddr = "127.0.0.1:1"
	logger, hook := logtest.NewNullLogger()

	c, err := New(context.Background(), cfg, logger)
	require.NoError(t, err)
	defer c.Close()

	var warned bool
	for _, e := range hook.AllEntries() {
		if e.Message == "redis unreachable at startup" {
			warned = true
		}
	}
	assert.True(t, warned)
}

func TestNew_Rejects(t *testing.T) {
	logger, _ := logtest.NewNullLogger()

	cfg := baseConfig(t)
	cfg.StorageBackend = "mongo"
	_, err := New(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "unknown storage backend")

	cfg = baseConfig(t)
	cfg.HashName = "md5"
	_, err = New(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "password hasher")

	cfg = baseConfig(t)
	cfg.TokenAlgorithm = "RS256"
	_, err = New(context.Background(), cfg, logger)
	assert.ErrorContains(t, err, "token manager")
}
