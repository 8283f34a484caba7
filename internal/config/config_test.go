package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ENV", "")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_TTL", "")
	t.Setenv("VOTE_COUNT_CACHE_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, defaultDatabaseURL, cfg.DatabaseURL)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5*time.Minute, cfg.VoteCountCacheTTL)
	assert.False(t, cfg.IsPostgres())
	assert.Empty(t, cfg.RedisURL)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("VOTE_COUNT_CACHE_TTL", "soon")

	_, err := Load()
	assert.ErrorContains(t, err, "VOTE_COUNT_CACHE_TTL")
}

func TestLoadProdRequiresSecretAndPostgres(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/reviews")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "a-real-secret")
	t.Setenv("DATABASE_URL", "reviewdesk.db")
	_, err = Load()
	assert.ErrorContains(t, err, "PostgreSQL")

	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/reviews")
	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProdLike())
	assert.True(t, cfg.IsPostgres())
}

func TestLoadRejectsNonRedisURL(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("REDIS_URL", "localhost:6379")

	_, err := Load()
	assert.ErrorContains(t, err, "REDIS_URL")
}
