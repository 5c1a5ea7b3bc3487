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
	assert.Equal(t, "development", cfg.AppEnv)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "fixture", cfg.DataSource)
	assert.Equal(t, "8080", cfg.HttpServer.Port)
	assert.Equal(t, 15*time.Second, cfg.HttpServer.TimeoutRead)
	assert.Equal(t, "9090", cfg.GrpcServer.Port)
	assert.Equal(t, 1024, cfg.Sessions.Limit)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.TTL)
}

func TestLoad_Postgres(t *testing.T) {
	t.Setenv("DATA_SOURCE", "postgres")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "catalog")
	t.Setenv("POSTGRES_PASSWORD", "secret")
	t.Setenv("POSTGRES_DBNAME", "catalog")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "host=db port=5432 user=catalog password=secret dbname=catalog sslmode=disable", cfg.Postgres.DSN())
}

func TestValidate(t *testing.T) {
	t.Run("postgres without host", func(t *testing.T) {
		cfg := &Config{DataSource: "postgres"}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("unknown source", func(t *testing.T) {
		cfg := &Config{DataSource: "mongo"}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("negative ttl", func(t *testing.T) {
		cfg := &Config{DataSource: "fixture", Sessions: SessionConfig{TTL: -time.Second}}
		require.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &Config{DataSource: "sqlite"}
		require.NoError(t, cfg.Validate())
	})
}
