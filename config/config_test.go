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

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "http://localhost:3000", cfg.Server.CORSOrigin)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 25, cfg.Postgres.MaxOpenConns)
	assert.Equal(t, 5*time.Minute, cfg.Postgres.ConnMaxLifetime)
	assert.Equal(t, 9000, cfg.ClickHouse.Port)
	assert.Equal(t, 24*time.Hour, cfg.Admin.SessionTTL)
	assert.Equal(t, "us-east-1", cfg.Storage.Region)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD_HASH", "$2a$10$abcdefghijklmnopqrstuv")
	t.Setenv("SESSION_TOKEN", "super-secret")
	t.Setenv("CLICKHOUSE_NATIVE_PORT", "19000")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, 19000, cfg.ClickHouse.Port)
	assert.Equal(t, "admin", cfg.Admin.Username)
	assert.True(t, cfg.AdminConfigured())
}

func TestAdminConfigured_MissingPieces(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "admin")
	t.Setenv("ADMIN_PASSWORD_HASH", "")
	t.Setenv("SESSION_TOKEN", "super-secret")

	cfg, err := Load()
	require.NoError(t, err)
	// Missing password hash: the server still boots, the admin surface is
	// just unusable until configured.
	assert.False(t, cfg.AdminConfigured())
}
