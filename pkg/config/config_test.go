package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/bione-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("BACKEND_ENABLED", "")
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.True(t, cfg.Backend.Enabled, "valor vacío o inválido conserva el default")
	assert.Equal(t, 200*time.Millisecond, cfg.UI.BlurDelay)
	assert.Equal(t, "bione", cfg.Metrics.Prefix)
}

func TestLoad_ModoLocalDesdeEnv(t *testing.T) {
	t.Setenv("BACKEND_ENABLED", "false")
	t.Setenv("UI_BLUR_DELAY_MS", "350")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.False(t, cfg.Backend.Enabled)
	assert.Equal(t, 350*time.Millisecond, cfg.UI.BlurDelay)
	assert.Equal(t, "0.0.0.0:9090", cfg.HTTP.Addr())
}

func TestDBConfig_ConnectionString(t *testing.T) {
	db := config.DBConfig{Host: "db", Port: 5432, User: "u", Password: "p@ss", DBName: "bi", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p%40ss@db:5432/bi?sslmode=disable", db.ConnectionString())

	db.DatabaseURL = "postgresql://x@y/z"
	assert.Equal(t, "postgresql://x@y/z", db.ConnectionString())
}
