package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.Equal(t, 1000, cfg.RateLimitPerMinute)
	assert.Equal(t, 10*time.Minute, cfg.EquiposCacheTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("APP_ENV", "production")
	t.Setenv("EQUIPOS_CACHE_TTL", "30s")
	t.Setenv("NOMBRE_NEGOCIO", "Taller Norte")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://panel.taller.com,http://localhost:5173")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 30*time.Second, cfg.EquiposCacheTTL)
	assert.Equal(t, "Taller Norte", cfg.NombreNegocio)
	assert.Equal(t, []string{"https://panel.taller.com", "http://localhost:5173"}, cfg.CORSOrigins)
}
