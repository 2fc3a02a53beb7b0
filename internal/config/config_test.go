package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"PORT":            "9090",
		"PRICING_MODE":    "volatile",
		"DATABASE_DRIVER": "postgres",
		"POSTGRES_URL":    "postgres://localhost/folio",
		"LOG_LEVEL":       "debug",
	}
	cfg := Default()
	require.NoError(t, cfg.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "volatile", cfg.PricingMode)
	assert.Equal(t, "postgres", cfg.Database.Driver)
	assert.Equal(t, "postgres://localhost/folio", cfg.Database.URL)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, logrus.DebugLevel, cfg.NewLogger().GetLevel())
}

func TestApplyEnv_DatabaseURLWinsOverPostgresURL(t *testing.T) {
	env := map[string]string{"DATABASE_URL": "a", "POSTGRES_URL": "b"}
	cfg := Default()
	require.NoError(t, cfg.applyEnv(func(k string) string { return env[k] }))
	assert.Equal(t, "a", cfg.Database.URL)
}

func TestApplyEnv_BadPort(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.applyEnv(func(k string) string {
		if k == "PORT" {
			return "http"
		}
		return ""
	}))
}

func TestValidate(t *testing.T) {
	cfg := Default()
	assert.NoError(t, cfg.Validate())

	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Database.Driver = "oracle"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestLoad_TOMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "folio.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = 7000
pricing_mode = "volatile"

[database]
driver = "memory"
`), 0644))
	t.Setenv("FOLIO_CONFIG", path)
	for _, k := range []string{"PORT", "PRICING_MODE", "DATABASE_DRIVER", "LOG_LEVEL", "SQLITE_PATH"} {
		t.Setenv(k, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Port)
	assert.Equal(t, "volatile", cfg.PricingMode)
	assert.Equal(t, "memory", cfg.Database.Driver)
	assert.Equal(t, "data/folio.db", cfg.Database.SQLitePath)
}
