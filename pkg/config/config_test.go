package config_test

import (
	"testing"

	"github.com/jhoicas/Fletes-api/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "fletes-api", cfg.App.Name)
	assert.Equal(t, 25, cfg.Report.RowsPerPage)
	assert.Equal(t, "PH", cfg.Extraction.ExpectedDocType)
	assert.Empty(t, cfg.Extraction.KnownPrefixes)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, 20*1024*1024, cfg.HTTP.MaxUploadSize)
	assert.False(t, cfg.DB.AutoMigrate)
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("EXTRACTION_KNOWN_PREFIXES", "RMT, KLX,,")
	t.Setenv("REPORT_ROWS_PER_PAGE", "10")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_AUTO_MIGRATE", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"RMT", "KLX"}, cfg.Extraction.KnownPrefixes)
	assert.Equal(t, 10, cfg.Report.RowsPerPage)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.True(t, cfg.DB.AutoMigrate)
}

func TestLoad_FilasPorPaginaInvalidas(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("REPORT_ROWS_PER_PAGE", "0")

	_, err := config.Load()
	require.Error(t, err)
}

func TestDBConfig_ConnectionString(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "fletes", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/fletes?sslmode=disable", c.ConnectionString())

	c.DatabaseURL = "postgres://x@y/z"
	assert.Equal(t, "postgres://x@y/z", c.ConnectionString())
}
