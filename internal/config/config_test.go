package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Setenv("DB_SERVER", "db.internal")
	t.Setenv("DB_DATABASE", "")
	t.Setenv("DB_USERNAME", "sim")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.Server)
	assert.Equal(t, 1433, cfg.Port)
	assert.Equal(t, DefaultDatabase, cfg.Database, "database falls back to the default")
	assert.Equal(t, "sim", cfg.Username)
	require.NoError(t, cfg.Validate())
}

func TestLoadEnvFile(t *testing.T) {
	t.Setenv("DB_SERVER", "")
	t.Setenv("DB_DATABASE", "")
	t.Setenv("DB_USERNAME", "")
	t.Setenv("DB_PASSWORD", "")
	os.Unsetenv("DB_SERVER")
	os.Unsetenv("DB_DATABASE")
	os.Unsetenv("DB_USERNAME")
	os.Unsetenv("DB_PASSWORD")

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte(
		"DB_SERVER=localhost\nDB_DATABASE=TestDB\nDB_USERNAME=sa\nDB_PASSWORD=pw\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "localhost", cfg.Server)
	assert.Equal(t, "TestDB", cfg.Database)
}

func TestLoadMissingEnvFile(t *testing.T) {
	t.Setenv("DB_SERVER", "db.internal")
	t.Setenv("DB_USERNAME", "sim")
	t.Setenv("DB_PASSWORD", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.NoError(t, err, "a missing env file is not an error")
	assert.Equal(t, "db.internal", cfg.Server)
}

func TestValidate(t *testing.T) {
	t.Parallel()

	cfg := &DBConfig{Server: "s", Username: "u", Password: "p"}
	assert.NoError(t, cfg.Validate())

	missing := &DBConfig{Server: "s"}
	err := missing.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USERNAME")
	assert.Contains(t, err.Error(), "DB_PASSWORD")
	assert.NotContains(t, err.Error(), "DB_SERVER")
}

func TestConnectionString(t *testing.T) {
	t.Parallel()

	cfg := &DBConfig{
		Server:   "localhost",
		Port:     1433,
		Database: "HealthInsuranceAU",
		Username: "sa",
		Password: "pw",
	}
	assert.Equal(t,
		"server=localhost;port=1433;database=HealthInsuranceAU;user id=sa;password=pw;TrustServerCertificate=true",
		cfg.ConnectionString())
}
