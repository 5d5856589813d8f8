package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadFromDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), filepath.Join(dir, "missing.env")))

	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, "app.db", DatabaseDSN())
	assert.Equal(t, "3000", AppPort())
	assert.Equal(t, "debug", LogLevel())
	assert.Equal(t, int64(4<<20), MaxBodyBytes())
	assert.Equal(t, time.Minute, CacheTTL())
	assert.Empty(t, RedisAddr())
	assert.Equal(t, 0, RateLimit())
	assert.Equal(t, []string{"*"}, CORSOrigins())
}

func TestDotEnvOverridesJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":"9000","db_driver":"postgres","cache_ttl":"30s"}`)
	envPath := writeFile(t, dir, ".env", "# comment\nAPP_PORT=9100\nAPP_ENV=\"production\"\nMAX_BODY_BYTES=1024\n")

	require.NoError(t, LoadFrom(jsonPath, envPath))

	assert.Equal(t, "9100", AppPort())
	assert.Equal(t, "postgres", DatabaseDriver())
	assert.Contains(t, DatabaseDSN(), "dbname=bizapi")
	assert.True(t, IsProduction())
	assert.Equal(t, "info", LogLevel())
	assert.Equal(t, int64(1024), MaxBodyBytes())
	assert.Equal(t, 30*time.Second, CacheTTL())
}

func TestProcessEnvWins(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "APP_PORT=9100\n")
	t.Setenv("APP_PORT", "7000")

	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), envPath))
	assert.Equal(t, "7000", AppPort())
}

func TestUnknownDriverFallsBack(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "DB_DRIVER=oracle\nSHUTDOWN_TIMEOUT=5\nRATE_LIMIT=-3\nCORS_ORIGINS=https://a.test, https://b.test\n")

	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), envPath))
	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, 5*time.Second, ShutdownTimeout())
	assert.Equal(t, 0, RateLimit())
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, CORSOrigins())
	assert.False(t, TrustProxy())
}

func TestTrustProxy(t *testing.T) {
	dir := t.TempDir()
	envPath := writeFile(t, dir, ".env", "TRUST_PROXY=true\n")

	require.NoError(t, LoadFrom(filepath.Join(dir, "missing.json"), envPath))
	assert.True(t, TrustProxy())
}

func TestMalformedJSON(t *testing.T) {
	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{not json`)
	assert.Error(t, LoadFrom(jsonPath, filepath.Join(dir, "missing.env")))
}
