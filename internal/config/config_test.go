package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_SECRET", "")
	t.Setenv("DB_HOST", "")
	t.Setenv("JWT_TTL", "")

	cfg := Load()

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.JWTTTL)
	assert.Empty(t, cfg.JWTSecret)
	assert.Equal(t, 5, cfg.LoginRateLimit)
}

func TestLoadReadsEnvFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("JWT_SECRET=from-file\nPORT=9090\n"), 0o600))
	chdir(t, dir)
	t.Setenv("PORT", "7070")
	os.Unsetenv("JWT_SECRET")
	t.Cleanup(func() { os.Unsetenv("JWT_SECRET") })

	cfg := Load()

	assert.Equal(t, "from-file", cfg.JWTSecret)
	assert.Equal(t, "7070", cfg.Port, "process environment wins over .env")
}

func TestLoadParsesTypedValues(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("JWT_TTL", "2h")
	t.Setenv("LOGIN_RATE_LIMIT", "not-a-number")
	t.Setenv("LOGIN_RATE_WINDOW", "1m")
	t.Setenv("TRUSTED_PROXIES", "")

	cfg := Load()

	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
	assert.Equal(t, 5, cfg.LoginRateLimit)
	assert.Equal(t, time.Minute, cfg.LoginRateWindow)
	assert.Empty(t, cfg.TrustedProxies)
}

func TestLoadTrustedProxies(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8, ,192.0.2.7 ")

	cfg := Load()

	assert.Equal(t, []string{"10.0.0.0/8", "192.0.2.7"}, cfg.TrustedProxies)
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBUser: "u", DBPassword: "p", DBHost: "db", DBPort: "3306", DBName: "momentum"}
	assert.Equal(t, "u:p@tcp(db:3306)/momentum?parseTime=true&charset=utf8mb4&clientFoundRows=true", cfg.DSN())
}

func TestLocation(t *testing.T) {
	loc, err := (&Config{Timezone: "Local"}).Location()
	require.NoError(t, err)
	assert.Equal(t, time.Local, loc)

	loc, err = (&Config{Timezone: "UTC"}).Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())

	_, err = (&Config{Timezone: "Mars/Olympus"}).Location()
	assert.Error(t, err)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "DEBUG"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: ""}).SlogLevel())
	assert.Equal(t, slog.LevelError, (&Config{LogLevel: "error"}).SlogLevel())
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(prev) })
}
