package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBHost          string
	DBPort          string
	DBUser          string
	DBPassword      string
	DBName          string
	JWTSecret       string
	JWTTTL          time.Duration
	APIKey          string
	Port            string
	AllowedOrigins  string
	Timezone        string
	LogLevel        string
	LoginRateLimit  int
	LoginRateWindow time.Duration
	// TrustedProxies lists peers (IPs or CIDRs) whose X-Forwarded-For is believed.
	TrustedProxies []string
}

// Load reads the process environment. Values in a .env file in the working directory
// fill in anything not already set; a missing file is ignored.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("could not read .env file", "error", err)
	}

	return &Config{
		DBHost:          getEnv("DB_HOST", "localhost"),
		DBPort:          getEnv("DB_PORT", "3306"),
		DBUser:          getEnv("DB_USER", "momentum"),
		DBPassword:      getEnv("DB_PASSWORD", "momentum_pass"),
		DBName:          getEnv("DB_NAME", "momentum"),
		JWTSecret:       getEnv("JWT_SECRET", ""),
		JWTTTL:          getDurationEnv("JWT_TTL", 24*time.Hour),
		APIKey:          getEnv("API_KEY", ""),
		Port:            getEnv("PORT", "8080"),
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", "*"),
		Timezone:        getEnv("TIMEZONE", "Local"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LoginRateLimit:  getIntEnv("LOGIN_RATE_LIMIT", 5),
		LoginRateWindow: getDurationEnv("LOGIN_RATE_WINDOW", 15*time.Minute),
		TrustedProxies:  getListEnv("TRUSTED_PROXIES"),
	}
}

func (c *Config) DSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?parseTime=true&charset=utf8mb4&clientFoundRows=true"
}

// Location resolves Timezone. "today" for workout logs is computed in this zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getListEnv(key string) []string {
	var out []string
	for _, v := range strings.Split(os.Getenv(key), ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func getIntEnv(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
