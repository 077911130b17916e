package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Port          string        `yaml:"port"`
	DBPath        string        `yaml:"dbPath"`
	JWTSecret     string        `yaml:"jwtSecret"`
	TokenTTL      time.Duration `yaml:"-"`
	TokenTTLHours int           `yaml:"tokenTTLHours"`
	CORSOrigins   []string      `yaml:"corsOrigins"`
	MigrationsDir string        `yaml:"migrationsDir"`
	LogLevel      string        `yaml:"logLevel"`
}

// Load builds the config from an optional YAML file (CONFIG_PATH) with
// environment variables taking precedence over file values.
func Load() (Config, error) {
	cfg := Config{
		Port:          "8080",
		DBPath:        "./data/timetracker.db",
		JWTSecret:     "change-this-secret",
		TokenTTLHours: 72,
		CORSOrigins:   []string{"http://localhost:5173", "http://127.0.0.1:5173"},
		MigrationsDir: "./migrations",
		LogLevel:      "info",
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DBPath = getEnv("DB_PATH", cfg.DBPath)
	cfg.JWTSecret = getEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.TokenTTLHours = getEnvInt("TOKEN_TTL_HOURS", cfg.TokenTTLHours)
	cfg.CORSOrigins = getEnvList("CORS_ORIGINS", cfg.CORSOrigins)
	cfg.MigrationsDir = getEnv("MIGRATIONS_DIR", cfg.MigrationsDir)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	if cfg.TokenTTLHours <= 0 {
		cfg.TokenTTLHours = 72
	}
	cfg.TokenTTL = time.Duration(cfg.TokenTTLHours) * time.Hour

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}

	parts := strings.Split(value, ",")
	items := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			items = append(items, trimmed)
		}
	}
	if len(items) == 0 {
		return fallback
	}
	return items
}
