package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	JWTAccessTTL  time.Duration
	JWTRefreshTTL time.Duration

	DB     DatabaseConfig
	Redis  RedisConfig
	Line   LineConfig
	Worker WorkerConfig
	Stock  StockConfig
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LineConfig contains credentials for the LINE Messaging API integration.
// When ChannelToken or ChannelSecret is empty the notification capability is
// disabled at startup; it is never re-checked per request.
type LineConfig struct {
	ChannelToken  string
	ChannelSecret string
	VerifyCodeTTL time.Duration
}

// Enabled reports whether the LINE integration is fully configured.
func (c LineConfig) Enabled() bool {
	return c.ChannelToken != "" && c.ChannelSecret != ""
}

// WorkerConfig contains interval configuration for background workers.
type WorkerConfig struct {
	LowStockInterval   time.Duration
	BestSellerInterval time.Duration
}

// StockConfig contains inventory thresholds and dashboard cache tuning.
type StockConfig struct {
	LowStockThreshold int
	StatsCacheTTL     time.Duration
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	// Database
	cfg.DB = DatabaseConfig{
		Host:     getEnv("DB_HOST", ""),
		Port:     getEnv("DB_PORT", "5432"),
		User:     getEnv("DB_USER", ""),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", ""),
		SSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", "redis"),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	// LINE Messaging API
	cfg.Line = LineConfig{
		ChannelToken:  getEnv("LINE_CHANNEL_ACCESS_TOKEN", ""),
		ChannelSecret: getEnv("LINE_CHANNEL_SECRET", ""),
	}

	// Stock thresholds
	cfg.Stock.LowStockThreshold = getEnvInt("LOW_STOCK_THRESHOLD", 5)

	// Durations
	var err error
	if cfg.JWTAccessTTL, err = parseDurationEnv("JWT_ACCESS_TTL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_ACCESS_TTL: %w", err)
	}
	if cfg.JWTRefreshTTL, err = parseDurationEnv("JWT_REFRESH_TTL", "168h"); err != nil {
		return nil, fmt.Errorf("invalid JWT_REFRESH_TTL: %w", err)
	}
	if cfg.Line.VerifyCodeTTL, err = parseDurationEnv("LINE_VERIFY_CODE_TTL", "10m"); err != nil {
		return nil, fmt.Errorf("invalid LINE_VERIFY_CODE_TTL: %w", err)
	}
	if cfg.Stock.StatsCacheTTL, err = parseDurationEnv("STATS_CACHE_TTL", "30s"); err != nil {
		return nil, fmt.Errorf("invalid STATS_CACHE_TTL: %w", err)
	}
	if cfg.Worker.LowStockInterval, err = parseDurationEnv("LOW_STOCK_INTERVAL", "6h"); err != nil {
		return nil, fmt.Errorf("invalid LOW_STOCK_INTERVAL: %w", err)
	}
	if cfg.Worker.BestSellerInterval, err = parseDurationEnv("BEST_SELLER_INTERVAL", "1h"); err != nil {
		return nil, fmt.Errorf("invalid BEST_SELLER_INTERVAL: %w", err)
	}

	// Basic validation for DB parameters — keeps messages concise and helpful.
	if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
		return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}
