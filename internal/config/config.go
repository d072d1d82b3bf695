package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port   string
	AppEnv string

	DatabaseURL   string
	RunMigrations bool

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionTTL    time.Duration

	AuthServiceURL string
	AuthLatency    time.Duration

	LoadMoreDelay time.Duration

	ChromePath    string
	PDFPagination string
	PDFTimeout    time.Duration
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	cfg := &Config{
		Port:   getEnvString("PORT", "5000"),
		AppEnv: getEnvString("APP_ENV", "development"),

		DatabaseURL:   getEnvString("DATABASE_URL", ""),
		RunMigrations: getEnvBool("RUN_MIGRATIONS", true),

		RedisAddr:     getEnvString("REDIS_ADDR", ""),
		RedisPassword: getEnvString("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		SessionTTL:    getEnvDuration("SESSION_TTL", 720*time.Hour),

		AuthServiceURL: getEnvString("AUTH_SERVICE_URL", ""),
		AuthLatency:    getEnvDuration("AUTH_LATENCY", 0),

		LoadMoreDelay: getEnvDuration("LOAD_MORE_DELAY", time.Second),

		ChromePath:    getEnvString("CHROME_PATH", ""),
		PDFPagination: strings.ToLower(getEnvString("PDF_PAGINATION", "shift")),
		PDFTimeout:    getEnvDuration("PDF_TIMEOUT", 60*time.Second),
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.AppEnv, "production")
}

func getEnvString(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
