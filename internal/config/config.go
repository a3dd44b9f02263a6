package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config aggregates runtime configuration for the portal client.
type Config struct {
	App     AppConfig
	Records RecordsConfig
	Session SessionConfig
	Redis   RedisConfig
	Logger  LoggerConfig
}

// AppConfig controls the local portal server.
type AppConfig struct {
	Name    string
	Env     string
	Host    string
	Port    string
	Version string
}

// RecordsConfig points at the clinical record service.
type RecordsConfig struct {
	BaseURL          string
	CredentialHeader string
	TimeoutSeconds   int
}

// SessionConfig defines where the credential token lives.
type SessionConfig struct {
	Backend    string // "file" or "redis"
	TokenPath  string
	Passphrase string // when set, the file slot is sealed at rest
	RedisKey   string
}

// RedisConfig holds Redis connection values for the redis token backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := getEnv("SESSION_BACKEND", "file")
	if backend != "file" && backend != "redis" {
		return nil, fmt.Errorf("invalid SESSION_BACKEND %q: want file or redis", backend)
	}

	cfg := &Config{
		App: AppConfig{
			Name:    getEnv("APP_NAME", "clinic-portal"),
			Env:     getEnv("APP_ENV", "development"),
			Host:    getEnv("APP_HOST", "127.0.0.1"),
			Port:    getEnv("APP_PORT", "4200"),
			Version: getEnv("APP_VERSION", "dev"),
		},
		Records: RecordsConfig{
			BaseURL:          getEnv("RECORDS_BASE_URL", "http://127.0.0.1:5000/api/v1.0"),
			CredentialHeader: getEnv("RECORDS_CREDENTIAL_HEADER", "x-access-token"),
			TimeoutSeconds:   getEnvAsInt("RECORDS_TIMEOUT_SECONDS", 30),
		},
		Session: SessionConfig{
			Backend:    backend,
			TokenPath:  getEnv("SESSION_TOKEN_PATH", defaultTokenPath()),
			Passphrase: os.Getenv("SESSION_PASSPHRASE"),
			RedisKey:   getEnv("SESSION_REDIS_KEY", "clinic-portal:token"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	return cfg, nil
}

// Addr returns the local bind address.
func (a AppConfig) Addr() string {
	return fmt.Sprintf("%s:%s", a.Host, a.Port)
}

// Timeout returns the record-service request timeout duration.
func (r RecordsConfig) Timeout() time.Duration {
	if r.TimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(r.TimeoutSeconds) * time.Second
}

func defaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".clinic-portal-token"
	}
	return filepath.Join(home, ".clinic-portal", "token")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
