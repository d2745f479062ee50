package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	SMTP     SMTPConfig
	Uploads  UploadConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host         string
	Port         string
	Environment  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DatabaseConfig holds Postgres connection and pool configuration.
type DatabaseConfig struct {
	URL                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetime    time.Duration
	ConnMaxIdleTime    time.Duration
	SlowQueryThreshold time.Duration
	MigrationsPath     string
}

// AuthConfig holds token and credential configuration.
type AuthConfig struct {
	JWTSecret  string
	TokenTTL   time.Duration
	BCryptCost int
}

// SMTPConfig holds outbound mail configuration.
type SMTPConfig struct {
	Host         string
	Port         int
	Username     string
	Password     string
	From         string
	PollInterval time.Duration
	BatchSize    int
}

// UploadConfig holds attachment storage configuration.
type UploadConfig struct {
	Dir         string
	MaxFileSize int64
}

// Load reads configuration from the environment, with an optional .env
// file for local development.
func Load() (*Config, error) {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:         getEnv("SERVER_HOST", ""),
			Port:         getEnv("SERVER_PORT", "8080"),
			Environment:  getEnv("GO_ENV", "development"),
			ReadTimeout:  getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout: getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:  getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
		},
		Database: DatabaseConfig{
			URL:                os.Getenv("DATABASE_URL"),
			MaxOpenConns:       getInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:       getInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime:    getDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			ConnMaxIdleTime:    getDuration("DB_CONN_MAX_IDLE_TIME", 10*time.Minute),
			SlowQueryThreshold: getDuration("DB_SLOW_QUERY_THRESHOLD", 100*time.Millisecond),
			MigrationsPath:     getEnv("DB_MIGRATIONS_PATH", "migrations"),
		},
		Auth: AuthConfig{
			JWTSecret:  os.Getenv("JWT_SECRET"),
			TokenTTL:   getDuration("JWT_TOKEN_TTL", time.Hour),
			BCryptCost: getInt("BCRYPT_COST", bcrypt.DefaultCost),
		},
		SMTP: SMTPConfig{
			Host:         getEnv("SMTP_HOST", "localhost"),
			Port:         getInt("SMTP_PORT", 587),
			Username:     os.Getenv("SMTP_USER"),
			Password:     os.Getenv("SMTP_PASS"),
			From:         getEnv("SMTP_FROM", "no-reply@jobportal.local"),
			PollInterval: getDuration("MAIL_POLL_INTERVAL", 15*time.Second),
			BatchSize:    getInt("MAIL_BATCH_SIZE", 20),
		},
		Uploads: UploadConfig{
			Dir:         getEnv("UPLOAD_DIR", "uploads"),
			MaxFileSize: getInt64("UPLOAD_MAX_FILE_SIZE", 10<<20),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.Auth.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET is required")
	}
	if c.Auth.BCryptCost < bcrypt.MinCost || c.Auth.BCryptCost > bcrypt.MaxCost {
		return fmt.Errorf("BCRYPT_COST %d out of range", c.Auth.BCryptCost)
	}
	return nil
}

// IsProduction reports whether the server runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
