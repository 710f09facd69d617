package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server         ServerConfig
	Database       DatabaseConfig
	Session        SessionConfig
	Email          EmailConfig
	RateLimit      RateLimitConfig
	CORS           CORSConfig
	AdminBootstrap AdminBootstrapConfig
	Logging        LoggingConfig
	Environment    string
}

type ServerConfig struct {
	Host    string
	Port    int
	BaseURL string
}

type DatabaseConfig struct {
	URL            string
	MaxConnections int
}

type SessionConfig struct {
	Secret string
	Expiry time.Duration
}

// EmailConfig configures the Resend-backed registration notifier.
// Notifications are skipped entirely when APIKey is empty.
type EmailConfig struct {
	APIKey   string
	From     string
	NotifyTo string
}

func (c EmailConfig) Enabled() bool {
	return c.APIKey != ""
}

type RateLimitConfig struct {
	PublicPerMinute int
	AdminPerMinute  int
	LoginPerMinute  int
}

type CORSConfig struct {
	AllowedOrigins  []string
	AllowAllOrigins bool
}

type AdminBootstrapConfig struct {
	Email    string
	Password string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (Config, error) {
	cfg := Config{
		Server: ServerConfig{
			Host:    getEnv("SERVER_HOST", "0.0.0.0"),
			Port:    getEnvInt("SERVER_PORT", 8080),
			BaseURL: getEnv("SERVER_BASE_URL", "http://localhost:8080"),
		},
		Database: DatabaseConfig{
			URL:            getEnv("DATABASE_URL", ""),
			MaxConnections: getEnvInt("DATABASE_MAX_CONNECTIONS", 25),
		},
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", ""),
			Expiry: time.Duration(getEnvInt("SESSION_EXPIRY_HOURS", 24)) * time.Hour,
		},
		Email: EmailConfig{
			APIKey:   getEnv("RESEND_API_KEY", ""),
			From:     getEnv("EMAIL_FROM", "GRM Atlanta <no-reply@grmatl.org>"),
			NotifyTo: getEnv("EMAIL_NOTIFY_TO", "info@grmatl.org"),
		},
		RateLimit: RateLimitConfig{
			PublicPerMinute: getEnvInt("RATE_LIMIT_PUBLIC", 120),
			AdminPerMinute:  getEnvInt("RATE_LIMIT_ADMIN", 0),
			LoginPerMinute:  getEnvInt("RATE_LIMIT_LOGIN", 10),
		},
		CORS: corsFromEnv(),
		AdminBootstrap: AdminBootstrapConfig{
			Email:    getEnv("ADMIN_EMAIL", ""),
			Password: getEnv("ADMIN_PASSWORD", ""),
		},
		Logging: LoggingConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		Environment: getEnv("ENVIRONMENT", "development"),
	}

	if cfg.Database.URL == "" {
		return Config{}, fmt.Errorf("DATABASE_URL is required")
	}
	if cfg.Session.Secret == "" {
		return Config{}, fmt.Errorf("SESSION_SECRET is required")
	}
	return cfg, nil
}

func corsFromEnv() CORSConfig {
	raw := getEnv("CORS_ALLOWED_ORIGINS", "")
	if raw == "" {
		return CORSConfig{AllowAllOrigins: true}
	}

	origins := make([]string, 0)
	for _, origin := range strings.Split(raw, ",") {
		origin = strings.TrimSpace(origin)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	return CORSConfig{AllowedOrigins: origins}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
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
