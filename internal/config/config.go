package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	Server       ServerConfig
	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Log          LogConfig
	S3           S3Config
	Search       SearchConfig
	Serper       SerperConfig
	LLM          LLMConfig
	Scrape       ScrapeConfig
	Collaborator CollaboratorConfig
	Slack        SlackConfig
	Resend       ResendConfig
	Sentry       SentryConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port string
	Env  string
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// JWTConfig holds job-access-token signing configuration
type JWTConfig struct {
	JobTokenSecret string
	JobTokenExpiry time.Duration
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Format string
}

// S3Config holds S3 storage configuration
type S3Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// SearchConfig holds pipeline-wide round-controller tuning
type SearchConfig struct {
	MaxTargetCount int
}

// SerperConfig holds the external web-search provider configuration
type SerperConfig struct {
	APIKey          string
	ResultsPerQuery int
}

// LLMConfig holds the cleansing-stage LLM provider configuration
type LLMConfig struct {
	AnthropicAPIKey string
	Model           string
}

// ScrapeConfig holds scraper concurrency/timeout configuration
type ScrapeConfig struct {
	Concurrent int
	Timeout    time.Duration
	JSRender   bool
}

// CollaboratorConfig holds the spreadsheet-collaborator webhook configuration
type CollaboratorConfig struct {
	WebhookURL string
}

// SlackConfig holds the chat-notifier configuration
type SlackConfig struct {
	BotToken string
}

// ResendConfig holds the alternate email-notifier configuration
type ResendConfig struct {
	APIKey    string
	FromEmail string
	ToEmail   string
}

// SentryConfig holds crash/error observability configuration
type SentryConfig struct {
	DSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "8080"),
			Env:  getEnv("SERVER_ENV", "development"),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnv("DB_PORT", "5432"),
			User:            getEnv("DB_USER", "prospect"),
			Password:        getEnv("DB_PASSWORD", "prospect"),
			DBName:          getEnv("DB_NAME", "prospect"),
			SSLMode:         getEnv("DB_SSL_MODE", "disable"),
			MaxConns:        getEnvAsInt("DB_MAX_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvAsDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnv("REDIS_PORT", "6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		JWT: JWTConfig{
			JobTokenSecret: getEnv("JOB_TOKEN_SECRET", ""),
			JobTokenExpiry: getEnvAsDuration("JOB_TOKEN_EXPIRY", 24*time.Hour),
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "json"),
		},
		S3: S3Config{
			Endpoint:  getEnv("S3_ENDPOINT", ""),
			Bucket:    getEnv("S3_BUCKET", ""),
			Region:    getEnv("S3_REGION", "eu-central"),
			AccessKey: getEnv("S3_ACCESS_KEY", ""),
			SecretKey: getEnv("S3_SECRET_KEY", ""),
		},
		Search: SearchConfig{
			MaxTargetCount: getEnvAsInt("MAX_TARGET_COUNT", 300),
		},
		Serper: SerperConfig{
			APIKey:          getEnv("SERPER_API_KEY", ""),
			ResultsPerQuery: getEnvAsInt("SERPER_RESULTS_PER_QUERY", 100),
		},
		LLM: LLMConfig{
			AnthropicAPIKey: getEnv("ANTHROPIC_API_KEY", ""),
			Model:           getEnv("ANTHROPIC_MODEL", "claude-3-5-haiku-latest"),
		},
		Scrape: ScrapeConfig{
			Concurrent: getEnvAsInt("SCRAPE_CONCURRENT", 10),
			Timeout:    getEnvAsDuration("SCRAPE_TIMEOUT", 10*time.Second),
			JSRender:   getEnvAsBool("SCRAPE_JS_RENDER", false),
		},
		Collaborator: CollaboratorConfig{
			WebhookURL: getEnv("GAS_WEBHOOK_URL", ""),
		},
		Slack: SlackConfig{
			BotToken: getEnv("SLACK_BOT_TOKEN", ""),
		},
		Resend: ResendConfig{
			APIKey:    getEnv("RESEND_API_KEY", ""),
			FromEmail: getEnv("RESEND_FROM_EMAIL", ""),
			ToEmail:   getEnv("RESEND_TO_EMAIL", ""),
		},
		Sentry: SentryConfig{
			DSN: getEnv("SENTRY_DSN", ""),
		},
	}

	if cfg.JWT.JobTokenSecret == "" {
		return nil, fmt.Errorf("JOB_TOKEN_SECRET is required")
	}

	return cfg, nil
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}

// Addr returns the Redis address
func (c *RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
