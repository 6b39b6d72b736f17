package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vladimiradmaev/fitness-helper/internal/logger"
)

type Config struct {
	TelegramToken  string
	GeminiAPIKey   string
	OpenAIAPIKey   string
	APIAddr        string
	Timezone       string
	DigestSchedule string
	TablesFile     string
	DB             DBConfig
	Redis          RedisConfig
	Logger         LoggerConfig
}

type DBConfig struct {
	Driver     string // "postgres" or "sqlite"
	Host       string
	Port       string
	User       string
	Password   string
	DBName     string
	SQLitePath string
}

type RedisConfig struct {
	Host string
	Port string
}

// Enabled reports whether conversation state should live in Redis
func (r RedisConfig) Enabled() bool {
	return r.Host != ""
}

type LoggerConfig struct {
	Level      logger.LogLevel
	OutputPath string
	Format     string
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func Load() (*Config, error) {
	cfg := &Config{
		TelegramToken:  os.Getenv("TELEGRAM_BOT_TOKEN"),
		GeminiAPIKey:   os.Getenv("GEMINI_API_KEY"),
		OpenAIAPIKey:   os.Getenv("OPENAI_API_KEY"),
		APIAddr:        getEnvOrDefault("API_ADDR", ":8080"),
		Timezone:       getEnvOrDefault("TIMEZONE", "UTC"),
		DigestSchedule: getEnvOrDefault("DIGEST_SCHEDULE", "0 19 * * 0"),
		TablesFile:     os.Getenv("TABLES_FILE"),
		DB: DBConfig{
			Driver:     strings.ToLower(getEnvOrDefault("DB_DRIVER", "postgres")),
			Host:       getEnvOrDefault("DB_HOST", "localhost"),
			Port:       getEnvOrDefault("DB_PORT", "5432"),
			User:       getEnvOrDefault("DB_USER", "postgres"),
			Password:   getEnvOrDefault("DB_PASSWORD", "postgres"),
			DBName:     getEnvOrDefault("DB_NAME", "fitness_tracker"),
			SQLitePath: getEnvOrDefault("SQLITE_PATH", "data/fitness.db"),
		},
		Redis: RedisConfig{
			Host: os.Getenv("REDIS_HOST"),
			Port: getEnvOrDefault("REDIS_PORT", "6379"),
		},
		Logger: LoggerConfig{
			Level:      logger.ParseLevel(getEnvOrDefault("LOG_LEVEL", "info")),
			OutputPath: getEnvOrDefault("LOG_OUTPUT", "logs/app.log"),
			Format:     getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that would otherwise fail late at startup
func (c *Config) Validate() error {
	var problems []string
	switch c.DB.Driver {
	case "postgres", "sqlite":
	default:
		problems = append(problems, fmt.Sprintf("DB_DRIVER must be postgres or sqlite, got %q", c.DB.Driver))
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		problems = append(problems, fmt.Sprintf("TIMEZONE %q: %v", c.Timezone, err))
	}
	if _, err := cron.ParseStandard(c.DigestSchedule); err != nil {
		problems = append(problems, fmt.Sprintf("DIGEST_SCHEDULE %q: %v", c.DigestSchedule, err))
	}
	if c.Logger.Format != "json" && c.Logger.Format != "text" {
		problems = append(problems, fmt.Sprintf("LOG_FORMAT must be json or text, got %q", c.Logger.Format))
	}
	if len(problems) > 0 {
		return fmt.Errorf("invalid configuration:\n  - %s", strings.Join(problems, "\n  - "))
	}
	return nil
}

// Location returns the timezone used to derive calendar days
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
