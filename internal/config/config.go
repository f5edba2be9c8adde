package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Database  DatabaseConfig
	App       AppConfig
	Scheduler SchedulerConfig
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	Name     string
	SSLMode  string
}

// AppConfig holds application configuration
type AppConfig struct {
	Env      string
	LogLevel string
}

// SchedulerConfig holds the job intervals and the break dedupe window
type SchedulerConfig struct {
	PayrollInterval   time.Duration
	BreakPollInterval time.Duration
	BreakDedupeWindow time.Duration
}

func Load() (*Config, error) {
	// .env is optional; environment variables win either way
	_ = godotenv.Load()

	config := &Config{}

	// Database configuration
	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	config.Database = DatabaseConfig{
		Host:     getEnv("DB_HOST", "localhost"),
		Port:     dbPort,
		User:     getEnv("DB_USER", "postgres"),
		Password: getEnv("DB_PASSWORD", ""),
		Name:     getEnv("DB_NAME", "payroll_scheduler"),
		SSLMode:  getEnv("DB_SSL_MODE", "disable"),
	}

	// Application configuration
	config.App = AppConfig{
		Env:      getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	// Scheduler configuration
	payrollInterval, err := time.ParseDuration(getEnv("PAYROLL_TICK_INTERVAL", "1h"))
	if err != nil {
		return nil, fmt.Errorf("invalid PAYROLL_TICK_INTERVAL: %w", err)
	}
	breakPoll, err := time.ParseDuration(getEnv("BREAK_POLL_INTERVAL", "1m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_POLL_INTERVAL: %w", err)
	}
	dedupeWindow, err := time.ParseDuration(getEnv("BREAK_DEDUPE_WINDOW", "5m"))
	if err != nil {
		return nil, fmt.Errorf("invalid BREAK_DEDUPE_WINDOW: %w", err)
	}

	config.Scheduler = SchedulerConfig{
		PayrollInterval:   payrollInterval,
		BreakPollInterval: breakPoll,
		BreakDedupeWindow: dedupeWindow,
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return config, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Database.Password == "" {
		return fmt.Errorf("DB_PASSWORD is required")
	}
	if c.Scheduler.BreakPollInterval <= 0 {
		return fmt.Errorf("BREAK_POLL_INTERVAL must be positive")
	}
	if c.Scheduler.BreakDedupeWindow <= 0 {
		return fmt.Errorf("BREAK_DEDUPE_WINDOW must be positive")
	}
	return nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Name,
		c.Database.SSLMode,
	)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
