package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for our application
type Config struct {
	Server        ServerConfig        `mapstructure:",squash"`
	Database      DatabaseConfig      `mapstructure:",squash"`
	Redis         RedisConfig         `mapstructure:",squash"`
	Scheduler     SchedulerConfig     `mapstructure:",squash"`
	Notifications NotificationsConfig `mapstructure:",squash"`
	Logging       LoggingConfig       `mapstructure:",squash"`
	Health        HealthConfig        `mapstructure:",squash"`
}

type ServerConfig struct {
	Port string `mapstructure:"SERVER_PORT"`
	Host string `mapstructure:"SERVER_HOST"`
	Env  string `mapstructure:"ENV"`
}

type DatabaseConfig struct {
	URL string `mapstructure:"DATABASE_URL"`
}

type RedisConfig struct {
	Host     string `mapstructure:"REDIS_HOST"`
	Port     string `mapstructure:"REDIS_PORT"`
	Password string `mapstructure:"REDIS_PASSWORD"`
	DB       int    `mapstructure:"REDIS_DB"`
}

type SchedulerConfig struct {
	Timezone string `mapstructure:"SCHEDULER_TIMEZONE"`
}

// NotificationsConfig carries the smart-notification toggles and window
// lengths. Passed explicitly into the scheduling entry points so the daily
// pass stays a pure function of its arguments.
type NotificationsConfig struct {
	SmartEnabled         bool `mapstructure:"SMART_NOTIFICATIONS_ENABLED"`
	WeeklySummaryEnabled bool `mapstructure:"WEEKLY_SUMMARY_ENABLED"`
	MonthSummaryEnabled  bool `mapstructure:"MONTH_SUMMARY_ENABLED"`
	WeeklyWindowDays     int  `mapstructure:"NOTIFY_WEEKLY_WINDOW_DAYS"`
	DueSoonDays          int  `mapstructure:"NOTIFY_DUE_SOON_DAYS"`
	PaydayDayOfMonth     int  `mapstructure:"NOTIFY_PAYDAY_DAY"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"LOG_LEVEL"`
	Format string `mapstructure:"LOG_FORMAT"`
}

type HealthConfig struct {
	Timeout string `mapstructure:"HEALTH_CHECK_TIMEOUT"`
}

// Load reads configuration from environment variables and files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "json")
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("SCHEDULER_TIMEZONE", "UTC")
	viper.SetDefault("SMART_NOTIFICATIONS_ENABLED", true)
	viper.SetDefault("WEEKLY_SUMMARY_ENABLED", true)
	viper.SetDefault("MONTH_SUMMARY_ENABLED", true)
	viper.SetDefault("NOTIFY_WEEKLY_WINDOW_DAYS", 7)
	viper.SetDefault("NOTIFY_DUE_SOON_DAYS", 7)
	viper.SetDefault("NOTIFY_PAYDAY_DAY", 0)
	viper.SetDefault("HEALTH_CHECK_TIMEOUT", "5s")

	// Read from environment variables
	viper.AutomaticEnv()

	// Try to read from .env file (optional)
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./deployments")

	// Don't fail if .env file doesn't exist
	_ = viper.ReadInConfig()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("SERVER_PORT is required")
	}

	if c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}

	if c.Notifications.WeeklyWindowDays <= 0 {
		return fmt.Errorf("NOTIFY_WEEKLY_WINDOW_DAYS must be greater than 0")
	}

	if c.Notifications.DueSoonDays <= 0 {
		return fmt.Errorf("NOTIFY_DUE_SOON_DAYS must be greater than 0")
	}

	if c.Notifications.PaydayDayOfMonth < 0 || c.Notifications.PaydayDayOfMonth > 31 {
		return fmt.Errorf("NOTIFY_PAYDAY_DAY must be 0 (disabled) or 1-31")
	}

	if _, err := time.LoadLocation(c.Scheduler.Timezone); err != nil {
		return fmt.Errorf("SCHEDULER_TIMEZONE must be a valid IANA zone: %w", err)
	}

	if _, err := time.ParseDuration(c.Health.Timeout); err != nil {
		return fmt.Errorf("HEALTH_CHECK_TIMEOUT must be a valid duration: %w", err)
	}

	return nil
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development" || c.Server.Env == "dev"
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production" || c.Server.Env == "prod"
}

// GetSchedulerLocation returns the scheduler timezone, already validated.
func (c *Config) GetSchedulerLocation() *time.Location {
	location, _ := time.LoadLocation(c.Scheduler.Timezone)
	return location
}

// GetHealthTimeout returns the health check timeout as duration
func (c *Config) GetHealthTimeout() time.Duration {
	timeout, _ := time.ParseDuration(c.Health.Timeout)
	return timeout
}
