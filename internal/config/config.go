package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application
type Config struct {
	// Server configuration (serve mode)
	Port  string
	Debug bool

	// External CLI tool configuration
	CLITool    string        // binary invoked for all searches
	Retries    int           // attempts per invocation
	RetryDelay time.Duration // fixed delay between attempts

	// Report configuration
	OutputDir      string // base directory for report artifacts
	BrandsFile     string // JSON file mapping brand id -> brand definition
	ReportSchedule string // "daily" or "weekly" (serve mode scheduler)
	TimeZone       string

	// Azure Storage configuration (optional report archive)
	StorageAccount   string
	StorageContainer string

	// Notification configuration (optional)
	WebhookURL        string
	NotificationEmail string
	SMTPHost          string
	SMTPPort          int
	SMTPUsername      string
	SMTPPassword      string
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:  getEnv("PORT", "8080"),
		Debug: getBoolEnv("DEBUG", false),

		CLITool:    getEnv("SOCIAL_CLI", "social-cli"),
		Retries:    getIntEnv("CLI_RETRIES", 3),
		RetryDelay: time.Duration(getIntEnv("CLI_RETRY_DELAY_MS", 1000)) * time.Millisecond,

		OutputDir:      getEnv("OUTPUT_DIR", "reports"),
		BrandsFile:     getEnv("BRANDS_CONFIG", "brands.json"),
		ReportSchedule: getEnv("REPORT_SCHEDULE", "daily"),
		TimeZone:       getEnv("TIMEZONE", "UTC"),

		StorageAccount:   getEnv("AZURE_STORAGE_ACCOUNT", ""),
		StorageContainer: getEnv("AZURE_STORAGE_CONTAINER", "intel-reports"),

		WebhookURL:        getEnv("WEBHOOK_URL", ""),
		NotificationEmail: getEnv("NOTIFICATION_EMAIL", ""),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getIntEnv("SMTP_PORT", 587),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.CLITool == "" {
		return fmt.Errorf("SOCIAL_CLI must name the external CLI binary")
	}

	if c.Retries < 1 {
		return fmt.Errorf("CLI_RETRIES must be at least 1, got %d", c.Retries)
	}

	if c.ReportSchedule != "daily" && c.ReportSchedule != "weekly" {
		return fmt.Errorf("REPORT_SCHEDULE must be 'daily' or 'weekly'")
	}

	if c.NotificationEmail != "" {
		if c.SMTPHost == "" || c.SMTPUsername == "" || c.SMTPPassword == "" {
			return fmt.Errorf("SMTP configuration is required when NOTIFICATION_EMAIL is set")
		}
	}

	return nil
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseBool(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
