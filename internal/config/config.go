package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds application configuration
type Config struct {
	Port              string
	DBConn            string
	LogLevel          string
	JWTSecret         string
	SMTPHost          string
	SMTPPort          string
	SMTPUsername      string
	SMTPPassword      string
	SenderEmail       string
	AlertRecipient    string
	RetentionDays     int
	RetentionSchedule string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	retentionDays, err := strconv.Atoi(getEnv("ANALYSIS_RETENTION_DAYS", "365"))
	if err != nil || retentionDays <= 0 {
		return nil, fmt.Errorf("ANALYSIS_RETENTION_DAYS must be a positive integer")
	}

	cfg := &Config{
		Port:              getEnv("PORT", "8080"),
		DBConn:            getEnv("DB_CONN", "host=localhost port=5436 user=test password=test dbname=bureau sslmode=disable"),
		LogLevel:          getEnv("LOG_LEVEL", "INFO"),
		JWTSecret:         getEnv("JWT_SECRET", "secret"),
		SMTPHost:          getEnv("SMTP_HOST", ""),
		SMTPPort:          getEnv("SMTP_PORT", "587"),
		SMTPUsername:      getEnv("SMTP_USERNAME", ""),
		SMTPPassword:      getEnv("SMTP_PASSWORD", ""),
		SenderEmail:       getEnv("SENDER_EMAIL", "alerts@creditpulse.local"),
		AlertRecipient:    getEnv("ALERT_RECIPIENT", ""),
		RetentionDays:     retentionDays,
		RetentionSchedule: getEnv("RETENTION_SCHEDULE", "0 3 * * *"),
	}

	if cfg.DBConn == "" {
		return nil, fmt.Errorf("DB_CONN is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

// AlertsEnabled reports whether risk-alert mail is configured.
func (c *Config) AlertsEnabled() bool {
	return c.SMTPHost != "" && c.AlertRecipient != ""
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
