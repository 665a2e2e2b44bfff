package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Dan9191/spend-forecast/internal/forecast"
)

// DigestRecipient receives the scheduled forecast digest for one user
type DigestRecipient struct {
	UserID int64
	Email  string
}

// Config holds application configuration
type Config struct {
	Port               string
	LogLevel           string
	DBConn             string
	ForecastModel      forecast.Kind
	GrowthCap          float64
	ForecastTimeout    time.Duration
	CORSAllowedOrigins []string
	SMTPHost           string
	SMTPPort           string
	SMTPUsername       string
	SMTPPassword       string
	SenderEmail        string
	DigestSchedule     string
	DigestRecipients   []DigestRecipient
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "5001"),
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
		DBConn:         getEnv("DB_CONN", ""),
		SMTPHost:       getEnv("SMTP_HOST", ""),
		SMTPPort:       getEnv("SMTP_PORT", "587"),
		SMTPUsername:   getEnv("SMTP_USERNAME", ""),
		SMTPPassword:   getEnv("SMTP_PASSWORD", ""),
		SenderEmail:    getEnv("SENDER_EMAIL", "forecast@localhost"),
		DigestSchedule: getEnv("DIGEST_SCHEDULE", "0 8 * * 1"),
	}

	kind, err := forecast.ParseKind(getEnv("FORECAST_MODEL", string(forecast.KindSeasonal)))
	if err != nil {
		return nil, fmt.Errorf("FORECAST_MODEL: %w", err)
	}
	cfg.ForecastModel = kind

	cfg.GrowthCap, err = strconv.ParseFloat(getEnv("FORECAST_GROWTH_CAP", strconv.FormatFloat(forecast.DefaultGrowthCap, 'f', -1, 64)), 64)
	if err != nil {
		return nil, fmt.Errorf("FORECAST_GROWTH_CAP: %w", err)
	}
	if cfg.GrowthCap <= 0 {
		return nil, fmt.Errorf("FORECAST_GROWTH_CAP must be positive")
	}

	cfg.ForecastTimeout, err = time.ParseDuration(getEnv("FORECAST_TIMEOUT", "30s"))
	if err != nil {
		return nil, fmt.Errorf("FORECAST_TIMEOUT: %w", err)
	}

	cfg.CORSAllowedOrigins = splitList(getEnv("CORS_ALLOWED_ORIGINS", "*"))

	cfg.DigestRecipients, err = ParseDigestRecipients(getEnv("DIGEST_RECIPIENTS", ""))
	if err != nil {
		return nil, fmt.Errorf("DIGEST_RECIPIENTS: %w", err)
	}

	return cfg, nil
}

// DigestEnabled reports whether the scheduled digest has everything it needs
func (c *Config) DigestEnabled() bool {
	return c.DBConn != "" && c.SMTPHost != "" && len(c.DigestRecipients) > 0
}

// ParseDigestRecipients parses a comma-separated list of userID:email pairs
func ParseDigestRecipients(raw string) ([]DigestRecipient, error) {
	var recipients []DigestRecipient
	for _, entry := range splitList(raw) {
		id, email, ok := strings.Cut(entry, ":")
		if !ok || strings.TrimSpace(email) == "" {
			return nil, fmt.Errorf("invalid recipient %q, want userID:email", entry)
		}
		userID, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid user ID in %q: %w", entry, err)
		}
		recipients = append(recipients, DigestRecipient{UserID: userID, Email: strings.TrimSpace(email)})
	}
	return recipients, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
