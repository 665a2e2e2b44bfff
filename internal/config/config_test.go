package config

import (
	"testing"
	"time"

	"github.com/Dan9191/spend-forecast/internal/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_CONN", "FORECAST_MODEL", "FORECAST_GROWTH_CAP", "FORECAST_TIMEOUT", "CORS_ALLOWED_ORIGINS", "DIGEST_RECIPIENTS", "SMTP_HOST"} {
		t.Setenv(key, "")
	}
	// an empty value counts as set, so restore the defaults explicitly
	t.Setenv("PORT", "5001")
	t.Setenv("FORECAST_GROWTH_CAP", "10000")
	t.Setenv("FORECAST_TIMEOUT", "30s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "*")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, "5001", cfg.Port)
	assert.Equal(t, forecast.KindSeasonal, cfg.ForecastModel)
	assert.Equal(t, forecast.DefaultGrowthCap, cfg.GrowthCap)
	assert.Equal(t, 30*time.Second, cfg.ForecastTimeout)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.DigestRecipients)
	assert.False(t, cfg.DigestEnabled())
}

func TestNewConfigOverrides(t *testing.T) {
	t.Setenv("FORECAST_MODEL", "linear")
	t.Setenv("FORECAST_GROWTH_CAP", "2500.5")
	t.Setenv("FORECAST_TIMEOUT", "5s")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:3000, https://app.example.com")
	t.Setenv("DB_CONN", "postgres://localhost/finance")
	t.Setenv("SMTP_HOST", "smtp.example.com")
	t.Setenv("DIGEST_RECIPIENTS", "1:a@example.com, 42:b@example.com")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.Equal(t, forecast.KindLinear, cfg.ForecastModel)
	assert.Equal(t, 2500.5, cfg.GrowthCap)
	assert.Equal(t, 5*time.Second, cfg.ForecastTimeout)
	assert.Equal(t, []string{"http://localhost:3000", "https://app.example.com"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []DigestRecipient{{UserID: 1, Email: "a@example.com"}, {UserID: 42, Email: "b@example.com"}}, cfg.DigestRecipients)
	assert.True(t, cfg.DigestEnabled())
}

func TestNewConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"FORECAST_MODEL", "neural"},
		{"FORECAST_GROWTH_CAP", "lots"},
		{"FORECAST_GROWTH_CAP", "-1"},
		{"FORECAST_TIMEOUT", "soon"},
		{"DIGEST_RECIPIENTS", "alice@example.com"},
		{"DIGEST_RECIPIENTS", "x:alice@example.com"},
	}
	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := NewConfig()
			assert.Error(t, err)
		})
	}
}
