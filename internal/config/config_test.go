package config

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("MAGNETIC_LATITUDE", "64.8378")
	t.Setenv("MAGNETIC_LONGITUDE", "-147.7164")
	t.Setenv("EMAIL_SENDER", "alerts@example.com")
	t.Setenv("EMAIL_PASSWORD", "app-password")
	t.Setenv("EMAIL_RECIPIENT", "watcher@example.com")
	t.Setenv("SMTP_SERVER", "smtp.example.com")
	t.Setenv("SMTP_PORT", "587")
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 64.8378, cfg.Latitude)
	assert.Equal(t, -147.7164, cfg.Longitude)
	assert.Equal(t, 5, cfg.KpThreshold)
	assert.Equal(t, DefaultForecastURL, cfg.ForecastURL)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "aurora-alerts", cfg.KafkaAlertTopic)
	assert.Empty(t, cfg.PushgatewayURL)
	assert.Empty(t, cfg.KafkaBrokers)
}

func TestLoad_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("KP_THRESHOLD", "7")
	t.Setenv("EMAIL_RECIPIENT", "a@example.com,b@example.com")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("KAFKA_BROKERS", "broker-1:9092,broker-2:9092")
	t.Setenv("FETCH_TIMEOUT", "3s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 7, cfg.KpThreshold)
	assert.Equal(t, []string{"a@example.com", "b@example.com"}, cfg.Recipients)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, []string{"broker-1:9092", "broker-2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, 3*time.Second, cfg.FetchTimeout)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("EMAIL_SENDER", "")

	_, err := Load()
	require.Error(t, err)

	var cfgErr *ConfigError
	assert.True(t, errors.As(err, &cfgErr))
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value string
	}{
		{"latitude out of range", "MAGNETIC_LATITUDE", "95.0"},
		{"longitude out of range", "MAGNETIC_LONGITUDE", "200.0"},
		{"threshold above kp scale", "KP_THRESHOLD", "10"},
		{"threshold not a number", "KP_THRESHOLD", "high"},
		{"sender not an email", "EMAIL_SENDER", "not-an-address"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"port out of range", "SMTP_PORT", "70000"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequiredEnv(t)
			t.Setenv(tt.key, tt.value)

			_, err := Load()
			require.Error(t, err)

			var cfgErr *ConfigError
			assert.True(t, errors.As(err, &cfgErr), "expected *ConfigError, got %T", err)
		})
	}
}
