// Package config loads job settings from the environment.
//
// Loading order: a .env file if present (never overriding real environment
// variables), then envconfig struct tags, then struct validation. Everything
// fails before the first network call of a run.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// DefaultForecastURL is the NOAA SWPC 3-day forecast text product.
const DefaultForecastURL = "https://services.swpc.noaa.gov/text/3-day-forecast.txt"

// ConfigError is returned for any missing or invalid setting.
type ConfigError struct {
	Message string
	Err     error
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("config: %s: %v", e.Message, e.Err)
	}
	return "config: " + e.Message
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Config holds all job settings, populated from environment variables.
type Config struct {
	// Observer location. Magnetic latitude is a reasonable stand-in for
	// geographic latitude at the accuracy aurora visibility needs.
	Latitude  float64 `envconfig:"MAGNETIC_LATITUDE" required:"true" validate:"latitude"`
	Longitude float64 `envconfig:"MAGNETIC_LONGITUDE" required:"true" validate:"longitude"`

	// Alerting. Threshold is compared inclusively against forecast Kp.
	KpThreshold int `envconfig:"KP_THRESHOLD" default:"5" validate:"min=0,max=9"`

	// Email delivery.
	Sender     string   `envconfig:"EMAIL_SENDER" required:"true" validate:"email"`
	Password   string   `envconfig:"EMAIL_PASSWORD" required:"true"`
	Recipients []string `envconfig:"EMAIL_RECIPIENT" required:"true" validate:"min=1,dive,email"`
	SMTPHost   string   `envconfig:"SMTP_SERVER" required:"true" validate:"hostname|ip"`
	SMTPPort   int      `envconfig:"SMTP_PORT" required:"true" validate:"min=1,max=65535"`

	// Forecast source.
	ForecastURL  string        `envconfig:"FORECAST_URL" default:"https://services.swpc.noaa.gov/text/3-day-forecast.txt" validate:"url"`
	FetchTimeout time.Duration `envconfig:"FETCH_TIMEOUT" default:"10s"`

	// Logging.
	LogLevel  string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn error"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"json" validate:"oneof=json text"`

	// Optional run-metrics push target; empty disables the push.
	PushgatewayURL string `envconfig:"PUSHGATEWAY_URL" validate:"omitempty,url"`

	// Optional alert-event publishing; no brokers disables the stage.
	KafkaBrokers    []string `envconfig:"KAFKA_BROKERS"`
	KafkaAlertTopic string   `envconfig:"KAFKA_ALERT_TOPIC" default:"aurora-alerts"`
}

// Load reads configuration from the environment, applying defaults where unset.
func Load() (*Config, error) {
	// Not fatal when absent; real environment variables win over file values.
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, &ConfigError{Message: "read environment", Err: err}
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, &ConfigError{Message: "validate settings", Err: err}
	}

	return &cfg, nil
}
