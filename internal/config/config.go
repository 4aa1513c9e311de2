package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	Port                             string        `mapstructure:"PORT"`
	GinMode                          string        `mapstructure:"GIN_MODE"`
	FirebaseProjectID                string        `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleApplicationCredentials     string        `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	FirebaseServiceAccountJSONBase64 string        `mapstructure:"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64"`
	ClientURL                        string        `mapstructure:"CLIENT_URL"`
	RabbitMQURL                      string        `mapstructure:"RABBITMQ_URL"`
	CompletionQueue                  string        `mapstructure:"COMPLETION_QUEUE"`
	ShutdownTimeout                  time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`
}

var envKeys = []string{
	"PORT",
	"GIN_MODE",
	"FIREBASE_PROJECT_ID",
	"GOOGLE_APPLICATION_CREDENTIALS",
	"FIREBASE_SERVICE_ACCOUNT_JSON_BASE64",
	"CLIENT_URL",
	"RABBITMQ_URL",
	"COMPLETION_QUEUE",
	"SHUTDOWN_TIMEOUT",
}

// LoadConfig loads configuration from environment variables using Viper.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("COMPLETION_QUEUE", "mission.completions")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")

	for _, key := range envKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, errors.New("failed to bind " + key + ": " + err.Error())
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.New("failed to unmarshal config: " + err.Error())
	}

	if cfg.FirebaseProjectID == "" {
		return nil, errors.New("FIREBASE_PROJECT_ID is required")
	}
	if cfg.ShutdownTimeout <= 0 {
		return nil, errors.New("SHUTDOWN_TIMEOUT must be a positive duration")
	}

	return &cfg, nil
}

// IsRelease reports whether the service runs in gin release mode.
func (c *Config) IsRelease() bool {
	return strings.EqualFold(c.GinMode, "release")
}
