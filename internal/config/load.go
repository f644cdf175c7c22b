package config

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Load configuration from environment variables and optionally a config
// file in the working directory. Environment variables take precedence
// over values from config files.
// Returns a populated Config struct or an error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	// Set default values
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("auth.username", "DNT")
	v.SetDefault("auth.password", "123")
	v.SetDefault("retry.max_retries", 3)
	v.SetDefault("retry.backoff_millis", 100)

	// Optionally read config.yaml from the working directory
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Configure environment variables with LIBRARY_ prefix
	v.SetEnvPrefix("LIBRARY")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind critical environment variables
	bindEnvs := []struct {
		key    string
		envVar string
	}{
		{"server.port", "LIBRARY_SERVER_PORT"},
		{"server.log_level", "LIBRARY_SERVER_LOG_LEVEL"},
		{"database.url", "LIBRARY_DATABASE_URL"},
		{"auth.username", "LIBRARY_AUTH_USERNAME"},
		{"auth.password", "LIBRARY_AUTH_PASSWORD"},
		{"retry.max_retries", "LIBRARY_RETRY_MAX_RETRIES"},
		{"retry.backoff_millis", "LIBRARY_RETRY_BACKOFF_MILLIS"},
	}
	for _, env := range bindEnvs {
		if err := v.BindEnv(env.key, env.envVar); err != nil {
			return nil, fmt.Errorf("error binding environment variable %s: %w", env.envVar, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	validate := validator.New()
	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}
