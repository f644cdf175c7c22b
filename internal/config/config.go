package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Retry    RetryConfig    `mapstructure:"retry"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// AuthConfig contains the credential pair every request is checked
// against. This is a demonstration service with a single fixed user.
type AuthConfig struct {
	Username string `mapstructure:"username" validate:"required"`
	Password string `mapstructure:"password" validate:"required"`
}

// RetryConfig tunes the transient-error retry policy around database
// transactions. Zero values fall back to the defaults set in Load.
type RetryConfig struct {
	MaxRetries    int `mapstructure:"max_retries" validate:"gte=0"`
	BackoffMillis int `mapstructure:"backoff_millis" validate:"gte=0"`
}
