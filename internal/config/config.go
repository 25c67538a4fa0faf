// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"go.uber.org/multierr"
)

// Reminder drivers.
const (
	ReminderDriverTicker = "ticker"
	ReminderDriverQueue  = "queue"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// Redis is optional; without it reminders are only logged and the queue driver is unavailable.
	RedisURL string `env:"REDIS_URL"`

	// Recipe service
	SpoonacularAPIKey  string `env:"SPOONACULAR_API_KEY,required,notEmpty"`
	SpoonacularBaseURL string `env:"SPOONACULAR_BASE_URL" envDefault:"https://api.spoonacular.com"`
	RecipeResultLimit  int    `env:"RECIPE_RESULT_LIMIT" envDefault:"10"`

	// Logging
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"json"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Comma-separated list of allowed origins (e.g., "https://app.example.com,*.example.org")
	CORSAllowedOrigins string `env:"CORS_ALLOWED_ORIGINS" envDefault:""`

	// Request body size limit in bytes (default 1MB)
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`

	// Expiry reminders
	ReminderEnabled       bool          `env:"REMINDER_ENABLED" envDefault:"true"`
	ReminderDriver        string        `env:"REMINDER_DRIVER" envDefault:"ticker"`
	ReminderInterval      time.Duration `env:"REMINDER_INTERVAL" envDefault:"24h"`
	ReminderRunOnStart    bool          `env:"REMINDER_RUN_ON_START" envDefault:"false"`
	ReminderTimezone      string        `env:"REMINDER_TIMEZONE" envDefault:"Local"`
	ReminderStreamEnabled bool          `env:"REMINDER_STREAM_ENABLED" envDefault:"true"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// IsProduction returns true if running in production mode.
func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// GetCORSAllowedOrigins parses the comma-separated origins string into a slice.
func (c *Config) GetCORSAllowedOrigins() []string {
	if c.CORSAllowedOrigins == "" {
		return nil
	}

	origins := strings.Split(c.CORSAllowedOrigins, ",")
	result := make([]string, 0, len(origins))

	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}

// ReminderLocation resolves ReminderTimezone. "Local" and "" mean the server zone.
func (c *Config) ReminderLocation() (*time.Location, error) {
	switch c.ReminderTimezone {
	case "", "Local":
		return time.Local, nil
	default:
		loc, err := time.LoadLocation(c.ReminderTimezone)
		if err != nil {
			return nil, fmt.Errorf("unknown REMINDER_TIMEZONE %q: %w", c.ReminderTimezone, err)
		}
		return loc, nil
	}
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	var err error

	if c.AppPort <= 0 || c.AppPort > 65535 {
		err = multierr.Append(err, fmt.Errorf("APP_PORT must be between 1 and 65535, got %d", c.AppPort))
	}
	if c.RecipeResultLimit <= 0 {
		err = multierr.Append(err, fmt.Errorf("RECIPE_RESULT_LIMIT must be positive, got %d", c.RecipeResultLimit))
	}

	if c.ReminderEnabled {
		switch c.ReminderDriver {
		case ReminderDriverTicker:
		case ReminderDriverQueue:
			if c.RedisURL == "" {
				err = multierr.Append(err, errors.New("REMINDER_DRIVER=queue requires REDIS_URL"))
			}
		default:
			err = multierr.Append(err, fmt.Errorf("unknown REMINDER_DRIVER %q", c.ReminderDriver))
		}
		if c.ReminderInterval <= 0 {
			err = multierr.Append(err, fmt.Errorf("REMINDER_INTERVAL must be positive, got %s", c.ReminderInterval))
		}
		if _, locErr := c.ReminderLocation(); locErr != nil {
			err = multierr.Append(err, locErr)
		}
	}

	return err
}

// Load reads an optional .env file, parses environment variables and
// validates the result. Variables already set in the environment win over .env.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
