// Package config loads the application configuration once at startup.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/spf13/viper"
)

// Config holds every runtime setting. It is built once and passed to the
// components that need it.
type Config struct {
	Port           string  `mapstructure:"PORT"`
	DatabasePath   string  `mapstructure:"DATABASE_PATH"`
	JWTSecret      string  `mapstructure:"JWT_SECRET"`
	CookieSecure   bool    `mapstructure:"COOKIE_SECURE"`
	BcryptCost     int     `mapstructure:"BCRYPT_COST"`
	LogLevel       string  `mapstructure:"LOG_LEVEL"`
	Env            string  `mapstructure:"APP_ENV"`
	HomePageSize   int     `mapstructure:"HOME_PAGE_SIZE"`
	AuthRatePerSec float64 `mapstructure:"AUTH_RATE_PER_SEC"`
	AuthRateBurst  float64 `mapstructure:"AUTH_RATE_BURST"`
}

// Load reads configuration from the optional file at path (or quill.yaml in
// the working directory when path is empty) and from environment variables.
// Environment variables take precedence.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("quill")
		v.SetConfigType("yaml")
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("DATABASE_PATH", "quill.db")
	v.SetDefault("JWT_SECRET", "")
	// Default to secure cookies; disable only for local development.
	v.SetDefault("COOKIE_SECURE", true)
	v.SetDefault("BCRYPT_COST", 12)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("HOME_PAGE_SIZE", 5)
	v.SetDefault("AUTH_RATE_PER_SEC", 0.2)
	v.SetDefault("AUTH_RATE_BURST", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the settings needed to serve traffic.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.DatabasePath == "" {
		return errors.New("DATABASE_PATH is required")
	}
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters for HMAC-SHA256 security")
	}
	if c.BcryptCost < 4 || c.BcryptCost > 14 {
		return fmt.Errorf("BCRYPT_COST must be between 4 and 14, got %d", c.BcryptCost)
	}
	if c.HomePageSize < 1 {
		return fmt.Errorf("HOME_PAGE_SIZE must be positive, got %d", c.HomePageSize)
	}
	if c.AuthRateBurst < 1 {
		return fmt.Errorf("AUTH_RATE_BURST must be at least 1, got %v", c.AuthRateBurst)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL onto a slog.Level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", c.LogLevel)
	}
	return level, nil
}

// IsProduction reports whether APP_ENV names a production deployment.
func (c *Config) IsProduction() bool {
	return c.Env == "production" || c.Env == "prod"
}
