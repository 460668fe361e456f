// Package config loads the immutable startup configuration.
package config

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration. It is built once at startup
// and passed explicitly to whatever needs it.
type Config struct {
	AppName string `validate:"required"`
	Port    string `validate:"required"`
	Env     string `validate:"required,oneof=development test production"`

	DatabaseDriver string `validate:"required,oneof=postgres sqlite mongodb memory"`
	DatabaseDSN    string `validate:"required_unless=DatabaseDriver memory"`
	MongoDatabase  string `validate:"required_if=DatabaseDriver mongodb"`

	JWTSecret string `validate:"required"`

	// Optional; events are not published when empty.
	RabbitMQURL string `validate:"omitempty,url"`

	// Optional bootstrap admin created at startup when missing.
	AdminUsername string `validate:"required_with=AdminEmail"`
	AdminEmail    string `validate:"omitempty,email"`
	AdminPassword string `validate:"required_with=AdminEmail,omitempty,min=5,max=1024"`
}

// SeedAdmin reports whether a bootstrap admin is configured.
func (c *Config) SeedAdmin() bool {
	return c.AdminEmail != ""
}

// Load reads configuration from the environment, falling back to a .env file
// in the working directory and then to defaults.
func Load() (*Config, error) {
	// A missing .env is fine; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("APP_NAME", "shelves")
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_DRIVER", "postgres")
	v.SetDefault("DATABASE_DSN", "host=127.0.0.1 user=postgres password=postgres dbname=shelves port=5432 sslmode=disable")
	v.SetDefault("MONGO_DATABASE", "shelves")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.AutomaticEnv()

	cfg := &Config{
		AppName:        v.GetString("APP_NAME"),
		Port:           v.GetString("APP_PORT"),
		Env:            v.GetString("APP_ENV"),
		DatabaseDriver: v.GetString("DATABASE_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		MongoDatabase:  v.GetString("MONGO_DATABASE"),
		JWTSecret:      v.GetString("JWT_SECRET"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		AdminUsername:  v.GetString("ADMIN_USERNAME"),
		AdminEmail:     v.GetString("ADMIN_EMAIL"),
		AdminPassword:  v.GetString("ADMIN_PASSWORD"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
