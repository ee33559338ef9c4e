package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	DBDriver   string `env:"DB_DRIVER" envDefault:"postgres"`
	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"learning_platform"`
	DBSSLMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	JWTSecret  string        `env:"JWT_SECRET" envDefault:"secret"`
	JWTTTL     time.Duration `env:"JWT_TTL" envDefault:"168h"`
	ServerPort string        `env:"PORT" envDefault:"5001"`

	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	Environment string `env:"NODE_ENV" envDefault:"development"`

	// Cron spec for deactivating expired subscriptions.
	SubscriptionCron string `env:"SUBSCRIPTION_CRON" envDefault:"0 * * * *"`
	RateLimitMax     int    `env:"RATE_LIMIT_MAX" envDefault:"100"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Error loading .env file, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// DSN builds the connection string for the configured driver.
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite" {
		return c.DBName
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort, c.DBSSLMode,
	)
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}
