package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Layby"`
		Port int    `envconfig:"PORT" default:"8080"`
	}

	DB struct {
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"layby"`
		MaxConns int    `envconfig:"DB_MAX_CONNS" default:"25"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		Secret   string        `envconfig:"JWT_SECRET"`
		Issuer   string        `envconfig:"JWT_ISSUER" default:"layby"`
		TokenTTL time.Duration `envconfig:"JWT_TTL" default:"12h"`
	}

	Ledger struct {
		// MaxAttempts bounds how often a transaction that lost a race is re-run.
		MaxAttempts int `envconfig:"LEDGER_MAX_ATTEMPTS" default:"3"`
	}

	Events struct {
		WebhookURL   string        `envconfig:"EVENTS_WEBHOOK_URL"`
		WebhookToken string        `envconfig:"EVENTS_WEBHOOK_TOKEN"`
		Timeout      time.Duration `envconfig:"EVENTS_TIMEOUT" default:"5s"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Console struct {
		UserID string `envconfig:"CONSOLE_USER_ID"`
		Role   string `envconfig:"CONSOLE_ROLE" default:"SHOP_ADMIN"`
		ShopID string `envconfig:"CONSOLE_SHOP_ID"`
		// Demo runs the console against a seeded in-memory ledger.
		Demo bool `envconfig:"CONSOLE_DEMO" default:"false"`
	}
}

func (c *Config) ConnectionString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.DB.User, c.DB.Password, c.DB.Host, c.DB.Port, c.DB.Name)
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	return &cfg, nil
}
