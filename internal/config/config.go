package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Wedding Planner"`
		Port int    `envconfig:"PORT" default:"8080"`
		Env  string `envconfig:"APP_ENV" default:"development"`
	}

	DB struct {
		Host             string        `envconfig:"DB_HOST" default:"localhost"`
		Port             int           `envconfig:"DB_PORT" default:"5432"`
		User             string        `envconfig:"DB_USER" default:"postgres"`
		Password         string        `envconfig:"DB_PASSWORD" default:""`
		Name             string        `envconfig:"DB_NAME" default:"wedding_planner"`
		SSLMode          string        `envconfig:"DB_SSLMODE" default:"disable"`
		StatementTimeout time.Duration `envconfig:"DB_STATEMENT_TIMEOUT" default:"10s"`
		MaxOpenConns     int           `envconfig:"DB_MAX_OPEN_CONNS" default:"25"`
		MaxIdleConns     int           `envconfig:"DB_MAX_IDLE_CONNS" default:"5"`
		ConnMaxLifetime  time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"5m"`
	}

	Server struct {
		Timeout time.Duration `envconfig:"SERVER_TIMEOUT" default:"30s"`
	}

	Auth struct {
		JWTSecret  string        `envconfig:"JWT_SECRET" required:"true"`
		TokenTTL   time.Duration `envconfig:"JWT_TTL" default:"720h"`
		BcryptCost int           `envconfig:"BCRYPT_COST" default:"12"`
	}

	CORS struct {
		AllowedOrigins []string `envconfig:"CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	}

	Log struct {
		Level  string `envconfig:"LOG_LEVEL" default:"info"`
		Format string `envconfig:"LOG_FORMAT" default:"text"`
	}
}

func (c *Config) ConnectionString() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.DB.User, c.DB.Password),
		Host:   fmt.Sprintf("%s:%d", c.DB.Host, c.DB.Port),
		Path:   c.DB.Name,
	}

	q := url.Values{}
	q.Set("sslmode", c.DB.SSLMode)

	if c.DB.StatementTimeout > 0 {
		q.Set("statement_timeout", fmt.Sprintf("%d", c.DB.StatementTimeout.Milliseconds()))
	}

	u.RawQuery = q.Encode()

	return u.String()
}

func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Env, "production")
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}

	if cfg.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("failed to process config: JWT_SECRET must not be empty")
	}

	return &cfg, nil
}
