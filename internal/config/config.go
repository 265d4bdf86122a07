// Package config loads service configuration from the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"github.com/SergeyParamoshkin/articles/internal/model"
	"github.com/SergeyParamoshkin/articles/internal/storage"
)

const ServiceName = "articles"

type Config struct {
	Addr     string `env:"ARTICLES_ADDR" envDefault:":3333"`
	DiagAddr string `env:"ARTICLES_DIAG_ADDR" envDefault:":9999"`
	Env      string `env:"APP_ENV" envDefault:"production"`

	DatabaseURL       string        `env:"DATABASE_URL" envDefault:"sqlite:file:articles.db?_foreign_keys=on"`
	DBDebug           bool          `env:"DB_DEBUG" envDefault:"false"`
	DBMaxOpenConns    int           `env:"DB_MAX_OPEN_CONNS" envDefault:"20"`
	DBMaxIdleConns    int           `env:"DB_MAX_IDLE_CONNS" envDefault:"5"`
	DBConnMaxLifetime time.Duration `env:"DB_CONN_MAX_LIFETIME" envDefault:"30m"`
	DBConnectAttempts int           `env:"DB_CONNECT_ATTEMPTS" envDefault:"10"`
	DBRetryDelay      time.Duration `env:"DB_RETRY_DELAY" envDefault:"2s"`
	Migrations        bool          `env:"MIGRATIONS" envDefault:"false"`
	Seed              bool          `env:"DB_SEED" envDefault:"false"`

	RecentOrder            string `env:"RECENT_ORDER" envDefault:"asc"`
	CategoryIncludesDrafts bool   `env:"CATEGORY_INCLUDES_DRAFTS" envDefault:"true"`

	ReadTimeout     time.Duration `env:"HTTP_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout    time.Duration `env:"HTTP_WRITE_TIMEOUT" envDefault:"15s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load reads an optional .env file and then the process environment.
// Precedence: explicit env var > .env file > default.
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := model.ParseSortOrder(cfg.RecentOrder); err != nil {
		return Config{}, fmt.Errorf("RECENT_ORDER: %w", err)
	}

	return cfg, nil
}

func (c Config) Development() bool { return c.Env == "development" }

func (c Config) StorageOptions() storage.Options {
	order, err := model.ParseSortOrder(c.RecentOrder)
	if err != nil {
		order = model.SortAscending
	}

	return storage.Options{
		RecentOrder:            order,
		CategoryIncludesDrafts: c.CategoryIncludesDrafts,
	}
}

func (c Config) OpenConfig() storage.OpenConfig {
	return storage.OpenConfig{
		URL:             c.DatabaseURL,
		Debug:           c.DBDebug,
		MaxOpenConns:    c.DBMaxOpenConns,
		MaxIdleConns:    c.DBMaxIdleConns,
		ConnMaxLifetime: c.DBConnMaxLifetime,
		ConnectAttempts: c.DBConnectAttempts,
		RetryDelay:      c.DBRetryDelay,
		SQLMigrations:   c.Migrations,
	}
}
