package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"

	"maintenance/internal/adapters/out/postgres"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	HTTPPort               string `env:"HTTP_PORT" envDefault:"8080"`
	DBHost                 string `env:"DB_HOST" envDefault:"localhost"`
	DBPort                 string `env:"DB_PORT" envDefault:"5432"`
	DBUser                 string `env:"DB_USER,required"`
	DBPassword             string `env:"DB_PASSWORD"`
	DBName                 string `env:"DB_NAME,required"`
	DBSslMode              string `env:"DB_SSLMODE" envDefault:"disable"`
	OrderNumberMaxAttempts int    `env:"ORDER_NUMBER_MAX_ATTEMPTS" envDefault:"5"`
	BacklogJobSpec         string `env:"BACKLOG_JOB_SPEC" envDefault:"0 * * * * *"`
	LogLevel               string `env:"LOG_LEVEL" envDefault:"info"`
}

// LoadConfig reads the environment after loading envFiles (.env when none
// are given). Missing files are skipped; variables already set win.
func LoadConfig(envFiles ...string) (Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	if cfg.OrderNumberMaxAttempts < 1 {
		return Config{}, fmt.Errorf("ORDER_NUMBER_MAX_ATTEMPTS must be positive, got %d", cfg.OrderNumberMaxAttempts)
	}
	if _, err = cfg.SlogLevel(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL: %w", err)
	}
	return level, nil
}
