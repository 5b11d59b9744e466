package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config собирает настройки сервиса из переменных окружения.
type Config struct {
	PostgresConn        string
	ServerAddress       string
	JWTSecret           string
	LogMode             string
	ExpirySweepInterval time.Duration
	RunMigrations       bool
	ShutdownTimeout     time.Duration
}

// Load подгружает .env (если есть) и читает окружение.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}
	return FromEnv(os.Getenv)
}

// FromEnv читает настройки через getenv, что удобно в тестах.
func FromEnv(getenv func(string) string) (*Config, error) {
	cfg := &Config{
		PostgresConn:  strings.TrimSpace(getenv("POSTGRES_CONN")),
		ServerAddress: strings.TrimSpace(getenv("SERVER_ADDRESS")),
		JWTSecret:     getenv("JWT_SECRET"),
		LogMode:       strings.TrimSpace(getenv("LOG_MODE")),
	}
	if cfg.PostgresConn == "" {
		return nil, errors.New("POSTGRES_CONN env variable is not set")
	}
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET env variable is not set")
	}
	if cfg.ServerAddress == "" {
		cfg.ServerAddress = "0.0.0.0:8080"
	}
	if cfg.LogMode == "" {
		cfg.LogMode = "dev"
	}

	var err error
	if cfg.ExpirySweepInterval, err = duration(getenv, "EXPIRY_SWEEP_INTERVAL", 0); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = duration(getenv, "SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}
	cfg.RunMigrations = true
	if v := strings.TrimSpace(getenv("RUN_MIGRATIONS")); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("RUN_MIGRATIONS: %w", err)
		}
		cfg.RunMigrations = b
	}
	return cfg, nil
}

func duration(getenv func(string) string, name string, def time.Duration) (time.Duration, error) {
	v := strings.TrimSpace(getenv(name))
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}
