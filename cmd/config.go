package cmd

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

// Config carries everything the service reads from the environment.
type Config struct {
	AppMode  string `env:"APP_MODE" envDefault:"DEV"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	DBHost     string `env:"DB_HOST" envDefault:"localhost"`
	DBPort     string `env:"DB_PORT" envDefault:"5432"`
	DBUser     string `env:"DB_USER" envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME" envDefault:"orders"`
	DBSslMode  string `env:"DB_SSLMODE" envDefault:"disable"`

	NATSURL string `env:"NATS_URL" envDefault:"nats://127.0.0.1:4222"`

	ProductValidateTimeout time.Duration `env:"PRODUCT_VALIDATE_TIMEOUT" envDefault:"5s"`
	RequestTimeout         time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`

	StatusReportSchedule string `env:"STATUS_REPORT_SCHEDULE" envDefault:"@every 1m"`
}

// LoadConfig reads the environment into a Config. A .env file is loaded
// first when present; its absence is not an error.
func LoadConfig() (Config, error) {
	_ = godotenv.Load(".env")

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}

// DSN builds the PostgreSQL connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode,
	)
}
