package cmd

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	AppEnv    string `envconfig:"APP_ENV" default:"development"`
	HTTPPort  string `envconfig:"HTTP_PORT" default:"8080"`
	LogFormat string `envconfig:"LOG_FORMAT" default:"text"`

	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" default:"tracker"`
	DBPassword string `envconfig:"DB_PASSWORD"`
	DBName     string `envconfig:"DB_NAME" default:"tracker"`
	DBSslMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr   string        `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`
	LockMaxWait time.Duration `envconfig:"LOCK_MAX_WAIT" default:"5s"`

	KafkaBrokers          []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaOrderEventsTopic string   `envconfig:"KAFKA_ORDER_EVENTS_TOPIC" default:"order.lifecycle"`

	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`
	RateLimitPerMinute int    `envconfig:"RATE_LIMIT_PER_MINUTE" default:"600"`

	AutoProgressAfter time.Duration `envconfig:"AUTO_PROGRESS_AFTER" default:"10m"`
	SweepSchedule     string        `envconfig:"SWEEP_SCHEDULE" default:"0 * * * * *"`
}

// LoadConfig reads .env when present, then the environment.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, err
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("jwt secret must be provided")
	}
	return cfg, nil
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// DSN is the postgres connection string for gorm.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}
