package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"shop/internal/adapters/out/postgres"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env      string `env:"ENV" env-default:"local"`
	LogLevel string `env:"LOG_LEVEL" env-default:"info"`

	HTTPPort    string        `env:"HTTP_PORT" env-default:"8080"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`

	DBHost     string `env:"DB_HOST" env-default:"localhost"`
	DBPort     string `env:"DB_PORT" env-default:"5432"`
	DBUser     string `env:"DB_USER" env-default:"postgres"`
	DBPassword string `env:"DB_PASSWORD" env-default:"postgres"`
	DBName     string `env:"DB_NAME" env-default:"shop"`
	DBSslMode  string `env:"DB_SSLMODE" env-default:"disable"`

	// RedisAddr enables the cart view cache when set.
	RedisAddr    string        `env:"REDIS_ADDR"`
	CartCacheTTL time.Duration `env:"CART_CACHE_TTL" env-default:"5m"`

	// KafkaBrokers enables the outbox relay when set.
	KafkaBrokers          []string `env:"KAFKA_BROKERS" env-separator:","`
	KafkaOrderEventsTopic string   `env:"KAFKA_ORDER_EVENTS_TOPIC" env-default:"shop.order-events"`

	OutboxRelaySchedule string `env:"OUTBOX_RELAY_SCHEDULE" env-default:"*/5 * * * * *"`
	OutboxBatchSize     int    `env:"OUTBOX_BATCH_SIZE" env-default:"100"`

	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// LoadConfig reads an optional .env file and then the process environment.
func LoadConfig(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load env file: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	if cfg.OutboxBatchSize < 1 {
		return Config{}, fmt.Errorf("OUTBOX_BATCH_SIZE must be positive, got %d", cfg.OutboxBatchSize)
	}
	return cfg, nil
}

func (c Config) DSN() string {
	return postgres.DSN(c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

func (c Config) HTTPAddr() string {
	return "0.0.0.0:" + c.HTTPPort
}
