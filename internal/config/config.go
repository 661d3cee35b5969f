package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers accepted by STORAGE_DRIVER.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Port   string `env:"PORT" envDefault:"8080"`
	AppEnv string `env:"APP_ENV" envDefault:"dev"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Catalog API (PokeAPI compatible)
	CatalogURL     string        `env:"CATALOG_URL" envDefault:"https://pokeapi.co"`
	CatalogTimeout time.Duration `env:"CATALOG_TIMEOUT" envDefault:"10s"`

	// Cart persistence
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"file"`
	StoragePath   string `env:"STORAGE_PATH"`
	DatabaseDSN   string `env:"DATABASE_DSN"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	// Visitor carts held in memory; least recently used are dropped first.
	MaxCarts int `env:"MAX_CARTS" envDefault:"10000"`

	// Empty disables cart change events.
	RabbitMQURL string `env:"RABBITMQ_URL"`

	DefaultLang string `env:"DEFAULT_LANG" envDefault:"es"`

	// Empty disables tracing.
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads the configuration from the process environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg.normalize()
}

func (c Config) normalize() (Config, error) {
	c.StorageDriver = strings.ToLower(strings.TrimSpace(c.StorageDriver))
	switch c.StorageDriver {
	case DriverMemory:
	case DriverFile:
		if c.StoragePath == "" {
			c.StoragePath = "data/pokedeck.json"
		}
	case DriverSQLite:
		if c.StoragePath == "" {
			c.StoragePath = "data/pokedeck.db"
		}
	case DriverPostgres:
		if strings.TrimSpace(c.DatabaseDSN) == "" {
			return Config{}, fmt.Errorf("DATABASE_DSN is required for storage driver %q", c.StorageDriver)
		}
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", c.StorageDriver)
	}

	c.CatalogURL = strings.TrimRight(strings.TrimSpace(c.CatalogURL), "/")
	if c.CatalogTimeout <= 0 {
		c.CatalogTimeout = 10 * time.Second
	}
	return c, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
