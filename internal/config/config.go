package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Storage drivers.
const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

// Config stores environment-driven settings for the leave service.
type Config struct {
	Service   ServiceConfig   `envPrefix:"SERVICE_"`
	Server    ServerConfig    `envPrefix:"SERVER_"`
	Database  DatabaseConfig  `envPrefix:"DB_"`
	Storage   StorageConfig   `envPrefix:"STORAGE_"`
	NATS      NATSConfig      `envPrefix:"NATS_"`
	RateLimit RateLimitConfig `envPrefix:"RATE_LIMIT_"`
	LogLevel  string          `env:"LOG_LEVEL" envDefault:"info"`
	// DirectorySeedPath points at a YAML file of directory users. When empty
	// the built-in sample directory is used for the memory driver.
	DirectorySeedPath string `env:"DIRECTORY_SEED_PATH"`
}

type ServiceConfig struct {
	Name        string `env:"NAME" envDefault:"hr-leave"`
	Version     string `env:"VERSION" envDefault:"dev"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
}

type ServerConfig struct {
	Port            int           `env:"PORT" envDefault:"8080"`
	GRPCPort        int           `env:"GRPC_PORT" envDefault:"9090"`
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"15s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"15s"`
	IdleTimeout     time.Duration `env:"IDLE_TIMEOUT" envDefault:"60s"`
	RequestTimeout  time.Duration `env:"REQUEST_TIMEOUT" envDefault:"30s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

type DatabaseConfig struct {
	Host        string        `env:"HOST" envDefault:"localhost"`
	Port        int           `env:"PORT" envDefault:"5432"`
	User        string        `env:"USER" envDefault:"postgres"`
	Password    string        `env:"PASSWORD"`
	Database    string        `env:"NAME" envDefault:"hr_leave"`
	SSLMode     string        `env:"SSLMODE" envDefault:"disable"`
	MaxConns    int32         `env:"MAX_CONNS" envDefault:"10"`
	MinConns    int32         `env:"MIN_CONNS" envDefault:"1"`
	MaxConnTime time.Duration `env:"MAX_CONN_TIME" envDefault:"1h"`
	MaxIdleTime time.Duration `env:"MAX_IDLE_TIME" envDefault:"30m"`
	HealthCheck time.Duration `env:"HEALTH_CHECK" envDefault:"1m"`
}

type StorageConfig struct {
	Driver string `env:"DRIVER" envDefault:"memory"`
}

type NATSConfig struct {
	// URL disables event publishing when empty.
	URL           string        `env:"URL"`
	SubjectPrefix string        `env:"SUBJECT_PREFIX" envDefault:"notifications.leave"`
	Timeout       time.Duration `env:"TIMEOUT" envDefault:"5s"`
}

type RateLimitConfig struct {
	// RPS of zero disables limiting.
	RPS   float64 `env:"RPS" envDefault:"50"`
	Burst int     `env:"BURST" envDefault:"100"`
}

// Load parses environment variables into Config and validates it.
func Load() (*Config, error) {
	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks cross-field constraints env tags cannot express.
func (c *Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMemory, StoragePostgres:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Server.Port <= 0 || c.Server.GRPCPort <= 0 {
		return fmt.Errorf("server ports must be positive")
	}
	if c.RateLimit.RPS < 0 {
		return fmt.Errorf("rate limit must not be negative")
	}
	return nil
}
