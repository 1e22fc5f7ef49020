package config

import (
	"fmt"

	pkgconfig "github.com/QwabenaBoateng/Angiesplug/pkg/config"
)

// Config holds all configuration for the storefront backend.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// PostgreSQL
	PostgresHost string `env:"POSTGRES_HOST" envDefault:"localhost"`
	PostgresPort int    `env:"POSTGRES_PORT" envDefault:"5432"`
	PostgresUser string `env:"POSTGRES_USER" envDefault:"angiesplug"`
	PostgresPass string `env:"POSTGRES_PASSWORD" envDefault:"angiesplug_secret"`
	PostgresDB   string `env:"POSTGRES_DB" envDefault:"angiesplug"`
	PostgresSSL  string `env:"POSTGRES_SSLMODE" envDefault:"disable"`
	DBMaxConns   int32  `env:"DB_MAX_CONNS" envDefault:"25"`
	DBMinConns   int32  `env:"DB_MIN_CONNS" envDefault:"5"`

	// Redis (session state)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Session TTL in hours (default: 7 days)
	SessionTTL int `env:"SESSION_TTL_HOURS" envDefault:"168"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// JWT
	JWTSecret        string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`
	JWTAccessExpiry  string `env:"JWT_ACCESS_EXPIRY" envDefault:"15m"`
	JWTRefreshExpiry string `env:"JWT_REFRESH_EXPIRY" envDefault:"168h"`

	// Login bypass (the hard-coded admin backdoor; disable outside dev)
	BypassEnabled  bool   `env:"LOGIN_BYPASS_ENABLED" envDefault:"true"`
	BypassEmail    string `env:"LOGIN_BYPASS_EMAIL" envDefault:"admin@gmail.com"`
	BypassPassword string `env:"LOGIN_BYPASS_PASSWORD" envDefault:"admin"`
	BypassUserID   string `env:"LOGIN_BYPASS_USER_ID" envDefault:"admin-123"`

	// Media storage
	MediaRoot    string `env:"MEDIA_ROOT" envDefault:"./data/media"`
	MediaBaseURL string `env:"MEDIA_BASE_URL" envDefault:"http://localhost:8080"`

	// Tracing
	OTELEnabled    bool    `env:"OTEL_ENABLED" envDefault:"false"`
	OTELEndpoint   string  `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
	OTELSampleRate float64 `env:"OTEL_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// validate checks configuration invariants.
func (c *Config) validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.SessionTTL < 1 {
		return fmt.Errorf("invalid session TTL: %d hours", c.SessionTTL)
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret must not be empty")
	}
	return nil
}
