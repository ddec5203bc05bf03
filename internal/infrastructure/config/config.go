package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string `env:"PORT,      default=8080"`
	Env       string `env:"ENV,       default=development"`
	LogLevel  string `env:"LOG_LEVEL, default=info"`
	JWTSecret string `env:"JWT_SECRET, required"`

	Session   SessionConfig
	Web       WebConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	Telemetry TelemetryConfig
}

type SessionConfig struct {
	TTL          time.Duration `env:"SESSION_TTL,    default=24h"`
	CookieName   string        `env:"SESSION_COOKIE, default=taskboard_session"`
	CookieSecure bool          `env:"COOKIE_SECURE,  default=false"`
	// AuthRateLimit is the sustained requests per second allowed per client on
	// the login and register endpoints.
	AuthRateLimit float64 `env:"AUTH_RATE_LIMIT, default=5"`
}

type WebConfig struct {
	Root           string `env:"WEB_ROOT,         default=web"`
	UploadDir      string `env:"UPLOAD_DIR,       default=public/uploads"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES, default=5242880"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=taskboard"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type TelemetryConfig struct {
	// Exporter selects the trace exporter: "none", "stdout" or "otlp".
	Exporter     string `env:"OTEL_EXPORTER,               default=none"`
	OTLPEndpoint string `env:"OTEL_EXPORTER_OTLP_ENDPOINT"`
	ServiceName  string `env:"OTEL_SERVICE_NAME,           default=taskboard"`
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return LoadWith(ctx, envconfig.OsLookuper())
}

// LoadWith reads configuration from an arbitrary lookuper.
func LoadWith(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if len(cfg.JWTSecret) < 16 {
		return nil, fmt.Errorf("config: JWT_SECRET must be at least 16 bytes")
	}
	return &cfg, nil
}
