package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port     string `env:"PORT,     default=8080"`
	Env      string `env:"ENV,      default=development"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	// JWTSecret signs issued credentials. Rotating it invalidates every
	// outstanding token; that is the accepted revocation story.
	JWTSecret string `env:"JWT_SECRET"`
	// AdminCode is the shared admin-enrollment secret. Leave empty to
	// disable admin self-enrollment entirely.
	AdminCode string `env:"ADMIN_CODE"`
	// TokenTTL is the credential validity window.
	TokenTTL time.Duration `env:"TOKEN_TTL, default=168h"`

	Mongo MongoConfig
	Redis RedisConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=roadwatch"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
