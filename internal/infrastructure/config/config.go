package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,      default=8080"`
	Env       string        `env:"ENV,       default=development"`
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"TOKEN_TTL, default=24h"`
	LogLevel  string        `env:"LOG_LEVEL, default=info"`

	// InactivityTimeout bounds how long a session counts as active without
	// a further authenticated request.
	InactivityTimeout time.Duration `env:"INACTIVITY_TIMEOUT, default=30m"`

	Mongo MongoConfig
	Redis RedisConfig
	Admin AdminSeedConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=account_api"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// AdminSeedConfig describes the bootstrap admin account created at startup
// when no account with that username exists yet.
type AdminSeedConfig struct {
	Username string `env:"ADMIN_USERNAME, default=admin"`
	Password string `env:"ADMIN_PASSWORD, default=admin"`
	Email    string `env:"ADMIN_EMAIL,    default=admin@example.com"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	var cfg Config
	if err := envconfig.Process(context.Background(), &cfg); err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return &cfg
}
