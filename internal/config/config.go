// Package config provides application configuration management.
// Configuration is loaded from environment variables following 12-factor principles.
package config

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	"github.com/caarlos0/env/v10"
)

// Config holds all application configuration.
// All fields are populated from environment variables.
type Config struct {
	// Application settings
	AppEnv  string `env:"APP_ENV" envDefault:"development"`
	AppPort int    `env:"APP_PORT" envDefault:"8080"`

	// Database (MongoDB). MongoURI, when set, wins over the individual parts.
	MongoURI             string        `env:"MONGO_URI"`
	MongoUser            string        `env:"MONGO_USER"`
	MongoPassword        string        `env:"MONGO_PW"`
	MongoHost            string        `env:"MONGO_HOST" envDefault:"localhost"`
	MongoPort            int           `env:"MONGO_PORT" envDefault:"27017"`
	MongoDatabase        string        `env:"MONGO_DB" envDefault:"PETPAL"`
	MongoUsersCollection string        `env:"MONGO_USERS_COLLECTION" envDefault:"users"`
	MongoPetsCollection  string        `env:"MONGO_PETS_COLLECTION" envDefault:"pets"`
	MongoTimeout         time.Duration `env:"MONGO_TIMEOUT" envDefault:"10s"`

	// Cache (Redis). Optional; the users list is not cached when empty.
	RedisURL      string        `env:"REDIS_URL"`
	UsersCacheTTL time.Duration `env:"USERS_CACHE_TTL" envDefault:"5m"`

	// Logging
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFormat defaults to text in development and json elsewhere.
	LogFormat string `env:"LOG_FORMAT"`

	// Server timeouts
	ReadTimeout     time.Duration `env:"READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout    time.Duration `env:"WRITE_TIMEOUT" envDefault:"10s"`
	ShutdownTimeout time.Duration `env:"SHUTDOWN_TIMEOUT" envDefault:"30s"`

	// Request bodies larger than this are rejected.
	MaxRequestBodySize int64 `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

// MongoConnectionURI returns the connection string for the driver.
// Built from parts it authenticates against the admin database.
func (c *Config) MongoConnectionURI() string {
	if c.MongoURI != "" {
		return c.MongoURI
	}

	u := url.URL{
		Scheme: "mongodb",
		Host:   net.JoinHostPort(c.MongoHost, strconv.Itoa(c.MongoPort)),
		Path:   "/" + c.MongoDatabase,
	}
	if c.MongoUser != "" {
		u.User = url.UserPassword(c.MongoUser, c.MongoPassword)
		u.RawQuery = url.Values{"authSource": {"admin"}}.Encode()
	}

	return u.String()
}

// Load parses environment variables and returns a Config.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.MongoDatabase == "" {
		return nil, fmt.Errorf("failed to parse config: MONGO_DB must not be empty")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "json"
		if cfg.IsDevelopment() {
			cfg.LogFormat = "text"
		}
	}
	return cfg, nil
}
