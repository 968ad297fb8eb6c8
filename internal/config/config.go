package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config carries everything the process needs from its environment.
type Config struct {
	MongoURI      string
	MongoDatabase string
	JWTSecret     string
	Port          int
}

const (
	defaultDatabase = "staffhub"
	defaultPort     = 4000
)

var (
	ErrMissingMongoURI  = errors.New("config: MONGODB_URI is not set")
	ErrMissingJWTSecret = errors.New("config: JWT_SECRET is not set")
)

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first, when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:      os.Getenv("MONGODB_URI"),
		MongoDatabase: os.Getenv("MONGODB_DATABASE"),
		JWTSecret:     os.Getenv("JWT_SECRET"),
		Port:          defaultPort,
	}
	if cfg.MongoURI == "" {
		return nil, ErrMissingMongoURI
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}
	if cfg.MongoDatabase == "" {
		cfg.MongoDatabase = defaultDatabase
	}
	if raw := os.Getenv("PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 || port > 65535 {
			return nil, fmt.Errorf("config: invalid PORT %q", raw)
		}
		cfg.Port = port
	}
	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
