package config

import (
	"errors"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("MONGODB_DATABASE", "")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.MongoDatabase != defaultDatabase {
		t.Fatalf("expected default database, got %q", cfg.MongoDatabase)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("expected default port, got %d", cfg.Port)
	}
	if cfg.Addr() != ":4000" {
		t.Fatalf("unexpected addr: %s", cfg.Addr())
	}
}

func TestLoadMissingRequired(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := Load(); !errors.Is(err, ErrMissingMongoURI) {
		t.Fatalf("expected ErrMissingMongoURI, got %v", err)
	}

	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "")
	if _, err := Load(); !errors.Is(err, ErrMissingJWTSecret) {
		t.Fatalf("expected ErrMissingJWTSecret, got %v", err)
	}
}

func TestLoadInvalidPort(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("JWT_SECRET", "test-secret")

	for _, raw := range []string{"abc", "-1", "0", "70000"} {
		t.Setenv("PORT", raw)
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for PORT=%q", raw)
		}
	}
}
