package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_WithRequiredVars(t *testing.T) {
	os.Setenv("MONGO_URL", "mongodb://localhost:27017")
	os.Setenv("JWT_SECRET", "test-secret")
	defer func() {
		os.Unsetenv("MONGO_URL")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.MongoURL != "mongodb://localhost:27017" {
		t.Errorf("expected MongoURL to be set, got %s", cfg.MongoURL)
	}

	if cfg.JWTSecret != "test-secret" {
		t.Errorf("expected JWTSecret to be set, got %s", cfg.JWTSecret)
	}
}

func TestLoad_MissingRequired(t *testing.T) {
	os.Unsetenv("MONGO_URL")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for missing required vars, got nil")
	}
}

func TestConfig_Defaults(t *testing.T) {
	os.Setenv("MONGO_URL", "mongodb://localhost:27017")
	os.Setenv("JWT_SECRET", "test-secret")
	defer func() {
		os.Unsetenv("MONGO_URL")
		os.Unsetenv("JWT_SECRET")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	if cfg.AppEnv != "development" {
		t.Errorf("expected default AppEnv 'development', got %s", cfg.AppEnv)
	}

	if cfg.AppPort != 5000 {
		t.Errorf("expected default AppPort 5000, got %d", cfg.AppPort)
	}

	if cfg.MongoDatabase != "bookquest" {
		t.Errorf("expected default MongoDatabase 'bookquest', got %s", cfg.MongoDatabase)
	}

	if cfg.TokenTTL != 24*time.Hour {
		t.Errorf("expected default TokenTTL 24h, got %s", cfg.TokenTTL)
	}

	if cfg.LogFormat != "json" {
		t.Errorf("expected default LogFormat 'json', got %s", cfg.LogFormat)
	}

	if cfg.MaxImageBytes != 2097152 {
		t.Errorf("expected default MaxImageBytes 2MB, got %d", cfg.MaxImageBytes)
	}

	if !cfg.IsDevelopment() {
		t.Error("expected IsDevelopment to be true by default")
	}
}

func TestConfig_GetCORSAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSAllowedOrigins: "https://a.example.com, https://b.example.com ,"}

	origins := cfg.GetCORSAllowedOrigins()
	if len(origins) != 2 {
		t.Fatalf("expected 2 origins, got %d", len(origins))
	}
	if origins[0] != "https://a.example.com" || origins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins: %v", origins)
	}

	cfg = &Config{}
	if cfg.GetCORSAllowedOrigins() != nil {
		t.Error("expected nil origins for empty config")
	}
}
