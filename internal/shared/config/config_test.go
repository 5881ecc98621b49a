package config

import (
	"os"
	"testing"
	"time"
)

func setRequiredEnvVars(t *testing.T) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-jwt-secret-key")
}

func TestLoad_Success(t *testing.T) {
	setRequiredEnvVars(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.JWT.Secret != "test-jwt-secret-key" {
		t.Errorf("JWT.Secret = %q, want %q", cfg.JWT.Secret, "test-jwt-secret-key")
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("Server.Port = %q, want %q", cfg.Server.Port, "8080")
	}
	if cfg.Database.Port != 5432 {
		t.Errorf("Database.Port = %d, want %d", cfg.Database.Port, 5432)
	}
	if cfg.JWT.TTL != 168*time.Hour {
		t.Errorf("JWT.TTL = %v, want 168h", cfg.JWT.TTL)
	}
	if cfg.CORS.AllowedOrigin != "*" {
		t.Errorf("CORS.AllowedOrigin = %q, want %q", cfg.CORS.AllowedOrigin, "*")
	}
}

func TestLoad_MissingJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for missing JWT_SECRET, got nil")
	}
}

func TestLoad_InvalidDBPort(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("DB_PORT", "not-a-number")

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid DB_PORT, got nil")
	}
}

func TestLoad_JWTExpiresIn(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("JWT_EXPIRES_IN", "24h")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.JWT.TTL != 24*time.Hour {
		t.Errorf("JWT.TTL = %v, want 24h", cfg.JWT.TTL)
	}
}

func TestLoad_InvalidJWTExpiresIn(t *testing.T) {
	setRequiredEnvVars(t)
	t.Setenv("JWT_EXPIRES_IN", "7d") // Go durations have no day unit

	_, err := Load()
	if err == nil {
		t.Error("Load() expected error for invalid JWT_EXPIRES_IN, got nil")
	}
}

func TestConnectionString(t *testing.T) {
	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "finance",
		Password: "pw",
		DBName:   "dev_finance",
		SSLMode:  "require",
	}

	want := "host=db.internal port=5433 user=finance password=pw dbname=dev_finance sslmode=require"
	if got := db.ConnectionString(); got != want {
		t.Errorf("ConnectionString() = %q, want %q", got, want)
	}
}

func TestGetBoolEnv(t *testing.T) {
	tests := []struct {
		value string
		def   bool
		want  bool
	}{
		{"true", false, true},
		{"1", false, true},
		{"yes", false, true},
		{"false", true, false},
		{"0", true, false},
		{"no", true, false},
		{"garbage", true, true},
		{"", false, false},
	}

	for _, tt := range tests {
		t.Setenv("TEST_BOOL", tt.value)
		if tt.value == "" {
			os.Unsetenv("TEST_BOOL")
		}
		if got := getBoolEnv("TEST_BOOL", tt.def); got != tt.want {
			t.Errorf("getBoolEnv(%q, %v) = %v, want %v", tt.value, tt.def, got, tt.want)
		}
	}
}
