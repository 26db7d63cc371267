package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	// Save original env
	originalURL := os.Getenv("HIVELENS_HIVE_URL")
	defer func() {
		if originalURL != "" {
			os.Setenv("HIVELENS_HIVE_URL", originalURL)
		} else {
			os.Unsetenv("HIVELENS_HIVE_URL")
		}
	}()

	// Test with environment variable
	os.Setenv("HIVELENS_HIVE_URL", "https://testnet.hive.blog")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Hive.URL != "https://testnet.hive.blog" {
		t.Errorf("Expected hive URL from env, got: %s", cfg.Hive.URL)
	}
	if cfg.Hive.LookupTimeout != 10*time.Second {
		t.Errorf("Expected default lookup timeout, got: %v", cfg.Hive.LookupTimeout)
	}
	if cfg.Redis.Enabled {
		t.Error("Redis should be disabled without a URL")
	}
	if cfg.Database.Enabled {
		t.Error("Database should be disabled without a URL")
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Hive: HiveConfig{
				URL:           "https://api.hive.blog",
				LookupTimeout: 10 * time.Second,
				HistoryLimit:  1000,
			},
			Server: ServerConfig{Port: 8080},
		}
	}

	if err := valid().Validate(); err != nil {
		t.Errorf("Valid config should not error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"missing hive url", func(c *Config) { c.Hive.URL = "" }},
		{"zero timeout", func(c *Config) { c.Hive.LookupTimeout = 0 }},
		{"history limit too large", func(c *Config) { c.Hive.HistoryLimit = 100000 }},
		{"bad port", func(c *Config) { c.Server.Port = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("Expected validation error")
			}
		})
	}
}

func TestToEnvKey(t *testing.T) {
	tests := []struct {
		key      string
		expected string
	}{
		{"hive_url", "HIVE_URL"},
		{"lookup-timeout", "LOOKUP_TIMEOUT"},
		{"log_level", "LOG_LEVEL"},
	}

	for _, tt := range tests {
		if got := toEnvKey(tt.key); got != tt.expected {
			t.Errorf("toEnvKey(%q) = %q, want %q", tt.key, got, tt.expected)
		}
	}
}
