package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "http://127.0.0.1:8080" {
		t.Fatalf("unexpected default base url: %s", cfg.BaseURL)
	}
	if cfg.RequestTimeout != 15*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.RequestTimeout)
	}
	if cfg.RetryMaxAttempts != 3 {
		t.Fatalf("unexpected default retry attempts: %d", cfg.RetryMaxAttempts)
	}
	if cfg.DataDir == "" {
		t.Fatalf("expected a default data dir")
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("SCANPOS_BASE_URL", "https://pos.example.com")
	t.Setenv("SCANPOS_RETRY_MAX_ATTEMPTS", "5")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.BaseURL != "https://pos.example.com" {
		t.Fatalf("env override ignored: %s", cfg.BaseURL)
	}
	if cfg.RetryMaxAttempts != 5 {
		t.Fatalf("env override ignored: %d", cfg.RetryMaxAttempts)
	}
}

func TestPathsDerivedFromDataDir(t *testing.T) {
	t.Setenv("SCANPOS_DATA_DIR", "/tmp/scanpos-test")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if cfg.CartDBPath() != "/tmp/scanpos-test/cart.db" {
		t.Fatalf("unexpected cart db path: %s", cfg.CartDBPath())
	}
	if cfg.TokenPath() != "/tmp/scanpos-test/session.tok" {
		t.Fatalf("unexpected token path: %s", cfg.TokenPath())
	}
}
