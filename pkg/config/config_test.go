package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Check defaults
	if cfg.Port != "8089" {
		t.Errorf("Expected Port to be 8089, got %s", cfg.Port)
	}

	if cfg.Env != "development" {
		t.Errorf("Expected Env to be development, got %s", cfg.Env)
	}

	if cfg.TWSE.BaseURL != "https://www.twse.com.tw" {
		t.Errorf("Expected TWSE base URL default, got %s", cfg.TWSE.BaseURL)
	}

	if cfg.TPEX.BaseURL != "https://www.tpex.org.tw" {
		t.Errorf("Expected TPEX base URL default, got %s", cfg.TPEX.BaseURL)
	}

	if cfg.Days != 6 {
		t.Errorf("Expected Days to be 6, got %d", cfg.Days)
	}

	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("Expected HTTPTimeout to be 15s, got %s", cfg.HTTPTimeout)
	}
}

func TestLoadWithCustomValues(t *testing.T) {
	os.Setenv("PORT", "9000")
	os.Setenv("ENV", "production")
	os.Setenv("ATTENTION_DAYS", "10")
	os.Setenv("HTTP_TIMEOUT", "30s")
	os.Setenv("LOG_LEVEL", "debug")

	defer func() {
		os.Unsetenv("PORT")
		os.Unsetenv("ENV")
		os.Unsetenv("ATTENTION_DAYS")
		os.Unsetenv("HTTP_TIMEOUT")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9000" {
		t.Errorf("Expected Port to be 9000, got %s", cfg.Port)
	}

	if cfg.Env != "production" {
		t.Errorf("Expected Env to be production, got %s", cfg.Env)
	}

	if cfg.Days != 10 {
		t.Errorf("Expected Days to be 10, got %d", cfg.Days)
	}

	if cfg.HTTPTimeout != 30*time.Second {
		t.Errorf("Expected HTTPTimeout to be 30s, got %s", cfg.HTTPTimeout)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel to be debug, got %s", cfg.LogLevel)
	}
}

func TestValidateInvalidEnv(t *testing.T) {
	os.Setenv("ENV", "sandbox")
	defer os.Unsetenv("ENV")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for invalid ENV, got nil")
	}
}

func TestValidateNonPositiveDays(t *testing.T) {
	os.Setenv("ATTENTION_DAYS", "0")
	defer os.Unsetenv("ATTENTION_DAYS")

	_, err := Load()
	if err == nil {
		t.Error("Expected error for non-positive ATTENTION_DAYS, got nil")
	}
}

func TestGetEnvAsDurationFallback(t *testing.T) {
	os.Setenv("HTTP_TIMEOUT", "not-a-duration")
	defer os.Unsetenv("HTTP_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.HTTPTimeout != 15*time.Second {
		t.Errorf("Expected fallback HTTPTimeout 15s, got %s", cfg.HTTPTimeout)
	}
}
