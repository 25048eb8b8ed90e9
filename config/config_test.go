package config

import (
	"os"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	// Reset viper state before test
	viper.Reset()

	_ = os.Unsetenv("PORT")
	_ = os.Unsetenv("OPENFILES_API_KEY")
	_ = os.Unsetenv("OPENFILES_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Server.Port)
	}
	if cfg.Client.Timeout != 30*time.Second {
		t.Errorf("expected default timeout 30s, got %s", cfg.Client.Timeout)
	}
	if cfg.Client.APIKey != "" {
		t.Errorf("expected empty API key, got %s", cfg.Client.APIKey)
	}
}

func TestLoad_FromEnv(t *testing.T) {
	// Reset viper state before test
	viper.Reset()

	_ = os.Setenv("PORT", "9090")
	_ = os.Setenv("OPENFILES_API_KEY", "oa_test123456789012345678901234567890")
	_ = os.Setenv("OPENFILES_BASE_URL", "http://localhost:9090")
	_ = os.Setenv("OPENFILES_BASE_PATH", "projects/acme")
	_ = os.Setenv("OPENFILES_TIMEOUT", "5s")
	defer func() {
		_ = os.Unsetenv("PORT")
		_ = os.Unsetenv("OPENFILES_API_KEY")
		_ = os.Unsetenv("OPENFILES_BASE_URL")
		_ = os.Unsetenv("OPENFILES_BASE_PATH")
		_ = os.Unsetenv("OPENFILES_TIMEOUT")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != "9090" {
		t.Errorf("Port = %s, want 9090", cfg.Server.Port)
	}
	if cfg.Client.APIKey != "oa_test123456789012345678901234567890" {
		t.Errorf("APIKey = %s", cfg.Client.APIKey)
	}
	if cfg.Client.BaseURL != "http://localhost:9090" {
		t.Errorf("BaseURL = %s", cfg.Client.BaseURL)
	}
	if cfg.Client.BasePath != "projects/acme" {
		t.Errorf("BasePath = %s", cfg.Client.BasePath)
	}
	if cfg.Client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Client.Timeout)
	}
}
