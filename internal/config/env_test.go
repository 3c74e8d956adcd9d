package config

import (
	"os"
	"reflect"
	"testing"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "GEMINI_API_KEY", "GEN_MODEL", "MAX_FILE_SIZE_MB",
		"MAX_PAGES", "LOAD_TIMEOUT_MS", "EXTRACT_API_URL", "ALLOWED_ORIGINS",
	} {
		// Setenv registers cleanup; unset so LookupEnv misses entirely.
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := LoadConfig()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.GenModel != "gemini-2.5-pro" {
		t.Errorf("GenModel = %q", cfg.GenModel)
	}
	if cfg.MaxFileSizeMB != 50 || cfg.MaxPages != 1000 || cfg.LoadTimeoutMs != 30000 {
		t.Errorf("numeric defaults wrong: %+v", cfg)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("MAX_PAGES", "25")
	t.Setenv("MAX_FILE_SIZE_MB", "not-a-number")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := LoadConfig()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q, want 9999", cfg.Port)
	}
	if cfg.MaxPages != 25 {
		t.Errorf("MaxPages = %d, want 25", cfg.MaxPages)
	}
	if cfg.MaxFileSizeMB != 50 {
		t.Errorf("MaxFileSizeMB = %d, want default 50 on bad input", cfg.MaxFileSizeMB)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.AllowedOrigins, want) {
		t.Errorf("AllowedOrigins = %v, want %v", cfg.AllowedOrigins, want)
	}
}
