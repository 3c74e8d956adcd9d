package keystore

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "credentials.json")

	s, err := New(path)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	if s.Configured() {
		t.Error("fresh store reports configured")
	}

	if err := s.Set("AIzaTestKey123"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if s.Key() != "AIzaTestKey123" {
		t.Errorf("Key() = %q", s.Key())
	}

	// A new store at the same path sees the persisted key.
	reopened, err := New(path)
	if err != nil {
		t.Fatalf("New() reopen error = %v", err)
	}
	if reopened.Key() != "AIzaTestKey123" {
		t.Errorf("reopened Key() = %q", reopened.Key())
	}

	if err := reopened.Clear(); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if reopened.Configured() {
		t.Error("cleared store reports configured")
	}

	cleared, err := New(path)
	if err != nil {
		t.Fatalf("New() after clear error = %v", err)
	}
	if cleared.Configured() {
		t.Error("key survived Clear()")
	}
}

func TestValidateKey(t *testing.T) {
	tests := []struct {
		name    string
		key     string
		wantErr bool
	}{
		{name: "gemini-shaped key", key: "AIzaSyAbc123"},
		{name: "demo key", key: "dummy-key-for-demo"},
		{name: "empty", key: "  ", wantErr: true},
		{name: "wrong shape", key: "sk-not-a-gemini-key", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateKey(tt.key)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateKey(%q) error = %v, wantErr %v", tt.key, err, tt.wantErr)
			}
		})
	}

	if err := ValidateKey("sk-wrong"); !errors.Is(err, ErrInvalidKey) {
		t.Errorf("err = %v, want ErrInvalidKey", err)
	}
}
