// Package keystore persists the single Gemini API key between service
// sessions. It is the only state that survives a restart.
package keystore

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ananyajain10/pitchparse-ai/internal/models"
)

// ErrInvalidKey rejects keys that are neither Gemini-shaped nor demo keys.
var ErrInvalidKey = errors.New(`invalid API key format: Gemini API keys start with "AIza"`)

// ValidateKey checks a candidate key before it is stored.
func ValidateKey(key string) error {
	if strings.TrimSpace(key) == "" {
		return errors.New("API key must not be empty")
	}
	if !strings.HasPrefix(key, "AIza") && !strings.Contains(key, models.DemoKeyMarker) {
		return ErrInvalidKey
	}
	return nil
}

type credentials struct {
	APIKey string `json:"api_key"`
}

// Store holds the key in memory and mirrors it to a JSON file so the setup
// flow only has to run once.
type Store struct {
	mu   sync.Mutex
	path string
	key  string
}

// New opens the store at path, loading any previously saved key. An empty
// path picks a default under the user config directory.
func New(path string) (*Store, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolving config dir: %w", err)
		}
		path = filepath.Join(dir, "pitchparse", "credentials.json")
	}

	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("reading credentials: %w", err)
	}
	var creds credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return nil, fmt.Errorf("parsing credentials: %w", err)
	}
	s.key = creds.APIKey
	return s, nil
}

// Key returns the stored key, or "" when the setup flow still has to run.
func (s *Store) Key() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}

// Configured reports whether a key has been supplied.
func (s *Store) Configured() bool {
	return s.Key() != ""
}

// Set validates and persists a new key.
func (s *Store) Set(key string) error {
	if err := ValidateKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.Marshal(credentials{APIKey: key})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("creating credentials dir: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return fmt.Errorf("writing credentials: %w", err)
	}
	s.key = key
	return nil
}

// Clear removes the stored key; the setup flow must run again afterwards.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.key = ""
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing credentials: %w", err)
	}
	return nil
}
