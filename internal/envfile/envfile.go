/*
Copyright (c) 2025 Scribe Labs

Licensed under the AGPLv3 License.
This file is part of scribe-bot.
*/

// Package envfile persists bot settings to a flat key-value .env file.
// The file is the source of truth; an in-memory cache is kept in sync on
// every mutation.
package envfile

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
)

// Keys stored in the env file.
const (
	KeyAPIKey       = "OPENAI_API_KEY"
	KeyLanguageCode = "ISO_639_1_LANGUAGE_CODE"
)

// DefaultLanguageCode is used when no language code has been persisted yet.
const DefaultLanguageCode = "en"

// Store is a durable key-value store backed by a .env file.
type Store struct {
	mu     sync.Mutex
	path   string
	values map[string]string
}

// Open loads the env file at path, creating it with defaults when missing.
// Missing keys are defaulted in the cache and persisted on first write.
func Open(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("env file path must not be empty")
	}

	values := map[string]string{}
	if _, err := os.Stat(path); err == nil {
		loaded, err := godotenv.Read(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read env file %s: %w", path, err)
		}
		values = loaded
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to stat env file %s: %w", path, err)
	}

	if _, ok := values[KeyLanguageCode]; !ok {
		values[KeyLanguageCode] = DefaultLanguageCode
	}
	if _, ok := values[KeyAPIKey]; !ok {
		values[KeyAPIKey] = ""
	}

	s := &Store{
		path:   path,
		values: values,
	}

	// Materialize the file so later reloads see the defaults, matching the
	// create-if-needed behavior of the original dotenv flow.
	if err := s.write(); err != nil {
		return nil, err
	}

	return s, nil
}

// Get returns the cached value for key; missing keys return "".
func (s *Store) Get(key string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key]
}

// Set durably persists one key and updates the in-memory cache.
func (s *Store) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	previous, hadPrevious := s.values[key]
	s.values[key] = value

	if err := s.write(); err != nil {
		// Keep cache and file consistent on failure
		if hadPrevious {
			s.values[key] = previous
		} else {
			delete(s.values, key)
		}
		return err
	}

	return nil
}

// Path returns the env file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// write rewrites the whole file via a temp file and rename. Callers hold mu.
func (s *Store) write() error {
	content, err := godotenv.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal env values: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".env-*")
	if err != nil {
		return fmt.Errorf("failed to create temp env file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(content + "\n"); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write temp env file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp env file: %w", err)
	}

	if err := os.Rename(tmpName, s.path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to replace env file %s: %w", s.path, err)
	}

	return nil
}
