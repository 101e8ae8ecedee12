// Package keyring provides a local store for policy verification keys.
// This lets policies be verified without passing key files around.
package keyring

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/go-jose/go-jose/v4"
)

// Common errors returned by this package.
var (
	ErrKeyNotFound = errors.New("key not found in keyring")
	ErrInvalidKey  = errors.New("invalid key format")
)

// FileStore keeps public keys as JWK files in a directory.
// Default location: ~/.riskplane/keys/
type FileStore struct {
	dir string
	mu  sync.RWMutex
}

// DefaultDir returns the default keyring directory.
func DefaultDir() string {
	if envPath := os.Getenv("RISKPLANE_KEYS_PATH"); envPath != "" {
		return envPath
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".riskplane", "keys")
	}
	return filepath.Join(home, ".riskplane", "keys")
}

// NewFileStore creates a file-based keyring, creating the directory
// when needed. An empty dir uses DefaultDir.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		dir = DefaultDir()
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create keyring directory: %w", err)
	}

	return &FileStore{dir: dir}, nil
}

// keyPath returns the path for a key file.
func (s *FileStore) keyPath(kid string) string {
	return filepath.Join(s.dir, sanitizeFilename(kid)+".jwk")
}

// Add stores a key. Private keys are rejected: the keyring is for
// verification only.
func (s *FileStore) Add(key jose.JSONWebKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if key.KeyID == "" {
		return fmt.Errorf("%w: missing kid", ErrInvalidKey)
	}
	if !key.IsPublic() {
		return fmt.Errorf("%w: refusing to store a private key", ErrInvalidKey)
	}

	data, err := json.MarshalIndent(key, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal key: %w", err)
	}

	if err := os.WriteFile(s.keyPath(key.KeyID), data, 0600); err != nil {
		return fmt.Errorf("failed to write key: %w", err)
	}
	return nil
}

// Get retrieves a key by kid.
func (s *FileStore) Get(kid string) (*jose.JSONWebKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.keyPath(kid))
	if os.IsNotExist(err) {
		return nil, ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read key: %w", err)
	}

	var key jose.JSONWebKey
	if err := json.Unmarshal(data, &key); err != nil {
		return nil, fmt.Errorf("failed to parse key: %w", err)
	}
	return &key, nil
}

// List returns all keys in the keyring.
func (s *FileStore) List() ([]jose.JSONWebKey, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read keyring directory: %w", err)
	}

	var keys []jose.JSONWebKey
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jwk" {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			continue
		}

		var key jose.JSONWebKey
		if err := json.Unmarshal(data, &key); err != nil {
			continue
		}
		keys = append(keys, key)
	}
	return keys, nil
}

// Remove removes a key by kid.
func (s *FileStore) Remove(kid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path := s.keyPath(kid)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return ErrKeyNotFound
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("failed to remove key: %w", err)
	}
	return nil
}

// sanitizeFilename converts a kid to a safe filename.
func sanitizeFilename(kid string) string {
	safe := make([]byte, 0, len(kid))
	for _, c := range []byte(kid) {
		switch c {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			safe = append(safe, '_')
		default:
			safe = append(safe, c)
		}
	}
	return string(safe)
}
