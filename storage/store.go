// Package storage provides a small persistent key/value namespace.
//
// All games share one YAML file; each game reads and writes only the keys
// under its own prefix and leaves the rest of the file intact.
package storage

import (
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// UserIDKey holds the random player identity.
const UserIDKey = "user_id"

// Store is a prefixed view of a YAML key/value file. With an empty path the
// data lives in memory only.
type Store struct {
	prefix string
	path   string
	data   map[string]string
}

// Open loads the file at path, if it exists.
func Open(path, prefix string) (*Store, error) {
	s := &Store{prefix: prefix, path: path, data: make(map[string]string)}
	if path == "" {
		return s, nil
	}
	raw, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read storage: %w", err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, fmt.Errorf("parse storage: %w", err)
	}
	if s.data == nil {
		s.data = make(map[string]string)
	}
	return s, nil
}

// Get returns the value stored under key.
func (s *Store) Get(key string) (string, bool) {
	v, ok := s.data[s.prefix+key]
	return v, ok
}

// Set stores value under key and writes the file.
func (s *Store) Set(key, value string) error {
	s.data[s.prefix+key] = value
	return s.flush()
}

// Delete removes key and writes the file.
func (s *Store) Delete(key string) error {
	if _, ok := s.data[s.prefix+key]; !ok {
		return nil
	}
	delete(s.data, s.prefix+key)
	return s.flush()
}

// Keys returns the keys under this store's prefix, without the prefix.
func (s *Store) Keys() []string {
	var keys []string
	for k := range s.data {
		if strings.HasPrefix(k, s.prefix) {
			keys = append(keys, strings.TrimPrefix(k, s.prefix))
		}
	}
	sort.Strings(keys)
	return keys
}

func (s *Store) flush() error {
	if s.path == "" {
		return nil
	}
	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("encode storage: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create storage dir: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0644); err != nil {
		return fmt.Errorf("write storage: %w", err)
	}
	return nil
}

// UserID returns the persisted player identity, creating one on first use.
func (s *Store) UserID(rng *rand.Rand) (string, error) {
	if id, ok := s.Get(UserIDKey); ok && id != "" {
		return id, nil
	}
	id := fmt.Sprintf("%016x", rng.Uint64())
	if err := s.Set(UserIDKey, id); err != nil {
		return id, err
	}
	return id, nil
}
