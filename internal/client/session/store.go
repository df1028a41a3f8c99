// Package session persists small string values across client runs, the way a
// browser tab keeps them in session storage.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/hongminglow/crime-report-hub/internal/models/dto"
)

// UserKey is the key the signed-in session payload is stored under.
const UserKey = "user"

// Store is a key/value store backed by a single JSON file.
type Store struct {
	mu   sync.Mutex
	path string
}

// NewStore returns a store writing to path. The file is created lazily.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file.
func (s *Store) Path() string {
	return s.path
}

// Lookup returns the value for key and whether it was present.
func (s *Store) Lookup(key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := values[key]
	return v, ok, nil
}

// Store sets key to value.
func (s *Store) Store(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	values[key] = value
	return s.save(values)
}

// Remove deletes key. Removing a missing key is not an error.
func (s *Store) Remove(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	values, err := s.load()
	if err != nil {
		return err
	}
	if _, ok := values[key]; !ok {
		return nil
	}
	delete(values, key)
	return s.save(values)
}

func (s *Store) load() (map[string]string, error) {
	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session file: %w", err)
	}
	values := map[string]string{}
	if len(raw) == 0 {
		return values, nil
	}
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, fmt.Errorf("decode session file: %w", err)
	}
	return values, nil
}

// save writes through a temp file so a crash never leaves half a file.
func (s *Store) save(values map[string]string) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}
	raw, err := json.MarshalIndent(values, "", "  ")
	if err != nil {
		return fmt.Errorf("encode session file: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("create temp session file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write session file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o600); err != nil {
		return fmt.Errorf("chmod session file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session file: %w", err)
	}
	return nil
}

// LoadUser returns the stored session payload. A missing key reports false;
// an unreadable payload is an error.
func LoadUser(s *Store) (dto.Session, bool, error) {
	raw, ok, err := s.Lookup(UserKey)
	if err != nil || !ok {
		return dto.Session{}, false, err
	}
	var sess dto.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		return dto.Session{}, false, fmt.Errorf("decode stored session: %w", err)
	}
	return sess, true, nil
}

// SaveUser stores sess as JSON under UserKey.
func SaveUser(s *Store, sess dto.Session) error {
	raw, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.Store(UserKey, string(raw))
}

// ClearUser forgets the stored session.
func ClearUser(s *Store) error {
	return s.Remove(UserKey)
}
