// Package memory provides an in-process UserStore with the same uniqueness
// guarantees as the database backends.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store keeps users in maps guarded by a mutex.
type Store struct {
	mu         sync.RWMutex
	byID       map[string]models.User
	byEmail    map[string]string
	byUsername map[string]string
}

// New returns an empty store.
func New() *Store {
	return &Store{
		byID:       make(map[string]models.User),
		byEmail:    make(map[string]string),
		byUsername: make(map[string]string),
	}
}

// CreateUser inserts user after validation, rejecting duplicate emails and usernames.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := storage.Validate(user); err != nil {
		return models.User{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[user.PersonalInfo.Email]; ok {
		return models.User{}, fmt.Errorf("email %q: %w", user.PersonalInfo.Email, storage.ErrAlreadyExists)
	}
	if _, ok := s.byUsername[user.PersonalInfo.Username]; ok {
		return models.User{}, fmt.Errorf("username %q: %w", user.PersonalInfo.Username, storage.ErrAlreadyExists)
	}

	user.ID = uuid.NewString()
	s.byID[user.ID] = user
	s.byEmail[user.PersonalInfo.Email] = user.ID
	s.byUsername[user.PersonalInfo.Username] = user.ID
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.byEmail, email)
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lookup(s.byUsername, username)
}

// Len reports the number of stored users.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Close is a no-op.
func (s *Store) Close(context.Context) error {
	return nil
}

func (s *Store) lookup(index map[string]string, key string) (models.User, error) {
	id, ok := index[key]
	if !ok {
		return models.User{}, storage.ErrNotFound
	}
	return s.byID[id], nil
}
