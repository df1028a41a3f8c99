package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/crime-report-hub/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// ErrInvalidRecord indicates the record failed store-level validation.
var ErrInvalidRecord = errors.New("invalid record")

// UserStore captures persistence operations needed by the auth service.
//
// Implementations enforce uniqueness of email and username themselves; a
// read before CreateUser is only a fast path and may race with another write.
type UserStore interface {
	// CreateUser validates and inserts user, returning it with ID assigned.
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	// FindByEmail looks up a record by its lower-cased address.
	FindByEmail(ctx context.Context, email string) (models.User, error)
	FindByUsername(ctx context.Context, username string) (models.User, error)
	Close(ctx context.Context) error
}
