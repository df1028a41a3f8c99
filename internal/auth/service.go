// Package auth implements account signup and signin: input validation,
// uniqueness checks, password hashing and access token issuance.
package auth

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/models/dto"
	"github.com/hongminglow/crime-report-hub/internal/storage"
	"github.com/hongminglow/crime-report-hub/internal/validation"
)

// Hasher is the one-way password hashing primitive.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(password, digest string) (bool, error)
}

// TokenIssuer signs time-bounded bearer tokens.
type TokenIssuer interface {
	Generate(userID string) (string, error)
}

const (
	signupFailed     = "Registration failed"
	signupFailedHint = "An error occurred during registration"
	signinFailed     = "Sign in failed"
	signinFailedHint = "An error occurred during sign in"
)

// Service orchestrates signup and signin against a UserStore.
type Service struct {
	store  storage.UserStore
	hasher Hasher
	tokens TokenIssuer
	now    func() time.Time
	random models.Random
}

// Option customises a Service.
type Option func(*Service)

// WithClock overrides the time source used for record timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

// WithRandom overrides the source used for avatars and username suffixes.
func WithRandom(r models.Random) Option {
	return func(s *Service) { s.random = r }
}

// NewService constructs the service.
func NewService(store storage.UserStore, hasher Hasher, tokens TokenIssuer, opts ...Option) *Service {
	s := &Service{
		store:  store,
		hasher: hasher,
		tokens: tokens,
		now:    time.Now,
		random: globalRandom{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Signup registers a new account and returns its first session.
func (s *Service) Signup(ctx context.Context, req dto.SignupRequest) (dto.Session, error) {
	if err := validation.Signup(req.Fullname, req.Email, req.Password); err != nil {
		return dto.Session{}, err
	}
	email := validation.NormalizeEmail(req.Email)

	_, err := s.store.FindByEmail(ctx, email)
	switch {
	case err == nil:
		return dto.Session{}, apperr.WithDetails(apperr.CodeEmailAlreadyExists, "Account already exists", "This email is already registered")
	case !errors.Is(err, storage.ErrNotFound):
		return dto.Session{}, failure(apperr.CodePersistenceFailure, signupFailed, signupFailedHint, err)
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return dto.Session{}, failure(apperr.CodeInternalFailure, signupFailed, signupFailedHint, err)
	}

	username, err := s.availableUsername(ctx, models.UsernameFromEmail(email))
	if err != nil {
		return dto.Session{}, failure(apperr.CodePersistenceFailure, signupFailed, signupFailedHint, err)
	}

	user := models.NewUser(models.NewUserInput{
		Fullname:     req.Fullname,
		Email:        email,
		PasswordHash: hash,
		Username:     username,
		ProfileImg:   models.DefaultProfileImg(s.random),
	}, s.now())

	created, err := s.store.CreateUser(ctx, user)
	if err != nil {
		return dto.Session{}, failure(apperr.CodePersistenceFailure, signupFailed, signupFailedHint, err)
	}

	return s.session(created, signupFailed, signupFailedHint)
}

// Signin checks credentials and issues a fresh session.
func (s *Service) Signin(ctx context.Context, req dto.SigninRequest) (dto.Session, error) {
	if err := validation.Signin(req.Email, req.Password); err != nil {
		return dto.Session{}, err
	}

	user, err := s.store.FindByEmail(ctx, validation.NormalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return dto.Session{}, apperr.New(apperr.CodeAccountNotFound, "Account not found")
		}
		return dto.Session{}, failure(apperr.CodePersistenceFailure, signinFailed, signinFailedHint, err)
	}

	ok, err := s.hasher.Verify(req.Password, user.PersonalInfo.Password)
	if err != nil {
		return dto.Session{}, failure(apperr.CodeInternalFailure, signinFailed, signinFailedHint, err)
	}
	if !ok {
		return dto.Session{}, apperr.New(apperr.CodeInvalidCredentials, "Invalid password")
	}

	return s.session(user, signinFailed, signinFailedHint)
}

// availableUsername probes once; a taken name gets a random suffix and is not
// probed again.
func (s *Service) availableUsername(ctx context.Context, base string) (string, error) {
	_, err := s.store.FindByUsername(ctx, base)
	switch {
	case err == nil:
		return models.WithUsernameSuffix(base, s.random), nil
	case errors.Is(err, storage.ErrNotFound):
		return base, nil
	default:
		return "", err
	}
}

func (s *Service) session(user models.User, message, hint string) (dto.Session, error) {
	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return dto.Session{}, failure(apperr.CodeInternalFailure, message, hint, err)
	}
	return dto.Session{
		AccessToken: token,
		ProfileImg:  user.PersonalInfo.ProfileImg,
		Username:    user.PersonalInfo.Username,
		Fullname:    user.PersonalInfo.Fullname,
	}, nil
}

// failure builds an internal error whose Details hold the production-safe
// hint; the cause is only exposed in development mode.
func failure(code apperr.Code, message, hint string, cause error) *apperr.Error {
	return &apperr.Error{Code: code, Message: message, Details: hint, Cause: cause}
}

type globalRandom struct{}

func (globalRandom) IntN(n int) int { return rand.IntN(n) }
