// Package sqlite keeps users in a single-file SQLite database, for local
// development and single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/pressly/goose/v3"
	moderncsqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store provides SQLite-backed persistence for users.
type Store struct {
	db *sql.DB
}

// NewUserStore opens (creating if needed) the database file at path and
// runs migrations.
func NewUserStore(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, errors.New("sqlite: empty database path")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", "file:"+path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	// One writer at a time; SQLite serializes writes anyway.
	db.SetMaxOpenConns(1)
	return s, nil
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	provider, err := goose.NewProvider(goose.DialectSQLite3, s.db, fsys)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Close releases database resources.
func (s *Store) Close(context.Context) error {
	return s.db.Close()
}

const userColumns = `id, fullname, email, password, username, bio, profile_img,
	youtube, instagram, facebook, twitter, github, website,
	total_posts, total_reads, google_auth, joined_at, updated_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := storage.Validate(user); err != nil {
		return models.User{}, err
	}

	user.ID = uuid.NewString()
	user.JoinedAt = user.JoinedAt.UTC()
	user.UpdatedAt = user.UpdatedAt.UTC()

	p, l := user.PersonalInfo, user.SocialLinks
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		user.ID, p.Fullname, p.Email, p.Password, p.Username, p.Bio, p.ProfileImg,
		l.Youtube, l.Instagram, l.Facebook, l.Twitter, l.Github, l.Website,
		user.AccountInfo.TotalPosts, user.AccountInfo.TotalReads, user.GoogleAuth,
		user.JoinedAt.Format(time.RFC3339Nano), user.UpdatedAt.Format(time.RFC3339Nano),
	)
	if err != nil {
		var sqliteErr *moderncsqlite.Error
		if errors.As(err, &sqliteErr) && isUniqueViolation(sqliteErr.Code()) {
			return models.User{}, fmt.Errorf("%w: %v", storage.ErrAlreadyExists, err)
		}
		return models.User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	return s.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
}

func (s *Store) findOne(ctx context.Context, query string, arg string) (models.User, error) {
	var (
		user            models.User
		joined, updated string
	)
	p, l := &user.PersonalInfo, &user.SocialLinks
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&user.ID, &p.Fullname, &p.Email, &p.Password, &p.Username, &p.Bio, &p.ProfileImg,
		&l.Youtube, &l.Instagram, &l.Facebook, &l.Twitter, &l.Github, &l.Website,
		&user.AccountInfo.TotalPosts, &user.AccountInfo.TotalReads, &user.GoogleAuth, &joined, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	if user.JoinedAt, err = time.Parse(time.RFC3339Nano, joined); err != nil {
		return models.User{}, fmt.Errorf("parse joined_at: %w", err)
	}
	if user.UpdatedAt, err = time.Parse(time.RFC3339Nano, updated); err != nil {
		return models.User{}, fmt.Errorf("parse updated_at: %w", err)
	}
	return user, nil
}

func isUniqueViolation(code int) bool {
	return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
}
