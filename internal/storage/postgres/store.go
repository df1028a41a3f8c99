package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

//go:embed migrations/*.sql
var migrations embed.FS

const uniqueViolation = "23505"

// Ensure Store satisfies the storage.UserStore interface at compile time.
var _ storage.UserStore = (*Store)(nil)

// Store provides Postgres-backed persistence for users.
type Store struct {
	pool *pgxpool.Pool
}

// NewUserStore creates a new Store and runs migrations.
func NewUserStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close(context.Context) error {
	if s.pool != nil {
		s.pool.Close()
	}
	return nil
}

func (s *Store) migrate(ctx context.Context) error {
	fsys, err := fs.Sub(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}

	db := stdlib.OpenDB(*s.pool.Config().ConnConfig)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, fsys)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

const userColumns = `id, fullname, email, password, username, bio, profile_img,
	youtube, instagram, facebook, twitter, github, website,
	total_posts, total_reads, google_auth, joined_at, updated_at`

// CreateUser inserts a new user row.
func (s *Store) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if err := storage.Validate(user); err != nil {
		return models.User{}, err
	}

	const query = `
		INSERT INTO users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING ` + userColumns

	p, l := user.PersonalInfo, user.SocialLinks
	row := s.pool.QueryRow(ctx, query,
		uuid.New(), p.Fullname, p.Email, p.Password, p.Username, p.Bio, p.ProfileImg,
		l.Youtube, l.Instagram, l.Facebook, l.Twitter, l.Github, l.Website,
		user.AccountInfo.TotalPosts, user.AccountInfo.TotalReads, user.GoogleAuth, user.JoinedAt, user.UpdatedAt,
	)
	created, err := scanUser(row)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return models.User{}, fmt.Errorf("%s: %w", pgErr.ConstraintName, storage.ErrAlreadyExists)
		}
		return models.User{}, err
	}
	return created, nil
}

// FindByUsername fetches a user by username.
func (s *Store) FindByUsername(ctx context.Context, username string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	return scanUser(row)
}

// FindByEmail fetches a user by email address.
func (s *Store) FindByEmail(ctx context.Context, email string) (models.User, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	return scanUser(row)
}

func scanUser(row pgx.Row) (models.User, error) {
	var (
		user models.User
		id   uuid.UUID
	)
	p, l := &user.PersonalInfo, &user.SocialLinks
	err := row.Scan(&id, &p.Fullname, &p.Email, &p.Password, &p.Username, &p.Bio, &p.ProfileImg,
		&l.Youtube, &l.Instagram, &l.Facebook, &l.Twitter, &l.Github, &l.Website,
		&user.AccountInfo.TotalPosts, &user.AccountInfo.TotalReads, &user.GoogleAuth, &user.JoinedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.User{}, storage.ErrNotFound
		}
		return models.User{}, err
	}
	user.ID = id.String()
	return user, nil
}
