// Package backend opens the UserStore named by a DB_LOCATION value.
package backend

import (
	"context"
	"fmt"
	"strings"

	"github.com/hongminglow/crime-report-hub/internal/storage"
	"github.com/hongminglow/crime-report-hub/internal/storage/memory"
	"github.com/hongminglow/crime-report-hub/internal/storage/mongo"
	"github.com/hongminglow/crime-report-hub/internal/storage/postgres"
	"github.com/hongminglow/crime-report-hub/internal/storage/sqlite"
)

// Kind names a storage backend.
type Kind string

const (
	KindMongo    Kind = "mongo"
	KindPostgres Kind = "postgres"
	KindSQLite   Kind = "sqlite"
	KindMemory   Kind = "memory"
)

const (
	sqlitePrefix = "sqlite://"
	memoryPrefix = "memory://"
)

// Detect reports which backend location refers to.
func Detect(location string) (Kind, error) {
	lower := strings.ToLower(strings.TrimSpace(location))
	switch {
	case strings.HasPrefix(lower, "mongodb://"), strings.HasPrefix(lower, "mongodb+srv://"):
		return KindMongo, nil
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return KindPostgres, nil
	case strings.HasPrefix(lower, sqlitePrefix):
		return KindSQLite, nil
	case strings.HasPrefix(lower, memoryPrefix):
		return KindMemory, nil
	default:
		return "", fmt.Errorf("unsupported DB_LOCATION scheme in %q", redact(location))
	}
}

// Open connects to the store at location.
func Open(ctx context.Context, location string) (storage.UserStore, Kind, error) {
	kind, err := Detect(location)
	if err != nil {
		return nil, "", err
	}
	location = strings.TrimSpace(location)

	var store storage.UserStore
	switch kind {
	case KindMongo:
		store, err = mongo.NewUserStore(ctx, location)
	case KindPostgres:
		store, err = postgres.NewUserStore(ctx, location)
	case KindSQLite:
		store, err = sqlite.NewUserStore(ctx, location[len(sqlitePrefix):])
	case KindMemory:
		store = memory.New()
	}
	if err != nil {
		return nil, kind, fmt.Errorf("open %s store: %w", kind, err)
	}
	return store, kind, nil
}

// redact hides credentials so locations can be logged.
func redact(location string) string {
	scheme, rest, ok := strings.Cut(location, "://")
	if !ok {
		return "<invalid>"
	}
	if creds, host, ok := strings.Cut(rest, "@"); ok && creds != "" {
		return scheme + "://***@" + host
	}
	return location
}
