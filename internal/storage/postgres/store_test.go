package postgres

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

func TestMigrationsEmbedded(t *testing.T) {
	entries, err := migrations.ReadDir("migrations")
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, "00001_create_users.sql", entries[0].Name())
}

// TestStoreIntegration runs against a live database when POSTGRES_TEST_URL is set.
func TestStoreIntegration(t *testing.T) {
	dsn := os.Getenv("POSTGRES_TEST_URL")
	if dsn == "" {
		t.Skip("set POSTGRES_TEST_URL to run this integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	store, err := NewUserStore(ctx, dsn)
	require.NoError(t, err)
	defer store.Close(ctx)

	suffix := time.Now().UnixNano()
	user := models.NewUser(models.NewUserInput{
		Fullname:     "Pg Tester",
		Email:        fmt.Sprintf("pg%d@example.com", suffix),
		PasswordHash: "digest",
		Username:     fmt.Sprintf("pg%d", suffix),
		ProfileImg:   "https://api.dicebear.com/6.x/adventurer-neutral/svg?seed=Cali",
	}, time.Now())

	created, err := store.CreateUser(ctx, user)
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "pg tester", created.PersonalInfo.Fullname)

	byEmail, err := store.FindByEmail(ctx, user.PersonalInfo.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := store.FindByUsername(ctx, user.PersonalInfo.Username)
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	_, err = store.CreateUser(ctx, user)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	_, err = store.FindByUsername(ctx, "nobody-"+user.PersonalInfo.Username)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Reopening reapplies migrations idempotently.
	again, err := NewUserStore(ctx, dsn)
	require.NoError(t, err)
	require.NoError(t, again.Close(ctx))
}
