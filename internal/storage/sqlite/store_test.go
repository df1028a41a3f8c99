package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/crime-report-hub/internal/models"
	"github.com/hongminglow/crime-report-hub/internal/storage"
)

func newStore(t *testing.T) (*Store, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data", "users.db")
	store, err := NewUserStore(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close(context.Background()) })
	return store, path
}

func sampleUser(name string) models.User {
	return models.NewUser(models.NewUserInput{
		Fullname:     "Sample " + name,
		Email:        name + "@example.com",
		PasswordHash: "digest",
		Username:     name,
		ProfileImg:   "https://api.dicebear.com/6.x/notionists-neutral/svg?seed=Garfield",
	}, time.Date(2024, 5, 6, 7, 8, 9, 123456789, time.UTC))
}

func TestStore_CreateAndFind(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, sampleUser("alice"))
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	byEmail, err := store.FindByEmail(ctx, "alice@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)
	assert.Equal(t, created.PersonalInfo, byEmail.PersonalInfo)

	byUsername, err := store.FindByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)
	assert.Equal(t, "sample alice", byUsername.PersonalInfo.Fullname)
	assert.True(t, byUsername.JoinedAt.Equal(created.JoinedAt))
}

func TestStore_NotFound(t *testing.T) {
	store, _ := newStore(t)

	_, err := store.FindByEmail(context.Background(), "ghost@example.com")
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = store.FindByUsername(context.Background(), "ghost")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStore_Duplicates(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	_, err := store.CreateUser(ctx, sampleUser("bob"))
	require.NoError(t, err)

	sameEmail := sampleUser("bobby")
	sameEmail.PersonalInfo.Email = "bob@example.com"
	_, err = store.CreateUser(ctx, sameEmail)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)

	sameUsername := sampleUser("robert")
	sameUsername.PersonalInfo.Username = "bob"
	_, err = store.CreateUser(ctx, sameUsername)
	assert.ErrorIs(t, err, storage.ErrAlreadyExists)
}

func TestStore_RejectsInvalidRecord(t *testing.T) {
	store, _ := newStore(t)

	user := sampleUser("carol")
	user.PersonalInfo.Fullname = "cj"
	_, err := store.CreateUser(context.Background(), user)
	assert.ErrorIs(t, err, storage.ErrInvalidRecord)
}

func TestStore_ConcurrentSameEmail(t *testing.T) {
	store, _ := newStore(t)
	ctx := context.Background()

	const n = 8
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := sampleUser(fmt.Sprintf("racer%d", i))
			user.PersonalInfo.Email = "race@example.com"
			if _, err := store.CreateUser(ctx, user); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, storage.ErrAlreadyExists)
			}
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 1, successes)
}

func TestStore_ReopenKeepsData(t *testing.T) {
	store, path := newStore(t)
	ctx := context.Background()

	created, err := store.CreateUser(ctx, sampleUser("dave"))
	require.NoError(t, err)
	require.NoError(t, store.Close(ctx))

	reopened, err := NewUserStore(ctx, path)
	require.NoError(t, err)
	defer reopened.Close(ctx)

	got, err := reopened.FindByEmail(ctx, "dave@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
}
