package visitormongo_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mongodrv "go.mongodb.org/mongo-driver/v2/mongo"

	"github.com/dmitrymomot/guestpass/pkg/mongo"
	"github.com/dmitrymomot/guestpass/pkg/visitor"
	"github.com/dmitrymomot/guestpass/pkg/visitormongo"
)

// setupTestDB connects to the server named by TEST_MONGODB_URL and hands the
// test an isolated database. Tests are skipped when the variable is unset.
func setupTestDB(t *testing.T) *mongodrv.Database {
	t.Helper()

	connURL := os.Getenv("TEST_MONGODB_URL")
	if connURL == "" {
		t.Skip("TEST_MONGODB_URL not set, skipping mongo integration tests")
	}

	ctx := context.Background()
	db, err := mongo.NewWithDatabase(ctx, mongo.Config{
		ConnectionURL:  connURL,
		ConnectTimeout: 10 * time.Second,
		MaxPoolSize:    10,
		MinPoolSize:    1,
		RetryAttempts:  1,
		RetryInterval:  time.Second,
	}, fmt.Sprintf("guestpass_test_%d", time.Now().UnixNano()))
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})
	return db
}

func TestStoreRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	store := visitormongo.New(db)
	ctx := context.Background()

	_, err := store.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, visitor.ErrNotFound)

	rec := visitor.NewRecord("fred@example.com", "reports", 3)
	require.NoError(t, store.Save(ctx, rec))

	got, err := store.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, got.ID)
	assert.Equal(t, rec.Email, got.Email)
	assert.Equal(t, 3, got.SessionsLeft)

	got.Deactivate()
	require.NoError(t, store.Save(ctx, got))
	got, err = store.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)
}

func TestStoreDecrement(t *testing.T) {
	db := setupTestDB(t)
	store := visitormongo.New(db)
	ctx := context.Background()

	t.Run("floors at zero", func(t *testing.T) {
		rec := visitor.NewRecord("fred@example.com", "reports", 1)
		require.NoError(t, store.Save(ctx, rec))

		updated, err := store.Decrement(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.SessionsLeft)

		updated, err = store.Decrement(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, updated.SessionsLeft)
	})

	t.Run("unlimited untouched", func(t *testing.T) {
		rec := visitor.NewRecord("fred@example.com", "reports", visitor.UnlimitedSessions)
		require.NoError(t, store.Save(ctx, rec))

		updated, err := store.Decrement(ctx, rec.ID)
		require.NoError(t, err)
		assert.Equal(t, visitor.UnlimitedSessions, updated.SessionsLeft)
	})

	t.Run("unknown record", func(t *testing.T) {
		_, err := store.Decrement(ctx, uuid.New())
		assert.ErrorIs(t, err, visitor.ErrNotFound)
	})
}

func TestStoreDecrementConcurrent(t *testing.T) {
	db := setupTestDB(t)
	store := visitormongo.New(db)
	ctx := context.Background()

	const quota = 20
	rec := visitor.NewRecord("fred@example.com", "reports", quota)
	require.NoError(t, store.Save(ctx, rec))

	var wg sync.WaitGroup
	for range quota * 2 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = store.Decrement(ctx, rec.ID)
		}()
	}
	wg.Wait()

	got, err := store.FindByID(ctx, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.SessionsLeft)
}
