package redis

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	"github.com/target/dialtone/internal/testutil"
)

func TestSessionStore_SaveAndGet(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "test-session-1",
		UserID:    "user-1",
		Remember:  true,
		IssuedAt:  time.Now().UTC().Truncate(time.Second),
		ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second),
	}

	require.NoError(t, store.Save(ctx, session))

	got, err := store.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, session.UserID, got.UserID)
	assert.True(t, got.Remember)
	assert.True(t, got.ExpiresAt.Equal(session.ExpiresAt))
}

func TestSessionStore_Save_EmptyID(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	err := store.Save(context.Background(), domainauth.Session{
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	})

	assert.Error(t, err)
}

func TestSessionStore_Save_AlreadyExpired(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	err := store.Save(context.Background(), domainauth.Session{
		ID:        "expired",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(-time.Minute),
	})

	assert.Error(t, err)
}

func TestSessionStore_Get_NotFound(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)

	_, err := store.Get(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get(context.Background(), "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionStore_Delete(t *testing.T) {
	client := testutil.SetupTestRedis(t)

	store := NewSessionStore(client)
	ctx := context.Background()

	session := domainauth.Session{
		ID:        "to-delete",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, session))
	require.NoError(t, store.Delete(ctx, session.ID))

	_, err := store.Get(ctx, session.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// Deleting a missing or empty id is a no-op.
	assert.NoError(t, store.Delete(ctx, session.ID))
	assert.NoError(t, store.Delete(ctx, ""))
}

func TestSessionStore_CustomPrefix(t *testing.T) {
	client := testutil.SetupTestRedis(t)
	ctx := context.Background()

	store := NewSessionStoreWithPrefix(client, "sess-v2:")
	session := domainauth.Session{
		ID:        "prefixed",
		UserID:    "user-1",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	require.NoError(t, store.Save(ctx, session))

	exists, err := client.Exists(ctx, "sess-v2:prefixed").Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists)
}
