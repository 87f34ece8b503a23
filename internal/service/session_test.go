package service

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
	mocks "github.com/target/dialtone/internal/mocks/auth"
)

func newSessionManager(store *mocks.MemorySessionStore) *SessionManager {
	return NewSessionManager(SessionManagerOptions{
		Sessions:    store,
		TTL:         12 * time.Hour,
		RememberTTL: 30 * 24 * time.Hour,
	})
}

func requestWithSession(id string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	if id != "" {
		r.AddCookie(&http.Cookie{Name: SessionCookieName, Value: id})
	}
	return r
}

func TestSessionManager_Create(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	mgr := newSessionManager(store)

	sess, err := mgr.Create(context.Background(), "user-1", false)
	require.NoError(t, err)

	assert.Equal(t, "user-1", sess.UserID)
	assert.False(t, sess.Remember)
	assert.NotEmpty(t, sess.ID)
	assert.Greater(t, len(sess.ID), 32, "token must carry real entropy")
	assert.Equal(t, 1, store.Len())
}

func TestSessionManager_Create_RememberOutlivesShort(t *testing.T) {
	mgr := newSessionManager(mocks.NewMemorySessionStore())

	short, err := mgr.Create(context.Background(), "user-1", false)
	require.NoError(t, err)
	long, err := mgr.Create(context.Background(), "user-1", true)
	require.NoError(t, err)

	assert.True(t, long.ExpiresAt.After(short.ExpiresAt))
}

func TestSessionManager_Create_EmptyUser(t *testing.T) {
	mgr := newSessionManager(mocks.NewMemorySessionStore())

	_, err := mgr.Create(context.Background(), "", false)
	assert.Error(t, err)
}

func TestSessionManager_Create_TokensAreUnique(t *testing.T) {
	mgr := newSessionManager(mocks.NewMemorySessionStore())

	seen := make(map[string]bool)
	for range 50 {
		sess, err := mgr.Create(context.Background(), "user-1", false)
		require.NoError(t, err)
		assert.False(t, seen[sess.ID])
		seen[sess.ID] = true
	}
}

func TestSessionManager_CurrentUserID(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	mgr := newSessionManager(store)

	sess, err := mgr.Create(context.Background(), "user-1", false)
	require.NoError(t, err)

	userID, ok := mgr.CurrentUserID(context.Background(), requestWithSession(sess.ID))
	assert.True(t, ok)
	assert.Equal(t, "user-1", userID)
}

func TestSessionManager_CurrentUserID_NoCookie(t *testing.T) {
	mgr := newSessionManager(mocks.NewMemorySessionStore())

	_, ok := mgr.CurrentUserID(context.Background(), requestWithSession(""))
	assert.False(t, ok)
}

func TestSessionManager_CurrentUserID_TamperedToken(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	mgr := newSessionManager(store)

	sess, err := mgr.Create(context.Background(), "user-1", false)
	require.NoError(t, err)

	_, ok := mgr.CurrentUserID(context.Background(), requestWithSession(sess.ID+"x"))
	assert.False(t, ok)
}

func TestSessionManager_CurrentUserID_Expired(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	mgr := newSessionManager(store)

	// Seed an already-expired session directly into the store.
	expired := domainauth.Session{
		ID:        "expired-token",
		UserID:    "user-1",
		IssuedAt:  time.Now().Add(-2 * time.Hour),
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, store.Save(context.Background(), expired))

	_, ok := mgr.CurrentUserID(context.Background(), requestWithSession("expired-token"))
	assert.False(t, ok)

	// The stale record is revoked on sight.
	assert.Equal(t, 0, store.Len())
}

func TestSessionManager_RequireUserID(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	mgr := newSessionManager(store)

	sess, err := mgr.Create(context.Background(), "user-1", true)
	require.NoError(t, err)

	userID, err := mgr.RequireUserID(context.Background(), requestWithSession(sess.ID))
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)

	_, err = mgr.RequireUserID(context.Background(), requestWithSession(""))
	assert.True(t, apperrors.IsUnauthenticated(err))
}

func TestSessionManager_RequireUserID_StoreFailureStaysDistinct(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	store.GetFunc = func(context.Context, string) (domainauth.Session, error) {
		return domainauth.Session{}, errors.New("redis: connection refused")
	}
	mgr := newSessionManager(store)

	_, err := mgr.RequireUserID(context.Background(), requestWithSession("whatever"))
	require.Error(t, err)
	assert.False(t, apperrors.IsUnauthenticated(err))
	assert.True(t, apperrors.IsInfrastructure(err))
}

func TestSessionManager_Destroy(t *testing.T) {
	store := mocks.NewMemorySessionStore()
	mgr := newSessionManager(store)

	sess, err := mgr.Create(context.Background(), "user-1", false)
	require.NoError(t, err)

	require.NoError(t, mgr.Destroy(context.Background(), requestWithSession(sess.ID)))
	assert.Equal(t, 0, store.Len())

	// Destroying with no cookie is a no-op.
	assert.NoError(t, mgr.Destroy(context.Background(), requestWithSession("")))
}
