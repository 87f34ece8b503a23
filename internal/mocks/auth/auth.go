// Package auth contains simple hand-written test doubles for auth ports.
// These are lightweight and suitable for unit tests without codegen.
package auth

import (
	"context"
	"sync"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
	"github.com/target/dialtone/internal/ports"
)

// Ensure compile-time conformance to ports.
var (
	_ ports.CredentialStore = (*MemoryCredentialStore)(nil)
	_ ports.SessionStore    = (*MemorySessionStore)(nil)
	_ ports.TokenStore      = (*MemoryTokenStore)(nil)
	_ ports.TokenExchanger  = (*FakeExchanger)(nil)
)

// MemoryCredentialStore verifies credentials against an in-memory user set
// keyed by phone. Passwords are stored in the clear; this is test-only.
type MemoryCredentialStore struct {
	VerifyFunc func(ctx context.Context, phone, password string) (*domainauth.User, error)

	mu        sync.RWMutex
	users     map[string]domainauth.User
	passwords map[string]string
}

// NewMemoryCredentialStore creates an empty in-memory credential store.
func NewMemoryCredentialStore() *MemoryCredentialStore {
	return &MemoryCredentialStore{
		users:     make(map[string]domainauth.User),
		passwords: make(map[string]string),
	}
}

// AddUser registers a user with a plaintext password for later verification.
func (m *MemoryCredentialStore) AddUser(user domainauth.User, password string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[user.Phone] = user
	m.passwords[user.Phone] = password
}

func (m *MemoryCredentialStore) Verify(ctx context.Context, phone, password string) (*domainauth.User, error) {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, phone, password)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()
	user, ok := m.users[phone]
	if !ok || m.passwords[phone] != password {
		return nil, nil
	}
	u := user
	return &u, nil
}

// MemorySessionStore is an in-memory ports.SessionStore.
type MemorySessionStore struct {
	SaveFunc   func(ctx context.Context, sess domainauth.Session) error
	GetFunc    func(ctx context.Context, id string) (domainauth.Session, error)
	DeleteFunc func(ctx context.Context, id string) error

	mu       sync.RWMutex
	sessions map[string]domainauth.Session
}

// NewMemorySessionStore creates an empty in-memory session store.
func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[string]domainauth.Session)}
}

func (m *MemorySessionStore) Save(ctx context.Context, sess domainauth.Session) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, sess)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[sess.ID] = sess
	return nil
}

func (m *MemorySessionStore) Get(ctx context.Context, id string) (domainauth.Session, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	sess, ok := m.sessions[id]
	if !ok {
		return domainauth.Session{}, ports.ErrSessionNotFound
	}
	return sess, nil
}

func (m *MemorySessionStore) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, id)
	return nil
}

// Len reports the number of stored sessions.
func (m *MemorySessionStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// MemoryTokenStore is an in-memory ports.TokenStore keyed by (userID, provider).
type MemoryTokenStore struct {
	UpsertFunc func(ctx context.Context, tok domainauth.OAuthToken) (domainauth.OAuthToken, error)

	mu     sync.RWMutex
	tokens map[[2]string]domainauth.OAuthToken
}

// NewMemoryTokenStore creates an empty in-memory token store.
func NewMemoryTokenStore() *MemoryTokenStore {
	return &MemoryTokenStore{tokens: make(map[[2]string]domainauth.OAuthToken)}
}

func (m *MemoryTokenStore) Upsert(ctx context.Context, tok domainauth.OAuthToken) (domainauth.OAuthToken, error) {
	if m.UpsertFunc != nil {
		return m.UpsertFunc(ctx, tok)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[[2]string{tok.UserID, tok.Provider}] = tok
	return tok, nil
}

func (m *MemoryTokenStore) Get(_ context.Context, userID, provider string) (domainauth.OAuthToken, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tok, ok := m.tokens[[2]string{userID, provider}]
	if !ok {
		return domainauth.OAuthToken{}, apperrors.NotFound("token not found")
	}
	return tok, nil
}

// Len reports the number of stored token rows.
func (m *MemoryTokenStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.tokens)
}

// FakeExchanger is a deterministic ports.TokenExchanger.
type FakeExchanger struct {
	ExchangeFunc func(ctx context.Context, code string) (ports.ProviderToken, error)

	// Calls records every code passed to Exchange.
	mu    sync.Mutex
	Calls []string
}

// NewFakeExchanger creates a FakeExchanger returning fixed tokens.
func NewFakeExchanger() *FakeExchanger {
	return &FakeExchanger{}
}

func (f *FakeExchanger) Exchange(ctx context.Context, code string) (ports.ProviderToken, error) {
	f.mu.Lock()
	f.Calls = append(f.Calls, code)
	f.mu.Unlock()

	if f.ExchangeFunc != nil {
		return f.ExchangeFunc(ctx, code)
	}
	return ports.ProviderToken{
		AccessToken:  "access-" + code,
		RefreshToken: "refresh-" + code,
	}, nil
}

// CallCount reports how many times Exchange was invoked.
func (f *FakeExchanger) CallCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.Calls)
}
