// Package ports defines interfaces (hexagonal ports) for auth-related behavior.
// Implementations live in internal/adapters and internal/data; orchestration
// in internal/service.
package ports

import (
	"context"
	"errors"
	"time"

	domainauth "github.com/target/dialtone/internal/domain/auth"
)

// ErrSessionNotFound is returned by SessionStore.Get when no session exists
// for the given id.
var ErrSessionNotFound = errors.New("session not found")

// CredentialStore verifies submitted credentials against stored records.
type CredentialStore interface {
	// Verify looks up the user by phone and compares the password against the
	// stored hash. It returns (nil, nil) both for an unknown phone and for a
	// wrong password so callers cannot enumerate accounts. A non-nil error
	// means the store itself failed, never that the credentials were wrong.
	Verify(ctx context.Context, phone, password string) (*domainauth.User, error)
}

// SessionStore persists and retrieves user sessions.
type SessionStore interface {
	Save(ctx context.Context, sess domainauth.Session) error
	Get(ctx context.Context, id string) (domainauth.Session, error)
	Delete(ctx context.Context, id string) error
}

// ProviderToken is the raw result of an authorization-code exchange.
type ProviderToken struct {
	AccessToken  string
	RefreshToken string
	Expiry       time.Time
}

// TokenExchanger exchanges an OAuth authorization code for provider tokens.
// Codes are single-use; implementations must not retry.
type TokenExchanger interface {
	Exchange(ctx context.Context, code string) (ProviderToken, error)
}

// TokenStore persists provider tokens bound to a user. Upsert replaces any
// prior token set for the same (userID, provider) pair in a single write.
type TokenStore interface {
	Upsert(ctx context.Context, tok domainauth.OAuthToken) (domainauth.OAuthToken, error)
	Get(ctx context.Context, userID, provider string) (domainauth.OAuthToken, error)
}
