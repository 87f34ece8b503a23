// Package auth contains domain-level types for users, sessions, and linked
// provider tokens. It is pure and free of framework/adapter concerns.
package auth

import "time"

// ProviderGoogle is the only supported OAuth provider.
const ProviderGoogle = "google"

// User is an identity record. Users are created out-of-band (registration
// is not part of this service); this core only reads them and attaches
// provider tokens.
type User struct {
	ID           string    `db:"id"`
	Phone        string    `db:"phone"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at"`
}

// Session is the server-side record persisted for an authenticated user.
// ID is an opaque URL-safe random token; it is the only credential the
// client holds. Remember controls whether the client cookie persists
// across browser restarts.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Remember  bool      `json:"remember"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the session has passed its expiry at the given time.
func (s Session) Expired(now time.Time) bool { return now.After(s.ExpiresAt) }

// OAuthToken is a provider credential set bound to a user. At most one
// active set exists per (UserID, Provider); a new exchange supersedes the
// prior one.
type OAuthToken struct {
	UserID       string    `db:"user_id"`
	Provider     string    `db:"provider"`
	AccessToken  string    `db:"access_token"  json:"-"`
	RefreshToken string    `db:"refresh_token" json:"-"`
	ObtainedAt   time.Time `db:"obtained_at"`
}
