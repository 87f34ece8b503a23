package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
	"github.com/target/dialtone/internal/ports"
)

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_id"

// sessionTokenBytes is the entropy of a session token before encoding.
const sessionTokenBytes = 32

// SessionManagerOptions groups dependencies for SessionManager.
type SessionManagerOptions struct {
	Sessions ports.SessionStore

	// TTL is the server-side lifetime of a session without "remember me".
	TTL time.Duration
	// RememberTTL is the lifetime of a "remember me" session.
	RememberTTL time.Duration

	Logger *slog.Logger
}

// SessionManager issues, resolves, and destroys session tokens. The inbound
// request is threaded explicitly; there is no ambient request state.
type SessionManager struct {
	sessions    ports.SessionStore
	ttl         time.Duration
	rememberTTL time.Duration
	logger      *slog.Logger
}

// NewSessionManager constructs a new SessionManager.
func NewSessionManager(opts SessionManagerOptions) *SessionManager {
	ttl := opts.TTL
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	rememberTTL := opts.RememberTTL
	if rememberTTL <= ttl {
		rememberTTL = 30 * 24 * time.Hour
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionManager{
		sessions:    opts.Sessions,
		ttl:         ttl,
		rememberTTL: rememberTTL,
		logger:      logger,
	}
}

// Create mints an unguessable session token bound to userID and persists it.
// A remembered session lives rememberTTL; otherwise ttl, paired with a
// browser-session cookie at the transport layer.
func (m *SessionManager) Create(ctx context.Context, userID string, remember bool) (domainauth.Session, error) {
	if userID == "" {
		return domainauth.Session{}, errors.New("user ID is required")
	}

	token, err := generateSessionToken()
	if err != nil {
		return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInfrastructure, "generate session token")
	}

	now := time.Now()
	ttl := m.ttl
	if remember {
		ttl = m.rememberTTL
	}

	session := domainauth.Session{
		ID:        token,
		UserID:    userID,
		Remember:  remember,
		IssuedAt:  now,
		ExpiresAt: now.Add(ttl),
	}

	if saveErr := m.sessions.Save(ctx, session); saveErr != nil {
		return domainauth.Session{}, apperrors.Wrap(saveErr, apperrors.ErrCodeInfrastructure, "save session")
	}

	return session, nil
}

// SessionFromRequest resolves the session referenced by the request cookie.
// A missing, unknown, or expired token maps to an Unauthenticated error;
// store failures stay distinct as Infrastructure errors.
func (m *SessionManager) SessionFromRequest(ctx context.Context, r *http.Request) (*domainauth.Session, error) {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil, apperrors.Unauthenticated("no session")
	}

	sess, err := m.sessions.Get(ctx, cookie.Value)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, apperrors.Unauthenticated("no session")
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInfrastructure, "resolve session")
	}

	// The store enforces expiry through TTLs, but an expired session must
	// never read as valid even if a stale record survives.
	if sess.Expired(time.Now()) {
		if deleteErr := m.sessions.Delete(ctx, sess.ID); deleteErr != nil {
			m.logger.WarnContext(ctx, "delete expired session failed", "error", deleteErr)
		}
		return nil, apperrors.Unauthenticated("session expired")
	}

	return &sess, nil
}

// CurrentUserID returns the user id bound to the request's session, or
// ("", false) when there is none. Absence is a normal outcome; store
// failures are logged and treated as no session.
func (m *SessionManager) CurrentUserID(ctx context.Context, r *http.Request) (string, bool) {
	sess, err := m.SessionFromRequest(ctx, r)
	if err != nil {
		if !apperrors.IsUnauthenticated(err) {
			m.logger.ErrorContext(ctx, "session lookup failed", "error", err)
		}
		return "", false
	}
	return sess.UserID, true
}

// RequireUserID returns the user id bound to the request's session, or an
// Unauthenticated error callers can turn into a login redirect. Store
// failures surface as Infrastructure errors, never as "not signed in".
func (m *SessionManager) RequireUserID(ctx context.Context, r *http.Request) (string, error) {
	sess, err := m.SessionFromRequest(ctx, r)
	if err != nil {
		return "", err
	}
	return sess.UserID, nil
}

// Destroy revokes the session referenced by the request, if any. Clearing
// the client cookie is the transport layer's half of logout.
func (m *SessionManager) Destroy(ctx context.Context, r *http.Request) error {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return nil // Nothing to destroy
	}

	if deleteErr := m.sessions.Delete(ctx, cookie.Value); deleteErr != nil {
		return apperrors.Wrap(deleteErr, apperrors.ErrCodeInfrastructure, "delete session")
	}
	return nil
}

// generateSessionToken creates a cryptographically secure URL-safe token.
func generateSessionToken() (string, error) {
	b := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("read random: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
