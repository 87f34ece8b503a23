package httpx

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	"github.com/target/dialtone/internal/service"
)

// LoginServiceInterface defines the login operations used by the handlers.
type LoginServiceInterface interface {
	Login(ctx context.Context, in service.LoginInput) (*service.LoginResult, error)
}

// SessionServiceInterface defines the session operations used by the handlers.
type SessionServiceInterface interface {
	SessionFromRequest(ctx context.Context, r *http.Request) (*domainauth.Session, error)
	CurrentUserID(ctx context.Context, r *http.Request) (string, bool)
	RequireUserID(ctx context.Context, r *http.Request) (string, error)
	Destroy(ctx context.Context, r *http.Request) error
}

// AuthHandlers provides HTTP handlers for login, logout, and session status.
type AuthHandlers struct {
	Login        LoginServiceInterface
	Sessions     SessionServiceInterface
	CookieDomain string
	Logger       *slog.Logger
}

func (h *AuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// LoginPage handles the login page endpoint.
// GET /auth/login.
func (h *AuthHandlers) LoginPage(w http.ResponseWriter, r *http.Request) {
	// A signed-in user has nothing to do here.
	if _, ok := h.Sessions.CurrentUserID(r.Context(), r); ok {
		http.Redirect(w, r, service.DefaultLoginRedirect, http.StatusFound)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]any{})
}

// SubmitLogin handles a login form submission.
// POST /auth/login with fields phone, password, redirectTo, remember.
func (h *AuthHandlers) SubmitLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteError(w, ErrorParams{Code: http.StatusBadRequest, ErrCode: "invalid_form", Err: err})
		return
	}

	result, err := h.Login.Login(r.Context(), service.LoginInput{
		Phone:      r.PostFormValue("phone"),
		Password:   r.PostFormValue("password"),
		RedirectTo: r.PostFormValue("redirectTo"),
		Remember:   r.PostFormValue("remember") == "on",
	})
	if err != nil {
		var fieldErrs service.FieldErrors
		if errors.As(err, &fieldErrs) {
			WriteJSON(w, http.StatusBadRequest, map[string]any{"errors": fieldErrs})
			return
		}
		h.logger().ErrorContext(r.Context(), "login failed", "error", err)
		WriteAppError(w, err)
		return
	}

	h.setSessionCookie(w, r, result.Session)
	http.Redirect(w, r, result.RedirectTo, http.StatusFound)
}

// Logout handles the logout endpoint.
// POST /auth/logout.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.Sessions.Destroy(r.Context(), r); err != nil {
		h.logger().WarnContext(r.Context(), "logout failed", "error", err)
	}

	h.clearCookie(w, r, service.SessionCookieName)
	WriteJSON(w, http.StatusOK, map[string]string{"status": "success"})
}

// Status returns the current authentication status.
// GET /auth/status.
func (h *AuthHandlers) Status(w http.ResponseWriter, r *http.Request) {
	sess, err := h.Sessions.SessionFromRequest(r.Context(), r)
	if err != nil {
		WriteJSON(w, http.StatusOK, map[string]any{"authenticated": false})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"authenticated": true,
		"user_id":       sess.UserID,
		"expires_at":    sess.ExpiresAt,
	})
}

// setSessionCookie writes the session token cookie. A remembered session gets
// an explicit expiry; otherwise the cookie lives for the browser session while
// the server-side record enforces the real TTL.
func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, sess domainauth.Session) {
	cookie := &http.Cookie{
		Name:     service.SessionCookieName,
		Value:    sess.ID,
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		SameSite: http.SameSiteLaxMode,
	}
	if sess.Remember {
		cookie.Expires = sess.ExpiresAt
		cookie.MaxAge = int(time.Until(sess.ExpiresAt).Seconds())
	}
	http.SetCookie(w, cookie)
}

// clearCookie clears a cookie by setting it to expire immediately.
// It mirrors key attributes (Secure, Path, Domain, SameSite) used when setting
// cookies to maximize compatibility across browsers during deletion.
func (h *AuthHandlers) clearCookie(w http.ResponseWriter, r *http.Request, name string) {
	http.SetCookie(w, &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Domain:   h.CookieDomain,
		HttpOnly: true,
		Secure:   isSecureRequest(r),
		MaxAge:   -1,
		Expires:  time.Unix(0, 0).UTC(),
		SameSite: http.SameSiteLaxMode,
	})
}

// isSecureRequest reports whether the request arrived over TLS, directly or
// behind a terminating proxy.
func isSecureRequest(r *http.Request) bool {
	return r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https")
}
