package httpx

import (
	"context"
	"log/slog"
	"net/http"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
	"github.com/target/dialtone/internal/service"
)

// TokenServiceInterface defines the OAuth linking operations used by the handlers.
type TokenServiceInterface interface {
	LinkGoogleAccount(ctx context.Context, userID, code string) (domainauth.OAuthToken, error)
}

// OAuthHandlers provides HTTP handlers for the provider callback.
type OAuthHandlers struct {
	Tokens   TokenServiceInterface
	Sessions SessionServiceInterface
	Logger   *slog.Logger
}

func (h *OAuthHandlers) logger() *slog.Logger {
	if h != nil && h.Logger != nil {
		return h.Logger
	}
	return slog.Default()
}

// GoogleCallback handles the OAuth callback endpoint.
// GET /auth/google/callback?code=<code>.
//
// The code is checked before anything else so a bad provider redirect fails
// fast. The caller must already hold a session; the callback links the
// provider account to that user, it does not sign anyone in.
func (h *OAuthHandlers) GoogleCallback(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	if code == "" {
		WriteJSON(w, http.StatusBadRequest, map[string]string{"error": "no code"})
		return
	}

	userID, err := h.Sessions.RequireUserID(r.Context(), r)
	if err != nil {
		WriteAppError(w, err)
		return
	}

	if _, err := h.Tokens.LinkGoogleAccount(r.Context(), userID, code); err != nil {
		h.logger().ErrorContext(r.Context(), "provider link failed",
			"error", err,
			"code", string(apperrors.GetCode(err)),
		)
		WriteAppError(w, err)
		return
	}

	http.Redirect(w, r, service.DefaultLoginRedirect, http.StatusFound)
}
