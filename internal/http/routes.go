package httpx

import (
	"log/slog"
	"net/http"

	"github.com/target/dialtone/internal/capability"
	"github.com/target/dialtone/internal/service"
)

// RouterServices holds all the services needed by the HTTP router.
type RouterServices struct {
	Login        *service.LoginService
	Sessions     *service.SessionManager
	Tokens       *service.TokenService
	Capabilities *capability.Registry
	CookieDomain string
	Logger       *slog.Logger
}

// NewRouter creates and configures a new HTTP router.
func NewRouter(services RouterServices) http.Handler {
	mux := http.NewServeMux()

	logger := services.Logger
	if logger == nil {
		logger = slog.Default()
	}

	registry := services.Capabilities
	if registry == nil {
		registry = capability.DefaultRegistry()
	}

	authHandlers := &AuthHandlers{
		Login:        services.Login,
		Sessions:     services.Sessions,
		CookieDomain: services.CookieDomain,
		Logger:       logger,
	}
	capabilityHandlers := &CapabilityHandlers{Registry: registry}

	mux.Handle("GET /auth/login", http.HandlerFunc(authHandlers.LoginPage))
	mux.Handle("POST /auth/login", http.HandlerFunc(authHandlers.SubmitLogin))
	mux.Handle("POST /auth/logout", http.HandlerFunc(authHandlers.Logout))
	mux.Handle("GET /auth/status", http.HandlerFunc(authHandlers.Status))

	if services.Tokens != nil {
		oauthHandlers := &OAuthHandlers{
			Tokens:   services.Tokens,
			Sessions: services.Sessions,
			Logger:   logger,
		}
		mux.Handle("GET /auth/google/callback", http.HandlerFunc(oauthHandlers.GoogleCallback))
	}

	requireAuth := RequireAuth(services.Sessions)
	mux.Handle("GET /capabilities", requireAuth(http.HandlerFunc(capabilityHandlers.List)))
	mux.Handle("POST /capabilities/{name}", requireAuth(http.HandlerFunc(capabilityHandlers.Invoke)))

	mux.Handle("GET /healthz", http.HandlerFunc(healthHandler))
	mux.Handle("HEAD /healthz", http.HandlerFunc(healthHandler))

	return Recover(logger)(Logging(logger)(mux))
}
