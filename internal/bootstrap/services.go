package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/target/dialtone/config"
	"github.com/target/dialtone/internal/adapters/google"
	redisadapter "github.com/target/dialtone/internal/adapters/redis"
	"github.com/target/dialtone/internal/capability"
	"github.com/target/dialtone/internal/data"
	"github.com/target/dialtone/internal/service"
)

// ServiceDeps contains dependencies needed to create services.
type ServiceDeps struct {
	Config      *config.AppConfig
	DB          *sql.DB
	RedisClient redis.UniversalClient
	Logger      *slog.Logger
}

// Services holds the wired application services.
type Services struct {
	Login        *service.LoginService
	Sessions     *service.SessionManager
	Tokens       *service.TokenService
	Capabilities *capability.Registry
}

// NewServices wires repositories, adapters, and services together.
func NewServices(ctx context.Context, deps *ServiceDeps) (*Services, error) {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cfg := deps.Config

	users := data.NewUserRepo(deps.DB)
	tokens := data.NewTokenRepo(deps.DB)
	sessionStore := redisadapter.NewSessionStore(deps.RedisClient)

	sessions := service.NewSessionManager(service.SessionManagerOptions{
		Sessions:    sessionStore,
		TTL:         cfg.Auth.Session.TTL,
		RememberTTL: cfg.Auth.Session.RememberTTL,
		Logger:      logger,
	})

	login := service.NewLoginService(service.LoginServiceOptions{
		Credentials: users,
		Sessions:    sessions,
	})

	// Account linking is optional; without Google credentials the callback
	// route is simply not registered.
	var tokenSvc *service.TokenService
	if cfg.Auth.Google.ClientID != "" {
		exchanger, err := google.NewExchanger(ctx, google.Config{
			ClientID:        cfg.Auth.Google.ClientID,
			ClientSecret:    cfg.Auth.Google.ClientSecret,
			RedirectURL:     cfg.Auth.Google.RedirectURL,
			Scope:           cfg.Auth.Google.Scope,
			ExchangeTimeout: cfg.Auth.Google.ExchangeTimeout,
			VerifyIDToken:   cfg.Auth.Google.VerifyIDToken,
		})
		if err != nil {
			return nil, fmt.Errorf("create google exchanger: %w", err)
		}
		tokenSvc = service.NewTokenService(service.TokenServiceOptions{
			Exchanger: exchanger,
			Tokens:    tokens,
			Logger:    logger,
		})
	} else {
		logger.Warn("google oauth not configured, account linking disabled")
	}

	return &Services{
		Login:        login,
		Sessions:     sessions,
		Tokens:       tokenSvc,
		Capabilities: capability.DefaultRegistry(),
	}, nil
}
