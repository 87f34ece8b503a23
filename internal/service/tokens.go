package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
	"github.com/target/dialtone/internal/ports"
)

// TokenServiceOptions groups dependencies for TokenService.
type TokenServiceOptions struct {
	Exchanger ports.TokenExchanger
	Tokens    ports.TokenStore
	Logger    *slog.Logger
}

// TokenService completes OAuth authorization-code exchanges and binds the
// resulting provider tokens to a signed-in user.
type TokenService struct {
	exchanger ports.TokenExchanger
	tokens    ports.TokenStore
	logger    *slog.Logger
}

// NewTokenService constructs a new TokenService.
func NewTokenService(opts TokenServiceOptions) *TokenService {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &TokenService{
		exchanger: opts.Exchanger,
		tokens:    opts.Tokens,
		logger:    logger,
	}
}

// LinkGoogleAccount exchanges the authorization code and persists the
// resulting token set for (userID, google), superseding any prior set.
//
// A missing code fails before any outbound call. Provider failures are
// terminal for the request: authorization codes are single-use, so nothing
// is retried. Persistence is a single-row upsert, so a failure anywhere
// leaves no partial token record.
func (s *TokenService) LinkGoogleAccount(ctx context.Context, userID, code string) (domainauth.OAuthToken, error) {
	if userID == "" {
		return domainauth.OAuthToken{}, apperrors.Unauthenticated("a signed-in user is required")
	}
	if code == "" {
		return domainauth.OAuthToken{}, apperrors.ValidationField("code", "no code")
	}

	provTok, err := s.exchanger.Exchange(ctx, code)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return domainauth.OAuthToken{}, apperrors.Wrap(err, apperrors.ErrCodeTimeout, "token exchange timed out")
		}
		return domainauth.OAuthToken{}, apperrors.Wrap(err, apperrors.ErrCodeExchange, "token exchange failed")
	}

	tok, err := s.tokens.Upsert(ctx, domainauth.OAuthToken{
		UserID:       userID,
		Provider:     domainauth.ProviderGoogle,
		AccessToken:  provTok.AccessToken,
		RefreshToken: provTok.RefreshToken,
		ObtainedAt:   time.Now(),
	})
	if err != nil {
		return domainauth.OAuthToken{}, apperrors.Wrap(err, apperrors.ErrCodeInfrastructure, "persist provider tokens")
	}

	s.logger.InfoContext(ctx, "linked provider account",
		slog.String("user_id", userID),
		slog.String("provider", domainauth.ProviderGoogle),
	)

	return tok, nil
}
