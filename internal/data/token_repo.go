package data

import (
	"context"
	"database/sql"

	"github.com/jackc/pgx/v5"

	"github.com/target/dialtone/internal/data/pgxutil"
	domainauth "github.com/target/dialtone/internal/domain/auth"
	apperrors "github.com/target/dialtone/internal/errors"
)

// TokenRepo persists OAuth provider tokens. It implements ports.TokenStore.
type TokenRepo struct {
	DB *sql.DB
}

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(db *sql.DB) *TokenRepo {
	return &TokenRepo{DB: db}
}

// Upsert writes the token set for (user_id, provider), replacing any prior
// row for the pair. The write is a single statement, so a failed exchange
// can never leave a half-written record behind.
func (r *TokenRepo) Upsert(ctx context.Context, tok domainauth.OAuthToken) (domainauth.OAuthToken, error) {
	var out domainauth.OAuthToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			INSERT INTO oauth_tokens (user_id, provider, access_token, refresh_token, obtained_at)
			VALUES ($1, $2, $3, $4, now())
			ON CONFLICT (user_id, provider) DO UPDATE
			SET access_token  = EXCLUDED.access_token,
			    refresh_token = EXCLUDED.refresh_token,
			    obtained_at   = EXCLUDED.obtained_at
			RETURNING user_id, provider, access_token, refresh_token, obtained_at`,
			tok.UserID, tok.Provider, tok.AccessToken, tok.RefreshToken)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.OAuthToken])
		return err
	})
	if err != nil {
		return domainauth.OAuthToken{}, apperrors.MapDBError(err)
	}
	return out, nil
}

// Get fetches the token set for (user_id, provider).
func (r *TokenRepo) Get(ctx context.Context, userID, provider string) (domainauth.OAuthToken, error) {
	var out domainauth.OAuthToken
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, err := conn.Query(ctx, `
			SELECT user_id, provider, access_token, refresh_token, obtained_at
			FROM oauth_tokens
			WHERE user_id = $1 AND provider = $2`, userID, provider)
		if err != nil {
			return err
		}
		defer rows.Close()
		out, err = pgx.CollectOneRow(rows, pgx.RowToStructByName[domainauth.OAuthToken])
		return err
	})
	if err != nil {
		return domainauth.OAuthToken{}, apperrors.MapDBError(err)
	}
	return out, nil
}
