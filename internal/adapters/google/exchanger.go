// Package google exchanges OAuth2 authorization codes against Google's
// token endpoint.
package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	gooidc "github.com/coreos/go-oidc/v3/oidc"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"

	"github.com/target/dialtone/internal/ports"
)

// Issuer is Google's OIDC issuer, used to verify the id_token returned
// alongside the access token.
const Issuer = "https://accounts.google.com"

// Exchanger implements ports.TokenExchanger against Google.
type Exchanger struct {
	config     *oauth2.Config
	timeout    time.Duration
	httpClient *http.Client
	verifier   *gooidc.IDTokenVerifier
}

// Config holds configuration for the Google exchanger.
type Config struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	Scope        string

	// ExchangeTimeout bounds the outbound token-endpoint call.
	ExchangeTimeout time.Duration

	// VerifyIDToken enables verification of the id_token in the exchange
	// response against Google's issuer. Requires a discovery fetch at
	// construction time.
	VerifyIDToken bool

	// HTTPClient overrides the client used for outbound calls (optional).
	HTTPClient *http.Client

	// Endpoint overrides Google's OAuth2 endpoint. Tests point this at a
	// local server; production leaves it zero.
	Endpoint oauth2.Endpoint
}

// NewExchanger creates a Google token exchanger.
func NewExchanger(ctx context.Context, cfg Config) (*Exchanger, error) {
	if cfg.ClientID == "" {
		return nil, errors.New("client ID is required")
	}
	if cfg.ClientSecret == "" {
		return nil, errors.New("client secret is required")
	}
	if cfg.RedirectURL == "" {
		return nil, errors.New("redirect URL is required")
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	timeout := cfg.ExchangeTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = endpoints.Google
	}

	e := &Exchanger{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       strings.Fields(cfg.Scope),
			Endpoint:     endpoint,
		},
		timeout:    timeout,
		httpClient: httpClient,
	}

	if cfg.VerifyIDToken {
		octx := gooidc.ClientContext(ctx, httpClient)
		provider, err := gooidc.NewProvider(octx, Issuer)
		if err != nil {
			return nil, fmt.Errorf("oidc new provider: %w", err)
		}
		e.verifier = provider.Verifier(&gooidc.Config{ClientID: cfg.ClientID})
	}

	return e, nil
}

// Exchange performs a single outbound call exchanging the authorization code
// for tokens. It is never retried: authorization codes are single-use, so a
// retry could not succeed anyway.
func (e *Exchanger) Exchange(ctx context.Context, code string) (ports.ProviderToken, error) {
	if code == "" {
		return ports.ProviderToken{}, errors.New("authorization code is required")
	}

	ctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, e.httpClient)

	token, err := e.config.Exchange(ctx, code)
	if err != nil {
		return ports.ProviderToken{}, fmt.Errorf("exchange code for token: %w", err)
	}

	if e.verifier != nil {
		if verifyErr := e.verifyIDToken(ctx, token); verifyErr != nil {
			return ports.ProviderToken{}, verifyErr
		}
	}

	return ports.ProviderToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		Expiry:       token.Expiry,
	}, nil
}

// verifyIDToken checks the id_token shipped with the token response. Google
// always includes one for openid-scoped requests; a missing or forged token
// fails the whole exchange.
func (e *Exchanger) verifyIDToken(ctx context.Context, tok *oauth2.Token) error {
	raw, ok := tok.Extra("id_token").(string)
	if !ok || raw == "" {
		return errors.New("missing id_token in token response")
	}
	if _, err := e.verifier.Verify(ctx, raw); err != nil {
		return fmt.Errorf("verify id_token: %w", err)
	}
	return nil
}
