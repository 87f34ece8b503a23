package config

import "time"

// SessionConfig controls session token lifetimes.
type SessionConfig struct {
	// TTL is the server-side lifetime of a session created without
	// "remember me". The client receives a browser-session cookie (no
	// Max-Age), so this is the upper bound rather than the usual case.
	TTL time.Duration `env:"TTL" envDefault:"12h"`

	// RememberTTL is the lifetime of a session created with "remember me".
	RememberTTL time.Duration `env:"REMEMBER_TTL" envDefault:"720h"`
}

// Sanitize applies guardrails to session configuration values.
func (s *SessionConfig) Sanitize() {
	if s.TTL <= 0 {
		s.TTL = 12 * time.Hour
	}
	if s.RememberTTL <= s.TTL {
		s.RememberTTL = 720 * time.Hour
	}
}

// GoogleOAuthConfig contains Google OAuth2 configuration for linking
// provider accounts to signed-in users.
type GoogleOAuthConfig struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL"  envDefault:"http://localhost:8080/auth/google/callback"`
	Scope        string `env:"SCOPE"         envDefault:"openid email https://www.googleapis.com/auth/calendar.readonly"`

	// ExchangeTimeout bounds the outbound call to Google's token endpoint.
	ExchangeTimeout time.Duration `env:"EXCHANGE_TIMEOUT" envDefault:"10s"`

	// VerifyIDToken controls whether the id_token returned by the exchange
	// is verified against Google's issuer. Disable only in tests.
	VerifyIDToken bool `env:"VERIFY_ID_TOKEN" envDefault:"true"`
}

// AuthConfig groups all authentication-related configuration.
type AuthConfig struct {
	// Session configuration.
	Session SessionConfig `envPrefix:"SESSION_"`

	// Google OAuth configuration (account linking).
	Google GoogleOAuthConfig `envPrefix:"GOOGLE_"`

	// BcryptCost overrides the bcrypt cost used when hashing passwords
	// out-of-band (seeding, admin tooling). Verification reads the cost
	// from the stored hash, so this does not affect login.
	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`
}

// Sanitize applies guardrails to auth configuration values.
func (a *AuthConfig) Sanitize() {
	a.Session.Sanitize()
	if a.BcryptCost < 10 || a.BcryptCost > 15 {
		a.BcryptCost = 10
	}
	if a.Google.ExchangeTimeout <= 0 {
		a.Google.ExchangeTimeout = 10 * time.Second
	}
}
