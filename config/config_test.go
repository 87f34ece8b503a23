package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSessionConfig_Sanitize_Defaults(t *testing.T) {
	s := SessionConfig{}
	s.Sanitize()

	assert.Equal(t, 12*time.Hour, s.TTL)
	assert.Equal(t, 720*time.Hour, s.RememberTTL)
}

func TestSessionConfig_Sanitize_RememberMustOutliveShort(t *testing.T) {
	s := SessionConfig{
		TTL:         24 * time.Hour,
		RememberTTL: time.Hour,
	}
	s.Sanitize()

	assert.Greater(t, s.RememberTTL, s.TTL)
}

func TestAuthConfig_Sanitize_BcryptCostClamped(t *testing.T) {
	tests := []struct {
		name string
		cost int
		want int
	}{
		{name: "too low", cost: 4, want: 10},
		{name: "too high", cost: 31, want: 10},
		{name: "in range", cost: 12, want: 12},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := AuthConfig{BcryptCost: tt.cost}
			a.Sanitize()
			assert.Equal(t, tt.want, a.BcryptCost)
		})
	}
}

func TestHTTPConfig_Sanitize_PublicSuffixCookieDomain(t *testing.T) {
	h := HTTPConfig{CookieDomain: "com"}
	h.Sanitize()
	assert.Empty(t, h.CookieDomain)

	h = HTTPConfig{CookieDomain: "app.example.com"}
	h.Sanitize()
	assert.Equal(t, "app.example.com", h.CookieDomain)
}

func TestAppConfig_Sanitize_DetectsDevMode(t *testing.T) {
	t.Setenv("NODE_ENV", "development")

	cfg := AppConfig{}
	cfg.Sanitize()

	assert.True(t, cfg.IsDev)
}
