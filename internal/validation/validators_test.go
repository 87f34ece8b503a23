package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPhone(t *testing.T) {
	tests := []struct {
		name  string
		phone string
		valid bool
	}{
		{name: "e164", phone: "+15555550100", valid: true},
		{name: "dashed", phone: "555-555-0100", valid: true},
		{name: "parenthesized", phone: "(555) 555-0100", valid: true},
		{name: "leading and trailing space", phone: " +15555550100 ", valid: true},
		{name: "empty", phone: "", valid: false},
		{name: "letters", phone: "not-a-phone", valid: false},
		{name: "too few digits", phone: "+12345", valid: false},
		{name: "separators only", phone: "+--()..--()", valid: false},
		{name: "too long", phone: "+1234567890123456789012345", valid: false},
		{name: "script injection", phone: "<script>1</script>", valid: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := Phone(tt.phone)
			if tt.valid {
				assert.Empty(t, msg)
			} else {
				assert.Equal(t, "Phone is invalid", msg)
			}
		})
	}
}

func TestPassword(t *testing.T) {
	assert.Equal(t, "Password is required", Password(""))
	assert.Equal(t, "Password is too short", Password("1234567"))
	assert.Empty(t, Password("12345678"))
	assert.Empty(t, Password("correct horse battery staple"))
}

func TestPassword_MultibyteRunesCountOnce(t *testing.T) {
	// 8 runes, more than 8 bytes.
	assert.Empty(t, Password("pässwörd"))
	assert.Equal(t, "Password is too short", Password("pässwör"))
}

func TestSafeRedirect(t *testing.T) {
	tests := []struct {
		name      string
		candidate string
		want      string
	}{
		{name: "empty falls back", candidate: "", want: "/dashboard"},
		{name: "local path allowed", candidate: "/settings", want: "/settings"},
		{name: "nested path allowed", candidate: "/settings/profile?tab=2", want: "/settings/profile?tab=2"},
		{name: "protocol relative rejected", candidate: "//evil.com", want: "/dashboard"},
		{name: "backslash variant rejected", candidate: "/\\evil.com", want: "/dashboard"},
		{name: "absolute url rejected", candidate: "https://evil.com", want: "/dashboard"},
		{name: "scheme smuggling rejected", candidate: "/redirect?to=javascript:alert(1)", want: "/dashboard"},
		{name: "relative without slash rejected", candidate: "settings", want: "/dashboard"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SafeRedirect(tt.candidate, "/dashboard"))
		})
	}
}
