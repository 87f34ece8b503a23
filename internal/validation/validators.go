// Package validation contains pure input validators shared by the login
// flow. Validators return an empty string when the value is acceptable and
// a user-facing message otherwise; they never touch the network or a store.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// MinPasswordLength is the minimum accepted password length.
const MinPasswordLength = 8

// rePhone matches the recognized phone-number shape: an optional leading
// "+", then digits with common separators. Digit count is checked
// separately so "+--()" cannot sneak through.
var (
	rePhone  = regexp.MustCompile(`^\+?[0-9\s\-().]{6,24}$`)
	reDigits = regexp.MustCompile(`[0-9]`)
)

// Phone validates the login phone identifier. Returns an empty string when
// valid, otherwise a user-facing message.
func Phone(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || !rePhone.MatchString(v) {
		return "Phone is invalid"
	}
	if len(reDigits.FindAllString(v, -1)) < 6 {
		return "Phone is invalid"
	}
	return ""
}

// Password validates the login password. A missing password and a too-short
// password produce distinct messages.
func Password(v string) string {
	if v == "" {
		return "Password is required"
	}
	if utf8.RuneCountInString(v) < MinPasswordLength {
		return "Password is too short"
	}
	return ""
}

// SafeRedirect returns candidate when it is a same-origin relative path and
// fallback otherwise. A safe candidate begins with exactly one "/" (so
// protocol-relative "//host" is rejected) and carries no scheme. Attacker
// controlled input goes through here before any redirect is issued.
func SafeRedirect(candidate, fallback string) string {
	if candidate == "" {
		return fallback
	}
	if !strings.HasPrefix(candidate, "/") || strings.HasPrefix(candidate, "//") {
		return fallback
	}
	// "/\" is treated as protocol-relative by some browsers.
	if strings.HasPrefix(candidate, "/\\") {
		return fallback
	}
	// A ":" before the first "/" would make the target a scheme; reject any
	// colon in the path outright to stay conservative.
	if strings.Contains(candidate, ":") {
		return fallback
	}
	return candidate
}
