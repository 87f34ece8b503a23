package httpx

import "context"

// userIDKey is an unexported context key type to avoid collisions across packages.
type userIDKey struct{}

// SetUserIDInContext returns a child context carrying the authenticated user id.
// If userID is empty, the original ctx is returned unchanged.
func SetUserIDInContext(ctx context.Context, userID string) context.Context {
	if userID == "" {
		return ctx
	}
	return context.WithValue(ctx, userIDKey{}, userID)
}

// UserIDFromContext returns the authenticated user id from context and a
// boolean indicating presence.
func UserIDFromContext(ctx context.Context) (string, bool) {
	if id, ok := ctx.Value(userIDKey{}).(string); ok && id != "" {
		return id, true
	}
	return "", false
}
