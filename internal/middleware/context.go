package middleware

import "context"

type userKey struct{}

// WithUser returns a context carrying the signed-in user's email.
func WithUser(ctx context.Context, email string) context.Context {
	return context.WithValue(ctx, userKey{}, email)
}

// CurrentUser retrieves the signed-in user's email from the request
// context. Empty string means the request authenticated via API key.
func CurrentUser(ctx context.Context) string {
	if email, ok := ctx.Value(userKey{}).(string); ok {
		return email
	}
	return ""
}
