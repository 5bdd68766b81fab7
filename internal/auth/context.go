package auth

import (
	"context"

	"github.com/labstack/echo/v4"
)

// Identity is the authenticated caller injected by the middleware.
type Identity struct {
	UserID string
	Name   string
	Email  string
}

type ctxKey struct{}

// ClaimsContextKey is the echo context key holding the verified *Claims.
const ClaimsContextKey = "auth.claims"

// WithIdentity returns a child context carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// IdentityFromContext returns the identity stored by the middleware.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// ClaimsFrom returns the verified claims of the current request.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(ClaimsContextKey).(*Claims)
	return claims, ok
}
