package auth

import (
	"context"
)

// contextKey is a private type for context keys so values stored by this
// package cannot collide with other packages.
type contextKey string

const claimsContextKey contextKey = "auth_claims"

// NewContextWithClaims returns a child context carrying the verified
// identity claims. The middleware is the only writer.
func NewContextWithClaims(ctx context.Context, claims *IdentityClaims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// ClaimsFromContext extracts the verified identity from the context.
// The second return value is false when the request did not pass through
// the auth middleware.
func ClaimsFromContext(ctx context.Context) (*IdentityClaims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*IdentityClaims)
	return claims, ok
}
