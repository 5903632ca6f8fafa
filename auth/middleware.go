package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/user/blogapi-go/api"
	"github.com/user/blogapi-go/apperror"
)

// Middleware returns the auth gate: it extracts the bearer credential from
// the Authorization header, verifies it with the TokenService, and attaches
// the verified identity to the request context. Requests without a valid
// credential are short-circuited with 401. The gate never mutates state.
func Middleware(tokens *TokenService) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
				return
			}

			// Expected format: "Bearer <token>".
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
				api.WriteError(w, r, apperror.NewAuthError("Invalid token format. Use: Bearer <token>", nil))
				return
			}

			claims, err := tokens.Verify(parts[1])
			if err != nil {
				switch {
				case errors.Is(err, ErrTokenExpired):
					api.WriteError(w, r, apperror.NewAuthError("Token expired. Please login again.", err))
				case errors.Is(err, ErrTokenInvalid):
					api.WriteError(w, r, apperror.NewAuthError("Invalid token", err))
				default:
					api.WriteError(w, r, apperror.NewInternalError("Authentication failed", err))
				}
				return
			}

			ctx := NewContextWithClaims(r.Context(), claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
