package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/user/blogapi-go/config"
)

// Sentinel errors returned by TokenService.Verify. The middleware maps
// these to distinct user-facing 401 messages.
var (
	// ErrTokenExpired means the token was well-formed and correctly signed
	// but its expiry instant has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrTokenInvalid means the signature did not match or the token
	// structure is malformed.
	ErrTokenInvalid = errors.New("token is invalid")
)

// IdentityClaims is the JWT payload: a stable user identifier plus the
// display name and email, alongside the registered claims (expiry, issued
// at). Tokens are stateless bearer credentials; expiry is the only
// invalidation mechanism.
type IdentityClaims struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed, time-limited identity tokens.
type TokenService struct {
	secret   []byte
	duration time.Duration
}

// NewTokenService creates a TokenService from auth configuration.
func NewTokenService(cfg config.AuthConfig) *TokenService {
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		duration: cfg.TokenDuration,
	}
}

// Issue signs a token embedding the user's identity with an absolute expiry
// of TokenDuration from now. It returns the signed token and its expiry.
func (s *TokenService) Issue(user *User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.duration)
	claims := &IdentityClaims{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Subject:   fmt.Sprintf("%d", user.ID),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, expiresAt, nil
}

// Verify parses and validates a token string, returning its identity claims.
// It fails with ErrTokenExpired when the expiry instant has passed, or
// ErrTokenInvalid for a bad signature or malformed structure.
func (s *TokenService) Verify(tokenString string) (*IdentityClaims, error) {
	claims := &IdentityClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", ErrTokenInvalid, err)
	}
	if !token.Valid {
		return nil, ErrTokenInvalid
	}
	if claims.UserID == 0 {
		return nil, fmt.Errorf("%w: user_id claim is missing", ErrTokenInvalid)
	}
	return claims, nil
}
