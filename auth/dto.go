package auth

import "time"

// RegisterRequest is the registration payload.
type RegisterRequest struct {
	Username string `json:"username" example:"newuser"`
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// LoginRequest is the login payload. Login is by email only.
type LoginRequest struct {
	Email    string `json:"email" example:"user@example.com"`
	Password string `json:"password" example:"strongpassword123"`
}

// PublicProfile is the user projection returned by registration: never the
// password, hashed or otherwise.
type PublicProfile struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
}

// RegisterResponse is the envelope for a successful registration.
type RegisterResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	User    *PublicProfile `json:"user"`
}

// LoginResponse is the envelope for a successful login: the bearer token
// alongside the public profile.
type LoginResponse struct {
	Success bool         `json:"success"`
	Message string       `json:"message"`
	Token   string       `json:"token"`
	User    *UserSummary `json:"user"`
}
