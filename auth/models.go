// Package auth is responsible for authentication and authorization logic:
// user registration, login, password hashing, token issuance and
// verification, and the request middleware that gates protected routes.
package auth

import "time"

// User represents a user record as stored in the database.
// The hashed password never leaves the server: `json:"-"` keeps it out of
// every response.
type User struct {
	ID             int       `json:"id"`
	Username       string    `json:"username"`
	Email          string    `json:"email"`
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// UserSummary is the public author projection joined onto posts and
// comments: id, username and email only.
type UserSummary struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Summary returns the public projection of a user.
func (u *User) Summary() *UserSummary {
	return &UserSummary{ID: u.ID, Username: u.Username, Email: u.Email}
}
