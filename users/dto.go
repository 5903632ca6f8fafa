// Package users encapsulates user profile management for authenticated
// users: profile fetch, profile update (including password changes), and
// account deletion.
package users

import "time"

// Profile is the stored profile minus the password hash.
type Profile struct {
	ID        int       `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// UpdateProfileRequest carries the fields a user may change. Omitted fields
// keep their prior value; a supplied password is re-hashed before storage.
type UpdateProfileRequest struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Password *string `json:"password,omitempty"`
}

// ProfileResponse is the envelope for profile reads and updates.
type ProfileResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	User    *Profile `json:"user"`
}

// DeleteResponse is the envelope for account deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
