package users

import (
	"encoding/json"
	"net/http"

	"github.com/user/blogapi-go/api"
	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// UserHandlers provides HTTP handlers for user profile management.
type UserHandlers struct {
	service *UserService
}

// NewUserHandlers creates new UserHandlers.
func NewUserHandlers(service *UserService) *UserHandlers {
	return &UserHandlers{service: service}
}

// HandleGetProfile godoc
// @Summary Get current user's profile
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/users/me [get]
func (h *UserHandlers) HandleGetProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		profile, err := h.service.GetProfile(r.Context(), claims.UserID)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, ProfileResponse{Success: true, User: profile})
	}
}

// HandleUpdateProfile godoc
// @Summary Update current user's profile
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profileBody body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/users/me [put]
func (h *UserHandlers) HandleUpdateProfile() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		var req UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		profile, err := h.service.UpdateProfile(r.Context(), claims.UserID, &req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, ProfileResponse{
			Success: true,
			Message: "Profile updated successfully",
			User:    profile,
		})
	}
}

// HandleDeleteAccount godoc
// @Summary Delete current user's account
// @Description Deletes the account along with all posts and comments owned by it.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DeleteResponse
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/users/me [delete]
func (h *UserHandlers) HandleDeleteAccount() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		if err := h.service.DeleteAccount(r.Context(), claims.UserID); err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, DeleteResponse{
			Success: true,
			Message: "Account deleted successfully",
		})
	}
}
