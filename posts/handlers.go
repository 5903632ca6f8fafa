package posts

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogapi-go/api"
	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// PostHandlers provides HTTP handlers for posts.
type PostHandlers struct {
	service PostService
}

// NewPostHandlers creates new PostHandlers.
func NewPostHandlers(service PostService) *PostHandlers {
	return &PostHandlers{service: service}
}

// HandleCreate godoc
// @Summary Create a post
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body CreatePostRequest true "Post details"
// @Success 201 {object} PostResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Router /api/posts [post]
func (h *PostHandlers) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		var req CreatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		post, err := h.service.Create(r.Context(), claims.UserID, req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusCreated, PostResponse{
			Success: true,
			Message: "Post created successfully",
			Post:    post,
		})
	}
}

// HandleList godoc
// @Summary List all posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} PostListResponse
// @Router /api/posts [get]
func (h *PostHandlers) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.List(r.Context())
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, PostListResponse{
			Success: true,
			Count:   len(list),
			Posts:   list,
		})
	}
}

// HandleGet godoc
// @Summary Get one post with its comments
// @Tags posts
// @Produce json
// @Success 200 {object} PostDetailResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [get]
func (h *PostHandlers) HandleGet() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid post id", err))
			return
		}

		detail, err := h.service.Get(r.Context(), postID)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, PostDetailResponse{Success: true, Post: detail})
	}
}

// HandleUpdate godoc
// @Summary Update a post (owner only)
// @Tags posts
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param postBody body UpdatePostRequest true "Fields to update"
// @Success 200 {object} PostResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [put]
func (h *PostHandlers) HandleUpdate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		postID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid post id", err))
			return
		}

		var req UpdatePostRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		post, err := h.service.Update(r.Context(), postID, claims.UserID, req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, PostResponse{
			Success: true,
			Message: "Post updated successfully",
			Post:    post,
		})
	}
}

// HandleDelete godoc
// @Summary Delete a post (owner only)
// @Tags posts
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DeleteResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/posts/{id} [delete]
func (h *PostHandlers) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		postID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid post id", err))
			return
		}

		if err := h.service.Delete(r.Context(), postID, claims.UserID); err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, DeleteResponse{
			Success: true,
			Message: "Post deleted successfully",
		})
	}
}
