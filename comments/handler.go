package comments

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogapi-go/api"
	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// CommentHandler handles HTTP requests for comments.
type CommentHandler struct {
	service CommentService
}

// NewCommentHandler creates a new CommentHandler.
func NewCommentHandler(service CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

// HandleCreate godoc
// @Summary Create a comment on a post
// @Tags comments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param commentBody body CreateCommentRequest true "Comment details"
// @Success 201 {object} CommentResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/comments [post]
func (h *CommentHandler) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		var req CreateCommentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		comment, err := h.service.Create(r.Context(), claims.UserID, req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusCreated, CommentResponse{
			Success: true,
			Message: "Comment created successfully",
			Comment: comment,
		})
	}
}

// HandleListByPost godoc
// @Summary List a post's comments, oldest first
// @Tags comments
// @Produce json
// @Success 200 {object} CommentListResponse
// @Router /api/comments/post/{postId} [get]
func (h *CommentHandler) HandleListByPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := strconv.Atoi(chi.URLParam(r, "postId"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid post id", err))
			return
		}

		list, err := h.service.ListByPost(r.Context(), postID)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, CommentListResponse{
			Success:  true,
			Count:    len(list),
			Comments: list,
		})
	}
}

// HandleDelete godoc
// @Summary Delete a comment (owner only)
// @Tags comments
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DeleteResponse
// @Failure 403 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/comments/{id} [delete]
func (h *CommentHandler) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := auth.ClaimsFromContext(r.Context())
		if !ok {
			api.WriteError(w, r, apperror.NewAuthError("No token provided. Authentication required.", nil))
			return
		}

		commentID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid comment id", err))
			return
		}

		if err := h.service.Delete(r.Context(), commentID, claims.UserID); err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, DeleteResponse{
			Success: true,
			Message: "Comment deleted successfully",
		})
	}
}
