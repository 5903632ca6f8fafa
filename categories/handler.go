package categories

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/user/blogapi-go/api"
	"github.com/user/blogapi-go/apperror"
)

// CategoryHandler handles HTTP requests for categories.
type CategoryHandler struct {
	service CategoryService
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(service CategoryService) *CategoryHandler {
	return &CategoryHandler{service: service}
}

// HandleCreate godoc
// @Summary Create a category
// @Tags categories
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param categoryBody body CreateCategoryRequest true "Category details"
// @Success 201 {object} CategoryResponse
// @Failure 400 {object} apperror.ErrorResponse
// @Failure 409 {object} apperror.ErrorResponse
// @Router /api/categories [post]
func (h *CategoryHandler) HandleCreate() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateCategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid request body", err))
			return
		}
		defer r.Body.Close()

		category, err := h.service.Create(r.Context(), req)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusCreated, CategoryResponse{
			Success:  true,
			Message:  "Category created successfully",
			Category: category,
		})
	}
}

// HandleList godoc
// @Summary List all categories alphabetically
// @Tags categories
// @Produce json
// @Success 200 {object} CategoryListResponse
// @Router /api/categories [get]
func (h *CategoryHandler) HandleList() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list, err := h.service.List(r.Context())
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, CategoryListResponse{
			Success:    true,
			Count:      len(list),
			Categories: list,
		})
	}
}

// HandlePosts godoc
// @Summary List a category's posts, newest first
// @Tags categories
// @Produce json
// @Success 200 {object} CategoryPostsResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/categories/{id}/posts [get]
func (h *CategoryHandler) HandlePosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid category id", err))
			return
		}

		result, err := h.service.PostsFor(r.Context(), categoryID)
		if err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, CategoryPostsResponse{
			Success:  true,
			Category: result.Category,
			Count:    len(result.Posts),
			Posts:    result.Posts,
		})
	}
}

// HandleDelete godoc
// @Summary Delete a category
// @Tags categories
// @Produce json
// @Security BearerAuth
// @Success 200 {object} DeleteResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /api/categories/{id} [delete]
func (h *CategoryHandler) HandleDelete() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil {
			api.WriteError(w, r, apperror.NewBadRequestError("Invalid category id", err))
			return
		}

		if err := h.service.Delete(r.Context(), categoryID); err != nil {
			api.WriteError(w, r, err)
			return
		}

		api.WriteJSON(w, http.StatusOK, DeleteResponse{
			Success: true,
			Message: "Category deleted successfully",
		})
	}
}
