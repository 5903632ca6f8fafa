package categories

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/posts"
)

type stubCategoryService struct {
	createFn   func(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	listFn     func(ctx context.Context) ([]Category, error)
	postsForFn func(ctx context.Context, categoryID int) (*CategoryPosts, error)
	deleteFn   func(ctx context.Context, categoryID int) error
}

func (s *stubCategoryService) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	return s.createFn(ctx, req)
}

func (s *stubCategoryService) List(ctx context.Context) ([]Category, error) {
	return s.listFn(ctx)
}

func (s *stubCategoryService) PostsFor(ctx context.Context, categoryID int) (*CategoryPosts, error) {
	return s.postsForFn(ctx, categoryID)
}

func (s *stubCategoryService) Delete(ctx context.Context, categoryID int) error {
	return s.deleteFn(ctx, categoryID)
}

var _ CategoryService = (*stubCategoryService)(nil)

func withURLParam(req *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestHandleCreate(t *testing.T) {
	svc := &stubCategoryService{
		createFn: func(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
			assert.Equal(t, "golang", req.Name)
			return &Category{ID: 1, Name: req.Name, Description: req.Description}, nil
		},
	}
	h := NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"golang","description":"Go articles"}`))
	h.HandleCreate()(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var resp CategoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Category created successfully", resp.Message)
	require.NotNil(t, resp.Category)
	assert.Equal(t, "golang", resp.Category.Name)
}

func TestHandleCreateDuplicate(t *testing.T) {
	svc := &stubCategoryService{
		createFn: func(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
			return nil, apperror.NewConflictError("Category already exists", nil)
		},
	}
	h := NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/categories", strings.NewReader(`{"name":"golang"}`))
	h.HandleCreate()(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp apperror.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Category already exists", resp.Message)
}

func TestHandleList(t *testing.T) {
	svc := &stubCategoryService{
		listFn: func(ctx context.Context) ([]Category, error) {
			return []Category{{ID: 2, Name: "databases"}, {ID: 1, Name: "golang"}}, nil
		},
	}
	h := NewCategoryHandler(svc)

	rec := httptest.NewRecorder()
	h.HandleList()(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CategoryListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Categories, 2)
	assert.Equal(t, "databases", resp.Categories[0].Name)
}

func TestHandlePosts(t *testing.T) {
	svc := &stubCategoryService{
		postsForFn: func(ctx context.Context, categoryID int) (*CategoryPosts, error) {
			assert.Equal(t, 1, categoryID)
			return &CategoryPosts{
				Category: "golang",
				Posts: []posts.Post{
					{ID: 3, Title: "Newer", Categories: []posts.CategoryRef{}},
					{ID: 1, Title: "Older", Categories: []posts.CategoryRef{}},
				},
			}, nil
		},
	}
	h := NewCategoryHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/categories/1/posts", nil), "id", "1")
	rec := httptest.NewRecorder()
	h.HandlePosts()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp CategoryPostsResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "golang", resp.Category)
	assert.Equal(t, 2, resp.Count)
	require.Len(t, resp.Posts, 2)
	assert.Equal(t, "Newer", resp.Posts[0].Title)
}

func TestHandlePostsUnknownCategory(t *testing.T) {
	svc := &stubCategoryService{
		postsForFn: func(ctx context.Context, categoryID int) (*CategoryPosts, error) {
			return nil, apperror.NewNotFoundError("Category not found", nil)
		},
	}
	h := NewCategoryHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/categories/999/posts", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.HandlePosts()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestHandlePostsBadID(t *testing.T) {
	h := NewCategoryHandler(&stubCategoryService{})

	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/categories/abc/posts", nil), "id", "abc")
	rec := httptest.NewRecorder()
	h.HandlePosts()(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleDelete(t *testing.T) {
	var deleted int
	svc := &stubCategoryService{
		deleteFn: func(ctx context.Context, categoryID int) error {
			deleted = categoryID
			return nil
		},
	}
	h := NewCategoryHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/categories/2", nil), "id", "2")
	rec := httptest.NewRecorder()
	h.HandleDelete()(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 2, deleted)

	var resp DeleteResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Category deleted successfully", resp.Message)
}

func TestHandleDeleteUnknown(t *testing.T) {
	svc := &stubCategoryService{
		deleteFn: func(ctx context.Context, categoryID int) error {
			return apperror.NewNotFoundError("Category not found", nil)
		},
	}
	h := NewCategoryHandler(svc)

	req := withURLParam(httptest.NewRequest(http.MethodDelete, "/api/categories/999", nil), "id", "999")
	rec := httptest.NewRecorder()
	h.HandleDelete()(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
