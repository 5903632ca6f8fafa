package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatusCode(t *testing.T) {
	cases := []struct {
		name string
		err  *AppError
		want int
	}{
		{"auth", NewAuthError("no token", nil), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not yours", nil), http.StatusForbidden},
		{"not found", NewNotFoundError("missing", nil), http.StatusNotFound},
		{"validation", NewValidationError("bad input", nil), http.StatusBadRequest},
		{"bad request", NewBadRequestError("bad body", nil), http.StatusBadRequest},
		{"conflict", NewConflictError("duplicate", nil), http.StatusConflict},
		{"database", NewDatabaseError("db down", nil), http.StatusInternalServerError},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
		{"unknown", New(UnknownError, "???", nil), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.StatusCode())
		})
	}
}

func TestErrorMessageExcludesCause(t *testing.T) {
	cause := errors.New("connection refused to 10.0.0.5:5432")
	err := NewDatabaseError("Failed to fetch posts", cause)

	assert.Equal(t, "Failed to fetch posts", err.Error())
	assert.NotContains(t, err.Error(), "10.0.0.5")
	assert.Equal(t, cause, err.Unwrap())
}

func TestToResponse(t *testing.T) {
	resp := NewNotFoundError("Post not found", errors.New("internal detail")).ToResponse()

	assert.False(t, resp.Success)
	assert.Equal(t, "Post not found", resp.Message)
}

func TestFromError(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		orig := NewConflictError("Username already exists", nil)
		got, ok := FromError(orig)
		require.True(t, ok)
		assert.Same(t, orig, got)
	})

	t.Run("wrapped", func(t *testing.T) {
		orig := NewAuthError("Invalid token", nil)
		wrapped := fmt.Errorf("handler: %w", orig)
		got, ok := FromError(wrapped)
		require.True(t, ok)
		assert.Same(t, orig, got)
	})

	t.Run("plain error", func(t *testing.T) {
		_, ok := FromError(errors.New("plain"))
		assert.False(t, ok)
	})

	t.Run("nil", func(t *testing.T) {
		_, ok := FromError(nil)
		assert.False(t, ok)
	})
}

func TestTypePredicates(t *testing.T) {
	assert.True(t, IsNotFound(NewNotFoundError("x", nil)))
	assert.False(t, IsNotFound(NewConflictError("x", nil)))

	assert.True(t, IsAuthError(NewAuthError("x", nil)))
	assert.True(t, IsForbidden(NewForbiddenError("x", nil)))
	assert.True(t, IsValidationError(NewValidationError("x", nil)))
	assert.True(t, IsConflictError(NewConflictError("x", nil)))

	wrapped := fmt.Errorf("outer: %w", NewForbiddenError("x", nil))
	assert.True(t, IsForbidden(wrapped))

	assert.False(t, IsNotFound(errors.New("plain")))
	assert.False(t, IsNotFound(nil))
}
