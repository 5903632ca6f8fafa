// Package categories implements category management: authenticated
// creation and deletion, public alphabetical listing, and the
// posts-by-category read.
package categories

import "github.com/user/blogapi-go/posts"

// Category represents a category row.
type Category struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CreateCategoryRequest is the payload for creating a category.
type CreateCategoryRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

// CategoryResponse is the envelope for a single category.
type CategoryResponse struct {
	Success  bool      `json:"success"`
	Message  string    `json:"message,omitempty"`
	Category *Category `json:"category"`
}

// CategoryListResponse is the envelope for the category list.
type CategoryListResponse struct {
	Success    bool       `json:"success"`
	Count      int        `json:"count"`
	Categories []Category `json:"categories"`
}

// CategoryPostsResponse is the envelope for posts-by-category: the category
// name plus its posts, newest first, with author summaries.
type CategoryPostsResponse struct {
	Success  bool         `json:"success"`
	Category string       `json:"category"`
	Count    int          `json:"count"`
	Posts    []posts.Post `json:"posts"`
}

// DeleteResponse is the envelope for category deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
