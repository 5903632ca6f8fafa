// Package posts implements the post lifecycle: authenticated creation with
// category assignment, public list and detail reads, and owner-only partial
// update and deletion.
package posts

import (
	"time"

	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/comments"
)

// CategoryRef is the category summary joined onto posts.
type CategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Post represents a post row joined with its author and categories.
type Post struct {
	ID         int               `json:"id"`
	Title      string            `json:"title"`
	Content    string            `json:"content"`
	UserID     int               `json:"userId"`
	CreatedAt  time.Time         `json:"createdAt"`
	UpdatedAt  time.Time         `json:"updatedAt"`
	Author     *auth.UserSummary `json:"user,omitempty"`
	Categories []CategoryRef     `json:"categories"`
}

// PostDetail is a post joined with its comments, oldest first.
type PostDetail struct {
	Post
	Comments []comments.Comment `json:"comments"`
}

// CreatePostRequest is the payload for creating a post. When CategoryIDs is
// non-nil the post's category set becomes exactly that list.
type CreatePostRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	CategoryIDs []int  `json:"categoryIds,omitempty"`
}

// UpdatePostRequest is the partial-update payload. Omitted fields keep
// their prior value.
type UpdatePostRequest struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
}

// PostResponse is the envelope for a single post.
type PostResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Post    *Post  `json:"post"`
}

// PostDetailResponse is the envelope for a post with comments.
type PostDetailResponse struct {
	Success bool        `json:"success"`
	Post    *PostDetail `json:"post"`
}

// PostListResponse is the envelope for the post list.
type PostListResponse struct {
	Success bool   `json:"success"`
	Count   int    `json:"count"`
	Posts   []Post `json:"posts"`
}

// DeleteResponse is the envelope for post deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
