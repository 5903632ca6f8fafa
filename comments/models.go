// Package comments is responsible for comment functionality: creating a
// comment against an existing post, listing a post's comments, and
// owner-only deletion.
package comments

import (
	"time"

	"github.com/user/blogapi-go/auth"
)

// Comment represents a comment row, optionally joined with its author.
type Comment struct {
	ID        int               `json:"id"`
	Content   string            `json:"content"`
	UserID    int               `json:"userId"`
	PostID    int               `json:"postId"`
	CreatedAt time.Time         `json:"createdAt"`
	Author    *auth.UserSummary `json:"user,omitempty"`
}

// CreateCommentRequest is the payload for creating a comment.
type CreateCommentRequest struct {
	Content string `json:"content"`
	PostID  int    `json:"postId"`
}

// CommentResponse is the envelope for a single created comment.
type CommentResponse struct {
	Success bool     `json:"success"`
	Message string   `json:"message,omitempty"`
	Comment *Comment `json:"comment"`
}

// CommentListResponse is the envelope for a post's comment list.
type CommentListResponse struct {
	Success  bool      `json:"success"`
	Count    int       `json:"count"`
	Comments []Comment `json:"comments"`
}

// DeleteResponse is the envelope for comment deletion.
type DeleteResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
