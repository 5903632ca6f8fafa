package comments

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
)

// pgForeignKeyViolation is the PostgreSQL error code for foreign key
// violations.
const pgForeignKeyViolation = "23503"

// CommentService defines the comment operations. Handlers depend on this
// interface rather than the concrete implementation.
type CommentService interface {
	Create(ctx context.Context, userID int, req CreateCommentRequest) (*Comment, error)
	ListByPost(ctx context.Context, postID int) ([]Comment, error)
	Delete(ctx context.Context, commentID, userID int) error
}

type commentServiceImpl struct {
	db *pgxpool.Pool
}

// NewCommentService creates a new CommentService backed by the given pool.
func NewCommentService(db *pgxpool.Pool) CommentService {
	return &commentServiceImpl{db: db}
}

// Create persists a comment owned by userID against an existing post.
// A missing post is NotFound, whether detected by the existence probe or by
// the foreign key when the post disappears mid-request.
func (s *commentServiceImpl) Create(ctx context.Context, userID int, req CreateCommentRequest) (*Comment, error) {
	if req.Content == "" || req.PostID == 0 {
		return nil, apperror.NewValidationError("Content and postId are required", nil)
	}

	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM posts WHERE id = $1)`, req.PostID).Scan(&exists); err != nil {
		return nil, apperror.NewDatabaseError("Failed to create comment", err)
	}
	if !exists {
		return nil, apperror.NewNotFoundError("Post not found", nil)
	}

	comment := &Comment{
		Content: req.Content,
		UserID:  userID,
		PostID:  req.PostID,
	}
	query := `INSERT INTO comments (content, user_id, post_id)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at`
	err := s.db.QueryRow(ctx, query, comment.Content, comment.UserID, comment.PostID).
		Scan(&comment.ID, &comment.CreatedAt)
	if err != nil {
		return nil, commentInsertError(err)
	}

	// Join the author summary for the response.
	author := &auth.UserSummary{}
	err = s.db.QueryRow(ctx, `SELECT id, username, email FROM users WHERE id = $1`, userID).
		Scan(&author.ID, &author.Username, &author.Email)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create comment", err)
	}
	comment.Author = author
	return comment, nil
}

// ListByPost returns a post's comments oldest-first, each joined with its
// author summary. An unknown post yields an empty list, matching the
// unauthenticated list contract.
func (s *commentServiceImpl) ListByPost(ctx context.Context, postID int) ([]Comment, error) {
	query := `SELECT c.id, c.content, c.user_id, c.post_id, c.created_at,
	                 u.id, u.username, u.email
	          FROM comments c
	          JOIN users u ON c.user_id = u.id
	          WHERE c.post_id = $1
	          ORDER BY c.created_at ASC`
	rows, err := s.db.Query(ctx, query, postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch comments", err)
	}
	defer rows.Close()

	return scanCommentRows(rows)
}

// Delete removes a comment. Only the comment's owner may delete it; the
// ownership check and the delete run in one transaction so a concurrent
// delete cannot interleave.
func (s *commentServiceImpl) Delete(ctx context.Context, commentID, userID int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("Failed to delete comment", err)
	}
	defer tx.Rollback(ctx)

	var ownerID int
	err = tx.QueryRow(ctx, `SELECT user_id FROM comments WHERE id = $1 FOR UPDATE`, commentID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("Comment not found", nil)
		}
		return apperror.NewDatabaseError("Failed to delete comment", err)
	}
	if ownerID != userID {
		return apperror.NewForbiddenError("You can only delete your own comments", nil)
	}

	if _, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, commentID); err != nil {
		return apperror.NewDatabaseError("Failed to delete comment", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("Failed to delete comment", err)
	}
	return nil
}

// commentInsertError maps a failed comment insert to the client-facing
// error. Only a violation of the post foreign key means the post is gone;
// any other constraint (e.g. the user vanishing mid-request) stays an
// internal database error.
func commentInsertError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation &&
		strings.Contains(pgErr.ConstraintName, "post_id") {
		return apperror.NewNotFoundError("Post not found", nil)
	}
	return apperror.NewDatabaseError("Failed to create comment", err)
}

// scanCommentRows collects comment rows joined with author columns.
func scanCommentRows(rows pgx.Rows) ([]Comment, error) {
	out := []Comment{}
	for rows.Next() {
		var c Comment
		var author auth.UserSummary
		if err := rows.Scan(&c.ID, &c.Content, &c.UserID, &c.PostID, &c.CreatedAt,
			&author.ID, &author.Username, &author.Email); err != nil {
			return nil, apperror.NewDatabaseError("Failed to fetch comments", err)
		}
		c.Author = &author
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch comments", err)
	}
	return out, nil
}

var _ CommentService = (*commentServiceImpl)(nil)
