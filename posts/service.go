package posts

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/comments"
)

const pgForeignKeyViolation = "23503"

// ValidateTitle checks the 3-100 character bound on a post title.
// Bounds count characters, not bytes, so multibyte text is not penalized.
func ValidateTitle(title string) error {
	if title == "" {
		return apperror.NewValidationError("Title and content are required", nil)
	}
	if n := utf8.RuneCountInString(title); n < 3 || n > 100 {
		return apperror.NewValidationError("Title must be between 3 and 100 characters", nil)
	}
	return nil
}

// ValidateContent checks the minimum length of post content.
func ValidateContent(content string) error {
	if content == "" {
		return apperror.NewValidationError("Title and content are required", nil)
	}
	if utf8.RuneCountInString(content) < 10 {
		return apperror.NewValidationError("Content must be at least 10 characters", nil)
	}
	return nil
}

// PostService defines the post operations. Handlers depend on this
// interface rather than the concrete implementation.
type PostService interface {
	Create(ctx context.Context, userID int, req CreatePostRequest) (*Post, error)
	List(ctx context.Context) ([]Post, error)
	Get(ctx context.Context, postID int) (*PostDetail, error)
	Update(ctx context.Context, postID, userID int, req UpdatePostRequest) (*Post, error)
	Delete(ctx context.Context, postID, userID int) error
}

type postServiceImpl struct {
	db       *pgxpool.Pool
	comments comments.CommentService
}

// NewPostService creates a new PostService. The comment service is used to
// join a post's comments onto the detail read.
func NewPostService(db *pgxpool.Pool, commentService comments.CommentService) PostService {
	return &postServiceImpl{db: db, comments: commentService}
}

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, so the join
// helpers work inside and outside transactions.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Create persists a post owned by userID. When the request carries a
// category-id list, the post's associations are set to exactly that list in
// the same transaction, so no reader ever observes a partial set.
func (s *postServiceImpl) Create(ctx context.Context, userID int, req CreatePostRequest) (*Post, error) {
	if req.Title == "" || req.Content == "" {
		return nil, apperror.NewValidationError("Title and content are required", nil)
	}
	if err := ValidateTitle(req.Title); err != nil {
		return nil, err
	}
	if err := ValidateContent(req.Content); err != nil {
		return nil, err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create post", err)
	}
	defer tx.Rollback(ctx)

	var postID int
	err = tx.QueryRow(ctx, `INSERT INTO posts (title, content, user_id)
	                        VALUES ($1, $2, $3)
	                        RETURNING id`, req.Title, req.Content, userID).Scan(&postID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to create post", err)
	}

	if req.CategoryIDs != nil {
		if err := replaceCategories(ctx, tx, postID, req.CategoryIDs); err != nil {
			return nil, err
		}
	}

	post, err := getPostWithAuthor(ctx, tx, postID)
	if err != nil {
		return nil, err
	}
	if err := attachCategories(ctx, tx, []*Post{post}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("Failed to create post", err)
	}
	return post, nil
}

// List returns all posts newest-first with author and category summaries.
func (s *postServiceImpl) List(ctx context.Context) ([]Post, error) {
	query := `SELECT p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
	                 u.id, u.username, u.email
	          FROM posts p
	          JOIN users u ON p.user_id = u.id
	          ORDER BY p.created_at DESC`
	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch posts", err)
	}
	defer rows.Close()

	posts := []Post{}
	for rows.Next() {
		var p Post
		var author auth.UserSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
			&author.ID, &author.Username, &author.Email); err != nil {
			return nil, apperror.NewDatabaseError("Failed to fetch posts", err)
		}
		p.Author = &author
		p.Categories = []CategoryRef{}
		posts = append(posts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch posts", err)
	}

	refs := make([]*Post, len(posts))
	for i := range posts {
		refs[i] = &posts[i]
	}
	if err := attachCategories(ctx, s.db, refs); err != nil {
		return nil, err
	}
	return posts, nil
}

// Get returns one post joined with author, categories and its comments
// (oldest first, each with author summary).
func (s *postServiceImpl) Get(ctx context.Context, postID int) (*PostDetail, error) {
	post, err := getPostWithAuthor(ctx, s.db, postID)
	if err != nil {
		return nil, err
	}
	if err := attachCategories(ctx, s.db, []*Post{post}); err != nil {
		return nil, err
	}

	postComments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	return &PostDetail{Post: *post, Comments: postComments}, nil
}

// Update applies a partial update. The post is resolved and its ownership
// checked first, inside the transaction, so an unknown post is NotFound and
// a foreign post is Forbidden regardless of what the payload contains. An
// empty payload is a no-op that returns the current post.
func (s *postServiceImpl) Update(ctx context.Context, postID, userID int, req UpdatePostRequest) (*Post, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to update post", err)
	}
	defer tx.Rollback(ctx)

	if err := checkOwnership(ctx, tx, postID, userID, "You can only update your own posts"); err != nil {
		return nil, err
	}

	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Title != nil {
		if err := ValidateTitle(*req.Title); err != nil {
			return nil, err
		}
		setClauses = append(setClauses, fmt.Sprintf("title = $%d", argID))
		args = append(args, *req.Title)
		argID++
	}
	if req.Content != nil {
		if err := ValidateContent(*req.Content); err != nil {
			return nil, err
		}
		setClauses = append(setClauses, fmt.Sprintf("content = $%d", argID))
		args = append(args, *req.Content)
		argID++
	}

	if len(setClauses) > 0 {
		setClauses = append(setClauses, "updated_at = now()")
		args = append(args, postID)
		query := fmt.Sprintf(`UPDATE posts SET %s WHERE id = $%d`, strings.Join(setClauses, ", "), argID)
		if _, err := tx.Exec(ctx, query, args...); err != nil {
			return nil, apperror.NewDatabaseError("Failed to update post", err)
		}
	}

	post, err := getPostWithAuthor(ctx, tx, postID)
	if err != nil {
		return nil, err
	}
	if err := attachCategories(ctx, tx, []*Post{post}); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewDatabaseError("Failed to update post", err)
	}
	return post, nil
}

// Delete removes a post. Dependent comments and category associations are
// removed by the schema's ON DELETE CASCADE constraints, atomically with
// the post row itself.
func (s *postServiceImpl) Delete(ctx context.Context, postID, userID int) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return apperror.NewDatabaseError("Failed to delete post", err)
	}
	defer tx.Rollback(ctx)

	if err := checkOwnership(ctx, tx, postID, userID, "You can only delete your own posts"); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM posts WHERE id = $1`, postID); err != nil {
		return apperror.NewDatabaseError("Failed to delete post", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return apperror.NewDatabaseError("Failed to delete post", err)
	}
	return nil
}

// checkOwnership locks the post row and compares its owner to the verified
// identity. The check is re-derived per request, never cached.
func checkOwnership(ctx context.Context, tx pgx.Tx, postID, userID int, forbiddenMsg string) error {
	var ownerID int
	err := tx.QueryRow(ctx, `SELECT user_id FROM posts WHERE id = $1 FOR UPDATE`, postID).Scan(&ownerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperror.NewNotFoundError("Post not found", nil)
		}
		return apperror.NewDatabaseError("Failed to resolve post", err)
	}
	if ownerID != userID {
		return apperror.NewForbiddenError(forbiddenMsg, nil)
	}
	return nil
}

// replaceCategories sets a post's category associations to exactly ids:
// the current rows are deleted and the desired set inserted as one unit.
func replaceCategories(ctx context.Context, tx pgx.Tx, postID int, ids []int) error {
	if _, err := tx.Exec(ctx, `DELETE FROM post_categories WHERE post_id = $1`, postID); err != nil {
		return apperror.NewDatabaseError("Failed to set post categories", err)
	}
	if len(ids) == 0 {
		return nil
	}
	_, err := tx.Exec(ctx, `INSERT INTO post_categories (post_id, category_id)
	                        SELECT $1, unnest($2::int[])
	                        ON CONFLICT (post_id, category_id) DO NOTHING`, postID, ids)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return apperror.NewNotFoundError("One or more categories were not found", nil)
		}
		return apperror.NewDatabaseError("Failed to set post categories", err)
	}
	return nil
}

// getPostWithAuthor fetches one post joined with its author summary.
func getPostWithAuthor(ctx context.Context, q querier, postID int) (*Post, error) {
	var p Post
	var author auth.UserSummary
	query := `SELECT p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
	                 u.id, u.username, u.email
	          FROM posts p
	          JOIN users u ON p.user_id = u.id
	          WHERE p.id = $1`
	err := q.QueryRow(ctx, query, postID).Scan(
		&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
		&author.ID, &author.Username, &author.Email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Post not found", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to fetch post", err)
	}
	p.Author = &author
	p.Categories = []CategoryRef{}
	return &p, nil
}

// attachCategories loads the category sets for the given posts in one query
// and attaches them in place.
func attachCategories(ctx context.Context, q querier, posts []*Post) error {
	if len(posts) == 0 {
		return nil
	}
	ids := make([]int, len(posts))
	byID := make(map[int]*Post, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
		byID[p.ID] = p
	}

	query := `SELECT pc.post_id, c.id, c.name
	          FROM post_categories pc
	          JOIN categories c ON pc.category_id = c.id
	          WHERE pc.post_id = ANY($1)
	          ORDER BY c.name ASC`
	rows, err := q.Query(ctx, query, ids)
	if err != nil {
		return apperror.NewDatabaseError("Failed to fetch post categories", err)
	}
	defer rows.Close()

	for rows.Next() {
		var postID int
		var ref CategoryRef
		if err := rows.Scan(&postID, &ref.ID, &ref.Name); err != nil {
			return apperror.NewDatabaseError("Failed to fetch post categories", err)
		}
		if p, ok := byID[postID]; ok {
			p.Categories = append(p.Categories, ref)
		}
	}
	if err := rows.Err(); err != nil {
		return apperror.NewDatabaseError("Failed to fetch post categories", err)
	}
	return nil
}

var _ PostService = (*postServiceImpl)(nil)
