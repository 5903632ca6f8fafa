package categories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogapi-go/apperror"
	"github.com/user/blogapi-go/auth"
	"github.com/user/blogapi-go/posts"
)

const pgUniqueViolation = "23505"

// CategoryPosts pairs a category's name with its posts, newest first.
type CategoryPosts struct {
	Category string
	Posts    []posts.Post
}

// CategoryService defines the category operations. Handlers depend on this
// interface rather than the concrete implementation.
type CategoryService interface {
	Create(ctx context.Context, req CreateCategoryRequest) (*Category, error)
	List(ctx context.Context) ([]Category, error)
	PostsFor(ctx context.Context, categoryID int) (*CategoryPosts, error)
	Delete(ctx context.Context, categoryID int) error
}

type categoryServiceImpl struct {
	db *pgxpool.Pool
}

// NewCategoryService creates a new CategoryService backed by the given pool.
func NewCategoryService(db *pgxpool.Pool) CategoryService {
	return &categoryServiceImpl{db: db}
}

// Create persists a category. Names are unique; a duplicate is a Conflict.
// Any authenticated user may create a category; there is no owner.
func (s *categoryServiceImpl) Create(ctx context.Context, req CreateCategoryRequest) (*Category, error) {
	if req.Name == "" {
		return nil, apperror.NewValidationError("Category name is required", nil)
	}

	category := &Category{Name: req.Name, Description: req.Description}
	err := s.db.QueryRow(ctx, `INSERT INTO categories (name, description)
	                           VALUES ($1, $2)
	                           RETURNING id`, req.Name, req.Description).Scan(&category.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			return nil, apperror.NewConflictError("Category already exists", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to create category", err)
	}
	return category, nil
}

// List returns all categories alphabetically by name.
func (s *categoryServiceImpl) List(ctx context.Context) ([]Category, error) {
	rows, err := s.db.Query(ctx, `SELECT id, name, description FROM categories ORDER BY name ASC`)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch categories", err)
	}
	defer rows.Close()

	out := []Category{}
	for rows.Next() {
		var c Category
		var desc sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &desc); err != nil {
			return nil, apperror.NewDatabaseError("Failed to fetch categories", err)
		}
		if desc.Valid {
			c.Description = &desc.String
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch categories", err)
	}
	return out, nil
}

// PostsFor returns the posts linked to a category, newest first, with
// author summaries. An unknown category id is NotFound; a category with no
// posts yields an empty list.
func (s *categoryServiceImpl) PostsFor(ctx context.Context, categoryID int) (*CategoryPosts, error) {
	var name string
	err := s.db.QueryRow(ctx, `SELECT name FROM categories WHERE id = $1`, categoryID).Scan(&name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("Category not found", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to fetch category", err)
	}

	query := `SELECT p.id, p.title, p.content, p.user_id, p.created_at, p.updated_at,
	                 u.id, u.username, u.email
	          FROM post_categories pc
	          JOIN posts p ON pc.post_id = p.id
	          JOIN users u ON p.user_id = u.id
	          WHERE pc.category_id = $1
	          ORDER BY p.created_at DESC`
	rows, err := s.db.Query(ctx, query, categoryID)
	if err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch posts", err)
	}
	defer rows.Close()

	categoryPosts := []posts.Post{}
	for rows.Next() {
		var p posts.Post
		var author auth.UserSummary
		if err := rows.Scan(&p.ID, &p.Title, &p.Content, &p.UserID, &p.CreatedAt, &p.UpdatedAt,
			&author.ID, &author.Username, &author.Email); err != nil {
			return nil, apperror.NewDatabaseError("Failed to fetch posts", err)
		}
		p.Author = &author
		p.Categories = []posts.CategoryRef{}
		categoryPosts = append(categoryPosts, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewDatabaseError("Failed to fetch posts", err)
	}

	return &CategoryPosts{Category: name, Posts: categoryPosts}, nil
}

// Delete removes a category. Its post associations are removed by the
// schema's ON DELETE CASCADE constraint; the posts themselves survive.
func (s *categoryServiceImpl) Delete(ctx context.Context, categoryID int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, categoryID)
	if err != nil {
		return apperror.NewDatabaseError("Failed to delete category", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("Category not found", nil)
	}
	return nil
}

var _ CategoryService = (*categoryServiceImpl)(nil)
