package users

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
)

// UserService provides profile management for the authenticated user.
type UserService struct {
	db     *pgxpool.Pool
	hasher auth.PasswordHasher
}

// NewUserService creates a new UserService.
func NewUserService(db *pgxpool.Pool, hasher auth.PasswordHasher) *UserService {
	return &UserService{db: db, hasher: hasher}
}

// GetProfile retrieves a user's profile by ID. The user record may have
// vanished between token issuance and lookup; that is a NotFound, not an
// auth failure.
func (s *UserService) GetProfile(ctx context.Context, userID int) (*Profile, error) {
	var p Profile
	query := `SELECT id, username, email, created_at, updated_at FROM users WHERE id = $1`
	err := s.db.QueryRow(ctx, query, userID).
		Scan(&p.ID, &p.Username, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to get user profile", err)
	}
	return &p, nil
}

// UpdateProfile applies a partial update to the user's own record. Only
// supplied fields change. A new password is hashed here, before the record
// reaches the store; the plaintext is never persisted.
func (s *UserService) UpdateProfile(ctx context.Context, userID int, req *UpdateProfileRequest) (*Profile, error) {
	var setClauses []string
	var args []interface{}
	argID := 1

	if req.Username != nil {
		if n := utf8.RuneCountInString(*req.Username); n < 3 || n > 30 {
			return nil, apperror.NewValidationError("Username must be between 3 and 30 characters", nil)
		}
		setClauses = append(setClauses, fmt.Sprintf("username = $%d", argID))
		args = append(args, *req.Username)
		argID++
	}
	if req.Email != nil {
		if !auth.ValidEmail(*req.Email) {
			return nil, apperror.NewValidationError("Invalid email format", nil)
		}
		setClauses = append(setClauses, fmt.Sprintf("email = $%d", argID))
		args = append(args, strings.ToLower(*req.Email))
		argID++
	}
	if req.Password != nil {
		if utf8.RuneCountInString(*req.Password) < 8 {
			return nil, apperror.NewValidationError("Password must be at least 8 characters", nil)
		}
		hashed, err := s.hasher.Hash(*req.Password)
		if err != nil {
			return nil, apperror.NewInternalError("Failed to update user profile", err)
		}
		setClauses = append(setClauses, fmt.Sprintf("password = $%d", argID))
		args = append(args, hashed)
		argID++
	}

	// An empty payload is a no-op: the current profile is returned as-is.
	if len(setClauses) == 0 {
		return s.GetProfile(ctx, userID)
	}

	setClauses = append(setClauses, "updated_at = now()")
	args = append(args, userID)

	query := fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d
	                      RETURNING id, username, email, created_at, updated_at`,
		strings.Join(setClauses, ", "), argID)

	var p Profile
	err := s.db.QueryRow(ctx, query, args...).
		Scan(&p.ID, &p.Username, &p.Email, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFoundError("User not found", nil)
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewConflictError("Username already exists", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewConflictError("Email already exists", nil)
			}
		}
		return nil, apperror.NewDatabaseError("Failed to update user profile", err)
	}
	return &p, nil
}

// DeleteAccount removes the user's own record. Posts and comments owned by
// the user are removed by the schema's ON DELETE CASCADE constraints, so no
// dangling child rows survive.
func (s *UserService) DeleteAccount(ctx context.Context, userID int) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return apperror.NewDatabaseError("Failed to delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return apperror.NewNotFoundError("User not found", nil)
	}
	return nil
}
