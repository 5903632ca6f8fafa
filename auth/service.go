package auth

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/blogapi-go/apperror"
)

// pgUniqueViolation is the PostgreSQL error code for unique constraint
// violations.
const pgUniqueViolation = "23505"

// emailPattern requires a local part, an @, and a domain containing a dot.
var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidEmail reports whether s has an acceptable email shape.
func ValidEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// ValidateRegistration checks the registration payload: all fields present,
// username 3-30 characters, well-shaped email, password at least 8
// characters. Bounds count characters, not bytes. Returns nil when the
// payload is acceptable.
func ValidateRegistration(req RegisterRequest) error {
	if req.Username == "" || req.Email == "" || req.Password == "" {
		return apperror.NewValidationError("Username, email, and password are required", nil)
	}
	if n := utf8.RuneCountInString(req.Username); n < 3 || n > 30 {
		return apperror.NewValidationError("Username must be between 3 and 30 characters", nil)
	}
	if !ValidEmail(req.Email) {
		return apperror.NewValidationError("Invalid email format", nil)
	}
	if utf8.RuneCountInString(req.Password) < 8 {
		return apperror.NewValidationError("Password must be at least 8 characters", nil)
	}
	return nil
}

// AuthService owns the register and login operations.
type AuthService struct {
	db     *pgxpool.Pool
	hasher PasswordHasher
	tokens *TokenService
}

// NewAuthService creates a new AuthService.
func NewAuthService(db *pgxpool.Pool, hasher PasswordHasher, tokens *TokenService) *AuthService {
	return &AuthService{db: db, hasher: hasher, tokens: tokens}
}

// Register validates the payload, probes username and email uniqueness
// independently, hashes the password, and persists the user. The hash is
// computed here, explicitly, before the record reaches the store.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*User, error) {
	if err := ValidateRegistration(req); err != nil {
		return nil, err
	}

	email := strings.ToLower(req.Email)

	// Two independent uniqueness probes so the client learns which field
	// conflicts. The insert below still maps constraint violations to 409
	// in case a concurrent registration wins the race.
	var exists bool
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, req.Username).Scan(&exists); err != nil {
		return nil, apperror.NewDatabaseError("Failed to register user", err)
	}
	if exists {
		return nil, apperror.NewConflictError("Username already exists", nil)
	}
	if err := s.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email).Scan(&exists); err != nil {
		return nil, apperror.NewDatabaseError("Failed to register user", err)
	}
	if exists {
		return nil, apperror.NewConflictError("Email already exists", nil)
	}

	hashed, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to register user", err)
	}

	user := &User{
		Username:       req.Username,
		Email:          email,
		HashedPassword: hashed,
	}
	query := `INSERT INTO users (username, email, password)
	          VALUES ($1, $2, $3)
	          RETURNING id, created_at, updated_at`
	err = s.db.QueryRow(ctx, query, user.Username, user.Email, user.HashedPassword).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
			if strings.Contains(pgErr.ConstraintName, "username") {
				return nil, apperror.NewConflictError("Username already exists", nil)
			}
			if strings.Contains(pgErr.ConstraintName, "email") {
				return nil, apperror.NewConflictError("Email already exists", nil)
			}
		}
		return nil, apperror.NewDatabaseError("Failed to register user", err)
	}
	return user, nil
}

// LoginResult pairs an issued token with the authenticated user.
type LoginResult struct {
	Token string
	User  *User
}

// Login authenticates by email and password and issues a token. Both an
// unknown email and a wrong password fail with the same generic message so
// the response does not reveal whether the account exists.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResult, error) {
	if req.Email == "" || req.Password == "" {
		return nil, apperror.NewValidationError("Email and password are required", nil)
	}

	var user User
	query := `SELECT id, username, email, password, created_at, updated_at
	          FROM users WHERE email = $1`
	err := s.db.QueryRow(ctx, query, strings.ToLower(req.Email)).
		Scan(&user.ID, &user.Username, &user.Email, &user.HashedPassword, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAuthError("Invalid email or password", nil)
		}
		return nil, apperror.NewDatabaseError("Failed to login", err)
	}

	ok, err := s.hasher.Verify(req.Password, user.HashedPassword)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to login", err)
	}
	if !ok {
		return nil, apperror.NewAuthError("Invalid email or password", nil)
	}

	token, _, err := s.tokens.Issue(&user)
	if err != nil {
		return nil, apperror.NewInternalError("Failed to login", err)
	}
	return &LoginResult{Token: token, User: &user}, nil
}
