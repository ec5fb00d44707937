package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/yjym33/travelLog-Backend/internal/model"
)

// userRepository implements UserRepository using sqlx
type userRepository struct {
	db *sqlx.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sqlx.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts a new user into the database
func (r *userRepository) Create(ctx context.Context, u *model.User) error {
	query := `
		INSERT INTO users (email, nickname, password_hashed, profile_image, bio, location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		RETURNING id, friends_count, allow_friend_requests, is_public_profile, created_at, updated_at
	`

	row := r.db.QueryRowxContext(ctx, query,
		u.Email,
		u.Nickname,
		u.PasswordHashed,
		u.ProfileImage,
		u.Bio,
		u.Location,
	)

	err := row.Scan(
		&u.ID,
		&u.FriendsCount,
		&u.AllowFriendRequests,
		&u.IsPublicProfile,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by their ID
func (r *userRepository) GetByID(ctx context.Context, id int64) (*model.User, error) {
	query := `
		SELECT id, email, nickname, password_hashed, profile_image, bio, location,
		       friends_count, allow_friend_requests, is_public_profile, created_at, updated_at
		FROM users
		WHERE id = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &u, nil
}

// GetByEmail retrieves a user by their email
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, nickname, password_hashed, profile_image, bio, location,
		       friends_count, allow_friend_requests, is_public_profile, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var u model.User
	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, model.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

// ExistsByEmail checks whether an email is already registered
func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `SELECT EXISTS(SELECT 1 FROM users WHERE email = $1)`, email)
	if err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return exists, nil
}

// Search returns public profiles matching the query by nickname or email,
// ordered by friends_count descending. Friendship annotation happens in
// the service layer.
func (r *userRepository) Search(ctx context.Context, query string, excludeID int64, page, limit int) ([]model.SearchedUser, int, error) {
	offset := (page - 1) * limit
	pattern := "%" + query + "%"

	listQuery := `
		SELECT id, email, nickname, profile_image, friends_count, bio, location
		FROM users
		WHERE id <> $1
		  AND is_public_profile = TRUE
		  AND (nickname ILIKE $2 OR email ILIKE $2)
		ORDER BY friends_count DESC, id ASC
		LIMIT $3 OFFSET $4
	`
	var users []model.SearchedUser
	err := r.db.SelectContext(ctx, &users, listQuery, excludeID, pattern, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("search users: %w", err)
	}

	countQuery := `
		SELECT COUNT(*)
		FROM users
		WHERE id <> $1
		  AND is_public_profile = TRUE
		  AND (nickname ILIKE $2 OR email ILIKE $2)
	`
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, excludeID, pattern); err != nil {
		return nil, 0, fmt.Errorf("count searched users: %w", err)
	}

	return users, total, nil
}

// IncrementFriendsCount atomically updates friends_count on a user.
func (r *userRepository) IncrementFriendsCount(ctx context.Context, tx *sqlx.Tx, userID int64, delta int) error {
	query := `UPDATE users SET friends_count = friends_count + $1, updated_at = NOW() WHERE id = $2`
	result, err := tx.ExecContext(ctx, query, delta, userID)
	if err != nil {
		return fmt.Errorf("update friends count: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rows == 0 {
		return model.ErrUserNotFound
	}
	return nil
}
