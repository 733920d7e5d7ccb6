package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"yesfundme/internal/models"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Ensure implementation of Users interface at compile time.
var _ Users = (*UserRepository)(nil)

const (
	insertUserSQL = `INSERT INTO users (username, email, password_hash, display_name, avatar_url) VALUES (?, ?, ?, ?, ?)`

	selectUserColumns       = `SELECT id, username, email, password_hash, display_name, COALESCE(avatar_url, '') FROM users`
	selectUserByUsernameSQL = selectUserColumns + ` WHERE username = ?`
	selectUserByEmailSQL    = selectUserColumns + ` WHERE email = ?`
	selectUserByIDSQL       = selectUserColumns + ` WHERE id = ?`
)

// Create inserts a new user and returns its ID.
func (r *UserRepository) Create(ctx context.Context, u models.User) (int64, error) {
	var avatar any
	if u.AvatarURL != "" {
		avatar = u.AvatarURL
	}
	res, err := r.db.ExecContext(ctx, insertUserSQL, u.Username, u.Email, u.PasswordHash, u.DisplayName, avatar)
	if err != nil {
		return 0, fmt.Errorf("insert user %q: %w", u.Username, err)
	}
	lastID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get last insert id for user %q: %w", u.Username, err)
	}
	return lastID, nil
}

// GetByUsername fetches a user by username. Returns (nil, nil) if not found.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.getOne(ctx, selectUserByUsernameSQL, username)
}

// GetByEmail fetches a user by email. Returns (nil, nil) if not found.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.getOne(ctx, selectUserByEmailSQL, email)
}

// GetByID fetches a user by ID. Returns (nil, nil) if not found.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return r.getOne(ctx, selectUserByIDSQL, id)
}

func (r *UserRepository) getOne(ctx context.Context, query string, arg any) (*models.User, error) {
	var u models.User
	err := r.db.QueryRowContext(ctx, query, arg).
		Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.DisplayName, &u.AvatarURL)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("select user by %v: %w", arg, err)
	}
	return &u, nil
}

// UpdateProfile updates display fields; nil arguments are left untouched.
func (r *UserRepository) UpdateProfile(ctx context.Context, id int64, displayName, avatarURL *string) error {
	var (
		sets []string
		args []any
	)
	if displayName != nil {
		sets = append(sets, "display_name = ?")
		args = append(args, *displayName)
	}
	if avatarURL != nil {
		sets = append(sets, "avatar_url = ?")
		if trimmed := strings.TrimSpace(*avatarURL); trimmed != "" {
			args = append(args, trimmed)
		} else {
			args = append(args, nil)
		}
	}
	if len(sets) == 0 {
		return nil
	}

	q := "UPDATE users SET " + strings.Join(sets, ", ") + " WHERE id = ?"
	args = append(args, id)

	if _, err := r.db.ExecContext(ctx, q, args...); err != nil {
		return fmt.Errorf("update user %d profile: %w", id, err)
	}
	return nil
}
