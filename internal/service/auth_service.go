package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"yesfundme/internal/models"
	"yesfundme/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Domain errors for auth flows.
var (
	ErrInvalidPassword = errors.New("invalid password")
	ErrUserNotFound    = errors.New("user not found")
	ErrInvalidToken    = errors.New("invalid token")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrEmailTaken      = errors.New("email already registered")
)

// AuthConfig carries token signing parameters from configs/config.yml.
type AuthConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// SignUpParams is the registration input.
type SignUpParams struct {
	Username    string
	Email       string
	Password    string
	DisplayName string
}

// AuthService handles user auth logic
type AuthService struct {
	users repository.Users
	cfg   AuthConfig
}

func NewAuthService(users repository.Users, cfg AuthConfig) *AuthService {
	return &AuthService{users: users, cfg: cfg}
}

// Claims defines JWT claims
type Claims struct {
	jwt.RegisteredClaims
	UserID int64 `json:"user_id"`
}

// SignUp creates a new user and signs them in, returning the user and a
// fresh token. Duplicate usernames and emails are rejected up front.
func (s *AuthService) SignUp(ctx context.Context, p SignUpParams) (*models.User, string, error) {
	username := strings.TrimSpace(p.Username)
	if existing, err := s.users.GetByUsername(ctx, username); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrUsernameTaken
	}
	email := strings.TrimSpace(p.Email)
	if existing, err := s.users.GetByEmail(ctx, email); err != nil {
		return nil, "", err
	} else if existing != nil {
		return nil, "", ErrEmailTaken
	}

	hash, err := hashPassword(p.Password)
	if err != nil {
		return nil, "", fmt.Errorf("invalid password: %w", err)
	}

	displayName := strings.TrimSpace(p.DisplayName)
	if displayName == "" {
		displayName = username
	}

	u := models.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		DisplayName:  displayName,
	}
	id, err := s.users.Create(ctx, u)
	if err != nil {
		return nil, "", err
	}
	u.ID = id

	token, err := s.issueToken(id)
	if err != nil {
		return nil, "", err
	}
	return &u, token, nil
}

// SignIn validates credentials and returns the user plus a signed JWT.
func (s *AuthService) SignIn(ctx context.Context, username, password string) (*models.User, string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, "", err
	}
	if u == nil {
		return nil, "", ErrUserNotFound
	}

	if err := verifyPassword(u.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidPassword
	}

	token, err := s.issueToken(u.ID)
	if err != nil {
		return nil, "", err
	}
	return u, token, nil
}

// ParseToken parses JWT and returns userID
func (s *AuthService) ParseToken(accessToken string) (int64, error) {
	token, err := jwt.ParseWithClaims(accessToken, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.cfg.SigningKey), nil
	})
	if err != nil {
		return 0, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return 0, ErrInvalidToken
	}

	return claims.UserID, nil
}

// GetUser fetches a user by ID.
func (s *AuthService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// UpdateProfile mutates display fields and returns the refreshed user.
func (s *AuthService) UpdateProfile(ctx context.Context, id int64, displayName, avatarURL *string) (*models.User, error) {
	if err := s.users.UpdateProfile(ctx, id, displayName, avatarURL); err != nil {
		return nil, err
	}
	return s.GetUser(ctx, id)
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", errors.New("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT for a user
func (s *AuthService) issueToken(userID int64) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.cfg.TokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: userID,
	})
	return token.SignedString([]byte(s.cfg.SigningKey))
}
