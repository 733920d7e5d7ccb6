package service

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"testing"
	"time"

	"yesfundme/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var testAuthCfg = AuthConfig{SigningKey: "test-signing-key", TokenTTL: time.Hour}

// mockUsersRepo is a lightweight in-test mock for repository.Users.
type mockUsersRepo struct {
	CreateFn        func(u models.User) (int64, error)
	GetByUsernameFn func(username string) (*models.User, error)
	GetByEmailFn    func(email string) (*models.User, error)
	GetByIDFn       func(id int64) (*models.User, error)
	UpdateProfileFn func(id int64, displayName, avatarURL *string) error

	createCalls []models.User
}

func (m *mockUsersRepo) Create(ctx context.Context, u models.User) (int64, error) {
	m.createCalls = append(m.createCalls, u)
	return m.CreateFn(u)
}

func (m *mockUsersRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	if m.GetByUsernameFn == nil {
		return nil, nil
	}
	return m.GetByUsernameFn(username)
}

func (m *mockUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if m.GetByEmailFn == nil {
		return nil, nil
	}
	return m.GetByEmailFn(email)
}

func (m *mockUsersRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	if m.GetByIDFn == nil {
		return nil, nil
	}
	return m.GetByIDFn(id)
}

func (m *mockUsersRepo) UpdateProfile(ctx context.Context, id int64, displayName, avatarURL *string) error {
	if m.UpdateProfileFn == nil {
		return nil
	}
	return m.UpdateProfileFn(id, displayName, avatarURL)
}

// --- SignUp tests ---

func TestAuthService_SignUp_SuccessHashesPasswordAndIssuesToken(t *testing.T) {
	mock := &mockUsersRepo{
		CreateFn: func(u models.User) (int64, error) {
			return 42, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	u, token, err := svc.SignUp(context.Background(), SignUpParams{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "s3cr3t",
	})
	if err != nil {
		t.Fatalf("SignUp returned error: %v", err)
	}
	if u.ID != 42 {
		t.Fatalf("expected id 42, got %d", u.ID)
	}
	// Display name defaults to the username when not provided.
	if u.DisplayName != "alice" {
		t.Fatalf("expected display name 'alice', got %q", u.DisplayName)
	}

	if len(mock.createCalls) != 1 {
		t.Fatalf("expected 1 Create call, got %d", len(mock.createCalls))
	}
	call := mock.createCalls[0]
	if call.PasswordHash == "s3cr3t" {
		t.Errorf("expected hashed password not equal to raw password")
	}
	if err := verifyPassword(call.PasswordHash, "s3cr3t"); err != nil {
		t.Errorf("stored hash does not verify with original password: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed on sign-up token: %v", err)
	}
	if uid != 42 {
		t.Fatalf("expected user id 42 from token, got %d", uid)
	}
}

func TestAuthService_SignUp_EmptyPassword(t *testing.T) {
	mock := &mockUsersRepo{
		CreateFn: func(u models.User) (int64, error) {
			t.Fatal("Create should not be called for empty password")
			return 0, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, _, err := svc.SignUp(context.Background(), SignUpParams{Username: "bob", Email: "b@x.com", Password: "   "})
	if err == nil {
		t.Fatalf("expected error for empty password, got nil")
	}
	if len(mock.createCalls) != 0 {
		t.Fatalf("expected no Create calls, got %d", len(mock.createCalls))
	}
}

func TestAuthService_SignUp_DuplicateUsername(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, _, err := svc.SignUp(context.Background(), SignUpParams{Username: "taken", Email: "t@x.com", Password: "pw"})
	if !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got: %v", err)
	}
}

func TestAuthService_SignUp_DuplicateEmail(t *testing.T) {
	mock := &mockUsersRepo{
		GetByEmailFn: func(email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, _, err := svc.SignUp(context.Background(), SignUpParams{Username: "new", Email: "t@x.com", Password: "pw"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got: %v", err)
	}
}

// --- SignIn tests ---

func TestAuthService_SignIn_Success(t *testing.T) {
	hash, err := hashPassword("letmein")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	user := &models.User{ID: 7, Username: "diana", PasswordHash: hash, DisplayName: "Diana"}

	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			if username != "diana" {
				t.Fatalf("expected username 'diana', got %q", username)
			}
			return user, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	u, token, err := svc.SignIn(context.Background(), "diana", "letmein")
	if err != nil {
		t.Fatalf("SignIn returned error: %v", err)
	}
	if u.ID != 7 {
		t.Fatalf("expected user id 7, got %d", u.ID)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken failed: %v", err)
	}
	if uid != 7 {
		t.Fatalf("expected user id 7 from token, got %d", uid)
	}
}

func TestAuthService_SignIn_UserNotFound(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, _, err := svc.SignIn(context.Background(), "ghost", "pw")
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}

func TestAuthService_SignIn_InvalidPassword(t *testing.T) {
	correctHash, err := hashPassword("correct")
	if err != nil {
		t.Fatalf("hashPassword failed: %v", err)
	}
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return &models.User{ID: 1, Username: "eve", PasswordHash: correctHash}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, _, err = svc.SignIn(context.Background(), "eve", "wrong")
	if !errors.Is(err, ErrInvalidPassword) {
		t.Fatalf("expected ErrInvalidPassword, got: %v", err)
	}
}

func TestAuthService_SignIn_RepoError(t *testing.T) {
	mock := &mockUsersRepo{
		GetByUsernameFn: func(username string) (*models.User, error) {
			return nil, errors.New("query failed")
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	_, _, err := svc.SignIn(context.Background(), "john", "pw")
	if err == nil {
		t.Fatalf("expected repo error, got nil")
	}
}

// --- ParseToken tests ---

func TestAuthService_ParseToken_Success(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)
	token, err := svc.issueToken(99)
	if err != nil {
		t.Fatalf("issueToken failed: %v", err)
	}

	uid, err := svc.ParseToken(token)
	if err != nil {
		t.Fatalf("ParseToken returned error: %v", err)
	}
	if uid != 99 {
		t.Fatalf("expected user id 99, got %d", uid)
	}
}

func TestAuthService_ParseToken_Malformed(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)
	_, err := svc.ParseToken("not-a-jwt")
	if err == nil {
		t.Fatalf("expected error for malformed token")
	}
}

func TestAuthService_ParseToken_InvalidSignature(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)

	// Create a token signed with a different key.
	now := time.Now()
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 5,
	})
	badToken, err := tk.SignedString([]byte("different-key"))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(badToken)
	if err == nil {
		t.Fatalf("expected signature verification error")
	}
}

func TestAuthService_ParseToken_Expired(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)

	// Issue an already expired token using the same signing key.
	past := time.Now().Add(-2 * time.Hour)
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(past),
			IssuedAt:  jwt.NewNumericDate(past.Add(-time.Minute)),
		},
		UserID: 11,
	})
	expiredToken, err := tk.SignedString([]byte(testAuthCfg.SigningKey))
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(expiredToken)
	if err == nil {
		t.Fatalf("expected error for expired token")
	}
}

func TestAuthService_ParseToken_UnexpectedAlg(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)

	now := time.Now()

	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("rsa.GenerateKey failed: %v", err)
	}

	tk := jwt.NewWithClaims(jwt.SigningMethodRS256, &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		UserID: 12,
	})
	tokenStr, err := tk.SignedString(privateKey)
	if err != nil {
		t.Fatalf("SignedString failed: %v", err)
	}

	_, err = svc.ParseToken(tokenStr)
	if err == nil {
		t.Fatalf("expected error due to unexpected signing method")
	}
}

// --- Profile tests ---

func TestAuthService_UpdateProfile_ReturnsRefreshedUser(t *testing.T) {
	name := "New Name"
	mock := &mockUsersRepo{
		GetByIDFn: func(id int64) (*models.User, error) {
			return &models.User{ID: id, Username: "alice", DisplayName: "New Name"}, nil
		},
	}
	svc := NewAuthService(mock, testAuthCfg)

	u, err := svc.UpdateProfile(context.Background(), 7, &name, nil)
	if err != nil {
		t.Fatalf("UpdateProfile returned error: %v", err)
	}
	if u.DisplayName != "New Name" {
		t.Fatalf("expected refreshed display name, got %q", u.DisplayName)
	}
}

func TestAuthService_GetUser_NotFound(t *testing.T) {
	svc := NewAuthService(&mockUsersRepo{}, testAuthCfg)

	_, err := svc.GetUser(context.Background(), 404)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got: %v", err)
	}
}
