package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"yesfundme/internal/models"
	"yesfundme/internal/service"
)

func TestAuthHandlers_RegisterAndLogin(t *testing.T) {
	user := &models.User{ID: 42, Username: "alice", Email: "alice@example.com", DisplayName: "Alice"}
	auth := &mockAuth{signUpUser: user, signUpToken: "tok123", signInUser: user, signInToken: "tok123"}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	// register success
	body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"secret1","display_name":"Alice"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("register status=%d, body=%s", w.Code, w.Body.String())
	}
	var m map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}
	if auth.lastSignUp.Username != "alice" || auth.lastSignUp.DisplayName != "Alice" {
		t.Fatalf("unexpected sign-up params: %+v", auth.lastSignUp)
	}

	// login success
	body = bytes.NewBufferString(`{"username":"alice","password":"secret1"}`)
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("login status=%d, body=%s", w.Code, w.Body.String())
	}
	_ = json.Unmarshal(w.Body.Bytes(), &m)
	if m["token"] != "tok123" {
		t.Fatalf("expected token tok123, got %v", m["token"])
	}

	// register invalid body
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/auth/register", bytes.NewBufferString(`{"username":1}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad body, got %d", w.Code)
	}
}

func TestAuthHandlers_RegisterConflict(t *testing.T) {
	auth := &mockAuth{signUpErr: service.ErrUsernameTaken}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"username":"alice","email":"alice@example.com","password":"secret1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/register", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409 for taken username, got %d, body=%s", w.Code, w.Body.String())
	}
}

func TestAuthHandlers_LoginBadCredentials(t *testing.T) {
	auth := &mockAuth{signInErr: service.ErrInvalidPassword}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"username":"alice","password":"wrong1"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/login", body)
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for bad credentials, got %d", w.Code)
	}
	if contains(w.Body.String(), "wrong1") {
		t.Fatalf("response leaks the submitted password: %s", w.Body.String())
	}
}

func TestAuthHandlers_CurrentUser(t *testing.T) {
	user := &models.User{ID: 7, Username: "bob", Email: "bob@example.com"}
	auth := &mockAuth{parseID: 7, getUser: user}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.Header = authHeader("sometoken")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("me status=%d, body=%s", w.Code, w.Body.String())
	}
	var got models.User
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.ID != 7 || got.Username != "bob" {
		t.Fatalf("unexpected user payload: %+v", got)
	}

	// no token
	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", w.Code)
	}
}

func TestAuthHandlers_UpdateProfile(t *testing.T) {
	updated := &models.User{ID: 7, Username: "bob", DisplayName: "Bobby"}
	auth := &mockAuth{parseID: 7, updatedUser: updated}
	s := &service.Service{Authorization: auth}
	r := newTestRouter(s)

	body := bytes.NewBufferString(`{"display_name":"Bobby"}`)
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPut, "/auth/me", body)
	req.Header = authHeader("sometoken")
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("update status=%d, body=%s", w.Code, w.Body.String())
	}
	var got models.User
	_ = json.Unmarshal(w.Body.Bytes(), &got)
	if got.DisplayName != "Bobby" {
		t.Fatalf("expected updated display name, got %+v", got)
	}
}
