package client

import (
	"context"
	"errors"

	"yesfundme/internal/models"
)

// State describes where a session is in its lifecycle.
type State string

const (
	// StateLoading is the transient startup state while a persisted
	// credential is being validated.
	StateLoading         State = "loading"
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticated   State = "authenticated"
)

// Session owns the single credential-plus-identity slot for one client
// process. Callers are expected to serialize access themselves; the session
// is meant to live on a single event loop and does no internal locking.
type Session struct {
	client *Client
	store  TokenStore

	state State
	token string
	user  *models.User
}

// NewSession starts in the loading state; call Resume to settle it.
func NewSession(client *Client, store TokenStore) *Session {
	return &Session{client: client, store: store, state: StateLoading}
}

func (s *Session) State() State       { return s.state }
func (s *Session) Token() string      { return s.token }
func (s *Session) User() *models.User { return s.user }

// Resume settles the startup state from the persisted credential. A token
// that fails the local freshness check is discarded without a server round
// trip; a fresh-looking token still has to resolve an identity remotely.
func (s *Session) Resume(ctx context.Context) error {
	token, err := s.store.Load()
	if err != nil || !TokenUsable(token) {
		_ = s.store.Clear()
		s.teardown()
		return nil
	}

	user, err := s.client.CurrentUser(ctx, token)
	if err != nil {
		_ = s.store.Clear()
		s.teardown()
		if errors.Is(err, ErrUnauthorized) {
			return nil
		}
		return err
	}

	s.token = token
	s.user = user
	s.state = StateAuthenticated
	return nil
}

// Login authenticates and stores the returned credential. On failure the
// session keeps its current state.
func (s *Session) Login(ctx context.Context, username, password string) error {
	user, token, err := s.client.Login(ctx, username, password)
	if err != nil {
		return err
	}
	return s.adopt(token, user)
}

// Register creates an account and signs the session in with the returned
// credential.
func (s *Session) Register(ctx context.Context, p RegisterParams) error {
	user, token, err := s.client.Register(ctx, p)
	if err != nil {
		return err
	}
	return s.adopt(token, user)
}

// Logout discards the credential and identity. It never contacts the server
// and always leaves the session unauthenticated, even if clearing the store
// fails.
func (s *Session) Logout() error {
	err := s.store.Clear()
	s.teardown()
	return err
}

// UpdateProfile mutates the held identity's display fields. A server
// rejection of the credential tears the session down.
func (s *Session) UpdateProfile(ctx context.Context, displayName, avatarURL *string) error {
	if s.state != StateAuthenticated {
		return ErrUnauthorized
	}

	user, err := s.client.UpdateProfile(ctx, s.token, displayName, avatarURL)
	if err != nil {
		if errors.Is(err, ErrUnauthorized) {
			_ = s.store.Clear()
			s.teardown()
		}
		return err
	}
	s.user = user
	return nil
}

func (s *Session) adopt(token string, user *models.User) error {
	s.token = token
	s.user = user
	s.state = StateAuthenticated
	return s.store.Save(token)
}

func (s *Session) teardown() {
	s.token = ""
	s.user = nil
	s.state = StateUnauthenticated
}
