package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"yesfundme/internal/models"
)

// ErrUnauthorized marks a server-side credential rejection. Sessions treat
// it as the authoritative signal to tear down local state.
var ErrUnauthorized = errors.New("unauthorized")

const defaultTimeout = 15 * time.Second

// Client is a thin JSON wrapper over the HTTP API.
type Client struct {
	baseURL string
	http    *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
}

// NewWithHTTPClient allows callers to supply their own transport, e.g. for
// custom TLS settings or tests.
func NewWithHTTPClient(baseURL string, hc *http.Client) *Client {
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), http: hc}
}

type authResponse struct {
	Token string       `json:"token"`
	User  *models.User `json:"user"`
}

// RegisterParams mirrors the registration request body.
type RegisterParams struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name,omitempty"`
}

// Login exchanges credentials for a token and identity.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	body := map[string]string{"username": username, "password": password}
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/login", "", body, &out); err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

// Register creates an account and returns the fresh token and identity.
func (c *Client) Register(ctx context.Context, p RegisterParams) (*models.User, string, error) {
	var out authResponse
	if err := c.doJSON(ctx, http.MethodPost, "/auth/register", "", p, &out); err != nil {
		return nil, "", err
	}
	return out.User, out.Token, nil
}

// CurrentUser resolves the identity behind a token.
func (c *Client) CurrentUser(ctx context.Context, token string) (*models.User, error) {
	var out models.User
	if err := c.doJSON(ctx, http.MethodGet, "/auth/me", token, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateProfile patches display fields; nil fields are left untouched.
func (c *Client) UpdateProfile(ctx context.Context, token string, displayName, avatarURL *string) (*models.User, error) {
	body := map[string]*string{}
	if displayName != nil {
		body["display_name"] = displayName
	}
	if avatarURL != nil {
		body["avatar_url"] = avatarURL
	}
	var out models.User
	if err := c.doJSON(ctx, http.MethodPut, "/auth/me", token, body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// doJSON performs one request, attaching the bearer token when present, and
// decodes the response into out.
func (c *Client) doJSON(ctx context.Context, method, path, token string, in, out any) error {
	var body *bytes.Buffer
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewBuffer(data)
	} else {
		body = &bytes.Buffer{}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusUnauthorized {
		return ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr struct {
			Error string `json:"error"`
		}
		if decodeErr := json.NewDecoder(resp.Body).Decode(&apiErr); decodeErr == nil && apiErr.Error != "" {
			return fmt.Errorf("server: %s (status %d)", apiErr.Error, resp.StatusCode)
		}
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
