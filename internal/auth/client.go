// Package auth talks to the external authentication backend. Passwords are
// never handled locally beyond forwarding them.
package auth

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	loginPath  = "/api/auth/login"
	signupPath = "/api/auth/signup"

	LoginFailed      = "Login failed"
	SignupFailed     = "Signup failed"
	SomethingWrong   = "Something went wrong"
	maxResponseBytes = 1 << 20
)

// ErrUnavailable covers transport failures and unreadable responses.
var ErrUnavailable = errors.New("authentication service unavailable")

// Identity is returned by a successful login or signup.
type Identity struct {
	Username string `json:"username"`
	Token    string `json:"token"`
}

// Error is a rejection by the backend.
type Error struct {
	StatusCode int
	ServerText string
	fallback   string
}

func (e *Error) Error() string {
	return fmt.Sprintf("auth rejected (%d): %s", e.StatusCode, e.Message())
}

// Message is the text to show the user: the backend's own message when it
// sent one.
func (e *Error) Message() string {
	if e.ServerText != "" {
		return e.ServerText
	}
	return e.fallback
}

// UserMessage maps any error from Login or Signup to display text.
func UserMessage(err error) string {
	var authErr *Error
	if errors.As(err, &authErr) {
		return authErr.Message()
	}
	return SomethingWrong
}

// Client calls the backend's login and signup endpoints.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient returns a Client for baseURL with a per-request timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

func (c *Client) Login(ctx context.Context, username, password string) (Identity, error) {
	return c.post(ctx, loginPath, username, password, LoginFailed)
}

func (c *Client) Signup(ctx context.Context, username, password string) (Identity, error) {
	return c.post(ctx, signupPath, username, password, SignupFailed)
}

func (c *Client) post(ctx context.Context, path, username, password, fallback string) (Identity, error) {
	body, err := json.Marshal(map[string]string{"username": username, "password": password})
	if err != nil {
		return Identity{}, fmt.Errorf("encode credentials: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Identity{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return Identity{}, fmt.Errorf("%w: read response: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var failure struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(data, &failure)
		return Identity{}, &Error{StatusCode: resp.StatusCode, ServerText: failure.Message, fallback: fallback}
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return Identity{}, fmt.Errorf("%w: decode response: %v", ErrUnavailable, err)
	}
	if identity.Username == "" {
		identity.Username = username
	}
	return identity, nil
}
