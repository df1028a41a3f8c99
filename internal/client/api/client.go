// Package api talks to the auth endpoints of the crime report hub server.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hongminglow/crime-report-hub/internal/models/dto"
)

const (
	// UnreachableMessage is shown when no response arrives at all.
	UnreachableMessage = "Unable to connect to server. Please check your connection."
	fallbackMessage    = "Authentication failed"
	unexpectedMessage  = "An error occurred while processing your request."
)

// ErrUnreachable marks transport failures: refused connections, DNS errors, timeouts.
var ErrUnreachable = errors.New("server unreachable")

// ServerError is a non-2xx answer from the server.
type ServerError struct {
	Status  int
	Message string
	Details any
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server returned %d: %s", e.Status, e.Message)
}

// Client calls /signup and /signin.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a client for the server at baseURL. A nil httpClient uses
// http.DefaultClient.
func New(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{baseURL: strings.TrimRight(baseURL, "/"), httpClient: httpClient}
}

// Signup registers an account and returns its session.
func (c *Client) Signup(ctx context.Context, req dto.SignupRequest) (dto.Session, error) {
	return c.post(ctx, "/signup", req)
}

// Signin authenticates and returns a fresh session.
func (c *Client) Signin(ctx context.Context, req dto.SigninRequest) (dto.Session, error) {
	return c.post(ctx, "/signin", req)
}

func (c *Client) post(ctx context.Context, path string, payload any) (dto.Session, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return dto.Session{}, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return dto.Session{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return dto.Session{}, fmt.Errorf("%w: %v", ErrUnreachable, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return dto.Session{}, fmt.Errorf("%w: read response: %v", ErrUnreachable, err)
	}

	if resp.StatusCode != http.StatusOK {
		var failure dto.ErrorResponse
		_ = json.Unmarshal(raw, &failure)
		msg := failure.Error
		if msg == "" {
			msg = fallbackMessage
		}
		return dto.Session{}, &ServerError{Status: resp.StatusCode, Message: msg, Details: failure.Details}
	}

	var sess dto.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return dto.Session{}, fmt.Errorf("decode session: %w", err)
	}
	if sess.AccessToken == "" {
		return dto.Session{}, errors.New("decode session: missing access token")
	}
	return sess, nil
}

// Message turns err into the notice shown to the user.
func Message(err error) string {
	var serverErr *ServerError
	switch {
	case errors.As(err, &serverErr):
		return serverErr.Message
	case errors.Is(err, ErrUnreachable):
		return UnreachableMessage
	default:
		return unexpectedMessage
	}
}
