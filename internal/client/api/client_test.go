package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/crime-report-hub/internal/models/dto"
)

func TestClient_SigninSuccess(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/signin", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req dto.SigninRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "jane@example.com", req.Email)

		_ = json.NewEncoder(w).Encode(dto.Session{AccessToken: "tok", Username: "jane", Fullname: "jane doe", ProfileImg: "img"})
	}))
	defer ts.Close()

	sess, err := New(ts.URL+"/", ts.Client()).Signin(context.Background(), dto.SigninRequest{Email: "jane@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, "tok", sess.AccessToken)
	assert.Equal(t, "jane", sess.Username)
}

func TestClient_SignupServerError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/signup", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"Account already exists","details":"This email is already registered"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Signup(context.Background(), dto.SignupRequest{Fullname: "Jane", Email: "jane@example.com", Password: "secret1"})
	require.Error(t, err)

	var serverErr *ServerError
	require.True(t, errors.As(err, &serverErr))
	assert.Equal(t, http.StatusConflict, serverErr.Status)
	assert.Equal(t, "This email is already registered", serverErr.Details)
	assert.Equal(t, "Account already exists", Message(err))
}

func TestClient_ServerErrorWithoutBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Signin(context.Background(), dto.SigninRequest{})
	assert.Equal(t, "Authentication failed", Message(err))
}

func TestClient_Unreachable(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	_, err := New(url, nil).Signin(context.Background(), dto.SigninRequest{Email: "a@b.co", Password: "secret1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnreachable)
	assert.Equal(t, UnreachableMessage, Message(err))
}

func TestClient_MalformedSuccessBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"username":"jane"}`))
	}))
	defer ts.Close()

	_, err := New(ts.URL, nil).Signin(context.Background(), dto.SigninRequest{})
	require.Error(t, err)
	assert.Equal(t, "An error occurred while processing your request.", Message(err))
}
