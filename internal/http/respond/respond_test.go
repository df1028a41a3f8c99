package respond

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	JSON(rec, http.StatusOK, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestError_OmitsEmptyDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	Error(rec, http.StatusNotFound, "Account not found", nil)

	body := decode(t, rec)
	assert.Equal(t, "Account not found", body["error"])
	assert.NotContains(t, body, "details")
}

func TestAppError(t *testing.T) {
	cause := errors.New("E11000 duplicate key error")
	internal := &apperr.Error{
		Code:    apperr.CodePersistenceFailure,
		Message: "Registration failed",
		Details: "An error occurred during registration",
		Cause:   cause,
	}

	t.Run("production hides cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		status := AppError(rec, internal, false)
		assert.Equal(t, http.StatusInternalServerError, status)
		body := decode(t, rec)
		assert.Equal(t, "Registration failed", body["error"])
		assert.Equal(t, "An error occurred during registration", body["details"])
	})

	t.Run("development shows cause", func(t *testing.T) {
		rec := httptest.NewRecorder()
		AppError(rec, internal, true)
		assert.Equal(t, cause.Error(), decode(t, rec)["details"])
	})

	t.Run("client errors keep their details", func(t *testing.T) {
		rec := httptest.NewRecorder()
		err := apperr.WithDetails(apperr.CodeEmailAlreadyExists, "Account already exists", "This email is already registered")
		status := AppError(rec, err, true)
		assert.Equal(t, http.StatusConflict, status)
		assert.Equal(t, "This email is already registered", decode(t, rec)["details"])
	})

	t.Run("uncoded error is internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		status := AppError(rec, errors.New("boom"), false)
		assert.Equal(t, http.StatusInternalServerError, status)
		assert.Equal(t, "Internal server error", decode(t, rec)["error"])
	})
}

func TestJSON_ReturnsEncodeError(t *testing.T) {
	rec := httptest.NewRecorder()
	err := JSON(rec, http.StatusOK, map[string]any{"c": make(chan int)})

	require.Error(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
