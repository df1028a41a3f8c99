package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
	"github.com/hongminglow/crime-report-hub/internal/http/respond"
	"github.com/hongminglow/crime-report-hub/internal/logging"
	"github.com/hongminglow/crime-report-hub/internal/models/dto"
)

const maxBodyBytes = 1 << 20

// AuthService is the signup/signin core the handlers delegate to.
type AuthService interface {
	Signup(ctx context.Context, req dto.SignupRequest) (dto.Session, error)
	Signin(ctx context.Context, req dto.SigninRequest) (dto.Session, error)
}

// AuthHandler owns the signup/signin endpoints.
type AuthHandler struct {
	service     AuthService
	logger      logging.Logger
	development bool
}

// NewAuthHandler constructs the handler. development controls whether
// internal error causes are returned to clients.
func NewAuthHandler(service AuthService, logger logging.Logger, development bool) *AuthHandler {
	return &AuthHandler{service: service, logger: logger, development: development}
}

// Register attaches auth routes to the router.
func (h *AuthHandler) Register(r chi.Router) {
	r.Post("/signup", h.handleSignup)
	r.Post("/signin", h.handleSignin)
}

func (h *AuthHandler) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req dto.SignupRequest
	if !h.decode(w, r, &req) {
		return
	}
	session, err := h.service.Signup(r.Context(), req)
	if err != nil {
		h.fail(w, r, "signup", err)
		return
	}
	h.logger.Info(r.Context(), "account created", "username", session.Username)
	h.write(w, r, session)
}

func (h *AuthHandler) handleSignin(w http.ResponseWriter, r *http.Request) {
	var req dto.SigninRequest
	if !h.decode(w, r, &req) {
		return
	}
	session, err := h.service.Signin(r.Context(), req)
	if err != nil {
		h.fail(w, r, "signin", err)
		return
	}
	h.logger.Info(r.Context(), "signed in", "username", session.Username)
	h.write(w, r, session)
}

func (h *AuthHandler) write(w http.ResponseWriter, r *http.Request, session dto.Session) {
	if err := respond.JSON(w, http.StatusOK, session); err != nil {
		h.logger.Error(r.Context(), "encode response", "error", err)
	}
}

func (h *AuthHandler) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.AppError(w, apperr.Wrap(apperr.CodeInvalidJSON, "invalid JSON payload", err), h.development)
		return false
	}
	return true
}

func (h *AuthHandler) fail(w http.ResponseWriter, r *http.Request, op string, err error) {
	status := respond.AppError(w, err, h.development)
	code := apperr.CodeOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), op+" failed", "code", code, "error", err)
		return
	}
	h.logger.Warn(r.Context(), op+" rejected", "code", code, "status", status)
}
