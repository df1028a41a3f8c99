package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/hongminglow/crime-report-hub/internal/http/respond"
)

// HealthHandler reports liveness.
type HealthHandler struct{}

// NewHealthHandler creates a health endpoint handler.
func NewHealthHandler() *HealthHandler {
	return &HealthHandler{}
}

// Register wires the handler into the router.
func (h *HealthHandler) Register(r chi.Router) {
	r.Get("/health", h.handle)
}

func (h *HealthHandler) handle(w http.ResponseWriter, r *http.Request) {
	_ = respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
