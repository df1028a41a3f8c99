package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/cors"
)

// CORS allows the configured client origins with credentials, answering
// preflight requests before they reach the router.
func CORS(allowedOrigins []string, next http.Handler) http.Handler {
	normalized := make([]string, 0, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		if trimmed := strings.TrimRight(strings.TrimSpace(origin), "/"); trimmed != "" {
			normalized = append(normalized, strings.ToLower(trimmed))
		}
	}

	return cors.Handler(cors.Options{
		AllowedOrigins:   normalized,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           300,
	})(next)
}
