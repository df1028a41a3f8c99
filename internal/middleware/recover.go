package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"github.com/hongminglow/crime-report-hub/internal/http/respond"
	"github.com/hongminglow/crime-report-hub/internal/logging"
)

// Recover turns a handler panic into a 500 response.
func Recover(logger logging.Logger, development bool, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			logger.Error(r.Context(), "panic recovered", "panic", fmt.Sprint(rec), "stack", string(debug.Stack()))

			var details any
			if development {
				details = fmt.Sprint(rec)
			}
			respond.Error(w, http.StatusInternalServerError, "Internal server error", details)
		}()
		next.ServeHTTP(w, r)
	})
}
