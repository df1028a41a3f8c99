package respond

import (
	"encoding/json"
	"net/http"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
	"github.com/hongminglow/crime-report-hub/internal/models/dto"
)

// JSON writes payload as the response body. The status line is sent before
// encoding, so an encode failure leaves the body truncated and is returned for
// the caller's logger.
func JSON(w http.ResponseWriter, status int, payload any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(payload)
}

// Error writes a failure body with an optional details value.
func Error(w http.ResponseWriter, status int, message string, details any) {
	_ = JSON(w, status, dto.ErrorResponse{Error: message, Details: details})
}

// AppError writes err using its code's status. Internal failures carry their
// production-safe hint unless development is set, in which case the cause's
// message is returned instead.
func AppError(w http.ResponseWriter, err error, development bool) int {
	appErr := apperr.From(err)
	status := appErr.Code.HTTPStatus()
	details := appErr.Details
	if appErr.Code.Kind() == apperr.KindInternal && development && appErr.Cause != nil {
		details = appErr.Cause.Error()
	}
	Error(w, status, appErr.Message, details)
	return status
}
