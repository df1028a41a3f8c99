package apperr

import "net/http"

// Code is a machine-readable failure identifier.
type Code string

const (
	CodeMissingFields      Code = "missing_fields"
	CodeInvalidEmailFormat Code = "invalid_email_format"
	CodeInvalidField       Code = "invalid_field"
	CodeInvalidJSON        Code = "invalid_json"
	CodeEmailAlreadyExists Code = "email_already_exists"
	CodeAccountNotFound    Code = "account_not_found"
	CodeInvalidCredentials Code = "invalid_credentials"
	CodePersistenceFailure Code = "persistence_failure"
	CodeInternalFailure    Code = "internal_failure"
)

// Kind groups codes into the failure taxonomy exposed to callers.
type Kind string

const (
	KindValidation     Kind = "ValidationError"
	KindConflict       Kind = "ConflictError"
	KindNotFound       Kind = "NotFoundError"
	KindAuthentication Kind = "AuthenticationError"
	KindInternal       Kind = "InternalError"
)

// Kind returns the taxonomy bucket for the code. Unknown codes are internal.
func (c Code) Kind() Kind {
	switch c {
	case CodeMissingFields, CodeInvalidEmailFormat, CodeInvalidField, CodeInvalidJSON:
		return KindValidation
	case CodeEmailAlreadyExists:
		return KindConflict
	case CodeAccountNotFound:
		return KindNotFound
	case CodeInvalidCredentials:
		return KindAuthentication
	default:
		return KindInternal
	}
}

// HTTPStatus maps the code to its response status.
func (c Code) HTTPStatus() int {
	switch c.Kind() {
	case KindValidation:
		return http.StatusBadRequest
	case KindConflict:
		return http.StatusConflict
	case KindNotFound:
		return http.StatusNotFound
	case KindAuthentication:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
