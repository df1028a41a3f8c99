// Package validation holds the field rules shared by the API and the
// terminal client, so both sides reject the same input with the same message.
package validation

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
)

const (
	MinPasswordLength = 6
	// MaxPasswordBytes is bcrypt's input limit.
	MaxPasswordBytes  = 72
	MinFullnameLength = 3
	MaxFullnameLength = 20
	MinUsernameLength = 3
	MaxBioLength      = 200
)

var emailPattern = regexp.MustCompile(`^\w+([\.-]?\w+)*@\w+([\.-]?\w+)*(\.\w{2,3})+$`)

// IsEmail reports whether s looks like local@domain.tld.
func IsEmail(s string) bool {
	return emailPattern.MatchString(s)
}

// NormalizeEmail trims and lower-cases an address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func blank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func requiredDetail(value, message string) any {
	if blank(value) {
		return message
	}
	return nil
}

// Signup checks a registration request in order: presence, email format,
// password length, fullname length.
func Signup(fullname, email, password string) error {
	if blank(email) || blank(password) || blank(fullname) {
		return apperr.WithDetails(apperr.CodeMissingFields, "All fields are required", map[string]any{
			"email":    requiredDetail(email, "Email is required"),
			"password": requiredDetail(password, "Password is required"),
			"fullname": requiredDetail(fullname, "Full name is required"),
		})
	}
	if !IsEmail(NormalizeEmail(email)) {
		return apperr.New(apperr.CodeInvalidEmailFormat, "Please enter a valid email address")
	}
	if err := Password(password); err != nil {
		return err
	}
	return Fullname(fullname)
}

// Signin checks the presence of both credentials. Format rules are not
// applied so that an unknown or mistyped address still reaches the lookup.
func Signin(email, password string) error {
	if blank(email) || blank(password) {
		return apperr.WithDetails(apperr.CodeMissingFields, "Email and password are required", map[string]any{
			"email":    requiredDetail(email, "Email is required"),
			"password": requiredDetail(password, "Password is required"),
		})
	}
	return nil
}

// SigninForm is the stricter client-side check run before a sign-in request
// is sent.
func SigninForm(email, password string) error {
	if err := Signin(email, password); err != nil {
		return err
	}
	if !IsEmail(NormalizeEmail(email)) {
		return apperr.New(apperr.CodeInvalidEmailFormat, "Please enter a valid email address")
	}
	return Password(password)
}

// Password enforces the minimum length in characters and the maximum in bytes.
func Password(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return apperr.New(apperr.CodeInvalidField, "Password must be at least 6 characters long")
	}
	if len(password) > MaxPasswordBytes {
		return apperr.New(apperr.CodeInvalidField, "Password must be at most 72 bytes")
	}
	return nil
}

// Fullname enforces the 3–20 character bounds on the trimmed name.
func Fullname(fullname string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(fullname))
	if n < MinFullnameLength || n > MaxFullnameLength {
		return apperr.New(apperr.CodeInvalidField, "Full name must be between 3 and 20 characters")
	}
	return nil
}
