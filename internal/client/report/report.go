// Package report models the crime report form and relays submissions by email.
package report

import (
	"strings"
	"time"

	"github.com/hongminglow/crime-report-hub/internal/apperr"
	"github.com/hongminglow/crime-report-hub/internal/validation"
)

// CrimeType is one of the categories offered by the report form.
type CrimeType string

const (
	Murder  CrimeType = "murder"
	Rape    CrimeType = "rape"
	Suicide CrimeType = "suicide"
	Fraud   CrimeType = "fraud"
	Other   CrimeType = "other"
)

// CrimeTypes lists the categories in display order.
func CrimeTypes() []CrimeType {
	return []CrimeType{Murder, Rape, Suicide, Fraud, Other}
}

// ParseCrimeType matches s case-insensitively against the known categories.
func ParseCrimeType(s string) (CrimeType, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, ct := range CrimeTypes() {
		if string(ct) == s {
			return ct, true
		}
	}
	return "", false
}

// DateLayout is the format the date field is entered in.
const DateLayout = "2006-01-02"

// Report is one filled-in form.
type Report struct {
	Name        string
	Email       string
	Phone       string
	Location    string
	CrimeType   CrimeType
	Date        string
	Description string
}

// Validate checks that every field is filled in and well formed.
func (r Report) Validate() error {
	fields := []struct {
		name, value string
	}{
		{"name", r.Name},
		{"email", r.Email},
		{"phone", r.Phone},
		{"location", r.Location},
		{"crime_type", string(r.CrimeType)},
		{"date", r.Date},
		{"description", r.Description},
	}
	missing := map[string]string{}
	for _, f := range fields {
		if strings.TrimSpace(f.value) == "" {
			missing[f.name] = "This field is required"
		}
	}
	if len(missing) > 0 {
		return apperr.WithDetails(apperr.CodeMissingFields, "All fields are required", missing)
	}

	if !validation.IsEmail(validation.NormalizeEmail(r.Email)) {
		return apperr.New(apperr.CodeInvalidEmailFormat, "Please enter a valid email address")
	}
	if _, ok := ParseCrimeType(string(r.CrimeType)); !ok {
		return apperr.New(apperr.CodeInvalidField, "Please select a valid crime type")
	}
	if _, err := time.Parse(DateLayout, strings.TrimSpace(r.Date)); err != nil {
		return apperr.New(apperr.CodeInvalidField, "Please enter the date as YYYY-MM-DD")
	}
	return nil
}

// TemplateParams maps the form onto the email template's variables.
func (r Report) TemplateParams() map[string]string {
	return map[string]string{
		"from_name":   r.Name,
		"from_email":  r.Email,
		"phone":       r.Phone,
		"location":    r.Location,
		"crime_type":  string(r.CrimeType),
		"date":        r.Date,
		"description": r.Description,
	}
}
