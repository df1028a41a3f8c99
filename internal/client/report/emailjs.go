package report

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/hongminglow/crime-report-hub/internal/client/config"
)

const (
	// SuccessMessage is shown once the relay accepts a report.
	SuccessMessage = "Crime reported successfully!"
	// FailureMessage is shown when the relay rejects a report without a reason.
	FailureMessage = "Failed to send report. Please try again."
)

// ErrNotConfigured is returned when the relay identifiers are missing.
var ErrNotConfigured = errors.New("email relay is not configured")

// Sender delivers a report.
type Sender interface {
	Send(ctx context.Context, r Report) error
}

// EmailJSSender posts reports to the EmailJS REST API.
type EmailJSSender struct {
	cfg        config.EmailJS
	httpClient *http.Client
}

// NewEmailJSSender builds a sender. A nil httpClient uses http.DefaultClient.
func NewEmailJSSender(cfg config.EmailJS, httpClient *http.Client) *EmailJSSender {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &EmailJSSender{cfg: cfg, httpClient: httpClient}
}

type sendRequest struct {
	ServiceID      string            `json:"service_id"`
	TemplateID     string            `json:"template_id"`
	UserID         string            `json:"user_id"`
	TemplateParams map[string]string `json:"template_params"`
}

// SendError carries the relay's rejection text.
type SendError struct {
	Status int
	Text   string
}

func (e *SendError) Error() string {
	if e.Text == "" {
		return FailureMessage
	}
	return e.Text
}

// Send validates r and posts it once. Failures are not retried.
func (s *EmailJSSender) Send(ctx context.Context, r Report) error {
	if !s.cfg.Configured() {
		return ErrNotConfigured
	}
	if err := r.Validate(); err != nil {
		return err
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      s.cfg.ServiceID,
		TemplateID:     s.cfg.TemplateID,
		UserID:         s.cfg.UserID,
		TemplateParams: r.TemplateParams(),
	})
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build report request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send report: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &SendError{Status: resp.StatusCode, Text: strings.TrimSpace(string(text))}
	}
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}
