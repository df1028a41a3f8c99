package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("SESSION_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:5000", cfg.ServerDomain)
	assert.Equal(t, 15*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "https://api.emailjs.com/api/v1.0/email/send", cfg.EmailJS.Endpoint)
	assert.Equal(t, "session.json", filepath.Base(cfg.SessionFile))
	assert.Equal(t, appDir, filepath.Base(filepath.Dir(cfg.SessionFile)))
	assert.False(t, cfg.EmailJS.Configured())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SERVER_DOMAIN", "https://api.example.com/ ")
	t.Setenv("SESSION_FILE", "/tmp/session.json")
	t.Setenv("REQUEST_TIMEOUT", "3s")
	t.Setenv("EMAILJS_SERVICE_ID", "service_x")
	t.Setenv("EMAILJS_TEMPLATE_ID", "template_y")
	t.Setenv("EMAILJS_USER_ID", "user_z")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.ServerDomain)
	assert.Equal(t, "/tmp/session.json", cfg.SessionFile)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "service_x", cfg.EmailJS.ServiceID)
	assert.Equal(t, "template_y", cfg.EmailJS.TemplateID)
	assert.Equal(t, "user_z", cfg.EmailJS.UserID)
	assert.True(t, cfg.EmailJS.Configured())
}

func TestLoad_InvalidTimeout(t *testing.T) {
	t.Setenv("SESSION_FILE", "/tmp/session.json")
	t.Setenv("REQUEST_TIMEOUT", "0s")

	_, err := Load()
	assert.Error(t, err)
}
