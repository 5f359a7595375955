package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{
		"CONTACT_PROVIDER", "CONTACT_EMAIL_TO", "PROVIDER_TIMEOUT_SECONDS",
		"EMAILJS_SERVICE_ID", "EMAILJS_TEMPLATE_ID", "EMAILJS_PUBLIC_KEY", "EMAILJS_BASE_URL",
	} {
		t.Setenv(key, "")
	}
	t.Setenv("CONTACT_PROVIDER", "emailjs")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "not-a-number")
	t.Setenv("EMAILJS_BASE_URL", "https://api.emailjs.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderEmailJS, cfg.ContactProvider)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
	assert.Equal(t, "https://api.emailjs.com", cfg.EmailJSBaseURL)
	assert.False(t, cfg.EmailJSConfigured())
}

func TestLoadConfigFromEnvironment(t *testing.T) {
	t.Setenv("CONTACT_PROVIDER", " SMTP ")
	t.Setenv("CONTACT_EMAIL_TO", " owner@example.com ")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "3")
	t.Setenv("EMAILJS_SERVICE_ID", "service_1")
	t.Setenv("EMAILJS_TEMPLATE_ID", "template_1")
	t.Setenv("EMAILJS_PUBLIC_KEY", "public_1")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, ProviderSMTP, cfg.ContactProvider)
	assert.Equal(t, "owner@example.com", cfg.ContactEmailTo)
	assert.Equal(t, 3*time.Second, cfg.ProviderTimeout)
	assert.True(t, cfg.EmailJSConfigured())
}

func TestLoadConfigRejectsNonPositiveTimeout(t *testing.T) {
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "0")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Second, cfg.ProviderTimeout)
}

func TestLoadConfigSeparatesAuditLog(t *testing.T) {
	for _, key := range []string{"LOG_FILE", "AUDIT_LOG_FILE"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "contact.log", cfg.LogFile)
	assert.Equal(t, "contact-audit.log", cfg.AuditLogFile)

	t.Setenv("LOG_FILE", "/var/log/contact.log")
	t.Setenv("AUDIT_LOG_FILE", "/var/log/contact.log")

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "/var/log/contact.log.audit", cfg.AuditLogFile)
}
