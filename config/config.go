package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	ProviderEmailJS = "emailjs"
	ProviderSMTP    = "smtp"
)

type Config struct {
	Environment string
	LogLevel    string
	LogFile     string
	// AuditLogFile receives the zap submission events; never the same file as LogFile
	AuditLogFile string
	// Contact relay
	ContactProvider string
	ContactEmailTo  string
	ProviderTimeout time.Duration
	// EmailJS Configuration
	EmailJSServiceID  string
	EmailJSTemplateID string
	EmailJSPublicKey  string
	EmailJSPrivateKey string // Optional access token for strict mode
	EmailJSBaseURL    string
	// SMTP Configuration (Brevo)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string // Verified sender email (different from SMTP login)
}

func LoadConfig() (*Config, error) {
	// Load .env file; a missing file is fine outside local development
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("APP_ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFile:     getEnv("LOG_FILE", "contact.log"),
		// Submission events use their own schema, so they get their own file
		AuditLogFile: getEnv("AUDIT_LOG_FILE", "contact-audit.log"),
		// Contact relay
		ContactProvider: strings.ToLower(strings.TrimSpace(getEnv("CONTACT_PROVIDER", ProviderEmailJS))),
		ContactEmailTo:  strings.TrimSpace(getEnv("CONTACT_EMAIL_TO", "")),
		ProviderTimeout: time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 15)) * time.Second,
		// EmailJS Configuration
		EmailJSServiceID:  getEnv("EMAILJS_SERVICE_ID", ""),
		EmailJSTemplateID: getEnv("EMAILJS_TEMPLATE_ID", ""),
		EmailJSPublicKey:  getEnv("EMAILJS_PUBLIC_KEY", ""),
		EmailJSPrivateKey: getEnv("EMAILJS_PRIVATE_KEY", ""),
		// Strip trailing slash so path joins never produce a double slash
		EmailJSBaseURL: strings.TrimRight(getEnv("EMAILJS_BASE_URL", "https://api.emailjs.com"), "/"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", ""),
	}

	if cfg.ProviderTimeout <= 0 {
		cfg.ProviderTimeout = 15 * time.Second
	}
	if cfg.AuditLogFile == cfg.LogFile {
		cfg.AuditLogFile = cfg.LogFile + ".audit"
	}

	// Missing credentials are reported at submission time, not here
	if cfg.ContactProvider == ProviderEmailJS && !cfg.EmailJSConfigured() {
		log.Println("WARNING: EmailJS identifiers are missing. Contact submissions will fail until configured.")
	}
	if cfg.ContactEmailTo == "" {
		log.Println("WARNING: CONTACT_EMAIL_TO not configured. Contact submissions will fail until configured.")
	}

	return cfg, nil
}

// EmailJSConfigured reports whether the three EmailJS identifiers are present
func (c *Config) EmailJSConfigured() bool {
	return c.EmailJSServiceID != "" && c.EmailJSTemplateID != "" && c.EmailJSPublicKey != ""
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
