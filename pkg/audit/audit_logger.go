package audit

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EventType represents the type of submission event
type EventType string

const (
	EventValidationFailed   EventType = "validation_failed"
	EventSubmissionStarted  EventType = "submission_started"
	EventSubmissionAccepted EventType = "submission_accepted"
	EventSubmissionFailed   EventType = "submission_failed"
	EventSubmissionBusy     EventType = "submission_rejected_busy"
	EventConfigMissing      EventType = "config_missing"
)

// Event represents a contact submission event to be logged
type Event struct {
	Timestamp    time.Time              `json:"timestamp"`
	Service      string                 `json:"service"`
	Environment  string                 `json:"env"`
	Level        string                 `json:"level"`
	Event        EventType              `json:"event"`
	SubmissionID string                 `json:"submission_id,omitempty"`
	SubjectType  string                 `json:"subject_type,omitempty"`  // "email", "name"
	SubjectValue string                 `json:"subject_value,omitempty"` // Masked or hashed for PII
	Details      map[string]interface{} `json:"details,omitempty"`
}

// Logger provides structured logging for submission events
type Logger struct {
	zapLogger   *zap.Logger
	serviceName string
	environment string
}

var (
	defaultLogger *Logger
	defaultMu     sync.Mutex
)

// InitLogger builds a production Zap logger writing JSON to outputPath
// and installs it as the default.
func InitLogger(serviceName, environment, outputPath string) *Logger {
	config := zap.NewProductionConfig()
	config.EncoderConfig.TimeKey = "timestamp"
	config.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	config.EncoderConfig.LevelKey = "level"
	config.EncoderConfig.MessageKey = "message"

	if outputPath == "" {
		outputPath = "stderr"
	}
	config.OutputPaths = []string{outputPath}
	config.ErrorOutputPaths = []string{outputPath}

	zl, err := config.Build(zap.AddCaller())
	if err != nil {
		// Fallback to a basic logger if config fails
		zl, _ = zap.NewProduction()
	}

	l := NewLogger(zl, serviceName, environment)

	defaultMu.Lock()
	defaultLogger = l
	defaultMu.Unlock()
	return l
}

// NewLogger wraps an existing Zap logger
func NewLogger(zl *zap.Logger, serviceName, environment string) *Logger {
	if zl == nil {
		zl = zap.NewNop()
	}
	return &Logger{
		zapLogger:   zl,
		serviceName: serviceName,
		environment: environment,
	}
}

// DefaultLogger returns the logger installed by InitLogger, or a no-op logger
func DefaultLogger() *Logger {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLogger == nil {
		defaultLogger = NewLogger(zap.NewNop(), "portfolio-contact", "development")
	}
	return defaultLogger
}

// Log logs a submission event
func (l *Logger) Log(ctx context.Context, event Event) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	event.Service = l.serviceName
	event.Environment = l.environment

	level := SeverityOf(event.Event).ZapLevel()
	event.Level = level.String()

	fields := []zap.Field{
		zap.String("service", event.Service),
		zap.String("env", event.Environment),
		zap.String("event", string(event.Event)),
	}
	if event.SubmissionID != "" {
		fields = append(fields, zap.String("submission_id", event.SubmissionID))
	}
	if event.SubjectType != "" {
		fields = append(fields, zap.String("subject_type", event.SubjectType))
	}
	if event.SubjectValue != "" {
		fields = append(fields, zap.String("subject_value", event.SubjectValue))
	}
	if len(event.Details) > 0 {
		detailsJSON, _ := json.Marshal(event.Details)
		fields = append(fields, zap.String("details", string(detailsJSON)))
	}

	l.zapLogger.Log(level, string(event.Event), fields...)
}

// LogSubmissionStarted logs the single outbound request of a submission.
// The message body is recorded only as a hash.
func (l *Logger) LogSubmissionStarted(ctx context.Context, submissionID, senderEmail, provider, message string) {
	l.Log(ctx, Event{
		Event:        EventSubmissionStarted,
		SubmissionID: submissionID,
		SubjectType:  "email",
		SubjectValue: MaskEmail(senderEmail),
		Details: map[string]interface{}{
			"provider":     provider,
			"message_hash": HashValue(message),
		},
	})
}

// LogSubmissionFailed logs a submission folded into the generic failure notice
func (l *Logger) LogSubmissionFailed(ctx context.Context, submissionID, senderEmail string, statusCode int, cause error) {
	details := map[string]interface{}{}
	if statusCode != 0 {
		details["status_code"] = statusCode
	}
	if cause != nil {
		details["error"] = cause.Error()
	}
	l.Log(ctx, Event{
		Event:        EventSubmissionFailed,
		SubmissionID: submissionID,
		SubjectType:  "email",
		SubjectValue: MaskEmail(senderEmail),
		Details:      details,
	})
}

// Sync flushes any buffered log entries
func (l *Logger) Sync() error {
	return l.zapLogger.Sync()
}

// --- Helper Functions ---

// MaskEmail masks an email for logging (e.g., "j***@example.com")
func MaskEmail(email string) string {
	email = strings.TrimSpace(email)
	if utf8.RuneCountInString(email) < 3 {
		return "***"
	}
	first, size := utf8.DecodeRuneInString(email)
	atIndex := strings.IndexByte(email, '@')
	if atIndex <= size {
		return "***" + email[size:]
	}
	return string(first) + "***" + email[atIndex:]
}

// HashValue creates a SHA256 hash of a value (for logging without PII)
func HashValue(value string) string {
	hash := sha256.Sum256([]byte(value))
	return hex.EncodeToString(hash[:8]) // First 16 chars of hex
}
