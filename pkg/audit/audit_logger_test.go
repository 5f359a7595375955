package audit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newObserved() (*Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewLogger(zap.New(core), "portfolio-contact", "test"), logs
}

func TestLogSubmissionStarted(t *testing.T) {
	l, logs := newObserved()

	l.LogSubmissionStarted(context.Background(), "sub-1", "jane@example.com", "emailjs", "Hello, I have a project.")

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.InfoLevel, entry.Level)
	assert.Equal(t, string(EventSubmissionStarted), entry.Message)

	fields := entry.ContextMap()
	assert.Equal(t, "sub-1", fields["submission_id"])
	assert.Equal(t, "j***@example.com", fields["subject_value"])
	assert.Equal(t, "test", fields["env"])
	assert.Contains(t, fields["details"], "emailjs")
	assert.Contains(t, fields["details"], HashValue("Hello, I have a project."))
	assert.NotContains(t, fields["details"], "Hello")
}

func TestLogSubmissionFailedIsError(t *testing.T) {
	l, logs := newObserved()

	l.LogSubmissionFailed(context.Background(), "sub-2", "jane@example.com", 400, errors.New("template not found"))

	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	details := entry.ContextMap()["details"].(string)
	assert.Contains(t, details, `"status_code":400`)
	assert.Contains(t, details, "template not found")
}

func TestSeverityOf(t *testing.T) {
	assert.Equal(t, SeverityINFO, SeverityOf(EventSubmissionAccepted))
	assert.Equal(t, SeverityWARN, SeverityOf(EventValidationFailed))
	assert.Equal(t, SeverityHIGH, SeverityOf(EventConfigMissing))
	assert.Equal(t, SeverityWARN, SeverityOf("something_else"))
}

func TestMaskEmail(t *testing.T) {
	assert.Equal(t, "j***@example.com", MaskEmail("jane@example.com"))
	assert.Equal(t, "***@b.com", MaskEmail("a@b.com"))
	assert.Equal(t, "***", MaskEmail("ab"))
	assert.Equal(t, "***ot-an-email", MaskEmail("not-an-email"))
	assert.Equal(t, "é***@example.com", MaskEmail("élodie@example.com"))
	assert.Equal(t, "***@example.com", MaskEmail("é@example.com"))
	assert.Equal(t, "***", MaskEmail("éé"))
}

func TestHashValue(t *testing.T) {
	h := HashValue("Jane Doe")
	assert.Len(t, h, 16)
	assert.Equal(t, h, HashValue("Jane Doe"))
	assert.NotEqual(t, h, HashValue("John Doe"))
}

func TestDefaultLoggerIsUsable(t *testing.T) {
	l := DefaultLogger()
	require.NotNil(t, l)
	l.Log(context.Background(), Event{Event: EventSubmissionBusy})
}
