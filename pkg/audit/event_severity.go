package audit

import "go.uber.org/zap/zapcore"

// Severity represents the severity level of a submission event.
// This is derived from EventType, NOT caller-provided.
type Severity string

const (
	SeverityINFO Severity = "INFO"
	SeverityWARN Severity = "WARN"
	SeverityHIGH Severity = "HIGH"
)

// EventSeverityMap defines the hard-coded severity for each event type
var EventSeverityMap = map[EventType]Severity{
	EventSubmissionStarted:  SeverityINFO,
	EventSubmissionAccepted: SeverityINFO,
	EventValidationFailed:   SeverityWARN,
	EventSubmissionBusy:     SeverityWARN,
	EventSubmissionFailed:   SeverityHIGH,
	EventConfigMissing:      SeverityHIGH,
}

// SeverityOf returns the severity for an event type, WARN when unmapped
func SeverityOf(event EventType) Severity {
	if s, ok := EventSeverityMap[event]; ok {
		return s
	}
	return SeverityWARN
}

// ZapLevel maps a severity to the Zap level it is logged at
func (s Severity) ZapLevel() zapcore.Level {
	switch s {
	case SeverityINFO:
		return zapcore.InfoLevel
	case SeverityHIGH:
		return zapcore.ErrorLevel
	default:
		return zapcore.WarnLevel
	}
}
