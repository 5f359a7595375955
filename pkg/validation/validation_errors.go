package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Failure reasons reported alongside each message
const (
	ReasonRequired      = "required"
	ReasonTooShort      = "too short"
	ReasonTooLong       = "too long"
	ReasonInvalidFormat = "invalid format"
	ReasonInvalid       = "invalid"
)

// FieldLabels maps struct field names to user-facing labels
var FieldLabels = map[string]string{
	"Name":    "Name",
	"Email":   "Email",
	"Subject": "Subject",
	"Message": "Message",
}

// Describe converts a single validator failure into a reason and a user-facing message
func Describe(e validator.FieldError) (reason, message string) {
	label := getFieldLabel(e.StructField())
	param := e.Param()

	switch e.Tag() {
	case "required", "notblank":
		return ReasonRequired, fmt.Sprintf("%s is required", label)

	case "min":
		return ReasonTooShort, fmt.Sprintf("%s must be at least %s characters", label, param)

	case "max":
		return ReasonTooLong, fmt.Sprintf("%s must not exceed %s characters", label, param)

	case "email", "contact_email":
		return ReasonInvalidFormat, "Please enter a valid email address"

	default:
		// Fallback for unknown tags
		return ReasonInvalid, fmt.Sprintf("%s is invalid (%s)", label, e.Tag())
	}
}

// FormatValidationErrors converts validator.ValidationErrors to user-facing messages
func FormatValidationErrors(err error) []string {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		// Not a validation error, return generic message
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		_, msg := Describe(e)
		messages = append(messages, msg)
	}
	return messages
}

// getFieldLabel returns the user-facing label for a field
func getFieldLabel(fieldName string) string {
	if label, ok := FieldLabels[fieldName]; ok {
		return label
	}
	// Return field name with spaces between camelCase words
	return formatCamelCase(fieldName)
}

// formatCamelCase converts CamelCase to spaced words
func formatCamelCase(s string) string {
	var result strings.Builder
	for i, r := range s {
		if i > 0 && r >= 'A' && r <= 'Z' {
			result.WriteRune(' ')
		}
		result.WriteRune(r)
	}
	return result.String()
}
