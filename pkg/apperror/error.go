package apperror

import "errors"

// Kind classifies an AppError for the caller
type Kind string

const (
	KindValidation    Kind = "validation"
	KindSubmission    Kind = "submission"
	KindConfiguration Kind = "configuration"
)

type AppError struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error includes the wrapped cause so logs keep the full chain
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(kind Kind, message string, err error) *AppError {
	return &AppError{
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}

func Validation(message string) *AppError {
	return New(KindValidation, message, nil)
}

func Submission(message string, err error) *AppError {
	return New(KindSubmission, message, err)
}

func Configuration(message string) *AppError {
	return New(KindConfiguration, message, nil)
}

// IsKind reports whether err wraps an AppError of the given kind
func IsKind(err error, kind Kind) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind == kind
	}
	return false
}
