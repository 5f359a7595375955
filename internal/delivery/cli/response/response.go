package response

import (
	"encoding/json"
	"io"
)

// Response standardizes the JSON output of the CLI
type Response struct {
	Success      bool        `json:"success"`
	Message      string      `json:"message"`
	Data         interface{} `json:"data,omitempty"`
	Error        interface{} `json:"error,omitempty"`
	SubmissionID string      `json:"submission_id,omitempty"`
}

// Success writes a success response
func Success(w io.Writer, message string, data interface{}, submissionID string) error {
	return write(w, Response{
		Success:      true,
		Message:      message,
		Data:         data,
		SubmissionID: submissionID,
	})
}

// Error writes an error response
func Error(w io.Writer, message string, err interface{}, submissionID string) error {
	return write(w, Response{
		Success:      false,
		Message:      message,
		Error:        err,
		SubmissionID: submissionID,
	})
}

func write(w io.Writer, r Response) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(r)
}
