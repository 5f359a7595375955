package domain

import "context"

// Field names a contact form input
type Field string

const (
	FieldName    Field = "name"
	FieldEmail   Field = "email"
	FieldSubject Field = "subject"
	FieldMessage Field = "message"
)

// ContactFields lists the form inputs in display order
var ContactFields = []Field{FieldName, FieldEmail, FieldSubject, FieldMessage}

// ContactForm holds the raw values a visitor typed into the contact form
type ContactForm struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Get returns the raw value of a field
func (f ContactForm) Get(field Field) string {
	switch field {
	case FieldName:
		return f.Name
	case FieldEmail:
		return f.Email
	case FieldSubject:
		return f.Subject
	case FieldMessage:
		return f.Message
	}
	return ""
}

// Set assigns a raw value, reporting false for an unknown field
func (f *ContactForm) Set(field Field, value string) bool {
	switch field {
	case FieldName:
		f.Name = value
	case FieldEmail:
		f.Email = value
	case FieldSubject:
		f.Subject = value
	case FieldMessage:
		f.Message = value
	default:
		return false
	}
	return true
}

// FieldError is the single validation failure reported for a field.
// Reason is one of the validation.Reason* values.
type FieldError struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// ErrorMap maps fields to their validation failure. Empty means valid.
type ErrorMap map[Field]FieldError

func (m ErrorMap) Valid() bool {
	return len(m) == 0
}

// Clone returns an independent copy; nil stays nil
func (m ErrorMap) Clone() ErrorMap {
	if m == nil {
		return nil
	}
	out := make(ErrorMap, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// ContactPayload is what the delivery provider receives for one submission
type ContactPayload struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Subject   string `json:"subject"`
	Message   string `json:"message"`
	ToEmail   string `json:"to_email"`
}

// SendResult is the provider's answer to a delivery request
type SendResult struct {
	StatusCode int
	Text       string
}

// Accepted reports the provider's 200-equivalent acceptance
func (r *SendResult) Accepted() bool {
	return r != nil && r.StatusCode == 200
}

// MessageSender relays a contact payload to an external delivery provider
type MessageSender interface {
	Send(ctx context.Context, payload ContactPayload) (*SendResult, error)
}

// NoticeSeverity distinguishes the two user-visible submission signals
type NoticeSeverity string

const (
	NoticeSuccess NoticeSeverity = "success"
	NoticeError   NoticeSeverity = "error"
)

// Notice is the confirmation or failure message shown after a submission
type Notice struct {
	Severity NoticeSeverity `json:"severity"`
	Text     string         `json:"text"`
}

const (
	NoticeSentText   = "Message sent successfully! I'll get back to you soon."
	NoticeFailedText = "Failed to send message. Please try again or email me directly."
)

// ContactSnapshot is a point-in-time copy of a controller's state for rendering
type ContactSnapshot struct {
	Form         ContactForm      `json:"form"`
	Errors       ErrorMap         `json:"errors,omitempty"`
	Status       SubmissionStatus `json:"status"`
	Notice       *Notice          `json:"notice,omitempty"`
	SubmissionID string           `json:"submission_id,omitempty"`
}

// ContactController defines the contact form operations
type ContactController interface {
	// UpdateField stores a raw value and clears that field's stale error
	UpdateField(field Field, value string)
	// Validate checks the current form without changing any state
	Validate() ErrorMap
	// Submit validates and relays the form exactly once
	Submit(ctx context.Context) SubmissionOutcome
	// Dismiss acknowledges the last notice
	Dismiss()
	Snapshot() ContactSnapshot
}
