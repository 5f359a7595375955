package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"portfolio-contact/internal/domain"
	"portfolio-contact/pkg/apperror"
	"portfolio-contact/pkg/audit"
	"portfolio-contact/pkg/logger"
	"portfolio-contact/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const defaultProviderTimeout = 15 * time.Second

// ContactOptions configures a contact form controller
type ContactOptions struct {
	// Recipient is the fixed to_email of every payload
	Recipient string
	// Provider names the relay in logs
	Provider string
	// Timeout bounds the single outbound request
	Timeout time.Duration
	Events  *audit.Logger
}

// contactInput carries the values the rules run against: name, subject and
// message trimmed, email raw so surrounding whitespace fails the pattern.
type contactInput struct {
	Name    string `validate:"required,min=2"`
	Email   string `validate:"notblank,contact_email"`
	Subject string `validate:"required,min=5"`
	Message string `validate:"required,min=10,max=1000"`
}

type contactController struct {
	sender   domain.MessageSender
	validate *validator.Validate
	opts     ContactOptions
	events   *audit.Logger

	mu           sync.Mutex
	form         domain.ContactForm
	errors       domain.ErrorMap
	status       domain.SubmissionStatus
	notice       *domain.Notice
	submissionID string
}

// NewContactController creates a controller with an empty form in the idle state.
// The contact rules are registered on validate; a nil validate gets a fresh one.
func NewContactController(sender domain.MessageSender, validate *validator.Validate, opts ContactOptions) domain.ContactController {
	if validate == nil {
		validate = validator.New()
	}
	validation.RegisterValidators(validate)
	if opts.Timeout <= 0 {
		opts.Timeout = defaultProviderTimeout
	}
	events := opts.Events
	if events == nil {
		events = audit.DefaultLogger()
	}
	return &contactController{
		sender:   sender,
		validate: validate,
		opts:     opts,
		events:   events,
		errors:   domain.ErrorMap{},
		status:   domain.StatusIdle,
	}
}

// UpdateField stores the raw value and drops that field's stale error without re-validating
func (c *contactController) UpdateField(field domain.Field, value string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.form.Set(field, value) {
		return
	}
	delete(c.errors, field)

	next, err := domain.Transition(c.status, domain.EventEdit)
	if err != nil {
		return
	}
	if next != c.status {
		c.notice = nil
	}
	c.status = next
}

func (c *contactController) Validate() domain.ErrorMap {
	c.mu.Lock()
	form := c.form
	c.mu.Unlock()

	return c.check(form)
}

// check runs every rule against form; each field reports its first failure only
func (c *contactController) check(form domain.ContactForm) domain.ErrorMap {
	errs := domain.ErrorMap{}

	err := c.validate.Struct(contactInput{
		Name:    strings.TrimSpace(form.Name),
		Email:   form.Email,
		Subject: strings.TrimSpace(form.Subject),
		Message: strings.TrimSpace(form.Message),
	})
	if err == nil {
		return errs
	}

	// contactInput is a struct value, so Struct only fails with ValidationErrors
	verrs, _ := err.(validator.ValidationErrors)
	for _, fe := range verrs {
		field := domain.Field(strings.ToLower(fe.StructField()))
		if _, seen := errs[field]; seen {
			continue
		}
		reason, msg := validation.Describe(fe)
		errs[field] = domain.FieldError{Reason: reason, Message: msg}
	}
	logger.Log.Debug("Contact form invalid", "errors", validation.FormatValidationErrors(err))
	return errs
}

// Submit validates the form and, if it passes, relays it with exactly one provider call
func (c *contactController) Submit(ctx context.Context) domain.SubmissionOutcome {
	c.mu.Lock()
	if c.status == domain.StatusPending {
		id := c.submissionID
		c.mu.Unlock()
		c.events.Log(ctx, audit.Event{Event: audit.EventSubmissionBusy, SubmissionID: id})
		return domain.OutcomeBusy
	}

	errs := c.check(c.form)
	c.errors = errs
	if !errs.Valid() {
		c.mu.Unlock()
		fields := make([]string, 0, len(errs))
		for _, f := range domain.ContactFields {
			if fe, ok := errs[f]; ok {
				fields = append(fields, string(f)+":"+fe.Reason)
			}
		}
		c.events.Log(ctx, audit.Event{
			Event:   audit.EventValidationFailed,
			Details: map[string]interface{}{"fields": fields},
		})
		return domain.OutcomeInvalid
	}

	next, err := domain.Transition(c.status, domain.EventSubmit)
	if err != nil {
		logger.Log.Error("Contact submission refused", "status", c.status, "error", err)
		c.mu.Unlock()
		return domain.OutcomeBusy
	}
	c.status = next
	c.notice = nil
	c.submissionID = uuid.NewString()
	id := c.submissionID
	payload := domain.ContactPayload{
		FromName:  c.form.Name,
		FromEmail: c.form.Email,
		Subject:   c.form.Subject,
		Message:   c.form.Message,
		ToEmail:   c.opts.Recipient,
	}
	c.mu.Unlock()

	result, sendErr := c.send(ctx, id, payload)

	c.mu.Lock()
	defer c.mu.Unlock()

	if sendErr == nil && result.Accepted() {
		c.status, _ = domain.Transition(c.status, domain.EventAccepted)
		c.form = domain.ContactForm{}
		c.errors = domain.ErrorMap{}
		c.notice = &domain.Notice{Severity: domain.NoticeSuccess, Text: domain.NoticeSentText}
		c.events.Log(ctx, audit.Event{Event: audit.EventSubmissionAccepted, SubmissionID: id})
		logger.Log.Info("Contact message sent", "submission_id", id, "provider", c.opts.Provider)
		return domain.OutcomeSent
	}

	var statusCode int
	if result != nil {
		statusCode = result.StatusCode
		if sendErr == nil {
			cause := result.Text
			if cause == "" {
				cause = http.StatusText(result.StatusCode)
			}
			sendErr = apperror.Submission("provider rejected the message", fmt.Errorf("status %d: %s", result.StatusCode, cause))
		}
	}
	if apperror.IsKind(sendErr, apperror.KindConfiguration) {
		c.events.Log(ctx, audit.Event{
			Event:        audit.EventConfigMissing,
			SubmissionID: id,
			Details:      map[string]interface{}{"provider": c.opts.Provider, "error": sendErr.Error()},
		})
	}
	c.status, _ = domain.Transition(c.status, domain.EventFailed)
	c.notice = &domain.Notice{Severity: domain.NoticeError, Text: domain.NoticeFailedText}
	c.events.LogSubmissionFailed(ctx, id, payload.FromEmail, statusCode, sendErr)
	logger.Log.Error("Contact message failed", "submission_id", id, "provider", c.opts.Provider, "status_code", statusCode, "error", sendErr)
	return domain.OutcomeFailed
}

// send performs the one outbound call. It is detached from caller cancellation
// and bounded by the provider timeout.
func (c *contactController) send(ctx context.Context, id string, payload domain.ContactPayload) (*domain.SendResult, error) {
	if strings.TrimSpace(payload.ToEmail) == "" {
		return nil, apperror.Configuration("contact recipient is not configured")
	}

	sendCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.opts.Timeout)
	defer cancel()
	sendCtx = context.WithValue(sendCtx, domain.KeySubmissionID, id)

	c.events.LogSubmissionStarted(sendCtx, id, payload.FromEmail, c.opts.Provider, payload.Message)
	result, err := c.sender.Send(sendCtx, payload)
	if err == nil && result == nil {
		err = apperror.Submission("provider returned no response", nil)
	}
	if err != nil && errors.Is(sendCtx.Err(), context.DeadlineExceeded) {
		err = apperror.Submission("provider timed out", err)
	}
	return result, err
}

// Dismiss acknowledges the success or failure notice and returns to idle
func (c *contactController) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()

	next, err := domain.Transition(c.status, domain.EventDismiss)
	if err != nil {
		return
	}
	c.status = next
	c.notice = nil
}

func (c *contactController) Snapshot() domain.ContactSnapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := domain.ContactSnapshot{
		Form:         c.form,
		Errors:       c.errors.Clone(),
		Status:       c.status,
		SubmissionID: c.submissionID,
	}
	if c.notice != nil {
		n := *c.notice
		snap.Notice = &n
	}
	return snap
}
