package mailer

import (
	"context"
	"errors"
	"net/http"

	"portfolio-contact/internal/domain"
	"portfolio-contact/pkg/apperror"
	"portfolio-contact/pkg/email"
)

type smtpSender struct {
	service *email.EmailService
}

// NewSMTPSender relays contact payloads over SMTP. A relay the server
// accepted is reported as status 200.
func NewSMTPSender(service *email.EmailService) domain.MessageSender {
	return &smtpSender{service: service}
}

func (s *smtpSender) Send(ctx context.Context, payload domain.ContactPayload) (*domain.SendResult, error) {
	err := s.service.SendContactEmail(ctx, email.ContactEmailData{
		SenderName:   payload.FromName,
		SenderEmail:  payload.FromEmail,
		Subject:      payload.Subject,
		Message:      payload.Message,
		Recipient:    payload.ToEmail,
		SubmissionID: domain.SubmissionIDFrom(ctx),
	})
	if err != nil {
		if errors.Is(err, email.ErrNotConfigured) {
			return nil, apperror.New(apperror.KindConfiguration, "smtp relay is not configured", err)
		}
		return nil, apperror.Submission("smtp relay failed", err)
	}

	return &domain.SendResult{StatusCode: http.StatusOK, Text: "OK"}, nil
}
