package mailer

import (
	"context"
	"errors"

	"portfolio-contact/internal/domain"
	"portfolio-contact/pkg/apperror"
	"portfolio-contact/pkg/emailjs"
)

type emailJSSender struct {
	client *emailjs.Client
}

// NewEmailJSSender relays contact payloads through the EmailJS REST API
func NewEmailJSSender(client *emailjs.Client) domain.MessageSender {
	return &emailJSSender{client: client}
}

func (s *emailJSSender) Send(ctx context.Context, payload domain.ContactPayload) (*domain.SendResult, error) {
	resp, err := s.client.Send(ctx, emailjs.TemplateParams{
		"from_name":  payload.FromName,
		"from_email": payload.FromEmail,
		"subject":    payload.Subject,
		"message":    payload.Message,
		"to_email":   payload.ToEmail,
	})
	if err != nil {
		if errors.Is(err, emailjs.ErrNotConfigured) {
			return nil, apperror.New(apperror.KindConfiguration, "email relay is not configured", err)
		}
		return nil, apperror.Submission("email relay request failed", err)
	}

	return &domain.SendResult{StatusCode: resp.StatusCode, Text: resp.Text}, nil
}
