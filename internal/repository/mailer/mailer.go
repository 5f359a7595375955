package mailer

import (
	"context"
	"fmt"

	"portfolio-contact/config"
	"portfolio-contact/internal/domain"
	"portfolio-contact/pkg/apperror"
	"portfolio-contact/pkg/email"
	"portfolio-contact/pkg/emailjs"
)

// Provider describes the selected relay and whether it has its credentials
type Provider struct {
	Name       string
	Configured bool
	Sender     domain.MessageSender
}

// NewFromConfig selects the relay named by CONTACT_PROVIDER. An unknown name
// still yields a sender so the failure surfaces when a message is submitted.
func NewFromConfig(cfg *config.Config) Provider {
	switch cfg.ContactProvider {
	case config.ProviderEmailJS:
		client := emailjs.NewClient(emailjs.Config{
			BaseURL:    cfg.EmailJSBaseURL,
			ServiceID:  cfg.EmailJSServiceID,
			TemplateID: cfg.EmailJSTemplateID,
			PublicKey:  cfg.EmailJSPublicKey,
			PrivateKey: cfg.EmailJSPrivateKey,
		}, nil)
		return Provider{
			Name:       config.ProviderEmailJS,
			Configured: client.IsConfigured(),
			Sender:     NewEmailJSSender(client),
		}

	case config.ProviderSMTP:
		service := email.NewEmailService(email.Config{
			Host:      cfg.SMTPHost,
			Port:      cfg.SMTPPort,
			Username:  cfg.SMTPUsername,
			Password:  cfg.SMTPPassword,
			FromEmail: cfg.SMTPFromEmail,
		})
		return Provider{
			Name:       config.ProviderSMTP,
			Configured: service.IsConfigured(),
			Sender:     NewSMTPSender(service),
		}
	}

	return Provider{
		Name:   cfg.ContactProvider,
		Sender: unknownSender{name: cfg.ContactProvider},
	}
}

type unknownSender struct {
	name string
}

func (s unknownSender) Send(ctx context.Context, payload domain.ContactPayload) (*domain.SendResult, error) {
	return nil, apperror.Configuration(fmt.Sprintf("unknown contact provider %q", s.name))
}
