package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"portfolio-contact/config"
	"portfolio-contact/internal/domain"
	"portfolio-contact/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var payload = domain.ContactPayload{
	FromName:  "Anas",
	FromEmail: "a@b.com",
	Subject:   "Hello there",
	Message:   "This is a sufficiently long message.",
	ToEmail:   "owner@example.com",
}

func TestEmailJSSenderMapsPayload(t *testing.T) {
	var params map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TemplateParams map[string]string `json:"template_params"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		params = body.TemplateParams
		_, _ = w.Write([]byte("OK"))
	}))
	defer srv.Close()

	p := NewFromConfig(&config.Config{
		ContactProvider:   config.ProviderEmailJS,
		EmailJSBaseURL:    srv.URL,
		EmailJSServiceID:  "s",
		EmailJSTemplateID: "t",
		EmailJSPublicKey:  "k",
	})
	require.True(t, p.Configured)
	assert.Equal(t, config.ProviderEmailJS, p.Name)

	res, err := p.Sender.Send(context.Background(), payload)
	require.NoError(t, err)
	assert.True(t, res.Accepted())
	assert.Equal(t, map[string]string{
		"from_name":  "Anas",
		"from_email": "a@b.com",
		"subject":    "Hello there",
		"message":    "This is a sufficiently long message.",
		"to_email":   "owner@example.com",
	}, params)
}

func TestEmailJSSenderRejectionIsNotAnError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Public Key is invalid", http.StatusBadRequest)
	}))
	defer srv.Close()

	p := NewFromConfig(&config.Config{
		ContactProvider:   config.ProviderEmailJS,
		EmailJSBaseURL:    srv.URL,
		EmailJSServiceID:  "s",
		EmailJSTemplateID: "t",
		EmailJSPublicKey:  "k",
	})
	res, err := p.Sender.Send(context.Background(), payload)
	require.NoError(t, err)
	assert.False(t, res.Accepted())
	assert.Equal(t, "Public Key is invalid", res.Text)
}

func TestEmailJSSenderMissingConfiguration(t *testing.T) {
	p := NewFromConfig(&config.Config{ContactProvider: config.ProviderEmailJS})
	assert.False(t, p.Configured)

	_, err := p.Sender.Send(context.Background(), payload)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
}

func TestSMTPSenderMissingConfiguration(t *testing.T) {
	p := NewFromConfig(&config.Config{ContactProvider: config.ProviderSMTP, SMTPHost: "smtp.example.com"})
	assert.Equal(t, config.ProviderSMTP, p.Name)
	assert.False(t, p.Configured)

	_, err := p.Sender.Send(context.Background(), payload)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
}

func TestUnknownProvider(t *testing.T) {
	p := NewFromConfig(&config.Config{ContactProvider: "pigeon"})
	assert.False(t, p.Configured)

	_, err := p.Sender.Send(context.Background(), payload)
	assert.True(t, apperror.IsKind(err, apperror.KindConfiguration))
	assert.Contains(t, err.Error(), "pigeon")
}
