package emailjs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotConfigured is returned by Send when an identifier is missing
var ErrNotConfigured = errors.New("emailjs: service id, template id and public key are required")

const sendPath = "/api/v1.0/email/send"

// Config holds the identifiers issued by the EmailJS dashboard
type Config struct {
	BaseURL    string
	ServiceID  string
	TemplateID string
	PublicKey  string
	PrivateKey string // Optional; required only when the account enforces strict mode
}

// Client relays template parameters through the EmailJS REST API
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// TemplateParams are the variables the EmailJS template renders
type TemplateParams map[string]string

// Response is the raw answer of the API: a status code and a short text body
type Response struct {
	StatusCode int
	Text       string
}

type sendRequest struct {
	ServiceID      string         `json:"service_id"`
	TemplateID     string         `json:"template_id"`
	UserID         string         `json:"user_id"`
	AccessToken    string         `json:"accessToken,omitempty"`
	TemplateParams TemplateParams `json:"template_params"`
}

// NewClient creates a client; httpClient may be nil
func NewClient(cfg Config, httpClient *http.Client) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.emailjs.com"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, httpClient: httpClient}
}

// IsConfigured checks if the three required identifiers are present
func (c *Client) IsConfigured() bool {
	return c.cfg.ServiceID != "" && c.cfg.TemplateID != "" && c.cfg.PublicKey != ""
}

// Send posts one email request. A non-2xx answer is not an error: the status
// and body are returned for the caller to judge. Errors are transport or
// configuration failures.
func (c *Client) Send(ctx context.Context, params TemplateParams) (*Response, error) {
	if !c.IsConfigured() {
		return nil, ErrNotConfigured
	}

	body, err := json.Marshal(sendRequest{
		ServiceID:      c.cfg.ServiceID,
		TemplateID:     c.cfg.TemplateID,
		UserID:         c.cfg.PublicKey,
		AccessToken:    c.cfg.PrivateKey,
		TemplateParams: params,
	})
	if err != nil {
		return nil, fmt.Errorf("emailjs: failed to encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+sendPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("emailjs: failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("emailjs: request failed: %w", err)
	}
	defer resp.Body.Close()

	// The API answers with a short plain-text body ("OK" or an error reason)
	text, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return nil, fmt.Errorf("emailjs: failed to read response: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Text:       strings.TrimSpace(string(text)),
	}, nil
}
