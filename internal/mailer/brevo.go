// Package mailer sends transactional email through the Brevo HTTP API.
package mailer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/mccajr2/reading-rewards/internal/config"
)

const DefaultBrevoURL = "https://api.brevo.com/v3/smtp/email"

type BrevoMailer struct {
	apiKey  string
	sender  string
	baseURL string
	client  *http.Client
}

func NewBrevoMailer(conf *config.BrevoConfig) *BrevoMailer {
	return &BrevoMailer{
		apiKey:  conf.APIKey,
		sender:  conf.Sender,
		baseURL: DefaultBrevoURL,
		client:  &http.Client{Timeout: 20 * time.Second},
	}
}

type sendRequest struct {
	Sender      address   `json:"sender"`
	To          []address `json:"to"`
	Subject     string    `json:"subject"`
	HTMLContent string    `json:"htmlContent"`
}

type address struct {
	Email string `json:"email"`
}

// Send delivers one email. Callers treat failure as non-fatal; this
// method only reports it.
func (m *BrevoMailer) Send(ctx context.Context, to, subject, htmlBody string) error {
	payload, err := json.Marshal(sendRequest{
		Sender:      address{Email: m.sender},
		To:          []address{{Email: to}},
		Subject:     subject,
		HTMLContent: htmlBody,
	})
	if err != nil {
		return fmt.Errorf("json.Marshal -> %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("http.NewRequestWithContext -> %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api-key", m.apiKey)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("m.client.Do -> %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("brevo returned %v", resp.Status)
	}

	return nil
}
