package mailer

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mccajr2/reading-rewards/internal/config"
)

func newTestMailer(url string) *BrevoMailer {
	m := NewBrevoMailer(&config.BrevoConfig{
		APIKey: "test-api-key",
		Sender: "noreply@example.com",
	})
	m.baseURL = url

	return m
}

func TestBrevoMailer_Send(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "test-api-key", r.Header.Get("api-key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var payload struct {
			Sender struct {
				Email string `json:"email"`
			} `json:"sender"`
			To []struct {
				Email string `json:"email"`
			} `json:"to"`
			Subject     string `json:"subject"`
			HTMLContent string `json:"htmlContent"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		assert.Equal(t, "noreply@example.com", payload.Sender.Email)
		require.Len(t, payload.To, 1)
		assert.Equal(t, "amy@example.com", payload.To[0].Email)
		assert.Equal(t, "Verify your account", payload.Subject)
		assert.Contains(t, payload.HTMLContent, "abc123")

		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	m := newTestMailer(srv.URL)
	err := m.Send(context.Background(), "amy@example.com", "Verify your account", "<p>Code: abc123</p>")

	assert.NoError(t, err)
}

func TestBrevoMailer_Send_ProviderRejects(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	m := newTestMailer(srv.URL)
	err := m.Send(context.Background(), "amy@example.com", "Hi", "<p>Hi</p>")

	assert.Error(t, err)
}

func TestBrevoMailer_Send_ProviderUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	m := newTestMailer(srv.URL)
	err := m.Send(context.Background(), "amy@example.com", "Hi", "<p>Hi</p>")

	assert.Error(t, err)
}
