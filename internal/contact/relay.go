package contact

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultEndpoint is the hosted form relay.
const DefaultEndpoint = "https://formspree.io/f/meegkrwa"

// Relay posts messages to a Formspree-compatible endpoint.
type Relay struct {
	Endpoint string
	Client   *http.Client
}

type relayRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
	ReplyTo string `json:"_replyto"`
}

type relayResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error"`
}

// NewRelay returns a relay with a bounded HTTP client.
func NewRelay(endpoint string) *Relay {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Relay{Endpoint: endpoint, Client: &http.Client{Timeout: 10 * time.Second}}
}

func (r *Relay) Name() string { return "relay" }

// Send posts m and fails on any non-2xx response.
func (r *Relay) Send(ctx context.Context, m Message) error {
	body, err := json.Marshal(relayRequest{
		Name:    m.Name,
		Email:   m.Email,
		Subject: m.Subject,
		Message: m.Message,
		ReplyTo: m.Email,
	})
	if err != nil {
		return fmt.Errorf("encode relay request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.Endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build relay request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := r.Client.Do(req)
	if err != nil {
		return fmt.Errorf("post relay: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	var out relayResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64<<10)).Decode(&out); err == nil && out.Error != "" {
		return fmt.Errorf("relay rejected message: %s (%d)", out.Error, resp.StatusCode)
	}
	return fmt.Errorf("relay rejected message: status %d", resp.StatusCode)
}
