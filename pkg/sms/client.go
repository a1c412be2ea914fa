package sms

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type restClient struct {
	config Config
	client *http.Client
}

// NewClient creates a REST-backed SMS/WhatsApp sender against the configured
// provider endpoint.
func NewClient(cfg Config) (Sender, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	if cfg.Transport != TransportSMS && cfg.Transport != TransportWhatsApp {
		return nil, fmt.Errorf("%w: unsupported transport %q", ErrInvalidConfig, cfg.Transport)
	}
	if cfg.Transport == TransportWhatsApp && cfg.WhatsAppSender == "" {
		return nil, fmt.Errorf("%w: WhatsAppSender is required for the whatsapp transport", ErrInvalidConfig)
	}

	return &restClient{
		config: cfg,
		client: &http.Client{Timeout: cfg.HTTPTimeout},
	}, nil
}

// Send dispatches one message through the configured transport.
// There is no retry and no cancellation layer beyond the HTTP client's own
// timeout.
func (c *restClient) Send(ctx context.Context, to, body string) error {
	if to == "" {
		return fmt.Errorf("%w: recipient phone number is required", ErrInvalidParams)
	}
	if body == "" {
		return fmt.Errorf("%w: message body is required", ErrInvalidParams)
	}

	if c.config.Transport == TransportWhatsApp {
		return c.sendWhatsApp(ctx, to, body)
	}
	return c.sendSMS(ctx, to, body)
}

// sendSMS posts a form-encoded request the way the usual SMS portals expect.
func (c *restClient) sendSMS(ctx context.Context, to, body string) error {
	form := url.Values{}
	form.Set("userid", c.config.UserID)
	form.Set("password", c.config.Password)
	form.Set("senderid", c.config.SenderID)
	form.Set("msgType", "text")
	form.Set("msg", body)
	form.Set("mobile", to)
	form.Set("output", "json")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, strings.NewReader(form.Encode()))
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if c.config.APIKey != "" {
		req.Header.Set("apikey", c.config.APIKey)
	}

	return c.do(req)
}

// sendWhatsApp posts a JSON payload to the provider's WhatsApp gateway.
func (c *restClient) sendWhatsApp(ctx context.Context, to, body string) error {
	payload := map[string]any{
		"messageType": "text",
		"token":       c.config.WhatsAppToken,
		"from":        c.config.WhatsAppSender,
		"to":          to,
		"text":        body,
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.BaseURL, bytes.NewReader(data))
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

func (c *restClient) do(req *http.Request) error {
	resp, err := c.client.Do(req)
	if err != nil {
		return errors.Join(ErrFailedToSend, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Provider error bodies are short diagnostic strings; cap them so a
		// misbehaving endpoint cannot blow up the error message.
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return errors.Join(
			ErrFailedToSend,
			fmt.Errorf("provider returned %d: %s", resp.StatusCode, string(body)),
		)
	}
	return nil
}
