package notify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"tgwatch/internal/config"
)

// Webhook sends alerts with a GET request to a preconfigured URL, appending
// the message as a `text` query parameter. This fits simple gateways like
// CallMeBot where the URL already carries the phone number and API key.
type Webhook struct {
	url    string
	client *http.Client
}

// NewWebhook builds the provider, or nil when no URL is configured.
func NewWebhook(cfg config.WebhookProviderConfig) *Webhook {
	if cfg.URL == "" {
		return nil
	}
	return &Webhook{
		url:    cfg.URL,
		client: newHTTPClient(),
	}
}

func (w *Webhook) Name() string { return "webhook" }

func (w *Webhook) Send(ctx context.Context, body string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, BuildWebhookURL(w.url, body), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := w.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("webhook %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}

// BuildWebhookURL appends text=<encoded body> to the base URL, joining with
// '&' when the URL already has a query string. Spaces encode as %20, which
// gateway implementations accept more reliably than '+'.
func BuildWebhookURL(base, body string) string {
	sep := "?"
	if strings.Contains(base, "?") {
		sep = "&"
	}
	encoded := strings.ReplaceAll(url.QueryEscape(body), "+", "%20")
	return base + sep + "text=" + encoded
}
