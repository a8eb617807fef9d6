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

const telegramAPIBase = "https://api.telegram.org"

// Telegram sends alerts through the Telegram Bot API sendMessage endpoint.
type Telegram struct {
	token   string
	chatID  string
	apiBase string
	client  *http.Client
}

// NewTelegram builds the provider, or nil when the credential set is
// incomplete.
func NewTelegram(cfg config.BotProviderConfig) *Telegram {
	if cfg.Token == "" || cfg.ChatID == "" {
		return nil
	}
	return &Telegram{
		token:   cfg.Token,
		chatID:  cfg.ChatID,
		apiBase: telegramAPIBase,
		client:  newHTTPClient(),
	}
}

func (t *Telegram) Name() string { return "telegram" }

func (t *Telegram) Send(ctx context.Context, body string) error {
	endpoint := fmt.Sprintf("%s/bot%s/sendMessage", t.apiBase, t.token)

	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", body)
	form.Set("parse_mode", "HTML")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("telegram API %d: %s", resp.StatusCode, string(respBody))
	}
	return nil
}
