package notify

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"

	"tgwatch/internal/config"
)

func testDispatcherLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

func TestDispatcher_NoProvider(t *testing.T) {
	var calls atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	defer srv.Close()

	d := NewDispatcher(config.NotifyConfig{}, testDispatcherLogger())
	if d.ProviderName() != "" {
		t.Fatalf("expected no provider, got %q", d.ProviderName())
	}
	if d.Send(context.Background(), "hello") {
		t.Error("send must fail with no provider configured")
	}
	if calls.Load() != 0 {
		t.Errorf("no network call may happen, got %d", calls.Load())
	}
}

func TestDispatcher_PriorityOrder(t *testing.T) {
	telegram := config.BotProviderConfig{Token: "t", ChatID: "1"}
	twilio := config.TwilioProviderConfig{AccountSID: "AC", AuthToken: "x", From: "a", To: "b"}
	webhook := config.WebhookProviderConfig{URL: "https://x.com/hook"}

	cases := []struct {
		name string
		cfg  config.NotifyConfig
		want string
	}{
		{"all configured", config.NotifyConfig{Telegram: telegram, Twilio: twilio, Webhook: webhook}, "telegram"},
		{"twilio and webhook", config.NotifyConfig{Twilio: twilio, Webhook: webhook}, "twilio"},
		{"webhook only", config.NotifyConfig{Webhook: webhook}, "webhook"},
		{"partial telegram falls through", config.NotifyConfig{Telegram: config.BotProviderConfig{Token: "t"}, Webhook: webhook}, "webhook"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := NewDispatcher(tc.cfg, testDispatcherLogger())
			if got := d.ProviderName(); got != tc.want {
				t.Errorf("expected provider %q, got %q", tc.want, got)
			}
		})
	}
}

func TestDispatcher_SendSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	d := NewDispatcher(config.NotifyConfig{
		Webhook: config.WebhookProviderConfig{URL: srv.URL},
	}, testDispatcherLogger())

	if !d.Send(context.Background(), "hi") {
		t.Error("expected true for accepted send")
	}
}

func TestDispatcher_SendFailureReturnsFalse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "down", http.StatusInternalServerError)
	}))
	defer srv.Close()

	d := NewDispatcher(config.NotifyConfig{
		Webhook: config.WebhookProviderConfig{URL: srv.URL},
	}, testDispatcherLogger())

	if d.Send(context.Background(), "hi") {
		t.Error("transport failure must convert to false, not propagate")
	}
}
