package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tgwatch/internal/config"
)

func TestBuildWebhookURL_NoQuery(t *testing.T) {
	got := BuildWebhookURL("https://x.com/a", "hi there")
	want := "https://x.com/a?text=hi%20there"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildWebhookURL_ExistingQuery(t *testing.T) {
	got := BuildWebhookURL("https://x.com/a?key=1", "hi there")
	want := "https://x.com/a?key=1&text=hi%20there"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestBuildWebhookURL_EscapesSpecials(t *testing.T) {
	got := BuildWebhookURL("https://x.com/a", "a&b=c")
	want := "https://x.com/a?text=a%26b%3Dc"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestWebhook_Send(t *testing.T) {
	var gotMethod, gotText string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotText = r.URL.Query().Get("text")
	}))
	defer srv.Close()

	w := NewWebhook(config.WebhookProviderConfig{URL: srv.URL + "/send?apikey=123"})
	if err := w.Send(context.Background(), "hello world"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotMethod != http.MethodGet {
		t.Errorf("expected GET, got %s", gotMethod)
	}
	if gotText != "hello world" {
		t.Errorf("expected decoded text %q, got %q", "hello world", gotText)
	}
}

func TestWebhook_SendNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer srv.Close()

	w := NewWebhook(config.WebhookProviderConfig{URL: srv.URL})
	if err := w.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for non-200 status")
	}
}

func TestNewWebhook_RequiresURL(t *testing.T) {
	if NewWebhook(config.WebhookProviderConfig{}) != nil {
		t.Fatal("empty URL must not build a provider")
	}
}
