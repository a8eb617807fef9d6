package notify

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"tgwatch/internal/config"
)

func TestTelegram_Send(t *testing.T) {
	var gotPath string
	var gotForm map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		r.ParseForm()
		gotForm = map[string]string{
			"chat_id":    r.PostFormValue("chat_id"),
			"text":       r.PostFormValue("text"),
			"parse_mode": r.PostFormValue("parse_mode"),
		}
	}))
	defer srv.Close()

	tg := NewTelegram(config.BotProviderConfig{Token: "SECRET", ChatID: "42"})
	tg.apiBase = srv.URL

	if err := tg.Send(context.Background(), "hello"); err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if gotPath != "/botSECRET/sendMessage" {
		t.Errorf("unexpected path %q", gotPath)
	}
	if gotForm["chat_id"] != "42" {
		t.Errorf("expected chat_id 42, got %q", gotForm["chat_id"])
	}
	if gotForm["text"] != "hello" {
		t.Errorf("expected text hello, got %q", gotForm["text"])
	}
	if gotForm["parse_mode"] != "HTML" {
		t.Errorf("expected parse_mode HTML, got %q", gotForm["parse_mode"])
	}
}

func TestTelegram_SendNonOK(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"ok":false}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	tg := NewTelegram(config.BotProviderConfig{Token: "bad", ChatID: "42"})
	tg.apiBase = srv.URL

	if err := tg.Send(context.Background(), "hello"); err == nil {
		t.Fatal("expected error for 401 response")
	}
}

func TestNewTelegram_RequiresBothCredentials(t *testing.T) {
	if NewTelegram(config.BotProviderConfig{Token: "x"}) != nil {
		t.Error("token without chat ID must not build a provider")
	}
	if NewTelegram(config.BotProviderConfig{ChatID: "42"}) != nil {
		t.Error("chat ID without token must not build a provider")
	}
}
