package watch

import (
	"strings"
	"testing"
)

func TestFormatAlert_Keyword(t *testing.T) {
	body := FormatAlert(AlertRecord{
		Kind:           KeywordMatch,
		MatchedKeyword: "sale",
		ChatTitle:      "Deals",
		SenderName:     "Ann",
		Text:           "Flash SALE today",
	})

	for _, want := range []string{
		"🚨 Telegram Watcher Alert!",
		"Type: Keyword Match 💬",
		"Keyword: sale",
		"Chat: Deals",
		"User: Ann",
		"Message: Flash SALE today",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("alert body missing %q:\n%s", want, body)
		}
	}
}

func TestFormatAlert_Image(t *testing.T) {
	body := FormatAlert(AlertRecord{
		Kind:       ImageDetected,
		ChatTitle:  "Pics",
		SenderName: "Bob",
		Text:       NoCaption,
	})

	for _, want := range []string{
		"Type: Image Detected 📸",
		"Caption: [No Caption]",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("alert body missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "Keyword:") {
		t.Errorf("image alert must not carry a keyword line:\n%s", body)
	}
}
