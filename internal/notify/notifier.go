// Package notify delivers alert messages through one of three HTTP
// providers: a Telegram bot, the Twilio messaging gateway, or a generic
// webhook. Provider selection happens once when the dispatcher is built;
// each send is a single best-effort attempt with a bounded timeout.
package notify

import (
	"context"
	"net/http"
	"time"
)

// sendTimeout bounds every outbound provider call so a stalled provider
// cannot block the watch loop or the reporter.
const sendTimeout = 10 * time.Second

// Notifier is one outbound channel capable of delivering a text alert.
type Notifier interface {
	Name() string
	Send(ctx context.Context, body string) error
}

func newHTTPClient() *http.Client {
	return &http.Client{Timeout: sendTimeout}
}
