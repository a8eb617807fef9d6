package notify

import (
	"context"
	"log/slog"
	"time"

	"tgwatch/internal/config"
	"tgwatch/internal/metrics"
)

// Dispatcher routes every alert to the single active provider. The provider
// is resolved once at construction, in fixed priority: Telegram bot, then
// Twilio, then webhook. There is no fallback between providers at send time;
// a failed send is terminal for that alert.
type Dispatcher struct {
	provider Notifier // nil when no credential set is complete
	logger   *slog.Logger
}

func NewDispatcher(cfg config.NotifyConfig, logger *slog.Logger) *Dispatcher {
	if logger == nil {
		logger = slog.Default()
	}

	d := &Dispatcher{logger: logger}

	if p := NewTelegram(cfg.Telegram); p != nil {
		d.provider = p
	} else if p := NewTwilio(cfg.Twilio); p != nil {
		d.provider = p
	} else if p := NewWebhook(cfg.Webhook); p != nil {
		d.provider = p
	}

	if d.provider != nil {
		logger.Info("notification provider selected", "provider", d.provider.Name())
	} else {
		logger.Warn("no notification provider configured, alerts will be dropped")
	}
	return d
}

// ProviderName returns the active provider's name, or "" when none is
// configured.
func (d *Dispatcher) ProviderName() string {
	if d.provider == nil {
		return ""
	}
	return d.provider.Name()
}

// Send delivers one message body and reports whether the provider accepted
// it. Transport failures and missing configuration are logged, counted, and
// converted to false; they never propagate to the caller.
func (d *Dispatcher) Send(ctx context.Context, body string) bool {
	if d.provider == nil {
		d.logger.Error("cannot send alert: no notification provider configured")
		metrics.SendFailures.Inc()
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()

	start := time.Now()
	err := d.provider.Send(ctx, body)
	metrics.SendLatency.Observe(time.Since(start).Seconds())

	if err != nil {
		d.logger.Error("alert send failed",
			"provider", d.provider.Name(),
			"err", err,
		)
		metrics.SendFailures.Inc()
		return false
	}

	d.logger.Debug("alert sent", "provider", d.provider.Name(), "body_len", len(body))
	return true
}
