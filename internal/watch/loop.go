package watch

import (
	"context"
	"log/slog"

	"tgwatch/internal/metrics"
)

// Sender delivers one alert body to the configured notification provider.
// The boolean result is best-effort: false means the alert is gone.
type Sender interface {
	Send(ctx context.Context, body string) bool
}

// Loop bridges the incoming event stream to the filter and the dispatcher.
type Loop struct {
	events <-chan MessageEvent
	policy Policy
	sender Sender
	stats  *RunningStats
	logger *slog.Logger
}

type LoopConfig struct {
	Events <-chan MessageEvent
	Policy Policy
	Sender Sender
	Stats  *RunningStats
	Logger *slog.Logger
}

func NewLoop(cfg LoopConfig) *Loop {
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Loop{
		events: cfg.Events,
		policy: cfg.Policy,
		sender: cfg.Sender,
		stats:  cfg.Stats,
		logger: cfg.Logger,
	}
}

// Run consumes events until the context is cancelled or the event channel is
// closed. A failure while handling one event never stops the loop.
func (l *Loop) Run(ctx context.Context) {
	l.logger.Info("watch loop started",
		"keywords", len(l.policy.Keywords),
		"chats", len(l.policy.Chats),
	)
	for {
		select {
		case <-ctx.Done():
			l.logger.Info("watch loop stopped")
			return
		case ev, ok := <-l.events:
			if !ok {
				l.logger.Info("event stream closed, watch loop exiting")
				return
			}
			l.handleEvent(ctx, ev)
		}
	}
}

func (l *Loop) handleEvent(ctx context.Context, ev MessageEvent) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panic while processing event",
				"chat", ev.ChatTitle, "panic", r)
		}
	}()

	l.stats.MessageSeen()
	metrics.MessagesTotal.Inc()

	l.logger.Debug("message received",
		"chat", ev.ChatTitle,
		"chat_id", ev.ChatID,
		"sender", ev.SenderName,
		"has_image", ev.HasImage,
	)

	for _, rec := range Evaluate(ev, l.policy) {
		l.logger.Info("alert triggered",
			"kind", rec.Kind.String(),
			"keyword", rec.MatchedKeyword,
			"chat", rec.ChatTitle,
			"sender", rec.SenderName,
		)
		if l.sender.Send(ctx, FormatAlert(rec)) {
			l.stats.AlertSent()
			metrics.AlertsTotal.Inc()
		} else {
			metrics.AlertsDropped.Inc()
		}
	}
}
