// Package source turns the Telegram update stream into watch.MessageEvent
// values. The protocol work (long polling, session, retries) belongs to the
// bot API client library; this package only extracts what the filter needs.
package source

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"tgwatch/internal/config"
	"tgwatch/internal/watch"
)

const (
	defaultChatTitle  = "Private Chat"
	defaultSenderName = "Unknown"
)

// Telegram consumes bot API updates via long polling and delivers message
// events on a channel, in arrival order.
type Telegram struct {
	token   string
	timeout int
	events  chan watch.MessageEvent
	logger  *slog.Logger

	bot *tgbotapi.BotAPI
}

func NewTelegram(cfg config.TelegramConfig, logger *slog.Logger) *Telegram {
	if logger == nil {
		logger = slog.Default()
	}
	timeout := cfg.UpdateTimeout
	if timeout <= 0 {
		timeout = 30
	}
	return &Telegram{
		token:   cfg.Token,
		timeout: timeout,
		events:  make(chan watch.MessageEvent, 64),
		logger:  logger,
	}
}

// Events returns the stream consumed by the watch loop. It is closed when
// Start returns.
func (s *Telegram) Events() <-chan watch.MessageEvent {
	return s.events
}

// Start connects to Telegram and pumps updates until the context is
// cancelled. A connect failure is fatal: the watcher is useless without its
// event source.
func (s *Telegram) Start(ctx context.Context) error {
	defer close(s.events)

	bot, err := tgbotapi.NewBotAPI(s.token)
	if err != nil {
		return fmt.Errorf("telegram connect: %w", err)
	}
	s.bot = bot
	s.logger.Info("telegram connected",
		"username", bot.Self.UserName,
		"id", bot.Self.ID,
	)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = s.timeout
	updates := bot.GetUpdatesChan(u)

	s.logger.Info("telegram polling started")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("telegram source stopping")
			bot.StopReceivingUpdates()
			return nil
		case update, ok := <-updates:
			if !ok {
				return nil
			}
			ev, ok := EventFromUpdate(update)
			if !ok {
				continue
			}
			select {
			case s.events <- ev:
			case <-ctx.Done():
				bot.StopReceivingUpdates()
				return nil
			}
		}
	}
}

// EventFromUpdate extracts a message event from one update. Updates without
// a message payload (edits, callbacks, member changes) report false. Missing
// chat or sender metadata falls back to the stated defaults.
func EventFromUpdate(update tgbotapi.Update) (watch.MessageEvent, bool) {
	msg := update.Message
	if msg == nil {
		msg = update.ChannelPost
	}
	if msg == nil || msg.Chat == nil {
		return watch.MessageEvent{}, false
	}

	title := msg.Chat.Title
	if title == "" {
		title = defaultChatTitle
	}

	sender := defaultSenderName
	if msg.From != nil && msg.From.FirstName != "" {
		sender = msg.From.FirstName
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}

	return watch.MessageEvent{
		ChatID:     strconv.FormatInt(msg.Chat.ID, 10),
		ChatTitle:  title,
		SenderName: sender,
		Text:       text,
		HasImage:   len(msg.Photo) > 0,
	}, true
}
