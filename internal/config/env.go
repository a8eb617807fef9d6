package config

import (
	"os"
	"strconv"
	"strings"
)

// Environment variable names honored by ApplyEnv. These mirror the Docker
// deployment contract: everything the watcher needs can be injected without
// a config file.
const (
	EnvBotToken        = "TELEGRAM_BOT_TOKEN"
	EnvTargetKeywords  = "TARGET_KEYWORDS"
	EnvTargetChats     = "TARGET_CHATS"
	EnvSummaryInterval = "SUMMARY_INTERVAL_HOURS"
	EnvHeartbeatFile   = "HEARTBEAT_FILE"

	EnvAlertBotToken  = "ALERT_BOT_TOKEN"
	EnvAlertBotChatID = "ALERT_BOT_CHAT_ID"

	EnvTwilioAccountSID = "TWILIO_ACCOUNT_SID"
	EnvTwilioAuthToken  = "TWILIO_AUTH_TOKEN"
	EnvTwilioFrom       = "TWILIO_WHATSAPP_FROM"
	EnvTwilioTo         = "TWILIO_WHATSAPP_TO"

	EnvWebhookURL = "WHATSAPP_WEBHOOK_URL"
)

// ApplyEnv overlays environment variables onto cfg. Set variables win over
// file values; unset variables leave the config untouched. Keyword and chat
// lists are comma separated.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv(EnvBotToken); v != "" {
		cfg.Telegram.Token = v
	}
	if v, ok := os.LookupEnv(EnvTargetKeywords); ok {
		cfg.Watch.Keywords = SplitList(v)
	}
	if v, ok := os.LookupEnv(EnvTargetChats); ok {
		cfg.Watch.Chats = SplitList(v)
	}
	if v := os.Getenv(EnvSummaryInterval); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.Watch.SummaryIntervalHours = hours
		}
	}
	if v := os.Getenv(EnvHeartbeatFile); v != "" {
		cfg.Heartbeat.Path = v
	}

	if v := os.Getenv(EnvAlertBotToken); v != "" {
		cfg.Notify.Telegram.Token = v
	}
	if v := os.Getenv(EnvAlertBotChatID); v != "" {
		cfg.Notify.Telegram.ChatID = v
	}

	if v := os.Getenv(EnvTwilioAccountSID); v != "" {
		cfg.Notify.Twilio.AccountSID = v
	}
	if v := os.Getenv(EnvTwilioAuthToken); v != "" {
		cfg.Notify.Twilio.AuthToken = v
	}
	if v := os.Getenv(EnvTwilioFrom); v != "" {
		cfg.Notify.Twilio.From = v
	}
	if v := os.Getenv(EnvTwilioTo); v != "" {
		cfg.Notify.Twilio.To = v
	}

	if v := os.Getenv(EnvWebhookURL); v != "" {
		cfg.Notify.Webhook.URL = v
	}
}

// SplitList splits a comma-separated environment value, trimming whitespace
// and dropping empty entries. Order is preserved.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
