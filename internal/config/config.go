package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Config is the root configuration for tgwatch.
type Config struct {
	General   GeneralConfig   `json:"general"`
	Telegram  TelegramConfig  `json:"telegram"`
	Watch     WatchConfig     `json:"watch"`
	Notify    NotifyConfig    `json:"notify"`
	Heartbeat HeartbeatConfig `json:"heartbeat"`
	Metrics   MetricsConfig   `json:"metrics"`
}

type GeneralConfig struct {
	LogLevel string `json:"logLevel"`
	LogFile  string `json:"logFile,omitempty"` // optional log file path
}

// TelegramConfig holds the credentials for the watched account. The watcher
// connects as a bot and consumes every message update the bot can see.
type TelegramConfig struct {
	Token         string `json:"token"`
	UpdateTimeout int    `json:"updateTimeout"` // long-poll timeout in seconds
}

// WatchConfig defines which chats and message contents produce alerts.
type WatchConfig struct {
	Keywords             []string `json:"keywords"`             // matched in order, first hit wins
	Chats                []string `json:"chats"`                // numeric IDs or exact titles; empty = all
	RulesFile            string   `json:"rulesFile,omitempty"`  // optional YAML rules file merged on top
	SummaryIntervalHours int      `json:"summaryIntervalHours"` // digest period (default 24)
}

// NotifyConfig carries the credential sets for the three alert providers.
// The first fully-populated set, in the order telegram > twilio > webhook,
// is active; the others are ignored.
type NotifyConfig struct {
	Telegram BotProviderConfig     `json:"telegram"`
	Twilio   TwilioProviderConfig  `json:"twilio"`
	Webhook  WebhookProviderConfig `json:"webhook"`
}

type BotProviderConfig struct {
	Token  string `json:"token"`
	ChatID string `json:"chatId"`
}

type TwilioProviderConfig struct {
	AccountSID string `json:"accountSid"`
	AuthToken  string `json:"authToken"`
	From       string `json:"from"` // e.g. whatsapp:+14155238886
	To         string `json:"to"`
}

type WebhookProviderConfig struct {
	URL string `json:"url"`
}

type HeartbeatConfig struct {
	Path            string `json:"path"`
	IntervalSeconds int    `json:"intervalSeconds"`
	MaxAgeSeconds   int    `json:"maxAgeSeconds"` // staleness threshold for healthcheck
}

type MetricsConfig struct {
	Enabled bool   `json:"enabled"`
	Addr    string `json:"addr"` // listen address for /metrics
}

// DefaultConfigDir returns the default config directory (~/.tgwatch).
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".tgwatch"
	}
	return filepath.Join(home, ".tgwatch")
}

func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

func Load(path string) (*Config, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve home directory: %w", err)
		}
		path = filepath.Join(home, path[2:])
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read config file %s: %w", path, err)
	}

	// Substitute environment variables: ${VAR} and ${VAR:-default}
	data = []byte(ExpandEnvVars(string(data)))

	cfg := Defaults()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("cannot parse config file %s: %w", path, err)
	}

	cfg.General.LogFile = expandPath(cfg.General.LogFile)
	cfg.Watch.RulesFile = expandPath(cfg.Watch.RulesFile)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return cfg, nil
}

// envVarPattern matches ${VAR} and ${VAR:-default} patterns in config strings.
var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-(.*?))?\}`)

// ExpandEnvVars replaces ${VAR} with the environment variable value.
// Supports default values: ${VAR:-default} uses "default" when VAR is unset or empty.
func ExpandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		groups := envVarPattern.FindStringSubmatch(match)
		if len(groups) < 2 {
			return match
		}
		varName := groups[1]
		defaultVal := ""
		hasDefault := len(groups) >= 3 && groups[2] != ""
		if hasDefault {
			defaultVal = groups[2]
		}

		val, exists := os.LookupEnv(varName)
		if !exists || val == "" {
			if hasDefault {
				return defaultVal
			}
			return match // Keep original if no env var and no default
		}
		return val
	})
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func Save(path string, cfg *Config) error {
	path = expandPath(path)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("cannot marshal config: %w", err)
	}
	// The config holds credentials; keep it private to the owner.
	if err := os.WriteFile(path, append(data, '\n'), 0o600); err != nil {
		return fmt.Errorf("cannot write config file: %w", err)
	}
	return nil
}

// Validate checks structural validity. It does not require a notification
// provider: a watcher without one still runs, every send just fails with a
// logged configuration error.
func Validate(cfg *Config) error {
	switch cfg.General.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("general.logLevel must be one of debug|info|warn|error, got %q", cfg.General.LogLevel)
	}

	if cfg.Telegram.UpdateTimeout < 0 || cfg.Telegram.UpdateTimeout > 300 {
		return fmt.Errorf("telegram.updateTimeout must be 0-300 seconds, got %d", cfg.Telegram.UpdateTimeout)
	}

	if cfg.Watch.SummaryIntervalHours < 1 {
		return fmt.Errorf("watch.summaryIntervalHours must be >= 1, got %d", cfg.Watch.SummaryIntervalHours)
	}

	for _, kw := range cfg.Watch.Keywords {
		if strings.TrimSpace(kw) == "" {
			return fmt.Errorf("watch.keywords must not contain blank entries")
		}
	}

	if cfg.Heartbeat.IntervalSeconds < 1 {
		return fmt.Errorf("heartbeat.intervalSeconds must be >= 1, got %d", cfg.Heartbeat.IntervalSeconds)
	}
	if cfg.Heartbeat.MaxAgeSeconds <= cfg.Heartbeat.IntervalSeconds {
		return fmt.Errorf("heartbeat.maxAgeSeconds (%d) must exceed intervalSeconds (%d)",
			cfg.Heartbeat.MaxAgeSeconds, cfg.Heartbeat.IntervalSeconds)
	}

	if cfg.Metrics.Enabled && cfg.Metrics.Addr == "" {
		return fmt.Errorf("metrics.addr is required when metrics.enabled is true")
	}

	return nil
}

// Sanitize returns a copy with secrets masked, for display purposes.
func Sanitize(cfg *Config) *Config {
	out := *cfg
	out.Telegram.Token = mask(cfg.Telegram.Token)
	out.Notify.Telegram.Token = mask(cfg.Notify.Telegram.Token)
	out.Notify.Twilio.AuthToken = mask(cfg.Notify.Twilio.AuthToken)
	return &out
}

func mask(secret string) string {
	if secret == "" {
		return ""
	}
	if len(secret) <= 8 {
		return "****"
	}
	return secret[:4] + "..." + secret[len(secret)-4:]
}
