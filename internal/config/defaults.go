package config

func Defaults() *Config {
	return &Config{
		General: GeneralConfig{
			LogLevel: "info",
		},
		Telegram: TelegramConfig{
			UpdateTimeout: 30,
		},
		Watch: WatchConfig{
			SummaryIntervalHours: 24,
		},
		Heartbeat: HeartbeatConfig{
			Path:            "/tmp/heartbeat",
			IntervalSeconds: 60,
			MaxAgeSeconds:   120,
		},
		Metrics: MetricsConfig{
			Enabled: false,
			Addr:    "127.0.0.1:9180",
		},
	}
}
