package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"tgwatch/internal/config"
	"tgwatch/internal/heartbeat"
	"tgwatch/internal/metrics"
	"tgwatch/internal/notify"
	"tgwatch/internal/source"
	"tgwatch/internal/watch"

	"github.com/spf13/cobra"
)

func watchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Run the watcher (event loop + reporter + heartbeat)",
		Long:  "Connects to Telegram, filters incoming messages against the configured rules, forwards matches to the notification provider, and maintains the heartbeat file. Press Ctrl+C to stop.",
		RunE:  runWatch,
	}
}

func runWatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger = buildLogger(cfg.General)
	slog.SetDefault(logger)

	// Without source credentials there is nothing to watch. This is the only
	// fatal configuration error; a missing notification provider just makes
	// every send fail loudly in the logs.
	if cfg.Telegram.Token == "" {
		return fmt.Errorf("telegram token is required (set telegram.token or %s)", config.EnvBotToken)
	}

	keywords, chats := cfg.Watch.Keywords, cfg.Watch.Chats
	if cfg.Watch.RulesFile != "" {
		rules, err := watch.LoadRules(cfg.Watch.RulesFile)
		if err != nil {
			return fmt.Errorf("rules file: %w", err)
		}
		keywords, chats = watch.MergeRules(keywords, chats, rules)
		logger.Info("rules file loaded", "path", cfg.Watch.RulesFile)
	}
	policy := watch.NewPolicy(keywords, chats)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stats := watch.NewRunningStats(time.Now())
	dispatcher := notify.NewDispatcher(cfg.Notify, logger)
	src := source.NewTelegram(cfg.Telegram, logger)

	loop := watch.NewLoop(watch.LoopConfig{
		Events: src.Events(),
		Policy: policy,
		Sender: dispatcher,
		Stats:  stats,
		Logger: logger,
	})

	reporter := watch.NewReporter(watch.ReporterConfig{
		Interval: time.Duration(cfg.Watch.SummaryIntervalHours) * time.Hour,
		Sender:   dispatcher,
		Stats:    stats,
		Logger:   logger,
	})

	hb := heartbeat.NewWriter(
		cfg.Heartbeat.Path,
		time.Duration(cfg.Heartbeat.IntervalSeconds)*time.Second,
		logger,
	)

	var metricsSrv *http.Server
	if cfg.Metrics.Enabled {
		metricsSrv = startMetricsServer(cfg.Metrics, logger)
	}

	// The source failing to connect should bring the whole process down;
	// everything else runs until the shared context is cancelled.
	srcErr := make(chan error, 1)
	go func() {
		srcErr <- src.Start(ctx)
	}()

	var wg sync.WaitGroup
	for _, run := range []func(context.Context){loop.Run, reporter.Run, hb.Run} {
		wg.Add(1)
		go func(run func(context.Context)) {
			defer wg.Done()
			run(ctx)
		}(run)
	}

	logger.Info("tgwatch running",
		"version", version,
		"provider", dispatcher.ProviderName(),
		"summary_interval_hours", cfg.Watch.SummaryIntervalHours,
	)

	var runErr error
	select {
	case <-ctx.Done():
		logger.Info("shutting down...")
	case err := <-srcErr:
		if err != nil {
			logger.Error("telegram source failed", "err", err)
			runErr = err
		}
		stop()
	}

	// Cancel the shared context and wait for the loops to drain.
	stop()
	wg.Wait()

	if metricsSrv != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn("metrics server shutdown", "err", err)
		}
	}

	logger.Info("shutdown complete")
	return runErr
}

// buildLogger creates the process logger from config: level from logLevel,
// output to stderr or the configured log file.
func buildLogger(cfg config.GeneralConfig) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	out := os.Stderr
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err == nil {
			out = f
		}
	}

	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level}))
}

func startMetricsServer(cfg config.MetricsConfig, logger *slog.Logger) *http.Server {
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", metrics.Collector.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		logger.Info("metrics server listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("metrics server error", "err", err)
		}
	}()
	return srv
}
