package watch

import (
	"context"
	"log/slog"
	"time"

	"tgwatch/internal/metrics"
)

// Reporter periodically sends a status digest through the dispatcher so the
// operator knows the watcher is alive. One digest goes out immediately on
// startup, then one per interval. Counters are reset after every digest;
// a failed send is logged and not retried. There is no catch-up for missed
// ticks: a suspended process simply resumes the timer when it wakes.
type Reporter struct {
	interval time.Duration
	sender   Sender
	stats    *RunningStats
	logger   *slog.Logger
}

type ReporterConfig struct {
	Interval time.Duration
	Sender   Sender
	Stats    *RunningStats
	Logger   *slog.Logger
}

func NewReporter(cfg ReporterConfig) *Reporter {
	if cfg.Interval <= 0 {
		cfg.Interval = 24 * time.Hour
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return &Reporter{
		interval: cfg.Interval,
		sender:   cfg.Sender,
		stats:    cfg.Stats,
		logger:   cfg.Logger,
	}
}

// Run blocks until the context is cancelled.
func (r *Reporter) Run(ctx context.Context) {
	r.logger.Info("reporter started", "interval", r.interval)

	r.sendDigest(ctx, "Startup")

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("reporter stopped")
			return
		case <-ticker.C:
			r.sendDigest(ctx, "Daily")
		}
	}
}

// sendDigest composes and sends one digest. Counters reset whether or not
// the send succeeds.
func (r *Reporter) sendDigest(ctx context.Context, label string) {
	sum := r.stats.SnapshotAndReset(time.Now())
	body := FormatDigest(label, sum)

	if !r.sender.Send(ctx, body) {
		r.logger.Warn("digest send failed",
			"label", label,
			"messages_seen", sum.MessagesSeen,
			"alerts_sent", sum.AlertsSent,
		)
		return
	}
	metrics.DigestsTotal.Inc()
	r.logger.Info("digest sent",
		"label", label,
		"messages_seen", sum.MessagesSeen,
		"alerts_sent", sum.AlertsSent,
	)
}
