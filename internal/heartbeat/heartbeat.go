// Package heartbeat maintains the liveness file that container health checks
// poll. The watch daemon rewrites the file on an interval; the healthcheck
// command compares its modification time against a staleness threshold.
package heartbeat

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// Writer rewrites the heartbeat file on a fixed interval.
type Writer struct {
	path     string
	interval time.Duration
	logger   *slog.Logger
}

func NewWriter(path string, interval time.Duration, logger *slog.Logger) *Writer {
	if interval <= 0 {
		interval = time.Minute
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Writer{path: path, interval: interval, logger: logger}
}

// Run writes once immediately, then on every tick until the context is
// cancelled. Write errors are logged and do not stop the loop.
func (w *Writer) Run(ctx context.Context) {
	w.logger.Info("heartbeat started", "path", w.path, "interval", w.interval)

	w.write()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("heartbeat stopped")
			return
		case <-ticker.C:
			w.write()
		}
	}
}

func (w *Writer) write() {
	stamp := time.Now().Format(time.RFC3339)
	if err := os.WriteFile(w.path, []byte(stamp+"\n"), 0o644); err != nil {
		w.logger.Error("heartbeat write failed", "path", w.path, "err", err)
	}
}

// Check reports whether the heartbeat file at path was refreshed within
// maxAge of now. The returned error explains the failure for the operator.
func Check(path string, maxAge time.Duration, now time.Time) error {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("heartbeat file %s not found", path)
		}
		return fmt.Errorf("stat heartbeat file: %w", err)
	}

	age := now.Sub(info.ModTime())
	if age > maxAge {
		return fmt.Errorf("heartbeat is stale (last update %.1fs ago, threshold %.0fs)",
			age.Seconds(), maxAge.Seconds())
	}
	return nil
}

// Age returns how long ago the heartbeat file was refreshed.
func Age(path string, now time.Time) (time.Duration, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return now.Sub(info.ModTime()), nil
}
