package watch

import (
	"sync"
	"time"
)

// RunningStats tracks process-wide counters shared between the watch loop and
// the periodic reporter. The loop and the reporter run on separate
// goroutines, so access is mutex-guarded. Counters only grow between resets;
// a reset zeroes both counters together and never touches the start time.
type RunningStats struct {
	mu           sync.Mutex
	startTime    time.Time
	messagesSeen int64
	alertsSent   int64
}

// NewRunningStats initializes the counters with the given start time.
func NewRunningStats(start time.Time) *RunningStats {
	return &RunningStats{startTime: start}
}

// MessageSeen records one consumed event.
func (s *RunningStats) MessageSeen() {
	s.mu.Lock()
	s.messagesSeen++
	s.mu.Unlock()
}

// AlertSent records one successfully dispatched alert.
func (s *RunningStats) AlertSent() {
	s.mu.Lock()
	s.alertsSent++
	s.mu.Unlock()
}

// StartTime returns when the watcher started. It never changes.
func (s *RunningStats) StartTime() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.startTime
}

// Summary is a point-in-time view of the counters.
type Summary struct {
	Uptime       time.Duration
	MessagesSeen int64
	AlertsSent   int64
}

// Snapshot returns the current counters without resetting them.
func (s *RunningStats) Snapshot(now time.Time) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Summary{
		Uptime:       now.Sub(s.startTime),
		MessagesSeen: s.messagesSeen,
		AlertsSent:   s.alertsSent,
	}
}

// SnapshotAndReset returns the current counters and zeroes them in the same
// critical section, so no increment is lost or double-reported across a
// digest boundary.
func (s *RunningStats) SnapshotAndReset(now time.Time) Summary {
	s.mu.Lock()
	defer s.mu.Unlock()
	sum := Summary{
		Uptime:       now.Sub(s.startTime),
		MessagesSeen: s.messagesSeen,
		AlertsSent:   s.alertsSent,
	}
	s.messagesSeen = 0
	s.alertsSent = 0
	return sum
}
