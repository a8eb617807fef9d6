package watch

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"sync"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))
}

// fakeSender records bodies and answers with a scripted result.
type fakeSender struct {
	mu     sync.Mutex
	bodies []string
	accept bool
}

func (f *fakeSender) Send(ctx context.Context, body string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bodies = append(f.bodies, body)
	return f.accept
}

func (f *fakeSender) sent() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.bodies...)
}

func TestLoop_CountsAndDispatches(t *testing.T) {
	sender := &fakeSender{accept: true}
	stats := NewRunningStats(time.Now())
	l := NewLoop(LoopConfig{
		Policy: NewPolicy([]string{"urgent"}, nil),
		Sender: sender,
		Stats:  stats,
		Logger: testLogger(),
	})

	l.handleEvent(context.Background(), MessageEvent{ChatID: "1", ChatTitle: "Ops", SenderName: "Ann", Text: "urgent: disk full"})
	l.handleEvent(context.Background(), MessageEvent{ChatID: "1", ChatTitle: "Ops", SenderName: "Ann", Text: "all good"})

	sum := stats.Snapshot(time.Now())
	if sum.MessagesSeen != 2 {
		t.Errorf("expected 2 messages seen, got %d", sum.MessagesSeen)
	}
	if sum.AlertsSent != 1 {
		t.Errorf("expected 1 alert sent, got %d", sum.AlertsSent)
	}

	bodies := sender.sent()
	if len(bodies) != 1 {
		t.Fatalf("expected 1 dispatched body, got %d", len(bodies))
	}
	if !strings.Contains(bodies[0], "Keyword: urgent") {
		t.Errorf("alert body missing keyword line: %q", bodies[0])
	}
	if !strings.Contains(bodies[0], "🚨") {
		t.Errorf("alert body missing header: %q", bodies[0])
	}
}

func TestLoop_FailedSendNotCounted(t *testing.T) {
	sender := &fakeSender{accept: false}
	stats := NewRunningStats(time.Now())
	l := NewLoop(LoopConfig{
		Policy: NewPolicy([]string{"urgent"}, nil),
		Sender: sender,
		Stats:  stats,
		Logger: testLogger(),
	})

	l.handleEvent(context.Background(), MessageEvent{ChatID: "1", Text: "urgent"})

	sum := stats.Snapshot(time.Now())
	if sum.AlertsSent != 0 {
		t.Errorf("alertsSent must only count accepted sends, got %d", sum.AlertsSent)
	}
	if sum.MessagesSeen != 1 {
		t.Errorf("messagesSeen must still count, got %d", sum.MessagesSeen)
	}
}

func TestLoop_RunStopsOnClosedChannel(t *testing.T) {
	events := make(chan MessageEvent, 2)
	sender := &fakeSender{accept: true}
	stats := NewRunningStats(time.Now())
	l := NewLoop(LoopConfig{
		Events: events,
		Policy: NewPolicy([]string{"ping"}, nil),
		Sender: sender,
		Stats:  stats,
		Logger: testLogger(),
	})

	events <- MessageEvent{ChatID: "1", Text: "ping"}
	events <- MessageEvent{ChatID: "1", Text: "pong"}
	close(events)

	done := make(chan struct{})
	go func() {
		l.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not exit after channel close")
	}

	if sum := stats.Snapshot(time.Now()); sum.MessagesSeen != 2 {
		t.Errorf("expected both events consumed, got %d", sum.MessagesSeen)
	}
}

// panicSender simulates a provider blowing up mid-send.
type panicSender struct{}

func (panicSender) Send(ctx context.Context, body string) bool { panic("provider exploded") }

func TestLoop_EventFailureIsIsolated(t *testing.T) {
	stats := NewRunningStats(time.Now())
	l := NewLoop(LoopConfig{
		Policy: NewPolicy([]string{"boom"}, nil),
		Sender: panicSender{},
		Stats:  stats,
		Logger: testLogger(),
	})

	// Must not panic out of handleEvent.
	l.handleEvent(context.Background(), MessageEvent{ChatID: "1", Text: "boom"})
	l.handleEvent(context.Background(), MessageEvent{ChatID: "1", Text: "quiet"})

	if sum := stats.Snapshot(time.Now()); sum.MessagesSeen != 2 {
		t.Errorf("loop must keep processing after a failure, got %d seen", sum.MessagesSeen)
	}
}
