package worker

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

type targetStub struct {
	name    string
	mounted atomic.Bool
	reloads atomic.Int32
	err     error
}

func (t *targetStub) Name() string  { return t.name }
func (t *targetStub) Mounted() bool { return t.mounted.Load() }
func (t *targetStub) Reload(context.Context) error {
	t.reloads.Add(1)
	return t.err
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.After(time.Second)
	for !cond() {
		select {
		case <-deadline:
			t.Fatal("timeout waiting for condition")
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestNewRefresherDefaults(t *testing.T) {
	r := NewRefresher(0, 0, nil)
	if r.workers != 1 {
		t.Fatalf("expected workers default to 1, got %d", r.workers)
	}
	if cap(r.jobs) != 4 {
		t.Fatalf("unexpected queue size %d", cap(r.jobs))
	}
}

func TestScheduleRunsInlineWhenStopped(t *testing.T) {
	r := NewRefresher(1, 0, testLogger())

	ran := false
	r.Schedule("inline", func(context.Context) { ran = true })
	if !ran {
		t.Fatal("expected task to run inline before Start")
	}
}

func TestScheduleRunsOnWorkers(t *testing.T) {
	r := NewRefresher(2, 0, testLogger())
	r.Start(context.Background())
	defer r.Stop()

	var wg sync.WaitGroup
	var count atomic.Int32
	for i := 0; i < 10; i++ {
		wg.Add(1)
		r.Schedule("task", func(context.Context) {
			defer wg.Done()
			count.Add(1)
		})
	}
	wg.Wait()
	if count.Load() != 10 {
		t.Fatalf("expected 10 tasks, got %d", count.Load())
	}
}

func TestStopCancelsTaskContext(t *testing.T) {
	r := NewRefresher(1, 0, testLogger())
	r.Start(context.Background())

	started := make(chan struct{})
	cancelled := make(chan struct{})
	r.Schedule("long", func(ctx context.Context) {
		close(started)
		<-ctx.Done()
		close(cancelled)
	})
	<-started
	r.Stop()

	select {
	case <-cancelled:
	default:
		t.Fatal("expected task context to be cancelled by Stop")
	}

	ran := false
	r.Schedule("after stop", func(context.Context) { ran = true })
	if !ran {
		t.Fatal("expected inline run after Stop")
	}
}

func TestAutoRefreshReloadsMountedTargets(t *testing.T) {
	mounted := &targetStub{name: "orders"}
	mounted.mounted.Store(true)
	hidden := &targetStub{name: "products"}
	failing := &targetStub{name: "dashboard", err: errors.New("backend down")}
	failing.mounted.Store(true)

	r := NewRefresher(1, 5*time.Millisecond, testLogger())
	r.Register(mounted, hidden, failing)
	r.Start(context.Background())

	waitFor(t, func() bool { return mounted.reloads.Load() >= 2 && failing.reloads.Load() >= 2 })
	r.Stop()

	if hidden.reloads.Load() != 0 {
		t.Fatalf("unmounted target must not be refreshed, got %d", hidden.reloads.Load())
	}
}

func TestStartIsIdempotent(t *testing.T) {
	r := NewRefresher(1, 0, testLogger())
	r.Start(context.Background())
	r.Start(context.Background())
	r.Stop()
	r.Stop()
}
