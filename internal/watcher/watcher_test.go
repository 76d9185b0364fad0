package watcher

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

func newTestWatcher(t *testing.T, dir string, interval time.Duration, h Handler) *implWatcher {
	t.Helper()
	w, err := New(Options{Dir: dir, Extension: ".txt", Interval: interval, MaxConcurrent: 2}, h, logger.Discard())
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	t.Cleanup(func() { w.Stop() })
	return w.(*implWatcher)
}

func run(t *testing.T, w Watcher) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		w.Start(ctx)
	}()
	return func() {
		stop()
		<-done
	}
}

func waitFor(t *testing.T, ch <-chan string, want string) {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-timeout:
			t.Fatalf("handler was not called for %s", want)
		}
	}
}

func TestRescanReportsExistingFiles(t *testing.T) {
	dir := t.TempDir()
	want := filepath.Join(dir, "a.txt")
	for _, name := range []string{"a.txt", "b.md", ".hidden.txt"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	seen := make(chan string, 16)
	w := newTestWatcher(t, dir, time.Hour, func(_ context.Context, path string) error {
		seen <- path
		return nil
	})
	stop := run(t, w)

	waitFor(t, seen, want)
	stop()

	close(seen)
	for path := range seen {
		if path != want {
			t.Errorf("handler called for %s", path)
		}
	}
}

func TestEventsReportNewFiles(t *testing.T) {
	dir := t.TempDir()
	seen := make(chan string, 16)
	w := newTestWatcher(t, dir, time.Hour, func(_ context.Context, path string) error {
		seen <- path
		return nil
	})
	stop := run(t, w)
	defer stop()

	path := filepath.Join(dir, "new.txt")
	if err := os.WriteFile(path, []byte("hello"), 0o644); err != nil {
		t.Fatal(err)
	}
	waitFor(t, seen, path)
}

func TestRescanRetriesAfterHandlerError(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	var calls atomic.Int32
	seen := make(chan string, 16)
	w := newTestWatcher(t, dir, 10*time.Millisecond, func(_ context.Context, p string) error {
		if calls.Add(1) == 1 {
			return errors.New("boom")
		}
		seen <- p
		return nil
	})
	stop := run(t, w)
	defer stop()

	waitFor(t, seen, path)
}

func TestDispatchFoldsRepeatedTriggers(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.txt")

	release := make(chan struct{})
	started := make(chan struct{}, 4)
	var calls atomic.Int32
	w := newTestWatcher(t, dir, time.Hour, func(context.Context, string) error {
		calls.Add(1)
		started <- struct{}{}
		<-release
		return nil
	})

	ctx := context.Background()
	w.dispatch(ctx, path)
	<-started
	w.dispatch(ctx, path)
	w.dispatch(ctx, path)
	w.dispatch(ctx, path)
	close(release)
	w.wg.Wait()

	if got := calls.Load(); got != 2 {
		t.Errorf("handler calls = %d, want 2", got)
	}
	if len(w.inflight) != 0 {
		t.Errorf("inflight = %v, want empty", w.inflight)
	}
}

func TestDispatchBoundsConcurrency(t *testing.T) {
	dir := t.TempDir()

	var (
		mu       sync.Mutex
		running  int
		maxSeen  int
		finished sync.WaitGroup
	)
	w := newTestWatcher(t, dir, time.Hour, func(context.Context, string) error {
		defer finished.Done()
		mu.Lock()
		running++
		maxSeen = max(maxSeen, running)
		mu.Unlock()

		time.Sleep(20 * time.Millisecond)

		mu.Lock()
		running--
		mu.Unlock()
		return nil
	})

	for _, name := range []string{"a.txt", "b.txt", "c.txt", "d.txt", "e.txt"} {
		finished.Add(1)
		w.dispatch(context.Background(), filepath.Join(dir, name))
	}
	finished.Wait()

	if maxSeen > 2 {
		t.Errorf("max concurrent handlers = %d, want <= 2", maxSeen)
	}
}

func TestStartWaitsForInFlightWork(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	started := make(chan struct{})
	var finished atomic.Bool
	w := newTestWatcher(t, dir, time.Hour, func(ctx context.Context, _ string) error {
		close(started)
		time.Sleep(50 * time.Millisecond)
		if ctx.Err() != nil {
			t.Error("handler context was cancelled by shutdown")
		}
		finished.Store(true)
		return nil
	})
	stop := run(t, w)

	<-started
	stop()
	if !finished.Load() {
		t.Error("Start returned before the in-flight handler finished")
	}
}

func TestNewCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "incoming")
	newTestWatcher(t, dir, time.Hour, func(context.Context, string) error { return nil })
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		t.Errorf("watch directory not created: %v", err)
	}
}
