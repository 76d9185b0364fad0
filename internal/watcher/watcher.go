package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/errgroup"
)

func (w *implWatcher) Start(ctx context.Context) error {
	w.logger.Info(ctx, "File watcher started (max concurrent: %d, rescan every %s). Monitoring: %s for *.%s",
		w.opts.MaxConcurrent, w.opts.Interval, w.opts.Dir, w.opts.Extension)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return w.watchEvents(gctx) })
	g.Go(func() error { return w.rescanLoop(gctx) })
	err := g.Wait()

	w.logger.Info(ctx, "Waiting for ongoing processing to complete...")
	w.wg.Wait()
	w.logger.Info(ctx, "File watcher stopped")
	return err
}

func (w *implWatcher) Stop() error {
	return w.watcher.Close()
}

func (w *implWatcher) watchEvents(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.watcher.Events:
			if !ok {
				return fmt.Errorf("watcher events channel closed")
			}
			if !event.Has(fsnotify.Create) && !event.Has(fsnotify.Write) {
				continue
			}
			if !w.matches(event.Name) {
				w.logger.Debug(ctx, "Ignoring %s", event.Name)
				continue
			}
			w.dispatch(ctx, event.Name)

		case err, ok := <-w.watcher.Errors:
			if !ok {
				return fmt.Errorf("watcher errors channel closed")
			}
			w.logger.Error(ctx, "Watcher error: %v", err)
		}
	}
}

// rescanLoop scans once at start and then on every tick, catching files whose
// events were missed or whose earlier attempt failed.
func (w *implWatcher) rescanLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		w.rescan(ctx)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

func (w *implWatcher) rescan(ctx context.Context) {
	entries, err := os.ReadDir(w.opts.Dir)
	if err != nil {
		w.logger.Error(ctx, "Rescan of %s failed: %v", w.opts.Dir, err)
		return
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		path := filepath.Join(w.opts.Dir, e.Name())
		if w.matches(path) {
			w.dispatch(ctx, path)
		}
	}
}

// dispatch runs the handler for path in the background. A trigger for a path that is
// already being handled is folded into one follow-up run after the current one.
func (w *implWatcher) dispatch(ctx context.Context, path string) {
	w.mu.Lock()
	if _, busy := w.inflight[path]; busy {
		w.inflight[path] = true
		w.mu.Unlock()
		return
	}
	w.inflight[path] = false
	w.mu.Unlock()

	// Handlers outlive shutdown so an accepted file is finished, not abandoned mid-write.
	work := context.WithoutCancel(ctx)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		for {
			if err := w.sem.Acquire(ctx, 1); err != nil {
				w.done(path)
				return
			}
			if err := w.handler(work, path); err != nil {
				w.logger.Error(ctx, "Failed to process %s: %v", path, err)
			}
			w.sem.Release(1)

			if !w.again(path) {
				return
			}
		}
	}()
}

// again reports whether path was triggered while it was being handled, clearing the
// flag, or releases path when it was not.
func (w *implWatcher) again(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.inflight[path] {
		w.inflight[path] = false
		return true
	}
	delete(w.inflight, path)
	return false
}

func (w *implWatcher) done(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.inflight, path)
}

func (w *implWatcher) matches(path string) bool {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != w.opts.Extension || strings.HasPrefix(filepath.Base(path), ".") {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create watch directory: %w", err)
	}
	return nil
}
