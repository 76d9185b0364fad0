package watcher

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/sync/semaphore"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
)

// Options configures a Watcher.
type Options struct {
	Dir string
	// Extension selects files to report, without the leading dot.
	Extension string
	// Interval is the period of the full-directory rescan.
	Interval      time.Duration
	MaxConcurrent int
}

type implWatcher struct {
	opts    Options
	handler Handler
	logger  logger.Logger
	watcher *fsnotify.Watcher
	sem     *semaphore.Weighted
	wg      sync.WaitGroup

	mu sync.Mutex
	// inflight maps a path being handled to whether another trigger arrived meanwhile.
	inflight map[string]bool
}

// New creates a Watcher on opts.Dir. The directory is created if missing.
func New(opts Options, handler Handler, log logger.Logger) (Watcher, error) {
	if opts.Interval <= 0 {
		opts.Interval = 60 * time.Second
	}
	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = 2
	}
	opts.Extension = strings.ToLower(strings.TrimPrefix(opts.Extension, "."))

	if err := ensureDir(opts.Dir); err != nil {
		return nil, err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := watcher.Add(opts.Dir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("add watch path: %w", err)
	}

	return &implWatcher{
		opts:     opts,
		handler:  handler,
		logger:   log,
		watcher:  watcher,
		sem:      semaphore.NewWeighted(int64(opts.MaxConcurrent)),
		inflight: make(map[string]bool),
	}, nil
}
