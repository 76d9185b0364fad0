package watcher

import "context"

// Watcher reports qualifying files in one directory to a Handler.
type Watcher interface {
	// Start runs the event and rescan loops until ctx is cancelled, then waits for
	// in-flight handlers to finish.
	Start(ctx context.Context) error
	Stop() error
}

// Handler processes one candidate path. Errors are logged and never stop the watcher.
type Handler func(ctx context.Context, path string) error
