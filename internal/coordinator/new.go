package coordinator

import (
	"sync"
	"time"

	"github.com/nguyentantai21042004/digest-flow/internal/logger"
	"github.com/nguyentantai21042004/digest-flow/internal/models"
	"github.com/nguyentantai21042004/digest-flow/internal/output"
	"github.com/nguyentantai21042004/digest-flow/internal/record"
	"github.com/nguyentantai21042004/digest-flow/internal/summarizer"
)

// Options configures validation and the stable-write wait.
type Options struct {
	// MinLength is the minimum number of characters a transcript needs to be processed.
	MinLength int
	// StableDelay is waited once before the first size/mtime poll.
	StableDelay time.Duration
	// PollInterval separates size/mtime polls while waiting for writes to settle.
	PollInterval time.Duration
	// MaxPolls bounds the polling; the file is read anyway once it is reached.
	MaxPolls int
}

type entry struct {
	state State
	fp    models.Fingerprint
}

// pathLock serialises one path. refs counts holders and waiters.
type pathLock struct {
	mu   sync.Mutex
	refs int
}

type implCoordinator struct {
	opts       Options
	summarizer summarizer.Summarizer
	writer     output.Writer
	record     record.Store
	logger     logger.Logger

	mu      sync.Mutex
	entries map[string]entry
	locks   map[string]*pathLock
}

// New creates a Coordinator that summarizes with s, writes with w and remembers
// processed fingerprints in rec.
func New(opts Options, s summarizer.Summarizer, w output.Writer, rec record.Store, log logger.Logger) Coordinator {
	if opts.PollInterval <= 0 {
		opts.PollInterval = 500 * time.Millisecond
	}
	if opts.MaxPolls <= 0 {
		opts.MaxPolls = 10
	}
	return &implCoordinator{
		opts:       opts,
		summarizer: s,
		writer:     w,
		record:     rec,
		logger:     log,
		entries:    make(map[string]entry),
		locks:      make(map[string]*pathLock),
	}
}
