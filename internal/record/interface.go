package record

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

// Store remembers the last fingerprint that was fully processed for each path.
type Store interface {
	// Lookup returns the committed fingerprint for path, if any.
	Lookup(ctx context.Context, path string) (models.Fingerprint, bool, error)
	// Commit records fp as processed for path, replacing any earlier entry.
	Commit(ctx context.Context, path string, fp models.Fingerprint) error
	Close() error
}
