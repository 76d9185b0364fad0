package record

import (
	"fmt"
	"sync"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

type implMemory struct {
	mu      sync.RWMutex
	entries map[string]models.Fingerprint
}

// NewMemory creates a process-local Store. Its contents are lost on restart.
func NewMemory() Store {
	return &implMemory{entries: make(map[string]models.Fingerprint)}
}

// Open creates the Store for backend. path is only used by the sqlite backend.
func Open(backend, path string) (Store, error) {
	switch backend {
	case "", BackendMemory:
		return NewMemory(), nil
	case BackendSQLite:
		return NewSQLite(path)
	default:
		return nil, fmt.Errorf("unknown record backend %q", backend)
	}
}
