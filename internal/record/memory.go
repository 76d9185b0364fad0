package record

import (
	"context"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

func (m *implMemory) Lookup(_ context.Context, path string) (models.Fingerprint, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	fp, ok := m.entries[path]
	return fp, ok, nil
}

func (m *implMemory) Commit(_ context.Context, path string, fp models.Fingerprint) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[path] = fp
	return nil
}

func (m *implMemory) Close() error {
	return nil
}
