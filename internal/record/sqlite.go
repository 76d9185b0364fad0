package record

import (
	"context"
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/nguyentantai21042004/digest-flow/internal/models"
)

//go:embed schema.sql
var schemaSQL string

type implSQLite struct {
	db *sql.DB
}

// NewSQLite opens (or creates) the record database at path and applies the schema.
// ":memory:" gives a throwaway database.
func NewSQLite(path string) (Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create record directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open record database: %w", err)
	}
	// A single connection keeps ":memory:" databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &implSQLite{db: db}, nil
}

func (s *implSQLite) Lookup(ctx context.Context, path string) (models.Fingerprint, bool, error) {
	var (
		fp      models.Fingerprint
		modTime int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT size, mod_time, hash FROM processed WHERE path = ?`, path,
	).Scan(&fp.Size, &modTime, &fp.Hash)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Fingerprint{}, false, nil
	}
	if err != nil {
		return models.Fingerprint{}, false, fmt.Errorf("failed to look up %s: %w", path, err)
	}
	fp.ModTime = time.Unix(0, modTime)
	return fp, true, nil
}

func (s *implSQLite) Commit(ctx context.Context, path string, fp models.Fingerprint) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO processed (path, size, mod_time, hash, processed_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			size = excluded.size,
			mod_time = excluded.mod_time,
			hash = excluded.hash,
			processed_at = excluded.processed_at`,
		path, fp.Size, fp.ModTime.UnixNano(), fp.Hash, time.Now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to commit %s: %w", path, err)
	}
	return nil
}

func (s *implSQLite) Close() error {
	return s.db.Close()
}
