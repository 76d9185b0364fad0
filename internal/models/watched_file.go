package models

import (
	"path/filepath"
	"strings"
	"time"
)

// Fingerprint identifies one version of a file on disk.
// Size and ModTime are a cheap stat signature; Hash is the SHA-256 of the content and
// is the value recorded for dedup.
type Fingerprint struct {
	Size    int64
	ModTime time.Time
	Hash    string
}

// SameStat reports whether two fingerprints share the stat signature.
func (f Fingerprint) SameStat(o Fingerprint) bool {
	return f.Size == o.Size && f.ModTime.Equal(o.ModTime)
}

// WatchedFile is one artifact observed in a watched directory.
type WatchedFile struct {
	Path string
	// Extension is lowercase and has no leading dot.
	Extension   string
	Fingerprint Fingerprint
}

// NewWatchedFile describes the version fp of the file at path.
func NewWatchedFile(path string, fp Fingerprint) WatchedFile {
	return WatchedFile{
		Path:        path,
		Extension:   strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")),
		Fingerprint: fp,
	}
}

// IsTranscriptJSON reports whether the file carries the JSON input artifact rather
// than plain text.
func (f WatchedFile) IsTranscriptJSON() bool {
	return f.Extension == "json"
}
