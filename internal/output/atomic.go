package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
)

// WriteFileAtomic writes data to path through a temp file in the same directory, so
// readers see either the old file or the complete new one.
func WriteFileAtomic(path string, data []byte) error {
	return writeAtomic(path, func(tmpName string) error {
		return os.WriteFile(tmpName, data, 0o644)
	})
}

// WriteJSON writes v as indented UTF-8 JSON to path atomically.
func WriteJSON(path string, v any) error {
	data, err := EncodeJSON(v)
	if err != nil {
		return err
	}
	return WriteFileAtomic(path, data)
}

// EncodeJSON renders v with two-space indentation and without HTML escaping, so
// non-ASCII text stays readable.
func EncodeJSON(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// writeAtomic lets fill produce the content at a hidden temp path in the same
// directory that keeps the extension, then syncs it and renames it over path.
func writeAtomic(path string, fill func(tmpName string) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*-"+filepath.Base(path))
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if err := tmp.Close(); err != nil {
		return err
	}
	defer os.Remove(tmpName)

	if err := fill(tmpName); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return err
	}
	if err := syncFile(tmpName); err != nil {
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		return err
	}

	_ = syncFile(dir)
	return nil
}

// syncFile fsyncs a file or directory. Directory sync is skipped on Windows.
func syncFile(name string) error {
	if runtime.GOOS == "windows" {
		if fi, err := os.Stat(name); err == nil && fi.IsDir() {
			return nil
		}
	}
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
