// Package store implements the shared-resource policy of spec.md §5:
// single-writer file-backed JSON documents, persisted by writing to a
// temp file and renaming over the target so readers always observe a
// complete prior or next document, never a partial write.
package store

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// SaveJSON atomically writes v as indented JSON to path.
func SaveJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, path)
}

// LoadJSON reads and decodes path into v. A missing file is not an
// error: v is left at its zero value, matching a store's first run.
func LoadJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}
	if len(data) == 0 {
		return nil
	}
	return json.Unmarshal(data, v)
}
