// Package storage implements the file-backed record store underneath the
// repositories: one JSON document per entity type, loaded whole and
// rewritten whole on every save.
package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Error wraps an I/O or decoding failure of the backing file.
type Error struct {
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("storage %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// Store persists a list of records of type T as a single JSON array file.
type Store[T any] struct {
	path string
}

// NewStore creates a store over the given file path. The file itself is
// created lazily on the first save.
func NewStore[T any](path string) *Store[T] {
	return &Store[T]{path: path}
}

// Path returns the backing file path.
func (s *Store[T]) Path() string { return s.path }

// Load reads the whole collection. A missing file yields an empty list; a
// malformed file yields an *Error wrapping the decoding cause.
func (s *Store[T]) Load() ([]T, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []T{}, nil
		}
		return nil, &Error{Op: "load", Path: s.path, Err: err}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &Error{Op: "load", Path: s.path, Err: err}
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

// Save replaces the whole collection. The document is written to a temp
// file in the same directory and renamed into place so a failed write
// leaves the previous version intact.
func (s *Store[T]) Save(records []T) error {
	if records == nil {
		records = []T{}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return &Error{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Exists reports whether the backing file is present.
func (s *Store[T]) Exists() bool {
	_, err := os.Stat(s.path)
	return err == nil
}

// Clear rewrites the collection as an empty list.
func (s *Store[T]) Clear() error {
	return s.Save(nil)
}

// Size returns the backing file size in bytes, 0 when the file is missing.
func (s *Store[T]) Size() (int64, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, &Error{Op: "size", Path: s.path, Err: err}
	}
	return info.Size(), nil
}

// Backup copies the current file into dir under a timestamp-suffixed name
// and returns the backup path. Backing up a missing file is a no-op
// returning an empty path. Backups accumulate; nothing prunes them here.
func (s *Store[T]) Backup(dir string, now time.Time) (string, error) {
	src, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", &Error{Op: "backup", Path: s.path, Err: err}
	}
	defer src.Close()

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", &Error{Op: "backup", Path: s.path, Err: err}
	}

	base := filepath.Base(s.path)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)
	target := filepath.Join(dir, fmt.Sprintf("%s_%s%s", name, now.Format("20060102_150405"), ext))

	dst, err := os.Create(target)
	if err != nil {
		return "", &Error{Op: "backup", Path: s.path, Err: err}
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(target)
		return "", &Error{Op: "backup", Path: s.path, Err: err}
	}
	return target, nil
}
