package repository

import "context"

// Maintenance groups the file-level housekeeping operations every
// repository exposes over its backing store.
type Maintenance interface {
	// Backup copies the backing file into dir under a timestamp-suffixed
	// name and returns the backup path; empty when there is nothing to
	// back up.
	Backup(ctx context.Context, dir string) (string, error)

	// Clear rewrites the collection as an empty list.
	Clear(ctx context.Context) error

	// FileSize returns the backing file size in bytes, 0 when missing.
	FileSize(ctx context.Context) (int64, error)

	// FileExists reports whether the backing file is present.
	FileExists(ctx context.Context) bool
}
