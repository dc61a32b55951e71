// Package file implements the repository interfaces over whole-file JSON
// collections: every call loads the full collection, mutates it in memory
// and rewrites the file. Adequate for the small, single-user datasets this
// system manages; the interfaces in the repository package keep callers
// unaware of the strategy.
package file

import (
	"context"
	"strings"

	"fleet/internal/domain"
	"fleet/internal/storage"
)

// Backing file names, one collection per entity type.
const (
	busFileName    = "buses.json"
	driverFileName = "drivers.json"
	routeFileName  = "routes.json"
	tripFileName   = "trips.json"
)

// keysEqual compares string identity keys with case-insensitive ordinal
// folding. Deliberately not collation-aware, so matching behaves the same
// on every platform.
func keysEqual(a, b string) bool {
	return strings.EqualFold(a, b)
}

// containsFold reports whether s contains substr, case-insensitively.
func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}

// maintenance provides the housekeeping part of every repository over its
// backing store.
type maintenance[T any] struct {
	store *storage.Store[T]
	clock domain.Clock
}

func (m *maintenance[T]) Backup(_ context.Context, dir string) (string, error) {
	return m.store.Backup(dir, m.clock.Now())
}

func (m *maintenance[T]) Clear(_ context.Context) error {
	return m.store.Clear()
}

func (m *maintenance[T]) FileSize(_ context.Context) (int64, error) {
	return m.store.Size()
}

func (m *maintenance[T]) FileExists(_ context.Context) bool {
	return m.store.Exists()
}

// decodeError wraps a record that fails domain validation while being
// materialized from disk; the persisted data is malformed as far as the
// caller is concerned.
func decodeError(path string, err error) error {
	return &storage.Error{Op: "decode", Path: path, Err: err}
}
