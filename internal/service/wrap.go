package service

import (
	"errors"

	"fleet/internal/storage"
)

// wrapStorage re-wraps storage-level failures into a ServiceError carrying
// the operation description. Every other error kind passes through
// unchanged.
func wrapStorage(op string, err error) error {
	if err == nil {
		return nil
	}
	var storageErr *storage.Error
	if errors.As(err, &storageErr) {
		return &ServiceError{Op: op, Err: err}
	}
	return err
}
