package repository

import "errors"

var (
	// ErrNotFound is returned when a requested entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicateKey is returned when an entity with the same identity
	// key already exists.
	ErrDuplicateKey = errors.New("duplicate key")
)
