package service

import "fmt"

// ReferentialIntegrityError reports a cross-entity foreign-key violation:
// deleting a driver or route still referenced by trips, or inserting a
// trip that names a missing driver or route.
type ReferentialIntegrityError struct {
	Entity    string // "driver" or "route"
	Key       string
	TripCount int // referencing trips; 0 when the entity itself is missing
	Missing   bool
}

func (e *ReferentialIntegrityError) Error() string {
	if e.Missing {
		return fmt.Sprintf("%s %q does not exist", e.Entity, e.Key)
	}
	return fmt.Sprintf("cannot delete %s %q: referenced by %d trips", e.Entity, e.Key, e.TripCount)
}

// BusinessRuleError reports a violated domain cap, such as the per-driver
// daily trip limit.
type BusinessRuleError struct {
	Rule    string
	Message string
}

func (e *BusinessRuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Rule, e.Message)
}

// ServiceError wraps a storage-level failure with a human-readable
// operation description. Validation and business-rule errors are never
// wrapped, so callers can branch on error kind.
type ServiceError struct {
	Op  string
	Err error
}

func (e *ServiceError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *ServiceError) Unwrap() error { return e.Err }
