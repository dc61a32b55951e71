package handler

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/service"
	"fleet/internal/storage"
)

func TestMapErrorToHTTPStatus(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", domain.NewValidationError("capacity", "out of range"), http.StatusBadRequest},
		{"not found", fmt.Errorf("bus %q: %w", "AB1234", repository.ErrNotFound), http.StatusNotFound},
		{"duplicate", fmt.Errorf("bus %q: %w", "AB1234", repository.ErrDuplicateKey), http.StatusConflict},
		{"referenced", &service.ReferentialIntegrityError{Entity: "driver", Key: "DRV001", TripCount: 2}, http.StatusConflict},
		{"missing reference", &service.ReferentialIntegrityError{Entity: "route", Key: "101A", Missing: true}, http.StatusConflict},
		{"business rule", &service.BusinessRuleError{Rule: "max trips per day", Message: "limit reached"}, http.StatusUnprocessableEntity},
		{"storage", &storage.Error{Op: "load", Path: "buses.json", Err: errors.New("disk gone")}, http.StatusInternalServerError},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			if got := mapErrorToHTTPStatus(tc.err); got != tc.want {
				t.Errorf("expected %d, got %d", tc.want, got)
			}
		})
	}
}

func TestMapErrorToHTTPStatus_WrappedInServiceError(t *testing.T) {
	t.Parallel()

	inner := &storage.Error{Op: "load", Path: "trips.json", Err: errors.New("disk gone")}
	wrapped := &service.ServiceError{Op: "getting all trips", Err: inner}

	if got := mapErrorToHTTPStatus(wrapped); got != http.StatusInternalServerError {
		t.Errorf("expected 500 for a wrapped storage failure, got %d", got)
	}
}
