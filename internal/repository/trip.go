package repository

import (
	"context"
	"time"

	"fleet/internal/domain"
)

// TripRepository defines the persistence operations for trips. Identity is
// the composite (calendar day, route code, driver number) key; equality is
// structural.
type TripRepository interface {
	// Add persists a new trip and stamps a record identifier. Fails with
	// ErrDuplicateKey when a trip with the same key exists.
	Add(ctx context.Context, trip *domain.Trip) error

	// Update replaces the stored trip with the same key.
	Update(ctx context.Context, trip *domain.Trip) error

	// Remove deletes the trip with the given key.
	Remove(ctx context.Context, key domain.TripKey) error

	// GetByKey retrieves a trip by its composite key.
	GetByKey(ctx context.Context, key domain.TripKey) (*domain.Trip, error)

	// Exists reports whether a trip with the key is stored.
	Exists(ctx context.Context, key domain.TripKey) (bool, error)

	// GetAll retrieves every trip in storage order.
	GetAll(ctx context.Context) ([]*domain.Trip, error)

	// GetByDateRange retrieves trips dated within [start, end] inclusive,
	// compared by calendar day.
	GetByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Trip, error)

	// GetByRoute retrieves trips over the given route code.
	GetByRoute(ctx context.Context, routeCode string) ([]*domain.Trip, error)

	// GetByDriver retrieves trips performed by the given driver.
	GetByDriver(ctx context.Context, personnelNumber string) ([]*domain.Trip, error)

	// TotalRevenueForPeriod sums revenue over [start, end], 0 when no
	// trips match.
	TotalRevenueForPeriod(ctx context.Context, start, end time.Time) (float64, error)

	// TotalTicketsForPeriod sums tickets sold over [start, end].
	TotalTicketsForPeriod(ctx context.Context, start, end time.Time) (int, error)

	// CountForPeriod counts trips dated within [start, end].
	CountForPeriod(ctx context.Context, start, end time.Time) (int, error)

	// AverageRevenuePerTrip averages revenue over [start, end], 0 when no
	// trips match.
	AverageRevenuePerTrip(ctx context.Context, start, end time.Time) (float64, error)

	// AverageTicketsPerTrip averages tickets sold over [start, end].
	AverageTicketsPerTrip(ctx context.Context, start, end time.Time) (float64, error)

	// RevenueByRoute groups revenue over [start, end] by route code.
	RevenueByRoute(ctx context.Context, start, end time.Time) (map[string]float64, error)

	// RevenueByDriver groups revenue over [start, end] by driver number.
	RevenueByDriver(ctx context.Context, start, end time.Time) (map[string]float64, error)

	// TopRevenueTrips retrieves the count highest-revenue trips within
	// [start, end], ordered by revenue descending.
	TopRevenueTrips(ctx context.Context, start, end time.Time, count int) ([]*domain.Trip, error)

	Maintenance
}
