package repository

import (
	"context"
	"time"

	"fleet/internal/domain"
)

// RouteRepository defines the persistence operations for routes. Route
// codes are matched case-insensitively.
type RouteRepository interface {
	// Add persists a new route. Fails with ErrDuplicateKey when the route
	// code is already taken.
	Add(ctx context.Context, route *domain.Route) error

	// Update replaces the stored route with the same code.
	Update(ctx context.Context, route *domain.Route) error

	// Remove deletes the route matching the given route's code.
	Remove(ctx context.Context, route *domain.Route) error

	// GetByCode retrieves a route by code.
	GetByCode(ctx context.Context, code string) (*domain.Route, error)

	// Exists reports whether a route with the code is stored.
	Exists(ctx context.Context, code string) (bool, error)

	// GetAll retrieves every route in storage order.
	GetAll(ctx context.Context) ([]*domain.Route, error)

	// GetByDay retrieves routes departing on the given weekday.
	GetByDay(ctx context.Context, day time.Weekday) ([]*domain.Route, error)

	// GetByPoint retrieves routes whose start, end or any intermediate
	// point contains the given substring, case-insensitively.
	GetByPoint(ctx context.Context, point string) ([]*domain.Route, error)

	// GetByDepartureRange retrieves routes departing within [start, end],
	// both times-of-day.
	GetByDepartureRange(ctx context.Context, start, end time.Duration) ([]*domain.Route, error)

	// GetByTravelTimeRange retrieves routes with travel time in [min, max].
	GetByTravelTimeRange(ctx context.Context, min, max time.Duration) ([]*domain.Route, error)

	// StartPoints lists the distinct start points, sorted.
	StartPoints(ctx context.Context) ([]string, error)

	// EndPoints lists the distinct end points, sorted.
	EndPoints(ctx context.Context) ([]string, error)

	// DayStatistics counts routes departing on each weekday.
	DayStatistics(ctx context.Context) (map[time.Weekday]int, error)

	// AverageTravelTime averages travel time, 0 when empty.
	AverageTravelTime(ctx context.Context) (time.Duration, error)

	Maintenance
}
