package repository

import (
	"context"

	"fleet/internal/domain"
)

// BusRepository defines the persistence operations for buses. Government
// numbers are matched case-insensitively.
type BusRepository interface {
	// Add persists a new bus. Fails with ErrDuplicateKey when the
	// government number is already taken.
	Add(ctx context.Context, bus *domain.Bus) error

	// Update replaces the stored bus with the same government number.
	Update(ctx context.Context, bus *domain.Bus) error

	// Remove deletes the bus matching the given bus's government number.
	Remove(ctx context.Context, bus *domain.Bus) error

	// GetByNumber retrieves a bus by government number.
	GetByNumber(ctx context.Context, governmentNumber string) (*domain.Bus, error)

	// Exists reports whether a bus with the government number is stored.
	Exists(ctx context.Context, governmentNumber string) (bool, error)

	// GetAll retrieves every bus in storage order.
	GetAll(ctx context.Context) ([]*domain.Bus, error)

	// GetByBrand retrieves buses whose brand/model contains the given
	// substring, case-insensitively.
	GetByBrand(ctx context.Context, brand string) ([]*domain.Bus, error)

	// GetByCapacityRange retrieves buses with capacity in [min, max].
	GetByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*domain.Bus, error)

	// GetByYearRange retrieves buses manufactured in [startYear, endYear].
	GetByYearRange(ctx context.Context, startYear, endYear int) ([]*domain.Bus, error)

	// GetByOverhaulStatus retrieves buses that have (or have not) been
	// overhauled.
	GetByOverhaulStatus(ctx context.Context, hasOverhaul bool) ([]*domain.Bus, error)

	// TotalCapacity sums the capacity of the whole fleet.
	TotalCapacity(ctx context.Context) (int, error)

	// AverageCapacity averages capacity over the fleet, 0 when empty.
	AverageCapacity(ctx context.Context) (float64, error)

	// Brands lists the distinct brand/model values, sorted.
	Brands(ctx context.Context) ([]string, error)

	Maintenance
}
