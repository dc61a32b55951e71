package repository

import (
	"context"

	"fleet/internal/domain"
)

// DriverRepository defines the persistence operations for drivers.
// Personnel numbers are matched case-insensitively.
type DriverRepository interface {
	// Add persists a new driver. Fails with ErrDuplicateKey when the
	// personnel number is already taken.
	Add(ctx context.Context, driver *domain.Driver) error

	// Update replaces the stored driver with the same personnel number.
	Update(ctx context.Context, driver *domain.Driver) error

	// Remove deletes the driver matching the given driver's personnel
	// number.
	Remove(ctx context.Context, driver *domain.Driver) error

	// GetByNumber retrieves a driver by personnel number.
	GetByNumber(ctx context.Context, personnelNumber string) (*domain.Driver, error)

	// Exists reports whether a driver with the personnel number is stored.
	Exists(ctx context.Context, personnelNumber string) (bool, error)

	// GetAll retrieves every driver in storage order.
	GetAll(ctx context.Context) ([]*domain.Driver, error)

	// GetByCategory retrieves drivers holding the given license category.
	GetByCategory(ctx context.Context, category string) ([]*domain.Driver, error)

	// GetByExperienceRange retrieves drivers with experience in
	// [minExperience, maxExperience].
	GetByExperienceRange(ctx context.Context, minExperience, maxExperience int) ([]*domain.Driver, error)

	// GetByMinExperience retrieves drivers with at least minExperience
	// years of experience.
	GetByMinExperience(ctx context.Context, minExperience int) ([]*domain.Driver, error)

	// GetByClass retrieves drivers of the given qualification class.
	GetByClass(ctx context.Context, driverClass int) ([]*domain.Driver, error)

	// GetByBirthYearRange retrieves drivers born in [startYear, endYear].
	GetByBirthYearRange(ctx context.Context, startYear, endYear int) ([]*domain.Driver, error)

	// GetByName retrieves drivers whose full name contains the given
	// substring, case-insensitively.
	GetByName(ctx context.Context, name string) ([]*domain.Driver, error)

	// AverageExperience averages experience years, 0 when empty.
	AverageExperience(ctx context.Context) (float64, error)

	// CategoryStatistics counts drivers per license category.
	CategoryStatistics(ctx context.Context) (map[string]int, error)

	// ClassStatistics counts drivers per qualification class.
	ClassStatistics(ctx context.Context) (map[int]int, error)

	Maintenance
}
