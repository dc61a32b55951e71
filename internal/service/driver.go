package service

import (
	"context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// DriverService orchestrates validation and persistence for drivers and
// guards referential integrity against the trip collection.
type DriverService struct {
	drivers   repository.DriverRepository
	trips     repository.TripRepository
	validator driverValidator
}

// NewDriverService creates a new DriverService. The trip repository is
// consulted read-only before deletions.
func NewDriverService(drivers repository.DriverRepository, trips repository.TripRepository) *DriverService {
	return &DriverService{
		drivers:   drivers,
		trips:     trips,
		validator: driverValidator{drivers: drivers},
	}
}

// AddDriver validates and persists a new driver.
func (s *DriverService) AddDriver(ctx context.Context, driver *domain.Driver) error {
	if err := s.validator.validateForAdd(ctx, driver); err != nil {
		return wrapStorage("adding driver", err)
	}
	if err := s.drivers.Add(ctx, driver); err != nil {
		return wrapStorage("adding driver", err)
	}
	logrus.WithField("personnel_number", driver.PersonnelNumber()).Info("driver added")
	return nil
}

// UpdateDriver validates and persists changes to an existing driver.
func (s *DriverService) UpdateDriver(ctx context.Context, driver *domain.Driver) error {
	if err := s.validator.validateForUpdate(ctx, driver); err != nil {
		return wrapStorage("updating driver", err)
	}
	return wrapStorage("updating driver", s.drivers.Update(ctx, driver))
}

// RemoveDriver deletes a driver by personnel number. Deletion is refused
// while any trip references the driver; the check re-reads the trip
// collection on every call.
func (s *DriverService) RemoveDriver(ctx context.Context, personnelNumber string) error {
	if personnelNumber == "" {
		return domain.NewValidationError("personnel_number", "must not be empty")
	}

	referencing, err := s.trips.GetByDriver(ctx, personnelNumber)
	if err != nil {
		return wrapStorage("removing driver", err)
	}
	if len(referencing) > 0 {
		logrus.WithFields(logrus.Fields{
			"personnel_number": personnelNumber,
			"trip_count":       len(referencing),
		}).Warn("driver deletion refused: referenced by trips")
		return &ReferentialIntegrityError{
			Entity:    "driver",
			Key:       personnelNumber,
			TripCount: len(referencing),
		}
	}

	driver, err := s.drivers.GetByNumber(ctx, personnelNumber)
	if err != nil {
		return wrapStorage("removing driver", err)
	}
	if err := s.drivers.Remove(ctx, driver); err != nil {
		return wrapStorage("removing driver", err)
	}
	logrus.WithField("personnel_number", personnelNumber).Info("driver removed")
	return nil
}

// GetDriver retrieves a driver by personnel number.
func (s *DriverService) GetDriver(ctx context.Context, personnelNumber string) (*domain.Driver, error) {
	if personnelNumber == "" {
		return nil, domain.NewValidationError("personnel_number", "must not be empty")
	}
	driver, err := s.drivers.GetByNumber(ctx, personnelNumber)
	return driver, wrapStorage("getting driver", err)
}

// GetAllDrivers retrieves every driver.
func (s *DriverService) GetAllDrivers(ctx context.Context) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetAll(ctx)
	return drivers, wrapStorage("getting all drivers", err)
}

// GetDriversByCategory retrieves drivers holding a license category.
func (s *DriverService) GetDriversByCategory(ctx context.Context, category string) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByCategory(ctx, category)
	return drivers, wrapStorage("getting drivers by category", err)
}

// GetDriversByMinExperience retrieves drivers with at least the given
// experience.
func (s *DriverService) GetDriversByMinExperience(ctx context.Context, minExperience int) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByMinExperience(ctx, minExperience)
	return drivers, wrapStorage("getting drivers by experience", err)
}

// GetDriversByExperienceRange retrieves drivers with experience in
// [minExperience, maxExperience].
func (s *DriverService) GetDriversByExperienceRange(ctx context.Context, minExperience, maxExperience int) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByExperienceRange(ctx, minExperience, maxExperience)
	return drivers, wrapStorage("getting drivers by experience range", err)
}

// GetDriversByClass retrieves drivers of a qualification class.
func (s *DriverService) GetDriversByClass(ctx context.Context, driverClass int) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByClass(ctx, driverClass)
	return drivers, wrapStorage("getting drivers by class", err)
}

// GetDriversByBirthYearRange retrieves drivers born within a year range.
func (s *DriverService) GetDriversByBirthYearRange(ctx context.Context, startYear, endYear int) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByBirthYearRange(ctx, startYear, endYear)
	return drivers, wrapStorage("getting drivers by birth year range", err)
}

// GetDriversByName retrieves drivers by full-name substring.
func (s *DriverService) GetDriversByName(ctx context.Context, name string) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByName(ctx, name)
	return drivers, wrapStorage("getting drivers by name", err)
}

// GetSeniorDrivers retrieves drivers with senior-grade experience.
func (s *DriverService) GetSeniorDrivers(ctx context.Context) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetByMinExperience(ctx, seniorDriverMinExperience)
	return drivers, wrapStorage("getting senior drivers", err)
}

// GetAvailableDriversForDate retrieves drivers without a trip on the
// given calendar day.
func (s *DriverService) GetAvailableDriversForDate(ctx context.Context, date time.Time) ([]*domain.Driver, error) {
	drivers, err := s.drivers.GetAll(ctx)
	if err != nil {
		return nil, wrapStorage("getting available drivers", err)
	}

	trips, err := s.trips.GetByDateRange(ctx, date, date)
	if err != nil {
		return nil, wrapStorage("getting available drivers", err)
	}
	busy := make(map[string]struct{}, len(trips))
	for _, trip := range trips {
		busy[strings.ToLower(trip.DriverNumber())] = struct{}{}
	}

	available := make([]*domain.Driver, 0, len(drivers))
	for _, driver := range drivers {
		if _, ok := busy[strings.ToLower(driver.PersonnelNumber())]; !ok {
			available = append(available, driver)
		}
	}
	return available, nil
}

// GetDriverStatisticsByCategory counts drivers per license category.
func (s *DriverService) GetDriverStatisticsByCategory(ctx context.Context) (map[string]int, error) {
	stats, err := s.drivers.CategoryStatistics(ctx)
	return stats, wrapStorage("getting driver statistics by category", err)
}

// GetDriverStatisticsByClass counts drivers per qualification class.
func (s *DriverService) GetDriverStatisticsByClass(ctx context.Context) (map[int]int, error) {
	stats, err := s.drivers.ClassStatistics(ctx)
	return stats, wrapStorage("getting driver statistics by class", err)
}

// AverageExperience averages experience years over all drivers.
func (s *DriverService) AverageExperience(ctx context.Context) (float64, error) {
	avg, err := s.drivers.AverageExperience(ctx)
	return avg, wrapStorage("getting average experience", err)
}

// Backup copies the driver collection file into dir.
func (s *DriverService) Backup(ctx context.Context, dir string) (string, error) {
	path, err := s.drivers.Backup(ctx, dir)
	return path, wrapStorage("backing up drivers", err)
}

// Clear rewrites the driver collection as an empty list.
func (s *DriverService) Clear(ctx context.Context) error {
	if err := s.drivers.Clear(ctx); err != nil {
		return wrapStorage("clearing drivers", err)
	}
	logrus.Info("driver collection cleared")
	return nil
}
