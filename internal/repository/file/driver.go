package file

import (
	"context"
	"fmt"
	"path/filepath"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/storage"
)

// driverRecord is the persisted shape of a driver.
type driverRecord struct {
	PersonnelNumber string `json:"personnel_number"`
	FullName        string `json:"full_name"`
	BirthYear       int    `json:"birth_year"`
	ExperienceYears int    `json:"experience_years"`
	LicenseCategory string `json:"license_category"`
	DriverClass     int    `json:"driver_class"`
}

// DriverRepository is the file-backed implementation of
// repository.DriverRepository.
type DriverRepository struct {
	maintenance[driverRecord]
}

// NewDriverRepository creates a driver repository storing its collection
// under dataDir.
func NewDriverRepository(dataDir string, clock domain.Clock) *DriverRepository {
	store := storage.NewStore[driverRecord](filepath.Join(dataDir, driverFileName))
	return &DriverRepository{maintenance[driverRecord]{store: store, clock: clock}}
}

func (r *DriverRepository) toRecord(driver *domain.Driver) driverRecord {
	return driverRecord{
		PersonnelNumber: driver.PersonnelNumber(),
		FullName:        driver.FullName(),
		BirthYear:       driver.BirthYear(),
		ExperienceYears: driver.ExperienceYears(),
		LicenseCategory: driver.LicenseCategory(),
		DriverClass:     driver.DriverClass(),
	}
}

func (r *DriverRepository) toDomain(rec driverRecord) (*domain.Driver, error) {
	driver, err := domain.NewDriver(r.clock, rec.PersonnelNumber, rec.FullName,
		rec.BirthYear, rec.ExperienceYears, rec.LicenseCategory, rec.DriverClass)
	if err != nil {
		return nil, decodeError(r.store.Path(), err)
	}
	return driver, nil
}

// Add persists a new driver.
func (r *DriverRepository) Add(_ context.Context, driver *domain.Driver) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if keysEqual(rec.PersonnelNumber, driver.PersonnelNumber()) {
			return fmt.Errorf("driver %q: %w", driver.PersonnelNumber(), repository.ErrDuplicateKey)
		}
	}
	records = append(records, r.toRecord(driver))
	return r.store.Save(records)
}

// Update replaces the stored driver with the same personnel number.
func (r *DriverRepository) Update(_ context.Context, driver *domain.Driver) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if keysEqual(rec.PersonnelNumber, driver.PersonnelNumber()) {
			records[i] = r.toRecord(driver)
			return r.store.Save(records)
		}
	}
	return fmt.Errorf("driver %q: %w", driver.PersonnelNumber(), repository.ErrNotFound)
}

// Remove deletes the driver matching the given driver's personnel number.
func (r *DriverRepository) Remove(_ context.Context, driver *domain.Driver) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if !keysEqual(rec.PersonnelNumber, driver.PersonnelNumber()) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("driver %q: %w", driver.PersonnelNumber(), repository.ErrNotFound)
	}
	return r.store.Save(kept)
}

// GetByNumber retrieves a driver by personnel number.
func (r *DriverRepository) GetByNumber(_ context.Context, personnelNumber string) (*domain.Driver, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if keysEqual(rec.PersonnelNumber, personnelNumber) {
			return r.toDomain(rec)
		}
	}
	return nil, fmt.Errorf("driver %q: %w", personnelNumber, repository.ErrNotFound)
}

// Exists reports whether a driver with the personnel number is stored.
func (r *DriverRepository) Exists(_ context.Context, personnelNumber string) (bool, error) {
	records, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if keysEqual(rec.PersonnelNumber, personnelNumber) {
			return true, nil
		}
	}
	return false, nil
}

// GetAll retrieves every driver in storage order.
func (r *DriverRepository) GetAll(context.Context) ([]*domain.Driver, error) {
	return r.filter(func(driverRecord) bool { return true })
}

// GetByCategory retrieves drivers holding the given license category.
func (r *DriverRepository) GetByCategory(_ context.Context, category string) ([]*domain.Driver, error) {
	if category == "" {
		return nil, domain.NewValidationError("license_category", "must not be empty")
	}
	return r.filter(func(rec driverRecord) bool {
		return keysEqual(rec.LicenseCategory, category)
	})
}

// GetByExperienceRange retrieves drivers with experience in
// [minExperience, maxExperience].
func (r *DriverRepository) GetByExperienceRange(_ context.Context, minExperience, maxExperience int) ([]*domain.Driver, error) {
	if minExperience < 0 {
		return nil, domain.NewValidationError("min_experience", "must not be negative")
	}
	if maxExperience < minExperience {
		return nil, domain.NewValidationError("max_experience", "must not be less than min_experience")
	}
	return r.filter(func(rec driverRecord) bool {
		return rec.ExperienceYears >= minExperience && rec.ExperienceYears <= maxExperience
	})
}

// GetByMinExperience retrieves drivers with at least minExperience years.
func (r *DriverRepository) GetByMinExperience(_ context.Context, minExperience int) ([]*domain.Driver, error) {
	if minExperience < 0 {
		return nil, domain.NewValidationError("min_experience", "must not be negative")
	}
	return r.filter(func(rec driverRecord) bool {
		return rec.ExperienceYears >= minExperience
	})
}

// GetByClass retrieves drivers of the given qualification class.
func (r *DriverRepository) GetByClass(_ context.Context, driverClass int) ([]*domain.Driver, error) {
	valid := false
	for _, c := range domain.ValidDriverClasses {
		if driverClass == c {
			valid = true
			break
		}
	}
	if !valid {
		return nil, domain.NewValidationError("driver_class", "must be 1, 2 or 3")
	}
	return r.filter(func(rec driverRecord) bool {
		return rec.DriverClass == driverClass
	})
}

// GetByBirthYearRange retrieves drivers born in [startYear, endYear].
func (r *DriverRepository) GetByBirthYearRange(_ context.Context, startYear, endYear int) ([]*domain.Driver, error) {
	if startYear < 1900 {
		return nil, domain.NewValidationError("start_year", "must not precede 1900")
	}
	if endYear < startYear {
		return nil, domain.NewValidationError("end_year", "must not be less than start_year")
	}
	return r.filter(func(rec driverRecord) bool {
		return rec.BirthYear >= startYear && rec.BirthYear <= endYear
	})
}

// GetByName retrieves drivers whose full name contains name.
func (r *DriverRepository) GetByName(_ context.Context, name string) ([]*domain.Driver, error) {
	if name == "" {
		return nil, domain.NewValidationError("full_name", "must not be empty")
	}
	return r.filter(func(rec driverRecord) bool {
		return containsFold(rec.FullName, name)
	})
}

// AverageExperience averages experience years, 0 when empty.
func (r *DriverRepository) AverageExperience(_ context.Context) (float64, error) {
	records, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	total := 0
	for _, rec := range records {
		total += rec.ExperienceYears
	}
	return float64(total) / float64(len(records)), nil
}

// CategoryStatistics counts drivers per license category.
func (r *DriverRepository) CategoryStatistics(_ context.Context) (map[string]int, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	stats := make(map[string]int, len(records))
	for _, rec := range records {
		stats[rec.LicenseCategory]++
	}
	return stats, nil
}

// ClassStatistics counts drivers per qualification class.
func (r *DriverRepository) ClassStatistics(_ context.Context) (map[int]int, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	stats := make(map[int]int, len(records))
	for _, rec := range records {
		stats[rec.DriverClass]++
	}
	return stats, nil
}

func (r *DriverRepository) filter(keep func(driverRecord) bool) ([]*domain.Driver, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	drivers := make([]*domain.Driver, 0, len(records))
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		driver, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		drivers = append(drivers, driver)
	}
	return drivers, nil
}
