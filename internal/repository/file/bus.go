package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/storage"
)

// busRecord is the persisted shape of a bus.
type busRecord struct {
	GovernmentNumber   string `json:"government_number"`
	BrandModel         string `json:"brand_model"`
	Capacity           int    `json:"capacity"`
	YearOfManufacture  int    `json:"year_of_manufacture"`
	YearOfOverhaul     *int   `json:"year_of_overhaul,omitempty"`
	MileageAtYearStart int    `json:"mileage_at_year_start"`
	PhotoPath          string `json:"photo_path,omitempty"`
}

// BusRepository is the file-backed implementation of
// repository.BusRepository.
type BusRepository struct {
	maintenance[busRecord]
}

// NewBusRepository creates a bus repository storing its collection under
// dataDir.
func NewBusRepository(dataDir string, clock domain.Clock) *BusRepository {
	store := storage.NewStore[busRecord](filepath.Join(dataDir, busFileName))
	return &BusRepository{maintenance[busRecord]{store: store, clock: clock}}
}

func (r *BusRepository) toRecord(bus *domain.Bus) busRecord {
	rec := busRecord{
		GovernmentNumber:   bus.GovernmentNumber(),
		BrandModel:         bus.BrandModel(),
		Capacity:           bus.Capacity(),
		YearOfManufacture:  bus.YearOfManufacture(),
		MileageAtYearStart: bus.MileageAtYearStart(),
		PhotoPath:          bus.PhotoPath(),
	}
	if year, ok := bus.YearOfOverhaul(); ok {
		rec.YearOfOverhaul = &year
	}
	return rec
}

func (r *BusRepository) toDomain(rec busRecord) (*domain.Bus, error) {
	bus, err := domain.NewBus(r.clock, rec.GovernmentNumber, rec.BrandModel,
		rec.Capacity, rec.YearOfManufacture, rec.MileageAtYearStart)
	if err != nil {
		return nil, decodeError(r.store.Path(), err)
	}
	if rec.YearOfOverhaul != nil {
		if err := bus.SetYearOfOverhaul(*rec.YearOfOverhaul); err != nil {
			return nil, decodeError(r.store.Path(), err)
		}
	}
	bus.SetPhotoPath(rec.PhotoPath)
	return bus, nil
}

// Add persists a new bus.
func (r *BusRepository) Add(_ context.Context, bus *domain.Bus) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if keysEqual(rec.GovernmentNumber, bus.GovernmentNumber()) {
			return fmt.Errorf("bus %q: %w", bus.GovernmentNumber(), repository.ErrDuplicateKey)
		}
	}
	records = append(records, r.toRecord(bus))
	return r.store.Save(records)
}

// Update replaces the stored bus with the same government number.
func (r *BusRepository) Update(_ context.Context, bus *domain.Bus) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if keysEqual(rec.GovernmentNumber, bus.GovernmentNumber()) {
			records[i] = r.toRecord(bus)
			return r.store.Save(records)
		}
	}
	return fmt.Errorf("bus %q: %w", bus.GovernmentNumber(), repository.ErrNotFound)
}

// Remove deletes the bus matching the given bus's government number.
func (r *BusRepository) Remove(_ context.Context, bus *domain.Bus) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if !keysEqual(rec.GovernmentNumber, bus.GovernmentNumber()) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("bus %q: %w", bus.GovernmentNumber(), repository.ErrNotFound)
	}
	return r.store.Save(kept)
}

// GetByNumber retrieves a bus by government number.
func (r *BusRepository) GetByNumber(_ context.Context, governmentNumber string) (*domain.Bus, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if keysEqual(rec.GovernmentNumber, governmentNumber) {
			return r.toDomain(rec)
		}
	}
	return nil, fmt.Errorf("bus %q: %w", governmentNumber, repository.ErrNotFound)
}

// Exists reports whether a bus with the government number is stored.
func (r *BusRepository) Exists(_ context.Context, governmentNumber string) (bool, error) {
	records, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if keysEqual(rec.GovernmentNumber, governmentNumber) {
			return true, nil
		}
	}
	return false, nil
}

// GetAll retrieves every bus in storage order.
func (r *BusRepository) GetAll(ctx context.Context) ([]*domain.Bus, error) {
	return r.filter(func(busRecord) bool { return true })
}

// GetByBrand retrieves buses whose brand/model contains brand.
func (r *BusRepository) GetByBrand(_ context.Context, brand string) ([]*domain.Bus, error) {
	if brand == "" {
		return nil, domain.NewValidationError("brand", "must not be empty")
	}
	return r.filter(func(rec busRecord) bool {
		return containsFold(rec.BrandModel, brand)
	})
}

// GetByCapacityRange retrieves buses with capacity in [min, max].
func (r *BusRepository) GetByCapacityRange(_ context.Context, minCapacity, maxCapacity int) ([]*domain.Bus, error) {
	if minCapacity < 0 {
		return nil, domain.NewValidationError("min_capacity", "must not be negative")
	}
	if maxCapacity < minCapacity {
		return nil, domain.NewValidationError("max_capacity", "must not be less than min_capacity")
	}
	return r.filter(func(rec busRecord) bool {
		return rec.Capacity >= minCapacity && rec.Capacity <= maxCapacity
	})
}

// GetByYearRange retrieves buses manufactured in [startYear, endYear].
func (r *BusRepository) GetByYearRange(_ context.Context, startYear, endYear int) ([]*domain.Bus, error) {
	if startYear < domain.MinManufactureYear {
		return nil, domain.NewValidationError("start_year", "must not precede %d", domain.MinManufactureYear)
	}
	if endYear < startYear {
		return nil, domain.NewValidationError("end_year", "must not be less than start_year")
	}
	return r.filter(func(rec busRecord) bool {
		return rec.YearOfManufacture >= startYear && rec.YearOfManufacture <= endYear
	})
}

// GetByOverhaulStatus retrieves buses by overhaul presence.
func (r *BusRepository) GetByOverhaulStatus(_ context.Context, hasOverhaul bool) ([]*domain.Bus, error) {
	return r.filter(func(rec busRecord) bool {
		return (rec.YearOfOverhaul != nil) == hasOverhaul
	})
}

// TotalCapacity sums the capacity of the whole fleet.
func (r *BusRepository) TotalCapacity(_ context.Context) (int, error) {
	records, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range records {
		total += rec.Capacity
	}
	return total, nil
}

// AverageCapacity averages capacity over the fleet, 0 when empty.
func (r *BusRepository) AverageCapacity(_ context.Context) (float64, error) {
	records, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	total := 0
	for _, rec := range records {
		total += rec.Capacity
	}
	return float64(total) / float64(len(records)), nil
}

// Brands lists the distinct brand/model values, sorted.
func (r *BusRepository) Brands(_ context.Context) ([]string, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(records))
	brands := make([]string, 0, len(records))
	for _, rec := range records {
		if _, ok := seen[rec.BrandModel]; ok {
			continue
		}
		seen[rec.BrandModel] = struct{}{}
		brands = append(brands, rec.BrandModel)
	}
	sort.Strings(brands)
	return brands, nil
}

func (r *BusRepository) filter(keep func(busRecord) bool) ([]*domain.Bus, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	buses := make([]*domain.Bus, 0, len(records))
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		bus, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		buses = append(buses, bus)
	}
	return buses, nil
}
