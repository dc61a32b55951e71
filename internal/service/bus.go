package service

import (
	"context"

	"github.com/sirupsen/logrus"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// BusService orchestrates validation and persistence for buses.
type BusService struct {
	buses     repository.BusRepository
	clock     domain.Clock
	validator busValidator
}

// NewBusService creates a new BusService.
func NewBusService(buses repository.BusRepository, clock domain.Clock) *BusService {
	return &BusService{
		buses:     buses,
		clock:     clock,
		validator: busValidator{buses: buses},
	}
}

// AddBus validates and persists a new bus.
func (s *BusService) AddBus(ctx context.Context, bus *domain.Bus) error {
	if err := s.validator.validateForAdd(ctx, bus); err != nil {
		return wrapStorage("adding bus", err)
	}
	if err := s.buses.Add(ctx, bus); err != nil {
		return wrapStorage("adding bus", err)
	}
	logrus.WithField("government_number", bus.GovernmentNumber()).Info("bus added")
	return nil
}

// UpdateBus validates and persists changes to an existing bus.
func (s *BusService) UpdateBus(ctx context.Context, bus *domain.Bus) error {
	if err := s.validator.validateForUpdate(ctx, bus); err != nil {
		return wrapStorage("updating bus", err)
	}
	return wrapStorage("updating bus", s.buses.Update(ctx, bus))
}

// RemoveBus deletes a bus by government number.
func (s *BusService) RemoveBus(ctx context.Context, governmentNumber string) error {
	if governmentNumber == "" {
		return domain.NewValidationError("government_number", "must not be empty")
	}
	bus, err := s.buses.GetByNumber(ctx, governmentNumber)
	if err != nil {
		return wrapStorage("removing bus", err)
	}
	if err := s.buses.Remove(ctx, bus); err != nil {
		return wrapStorage("removing bus", err)
	}
	logrus.WithField("government_number", governmentNumber).Info("bus removed")
	return nil
}

// GetBus retrieves a bus by government number.
func (s *BusService) GetBus(ctx context.Context, governmentNumber string) (*domain.Bus, error) {
	if governmentNumber == "" {
		return nil, domain.NewValidationError("government_number", "must not be empty")
	}
	bus, err := s.buses.GetByNumber(ctx, governmentNumber)
	return bus, wrapStorage("getting bus", err)
}

// GetAllBuses retrieves the whole fleet.
func (s *BusService) GetAllBuses(ctx context.Context) ([]*domain.Bus, error) {
	buses, err := s.buses.GetAll(ctx)
	return buses, wrapStorage("getting all buses", err)
}

// GetBusesByBrand retrieves buses by brand/model substring.
func (s *BusService) GetBusesByBrand(ctx context.Context, brand string) ([]*domain.Bus, error) {
	buses, err := s.buses.GetByBrand(ctx, brand)
	return buses, wrapStorage("getting buses by brand", err)
}

// GetBusesByCapacityRange retrieves buses with capacity in [min, max].
func (s *BusService) GetBusesByCapacityRange(ctx context.Context, minCapacity, maxCapacity int) ([]*domain.Bus, error) {
	buses, err := s.buses.GetByCapacityRange(ctx, minCapacity, maxCapacity)
	return buses, wrapStorage("getting buses by capacity range", err)
}

// GetBusesByYearRange retrieves buses manufactured in [startYear, endYear].
func (s *BusService) GetBusesByYearRange(ctx context.Context, startYear, endYear int) ([]*domain.Bus, error) {
	buses, err := s.buses.GetByYearRange(ctx, startYear, endYear)
	return buses, wrapStorage("getting buses by year range", err)
}

// GetBusesByOverhaulStatus retrieves buses by overhaul presence.
func (s *BusService) GetBusesByOverhaulStatus(ctx context.Context, hasOverhaul bool) ([]*domain.Bus, error) {
	buses, err := s.buses.GetByOverhaulStatus(ctx, hasOverhaul)
	return buses, wrapStorage("getting buses by overhaul status", err)
}

// GetBusesRequiringOverhaul retrieves buses due for an overhaul: at least
// yearsThreshold years have passed since the last overhaul, or since
// manufacture for buses never overhauled.
func (s *BusService) GetBusesRequiringOverhaul(ctx context.Context, yearsThreshold int) ([]*domain.Bus, error) {
	if yearsThreshold <= 0 {
		return nil, domain.NewValidationError("years_threshold", "must be positive")
	}

	buses, err := s.buses.GetAll(ctx)
	if err != nil {
		return nil, wrapStorage("getting buses requiring overhaul", err)
	}

	currentYear := s.clock.Now().Year()
	due := make([]*domain.Bus, 0, len(buses))
	for _, bus := range buses {
		reference := bus.YearOfManufacture()
		if year, ok := bus.YearOfOverhaul(); ok {
			reference = year
		}
		if currentYear-reference >= yearsThreshold {
			due = append(due, bus)
		}
	}
	return due, nil
}

// TotalCapacity sums the capacity of the whole fleet.
func (s *BusService) TotalCapacity(ctx context.Context) (int, error) {
	total, err := s.buses.TotalCapacity(ctx)
	return total, wrapStorage("getting total capacity", err)
}

// AverageCapacity averages capacity over the fleet.
func (s *BusService) AverageCapacity(ctx context.Context) (float64, error) {
	avg, err := s.buses.AverageCapacity(ctx)
	return avg, wrapStorage("getting average capacity", err)
}

// GetAllBrands lists the distinct brand/model values, sorted.
func (s *BusService) GetAllBrands(ctx context.Context) ([]string, error) {
	brands, err := s.buses.Brands(ctx)
	return brands, wrapStorage("getting brands", err)
}

// Backup copies the bus collection file into dir.
func (s *BusService) Backup(ctx context.Context, dir string) (string, error) {
	path, err := s.buses.Backup(ctx, dir)
	return path, wrapStorage("backing up buses", err)
}

// Clear rewrites the bus collection as an empty list.
func (s *BusService) Clear(ctx context.Context) error {
	if err := s.buses.Clear(ctx); err != nil {
		return wrapStorage("clearing buses", err)
	}
	logrus.Info("bus collection cleared")
	return nil
}
