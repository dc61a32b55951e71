package service

import (
	"context"
	"fmt"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// Validators are the pre-repository guards: nil rejection plus the
// identity checks that make add/update fail fast with a typed error. They
// hold no state beyond their repository reference.

type busValidator struct {
	buses repository.BusRepository
}

func (v busValidator) validateForAdd(ctx context.Context, bus *domain.Bus) error {
	if bus == nil {
		return domain.NewValidationError("bus", "must not be nil")
	}
	exists, err := v.buses.Exists(ctx, bus.GovernmentNumber())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("bus %q: %w", bus.GovernmentNumber(), repository.ErrDuplicateKey)
	}
	return nil
}

func (v busValidator) validateForUpdate(ctx context.Context, bus *domain.Bus) error {
	if bus == nil {
		return domain.NewValidationError("bus", "must not be nil")
	}
	exists, err := v.buses.Exists(ctx, bus.GovernmentNumber())
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("bus %q: %w", bus.GovernmentNumber(), repository.ErrNotFound)
	}
	return nil
}

type driverValidator struct {
	drivers repository.DriverRepository
}

func (v driverValidator) validateForAdd(ctx context.Context, driver *domain.Driver) error {
	if driver == nil {
		return domain.NewValidationError("driver", "must not be nil")
	}
	exists, err := v.drivers.Exists(ctx, driver.PersonnelNumber())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("driver %q: %w", driver.PersonnelNumber(), repository.ErrDuplicateKey)
	}
	return nil
}

func (v driverValidator) validateForUpdate(ctx context.Context, driver *domain.Driver) error {
	if driver == nil {
		return domain.NewValidationError("driver", "must not be nil")
	}
	exists, err := v.drivers.Exists(ctx, driver.PersonnelNumber())
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("driver %q: %w", driver.PersonnelNumber(), repository.ErrNotFound)
	}
	return nil
}

type routeValidator struct {
	routes repository.RouteRepository
}

func (v routeValidator) validateForAdd(ctx context.Context, route *domain.Route) error {
	if route == nil {
		return domain.NewValidationError("route", "must not be nil")
	}
	exists, err := v.routes.Exists(ctx, route.Code())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("route %q: %w", route.Code(), repository.ErrDuplicateKey)
	}
	return nil
}

func (v routeValidator) validateForUpdate(ctx context.Context, route *domain.Route) error {
	if route == nil {
		return domain.NewValidationError("route", "must not be nil")
	}
	exists, err := v.routes.Exists(ctx, route.Code())
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("route %q: %w", route.Code(), repository.ErrNotFound)
	}
	return nil
}

type tripValidator struct {
	trips repository.TripRepository
}

func (v tripValidator) validateForAdd(ctx context.Context, trip *domain.Trip) error {
	if trip == nil {
		return domain.NewValidationError("trip", "must not be nil")
	}
	exists, err := v.trips.Exists(ctx, trip.Key())
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("trip %s: %w", trip.Key(), repository.ErrDuplicateKey)
	}
	return nil
}

func (v tripValidator) validateForUpdate(ctx context.Context, trip *domain.Trip) error {
	if trip == nil {
		return domain.NewValidationError("trip", "must not be nil")
	}
	exists, err := v.trips.Exists(ctx, trip.Key())
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("trip %s: %w", trip.Key(), repository.ErrNotFound)
	}
	return nil
}
