package service

import (
	"context"
	"errors"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

func TestDriverService_RemoveDriverWithTrips(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addDriver(t, "DRV001")
	f.addRoute(t, "101A")
	if err := f.trips.AddTrip(ctx, mustTrip(t, day1, "101A", "DRV001", 100, 3000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := f.drivers.RemoveDriver(ctx, "DRV001")
	var integrityErr *ReferentialIntegrityError
	if !errors.As(err, &integrityErr) {
		t.Fatalf("expected ReferentialIntegrityError, got %v", err)
	}
	if integrityErr.Entity != "driver" || integrityErr.TripCount != 1 || integrityErr.Missing {
		t.Errorf("unexpected violation details: %+v", integrityErr)
	}

	// The driver must still be present.
	if _, err := f.drivers.GetDriver(ctx, "DRV001"); err != nil {
		t.Errorf("expected driver to survive the refused deletion: %v", err)
	}
}

func TestDriverService_RemoveDriverAfterTripsDeleted(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addDriver(t, "DRV001")
	f.addRoute(t, "101A")

	trip := mustTrip(t, day1, "101A", "DRV001", 100, 3000)
	if err := f.trips.AddTrip(ctx, trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := f.trips.RemoveTrip(ctx, trip.Key()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// With the referencing trip gone the deletion goes through.
	if err := f.drivers.RemoveDriver(ctx, "DRV001"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	_, err := f.drivers.GetDriver(ctx, "DRV001")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound after removal, got %v", err)
	}
}

func TestDriverService_RemoveMissingDriver(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	err := f.drivers.RemoveDriver(context.Background(), "GHOST1")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDriverService_AddDuplicateDriver(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addDriver(t, "DRV001")

	driver, err := f.drivers.GetDriver(ctx, "DRV001")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err = f.drivers.AddDriver(ctx, driver)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestDriverService_GetSeniorDrivers(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	f.addDriver(t, "DRV001")
	f.addDriver(t, "DRV002")

	seniors, err := f.drivers.GetSeniorDrivers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Both fixture drivers carry 15 years, above the 10-year threshold.
	if len(seniors) != 2 {
		t.Errorf("expected 2 senior drivers, got %d", len(seniors))
	}
}

func TestDriverService_GetAvailableDriversForDate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addDriver(t, "DRV001")
	f.addDriver(t, "DRV002")
	f.addRoute(t, "101A")
	if err := f.trips.AddTrip(ctx, mustTrip(t, day1, "101A", "DRV001", 100, 3000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	available, err := f.drivers.GetAvailableDriversForDate(ctx, day1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 1 || available[0].PersonnelNumber() != "DRV002" {
		t.Fatalf("expected only DRV002 to be free on day 1, got %d drivers", len(available))
	}

	available, err = f.drivers.GetAvailableDriversForDate(ctx, day2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(available) != 2 {
		t.Errorf("expected both drivers free on day 2, got %d", len(available))
	}
}

func TestDriverService_GetDriversByExperienceRange(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	junior, err := domain.NewDriver(testClock, "DRV100", "Petrov Petr Petrovich", 2000, 3, "D", 3)
	if err != nil {
		t.Fatalf("unexpected error building driver: %v", err)
	}
	if err := f.drivers.AddDriver(ctx, junior); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	f.addDriver(t, "DRV001")

	drivers, err := f.drivers.GetDriversByExperienceRange(ctx, 0, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 1 || drivers[0].PersonnelNumber() != "DRV100" {
		t.Fatalf("expected only the junior driver in [0, 5], got %d drivers", len(drivers))
	}

	var validationErr *domain.ValidationError
	_, err = f.drivers.GetDriversByExperienceRange(ctx, 10, 5)
	if !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError for inverted range, got %v", err)
	}
}

func TestDriverService_StatisticsByCategoryAndClass(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addDriver(t, "DRV001")
	other, err := domain.NewDriver(testClock, "DRV200", "Sidorov Pavel Olegovich", 1975, 25, "E", 2)
	if err != nil {
		t.Fatalf("unexpected error building driver: %v", err)
	}
	if err := f.drivers.AddDriver(ctx, other); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byCategory, err := f.drivers.GetDriverStatisticsByCategory(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byCategory["D"] != 1 || byCategory["E"] != 1 {
		t.Errorf("unexpected category statistics: %v", byCategory)
	}

	byClass, err := f.drivers.GetDriverStatisticsByClass(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if byClass[1] != 1 || byClass[2] != 1 {
		t.Errorf("unexpected class statistics: %v", byClass)
	}
}

func TestDriverService_Clear(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	f.addDriver(t, "DRV001")

	if err := f.drivers.Clear(ctx); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	drivers, err := f.drivers.GetAllDrivers(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(drivers) != 0 {
		t.Errorf("expected no drivers after clear, got %d", len(drivers))
	}
}
