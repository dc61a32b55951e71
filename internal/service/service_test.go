package service

import (
	"context"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository/file"
)

// fixedClock pins Now to a reference instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testClock = fixedClock{now: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}

// fixture wires the full service stack over file repositories in a
// temporary directory.
type fixture struct {
	buses   *BusService
	drivers *DriverService
	routes  *RouteService
	trips   *TripService
	admin   *AdminService

	busRepo    *file.BusRepository
	driverRepo *file.DriverRepository
	routeRepo  *file.RouteRepository
	tripRepo   *file.TripRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dataDir := t.TempDir()

	busRepo := file.NewBusRepository(dataDir, testClock)
	driverRepo := file.NewDriverRepository(dataDir, testClock)
	routeRepo := file.NewRouteRepository(dataDir, testClock)
	tripRepo := file.NewTripRepository(dataDir, testClock)

	return &fixture{
		buses:      NewBusService(busRepo, testClock),
		drivers:    NewDriverService(driverRepo, tripRepo),
		routes:     NewRouteService(routeRepo, tripRepo),
		trips:      NewTripService(tripRepo, driverRepo, routeRepo, testClock, DefaultMaxTripsPerDay),
		admin:      NewAdminService(t.TempDir(), busRepo, driverRepo, routeRepo, tripRepo),
		busRepo:    busRepo,
		driverRepo: driverRepo,
		routeRepo:  routeRepo,
		tripRepo:   tripRepo,
	}
}

func (f *fixture) addDriver(t *testing.T, number string) {
	t.Helper()
	driver, err := domain.NewDriver(testClock, number, "Ivanov Ivan Ivanovich", 1985, 15, "D", 1)
	if err != nil {
		t.Fatalf("unexpected error building driver: %v", err)
	}
	if err := f.drivers.AddDriver(context.Background(), driver); err != nil {
		t.Fatalf("unexpected error adding driver: %v", err)
	}
}

func (f *fixture) addRoute(t *testing.T, code string) {
	t.Helper()
	route, err := domain.NewRoute(code, "Central Station", "Airport", 6*time.Hour, 45*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error building route: %v", err)
	}
	if err := f.routes.AddRoute(context.Background(), route); err != nil {
		t.Fatalf("unexpected error adding route: %v", err)
	}
}

func mustTrip(t *testing.T, date time.Time, routeCode, driverNumber string, tickets int, revenue float64) *domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(testClock, date, routeCode, driverNumber, tickets, revenue)
	if err != nil {
		t.Fatalf("unexpected error building trip: %v", err)
	}
	return trip
}
