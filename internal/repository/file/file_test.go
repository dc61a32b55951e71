package file

import (
	"testing"
	"time"

	"fleet/internal/domain"
)

// fixedClock pins Now to a reference instant.
type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

var testClock = fixedClock{now: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC)}

func mustBus(t *testing.T, number, brand string, capacity, year int) *domain.Bus {
	t.Helper()
	bus, err := domain.NewBus(testClock, number, brand, capacity, year, 0)
	if err != nil {
		t.Fatalf("unexpected error building bus: %v", err)
	}
	return bus
}

func mustDriver(t *testing.T, number, name string, birthYear, experience int, category string, class int) *domain.Driver {
	t.Helper()
	driver, err := domain.NewDriver(testClock, number, name, birthYear, experience, category, class)
	if err != nil {
		t.Fatalf("unexpected error building driver: %v", err)
	}
	return driver
}

func mustRoute(t *testing.T, code, start, end string, departure, travel time.Duration) *domain.Route {
	t.Helper()
	route, err := domain.NewRoute(code, start, end, departure, travel)
	if err != nil {
		t.Fatalf("unexpected error building route: %v", err)
	}
	return route
}

func mustTrip(t *testing.T, date time.Time, routeCode, driverNumber string, tickets int, revenue float64) *domain.Trip {
	t.Helper()
	trip, err := domain.NewTrip(testClock, date, routeCode, driverNumber, tickets, revenue)
	if err != nil {
		t.Fatalf("unexpected error building trip: %v", err)
	}
	return trip
}
