package file

import (
	"context"
	"errors"
	"testing"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

var (
	day1 = time.Date(2025, time.June, 1, 0, 0, 0, 0, time.UTC)
	day2 = time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	day3 = time.Date(2025, time.June, 3, 0, 0, 0, 0, time.UTC)
)

func TestTripRepository_AddAssignsID(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	trip := mustTrip(t, day1, "101A", "DRV001", 120, 3600)
	if err := repo.Add(ctx, trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if trip.ID() == "" {
		t.Error("expected a record id to be assigned on insert")
	}

	got, err := repo.GetByKey(ctx, trip.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != trip.ID() {
		t.Errorf("expected id %s to round-trip, got %s", trip.ID(), got.ID())
	}
}

func TestTripRepository_DuplicateKeyIgnoresTimeOfDay(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	morning := mustTrip(t, day1.Add(6*time.Hour), "101A", "DRV001", 100, 3000)
	evening := mustTrip(t, day1.Add(21*time.Hour), "101A", "DRV001", 50, 1500)

	if err := repo.Add(ctx, morning); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	err := repo.Add(ctx, evening)
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey for same day/route/driver, got %v", err)
	}
}

func TestTripRepository_SameDayDifferentRouteOrDriver(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	if err := repo.Add(ctx, mustTrip(t, day1, "101A", "DRV001", 100, 3000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, mustTrip(t, day1, "202B", "DRV001", 50, 1500)); err != nil {
		t.Errorf("unexpected error for a different route: %v", err)
	}
	if err := repo.Add(ctx, mustTrip(t, day1, "101A", "DRV002", 50, 1500)); err != nil {
		t.Errorf("unexpected error for a different driver: %v", err)
	}
}

func TestTripRepository_UpdatePreservesID(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	trip := mustTrip(t, day1, "101A", "DRV001", 100, 3000)
	if err := repo.Add(ctx, trip); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	storedID := trip.ID()

	// A freshly built trip with the same key carries no id; the update must
	// keep the stored one.
	replacement := mustTrip(t, day1, "101A", "DRV001", 110, 3300)
	if err := repo.Update(ctx, replacement); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByKey(ctx, replacement.Key())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ID() != storedID {
		t.Errorf("expected id %s to be preserved, got %s", storedID, got.ID())
	}
	if got.TicketsSold() != 110 {
		t.Errorf("expected updated tickets 110, got %d", got.TicketsSold())
	}
}

func TestTripRepository_RemoveMissing(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)

	key := domain.NewTripKey(day1, "101A", "DRV001")
	err := repo.Remove(context.Background(), key)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTripRepository_GetByDateRangeInclusive(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	for _, trip := range []*domain.Trip{
		mustTrip(t, day1, "101A", "DRV001", 100, 3000),
		mustTrip(t, day2, "101A", "DRV002", 80, 2400),
		mustTrip(t, day3, "101A", "DRV003", 60, 1800),
	} {
		if err := repo.Add(ctx, trip); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	trips, err := repo.GetByDateRange(ctx, day1, day2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(trips) != 2 {
		t.Errorf("expected both boundary days included, got %d trips", len(trips))
	}

	var validationErr *domain.ValidationError
	if _, err := repo.GetByDateRange(ctx, day2, day1); !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError for inverted range, got %v", err)
	}
}

func TestTripRepository_PeriodAggregates(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	for _, trip := range []*domain.Trip{
		mustTrip(t, day1, "101A", "DRV001", 100, 3000),
		mustTrip(t, day2, "202B", "DRV001", 50, 1000),
		mustTrip(t, day3, "101A", "DRV002", 30, 500),
	} {
		if err := repo.Add(ctx, trip); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	revenue, err := repo.TotalRevenueForPeriod(ctx, day1, day2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revenue != 4000 {
		t.Errorf("expected revenue 4000 over [day1,day2], got %f", revenue)
	}

	tickets, err := repo.TotalTicketsForPeriod(ctx, day1, day3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tickets != 180 {
		t.Errorf("expected 180 tickets, got %d", tickets)
	}

	count, err := repo.CountForPeriod(ctx, day1, day3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("expected 3 trips, got %d", count)
	}

	average, err := repo.AverageRevenuePerTrip(ctx, day1, day3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if average != 1500 {
		t.Errorf("expected average revenue 1500, got %f", average)
	}
}

func TestTripRepository_AggregatesOnEmptyPeriod(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	revenue, err := repo.TotalRevenueForPeriod(ctx, day1, day3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revenue != 0 {
		t.Errorf("expected 0 revenue for empty period, got %f", revenue)
	}

	average, err := repo.AverageRevenuePerTrip(ctx, day1, day3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if average != 0 {
		t.Errorf("expected 0 average for empty period, got %f", average)
	}
}

func TestTripRepository_RevenueByRoute(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	for _, trip := range []*domain.Trip{
		mustTrip(t, day1, "101A", "DRV001", 100, 3000),
		mustTrip(t, day2, "101A", "DRV002", 50, 1000),
		mustTrip(t, day3, "202B", "DRV001", 30, 500),
	} {
		if err := repo.Add(ctx, trip); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	revenue, err := repo.RevenueByRoute(ctx, day1, day3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if revenue["101A"] != 4000 {
		t.Errorf("expected 4000 for 101A, got %f", revenue["101A"])
	}
	if revenue["202B"] != 500 {
		t.Errorf("expected 500 for 202B, got %f", revenue["202B"])
	}
}

func TestTripRepository_TopRevenueTrips(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	for _, trip := range []*domain.Trip{
		mustTrip(t, day1, "101A", "DRV001", 50, 1000),
		mustTrip(t, day2, "101A", "DRV002", 100, 5000),
		mustTrip(t, day3, "101A", "DRV003", 80, 3000),
	} {
		if err := repo.Add(ctx, trip); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	top, err := repo.TopRevenueTrips(ctx, day1, day3, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(top) != 2 {
		t.Fatalf("expected 2 trips, got %d", len(top))
	}
	if top[0].TotalRevenue() != 5000 || top[1].TotalRevenue() != 3000 {
		t.Errorf("expected revenue descending, got %f then %f", top[0].TotalRevenue(), top[1].TotalRevenue())
	}

	var validationErr *domain.ValidationError
	if _, err := repo.TopRevenueTrips(ctx, day1, day3, 0); !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError for non-positive count, got %v", err)
	}
}

func TestTripRepository_GetByRouteAndDriver(t *testing.T) {
	t.Parallel()

	repo := NewTripRepository(t.TempDir(), testClock)
	ctx := context.Background()

	if err := repo.Add(ctx, mustTrip(t, day1, "101A", "DRV001", 100, 3000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, mustTrip(t, day2, "202B", "DRV002", 50, 1000)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	byRoute, err := repo.GetByRoute(ctx, "101a")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byRoute) != 1 || byRoute[0].DriverNumber() != "DRV001" {
		t.Errorf("expected the 101A trip for a case-insensitive route match, got %d trips", len(byRoute))
	}

	byDriver, err := repo.GetByDriver(ctx, "drv002")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(byDriver) != 1 || byDriver[0].RouteCode() != "202B" {
		t.Errorf("expected the DRV002 trip for a case-insensitive driver match, got %d trips", len(byDriver))
	}
}
