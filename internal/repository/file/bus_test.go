package file

import (
	"context"
	"errors"
	"testing"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

func TestBusRepository_AddAndGet(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	bus := mustBus(t, "AB1234", "LiAZ-5292", 90, 2018)
	bus.SetPhotoPath("photos/ab1234.jpg")
	if err := repo.Add(ctx, bus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetByNumber(ctx, "AB1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.BrandModel() != "LiAZ-5292" {
		t.Errorf("expected brand LiAZ-5292, got %s", got.BrandModel())
	}
	if got.PhotoPath() != "photos/ab1234.jpg" {
		t.Errorf("expected photo path to round-trip, got %q", got.PhotoPath())
	}
}

func TestBusRepository_DuplicateIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	if err := repo.Add(ctx, mustBus(t, "AB1234", "LiAZ", 90, 2018)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := repo.Add(ctx, mustBus(t, "ab1234", "MAZ", 80, 2019))
	if !errors.Is(err, repository.ErrDuplicateKey) {
		t.Errorf("expected ErrDuplicateKey, got %v", err)
	}
}

func TestBusRepository_GetMissing(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)

	_, err := repo.GetByNumber(context.Background(), "XX9999")
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBusRepository_UpdateAndRemove(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	bus := mustBus(t, "AB1234", "LiAZ", 90, 2018)
	if err := repo.Add(ctx, bus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := bus.SetCapacity(100); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Update(ctx, bus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got, err := repo.GetByNumber(ctx, "AB1234")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Capacity() != 100 {
		t.Errorf("expected capacity 100 after update, got %d", got.Capacity())
	}

	if err := repo.Remove(ctx, bus); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Remove(ctx, bus); !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second removal, got %v", err)
	}
}

func TestBusRepository_UpdateMissing(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)

	err := repo.Update(context.Background(), mustBus(t, "AB1234", "LiAZ", 90, 2018))
	if !errors.Is(err, repository.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestBusRepository_GetAllPreservesInsertionOrder(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	numbers := []string{"CC3333", "AA1111", "BB2222"}
	for _, number := range numbers {
		if err := repo.Add(ctx, mustBus(t, number, "LiAZ", 50, 2015)); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	buses, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buses) != len(numbers) {
		t.Fatalf("expected %d buses, got %d", len(numbers), len(buses))
	}
	for i, number := range numbers {
		if buses[i].GovernmentNumber() != number {
			t.Errorf("position %d: expected %s, got %s", i, number, buses[i].GovernmentNumber())
		}
	}
}

func TestBusRepository_GetByBrand(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	if err := repo.Add(ctx, mustBus(t, "AA1111", "LiAZ-5292", 90, 2018)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, mustBus(t, "BB2222", "MAZ-203", 80, 2019)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buses, err := repo.GetByBrand(ctx, "liaz")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buses) != 1 || buses[0].GovernmentNumber() != "AA1111" {
		t.Errorf("expected only AA1111 for brand liaz, got %d buses", len(buses))
	}

	if _, err := repo.GetByBrand(ctx, ""); err == nil {
		t.Error("expected error for empty brand")
	}
}

func TestBusRepository_GetByCapacityRange(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	if err := repo.Add(ctx, mustBus(t, "AA1111", "LiAZ", 50, 2018)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, mustBus(t, "BB2222", "MAZ", 120, 2019)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buses, err := repo.GetByCapacityRange(ctx, 100, 150)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buses) != 1 || buses[0].GovernmentNumber() != "BB2222" {
		t.Errorf("expected only BB2222 in [100,150], got %d buses", len(buses))
	}

	var validationErr *domain.ValidationError
	if _, err := repo.GetByCapacityRange(ctx, 100, 50); !errors.As(err, &validationErr) {
		t.Errorf("expected ValidationError for inverted range, got %v", err)
	}
}

func TestBusRepository_Brands(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	for _, bus := range []*domain.Bus{
		mustBus(t, "AA1111", "MAZ-203", 80, 2019),
		mustBus(t, "BB2222", "LiAZ-5292", 90, 2018),
		mustBus(t, "CC3333", "MAZ-203", 80, 2020),
	} {
		if err := repo.Add(ctx, bus); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	brands, err := repo.Brands(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"LiAZ-5292", "MAZ-203"}
	if len(brands) != len(want) {
		t.Fatalf("expected %d brands, got %v", len(want), brands)
	}
	for i := range want {
		if brands[i] != want[i] {
			t.Errorf("position %d: expected %s, got %s", i, want[i], brands[i])
		}
	}
}

func TestBusRepository_CapacityStatistics(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	total, err := repo.TotalCapacity(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Errorf("expected total 0 for empty fleet, got %d", total)
	}

	if err := repo.Add(ctx, mustBus(t, "AA1111", "LiAZ", 50, 2018)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, mustBus(t, "BB2222", "MAZ", 100, 2019)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	total, err = repo.TotalCapacity(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 150 {
		t.Errorf("expected total capacity 150, got %d", total)
	}

	average, err := repo.AverageCapacity(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if average != 75 {
		t.Errorf("expected average capacity 75, got %f", average)
	}
}

func TestBusRepository_GetByOverhaulStatus(t *testing.T) {
	t.Parallel()

	repo := NewBusRepository(t.TempDir(), testClock)
	ctx := context.Background()

	overhauled := mustBus(t, "AA1111", "LiAZ", 50, 2010)
	if err := overhauled.SetYearOfOverhaul(2020); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, overhauled); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := repo.Add(ctx, mustBus(t, "BB2222", "MAZ", 80, 2019)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	buses, err := repo.GetByOverhaulStatus(ctx, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(buses) != 1 || buses[0].GovernmentNumber() != "AA1111" {
		t.Errorf("expected only the overhauled bus, got %d buses", len(buses))
	}

	year, ok := buses[0].YearOfOverhaul()
	if !ok || year != 2020 {
		t.Errorf("expected overhaul year 2020 to round-trip, got %d (set=%v)", year, ok)
	}
}
