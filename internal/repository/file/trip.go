package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/google/uuid"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/storage"
)

// tripRecord is the persisted shape of a trip.
type tripRecord struct {
	ID           string    `json:"id"`
	Date         time.Time `json:"date"`
	RouteCode    string    `json:"route_code"`
	DriverNumber string    `json:"driver_number"`
	TicketsSold  int       `json:"tickets_sold"`
	TotalRevenue float64   `json:"total_revenue"`
}

func (rec tripRecord) key() domain.TripKey {
	return domain.NewTripKey(rec.Date, rec.RouteCode, rec.DriverNumber)
}

// TripRepository is the file-backed implementation of
// repository.TripRepository.
type TripRepository struct {
	maintenance[tripRecord]
}

// NewTripRepository creates a trip repository storing its collection under
// dataDir.
func NewTripRepository(dataDir string, clock domain.Clock) *TripRepository {
	store := storage.NewStore[tripRecord](filepath.Join(dataDir, tripFileName))
	return &TripRepository{maintenance[tripRecord]{store: store, clock: clock}}
}

func (r *TripRepository) toRecord(trip *domain.Trip) tripRecord {
	return tripRecord{
		ID:           trip.ID(),
		Date:         trip.Date(),
		RouteCode:    trip.RouteCode(),
		DriverNumber: trip.DriverNumber(),
		TicketsSold:  trip.TicketsSold(),
		TotalRevenue: trip.TotalRevenue(),
	}
}

func (r *TripRepository) toDomain(rec tripRecord) (*domain.Trip, error) {
	trip, err := domain.NewTrip(r.clock, rec.Date, rec.RouteCode, rec.DriverNumber,
		rec.TicketsSold, rec.TotalRevenue)
	if err != nil {
		return nil, decodeError(r.store.Path(), err)
	}
	trip.SetID(rec.ID)
	return trip, nil
}

// Add persists a new trip and stamps a record identifier when the trip has
// none yet.
func (r *TripRepository) Add(_ context.Context, trip *domain.Trip) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	key := trip.Key()
	for _, rec := range records {
		if rec.key().Equal(key) {
			return fmt.Errorf("trip %s: %w", key, repository.ErrDuplicateKey)
		}
	}
	if trip.ID() == "" {
		trip.SetID(uuid.New().String())
	}
	records = append(records, r.toRecord(trip))
	return r.store.Save(records)
}

// Update replaces the stored trip with the same composite key.
func (r *TripRepository) Update(_ context.Context, trip *domain.Trip) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	key := trip.Key()
	for i, rec := range records {
		if rec.key().Equal(key) {
			if trip.ID() == "" {
				trip.SetID(rec.ID)
			}
			records[i] = r.toRecord(trip)
			return r.store.Save(records)
		}
	}
	return fmt.Errorf("trip %s: %w", key, repository.ErrNotFound)
}

// Remove deletes the trip with the given key.
func (r *TripRepository) Remove(_ context.Context, key domain.TripKey) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if !rec.key().Equal(key) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("trip %s: %w", key, repository.ErrNotFound)
	}
	return r.store.Save(kept)
}

// GetByKey retrieves a trip by its composite key.
func (r *TripRepository) GetByKey(_ context.Context, key domain.TripKey) (*domain.Trip, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.key().Equal(key) {
			return r.toDomain(rec)
		}
	}
	return nil, fmt.Errorf("trip %s: %w", key, repository.ErrNotFound)
}

// Exists reports whether a trip with the key is stored.
func (r *TripRepository) Exists(_ context.Context, key domain.TripKey) (bool, error) {
	records, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if rec.key().Equal(key) {
			return true, nil
		}
	}
	return false, nil
}

// GetAll retrieves every trip in storage order.
func (r *TripRepository) GetAll(context.Context) ([]*domain.Trip, error) {
	return r.filter(func(tripRecord) bool { return true })
}

// GetByDateRange retrieves trips dated within [start, end] inclusive.
func (r *TripRepository) GetByDateRange(_ context.Context, start, end time.Time) ([]*domain.Trip, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	return r.filter(func(rec tripRecord) bool {
		return dayWithin(rec.Date, start, end)
	})
}

// GetByRoute retrieves trips over the given route code.
func (r *TripRepository) GetByRoute(_ context.Context, routeCode string) ([]*domain.Trip, error) {
	if routeCode == "" {
		return nil, domain.NewValidationError("route_code", "must not be empty")
	}
	return r.filter(func(rec tripRecord) bool {
		return keysEqual(rec.RouteCode, routeCode)
	})
}

// GetByDriver retrieves trips performed by the given driver.
func (r *TripRepository) GetByDriver(_ context.Context, personnelNumber string) ([]*domain.Trip, error) {
	if personnelNumber == "" {
		return nil, domain.NewValidationError("driver_number", "must not be empty")
	}
	return r.filter(func(rec tripRecord) bool {
		return keysEqual(rec.DriverNumber, personnelNumber)
	})
}

// TotalRevenueForPeriod sums revenue over [start, end].
func (r *TripRepository) TotalRevenueForPeriod(_ context.Context, start, end time.Time) (float64, error) {
	records, err := r.periodRecords(start, end)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, rec := range records {
		total += rec.TotalRevenue
	}
	return total, nil
}

// TotalTicketsForPeriod sums tickets sold over [start, end].
func (r *TripRepository) TotalTicketsForPeriod(_ context.Context, start, end time.Time) (int, error) {
	records, err := r.periodRecords(start, end)
	if err != nil {
		return 0, err
	}
	total := 0
	for _, rec := range records {
		total += rec.TicketsSold
	}
	return total, nil
}

// CountForPeriod counts trips dated within [start, end].
func (r *TripRepository) CountForPeriod(_ context.Context, start, end time.Time) (int, error) {
	records, err := r.periodRecords(start, end)
	if err != nil {
		return 0, err
	}
	return len(records), nil
}

// AverageRevenuePerTrip averages revenue over [start, end], 0 when no
// trips match.
func (r *TripRepository) AverageRevenuePerTrip(_ context.Context, start, end time.Time) (float64, error) {
	records, err := r.periodRecords(start, end)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	var total float64
	for _, rec := range records {
		total += rec.TotalRevenue
	}
	return total / float64(len(records)), nil
}

// AverageTicketsPerTrip averages tickets sold over [start, end].
func (r *TripRepository) AverageTicketsPerTrip(_ context.Context, start, end time.Time) (float64, error) {
	records, err := r.periodRecords(start, end)
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	total := 0
	for _, rec := range records {
		total += rec.TicketsSold
	}
	return float64(total) / float64(len(records)), nil
}

// RevenueByRoute groups revenue over [start, end] by route code.
func (r *TripRepository) RevenueByRoute(_ context.Context, start, end time.Time) (map[string]float64, error) {
	return r.groupRevenue(start, end, func(rec tripRecord) string { return rec.RouteCode })
}

// RevenueByDriver groups revenue over [start, end] by driver number.
func (r *TripRepository) RevenueByDriver(_ context.Context, start, end time.Time) (map[string]float64, error) {
	return r.groupRevenue(start, end, func(rec tripRecord) string { return rec.DriverNumber })
}

// TopRevenueTrips retrieves the count highest-revenue trips within
// [start, end], revenue descending. Storage order breaks ties.
func (r *TripRepository) TopRevenueTrips(_ context.Context, start, end time.Time, count int) ([]*domain.Trip, error) {
	if count <= 0 {
		return nil, domain.NewValidationError("count", "must be positive")
	}
	records, err := r.periodRecords(start, end)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].TotalRevenue > records[j].TotalRevenue
	})
	if count < len(records) {
		records = records[:count]
	}
	trips := make([]*domain.Trip, 0, len(records))
	for _, rec := range records {
		trip, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func (r *TripRepository) groupRevenue(start, end time.Time, groupKey func(tripRecord) string) (map[string]float64, error) {
	records, err := r.periodRecords(start, end)
	if err != nil {
		return nil, err
	}
	grouped := make(map[string]float64)
	for _, rec := range records {
		grouped[groupKey(rec)] += rec.TotalRevenue
	}
	return grouped, nil
}

func (r *TripRepository) periodRecords(start, end time.Time) ([]tripRecord, error) {
	if err := validateDateRange(start, end); err != nil {
		return nil, err
	}
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	matched := make([]tripRecord, 0, len(records))
	for _, rec := range records {
		if dayWithin(rec.Date, start, end) {
			matched = append(matched, rec)
		}
	}
	return matched, nil
}

func (r *TripRepository) filter(keep func(tripRecord) bool) ([]*domain.Trip, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	trips := make([]*domain.Trip, 0, len(records))
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		trip, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, nil
}

func validateDateRange(start, end time.Time) error {
	if start.After(end) {
		return domain.NewValidationError("start_date", "must not be after end_date")
	}
	return nil
}

// dayWithin compares by calendar day, inclusive on both bounds.
func dayWithin(date, start, end time.Time) bool {
	day := domain.DateOnly(date)
	return !day.Before(domain.DateOnly(start)) && !day.After(domain.DateOnly(end))
}
