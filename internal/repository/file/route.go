package file

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"fleet/internal/domain"
	"fleet/internal/repository"
	"fleet/internal/storage"
)

// routeRecord is the persisted shape of a route. Times are stored as whole
// minutes: departure counted from midnight, travel as total duration.
type routeRecord struct {
	Code               string   `json:"code"`
	StartPoint         string   `json:"start_point"`
	EndPoint           string   `json:"end_point"`
	IntermediatePoints []string `json:"intermediate_points,omitempty"`
	DepartureMinutes   int      `json:"departure_minutes"`
	DepartureDays      []int    `json:"departure_days,omitempty"`
	TravelMinutes      int      `json:"travel_minutes"`
}

// RouteRepository is the file-backed implementation of
// repository.RouteRepository.
type RouteRepository struct {
	maintenance[routeRecord]
}

// NewRouteRepository creates a route repository storing its collection
// under dataDir.
func NewRouteRepository(dataDir string, clock domain.Clock) *RouteRepository {
	store := storage.NewStore[routeRecord](filepath.Join(dataDir, routeFileName))
	return &RouteRepository{maintenance[routeRecord]{store: store, clock: clock}}
}

func (r *RouteRepository) toRecord(route *domain.Route) routeRecord {
	rec := routeRecord{
		Code:               route.Code(),
		StartPoint:         route.StartPoint(),
		EndPoint:           route.EndPoint(),
		IntermediatePoints: route.IntermediatePoints(),
		DepartureMinutes:   int(route.DepartureTime() / time.Minute),
		TravelMinutes:      int(route.TravelTime() / time.Minute),
	}
	for _, day := range route.DepartureDays() {
		rec.DepartureDays = append(rec.DepartureDays, int(day))
	}
	return rec
}

func (r *RouteRepository) toDomain(rec routeRecord) (*domain.Route, error) {
	route, err := domain.NewRoute(rec.Code, rec.StartPoint, rec.EndPoint,
		time.Duration(rec.DepartureMinutes)*time.Minute,
		time.Duration(rec.TravelMinutes)*time.Minute)
	if err != nil {
		return nil, decodeError(r.store.Path(), err)
	}
	for _, point := range rec.IntermediatePoints {
		if err := route.AddIntermediatePoint(point); err != nil {
			return nil, decodeError(r.store.Path(), err)
		}
	}
	for _, day := range rec.DepartureDays {
		if err := route.AddDepartureDay(time.Weekday(day)); err != nil {
			return nil, decodeError(r.store.Path(), err)
		}
	}
	return route, nil
}

// Add persists a new route.
func (r *RouteRepository) Add(_ context.Context, route *domain.Route) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for _, rec := range records {
		if keysEqual(rec.Code, route.Code()) {
			return fmt.Errorf("route %q: %w", route.Code(), repository.ErrDuplicateKey)
		}
	}
	records = append(records, r.toRecord(route))
	return r.store.Save(records)
}

// Update replaces the stored route with the same code.
func (r *RouteRepository) Update(_ context.Context, route *domain.Route) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	for i, rec := range records {
		if keysEqual(rec.Code, route.Code()) {
			records[i] = r.toRecord(route)
			return r.store.Save(records)
		}
	}
	return fmt.Errorf("route %q: %w", route.Code(), repository.ErrNotFound)
}

// Remove deletes the route matching the given route's code.
func (r *RouteRepository) Remove(_ context.Context, route *domain.Route) error {
	records, err := r.store.Load()
	if err != nil {
		return err
	}
	kept := records[:0]
	for _, rec := range records {
		if !keysEqual(rec.Code, route.Code()) {
			kept = append(kept, rec)
		}
	}
	if len(kept) == len(records) {
		return fmt.Errorf("route %q: %w", route.Code(), repository.ErrNotFound)
	}
	return r.store.Save(kept)
}

// GetByCode retrieves a route by code.
func (r *RouteRepository) GetByCode(_ context.Context, code string) (*domain.Route, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if keysEqual(rec.Code, code) {
			return r.toDomain(rec)
		}
	}
	return nil, fmt.Errorf("route %q: %w", code, repository.ErrNotFound)
}

// Exists reports whether a route with the code is stored.
func (r *RouteRepository) Exists(_ context.Context, code string) (bool, error) {
	records, err := r.store.Load()
	if err != nil {
		return false, err
	}
	for _, rec := range records {
		if keysEqual(rec.Code, code) {
			return true, nil
		}
	}
	return false, nil
}

// GetAll retrieves every route in storage order.
func (r *RouteRepository) GetAll(context.Context) ([]*domain.Route, error) {
	return r.filter(func(routeRecord) bool { return true })
}

// GetByDay retrieves routes departing on the given weekday.
func (r *RouteRepository) GetByDay(_ context.Context, day time.Weekday) ([]*domain.Route, error) {
	if day < time.Sunday || day > time.Saturday {
		return nil, domain.NewValidationError("departure_day", "invalid weekday %d", int(day))
	}
	return r.filter(func(rec routeRecord) bool {
		return recHasDay(rec, day)
	})
}

// GetByPoint retrieves routes whose start, end or any intermediate point
// contains point.
func (r *RouteRepository) GetByPoint(_ context.Context, point string) ([]*domain.Route, error) {
	if point == "" {
		return nil, domain.NewValidationError("point", "must not be empty")
	}
	return r.filter(func(rec routeRecord) bool {
		if containsFold(rec.StartPoint, point) || containsFold(rec.EndPoint, point) {
			return true
		}
		for _, p := range rec.IntermediatePoints {
			if containsFold(p, point) {
				return true
			}
		}
		return false
	})
}

// GetByDepartureRange retrieves routes departing within [start, end].
func (r *RouteRepository) GetByDepartureRange(_ context.Context, start, end time.Duration) ([]*domain.Route, error) {
	day := 24 * time.Hour
	if start < 0 || start >= day {
		return nil, domain.NewValidationError("start_time", "must be within a single day")
	}
	if end < 0 || end >= day {
		return nil, domain.NewValidationError("end_time", "must be within a single day")
	}
	if start > end {
		return nil, domain.NewValidationError("start_time", "must not be after end_time")
	}
	return r.filter(func(rec routeRecord) bool {
		departure := time.Duration(rec.DepartureMinutes) * time.Minute
		return departure >= start && departure <= end
	})
}

// GetByTravelTimeRange retrieves routes with travel time in [min, max].
func (r *RouteRepository) GetByTravelTimeRange(_ context.Context, min, max time.Duration) ([]*domain.Route, error) {
	if min <= 0 {
		return nil, domain.NewValidationError("min_travel_time", "must be positive")
	}
	if max < min {
		return nil, domain.NewValidationError("max_travel_time", "must not be less than min_travel_time")
	}
	return r.filter(func(rec routeRecord) bool {
		travel := time.Duration(rec.TravelMinutes) * time.Minute
		return travel >= min && travel <= max
	})
}

// StartPoints lists the distinct start points, sorted.
func (r *RouteRepository) StartPoints(_ context.Context) ([]string, error) {
	return r.distinct(func(rec routeRecord) string { return rec.StartPoint })
}

// EndPoints lists the distinct end points, sorted.
func (r *RouteRepository) EndPoints(_ context.Context) ([]string, error) {
	return r.distinct(func(rec routeRecord) string { return rec.EndPoint })
}

// DayStatistics counts routes departing on each weekday. Every weekday is
// present in the result, zero-valued when unused.
func (r *RouteRepository) DayStatistics(_ context.Context) (map[time.Weekday]int, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	stats := make(map[time.Weekday]int, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		for _, rec := range records {
			if recHasDay(rec, day) {
				stats[day]++
			}
		}
		if _, ok := stats[day]; !ok {
			stats[day] = 0
		}
	}
	return stats, nil
}

// AverageTravelTime averages travel time, 0 when empty.
func (r *RouteRepository) AverageTravelTime(_ context.Context) (time.Duration, error) {
	records, err := r.store.Load()
	if err != nil {
		return 0, err
	}
	if len(records) == 0 {
		return 0, nil
	}
	var total time.Duration
	for _, rec := range records {
		total += time.Duration(rec.TravelMinutes) * time.Minute
	}
	return total / time.Duration(len(records)), nil
}

func (r *RouteRepository) distinct(value func(routeRecord) string) ([]string, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0, len(records))
	for _, rec := range records {
		v := value(rec)
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values, nil
}

func (r *RouteRepository) filter(keep func(routeRecord) bool) ([]*domain.Route, error) {
	records, err := r.store.Load()
	if err != nil {
		return nil, err
	}
	routes := make([]*domain.Route, 0, len(records))
	for _, rec := range records {
		if !keep(rec) {
			continue
		}
		route, err := r.toDomain(rec)
		if err != nil {
			return nil, err
		}
		routes = append(routes, route)
	}
	return routes, nil
}

func recHasDay(rec routeRecord, day time.Weekday) bool {
	for _, d := range rec.DepartureDays {
		if time.Weekday(d) == day {
			return true
		}
	}
	return false
}
