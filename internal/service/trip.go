package service

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// TripStatistics aggregates trip figures over a period. All fields are
// zero-valued when no trips match.
type TripStatistics struct {
	TotalTrips            int
	TotalTicketsSold      int
	TotalRevenue          float64
	AverageRevenuePerTrip float64
	AverageTicketsPerTrip float64
}

// TripService orchestrates validation and persistence for trips. It is
// the only service that spans entities: adds and updates confirm the
// referenced driver and route exist, and a per-driver daily trip cap is
// enforced. Checks against the sibling repositories are fresh reads, never
// cached, and nothing here is transactional across files.
type TripService struct {
	trips          repository.TripRepository
	drivers        repository.DriverRepository
	routes         repository.RouteRepository
	clock          domain.Clock
	maxTripsPerDay int
	validator      tripValidator
}

// NewTripService creates a new TripService. maxTripsPerDay values below 1
// fall back to the default cap.
func NewTripService(
	trips repository.TripRepository,
	drivers repository.DriverRepository,
	routes repository.RouteRepository,
	clock domain.Clock,
	maxTripsPerDay int,
) *TripService {
	if maxTripsPerDay < 1 {
		maxTripsPerDay = DefaultMaxTripsPerDay
	}
	return &TripService{
		trips:          trips,
		drivers:        drivers,
		routes:         routes,
		clock:          clock,
		maxTripsPerDay: maxTripsPerDay,
		validator:      tripValidator{trips: trips},
	}
}

// AddTrip validates and persists a new trip. The referenced driver and
// route must exist, and the driver must stay under the daily trip cap.
func (s *TripService) AddTrip(ctx context.Context, trip *domain.Trip) error {
	if err := s.validator.validateForAdd(ctx, trip); err != nil {
		return wrapStorage("adding trip", err)
	}
	if err := s.checkReferences(ctx, trip); err != nil {
		return wrapStorage("adding trip", err)
	}
	if err := s.checkDailyCap(ctx, trip); err != nil {
		return wrapStorage("adding trip", err)
	}
	if err := s.trips.Add(ctx, trip); err != nil {
		return wrapStorage("adding trip", err)
	}
	logrus.WithField("trip", trip.Key().String()).Info("trip added")
	return nil
}

// UpdateTrip validates and persists changes to an existing trip.
func (s *TripService) UpdateTrip(ctx context.Context, trip *domain.Trip) error {
	if err := s.validator.validateForUpdate(ctx, trip); err != nil {
		return wrapStorage("updating trip", err)
	}
	if err := s.checkReferences(ctx, trip); err != nil {
		return wrapStorage("updating trip", err)
	}
	return wrapStorage("updating trip", s.trips.Update(ctx, trip))
}

// RemoveTrip deletes the trip with the given key.
func (s *TripService) RemoveTrip(ctx context.Context, key domain.TripKey) error {
	if err := s.trips.Remove(ctx, key); err != nil {
		return wrapStorage("removing trip", err)
	}
	logrus.WithField("trip", key.String()).Info("trip removed")
	return nil
}

// GetTrip retrieves a trip by its composite key.
func (s *TripService) GetTrip(ctx context.Context, key domain.TripKey) (*domain.Trip, error) {
	trip, err := s.trips.GetByKey(ctx, key)
	return trip, wrapStorage("getting trip", err)
}

// TripExists reports whether a trip with the key is stored.
func (s *TripService) TripExists(ctx context.Context, key domain.TripKey) (bool, error) {
	exists, err := s.trips.Exists(ctx, key)
	return exists, wrapStorage("checking trip existence", err)
}

// GetAllTrips retrieves every trip.
func (s *TripService) GetAllTrips(ctx context.Context) ([]*domain.Trip, error) {
	trips, err := s.trips.GetAll(ctx)
	return trips, wrapStorage("getting all trips", err)
}

// GetTripsByDateRange retrieves trips dated within [start, end].
func (s *TripService) GetTripsByDateRange(ctx context.Context, start, end time.Time) ([]*domain.Trip, error) {
	trips, err := s.trips.GetByDateRange(ctx, start, end)
	return trips, wrapStorage("getting trips by date range", err)
}

// GetTripsByRoute retrieves trips over a route.
func (s *TripService) GetTripsByRoute(ctx context.Context, routeCode string) ([]*domain.Trip, error) {
	trips, err := s.trips.GetByRoute(ctx, routeCode)
	return trips, wrapStorage("getting trips by route", err)
}

// GetTripsByDriver retrieves trips performed by a driver.
func (s *TripService) GetTripsByDriver(ctx context.Context, personnelNumber string) ([]*domain.Trip, error) {
	trips, err := s.trips.GetByDriver(ctx, personnelNumber)
	return trips, wrapStorage("getting trips by driver", err)
}

// GetTripStatistics aggregates trip figures over [start, end].
func (s *TripService) GetTripStatistics(ctx context.Context, start, end time.Time) (*TripStatistics, error) {
	trips, err := s.trips.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, wrapStorage("getting trip statistics", err)
	}

	stats := &TripStatistics{TotalTrips: len(trips)}
	if len(trips) == 0 {
		return stats, nil
	}
	for _, trip := range trips {
		stats.TotalTicketsSold += trip.TicketsSold()
		stats.TotalRevenue += trip.TotalRevenue()
	}
	stats.AverageRevenuePerTrip = stats.TotalRevenue / float64(len(trips))
	stats.AverageTicketsPerTrip = float64(stats.TotalTicketsSold) / float64(len(trips))
	return stats, nil
}

// GetTotalRevenueForPeriod sums revenue over [start, end].
func (s *TripService) GetTotalRevenueForPeriod(ctx context.Context, start, end time.Time) (float64, error) {
	total, err := s.trips.TotalRevenueForPeriod(ctx, start, end)
	return total, wrapStorage("getting total revenue", err)
}

// GetTotalTicketsSoldForPeriod sums tickets sold over [start, end].
func (s *TripService) GetTotalTicketsSoldForPeriod(ctx context.Context, start, end time.Time) (int, error) {
	total, err := s.trips.TotalTicketsForPeriod(ctx, start, end)
	return total, wrapStorage("getting total tickets sold", err)
}

// GetTotalTripsForPeriod counts trips over [start, end].
func (s *TripService) GetTotalTripsForPeriod(ctx context.Context, start, end time.Time) (int, error) {
	total, err := s.trips.CountForPeriod(ctx, start, end)
	return total, wrapStorage("getting trip count", err)
}

// GetAverageRevenuePerTrip averages revenue over [start, end].
func (s *TripService) GetAverageRevenuePerTrip(ctx context.Context, start, end time.Time) (float64, error) {
	avg, err := s.trips.AverageRevenuePerTrip(ctx, start, end)
	return avg, wrapStorage("getting average revenue", err)
}

// GetAverageTicketsSoldPerTrip averages tickets sold over [start, end].
func (s *TripService) GetAverageTicketsSoldPerTrip(ctx context.Context, start, end time.Time) (float64, error) {
	avg, err := s.trips.AverageTicketsPerTrip(ctx, start, end)
	return avg, wrapStorage("getting average tickets sold", err)
}

// GetRevenueByRoute groups revenue over [start, end] by route.
func (s *TripService) GetRevenueByRoute(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	grouped, err := s.trips.RevenueByRoute(ctx, start, end)
	return grouped, wrapStorage("getting revenue by route", err)
}

// GetRevenueByDriver groups revenue over [start, end] by driver.
func (s *TripService) GetRevenueByDriver(ctx context.Context, start, end time.Time) (map[string]float64, error) {
	grouped, err := s.trips.RevenueByDriver(ctx, start, end)
	return grouped, wrapStorage("getting revenue by driver", err)
}

// GetTopPerformingTrips retrieves the count highest-revenue trips within
// [start, end].
func (s *TripService) GetTopPerformingTrips(ctx context.Context, start, end time.Time, count int) ([]*domain.Trip, error) {
	trips, err := s.trips.TopRevenueTrips(ctx, start, end, count)
	return trips, wrapStorage("getting top performing trips", err)
}

// GetTopPerformingTripsDefault retrieves the default top-N over the
// default reporting window ending today.
func (s *TripService) GetTopPerformingTripsDefault(ctx context.Context) ([]*domain.Trip, error) {
	end := s.clock.Now()
	start := end.AddDate(0, 0, -defaultReportDays)
	return s.GetTopPerformingTrips(ctx, start, end, topPerformingTripsCount)
}

// GetProfitableTrips retrieves trips within [start, end] that meet the
// profitability thresholds on tickets sold and revenue per ticket.
func (s *TripService) GetProfitableTrips(ctx context.Context, start, end time.Time) ([]*domain.Trip, error) {
	trips, err := s.trips.GetByDateRange(ctx, start, end)
	if err != nil {
		return nil, wrapStorage("getting profitable trips", err)
	}
	profitable := make([]*domain.Trip, 0, len(trips))
	for _, trip := range trips {
		tickets := trip.TicketsSold()
		if tickets < profitableMinTickets {
			continue
		}
		if trip.TotalRevenue()/float64(tickets) < profitableMinRevenuePerTicket {
			continue
		}
		profitable = append(profitable, trip)
	}
	return profitable, nil
}

// Backup copies the trip collection file into dir.
func (s *TripService) Backup(ctx context.Context, dir string) (string, error) {
	path, err := s.trips.Backup(ctx, dir)
	return path, wrapStorage("backing up trips", err)
}

// Clear rewrites the trip collection as an empty list.
func (s *TripService) Clear(ctx context.Context) error {
	if err := s.trips.Clear(ctx); err != nil {
		return wrapStorage("clearing trips", err)
	}
	logrus.Info("trip collection cleared")
	return nil
}

// checkReferences confirms the driver and route a trip names both exist.
// Each check is a fresh read of the sibling repository.
func (s *TripService) checkReferences(ctx context.Context, trip *domain.Trip) error {
	driverExists, err := s.drivers.Exists(ctx, trip.DriverNumber())
	if err != nil {
		return err
	}
	if !driverExists {
		return &ReferentialIntegrityError{Entity: "driver", Key: trip.DriverNumber(), Missing: true}
	}

	routeExists, err := s.routes.Exists(ctx, trip.RouteCode())
	if err != nil {
		return err
	}
	if !routeExists {
		return &ReferentialIntegrityError{Entity: "route", Key: trip.RouteCode(), Missing: true}
	}
	return nil
}

// checkDailyCap enforces the per-driver daily trip limit.
func (s *TripService) checkDailyCap(ctx context.Context, trip *domain.Trip) error {
	driverTrips, err := s.trips.GetByDriver(ctx, trip.DriverNumber())
	if err != nil {
		return err
	}
	day := domain.DateOnly(trip.Date())
	sameDay := 0
	for _, t := range driverTrips {
		if domain.DateOnly(t.Date()).Equal(day) {
			sameDay++
		}
	}
	if sameDay >= s.maxTripsPerDay {
		return &BusinessRuleError{
			Rule: "max trips per day",
			Message: fmt.Sprintf("driver %s already has %d trips on %s (limit %d)",
				trip.DriverNumber(), sameDay, day.Format("2006-01-02"), s.maxTripsPerDay),
		}
	}
	return nil
}
