package service

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"fleet/internal/domain"
	"fleet/internal/repository"
)

// RouteService orchestrates validation and persistence for routes and
// guards referential integrity against the trip collection.
type RouteService struct {
	routes    repository.RouteRepository
	trips     repository.TripRepository
	validator routeValidator
}

// NewRouteService creates a new RouteService. The trip repository is
// consulted read-only before deletions.
func NewRouteService(routes repository.RouteRepository, trips repository.TripRepository) *RouteService {
	return &RouteService{
		routes:    routes,
		trips:     trips,
		validator: routeValidator{routes: routes},
	}
}

// AddRoute validates and persists a new route.
func (s *RouteService) AddRoute(ctx context.Context, route *domain.Route) error {
	if err := s.validator.validateForAdd(ctx, route); err != nil {
		return wrapStorage("adding route", err)
	}
	if err := s.routes.Add(ctx, route); err != nil {
		return wrapStorage("adding route", err)
	}
	logrus.WithField("route_code", route.Code()).Info("route added")
	return nil
}

// UpdateRoute validates and persists changes to an existing route.
func (s *RouteService) UpdateRoute(ctx context.Context, route *domain.Route) error {
	if err := s.validator.validateForUpdate(ctx, route); err != nil {
		return wrapStorage("updating route", err)
	}
	return wrapStorage("updating route", s.routes.Update(ctx, route))
}

// RemoveRoute deletes a route by code. Deletion is refused while any trip
// references the route; the check re-reads the trip collection on every
// call.
func (s *RouteService) RemoveRoute(ctx context.Context, code string) error {
	if code == "" {
		return domain.NewValidationError("route_code", "must not be empty")
	}

	referencing, err := s.trips.GetByRoute(ctx, code)
	if err != nil {
		return wrapStorage("removing route", err)
	}
	if len(referencing) > 0 {
		logrus.WithFields(logrus.Fields{
			"route_code": code,
			"trip_count": len(referencing),
		}).Warn("route deletion refused: referenced by trips")
		return &ReferentialIntegrityError{
			Entity:    "route",
			Key:       code,
			TripCount: len(referencing),
		}
	}

	route, err := s.routes.GetByCode(ctx, code)
	if err != nil {
		return wrapStorage("removing route", err)
	}
	if err := s.routes.Remove(ctx, route); err != nil {
		return wrapStorage("removing route", err)
	}
	logrus.WithField("route_code", code).Info("route removed")
	return nil
}

// GetRoute retrieves a route by code.
func (s *RouteService) GetRoute(ctx context.Context, code string) (*domain.Route, error) {
	if code == "" {
		return nil, domain.NewValidationError("route_code", "must not be empty")
	}
	route, err := s.routes.GetByCode(ctx, code)
	return route, wrapStorage("getting route", err)
}

// GetAllRoutes retrieves every route.
func (s *RouteService) GetAllRoutes(ctx context.Context) ([]*domain.Route, error) {
	routes, err := s.routes.GetAll(ctx)
	return routes, wrapStorage("getting all routes", err)
}

// GetRoutesByDay retrieves routes departing on a weekday.
func (s *RouteService) GetRoutesByDay(ctx context.Context, day time.Weekday) ([]*domain.Route, error) {
	routes, err := s.routes.GetByDay(ctx, day)
	return routes, wrapStorage("getting routes by day", err)
}

// GetRoutesByPoint retrieves routes passing through a point.
func (s *RouteService) GetRoutesByPoint(ctx context.Context, point string) ([]*domain.Route, error) {
	routes, err := s.routes.GetByPoint(ctx, point)
	return routes, wrapStorage("getting routes by point", err)
}

// GetRoutesByDepartureRange retrieves routes departing within a
// time-of-day window.
func (s *RouteService) GetRoutesByDepartureRange(ctx context.Context, start, end time.Duration) ([]*domain.Route, error) {
	routes, err := s.routes.GetByDepartureRange(ctx, start, end)
	return routes, wrapStorage("getting routes by departure range", err)
}

// GetRoutesByTravelTimeRange retrieves routes with travel time in a range.
func (s *RouteService) GetRoutesByTravelTimeRange(ctx context.Context, min, max time.Duration) ([]*domain.Route, error) {
	routes, err := s.routes.GetByTravelTimeRange(ctx, min, max)
	return routes, wrapStorage("getting routes by travel time range", err)
}

// SearchRoutes retrieves routes whose code, start, end or any
// intermediate point contains searchTerm, case-insensitively. A blank
// term matches every route.
func (s *RouteService) SearchRoutes(ctx context.Context, searchTerm string) ([]*domain.Route, error) {
	routes, err := s.routes.GetAll(ctx)
	if err != nil {
		return nil, wrapStorage("searching routes", err)
	}

	term := strings.ToLower(strings.TrimSpace(searchTerm))
	if term == "" {
		return routes, nil
	}

	matched := make([]*domain.Route, 0, len(routes))
	for _, route := range routes {
		if routeMatches(route, term) {
			matched = append(matched, route)
		}
	}
	return matched, nil
}

func routeMatches(route *domain.Route, term string) bool {
	if strings.Contains(strings.ToLower(route.Code()), term) ||
		strings.Contains(strings.ToLower(route.StartPoint()), term) ||
		strings.Contains(strings.ToLower(route.EndPoint()), term) {
		return true
	}
	for _, point := range route.IntermediatePoints() {
		if strings.Contains(strings.ToLower(point), term) {
			return true
		}
	}
	return false
}

// GetAllRouteCodes lists every route code, sorted.
func (s *RouteService) GetAllRouteCodes(ctx context.Context) ([]string, error) {
	routes, err := s.routes.GetAll(ctx)
	if err != nil {
		return nil, wrapStorage("getting route codes", err)
	}
	codes := make([]string, 0, len(routes))
	for _, route := range routes {
		codes = append(codes, route.Code())
	}
	sort.Strings(codes)
	return codes, nil
}

// GetAllStartPoints lists the distinct start points, sorted.
func (s *RouteService) GetAllStartPoints(ctx context.Context) ([]string, error) {
	points, err := s.routes.StartPoints(ctx)
	return points, wrapStorage("getting start points", err)
}

// GetAllEndPoints lists the distinct end points, sorted.
func (s *RouteService) GetAllEndPoints(ctx context.Context) ([]string, error) {
	points, err := s.routes.EndPoints(ctx)
	return points, wrapStorage("getting end points", err)
}

// GetDayStatistics counts routes departing on each weekday.
func (s *RouteService) GetDayStatistics(ctx context.Context) (map[time.Weekday]int, error) {
	stats, err := s.routes.DayStatistics(ctx)
	return stats, wrapStorage("getting day statistics", err)
}

// AverageTravelTime averages travel time over all routes.
func (s *RouteService) AverageTravelTime(ctx context.Context) (time.Duration, error) {
	avg, err := s.routes.AverageTravelTime(ctx)
	return avg, wrapStorage("getting average travel time", err)
}

// Backup copies the route collection file into dir.
func (s *RouteService) Backup(ctx context.Context, dir string) (string, error) {
	path, err := s.routes.Backup(ctx, dir)
	return path, wrapStorage("backing up routes", err)
}

// Clear rewrites the route collection as an empty list.
func (s *RouteService) Clear(ctx context.Context) error {
	if err := s.routes.Clear(ctx); err != nil {
		return wrapStorage("clearing routes", err)
	}
	logrus.Info("route collection cleared")
	return nil
}
