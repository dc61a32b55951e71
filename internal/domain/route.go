package domain

import (
	"strings"
	"time"
)

// Bounds for route fields.
const (
	MinRouteCodeLen       = 2
	MaxRouteCodeLen       = 10
	MinPointNameLen       = 2
	MaxPointNameLen       = 100
	MaxIntermediatePoints = 50
	MaxDepartureDays      = 7
	MaxTravelTime         = 48 * time.Hour
)

// Route represents a scheduled service path, identified by its route code.
// Departure and travel times are durations: departure counts from midnight,
// travel is the total driving time.
type Route struct {
	code               string
	startPoint         string
	endPoint           string
	intermediatePoints []string
	departureTime      time.Duration
	departureDays      []time.Weekday
	travelTime         time.Duration
}

// NewRoute builds a validated Route without intermediate points or
// departure days; add those through the mutators.
func NewRoute(code, startPoint, endPoint string, departureTime, travelTime time.Duration) (*Route, error) {
	r := &Route{}

	if err := r.setCode(code); err != nil {
		return nil, err
	}
	if err := r.setPoint(&r.startPoint, "start_point", startPoint); err != nil {
		return nil, err
	}
	if err := r.setPoint(&r.endPoint, "end_point", endPoint); err != nil {
		return nil, err
	}
	if err := r.SetDepartureTime(departureTime); err != nil {
		return nil, err
	}
	if err := r.setTravelTime(travelTime); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Route) Code() string                 { return r.code }
func (r *Route) StartPoint() string           { return r.startPoint }
func (r *Route) EndPoint() string             { return r.endPoint }
func (r *Route) DepartureTime() time.Duration { return r.departureTime }
func (r *Route) TravelTime() time.Duration    { return r.travelTime }

// IntermediatePoints returns the ordered stop list as a copy.
func (r *Route) IntermediatePoints() []string {
	points := make([]string, len(r.intermediatePoints))
	copy(points, r.intermediatePoints)
	return points
}

// DepartureDays returns the departure weekdays as a copy.
func (r *Route) DepartureDays() []time.Weekday {
	days := make([]time.Weekday, len(r.departureDays))
	copy(days, r.departureDays)
	return days
}

// OperatesOn reports whether the route departs on the given weekday.
func (r *Route) OperatesOn(day time.Weekday) bool {
	for _, d := range r.departureDays {
		if d == day {
			return true
		}
	}
	return false
}

// AddIntermediatePoint appends a stop between the start and end points.
func (r *Route) AddIntermediatePoint(point string) error {
	point = strings.TrimSpace(point)
	if err := validatePointName("intermediate_point", point); err != nil {
		return err
	}
	if len(r.intermediatePoints) >= MaxIntermediatePoints {
		return newValidationError("intermediate_point", "at most %d intermediate points allowed", MaxIntermediatePoints)
	}
	r.intermediatePoints = append(r.intermediatePoints, point)
	return nil
}

// RemoveIntermediatePoint removes the first stop equal to point, if any.
func (r *Route) RemoveIntermediatePoint(point string) {
	for i, p := range r.intermediatePoints {
		if p == point {
			r.intermediatePoints = append(r.intermediatePoints[:i], r.intermediatePoints[i+1:]...)
			return
		}
	}
}

// ClearIntermediatePoints removes all stops.
func (r *Route) ClearIntermediatePoints() { r.intermediatePoints = nil }

// AddDepartureDay registers a departure weekday. Adding a day twice is a
// no-op.
func (r *Route) AddDepartureDay(day time.Weekday) error {
	if day < time.Sunday || day > time.Saturday {
		return newValidationError("departure_day", "invalid weekday %d", int(day))
	}
	if r.OperatesOn(day) {
		return nil
	}
	if len(r.departureDays) >= MaxDepartureDays {
		return newValidationError("departure_day", "at most %d departure days allowed", MaxDepartureDays)
	}
	r.departureDays = append(r.departureDays, day)
	return nil
}

// RemoveDepartureDay unregisters a departure weekday.
func (r *Route) RemoveDepartureDay(day time.Weekday) {
	for i, d := range r.departureDays {
		if d == day {
			r.departureDays = append(r.departureDays[:i], r.departureDays[i+1:]...)
			return
		}
	}
}

// SetDepartureTime updates the departure time-of-day.
func (r *Route) SetDepartureTime(t time.Duration) error {
	if t < 0 || t >= 24*time.Hour {
		return newValidationError("departure_time", "must be within a single day")
	}
	r.departureTime = t
	return nil
}

func (r *Route) setCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return newValidationError("route_code", "must not be empty")
	}
	if len(code) < MinRouteCodeLen || len(code) > MaxRouteCodeLen {
		return newValidationError("route_code", "length must be between %d and %d characters",
			MinRouteCodeLen, MaxRouteCodeLen)
	}
	r.code = code
	return nil
}

func (r *Route) setPoint(dst *string, field, point string) error {
	point = strings.TrimSpace(point)
	if err := validatePointName(field, point); err != nil {
		return err
	}
	*dst = point
	return nil
}

func (r *Route) setTravelTime(t time.Duration) error {
	if t <= 0 {
		return newValidationError("travel_time", "must be positive")
	}
	if t > MaxTravelTime {
		return newValidationError("travel_time", "must not exceed %s", MaxTravelTime)
	}
	r.travelTime = t
	return nil
}

func validatePointName(field, point string) error {
	if point == "" {
		return newValidationError(field, "must not be empty")
	}
	if len(point) < MinPointNameLen || len(point) > MaxPointNameLen {
		return newValidationError(field, "length must be between %d and %d characters",
			MinPointNameLen, MaxPointNameLen)
	}
	return nil
}
