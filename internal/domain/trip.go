package domain

import (
	"fmt"
	"strings"
	"time"
)

// Bounds for trip fields.
const (
	MinTripYear     = 2000
	MaxTicketsSold  = 1000
	MaxTotalRevenue = 1e15
)

// TripKey is the composite identity of a trip: calendar day, route code and
// driver personnel number. The date component is always truncated to the
// day, so two trips on the same day differing only in time-of-day share an
// identity.
type TripKey struct {
	Day          time.Time
	RouteCode    string
	DriverNumber string
}

// NewTripKey derives a key, truncating the date to the calendar day.
func NewTripKey(date time.Time, routeCode, driverNumber string) TripKey {
	return TripKey{
		Day:          DateOnly(date),
		RouteCode:    routeCode,
		DriverNumber: driverNumber,
	}
}

// Equal compares keys structurally. Identifier components keep their own
// normalization; no case folding happens here.
func (k TripKey) Equal(other TripKey) bool {
	return k.Day.Equal(other.Day) &&
		k.RouteCode == other.RouteCode &&
		k.DriverNumber == other.DriverNumber
}

func (k TripKey) String() string {
	return fmt.Sprintf("%s|%s|%s", k.Day.Format("20060102"), k.RouteCode, k.DriverNumber)
}

// DateOnly truncates a timestamp to its calendar day in UTC.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Trip represents one performed trip of a driver over a route on a given
// day, with its sales figures.
type Trip struct {
	clock Clock

	id           string
	date         time.Time
	routeCode    string
	driverNumber string
	ticketsSold  int
	totalRevenue float64
}

// NewTrip builds a validated Trip. The id is an opaque record identifier;
// repositories assign one on insert when left empty.
func NewTrip(clock Clock, date time.Time, routeCode, driverNumber string, ticketsSold int, totalRevenue float64) (*Trip, error) {
	t := &Trip{clock: clock}

	if err := t.setDate(date); err != nil {
		return nil, err
	}
	if err := t.setRouteCode(routeCode); err != nil {
		return nil, err
	}
	if err := t.setDriverNumber(driverNumber); err != nil {
		return nil, err
	}
	if err := t.SetTicketsSold(ticketsSold); err != nil {
		return nil, err
	}
	if err := t.SetTotalRevenue(totalRevenue); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Trip) ID() string            { return t.id }
func (t *Trip) Date() time.Time       { return t.date }
func (t *Trip) RouteCode() string     { return t.routeCode }
func (t *Trip) DriverNumber() string  { return t.driverNumber }
func (t *Trip) TicketsSold() int      { return t.ticketsSold }
func (t *Trip) TotalRevenue() float64 { return t.totalRevenue }

// Key derives the composite identity of the trip.
func (t *Trip) Key() TripKey {
	return NewTripKey(t.date, t.routeCode, t.driverNumber)
}

// SetID stamps the record identifier.
func (t *Trip) SetID(id string) { t.id = id }

// SetTicketsSold updates the number of tickets sold.
func (t *Trip) SetTicketsSold(tickets int) error {
	if tickets < 0 {
		return newValidationError("tickets_sold", "must not be negative")
	}
	if tickets > MaxTicketsSold {
		return newValidationError("tickets_sold", "must not exceed %d", MaxTicketsSold)
	}
	t.ticketsSold = tickets
	return nil
}

// SetTotalRevenue updates the total revenue of the trip.
func (t *Trip) SetTotalRevenue(revenue float64) error {
	if revenue < 0 {
		return newValidationError("total_revenue", "must not be negative")
	}
	if revenue > MaxTotalRevenue {
		return newValidationError("total_revenue", "is implausibly large")
	}
	t.totalRevenue = revenue
	return nil
}

func (t *Trip) setDate(date time.Time) error {
	now := t.clock.Now()
	if DateOnly(date).After(DateOnly(now)) {
		return newValidationError("trip_date", "must not be in the future")
	}
	if date.Year() < MinTripYear {
		return newValidationError("trip_date", "must not precede the year %d", MinTripYear)
	}
	t.date = date
	return nil
}

func (t *Trip) setRouteCode(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return newValidationError("route_code", "must not be empty")
	}
	t.routeCode = code
	return nil
}

func (t *Trip) setDriverNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return newValidationError("driver_number", "must not be empty")
	}
	t.driverNumber = number
	return nil
}
