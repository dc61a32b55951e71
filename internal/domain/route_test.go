package domain

import (
	"errors"
	"testing"
	"time"
)

func TestNewRoute_Valid(t *testing.T) {
	t.Parallel()

	route, err := NewRoute("101A", "Central Station", "Airport", 6*time.Hour+30*time.Minute, 45*time.Minute)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if route.Code() != "101A" {
		t.Errorf("expected code 101A, got %s", route.Code())
	}
	if route.DepartureTime() != 6*time.Hour+30*time.Minute {
		t.Errorf("unexpected departure time %s", route.DepartureTime())
	}
	if len(route.IntermediatePoints()) != 0 {
		t.Error("expected no intermediate points on a new route")
	}
}

func TestNewRoute_Invalid(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name       string
		code       string
		startPoint string
		endPoint   string
		departure  time.Duration
		travel     time.Duration
		field      string
	}{
		{"empty code", "", "Central Station", "Airport", time.Hour, time.Hour, "route_code"},
		{"code too short", "1", "Central Station", "Airport", time.Hour, time.Hour, "route_code"},
		{"code too long", "12345678901", "Central Station", "Airport", time.Hour, time.Hour, "route_code"},
		{"start point too short", "101A", "X", "Airport", time.Hour, time.Hour, "start_point"},
		{"end point empty", "101A", "Central Station", "", time.Hour, time.Hour, "end_point"},
		{"negative departure", "101A", "Central Station", "Airport", -time.Minute, time.Hour, "departure_time"},
		{"departure past midnight", "101A", "Central Station", "Airport", 24 * time.Hour, time.Hour, "departure_time"},
		{"zero travel time", "101A", "Central Station", "Airport", time.Hour, 0, "travel_time"},
		{"travel time too long", "101A", "Central Station", "Airport", time.Hour, 49 * time.Hour, "travel_time"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewRoute(tc.code, tc.startPoint, tc.endPoint, tc.departure, tc.travel)
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tc.field {
				t.Errorf("expected error on field %s, got %s", tc.field, validationErr.Field)
			}
		})
	}
}

func TestRoute_IntermediatePoints(t *testing.T) {
	t.Parallel()

	route, err := NewRoute("101A", "Central Station", "Airport", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := route.AddIntermediatePoint("Market Square"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := route.AddIntermediatePoint("X"); err == nil {
		t.Error("expected error for a one-character point name")
	}

	route.RemoveIntermediatePoint("Market Square")
	if len(route.IntermediatePoints()) != 0 {
		t.Errorf("expected no points after removal, got %v", route.IntermediatePoints())
	}
}

func TestRoute_IntermediatePointsCap(t *testing.T) {
	t.Parallel()

	route, err := NewRoute("101A", "Central Station", "Airport", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for i := 0; i < MaxIntermediatePoints; i++ {
		if err := route.AddIntermediatePoint("Stop nr " + string(rune('A'+i%26)) + "x"); err != nil {
			t.Fatalf("unexpected error at point %d: %v", i, err)
		}
	}
	if err := route.AddIntermediatePoint("One too many"); err == nil {
		t.Errorf("expected error after %d intermediate points", MaxIntermediatePoints)
	}
}

func TestRoute_DepartureDays(t *testing.T) {
	t.Parallel()

	route, err := NewRoute("101A", "Central Station", "Airport", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := route.AddDepartureDay(time.Monday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Adding twice is a no-op.
	if err := route.AddDepartureDay(time.Monday); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(route.DepartureDays()) != 1 {
		t.Errorf("expected 1 departure day, got %d", len(route.DepartureDays()))
	}

	if !route.OperatesOn(time.Monday) {
		t.Error("expected route to operate on Monday")
	}
	if route.OperatesOn(time.Tuesday) {
		t.Error("did not expect route to operate on Tuesday")
	}

	if err := route.AddDepartureDay(time.Weekday(7)); err == nil {
		t.Error("expected error for an invalid weekday")
	}

	route.RemoveDepartureDay(time.Monday)
	if route.OperatesOn(time.Monday) {
		t.Error("expected Monday to be removed")
	}
}

func TestRoute_ReturnedSlicesAreCopies(t *testing.T) {
	t.Parallel()

	route, err := NewRoute("101A", "Central Station", "Airport", time.Hour, time.Hour)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := route.AddIntermediatePoint("Market Square"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	points := route.IntermediatePoints()
	points[0] = "mutated"
	if route.IntermediatePoints()[0] != "Market Square" {
		t.Error("expected internal point list to be unaffected by caller mutation")
	}
}
