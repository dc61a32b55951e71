package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// RouteHandler handles HTTP requests for routes.
type RouteHandler struct {
	routeService *service.RouteService
}

// NewRouteHandler creates a new RouteHandler.
func NewRouteHandler(routeService *service.RouteService) *RouteHandler {
	return &RouteHandler{routeService: routeService}
}

// CreateRouteRequest is the HTTP request body for creating a route.
// Times are expressed in whole minutes.
type CreateRouteRequest struct {
	Code               string   `json:"code"`
	StartPoint         string   `json:"start_point"`
	EndPoint           string   `json:"end_point"`
	IntermediatePoints []string `json:"intermediate_points,omitempty"`
	DepartureMinutes   int      `json:"departure_minutes"`
	DepartureDays      []int    `json:"departure_days,omitempty"`
	TravelMinutes      int      `json:"travel_minutes"`
}

// UpdateRouteRequest is the HTTP request body for updating a route. The
// stored route is replaced wholesale; the code comes from the path.
type UpdateRouteRequest struct {
	StartPoint         string   `json:"start_point"`
	EndPoint           string   `json:"end_point"`
	IntermediatePoints []string `json:"intermediate_points,omitempty"`
	DepartureMinutes   int      `json:"departure_minutes"`
	DepartureDays      []int    `json:"departure_days,omitempty"`
	TravelMinutes      int      `json:"travel_minutes"`
}

// RouteResponse is the HTTP response for route operations.
type RouteResponse struct {
	Code               string   `json:"code"`
	StartPoint         string   `json:"start_point"`
	EndPoint           string   `json:"end_point"`
	IntermediatePoints []string `json:"intermediate_points,omitempty"`
	DepartureMinutes   int      `json:"departure_minutes"`
	DepartureDays      []int    `json:"departure_days,omitempty"`
	TravelMinutes      int      `json:"travel_minutes"`
}

func toRouteResponse(route *domain.Route) RouteResponse {
	days := make([]int, 0, len(route.DepartureDays()))
	for _, day := range route.DepartureDays() {
		days = append(days, int(day))
	}
	return RouteResponse{
		Code:               route.Code(),
		StartPoint:         route.StartPoint(),
		EndPoint:           route.EndPoint(),
		IntermediatePoints: route.IntermediatePoints(),
		DepartureMinutes:   int(route.DepartureTime().Minutes()),
		DepartureDays:      days,
		TravelMinutes:      int(route.TravelTime().Minutes()),
	}
}

func toRouteResponses(routes []*domain.Route) []RouteResponse {
	responses := make([]RouteResponse, 0, len(routes))
	for _, route := range routes {
		responses = append(responses, toRouteResponse(route))
	}
	return responses
}

func applyDepartureDays(route *domain.Route, days []int) error {
	for _, day := range days {
		if day < 0 || day > 6 {
			return domain.NewValidationError("departure_days", "days must be between 0 (Sunday) and 6 (Saturday)")
		}
		if err := route.AddDepartureDay(time.Weekday(day)); err != nil {
			return err
		}
	}
	return nil
}

// Create handles POST /v1/routes
func (h *RouteHandler) Create(c *gin.Context) {
	var req CreateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	route, err := domain.NewRoute(req.Code, req.StartPoint, req.EndPoint,
		time.Duration(req.DepartureMinutes)*time.Minute,
		time.Duration(req.TravelMinutes)*time.Minute)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, point := range req.IntermediatePoints {
		if err := route.AddIntermediatePoint(point); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := applyDepartureDays(route, req.DepartureDays); err != nil {
		respondError(c, err)
		return
	}

	if err := h.routeService.AddRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toRouteResponse(route))
}

// Get handles GET /v1/routes/:code
func (h *RouteHandler) Get(c *gin.Context) {
	route, err := h.routeService.GetRoute(c.Request.Context(), c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRouteResponse(route))
}

// GetAll handles GET /v1/routes with optional filter query parameters.
func (h *RouteHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	if term := c.Query("search"); term != "" {
		routes, err := h.routeService.SearchRoutes(ctx, term)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toRouteResponses(routes))
		return
	}

	day, hasDay, err := intQuery(c, "day")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasDay {
		if day < 0 || day > 6 {
			respondError(c, domain.NewValidationError("day", "must be between 0 (Sunday) and 6 (Saturday)"))
			return
		}
		routes, err := h.routeService.GetRoutesByDay(ctx, time.Weekday(day))
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toRouteResponses(routes))
		return
	}

	if point := c.Query("point"); point != "" {
		routes, err := h.routeService.GetRoutesByPoint(ctx, point)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toRouteResponses(routes))
		return
	}

	departureFrom, hasFrom, err := minutesQuery(c, "departure_from")
	if err != nil {
		respondError(c, err)
		return
	}
	departureTo, hasTo, err := minutesQuery(c, "departure_to")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasFrom || hasTo {
		routes, err := h.routeService.GetRoutesByDepartureRange(ctx, departureFrom, departureTo)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toRouteResponses(routes))
		return
	}

	travelMin, hasMin, err := minutesQuery(c, "travel_min")
	if err != nil {
		respondError(c, err)
		return
	}
	travelMax, hasMax, err := minutesQuery(c, "travel_max")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasMin || hasMax {
		routes, err := h.routeService.GetRoutesByTravelTimeRange(ctx, travelMin, travelMax)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toRouteResponses(routes))
		return
	}

	routes, err := h.routeService.GetAllRoutes(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRouteResponses(routes))
}

// Update handles PUT /v1/routes/:code, replacing the stored route.
func (h *RouteHandler) Update(c *gin.Context) {
	var req UpdateRouteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	route, err := domain.NewRoute(c.Param("code"), req.StartPoint, req.EndPoint,
		time.Duration(req.DepartureMinutes)*time.Minute,
		time.Duration(req.TravelMinutes)*time.Minute)
	if err != nil {
		respondError(c, err)
		return
	}
	for _, point := range req.IntermediatePoints {
		if err := route.AddIntermediatePoint(point); err != nil {
			respondError(c, err)
			return
		}
	}
	if err := applyDepartureDays(route, req.DepartureDays); err != nil {
		respondError(c, err)
		return
	}

	if err := h.routeService.UpdateRoute(c.Request.Context(), route); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toRouteResponse(route))
}

// Delete handles DELETE /v1/routes/:code
func (h *RouteHandler) Delete(c *gin.Context) {
	if err := h.routeService.RemoveRoute(c.Request.Context(), c.Param("code")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetCodes handles GET /v1/routes/codes
func (h *RouteHandler) GetCodes(c *gin.Context) {
	codes, err := h.routeService.GetAllRouteCodes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"codes": codes})
}

// GetPoints handles GET /v1/routes/points
func (h *RouteHandler) GetPoints(c *gin.Context) {
	ctx := c.Request.Context()

	startPoints, err := h.routeService.GetAllStartPoints(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	endPoints, err := h.routeService.GetAllEndPoints(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"start_points": startPoints,
		"end_points":   endPoints,
	})
}

// GetStatistics handles GET /v1/routes/statistics
func (h *RouteHandler) GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	dayStats, err := h.routeService.GetDayStatistics(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	averageTravel, err := h.routeService.AverageTravelTime(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	routesPerDay := make(map[string]int, len(dayStats))
	for day, count := range dayStats {
		routesPerDay[day.String()] = count
	}

	respondJSON(c, http.StatusOK, gin.H{
		"routes_per_day":         routesPerDay,
		"average_travel_minutes": averageTravel.Minutes(),
	})
}
