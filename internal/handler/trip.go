package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// TripHandler handles HTTP requests for trips.
type TripHandler struct {
	tripService *service.TripService
	clock       domain.Clock
}

// NewTripHandler creates a new TripHandler.
func NewTripHandler(tripService *service.TripService, clock domain.Clock) *TripHandler {
	return &TripHandler{tripService: tripService, clock: clock}
}

// CreateTripRequest is the HTTP request body for recording a trip.
type CreateTripRequest struct {
	Date         string  `json:"date"`
	RouteCode    string  `json:"route_code"`
	DriverNumber string  `json:"driver_number"`
	TicketsSold  int     `json:"tickets_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// UpdateTripRequest is the HTTP request body for updating a trip.
type UpdateTripRequest struct {
	TicketsSold  *int     `json:"tickets_sold,omitempty"`
	TotalRevenue *float64 `json:"total_revenue,omitempty"`
}

// TripResponse is the HTTP response for trip operations.
type TripResponse struct {
	ID           string  `json:"id,omitempty"`
	Date         string  `json:"date"`
	RouteCode    string  `json:"route_code"`
	DriverNumber string  `json:"driver_number"`
	TicketsSold  int     `json:"tickets_sold"`
	TotalRevenue float64 `json:"total_revenue"`
}

// TripStatisticsResponse is the HTTP response for trip statistics.
type TripStatisticsResponse struct {
	TotalTrips            int     `json:"total_trips"`
	TotalTicketsSold      int     `json:"total_tickets_sold"`
	TotalRevenue          float64 `json:"total_revenue"`
	AverageRevenuePerTrip float64 `json:"average_revenue_per_trip"`
	AverageTicketsPerTrip float64 `json:"average_tickets_per_trip"`
}

func toTripResponse(trip *domain.Trip) TripResponse {
	return TripResponse{
		ID:           trip.ID(),
		Date:         trip.Date().Format(dateLayout),
		RouteCode:    trip.RouteCode(),
		DriverNumber: trip.DriverNumber(),
		TicketsSold:  trip.TicketsSold(),
		TotalRevenue: trip.TotalRevenue(),
	}
}

func toTripResponses(trips []*domain.Trip) []TripResponse {
	responses := make([]TripResponse, 0, len(trips))
	for _, trip := range trips {
		responses = append(responses, toTripResponse(trip))
	}
	return responses
}

// tripKeyFromPath builds a trip key from the :date/:route/:driver path segments.
func tripKeyFromPath(c *gin.Context) (domain.TripKey, error) {
	date, err := time.Parse(dateLayout, c.Param("date"))
	if err != nil {
		return domain.TripKey{}, domain.NewValidationError("date", "must be a date in YYYY-MM-DD format")
	}
	return domain.NewTripKey(date, c.Param("route"), c.Param("driver")), nil
}

// Create handles POST /v1/trips
func (h *TripHandler) Create(c *gin.Context) {
	var req CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		respondError(c, domain.NewValidationError("date", "must be a date in YYYY-MM-DD format"))
		return
	}

	trip, err := domain.NewTrip(h.clock, date, req.RouteCode, req.DriverNumber,
		req.TicketsSold, req.TotalRevenue)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.tripService.AddTrip(c.Request.Context(), trip); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toTripResponse(trip))
}

// Get handles GET /v1/trips/:date/:route/:driver
func (h *TripHandler) Get(c *gin.Context) {
	key, err := tripKeyFromPath(c)
	if err != nil {
		respondError(c, err)
		return
	}
	trip, err := h.tripService.GetTrip(c.Request.Context(), key)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// GetAll handles GET /v1/trips with optional filter query parameters.
func (h *TripHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	if routeCode := c.Query("route"); routeCode != "" {
		trips, err := h.tripService.GetTripsByRoute(ctx, routeCode)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toTripResponses(trips))
		return
	}

	if driverNumber := c.Query("driver"); driverNumber != "" {
		trips, err := h.tripService.GetTripsByDriver(ctx, driverNumber)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toTripResponses(trips))
		return
	}

	start, hasStart, err := dateQuery(c, "start_date")
	if err != nil {
		respondError(c, err)
		return
	}
	end, hasEnd, err := dateQuery(c, "end_date")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasStart || hasEnd {
		trips, err := h.tripService.GetTripsByDateRange(ctx, start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toTripResponses(trips))
		return
	}

	trips, err := h.tripService.GetAllTrips(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// Update handles PUT /v1/trips/:date/:route/:driver
func (h *TripHandler) Update(c *gin.Context) {
	var req UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	key, err := tripKeyFromPath(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	trip, err := h.tripService.GetTrip(ctx, key)
	if err != nil {
		respondError(c, err)
		return
	}

	if req.TicketsSold != nil {
		if err := trip.SetTicketsSold(*req.TicketsSold); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.TotalRevenue != nil {
		if err := trip.SetTotalRevenue(*req.TotalRevenue); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := h.tripService.UpdateTrip(ctx, trip); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponse(trip))
}

// Delete handles DELETE /v1/trips/:date/:route/:driver
func (h *TripHandler) Delete(c *gin.Context) {
	key, err := tripKeyFromPath(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := h.tripService.RemoveTrip(c.Request.Context(), key); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetStatistics handles GET /v1/trips/statistics?start_date=...&end_date=...
func (h *TripHandler) GetStatistics(c *gin.Context) {
	start, end, err := dateRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	stats, err := h.tripService.GetTripStatistics(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, TripStatisticsResponse{
		TotalTrips:            stats.TotalTrips,
		TotalTicketsSold:      stats.TotalTicketsSold,
		TotalRevenue:          stats.TotalRevenue,
		AverageRevenuePerTrip: stats.AverageRevenuePerTrip,
		AverageTicketsPerTrip: stats.AverageTicketsPerTrip,
	})
}

// GetRevenue handles GET /v1/trips/revenue?start_date=...&end_date=...&group_by=route|driver
func (h *TripHandler) GetRevenue(c *gin.Context) {
	start, end, err := dateRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	ctx := c.Request.Context()
	switch groupBy := c.DefaultQuery("group_by", "route"); groupBy {
	case "route":
		revenue, err := h.tripService.GetRevenueByRoute(ctx, start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"revenue_by_route": revenue})
	case "driver":
		revenue, err := h.tripService.GetRevenueByDriver(ctx, start, end)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, gin.H{"revenue_by_driver": revenue})
	default:
		respondError(c, domain.NewValidationError("group_by", "must be either route or driver"))
	}
}

// GetTop handles GET /v1/trips/top. Without parameters it reports the top
// ten trips by revenue over the last thirty days.
func (h *TripHandler) GetTop(c *gin.Context) {
	ctx := c.Request.Context()

	if c.Query("start_date") == "" && c.Query("end_date") == "" && c.Query("count") == "" {
		trips, err := h.tripService.GetTopPerformingTripsDefault(ctx)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toTripResponses(trips))
		return
	}

	start, end, err := dateRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}
	count, ok, err := intQuery(c, "count")
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		count = 10
	}

	trips, err := h.tripService.GetTopPerformingTrips(ctx, start, end, count)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponses(trips))
}

// GetProfitable handles GET /v1/trips/profitable?start_date=...&end_date=...
func (h *TripHandler) GetProfitable(c *gin.Context) {
	start, end, err := dateRangeQuery(c)
	if err != nil {
		respondError(c, err)
		return
	}

	trips, err := h.tripService.GetProfitableTrips(c.Request.Context(), start, end)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toTripResponses(trips))
}
