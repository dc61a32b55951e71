package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// BusHandler handles HTTP requests for buses.
type BusHandler struct {
	busService *service.BusService
	clock      domain.Clock
}

// NewBusHandler creates a new BusHandler.
func NewBusHandler(busService *service.BusService, clock domain.Clock) *BusHandler {
	return &BusHandler{busService: busService, clock: clock}
}

// CreateBusRequest is the HTTP request body for creating a bus.
type CreateBusRequest struct {
	GovernmentNumber   string `json:"government_number"`
	BrandModel         string `json:"brand_model"`
	Capacity           int    `json:"capacity"`
	YearOfManufacture  int    `json:"year_of_manufacture"`
	YearOfOverhaul     *int   `json:"year_of_overhaul,omitempty"`
	MileageAtYearStart int    `json:"mileage_at_year_start"`
	PhotoPath          string `json:"photo_path,omitempty"`
}

// UpdateBusRequest is the HTTP request body for updating a bus.
type UpdateBusRequest struct {
	BrandModel         *string `json:"brand_model,omitempty"`
	Capacity           *int    `json:"capacity,omitempty"`
	YearOfOverhaul     *int    `json:"year_of_overhaul,omitempty"`
	MileageAtYearStart *int    `json:"mileage_at_year_start,omitempty"`
	PhotoPath          *string `json:"photo_path,omitempty"`
}

// BusResponse is the HTTP response for bus operations.
type BusResponse struct {
	GovernmentNumber   string `json:"government_number"`
	BrandModel         string `json:"brand_model"`
	Capacity           int    `json:"capacity"`
	YearOfManufacture  int    `json:"year_of_manufacture"`
	YearOfOverhaul     *int   `json:"year_of_overhaul,omitempty"`
	MileageAtYearStart int    `json:"mileage_at_year_start"`
	PhotoPath          string `json:"photo_path,omitempty"`
}

// BusStatisticsResponse is the HTTP response for fleet capacity statistics.
type BusStatisticsResponse struct {
	TotalCapacity   int     `json:"total_capacity"`
	AverageCapacity float64 `json:"average_capacity"`
}

func toBusResponse(bus *domain.Bus) BusResponse {
	response := BusResponse{
		GovernmentNumber:   bus.GovernmentNumber(),
		BrandModel:         bus.BrandModel(),
		Capacity:           bus.Capacity(),
		YearOfManufacture:  bus.YearOfManufacture(),
		MileageAtYearStart: bus.MileageAtYearStart(),
		PhotoPath:          bus.PhotoPath(),
	}
	if year, ok := bus.YearOfOverhaul(); ok {
		response.YearOfOverhaul = &year
	}
	return response
}

func toBusResponses(buses []*domain.Bus) []BusResponse {
	responses := make([]BusResponse, 0, len(buses))
	for _, bus := range buses {
		responses = append(responses, toBusResponse(bus))
	}
	return responses
}

// Create handles POST /v1/buses
func (h *BusHandler) Create(c *gin.Context) {
	var req CreateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	bus, err := domain.NewBus(h.clock, req.GovernmentNumber, req.BrandModel,
		req.Capacity, req.YearOfManufacture, req.MileageAtYearStart)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.YearOfOverhaul != nil {
		if err := bus.SetYearOfOverhaul(*req.YearOfOverhaul); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.PhotoPath != "" {
		bus.SetPhotoPath(req.PhotoPath)
	}

	if err := h.busService.AddBus(c.Request.Context(), bus); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toBusResponse(bus))
}

// Get handles GET /v1/buses/:number
func (h *BusHandler) Get(c *gin.Context) {
	bus, err := h.busService.GetBus(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBusResponse(bus))
}

// GetAll handles GET /v1/buses with optional filter query parameters.
func (h *BusHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	if brand := c.Query("brand"); brand != "" {
		buses, err := h.busService.GetBusesByBrand(ctx, brand)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toBusResponses(buses))
		return
	}

	minCapacity, hasMin, err := intQuery(c, "min_capacity")
	if err != nil {
		respondError(c, err)
		return
	}
	maxCapacity, hasMax, err := intQuery(c, "max_capacity")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasMin || hasMax {
		buses, err := h.busService.GetBusesByCapacityRange(ctx, minCapacity, maxCapacity)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toBusResponses(buses))
		return
	}

	startYear, hasStart, err := intQuery(c, "start_year")
	if err != nil {
		respondError(c, err)
		return
	}
	endYear, hasEnd, err := intQuery(c, "end_year")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasStart || hasEnd {
		buses, err := h.busService.GetBusesByYearRange(ctx, startYear, endYear)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toBusResponses(buses))
		return
	}

	hasOverhaul, hasFilter, err := boolQuery(c, "has_overhaul")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasFilter {
		buses, err := h.busService.GetBusesByOverhaulStatus(ctx, hasOverhaul)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toBusResponses(buses))
		return
	}

	buses, err := h.busService.GetAllBuses(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBusResponses(buses))
}

// Update handles PUT /v1/buses/:number
func (h *BusHandler) Update(c *gin.Context) {
	var req UpdateBusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	ctx := c.Request.Context()
	bus, err := h.busService.GetBus(ctx, c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.BrandModel != nil {
		bus.SetBrandModel(*req.BrandModel)
	}
	if req.Capacity != nil {
		if err := bus.SetCapacity(*req.Capacity); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.YearOfOverhaul != nil {
		if err := bus.SetYearOfOverhaul(*req.YearOfOverhaul); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.MileageAtYearStart != nil {
		if err := bus.SetMileageAtYearStart(*req.MileageAtYearStart); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.PhotoPath != nil {
		bus.SetPhotoPath(*req.PhotoPath)
	}

	if err := h.busService.UpdateBus(ctx, bus); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBusResponse(bus))
}

// Delete handles DELETE /v1/buses/:number
func (h *BusHandler) Delete(c *gin.Context) {
	if err := h.busService.RemoveBus(c.Request.Context(), c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetOverhaulDue handles GET /v1/buses/overhaul-due with an optional
// threshold query parameter expressed in years.
func (h *BusHandler) GetOverhaulDue(c *gin.Context) {
	threshold, ok, err := intQuery(c, "threshold")
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		threshold = service.DefaultOverhaulYearsThreshold
	}

	buses, err := h.busService.GetBusesRequiringOverhaul(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toBusResponses(buses))
}

// GetBrands handles GET /v1/buses/brands
func (h *BusHandler) GetBrands(c *gin.Context) {
	brands, err := h.busService.GetAllBrands(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, gin.H{"brands": brands})
}

// GetStatistics handles GET /v1/buses/statistics
func (h *BusHandler) GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	total, err := h.busService.TotalCapacity(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	average, err := h.busService.AverageCapacity(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, BusStatisticsResponse{
		TotalCapacity:   total,
		AverageCapacity: average,
	})
}
