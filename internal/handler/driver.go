package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet/internal/domain"
	"fleet/internal/service"
)

// DriverHandler handles HTTP requests for drivers.
type DriverHandler struct {
	driverService *service.DriverService
	clock         domain.Clock
}

// NewDriverHandler creates a new DriverHandler.
func NewDriverHandler(driverService *service.DriverService, clock domain.Clock) *DriverHandler {
	return &DriverHandler{driverService: driverService, clock: clock}
}

// CreateDriverRequest is the HTTP request body for creating a driver.
type CreateDriverRequest struct {
	PersonnelNumber string `json:"personnel_number"`
	FullName        string `json:"full_name"`
	BirthYear       int    `json:"birth_year"`
	ExperienceYears int    `json:"experience_years"`
	LicenseCategory string `json:"license_category"`
	DriverClass     int    `json:"driver_class"`
}

// UpdateDriverRequest is the HTTP request body for updating a driver.
type UpdateDriverRequest struct {
	FullName        *string `json:"full_name,omitempty"`
	ExperienceYears *int    `json:"experience_years,omitempty"`
	LicenseCategory *string `json:"license_category,omitempty"`
	DriverClass     *int    `json:"driver_class,omitempty"`
}

// DriverResponse is the HTTP response for driver operations.
type DriverResponse struct {
	PersonnelNumber string `json:"personnel_number"`
	FullName        string `json:"full_name"`
	BirthYear       int    `json:"birth_year"`
	ExperienceYears int    `json:"experience_years"`
	LicenseCategory string `json:"license_category"`
	DriverClass     int    `json:"driver_class"`
}

func toDriverResponse(driver *domain.Driver) DriverResponse {
	return DriverResponse{
		PersonnelNumber: driver.PersonnelNumber(),
		FullName:        driver.FullName(),
		BirthYear:       driver.BirthYear(),
		ExperienceYears: driver.ExperienceYears(),
		LicenseCategory: driver.LicenseCategory(),
		DriverClass:     driver.DriverClass(),
	}
}

func toDriverResponses(drivers []*domain.Driver) []DriverResponse {
	responses := make([]DriverResponse, 0, len(drivers))
	for _, driver := range drivers {
		responses = append(responses, toDriverResponse(driver))
	}
	return responses
}

// Create handles POST /v1/drivers
func (h *DriverHandler) Create(c *gin.Context) {
	var req CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	driver, err := domain.NewDriver(h.clock, req.PersonnelNumber, req.FullName,
		req.BirthYear, req.ExperienceYears, req.LicenseCategory, req.DriverClass)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.driverService.AddDriver(c.Request.Context(), driver); err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusCreated, toDriverResponse(driver))
}

// Get handles GET /v1/drivers/:number
func (h *DriverHandler) Get(c *gin.Context) {
	driver, err := h.driverService.GetDriver(c.Request.Context(), c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// GetAll handles GET /v1/drivers with optional filter query parameters.
func (h *DriverHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	if category := c.Query("category"); category != "" {
		drivers, err := h.driverService.GetDriversByCategory(ctx, category)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDriverResponses(drivers))
		return
	}

	if name := c.Query("name"); name != "" {
		drivers, err := h.driverService.GetDriversByName(ctx, name)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDriverResponses(drivers))
		return
	}

	minExperience, hasMinExperience, err := intQuery(c, "min_experience")
	if err != nil {
		respondError(c, err)
		return
	}
	maxExperience, hasMaxExperience, err := intQuery(c, "max_experience")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasMaxExperience {
		drivers, err := h.driverService.GetDriversByExperienceRange(ctx, minExperience, maxExperience)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDriverResponses(drivers))
		return
	}
	if hasMinExperience {
		drivers, err := h.driverService.GetDriversByMinExperience(ctx, minExperience)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDriverResponses(drivers))
		return
	}

	driverClass, hasClass, err := intQuery(c, "class")
	if err != nil {
		respondError(c, err)
		return
	}
	if hasClass {
		drivers, err := h.driverService.GetDriversByClass(ctx, driverClass)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDriverResponses(drivers))
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
		drivers, err := h.driverService.GetDriversByBirthYearRange(ctx, startYear, endYear)
		if err != nil {
			respondError(c, err)
			return
		}
		respondJSON(c, http.StatusOK, toDriverResponses(drivers))
		return
	}

	drivers, err := h.driverService.GetAllDrivers(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toDriverResponses(drivers))
}

// Update handles PUT /v1/drivers/:number
func (h *DriverHandler) Update(c *gin.Context) {
	var req UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, domain.NewValidationError("body", "invalid request body"))
		return
	}

	ctx := c.Request.Context()
	driver, err := h.driverService.GetDriver(ctx, c.Param("number"))
	if err != nil {
		respondError(c, err)
		return
	}

	if req.FullName != nil {
		if err := driver.SetFullName(*req.FullName); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.ExperienceYears != nil {
		if err := driver.SetExperienceYears(*req.ExperienceYears); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.LicenseCategory != nil {
		if err := driver.SetLicenseCategory(*req.LicenseCategory); err != nil {
			respondError(c, err)
			return
		}
	}
	if req.DriverClass != nil {
		if err := driver.SetDriverClass(*req.DriverClass); err != nil {
			respondError(c, err)
			return
		}
	}

	if err := h.driverService.UpdateDriver(ctx, driver); err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toDriverResponse(driver))
}

// Delete handles DELETE /v1/drivers/:number
func (h *DriverHandler) Delete(c *gin.Context) {
	if err := h.driverService.RemoveDriver(c.Request.Context(), c.Param("number")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetSenior handles GET /v1/drivers/senior
func (h *DriverHandler) GetSenior(c *gin.Context) {
	drivers, err := h.driverService.GetSeniorDrivers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toDriverResponses(drivers))
}

// GetAvailable handles GET /v1/drivers/available with a required date
// query parameter.
func (h *DriverHandler) GetAvailable(c *gin.Context) {
	date, ok, err := dateQuery(c, "date")
	if err != nil {
		respondError(c, err)
		return
	}
	if !ok {
		respondError(c, domain.NewValidationError("date", "is required"))
		return
	}

	drivers, err := h.driverService.GetAvailableDriversForDate(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	respondJSON(c, http.StatusOK, toDriverResponses(drivers))
}

// GetStatistics handles GET /v1/drivers/statistics
func (h *DriverHandler) GetStatistics(c *gin.Context) {
	ctx := c.Request.Context()

	average, err := h.driverService.AverageExperience(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	byCategory, err := h.driverService.GetDriverStatisticsByCategory(ctx)
	if err != nil {
		respondError(c, err)
		return
	}
	byClass, err := h.driverService.GetDriverStatisticsByClass(ctx)
	if err != nil {
		respondError(c, err)
		return
	}

	respondJSON(c, http.StatusOK, gin.H{
		"average_experience": average,
		"by_category":        byCategory,
		"by_class":           byClass,
	})
}
