package app

import (
	"github.com/gin-gonic/gin"
	"github.com/newrelic/go-agent/v3/integrations/nrgin"
	"github.com/newrelic/go-agent/v3/newrelic"

	"fleet/internal/handler"
	"fleet/internal/middleware"
)

// RouterDeps contains all dependencies needed for the router.
type RouterDeps struct {
	BusHandler    *handler.BusHandler
	DriverHandler *handler.DriverHandler
	RouteHandler  *handler.RouteHandler
	TripHandler   *handler.TripHandler
	AdminHandler  *handler.AdminHandler
	NewRelicApp   *newrelic.Application
}

// NewRouter creates a new Gin router with all routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()

	// Global middleware.
	router.Use(gin.Recovery())
	router.Use(gin.Logger())
	router.Use(middleware.CORSMiddleware())

	// Add New Relic middleware if enabled.
	if deps.NewRelicApp != nil {
		router.Use(nrgin.Middleware(deps.NewRelicApp))
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes.
	v1 := router.Group("/v1")
	{
		// Bus routes.
		buses := v1.Group("/buses")
		{
			buses.POST("", deps.BusHandler.Create)
			buses.GET("", deps.BusHandler.GetAll)
			buses.GET("/brands", deps.BusHandler.GetBrands)
			buses.GET("/statistics", deps.BusHandler.GetStatistics)
			buses.GET("/overhaul-due", deps.BusHandler.GetOverhaulDue)
			buses.GET("/:number", deps.BusHandler.Get)
			buses.PUT("/:number", deps.BusHandler.Update)
			buses.DELETE("/:number", deps.BusHandler.Delete)
		}

		// Driver routes.
		drivers := v1.Group("/drivers")
		{
			drivers.POST("", deps.DriverHandler.Create)
			drivers.GET("", deps.DriverHandler.GetAll)
			drivers.GET("/senior", deps.DriverHandler.GetSenior)
			drivers.GET("/available", deps.DriverHandler.GetAvailable)
			drivers.GET("/statistics", deps.DriverHandler.GetStatistics)
			drivers.GET("/:number", deps.DriverHandler.Get)
			drivers.PUT("/:number", deps.DriverHandler.Update)
			drivers.DELETE("/:number", deps.DriverHandler.Delete)
		}

		// Route routes.
		routes := v1.Group("/routes")
		{
			routes.POST("", deps.RouteHandler.Create)
			routes.GET("", deps.RouteHandler.GetAll)
			routes.GET("/codes", deps.RouteHandler.GetCodes)
			routes.GET("/points", deps.RouteHandler.GetPoints)
			routes.GET("/statistics", deps.RouteHandler.GetStatistics)
			routes.GET("/:code", deps.RouteHandler.Get)
			routes.PUT("/:code", deps.RouteHandler.Update)
			routes.DELETE("/:code", deps.RouteHandler.Delete)
		}

		// Trip routes.
		trips := v1.Group("/trips")
		{
			trips.POST("", deps.TripHandler.Create)
			trips.GET("", deps.TripHandler.GetAll)
			trips.GET("/statistics", deps.TripHandler.GetStatistics)
			trips.GET("/revenue", deps.TripHandler.GetRevenue)
			trips.GET("/top", deps.TripHandler.GetTop)
			trips.GET("/profitable", deps.TripHandler.GetProfitable)
			trips.GET("/:date/:route/:driver", deps.TripHandler.Get)
			trips.PUT("/:date/:route/:driver", deps.TripHandler.Update)
			trips.DELETE("/:date/:route/:driver", deps.TripHandler.Delete)
		}

		// Administrative routes.
		admin := v1.Group("/admin")
		{
			admin.POST("/backup", deps.AdminHandler.Backup)
			admin.GET("/status", deps.AdminHandler.Status)
		}
	}

	return router
}
