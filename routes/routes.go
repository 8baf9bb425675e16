package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tastemap/api-go/cache"
	"github.com/tastemap/api-go/controllers"
	"github.com/tastemap/api-go/services"
)

func SetupRoutes(r *gin.Engine, placesService *services.PlacesService, placeCache *cache.PlaceCache) {
	// Initialize controllers
	placeController := controllers.NewPlaceController(placesService)
	healthController := controllers.NewHealthController(placeCache)
	plotController := controllers.NewPlotController()

	r.GET("/", plotController.GetPlotPage)
	r.GET("/health", healthController.GetHealth)

	api := r.Group("/api")
	{
		SetupPlaceRoutes(api, placeController)
	}
}
