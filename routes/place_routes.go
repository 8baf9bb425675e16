package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/tastemap/api-go/controllers"
)

func SetupPlaceRoutes(api *gin.RouterGroup, placeController *controllers.PlaceController) {
	places := api.Group("/places")
	{
		places.GET("", placeController.GetPlaces)
	}
}
