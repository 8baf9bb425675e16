package controllers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/tastemap/api-go/services"
	"github.com/tastemap/api-go/types"
	"github.com/tastemap/api-go/utils"
)

const defaultQuery = "restaurants in Boston, MA"

type PlaceController struct {
	Service *services.PlacesService
}

func NewPlaceController(service *services.PlacesService) *PlaceController {
	return &PlaceController{Service: service}
}

// GetPlaces godoc
// @Summary Search places with server-side filtering
// @Description Returns normalized places for a text query, served from the TTL cache when fresh
// @Tags places
// @Accept json
// @Produce json
// @Param q query string false "Free-text search query"
// @Param openNow query boolean false "Only include places not known to be closed"
// @Param minPrice query integer false "Minimum price tier (0-4)"
// @Param maxPrice query integer false "Maximum price tier (0-4)"
// @Param type query string false "Category hint, defaults to restaurant"
// @Success 200 {object} types.PlacesResponse
// @Failure 502 {object} map[string]string
// @Router /places [get]
func (pc *PlaceController) GetPlaces(c *gin.Context) {
	var query types.PlacesQuery

	if err := c.ShouldBindQuery(&query); err != nil {
		// Malformed numerics fall back to defaults rather than rejecting the
		// request; the filter contract is lenient end to end.
		query.Query = c.Query("q")
		query.OpenNow = utils.ParseBoolDefault(c.Query("openNow"), false)
		query.MinPrice = utils.ParseIntDefault(c.Query("minPrice"), 0)
		query.MaxPrice = utils.ParseIntDefault(c.Query("maxPrice"), 4)
		query.Type = c.Query("type")
	}

	if query.Query == "" {
		query.Query = defaultQuery
	}

	filters := types.SearchFilters{
		Query:       query.Query,
		OpenNowOnly: query.OpenNow,
		MinPrice:    query.MinPrice,
		MaxPrice:    query.MaxPrice,
		Category:    query.Type,
	}

	places, err := pc.Service.FetchPlaces(c.Request.Context(), filters)
	if err != nil {
		log.Printf("places fetch failed: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, types.PlacesResponse{Places: places})
}
