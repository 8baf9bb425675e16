package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/tastemap/api-go/cache"
)

type HealthController struct {
	Cache *cache.PlaceCache
}

func NewHealthController(placeCache *cache.PlaceCache) *HealthController {
	return &HealthController{Cache: placeCache}
}

func (hc *HealthController) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   "tastemap-api",
		"cacheSize": hc.Cache.Size(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
