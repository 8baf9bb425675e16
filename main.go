package main

import (
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/tastemap/api-go/cache"
	"github.com/tastemap/api-go/config"
	"github.com/tastemap/api-go/middleware"
	"github.com/tastemap/api-go/routes"
	"github.com/tastemap/api-go/services"
)

func main() {
	// Set up logging to stdout
	log.SetOutput(os.Stdout)
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using process environment")
	}

	cfg := config.Load()

	placeCache := cache.New(cfg.CacheTTL)
	placesService := services.NewPlacesService(placeCache, cfg)

	// Create a new Gin router
	r := gin.Default()
	r.Use(middleware.RequestID())
	r.Use(middleware.CORS())

	// Initialize routes
	routes.SetupRoutes(r, placesService, placeCache)

	// Start the server
	log.Printf("Starting server on port %s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
