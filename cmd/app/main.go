package main

import (
	"context"
	"log"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"tripweaver/cmd/fx/account_fx"
	"tripweaver/cmd/fx/db_fx"
	"tripweaver/cmd/fx/geo_fx"
	"tripweaver/cmd/fx/itinerary_fx"
	"tripweaver/cmd/fx/places_fx"
	"tripweaver/cmd/fx/planner_fx"
	"tripweaver/cmd/fx/routing_fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/pkg/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	app := fx.New(
		db_fx.Module,
		geo_fx.Module,
		places_fx.Module,
		routing_fx.Module,
		planner_fx.Module,
		account_fx.Module,
		itinerary_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
	)

	app.Run()
}

func StartServer(lc fx.Lifecycle, engine *gin.Engine) {
	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				port := os.Getenv("PORT")
				if port == "" {
					port = "8080"
				}
				log.Printf("Starting HTTP server at :%s", port)
				if err := engine.Run(":" + port); err != nil {
					log.Fatalf("Failed to start server: %v", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping HTTP server")
			return nil
		},
	})
}

func ProvideRouter(
	planController *controllers.PlanController,
	cityController *controllers.CityController,
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController) *gin.Engine {

	r := gin.Default()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	r.Use(middleware.CORSMiddleware())
	r.Use(middleware.TraceIDMiddleware())

	RegisterRoutes(r, planController, cityController, accountController, itineraryController)

	return r
}

func RegisterRoutes(r *gin.Engine,
	planController *controllers.PlanController,
	cityController *controllers.CityController,
	accountController *controllers.AccountController,
	itineraryController *controllers.ItineraryController) {

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := r.Group("/api")
	apiGroup.GET("/cities", cityController.SearchCities)
	apiGroup.POST("/plan-trip", middleware.OptionalAuthMiddleware(), planController.PlanTrip)
	apiGroup.GET("/itineraries/:id/pdf", itineraryController.ExportPDF)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", accountController.Register)
	authGroup.POST("/login", accountController.Login)

	meGroup := r.Group("/me", middleware.JWTAuthMiddleware())
	meGroup.GET("", accountController.Me)
	meGroup.GET("/trips", itineraryController.ListMyTrips)
}
