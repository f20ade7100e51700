package planner_fx

import (
	"log"
	"os"

	"go.uber.org/fx"
	"gorm.io/gorm"
	"tripweaver/internal/repositories"
	"tripweaver/internal/services"
	"tripweaver/pkg/utils"
)

var Module = fx.Provide(
	provideGenerativeClient,
	provideCostService,
	provideItineraryService,
	provideHotelMatcher,
	provideItineraryRepo,
	providePlanService)

func provideGenerativeClient() utils.GenerativeClientInterface {
	client, err := utils.NewGenerativeClient(
		os.Getenv("LLM_PROVIDER"),
		os.Getenv("LLM_API_KEY"),
		os.Getenv("LLM_MODEL"),
	)
	if err != nil {
		log.Fatalf("Failed to create generative client: %v", err)
	}
	return client
}

func provideCostService() services.CostServiceInterface {
	return services.NewCostService()
}

func provideItineraryService(llm utils.GenerativeClientInterface) services.ItineraryServiceInterface {
	return services.NewItineraryService(llm)
}

func provideHotelMatcher() services.HotelMatcherServiceInterface {
	return services.NewHotelMatcherService()
}

func provideItineraryRepo(db *gorm.DB) repositories.ItineraryRepository {
	return repositories.NewItineraryRepository(db)
}

func providePlanService(
	geo services.GeoServiceInterface,
	airports services.AirportServiceInterface,
	attractions services.AttractionServiceInterface,
	hotels services.HotelServiceInterface,
	routes services.RouteServiceInterface,
	costs services.CostServiceInterface,
	generator services.ItineraryServiceInterface,
	matcher services.HotelMatcherServiceInterface,
	repo repositories.ItineraryRepository,
) services.PlanServiceInterface {
	return services.NewPlanService(geo, airports, attractions, hotels, routes, costs, generator, matcher, repo)
}
