package itinerary_fx

import (
	"go.uber.org/fx"
	"tripweaver/internal/api/controllers"
	"tripweaver/internal/services"
)

var Module = fx.Options(
	fx.Provide(provideExportService),
	fx.Provide(controllers.NewPlanController),
	fx.Provide(controllers.NewCityController),
	fx.Provide(controllers.NewAccountController),
	fx.Provide(controllers.NewItineraryController))

func provideExportService() services.ExportServiceInterface {
	return services.NewExportService()
}
