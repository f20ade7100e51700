package places_fx

import (
	"go.uber.org/fx"
	"tripweaver/internal/services"
)

var Module = fx.Provide(
	provideOverpassClient,
	provideAirportService,
	provideAttractionService,
	provideHotelEnricher,
	provideHotelService)

func provideOverpassClient() services.OverpassClientInterface {
	return services.NewOverpassClient()
}

func provideAirportService(overpass services.OverpassClientInterface) services.AirportServiceInterface {
	return services.NewAirportService(overpass)
}

func provideAttractionService() services.AttractionServiceInterface {
	return services.NewAttractionService()
}

func provideHotelEnricher() services.HotelEnricherInterface {
	return services.NewPlacesEnricher()
}

func provideHotelService(overpass services.OverpassClientInterface, country services.CountryResolverInterface, enricher services.HotelEnricherInterface) services.HotelServiceInterface {
	return services.NewHotelService(overpass, country, enricher)
}
