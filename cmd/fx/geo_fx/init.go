package geo_fx

import (
	"go.uber.org/fx"
	"tripweaver/internal/services"
)

var Module = fx.Provide(
	provideGeoService, provideCountryResolver)

func provideGeoService() services.GeoServiceInterface {
	return services.NewGeoService()
}

func provideCountryResolver(geo services.GeoServiceInterface) services.CountryResolverInterface {
	return geo
}
