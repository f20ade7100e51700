package routing_fx

import (
	"go.uber.org/fx"
	"tripweaver/internal/services"
)

var Module = fx.Provide(
	provideORSClient, provideRouteService)

func provideORSClient() services.ORSClientInterface {
	return services.NewORSClient()
}

func provideRouteService(ors services.ORSClientInterface) services.RouteServiceInterface {
	return services.NewRouteService(ors)
}
