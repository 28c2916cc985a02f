//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"github.com/yanqian/weatherchap/internal/bootstrap"
	"github.com/yanqian/weatherchap/internal/domain/outfit"
	"github.com/yanqian/weatherchap/internal/infra/config"
	"github.com/yanqian/weatherchap/internal/infra/geocode/nominatim"
	"github.com/yanqian/weatherchap/internal/infra/wardrobe"
	"github.com/yanqian/weatherchap/internal/infra/weather/openmeteo"
	httpiface "github.com/yanqian/weatherchap/internal/interface/http"
	"github.com/yanqian/weatherchap/pkg/logger"
)

func initializeApp() (*bootstrap.App, error) {
	wire.Build(
		config.Load,
		logger.New,
		provideTracerProvider,
		provideOutfitConfig,
		provideWeatherClient,
		provideGeocoder,
		provideWardrobeFetcher,
		provideWardrobeLoader,
		outfit.NewService,
		wire.Bind(new(outfit.WeatherClient), new(*openmeteo.Client)),
		wire.Bind(new(outfit.Geocoder), new(*nominatim.Client)),
		wire.Bind(new(outfit.WardrobeSource), new(*wardrobe.Loader)),
		httpiface.NewHandler,
		httpiface.NewRouter,
		bootstrap.NewApp,
	)
	return nil, nil
}
