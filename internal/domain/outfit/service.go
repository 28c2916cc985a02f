package outfit

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/sync/errgroup"

	apperrors "github.com/yanqian/weatherchap/pkg/errors"
)

// UnknownLocation is shown when reverse geocoding yields nothing.
const UnknownLocation = "Unknown Location"

var tracer = otel.Tracer("github.com/yanqian/weatherchap/internal/domain/outfit")

// Service exposes location based outfit recommendations.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
}

type WeatherClient interface {
	Fetch(ctx context.Context, lat, lon float64) (Observation, error)
}

type Geocoder interface {
	ReverseGeocode(ctx context.Context, lat, lon float64) (string, error)
}

// WardrobeSource supplies the wardrobe mapping. It never fails; a missing or
// broken source yields an empty wardrobe.
type WardrobeSource interface {
	Load(ctx context.Context) Wardrobe
}

type service struct {
	cfg      Config
	weather  WeatherClient
	geocoder Geocoder
	wardrobe WardrobeSource
	logger   *slog.Logger
}

// NewService wires up the outfit domain.
func NewService(cfg Config, weather WeatherClient, geocoder Geocoder, wardrobe WardrobeSource, logger *slog.Logger) Service {
	return &service{
		cfg:      cfg,
		weather:  weather,
		geocoder: geocoder,
		wardrobe: wardrobe,
		logger:   logger.With("component", "outfit.service"),
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	ctx, span := tracer.Start(ctx, "weatherchap.recommend")
	defer span.End()

	loc, err := s.resolveCoordinates(req)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Response{}, err
	}
	span.SetAttributes(
		attribute.Float64("weatherchap.lat", loc.Latitude),
		attribute.Float64("weatherchap.lon", loc.Longitude),
		attribute.Bool("weatherchap.default_location", loc.Default),
	)

	var (
		obs        Observation
		weatherErr error
	)
	// The lookups are independent: a failed forecast still shows the place
	// name, so neither may cancel the other.
	var g errgroup.Group
	if !loc.Default {
		g.Go(func() error {
			loc.Label = s.placeName(ctx, loc.Latitude, loc.Longitude)
			return nil
		})
	}
	g.Go(func() error {
		obs, weatherErr = s.weather.Fetch(ctx, loc.Latitude, loc.Longitude)
		return nil
	})
	_ = g.Wait()

	res := Response{Location: loc}
	if weatherErr != nil {
		s.logger.Warn("weather unavailable", "lat", loc.Latitude, "lon", loc.Longitude, "error", weatherErr)
		span.SetAttributes(attribute.Bool("weatherchap.weather_available", false))
		return res, nil
	}
	span.SetAttributes(attribute.Bool("weatherchap.weather_available", true))

	advice := DeriveAdvice(obs)
	ApplyWardrobe(&advice, s.wardrobe.Load(ctx))
	s.logger.Info("outfit recommended", "location", loc.Label, "temp_max", obs.TempMax, "precip_prob", obs.PrecipProb, "outfit", advice.OutfitOneliner)

	res.Weather = &obs
	res.Advice = &advice
	return res, nil
}

func (s *service) resolveCoordinates(req Request) (Location, error) {
	rawLat := strings.TrimSpace(req.Latitude)
	if rawLat == "" {
		return Location{
			Label:     s.cfg.DefaultLabel,
			Latitude:  s.cfg.DefaultLatitude,
			Longitude: s.cfg.DefaultLongitude,
			Default:   true,
		}, nil
	}
	lat, err := strconv.ParseFloat(rawLat, 64)
	if err != nil || lat < -90 || lat > 90 {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "lat must be a number between -90 and 90", err)
	}
	rawLon := strings.TrimSpace(req.Longitude)
	if rawLon == "" {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "lon is required when lat is set", nil)
	}
	lon, err := strconv.ParseFloat(rawLon, 64)
	if err != nil || lon < -180 || lon > 180 {
		return Location{}, apperrors.Wrap(apperrors.CodeInvalidInput, "lon must be a number between -180 and 180", err)
	}
	return Location{Latitude: lat, Longitude: lon}, nil
}

func (s *service) placeName(ctx context.Context, lat, lon float64) string {
	name, err := s.geocoder.ReverseGeocode(ctx, lat, lon)
	if err != nil || strings.TrimSpace(name) == "" {
		s.logger.Warn("reverse geocoding failed", "lat", lat, "lon", lon, "error", err)
		return UnknownLocation
	}
	return name
}
