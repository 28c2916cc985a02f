package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/valkey-io/valkey-go"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
	"github.com/yanqian/weatherchap/internal/infra/config"
	"github.com/yanqian/weatherchap/internal/infra/geocode/nominatim"
	"github.com/yanqian/weatherchap/internal/infra/wardrobe"
	"github.com/yanqian/weatherchap/internal/infra/weather/openmeteo"
)

func provideOutfitConfig(cfg *config.Config) outfit.Config {
	return outfit.Config{
		DefaultLatitude:  cfg.Location.Latitude,
		DefaultLongitude: cfg.Location.Longitude,
		DefaultLabel:     cfg.Location.Label,
	}
}

func provideWeatherClient(cfg *config.Config) *openmeteo.Client {
	return openmeteo.NewClient(cfg.Weather.APIBaseURL, cfg.Weather.Timeout)
}

func provideGeocoder(cfg *config.Config) *nominatim.Client {
	return nominatim.NewClient(cfg.Geocode.APIBaseURL, cfg.Geocode.UserAgent, cfg.Geocode.Timeout)
}

func provideWardrobeFetcher(cfg *config.Config, logger *slog.Logger) (wardrobe.Fetcher, error) {
	switch cfg.Wardrobe.Source {
	case config.WardrobeSourceS3:
		s3 := cfg.Wardrobe.S3
		fetcher, err := wardrobe.NewObjectFetcher(s3.Endpoint, s3.AccessKey, s3.SecretKey, s3.Bucket, s3.Region, s3.Key)
		if err != nil {
			return nil, err
		}
		logger.Info("wardrobe object storage source enabled", "bucket", s3.Bucket, "key", s3.Key)
		return fetcher, nil
	case config.WardrobeSourceValkey:
		opt, err := buildValkeyOptions(cfg)
		if err != nil {
			return nil, fmt.Errorf("invalid valkey configuration: %w", err)
		}
		client, err := valkey.NewClient(opt)
		if err != nil {
			return nil, fmt.Errorf("create valkey client: %w", err)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
			// The loader degrades to generic labels while Valkey is unreachable.
			logger.Error("valkey ping failed", "addr", cfg.Wardrobe.Valkey.Addr, "error", err)
		} else {
			logger.Info("wardrobe valkey source enabled", "addr", cfg.Wardrobe.Valkey.Addr, "key", cfg.Wardrobe.Valkey.Key)
		}
		return wardrobe.NewValkeyFetcher(client, cfg.Wardrobe.Valkey.Key), nil
	default:
		logger.Info("wardrobe file source enabled", "path", cfg.Wardrobe.Path)
		return wardrobe.NewFileFetcher(cfg.Wardrobe.Path), nil
	}
}

func provideWardrobeLoader(cfg *config.Config, fetcher wardrobe.Fetcher, logger *slog.Logger) *wardrobe.Loader {
	return wardrobe.NewLoader(fetcher, cfg.Wardrobe.CacheTTL, logger)
}

func buildValkeyOptions(cfg *config.Config) (valkey.ClientOption, error) {
	addr := cfg.Wardrobe.Valkey.Addr
	if strings.Contains(addr, "://") {
		return valkey.ParseURL(addr)
	}
	return valkey.ClientOption{InitAddress: []string{addr}}, nil
}

// provideTracerProvider installs the global tracer provider so spans started
// through otel.Tracer are recorded and exported.
func provideTracerProvider(cfg *config.Config, logger *slog.Logger) (*sdktrace.TracerProvider, error) {
	exporter, err := newSpanExporter(cfg.Tracing)
	if err != nil {
		return nil, err
	}
	opts := []sdktrace.TracerProviderOption{
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(cfg.Tracing.SampleRatio))),
		sdktrace.WithResource(resource.NewWithAttributes(
			"",
			attribute.String("service.name", "weatherchap"),
		)),
	}
	if exporter != nil {
		opts = append(opts, sdktrace.WithBatcher(exporter))
	}

	tp := sdktrace.NewTracerProvider(opts...)
	otel.SetTracerProvider(tp)
	logger.Info("tracing configured", "exporter", cfg.Tracing.Exporter, "sample_ratio", cfg.Tracing.SampleRatio)
	return tp, nil
}

func newSpanExporter(cfg config.TracingConfig) (sdktrace.SpanExporter, error) {
	switch cfg.Exporter {
	case config.TracingExporterOTLP:
		// Unset options fall back to the OTEL_EXPORTER_OTLP_* environment variables.
		var opts []otlptracehttp.Option
		if cfg.Endpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpointURL(cfg.Endpoint))
		}
		if cfg.Insecure {
			opts = append(opts, otlptracehttp.WithInsecure())
		}
		exporter, err := otlptracehttp.New(context.Background(), opts...)
		if err != nil {
			return nil, fmt.Errorf("create otlp exporter: %w", err)
		}
		return exporter, nil
	case config.TracingExporterStdout:
		exporter, err := stdouttrace.New(stdouttrace.WithWriter(os.Stderr))
		if err != nil {
			return nil, fmt.Errorf("create stdout exporter: %w", err)
		}
		return exporter, nil
	default:
		return nil, nil
	}
}
