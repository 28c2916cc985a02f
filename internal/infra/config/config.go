package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Wardrobe sources.
const (
	WardrobeSourceFile   = "file"
	WardrobeSourceS3     = "s3"
	WardrobeSourceValkey = "valkey"
)

// Trace exporters.
const (
	TracingExporterNone   = "none"
	TracingExporterOTLP   = "otlp"
	TracingExporterStdout = "stdout"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Location LocationConfig `yaml:"location"`
	Weather  WeatherConfig  `yaml:"weather"`
	Geocode  GeocodeConfig  `yaml:"geocode"`
	Wardrobe WardrobeConfig `yaml:"wardrobe"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address      string          `yaml:"address"`
	ReadTimeout  time.Duration   `yaml:"readTimeout"`
	WriteTimeout time.Duration   `yaml:"writeTimeout"`
	CORSOrigins  []string        `yaml:"corsOrigins"`
	StaticDir    string          `yaml:"staticDir"`
	RateLimit    RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LocationConfig is used when the caller supplies no coordinates.
type LocationConfig struct {
	Latitude  float64 `yaml:"latitude"`
	Longitude float64 `yaml:"longitude"`
	Label     string  `yaml:"label"`
}

// WeatherConfig points at the Open-Meteo forecast API.
type WeatherConfig struct {
	APIBaseURL string        `yaml:"apiBaseUrl"`
	Timeout    time.Duration `yaml:"timeout"`
}

// GeocodeConfig points at the Nominatim reverse geocoding API.
type GeocodeConfig struct {
	APIBaseURL string        `yaml:"apiBaseUrl"`
	UserAgent  string        `yaml:"userAgent"`
	Timeout    time.Duration `yaml:"timeout"`
}

// WardrobeConfig selects where the wardrobe document lives.
type WardrobeConfig struct {
	Source   string        `yaml:"source"`
	Path     string        `yaml:"path"`
	CacheTTL time.Duration `yaml:"cacheTtl"`
	S3       S3Config      `yaml:"s3"`
	Valkey   ValkeyConfig  `yaml:"valkey"`
}

// S3Config contains S3-compatible object storage settings.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"accessKey"`
	SecretKey string `yaml:"secretKey"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Key       string `yaml:"key"`
}

// ValkeyConfig contains connection information for the wardrobe key.
type ValkeyConfig struct {
	Addr string `yaml:"addr"`
	Key  string `yaml:"key"`
}

// TracingConfig selects where spans are exported. With "none" spans are
// still recorded but dropped on end.
type TracingConfig struct {
	Exporter    string  `yaml:"exporter"`
	Endpoint    string  `yaml:"endpoint"`
	Insecure    bool    `yaml:"insecure"`
	SampleRatio float64 `yaml:"sampleRatio"`
}

// Load reads configuration from an optional .env file, a YAML file and
// environment variables, in that order of increasing precedence.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if err := loadDotEnv(os.Getenv("DOTENV_PATH")); err != nil {
		return nil, err
	}

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// loadDotEnv populates the process environment without overriding variables
// that are already set. A missing default .env file is not an error.
func loadDotEnv(path string) error {
	if path == "" {
		if _, err := os.Stat(".env"); err != nil {
			return nil
		}
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	return nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_CORS_ORIGINS"); v != "" {
		cfg.HTTP.CORSOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_STATIC_DIR"); v != "" {
		cfg.HTTP.StaticDir = v
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = parseBool(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("DEFAULT_LATITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Latitude = parsed
		}
	}
	if v := os.Getenv("DEFAULT_LONGITUDE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Location.Longitude = parsed
		}
	}
	if v := os.Getenv("DEFAULT_LOCATION_LABEL"); v != "" {
		cfg.Location.Label = v
	}
	if v := os.Getenv("WEATHER_API_BASE_URL"); v != "" {
		cfg.Weather.APIBaseURL = v
	}
	if v := os.Getenv("WEATHER_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Weather.Timeout = parsed
		}
	}
	if v := os.Getenv("GEOCODE_API_BASE_URL"); v != "" {
		cfg.Geocode.APIBaseURL = v
	}
	if v := os.Getenv("GEOCODE_USER_AGENT"); v != "" {
		cfg.Geocode.UserAgent = v
	}
	if v := os.Getenv("GEOCODE_TIMEOUT"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Geocode.Timeout = parsed
		}
	}
	if v := os.Getenv("WARDROBE_SOURCE"); v != "" {
		cfg.Wardrobe.Source = strings.ToLower(v)
	}
	if v := os.Getenv("WARDROBE_PATH"); v != "" {
		cfg.Wardrobe.Path = v
	}
	if v := os.Getenv("WARDROBE_CACHE_TTL"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.Wardrobe.CacheTTL = parsed
		}
	}
	if v := os.Getenv("WARDROBE_S3_ENDPOINT"); v != "" {
		cfg.Wardrobe.S3.Endpoint = v
	}
	if v := os.Getenv("WARDROBE_S3_ACCESS_KEY"); v != "" {
		cfg.Wardrobe.S3.AccessKey = v
	}
	if v := os.Getenv("WARDROBE_S3_SECRET_KEY"); v != "" {
		cfg.Wardrobe.S3.SecretKey = v
	}
	if v := os.Getenv("WARDROBE_S3_BUCKET"); v != "" {
		cfg.Wardrobe.S3.Bucket = v
	}
	if v := os.Getenv("WARDROBE_S3_REGION"); v != "" {
		cfg.Wardrobe.S3.Region = v
	}
	if v := os.Getenv("WARDROBE_S3_KEY"); v != "" {
		cfg.Wardrobe.S3.Key = v
	}
	if v := os.Getenv("WARDROBE_VALKEY_ADDR"); v != "" {
		cfg.Wardrobe.Valkey.Addr = v
	}
	if v := os.Getenv("WARDROBE_VALKEY_KEY"); v != "" {
		cfg.Wardrobe.Valkey.Key = v
	}
	if v := os.Getenv("TRACING_EXPORTER"); v != "" {
		cfg.Tracing.Exporter = v
	}
	if v := os.Getenv("TRACING_ENDPOINT"); v != "" {
		cfg.Tracing.Endpoint = v
	}
	if v := os.Getenv("TRACING_INSECURE"); v != "" {
		cfg.Tracing.Insecure = parseBool(v)
	}
	if v := os.Getenv("TRACING_SAMPLE_RATIO"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Tracing.SampleRatio = f
		}
	}
}

func parseBool(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:      ":5001",
			ReadTimeout:  5 * time.Second,
			WriteTimeout: 30 * time.Second,
			StaticDir:    "static",
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Location: LocationConfig{
			Latitude:  40.2338,
			Longitude: -111.6585,
			Label:     "Provo (Default)",
		},
		Weather: WeatherConfig{
			APIBaseURL: "https://api.open-meteo.com/v1/forecast",
			Timeout:    10 * time.Second,
		},
		Geocode: GeocodeConfig{
			APIBaseURL: "https://nominatim.openstreetmap.org/reverse",
			UserAgent:  "WeatherChap/1.0",
			Timeout:    10 * time.Second,
		},
		Wardrobe: WardrobeConfig{
			Source: WardrobeSourceFile,
			Path:   "wardrobe.json",
			S3: S3Config{
				Key: "wardrobe.json",
			},
			Valkey: ValkeyConfig{
				Key: "weatherchap:wardrobe",
			},
		},
		Tracing: TracingConfig{
			Exporter:    TracingExporterNone,
			SampleRatio: 1,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	if c.Location.Latitude < -90 || c.Location.Latitude > 90 {
		return errors.New("location.latitude must be between -90 and 90")
	}
	if c.Location.Longitude < -180 || c.Location.Longitude > 180 {
		return errors.New("location.longitude must be between -180 and 180")
	}
	if strings.TrimSpace(c.Location.Label) == "" {
		return errors.New("location.label cannot be empty")
	}
	if c.Weather.APIBaseURL == "" {
		return errors.New("weather.apiBaseUrl cannot be empty")
	}
	if c.Geocode.APIBaseURL == "" {
		return errors.New("geocode.apiBaseUrl cannot be empty")
	}
	if c.Wardrobe.CacheTTL < 0 {
		return errors.New("wardrobe.cacheTtl cannot be negative")
	}
	switch c.Wardrobe.Source {
	case WardrobeSourceFile:
		if strings.TrimSpace(c.Wardrobe.Path) == "" {
			return errors.New("wardrobe.path cannot be empty when source is file")
		}
	case WardrobeSourceS3:
		if strings.TrimSpace(c.Wardrobe.S3.Endpoint) == "" || strings.TrimSpace(c.Wardrobe.S3.Bucket) == "" {
			return errors.New("wardrobe.s3.endpoint and wardrobe.s3.bucket are required when source is s3")
		}
		if strings.TrimSpace(c.Wardrobe.S3.Key) == "" {
			return errors.New("wardrobe.s3.key cannot be empty")
		}
	case WardrobeSourceValkey:
		if strings.TrimSpace(c.Wardrobe.Valkey.Addr) == "" {
			return errors.New("wardrobe.valkey.addr cannot be empty when source is valkey")
		}
	default:
		return fmt.Errorf("wardrobe.source %q must be one of file, s3, valkey", c.Wardrobe.Source)
	}
	switch c.Tracing.Exporter {
	case TracingExporterNone, TracingExporterOTLP, TracingExporterStdout:
	default:
		return fmt.Errorf("tracing.exporter %q must be one of none, otlp, stdout", c.Tracing.Exporter)
	}
	if c.Tracing.SampleRatio < 0 || c.Tracing.SampleRatio > 1 {
		return errors.New("tracing.sampleRatio must be between 0 and 1")
	}
	return nil
}
