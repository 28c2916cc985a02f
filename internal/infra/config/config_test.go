package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":5001", cfg.HTTP.Address)
	require.Equal(t, 40.2338, cfg.Location.Latitude)
	require.Equal(t, -111.6585, cfg.Location.Longitude)
	require.Equal(t, "Provo (Default)", cfg.Location.Label)
	require.Equal(t, WardrobeSourceFile, cfg.Wardrobe.Source)
	require.Equal(t, "wardrobe.json", cfg.Wardrobe.Path)
	require.Zero(t, cfg.Wardrobe.CacheTTL)
	require.Equal(t, TracingExporterNone, cfg.Tracing.Exporter)
	require.Equal(t, 1.0, cfg.Tracing.SampleRatio)
}

func TestLoadTracingFromEnv(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("TRACING_EXPORTER", "otlp")
	t.Setenv("TRACING_ENDPOINT", "http://collector:4318/v1/traces")
	t.Setenv("TRACING_INSECURE", "true")
	t.Setenv("TRACING_SAMPLE_RATIO", "0.25")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, TracingConfig{
		Exporter:    TracingExporterOTLP,
		Endpoint:    "http://collector:4318/v1/traces",
		Insecure:    true,
		SampleRatio: 0.25,
	}, cfg.Tracing)
}

func TestLoadFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
http:
  address: ":9090"
  corsOrigins: ["https://a.example"]
location:
  latitude: 47.6
  longitude: -122.3
  label: "Seattle (Default)"
wardrobe:
  source: valkey
  cacheTtl: 5m
  valkey:
    addr: "localhost:6379"
`), 0o600))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("HTTP_ADDRESS", ":7070")
	t.Setenv("HTTP_CORS_ORIGINS", "https://b.example, https://c.example")
	t.Setenv("WARDROBE_VALKEY_KEY", "custom:key")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.HTTP.Address)
	require.Equal(t, []string{"https://b.example", "https://c.example"}, cfg.HTTP.CORSOrigins)
	require.Equal(t, 47.6, cfg.Location.Latitude)
	require.Equal(t, "Seattle (Default)", cfg.Location.Label)
	require.Equal(t, WardrobeSourceValkey, cfg.Wardrobe.Source)
	require.Equal(t, 5*time.Minute, cfg.Wardrobe.CacheTTL)
	require.Equal(t, "localhost:6379", cfg.Wardrobe.Valkey.Addr)
	require.Equal(t, "custom:key", cfg.Wardrobe.Valkey.Key)
	require.Equal(t, 60, cfg.HTTP.RateLimit.RequestsPerMinute, "unset values keep defaults")
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("WARDROBE_PATH=/etc/weatherchap/wardrobe.json\n"), 0o600))
	t.Setenv("WARDROBE_PATH", "")
	os.Unsetenv("WARDROBE_PATH")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/etc/weatherchap/wardrobe.json", cfg.Wardrobe.Path)
}

func TestLoadMissingDotEnvPath(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("DOTENV_PATH", "does-not-exist.env")

	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{name: "empty address", mutate: func(c *Config) { c.HTTP.Address = "" }},
		{name: "bad rate limit", mutate: func(c *Config) { c.HTTP.RateLimit.Burst = 0 }},
		{name: "latitude range", mutate: func(c *Config) { c.Location.Latitude = 95 }},
		{name: "longitude range", mutate: func(c *Config) { c.Location.Longitude = -200 }},
		{name: "empty label", mutate: func(c *Config) { c.Location.Label = " " }},
		{name: "unknown source", mutate: func(c *Config) { c.Wardrobe.Source = "ftp" }},
		{name: "s3 without bucket", mutate: func(c *Config) {
			c.Wardrobe.Source = WardrobeSourceS3
			c.Wardrobe.S3.Endpoint = "https://minio.local"
		}},
		{name: "valkey without addr", mutate: func(c *Config) { c.Wardrobe.Source = WardrobeSourceValkey }},
		{name: "negative ttl", mutate: func(c *Config) { c.Wardrobe.CacheTTL = -time.Second }},
		{name: "unknown exporter", mutate: func(c *Config) { c.Tracing.Exporter = "jaeger" }},
		{name: "sample ratio range", mutate: func(c *Config) { c.Tracing.SampleRatio = 1.5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := defaultConfig()
			tc.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
	require.NoError(t, defaultConfig().Validate())
}
