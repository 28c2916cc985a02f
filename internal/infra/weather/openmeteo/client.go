package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/yanqian/weatherchap/internal/domain/outfit"
)

const defaultBaseURL = "https://api.open-meteo.com/v1/forecast"

// Client fetches daily forecasts from Open-Meteo.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch returns today's observation for the given coordinates in °F.
func (c *Client) Fetch(ctx context.Context, lat, lon float64) (outfit.Observation, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(lat, lon), nil)
	if err != nil {
		return outfit.Observation{}, fmt.Errorf("build forecast request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return outfit.Observation{}, fmt.Errorf("forecast request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return outfit.Observation{}, fmt.Errorf("forecast request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	var raw apiResponse
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return outfit.Observation{}, fmt.Errorf("decode forecast response: %w", err)
	}
	if raw.Error {
		return outfit.Observation{}, fmt.Errorf("forecast api error: %s", raw.Reason)
	}
	return raw.today()
}

func (c *Client) endpoint(lat, lon float64) string {
	q := url.Values{}
	q.Set("latitude", formatCoord(lat))
	q.Set("longitude", formatCoord(lon))
	q.Set("current", "temperature_2m,apparent_temperature")
	q.Set("daily", "weathercode,temperature_2m_max,temperature_2m_min,precipitation_probability_max")
	q.Set("temperature_unit", "fahrenheit")
	q.Set("wind_speed_unit", "mph")
	q.Set("precipitation_unit", "inch")
	q.Set("timezone", "auto")
	return c.baseURL + "?" + q.Encode()
}

type apiResponse struct {
	Error   bool       `json:"error"`
	Reason  string     `json:"reason"`
	Daily   apiDaily   `json:"daily"`
	Current apiCurrent `json:"current"`
}

type apiDaily struct {
	WeatherCode []*int     `json:"weathercode"`
	TempMax     []*float64 `json:"temperature_2m_max"`
	TempMin     []*float64 `json:"temperature_2m_min"`
	PrecipProb  []*float64 `json:"precipitation_probability_max"`
}

type apiCurrent struct {
	Temperature         *float64 `json:"temperature_2m"`
	ApparentTemperature *float64 `json:"apparent_temperature"`
}

func (r apiResponse) today() (outfit.Observation, error) {
	d := r.Daily
	if len(d.TempMax) == 0 || len(d.TempMin) == 0 || len(d.PrecipProb) == 0 || len(d.WeatherCode) == 0 {
		return outfit.Observation{}, fmt.Errorf("forecast response has no daily values")
	}
	if d.TempMax[0] == nil || d.TempMin[0] == nil || d.PrecipProb[0] == nil || d.WeatherCode[0] == nil {
		return outfit.Observation{}, fmt.Errorf("forecast response has null daily values")
	}
	if r.Current.Temperature == nil || r.Current.ApparentTemperature == nil {
		return outfit.Observation{}, fmt.Errorf("forecast response has no current values")
	}
	return outfit.Observation{
		TempMax:     *d.TempMax[0],
		TempMin:     *d.TempMin[0],
		PrecipProb:  *d.PrecipProb[0],
		WeatherCode: *d.WeatherCode[0],
		CurrentTemp: *r.Current.Temperature,
		FeelsLike:   *r.Current.ApparentTemperature,
	}, nil
}

func formatCoord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
